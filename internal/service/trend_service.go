package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edubase/edubase-backend/internal/config"
	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/repository"
	"github.com/edubase/edubase-backend/internal/tenant"
)

// Granularity selects the trend bucket width.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

var (
	ErrUnknownGranularity = errors.New("unknown trend granularity")
	ErrInvalidWindow      = errors.New("trend window must span at least one day")
)

const maxTrendDays = 366

// TrendBucket is one point of the attendance trend series.
type TrendBucket struct {
	// Start and End are the bucket's inclusive date bounds, formatted
	// as 2006-01-02.
	Start  string             `json:"start"`
	End    string             `json:"end"`
	Label  string             `json:"label"`
	Counts model.StatusCounts `json:"counts"`
	// DeltaPercentage is the change in attendance percentage versus the
	// previous bucket; 0 on the first bucket.
	DeltaPercentage int `json:"delta_percentage"`
}

// TrendService derives time-bucketed attendance series from the raw
// per-date counts.
type TrendService struct {
	attendanceRepo *repository.AttendanceRepository
	cfg            *config.Config
	log            zerolog.Logger
	now            func() time.Time
}

// NewTrendService creates a new TrendService.
func NewTrendService(attendanceRepo *repository.AttendanceRepository, cfg *config.Config, log zerolog.Logger) *TrendService {
	return &TrendService{
		attendanceRepo: attendanceRepo,
		cfg:            cfg,
		log:            log.With().Str("component", "trend_service").Logger(),
		now:            time.Now,
	}
}

// ParseGranularity maps a query token to a Granularity. Empty means daily.
func ParseGranularity(token string) (Granularity, error) {
	switch Granularity(token) {
	case "", GranularityDaily:
		return GranularityDaily, nil
	case GranularityWeekly:
		return GranularityWeekly, nil
	case GranularityMonthly:
		return GranularityMonthly, nil
	default:
		return "", ErrUnknownGranularity
	}
}

// GetTrends returns a gap-free bucketed series covering the inclusive
// window [today-days, today]. Buckets with no records carry all-zero
// counts so charts never have to interpolate missing points.
func (s *TrendService) GetTrends(ctx context.Context, days int, granularity Granularity) ([]TrendBucket, error) {
	branch, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if days < 1 {
		return nil, ErrInvalidWindow
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}

	today := truncateDay(s.now())
	from := today.AddDate(0, 0, -days)

	ctx, cancel := storeTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	rows, err := s.attendanceRepo.CountByDate(ctx, branch, from, today)
	if err != nil {
		return nil, err
	}
	return materializeBuckets(from, today, granularity, rows), nil
}

// materializeBuckets lays out the bucket skeleton for the window, drapes
// the per-date counts over it, then finalizes percentages and computes
// per-bucket deltas. Weekly buckets anchor on Monday and monthly buckets
// on the first of the month; the edge buckets are clipped to the window.
func materializeBuckets(from, to time.Time, granularity Granularity, rows []repository.DateStatusCountRow) []TrendBucket {
	type span struct{ start, end time.Time }
	var spans []span

	switch granularity {
	case GranularityWeekly:
		for cur := from; !cur.After(to); {
			end := weekEnd(cur)
			if end.After(to) {
				end = to
			}
			spans = append(spans, span{cur, end})
			cur = end.AddDate(0, 0, 1)
		}
	case GranularityMonthly:
		for cur := from; !cur.After(to); {
			end := monthEnd(cur)
			if end.After(to) {
				end = to
			}
			spans = append(spans, span{cur, end})
			cur = end.AddDate(0, 0, 1)
		}
	default:
		for cur := from; !cur.After(to); cur = cur.AddDate(0, 0, 1) {
			spans = append(spans, span{cur, cur})
		}
	}

	buckets := make([]TrendBucket, len(spans))
	for i, sp := range spans {
		buckets[i] = TrendBucket{
			Start: sp.start.Format(dateLayout),
			End:   sp.end.Format(dateLayout),
			Label: bucketLabel(sp.start, granularity),
		}
	}

	for _, row := range rows {
		d := truncateDay(row.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		for i := range spans {
			if !d.Before(spans[i].start) && !d.After(spans[i].end) {
				buckets[i].Counts.Add(row.Status, row.Count)
				break
			}
		}
	}

	for i := range buckets {
		buckets[i].Counts.Finalize()
		if i > 0 {
			buckets[i].DeltaPercentage = buckets[i].Counts.Percentage - buckets[i-1].Counts.Percentage
		}
	}
	return buckets
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekEnd returns the Sunday closing the Monday-anchored week of t.
func weekEnd(t time.Time) time.Time {
	offset := (int(time.Sunday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}

// monthEnd returns the last day of t's calendar month.
func monthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
}

func bucketLabel(start time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityWeekly:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case GranularityMonthly:
		return start.Format("2006-01")
	default:
		return start.Format(dateLayout)
	}
}

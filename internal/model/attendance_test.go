package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestValidateAttendance(t *testing.T) {
	tests := []struct {
		name        string
		status      AttendanceStatus
		source      AttendanceSource
		reason      *string
		minutesLate *int
		wantErr     error
	}{
		{"present needs nothing extra", AttendancePresent, SourceManual, nil, nil, nil},
		{"absent with reason", AttendanceAbsent, SourceManual, strp("sick leave"), nil, nil},
		{"late with reason and minutes", AttendanceLate, SourceBiometric, strp("bus delay"), intp(15), nil},
		{"excused with reason", AttendanceExcused, SourceImport, strp("school event"), nil, nil},
		{"medical with reason", AttendanceMedical, SourceManual, strp("hospitalized"), nil, nil},

		{"unknown status", AttendanceStatus("asleep"), SourceManual, nil, nil, ErrUnknownStatus},
		{"unknown source", AttendanceAbsent, AttendanceSource("carrier-pigeon"), strp("x"), nil, ErrUnknownSource},
		{"absent without reason", AttendanceAbsent, SourceManual, nil, nil, ErrReasonRequired},
		{"absent with empty reason", AttendanceAbsent, SourceManual, strp(""), nil, ErrReasonRequired},
		{"late without minutes", AttendanceLate, SourceManual, strp("overslept"), nil, ErrMinutesLateMissing},
		{"late with zero minutes", AttendanceLate, SourceManual, strp("overslept"), intp(0), ErrMinutesLateMissing},
		{"late with negative minutes", AttendanceLate, SourceManual, strp("overslept"), intp(-5), ErrMinutesLateMissing},
		{"present with minutes_late", AttendancePresent, SourceManual, nil, intp(10), ErrMinutesLateInvalid},
		{"absent with minutes_late", AttendanceAbsent, SourceManual, strp("x"), intp(10), ErrMinutesLateInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAttendance(tt.status, tt.source, tt.reason, tt.minutesLate)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestStatusCounts(t *testing.T) {
	t.Run("spec scenario: 27 present, 2 absent, 1 late out of 30", func(t *testing.T) {
		var c StatusCounts
		c.Add(AttendancePresent, 27)
		c.Add(AttendanceAbsent, 2)
		c.Add(AttendanceLate, 1)
		c.Finalize()

		assert.Equal(t, 30, c.Total)
		assert.Equal(t, 90, c.Percentage)
		assert.Equal(t, 0, c.Excused)
	})

	t.Run("empty population yields zero percentage", func(t *testing.T) {
		var c StatusCounts
		c.Finalize()
		assert.Equal(t, 0, c.Total)
		assert.Equal(t, 0, c.Percentage)
	})

	t.Run("percentage rounds to nearest integer", func(t *testing.T) {
		var c StatusCounts
		c.Add(AttendancePresent, 2)
		c.Add(AttendanceAbsent, 1)
		c.Finalize()
		assert.Equal(t, 67, c.Percentage) // 66.67 rounds up

		c = StatusCounts{}
		c.Add(AttendancePresent, 1)
		c.Add(AttendanceAbsent, 2)
		c.Finalize()
		assert.Equal(t, 33, c.Percentage) // 33.33 rounds down
	})

	t.Run("unknown status is ignored", func(t *testing.T) {
		var c StatusCounts
		c.Add(AttendanceStatus("nope"), 5)
		assert.Equal(t, 0, c.Total)
	})
}

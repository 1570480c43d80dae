package model

import "time"

// Branch is one isolated school-organization partition. Every other entity
// is owned by exactly one branch.
type Branch struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

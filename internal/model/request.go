package model

import "time"

// Status is the internal workflow state of a request.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// CanAdvanceTo reports whether the workflow may move from s to next.
// Statuses only move forward: NEW -> IN_PROGRESS -> DONE.
func (s Status) CanAdvanceTo(next Status) bool {
	switch s {
	case StatusNew:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusDone
	}
	return false
}

// Request is a customer's document-collection request.
// PublicID is assigned once before the first insert and never changes.
type Request struct {
	ID          string     `json:"-"`
	PublicID    string     `json:"public_id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Goal        string     `json:"goal,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Status      Status     `json:"status"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Finalized reports whether the finalize notifications were already sent.
func (r *Request) Finalized() bool {
	return r.FinalizedAt != nil
}

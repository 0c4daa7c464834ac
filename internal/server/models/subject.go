package models

import (
	"time"

	"github.com/aleksivanovs/studentcompanion/internal/common"
)

// DefaultMinAttendance is the minimum attendance percentage assigned to a
// subject when the user does not pick one.
const DefaultMinAttendance = 75

// Subject is one tracked class with its raw attendance counters. Only the
// counters are stored; ratios are always derived from them.
type Subject struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	Name          string    `json:"name" validate:"required"`
	Instructor    string    `json:"instructor,omitempty"`
	Schedule      string    `json:"schedule,omitempty"`
	MinAttendance int       `json:"minAttendance" validate:"min=0,max=100"`
	Attended      int       `json:"attended" validate:"min=0"`
	Total         int       `json:"total" validate:"min=0"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Validate checks the subject's fields, including the attended ≤ total
// invariant the tag language cannot express.
func (s *Subject) Validate() error {
	if err := validate.Struct(s); err != nil {
		return validationError(err)
	}
	if s.Attended > s.Total {
		return common.NewValidationError(common.FieldError{
			Field: "attended",
			Error: "attended classes cannot exceed total classes",
		})
	}
	return nil
}

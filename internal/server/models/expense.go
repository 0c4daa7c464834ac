package models

import (
	"time"

	"github.com/aleksivanovs/studentcompanion/internal/common"
)

// Expense is a single spend record. Amount is positive; Date is a calendar
// date and may not lie in the future.
type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Description string    `json:"description" validate:"required"`
	Amount      float64   `json:"amount" validate:"gt=0"`
	Category    string    `json:"category" validate:"required"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks the expense against the current day.
func (e *Expense) Validate() error {
	return e.ValidateAt(time.Now())
}

// ValidateAt checks the expense fields, comparing the date (date-only)
// against the given reference time.
func (e *Expense) ValidateAt(now time.Time) error {
	if err := validate.Struct(e); err != nil {
		return validationError(err)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	d := e.Date
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	if day.After(today) {
		return common.NewValidationError(common.FieldError{
			Field: "date",
			Error: "date cannot be in the future",
		})
	}
	return nil
}

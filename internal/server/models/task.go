package models

import "time"

// Task is a to-do item, optionally bound to a subject and a due date.
// DueDate is a calendar date; its time component is ignored for ordering
// and overdue checks. CompletedAt is set iff Completed.
type Task struct {
	ID           string     `json:"id"`
	UserID       string     `json:"-"`
	Title        string     `json:"title" validate:"required"`
	Subject      string     `json:"subject,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ReminderTime string     `json:"reminderTime,omitempty"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (t *Task) Validate() error {
	if err := validate.Struct(t); err != nil {
		return validationError(err)
	}
	return nil
}

package models

import "time"

// Note is a study note. FileURL/FilePath reference an optional attachment in
// object storage; both are empty when no attachment exists.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title" validate:"required"`
	Subject   string    `json:"subject" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	FileURL   string    `json:"fileUrl,omitempty"`
	FilePath  string    `json:"filePath,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n *Note) Validate() error {
	if err := validate.Struct(n); err != nil {
		return validationError(err)
	}
	return nil
}

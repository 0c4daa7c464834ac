package models

import "time"

// Quote is a motivational quote as produced by the remote source or the
// local fallback pool.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// FavoriteQuote is a quote the user saved. No two favorites of one user may
// share the same (text, author) pair.
type FavoriteQuote struct {
	ID      string    `json:"id"`
	UserID  string    `json:"-"`
	Text    string    `json:"text" validate:"required"`
	Author  string    `json:"author" validate:"required"`
	SavedAt time.Time `json:"savedAt"`
}

func (q *FavoriteQuote) Validate() error {
	if err := validate.Struct(q); err != nil {
		return validationError(err)
	}
	return nil
}

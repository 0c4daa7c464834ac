package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
	"github.com/aleksivanovs/studentcompanion/internal/server/services"
)

func (s *Server) listNotes(c echo.Context) error {
	notes, err := s.services.Notes.Search(c.Request().Context(), currentUserID(c), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notes)
}

func (s *Server) getNote(c echo.Context) error {
	note, err := s.services.Notes.Get(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}

// attachmentFromForm reads the optional multipart file part named "file".
// Returns nil when the request carries no attachment.
func attachmentFromForm(c echo.Context) (*services.Attachment, func(), error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, func() {}, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid attachment")
	}
	attachment := &services.Attachment{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        f,
	}
	return attachment, func() { f.Close() }, nil
}

func (s *Server) createNote(c echo.Context) error {
	note := &models.Note{
		UserID:  currentUserID(c),
		Title:   c.FormValue("title"),
		Subject: c.FormValue("subject"),
		Content: c.FormValue("content"),
	}

	attachment, closeFn, err := attachmentFromForm(c)
	if err != nil {
		return err
	}
	defer closeFn()

	created, err := s.services.Notes.Create(c.Request().Context(), note, attachment)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateNote(c echo.Context) error {
	note := &models.Note{
		ID:      c.Param("id"),
		UserID:  currentUserID(c),
		Title:   c.FormValue("title"),
		Subject: c.FormValue("subject"),
		Content: c.FormValue("content"),
	}

	attachment, closeFn, err := attachmentFromForm(c)
	if err != nil {
		return err
	}
	defer closeFn()

	updated, err := s.services.Notes.Update(c.Request().Context(), note, attachment)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteNote(c echo.Context) error {
	if err := s.services.Notes.Delete(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) noteAttachment(c echo.Context) error {
	url, err := s.services.Notes.AttachmentURL(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}

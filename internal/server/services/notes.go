package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aleksivanovs/studentcompanion/internal/common"
	"github.com/aleksivanovs/studentcompanion/internal/server/filestore"
	"github.com/aleksivanovs/studentcompanion/internal/server/models"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/repomanager"
)

// SearchNotes filters notes by a case-insensitive substring match across
// title, subject, and content. An empty term returns the input unchanged.
// Input order is preserved.
func SearchNotes(notes []*models.Note, term string) []*models.Note {
	if term == "" {
		return notes
	}
	needle := strings.ToLower(term)
	out := make([]*models.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), needle) ||
			strings.Contains(strings.ToLower(n.Subject), needle) ||
			strings.Contains(strings.ToLower(n.Content), needle) {
			out = append(out, n)
		}
	}
	return out
}

// Attachment is an uploaded file accompanying a note create or update.
type Attachment struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// NoteService manages notes and their attachments. Attachment objects live
// in the file store; the note row only carries the URL and storage key.
type NoteService interface {
	Search(ctx context.Context, userID, term string) ([]*models.Note, error)
	Get(ctx context.Context, userID, id string) (*models.Note, error)
	Create(ctx context.Context, note *models.Note, attachment *Attachment) (*models.Note, error)
	Update(ctx context.Context, note *models.Note, attachment *Attachment) (*models.Note, error)
	Delete(ctx context.Context, userID, id string) error
	AttachmentURL(ctx context.Context, userID, id string) (string, error)
}

type noteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	files       filestore.Store
	now         func() time.Time
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, files filestore.Store) NoteService {
	return &noteService{db: db, repomanager: m, files: files, now: time.Now}
}

func (s *noteService) Search(ctx context.Context, userID, term string) ([]*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	items, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	// Newest notes first, like the expense list.
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })

	return SearchNotes(items, term), nil
}

func (s *noteService) Get(ctx context.Context, userID, id string) (*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	return repo.GetByID(ctx, userID, id)
}

func (s *noteService) Create(ctx context.Context, note *models.Note, attachment *Attachment) (*models.Note, error) {
	if err := note.Validate(); err != nil {
		return nil, err
	}
	note.ID = uuid.NewString()

	if attachment != nil {
		key := filestore.AttachmentKey(note.UserID, attachment.FileName, s.now())
		url, err := s.files.Put(ctx, key, attachment.Body, attachment.ContentType)
		if err != nil {
			return nil, fmt.Errorf("error uploading attachment: %w", err)
		}
		note.FileURL = url
		note.FilePath = key
	}

	repo := s.repomanager.Notes(s.db)
	if err := repo.Create(ctx, note); err != nil {
		// The note row failed, so the uploaded object is orphaned.
		if note.FilePath != "" {
			_ = s.files.Delete(ctx, note.FilePath)
		}
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return note, nil
}

func (s *noteService) Update(ctx context.Context, note *models.Note, attachment *Attachment) (*models.Note, error) {
	if err := note.Validate(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Notes(s.db)
	current, err := repo.GetByID(ctx, note.UserID, note.ID)
	if err != nil {
		return nil, err
	}

	note.FileURL = current.FileURL
	note.FilePath = current.FilePath

	oldPath := ""
	if attachment != nil {
		key := filestore.AttachmentKey(note.UserID, attachment.FileName, s.now())
		url, err := s.files.Put(ctx, key, attachment.Body, attachment.ContentType)
		if err != nil {
			return nil, fmt.Errorf("error uploading attachment: %w", err)
		}
		oldPath = current.FilePath
		note.FileURL = url
		note.FilePath = key
	}

	if err := repo.Update(ctx, note); err != nil {
		if attachment != nil {
			_ = s.files.Delete(ctx, note.FilePath)
		}
		return nil, err
	}

	// The old object is removed only after both the upload and the row
	// update succeeded.
	if oldPath != "" {
		_ = s.files.Delete(ctx, oldPath)
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Notes(s.db)
	current, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	if current.FilePath != "" {
		_ = s.files.Delete(ctx, current.FilePath)
	}
	return nil
}

func (s *noteService) AttachmentURL(ctx context.Context, userID, id string) (string, error) {
	repo := s.repomanager.Notes(s.db)
	current, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return "", err
	}
	if current.FilePath == "" {
		return "", fmt.Errorf("note has no attachment: %w", common.ErrNotFound)
	}
	return s.files.PresignGet(ctx, current.FilePath)
}

package services

// In-memory repository fakes shared by the service tests in this package.

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/aleksivanovs/studentcompanion/internal/common"
	"github.com/aleksivanovs/studentcompanion/internal/dbx"
	"github.com/aleksivanovs/studentcompanion/internal/server/models"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/expenses"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/favorites"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/notes"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/refreshtokens"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/subjects"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/tasks"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/users"
)

type fakeSubjectRepo struct {
	items map[string]*models.Subject
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{items: make(map[string]*models.Subject)}
}

func (r *fakeSubjectRepo) ListByUser(_ context.Context, userID string) ([]*models.Subject, error) {
	var out []*models.Subject
	for _, s := range r.items {
		if s.UserID == userID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeSubjectRepo) GetByID(_ context.Context, userID, id string) (*models.Subject, error) {
	s, ok := r.items[id]
	if !ok || s.UserID != userID {
		return nil, common.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSubjectRepo) Create(_ context.Context, s *models.Subject) error {
	stored := *s
	r.items[s.ID] = &stored
	return nil
}

func (r *fakeSubjectRepo) Update(_ context.Context, s *models.Subject) error {
	current, ok := r.items[s.ID]
	if !ok || current.UserID != s.UserID {
		return common.ErrNotFound
	}
	stored := *s
	stored.Attended = current.Attended
	stored.Total = current.Total
	r.items[s.ID] = &stored
	return nil
}

func (r *fakeSubjectRepo) UpdateCounts(_ context.Context, userID, id string, attended, total int) error {
	current, ok := r.items[id]
	if !ok || current.UserID != userID {
		return common.ErrNotFound
	}
	current.Attended = attended
	current.Total = total
	return nil
}

func (r *fakeSubjectRepo) Delete(_ context.Context, userID, id string) error {
	current, ok := r.items[id]
	if !ok || current.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeTaskRepo struct {
	items map[string]*models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{items: make(map[string]*models.Task)}
}

func (r *fakeTaskRepo) ListByUser(_ context.Context, userID string) ([]*models.Task, error) {
	var out []*models.Task
	for _, t := range r.items {
		if t.UserID == userID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, userID, id string) (*models.Task, error) {
	t, ok := r.items[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, t *models.Task) error {
	stored := *t
	r.items[t.ID] = &stored
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, t *models.Task) error {
	current, ok := r.items[t.ID]
	if !ok || current.UserID != t.UserID {
		return common.ErrNotFound
	}
	stored := *t
	stored.Completed = current.Completed
	stored.CompletedAt = current.CompletedAt
	r.items[t.ID] = &stored
	return nil
}

func (r *fakeTaskRepo) SetCompleted(_ context.Context, userID, id string, completed bool, completedAt *time.Time) error {
	current, ok := r.items[id]
	if !ok || current.UserID != userID {
		return common.ErrNotFound
	}
	current.Completed = completed
	current.CompletedAt = completedAt
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, userID, id string) error {
	current, ok := r.items[id]
	if !ok || current.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeExpenseRepo struct {
	items map[string]*models.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{items: make(map[string]*models.Expense)}
}

func (r *fakeExpenseRepo) ListByUser(_ context.Context, userID string) ([]*models.Expense, error) {
	var out []*models.Expense
	for _, e := range r.items {
		if e.UserID == userID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) GetByID(_ context.Context, userID, id string) (*models.Expense, error) {
	e, ok := r.items[id]
	if !ok || e.UserID != userID {
		return nil, common.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeExpenseRepo) Create(_ context.Context, e *models.Expense) error {
	stored := *e
	r.items[e.ID] = &stored
	return nil
}

func (r *fakeExpenseRepo) Update(_ context.Context, e *models.Expense) error {
	current, ok := r.items[e.ID]
	if !ok || current.UserID != e.UserID {
		return common.ErrNotFound
	}
	stored := *e
	r.items[e.ID] = &stored
	return nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, userID, id string) error {
	current, ok := r.items[id]
	if !ok || current.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeNoteRepo struct {
	items     map[string]*models.Note
	createErr error
	updateErr error
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{items: make(map[string]*models.Note)}
}

func (r *fakeNoteRepo) ListByUser(_ context.Context, userID string) ([]*models.Note, error) {
	var out []*models.Note
	for _, n := range r.items {
		if n.UserID == userID {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) GetByID(_ context.Context, userID, id string) (*models.Note, error) {
	n, ok := r.items[id]
	if !ok || n.UserID != userID {
		return nil, common.ErrNotFound
	}
	copied := *n
	return &copied, nil
}

func (r *fakeNoteRepo) Create(_ context.Context, n *models.Note) error {
	if r.createErr != nil {
		return r.createErr
	}
	stored := *n
	r.items[n.ID] = &stored
	return nil
}

func (r *fakeNoteRepo) Update(_ context.Context, n *models.Note) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	current, ok := r.items[n.ID]
	if !ok || current.UserID != n.UserID {
		return common.ErrNotFound
	}
	stored := *n
	r.items[n.ID] = &stored
	return nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, userID, id string) error {
	current, ok := r.items[id]
	if !ok || current.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeFavoriteRepo struct {
	items map[string]*models.FavoriteQuote
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{items: make(map[string]*models.FavoriteQuote)}
}

func (r *fakeFavoriteRepo) ListByUser(_ context.Context, userID string) ([]*models.FavoriteQuote, error) {
	var out []*models.FavoriteQuote
	for _, f := range r.items {
		if f.UserID == userID {
			copied := *f
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeFavoriteRepo) Create(_ context.Context, f *models.FavoriteQuote) error {
	stored := *f
	stored.SavedAt = time.Now()
	r.items[f.ID] = &stored
	f.SavedAt = stored.SavedAt
	return nil
}

func (r *fakeFavoriteRepo) Delete(_ context.Context, userID, id string) error {
	current, ok := r.items[id]
	if !ok || current.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeUserRepo struct {
	byName map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byName: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.nextID++
	u.ID = fmt.Sprintf("u%d", r.nextID)
	u.CreatedAt = time.Now()
	stored := *u
	r.byName[u.UserName] = &stored
	return u, nil
}

func (r *fakeUserRepo) GetUserByLogin(_ context.Context, userName string) (*models.User, error) {
	u, ok := r.byName[userName]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

type fakeRefreshTokenRepo struct {
	items map[string]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{items: make(map[string]*models.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, userID, token string, validity time.Duration) error {
	r.items[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (r *fakeRefreshTokenRepo) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	t, ok := r.items[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeRefreshTokenRepo) Delete(_ context.Context, token string) error {
	delete(r.items, token)
	return nil
}

// fakeRepoManager vends the in-memory fakes regardless of the DBTX handed in.
type fakeRepoManager struct {
	subjects      *fakeSubjectRepo
	tasks         *fakeTaskRepo
	expenses      *fakeExpenseRepo
	notes         *fakeNoteRepo
	favorites     *fakeFavoriteRepo
	users         *fakeUserRepo
	refreshTokens *fakeRefreshTokenRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		subjects:      newFakeSubjectRepo(),
		tasks:         newFakeTaskRepo(),
		expenses:      newFakeExpenseRepo(),
		notes:         newFakeNoteRepo(),
		favorites:     newFakeFavoriteRepo(),
		users:         newFakeUserRepo(),
		refreshTokens: newFakeRefreshTokenRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.refreshTokens }
func (m *fakeRepoManager) Subjects(dbx.DBTX) subjects.Repository           { return m.subjects }
func (m *fakeRepoManager) Tasks(dbx.DBTX) tasks.Repository                 { return m.tasks }
func (m *fakeRepoManager) Expenses(dbx.DBTX) expenses.Repository           { return m.expenses }
func (m *fakeRepoManager) Notes(dbx.DBTX) notes.Repository                 { return m.notes }
func (m *fakeRepoManager) Favorites(dbx.DBTX) favorites.Repository         { return m.favorites }

// fakeFileStore records uploads and deletions in memory.
type fakeFileStore struct {
	objects map[string][]byte
	deleted []string
	putErr  error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{objects: make(map[string][]byte)}
}

func (f *fakeFileStore) Put(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.objects[key] = data
	return "http://files.local/" + key, nil
}

func (f *fakeFileStore) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeFileStore) PresignGet(_ context.Context, key string) (string, error) {
	if _, ok := f.objects[key]; !ok {
		return "", common.ErrNotFound
	}
	return "http://files.local/signed/" + key, nil
}

// fakeFetcher is a scripted quote source.
type fakeFetcher struct {
	quote *models.Quote
	err   error
}

func (f *fakeFetcher) FetchRandom(context.Context, string) (*models.Quote, error) {
	return f.quote, f.err
}

// Package services contains the server-side business logic: the pure
// derivation rules (attendance ratios, task ordering, expense aggregation,
// note search, quote selection) and the thin orchestration around the
// repositories that persists their results.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/aleksivanovs/studentcompanion/internal/common"
	"github.com/aleksivanovs/studentcompanion/internal/server/models"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/repomanager"
)

// AttendanceRatio returns the attendance percentage rounded to the nearest
// integer, half away from zero. A subject with no recorded classes is 0.
func AttendanceRatio(s *models.Subject) int {
	return ratioOf(s.Attended, s.Total)
}

func ratioOf(attended, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(attended) / float64(total)))
}

// IsBelowThreshold reports whether the subject's ratio is under its
// configured minimum.
func IsBelowThreshold(s *models.Subject) bool {
	return AttendanceRatio(s) < s.MinAttendance
}

// RecordAttend returns a copy with one more attended class.
func RecordAttend(s *models.Subject) models.Subject {
	out := *s
	out.Attended++
	out.Total++
	return out
}

// RecordMiss returns a copy with one more held class that was not attended.
func RecordMiss(s *models.Subject) models.Subject {
	out := *s
	out.Total++
	return out
}

// SetCounts returns a copy with both counters replaced. It fails with a
// ValidationError when either count is negative or attended exceeds total,
// leaving the input untouched.
func SetCounts(s *models.Subject, attended, total int) (models.Subject, error) {
	var fields []common.FieldError
	if attended < 0 {
		fields = append(fields, common.FieldError{Field: "attended", Error: "attended classes cannot be negative"})
	}
	if total < 0 {
		fields = append(fields, common.FieldError{Field: "total", Error: "total classes cannot be negative"})
	}
	if attended >= 0 && total >= 0 && attended > total {
		fields = append(fields, common.FieldError{Field: "attended", Error: "attended classes cannot exceed total classes"})
	}
	if len(fields) > 0 {
		return models.Subject{}, common.NewValidationError(fields...)
	}
	out := *s
	out.Attended = attended
	out.Total = total
	return out, nil
}

// OverallRatio computes the ratio over the summed counters of all subjects.
// Summing first weighs subjects by how many classes they actually held,
// which differs from averaging per-subject ratios.
func OverallRatio(subjects []*models.Subject) int {
	var attended, total int
	for _, s := range subjects {
		attended += s.Attended
		total += s.Total
	}
	return ratioOf(attended, total)
}

// SubjectView is a subject together with its derived attendance state.
type SubjectView struct {
	models.Subject
	Ratio          int  `json:"ratio"`
	BelowThreshold bool `json:"belowThreshold"`
}

// AttendanceOverview is the list screen payload: per-subject views plus the
// combined ratio and a warning flag when it drops under the default minimum.
type AttendanceOverview struct {
	Subjects     []*SubjectView `json:"subjects"`
	OverallRatio int            `json:"overallRatio"`
	OverallLow   bool           `json:"overallLow"`
}

// SubjectService manages attendance subjects for one user at a time.
type SubjectService interface {
	Overview(ctx context.Context, userID string) (*AttendanceOverview, error)
	Get(ctx context.Context, userID, id string) (*SubjectView, error)
	Create(ctx context.Context, subject *models.Subject) (*SubjectView, error)
	Update(ctx context.Context, subject *models.Subject) (*SubjectView, error)
	Attend(ctx context.Context, userID, id string) (*SubjectView, error)
	Miss(ctx context.Context, userID, id string) (*SubjectView, error)
	SetCounts(ctx context.Context, userID, id string, attended, total int) (*SubjectView, error)
	Delete(ctx context.Context, userID, id string) error
}

type subjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSubjectService(db *sql.DB, m repomanager.RepositoryManager) SubjectService {
	return &subjectService{db: db, repomanager: m}
}

func subjectView(s *models.Subject) *SubjectView {
	return &SubjectView{
		Subject:        *s,
		Ratio:          AttendanceRatio(s),
		BelowThreshold: IsBelowThreshold(s),
	}
}

func (s *subjectService) Overview(ctx context.Context, userID string) (*AttendanceOverview, error) {
	repo := s.repomanager.Subjects(s.db)
	items, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	views := make([]*SubjectView, 0, len(items))
	for _, item := range items {
		views = append(views, subjectView(item))
	}

	overall := OverallRatio(items)
	return &AttendanceOverview{
		Subjects:     views,
		OverallRatio: overall,
		OverallLow:   len(items) > 0 && overall < models.DefaultMinAttendance,
	}, nil
}

func (s *subjectService) Get(ctx context.Context, userID, id string) (*SubjectView, error) {
	repo := s.repomanager.Subjects(s.db)
	item, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return subjectView(item), nil
}

func (s *subjectService) Create(ctx context.Context, subject *models.Subject) (*SubjectView, error) {
	if subject.MinAttendance == 0 {
		subject.MinAttendance = models.DefaultMinAttendance
	}
	// New subjects always start with empty counters.
	subject.Attended = 0
	subject.Total = 0
	if err := subject.Validate(); err != nil {
		return nil, err
	}
	subject.ID = uuid.NewString()

	repo := s.repomanager.Subjects(s.db)
	if err := repo.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("error creating subject: %w", err)
	}
	return subjectView(subject), nil
}

func (s *subjectService) Update(ctx context.Context, subject *models.Subject) (*SubjectView, error) {
	repo := s.repomanager.Subjects(s.db)
	current, err := repo.GetByID(ctx, subject.UserID, subject.ID)
	if err != nil {
		return nil, err
	}
	subject.Attended = current.Attended
	subject.Total = current.Total
	if err := subject.Validate(); err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, subject); err != nil {
		return nil, fmt.Errorf("error updating subject: %w", err)
	}
	return subjectView(subject), nil
}

func (s *subjectService) Attend(ctx context.Context, userID, id string) (*SubjectView, error) {
	return s.applyCounts(ctx, userID, id, RecordAttend)
}

func (s *subjectService) Miss(ctx context.Context, userID, id string) (*SubjectView, error) {
	return s.applyCounts(ctx, userID, id, RecordMiss)
}

func (s *subjectService) applyCounts(ctx context.Context, userID, id string, mutate func(*models.Subject) models.Subject) (*SubjectView, error) {
	repo := s.repomanager.Subjects(s.db)
	current, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	next := mutate(current)
	if err := repo.UpdateCounts(ctx, userID, id, next.Attended, next.Total); err != nil {
		return nil, fmt.Errorf("error updating counts: %w", err)
	}
	return subjectView(&next), nil
}

func (s *subjectService) SetCounts(ctx context.Context, userID, id string, attended, total int) (*SubjectView, error) {
	repo := s.repomanager.Subjects(s.db)
	current, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	next, err := SetCounts(current, attended, total)
	if err != nil {
		return nil, err
	}
	if err := repo.UpdateCounts(ctx, userID, id, next.Attended, next.Total); err != nil {
		return nil, fmt.Errorf("error updating counts: %w", err)
	}
	return subjectView(&next), nil
}

func (s *subjectService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Subjects(s.db)
	return repo.Delete(ctx, userID, id)
}

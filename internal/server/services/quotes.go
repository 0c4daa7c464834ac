package services

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/aleksivanovs/studentcompanion/internal/common"
	"github.com/aleksivanovs/studentcompanion/internal/server/models"
	"github.com/aleksivanovs/studentcompanion/internal/server/quoteapi"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/repomanager"
)

// QuoteSource says where a served quote came from.
type QuoteSource string

const (
	// QuoteResolved means the remote fetch succeeded.
	QuoteResolved QuoteSource = "resolved"
	// QuoteFallback means the remote fetch failed and the quote was drawn
	// from the local pool.
	QuoteFallback QuoteSource = "fallback"
)

// QuoteResult is a quote plus the branch that produced it, so callers and
// tests can tell the two apart.
type QuoteResult struct {
	Quote  models.Quote `json:"quote"`
	Source QuoteSource  `json:"source"`
}

// fallbackQuotes is served whenever the remote source is unavailable.
var fallbackQuotes = []models.Quote{
	{Text: "The beautiful thing about learning is that no one can take it away from you.", Author: "B.B. King"},
	{Text: "Education is the most powerful weapon which you can use to change the world.", Author: "Nelson Mandela"},
	{Text: "The more that you read, the more things you will know. The more that you learn, the more places you'll go.", Author: "Dr. Seuss"},
	{Text: "Live as if you were to die tomorrow. Learn as if you were to live forever.", Author: "Mahatma Gandhi"},
	{Text: "The mind is not a vessel to be filled, but a fire to be kindled.", Author: "Plutarch"},
	{Text: "You don't have to be great to start, but you have to start to be great.", Author: "Zig Ziglar"},
	{Text: "The expert in anything was once a beginner.", Author: "Helen Hayes"},
	{Text: "The only person who is educated is the one who has learned how to learn and change.", Author: "Carl Rogers"},
	{Text: "Education is not preparation for life; education is life itself.", Author: "John Dewey"},
	{Text: "The difference between ordinary and extraordinary is that little extra.", Author: "Jimmy Johnson"},
	{Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt"},
	{Text: "Your time is limited, don't waste it living someone else's life.", Author: "Steve Jobs"},
	{Text: "Failure is the opportunity to begin again more intelligently.", Author: "Henry Ford"},
	{Text: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
	{Text: "Success is not final, failure is not fatal: It is the courage to continue that counts.", Author: "Winston Churchill"},
}

// IsDuplicateFavorite reports whether a favorite with the same text and
// author already exists. IDs and timestamps are ignored.
func IsDuplicateFavorite(favorites []*models.FavoriteQuote, candidate *models.Quote) bool {
	for _, f := range favorites {
		if f.Text == candidate.Text && f.Author == candidate.Author {
			return true
		}
	}
	return false
}

// QuoteService serves a quote of the day and manages saved favorites.
type QuoteService interface {
	// Random never fails: any remote error falls back to the local pool.
	Random(ctx context.Context) *QuoteResult
	Favorites(ctx context.Context, userID string) ([]*models.FavoriteQuote, error)
	SaveFavorite(ctx context.Context, userID string, quote *models.Quote) (*models.FavoriteQuote, error)
	DeleteFavorite(ctx context.Context, userID, id string) error
}

type quoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	fetcher     quoteapi.Fetcher
	tags        string
	randIntn    func(n int) int
}

func NewQuoteService(db *sql.DB, m repomanager.RepositoryManager, fetcher quoteapi.Fetcher, tags string) QuoteService {
	return &quoteService{
		db:          db,
		repomanager: m,
		fetcher:     fetcher,
		tags:        tags,
		randIntn:    rand.Intn,
	}
}

func (s *quoteService) Random(ctx context.Context) *QuoteResult {
	quote, err := s.fetcher.FetchRandom(ctx, s.tags)
	if err == nil {
		return &QuoteResult{Quote: *quote, Source: QuoteResolved}
	}
	fallback := fallbackQuotes[s.randIntn(len(fallbackQuotes))]
	return &QuoteResult{Quote: fallback, Source: QuoteFallback}
}

func (s *quoteService) Favorites(ctx context.Context, userID string) ([]*models.FavoriteQuote, error) {
	repo := s.repomanager.Favorites(s.db)
	items, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing favorites: %w", err)
	}
	return items, nil
}

func (s *quoteService) SaveFavorite(ctx context.Context, userID string, quote *models.Quote) (*models.FavoriteQuote, error) {
	favorite := &models.FavoriteQuote{
		UserID: userID,
		Text:   quote.Text,
		Author: quote.Author,
	}
	if err := favorite.Validate(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Favorites(s.db)
	existing, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking favorite: %w", err)
	}
	if IsDuplicateFavorite(existing, quote) {
		return nil, common.ErrAlreadyExists
	}

	favorite.ID = uuid.NewString()
	if err := repo.Create(ctx, favorite); err != nil {
		return nil, fmt.Errorf("error saving favorite: %w", err)
	}
	return favorite, nil
}

func (s *quoteService) DeleteFavorite(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Favorites(s.db)
	return repo.Delete(ctx, userID, id)
}

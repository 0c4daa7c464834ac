// Package httpapi exposes the application services as a JSON HTTP API built
// on echo. All record routes are JWT-protected and scoped to the token's
// owner.
package httpapi

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/aleksivanovs/studentcompanion/internal/logging"
	"github.com/aleksivanovs/studentcompanion/internal/server/config"
	"github.com/aleksivanovs/studentcompanion/internal/server/services"
)

// Services bundles everything the HTTP layer needs from the service layer.
type Services struct {
	Users     services.UserService
	Subjects  services.SubjectService
	Tasks     services.TaskService
	Expenses  services.ExpenseService
	Notes     services.NoteService
	Quotes    services.QuoteService
	Dashboard services.DashboardService
}

type Server struct {
	echo      *echo.Echo
	addr      string
	jwtSecret []byte
	logger    logging.Logger
	services  Services
}

func NewServer(cfg *config.Config, logger logging.Logger, svcs Services) *Server {
	s := &Server{
		echo:      echo.New(),
		addr:      cfg.EndpointAddr,
		jwtSecret: []byte(cfg.SecretKey),
		logger:    logger,
		services:  svcs,
	}

	s.echo.HideBanner = true
	s.echo.HTTPErrorHandler = s.httpErrorHandler
	s.echo.Pre(middleware.RemoveTrailingSlash())
	s.echo.Use(middleware.Recover())

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api/v1")

	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)
	api.POST("/auth/refresh", s.refresh)

	authed := api.Group("", s.requireAuth)

	authed.GET("/dashboard", s.dashboard)

	authed.GET("/subjects", s.listSubjects)
	authed.POST("/subjects", s.createSubject)
	authed.GET("/subjects/:id", s.getSubject)
	authed.PUT("/subjects/:id", s.updateSubject)
	authed.DELETE("/subjects/:id", s.deleteSubject)
	authed.POST("/subjects/:id/attend", s.attendSubject)
	authed.POST("/subjects/:id/miss", s.missSubject)
	authed.PUT("/subjects/:id/counts", s.setSubjectCounts)

	authed.GET("/tasks", s.listTasks)
	authed.POST("/tasks", s.createTask)
	authed.PUT("/tasks/:id", s.updateTask)
	authed.POST("/tasks/:id/toggle", s.toggleTask)
	authed.DELETE("/tasks/:id", s.deleteTask)

	authed.GET("/expenses", s.expenseReport)
	authed.POST("/expenses", s.createExpense)
	authed.PUT("/expenses/:id", s.updateExpense)
	authed.DELETE("/expenses/:id", s.deleteExpense)

	authed.GET("/notes", s.listNotes)
	authed.POST("/notes", s.createNote)
	authed.GET("/notes/:id", s.getNote)
	authed.PUT("/notes/:id", s.updateNote)
	authed.DELETE("/notes/:id", s.deleteNote)
	authed.GET("/notes/:id/attachment", s.noteAttachment)

	authed.GET("/quotes/random", s.randomQuote)
	authed.GET("/quotes/favorites", s.listFavorites)
	authed.POST("/quotes/favorites", s.saveFavorite)
	authed.DELETE("/quotes/favorites/:id", s.deleteFavorite)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(s.addr)
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	internalApp "github.com/felixgeelhaar/phoenix/internal/app"
	insightsApp "github.com/felixgeelhaar/phoenix/internal/insights/application"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
)

// ErrNotInitialized is returned when a command runs without a backing store.
var ErrNotInitialized = errors.New("phoenix is not initialized: check DATABASE_URL or SQLITE_PATH")

// App holds the CLI application dependencies.
type App struct {
	// Meals
	LogMealHandler      *commands.LogMealHandler
	CompleteMealHandler *commands.CompleteMealHandler
	ListMealsHandler    *queries.ListMealsHandler

	// Supplements
	AddSupplementHandler    *commands.AddSupplementHandler
	TakeSupplementHandler   *commands.TakeSupplementHandler
	DeleteSupplementHandler *commands.DeleteSupplementHandler
	ResetSupplementsHandler *commands.ResetSupplementsHandler
	ListSupplementsHandler  *queries.ListSupplementsHandler

	// Addiction trackers
	StartAddictionHandler *commands.StartAddictionHandler
	TrackerActionHandler  *commands.TrackerActionHandler

	// Journal, goals, routines, points
	WriteJournalHandler *commands.WriteJournalHandler
	ListJournalHandler  *queries.ListJournalHandler
	CreateGoalHandler   *commands.CreateGoalHandler
	CompleteGoalHandler *commands.CompleteGoalHandler
	ListGoalsHandler    *queries.ListGoalsHandler
	LogRoutineHandler   *commands.LogRoutineHandler
	ListRoutinesHandler *queries.ListRoutinesHandler
	GetPointsHandler    *queries.GetPointsHandler

	// Insights Service
	InsightsService *insightsApp.Service

	// Current user (configured per environment)
	CurrentUserID uuid.UUID

	// Location interprets dates given on the command line.
	Location *time.Location

	// AfterCommand runs after every command, e.g. to drain the outbox.
	AfterCommand func(ctx context.Context)
}

// NewApp creates a CLI application from a wired container.
func NewApp(c *internalApp.Container) *App {
	return &App{
		LogMealHandler:          c.LogMealHandler,
		CompleteMealHandler:     c.CompleteMealHandler,
		ListMealsHandler:        c.ListMealsHandler,
		AddSupplementHandler:    c.AddSupplementHandler,
		TakeSupplementHandler:   c.TakeSupplementHandler,
		DeleteSupplementHandler: c.DeleteSupplementHandler,
		ResetSupplementsHandler: c.ResetSupplementsHandler,
		ListSupplementsHandler:  c.ListSupplementsHandler,
		StartAddictionHandler:   c.StartAddictionHandler,
		TrackerActionHandler:    c.TrackerActionHandler,
		WriteJournalHandler:     c.WriteJournalHandler,
		ListJournalHandler:      c.ListJournalHandler,
		CreateGoalHandler:       c.CreateGoalHandler,
		CompleteGoalHandler:     c.CompleteGoalHandler,
		ListGoalsHandler:        c.ListGoalsHandler,
		LogRoutineHandler:       c.LogRoutineHandler,
		ListRoutinesHandler:     c.ListRoutinesHandler,
		GetPointsHandler:        c.GetPointsHandler,
		InsightsService:         c.InsightsService,
		CurrentUserID:           c.UserID,
		Location:                c.Clock.Now().Location(),
		AfterCommand:            c.DrainEvents,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// ParseDate reads a date flag. Empty input means "not given".
func (a *App) ParseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	loc := a.Location
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return &t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.In(loc)
		return &t, nil
	}
	return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339", raw)
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}

// RequireApp returns the application or ErrNotInitialized.
func RequireApp() (*App, error) {
	if app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}

// ParseID parses a record id given on the command line.
func ParseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID: %w", kind, err)
	}
	return id, nil
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package commands

import (
	"context"
	"testing"
	"time"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartAddictionHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("starts from a past quit date", func(t *testing.T) {
		repo := new(mockAddictionRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewStartAddictionHandler(repo, outboxRepo, uow, sharedDomain.NewFixedClock(testNow))

		ctx := context.Background()
		quit := testNow.AddDate(0, 0, -12)

		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Commit", ctx).Return(nil)
		repo.On("Save", ctx, mock.AnythingOfType("*domain.AddictionTracker")).Return(nil)
		outboxRepo.On("SaveBatch", ctx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, StartAddictionCommand{UserID: userID, Name: "Smoking", StartedAt: &quit})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.TrackerID)
		saved := repo.Calls[0].Arguments.Get(1).(*domain.AddictionTracker)
		assert.Equal(t, quit, saved.LastReset())
		assert.Equal(t, domain.RoutingAddictionStarted, savedMessages(outboxRepo)[0].RoutingKey)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		handler := NewStartAddictionHandler(new(mockAddictionRepo), new(mockOutboxRepo), new(mockUnitOfWork), sharedDomain.NewFixedClock(testNow))

		_, err := handler.Handle(context.Background(), StartAddictionCommand{UserID: userID})

		assert.ErrorIs(t, err, domain.ErrAddictionEmptyName)
	})
}

func TestTrackerActionHandler_Handle(t *testing.T) {
	userID := uuid.New()
	trackerID := uuid.New()
	started := testNow.AddDate(0, 0, -5)

	newTracker := func(owner uuid.UUID, lastCheckIn *time.Time) *domain.AddictionTracker {
		return domain.RehydrateAddictionTracker(trackerID, owner, "Sugar", started, lastCheckIn, started, started)
	}

	tests := []struct {
		name       string
		action     TrackerAction
		routingKey string
	}{
		{"reset restarts the streak", TrackerReset, domain.RoutingAddictionReset},
		{"check-in confirms the day", TrackerCheckIn, domain.RoutingStreakCheckedIn},
		{"delete removes the tracker", TrackerDelete, domain.RoutingAddictionDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockAddictionRepo)
			outboxRepo := new(mockOutboxRepo)
			uow := new(mockUnitOfWork)
			handler := NewTrackerActionHandler(repo, outboxRepo, uow, sharedDomain.NewFixedClock(testNow))

			ctx := context.Background()
			tracker := newTracker(userID, nil)

			uow.On("Begin", ctx).Return(ctx, nil)
			uow.On("Commit", ctx).Return(nil)
			repo.On("FindByID", ctx, trackerID).Return(tracker, nil)
			repo.On("Save", ctx, tracker).Return(nil).Maybe()
			repo.On("Delete", ctx, trackerID).Return(nil).Maybe()
			outboxRepo.On("SaveBatch", ctx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

			err := handler.Handle(ctx, TrackerActionCommand{TrackerID: trackerID, UserID: userID, Action: tt.action})

			require.NoError(t, err)
			msgs := savedMessages(outboxRepo)
			require.Len(t, msgs, 1)
			assert.Equal(t, tt.routingKey, msgs[0].RoutingKey)

			switch tt.action {
			case TrackerReset:
				assert.Equal(t, testNow, tracker.LastReset())
				repo.AssertCalled(t, "Save", ctx, tracker)
			case TrackerCheckIn:
				require.NotNil(t, tracker.LastCheckIn())
				repo.AssertCalled(t, "Save", ctx, tracker)
			case TrackerDelete:
				repo.AssertCalled(t, "Delete", ctx, trackerID)
				repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			}
		})
	}

	t.Run("second check-in on the same day fails", func(t *testing.T) {
		repo := new(mockAddictionRepo)
		uow := new(mockUnitOfWork)
		handler := NewTrackerActionHandler(repo, new(mockOutboxRepo), uow, sharedDomain.NewFixedClock(testNow))

		ctx := context.Background()
		earlier := testNow.Add(-time.Hour)

		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Rollback", ctx).Return(nil)
		repo.On("FindByID", ctx, trackerID).Return(newTracker(userID, &earlier), nil)

		err := handler.Handle(ctx, TrackerActionCommand{TrackerID: trackerID, UserID: userID, Action: TrackerCheckIn})

		assert.ErrorIs(t, err, domain.ErrAlreadyCheckedIn)
	})

	t.Run("fails when tracker not found", func(t *testing.T) {
		repo := new(mockAddictionRepo)
		uow := new(mockUnitOfWork)
		handler := NewTrackerActionHandler(repo, new(mockOutboxRepo), uow, sharedDomain.NewFixedClock(testNow))

		ctx := context.Background()
		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Rollback", ctx).Return(nil)
		repo.On("FindByID", ctx, trackerID).Return(nil, nil)

		err := handler.Handle(ctx, TrackerActionCommand{TrackerID: trackerID, UserID: userID, Action: TrackerReset})

		assert.ErrorIs(t, err, domain.ErrAddictionNotFound)
	})

	t.Run("fails for another user's tracker", func(t *testing.T) {
		repo := new(mockAddictionRepo)
		uow := new(mockUnitOfWork)
		handler := NewTrackerActionHandler(repo, new(mockOutboxRepo), uow, sharedDomain.NewFixedClock(testNow))

		ctx := context.Background()
		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Rollback", ctx).Return(nil)
		repo.On("FindByID", ctx, trackerID).Return(newTracker(uuid.New(), nil), nil)

		err := handler.Handle(ctx, TrackerActionCommand{TrackerID: trackerID, UserID: userID, Action: TrackerDelete})

		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		repo := new(mockAddictionRepo)
		uow := new(mockUnitOfWork)
		handler := NewTrackerActionHandler(repo, new(mockOutboxRepo), uow, sharedDomain.NewFixedClock(testNow))

		ctx := context.Background()
		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Rollback", ctx).Return(nil)
		repo.On("FindByID", ctx, trackerID).Return(newTracker(userID, nil), nil)

		err := handler.Handle(ctx, TrackerActionCommand{TrackerID: trackerID, UserID: userID, Action: "pause"})

		assert.Error(t, err)
	})
}

package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// testNow is Wednesday 2026-03-11 09:30 UTC.
var testNow = time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC)

// mockMealRepo is a mock implementation of domain.MealRepository.
type mockMealRepo struct {
	mock.Mock
}

func (m *mockMealRepo) Save(ctx context.Context, meal *domain.Meal) error {
	args := m.Called(ctx, meal)
	return args.Error(0)
}

func (m *mockMealRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Meal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meal), args.Error(1)
}

func (m *mockMealRepo) FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.Meal, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Meal), args.Error(1)
}

// mockSupplementRepo is a mock implementation of domain.SupplementRepository.
type mockSupplementRepo struct {
	mock.Mock
}

func (m *mockSupplementRepo) Save(ctx context.Context, supplement *domain.Supplement) error {
	args := m.Called(ctx, supplement)
	return args.Error(0)
}

func (m *mockSupplementRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplement), args.Error(1)
}

func (m *mockSupplementRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Supplement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Supplement), args.Error(1)
}

func (m *mockSupplementRepo) FindAll(ctx context.Context) ([]*domain.Supplement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Supplement), args.Error(1)
}

func (m *mockSupplementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockAddictionRepo is a mock implementation of domain.AddictionRepository.
type mockAddictionRepo struct {
	mock.Mock
}

func (m *mockAddictionRepo) Save(ctx context.Context, tracker *domain.AddictionTracker) error {
	args := m.Called(ctx, tracker)
	return args.Error(0)
}

func (m *mockAddictionRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.AddictionTracker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AddictionTracker), args.Error(1)
}

func (m *mockAddictionRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.AddictionTracker, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AddictionTracker), args.Error(1)
}

func (m *mockAddictionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockJournalRepo is a mock implementation of domain.JournalRepository.
type mockJournalRepo struct {
	mock.Mock
}

func (m *mockJournalRepo) Save(ctx context.Context, entry *domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockJournalRepo) FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.JournalEntry, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.JournalEntry), args.Error(1)
}

// mockGoalRepo is a mock implementation of domain.GoalRepository.
type mockGoalRepo struct {
	mock.Mock
}

func (m *mockGoalRepo) Save(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *mockGoalRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *mockGoalRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Goal), args.Error(1)
}

// mockRoutineRepo is a mock implementation of domain.RoutineRepository.
type mockRoutineRepo struct {
	mock.Mock
}

func (m *mockRoutineRepo) Save(ctx context.Context, completion *domain.RoutineCompletion) error {
	args := m.Called(ctx, completion)
	return args.Error(0)
}

func (m *mockRoutineRepo) FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.RoutineCompletion, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RoutineCompletion), args.Error(1)
}

// mockOutboxRepo is a mock implementation of outbox.Repository.
type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Save(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, err string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, err, nextRetryAt)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// mockUnitOfWork is a mock implementation of UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// savedMessages captures the outbox batch passed to SaveBatch.
func savedMessages(outboxRepo *mockOutboxRepo) []*outbox.Message {
	for _, call := range outboxRepo.Calls {
		if call.Method == "SaveBatch" {
			return call.Arguments.Get(1).([]*outbox.Message)
		}
	}
	return nil
}

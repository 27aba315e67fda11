package memory

import (
	"context"
	"sort"
	"time"

	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// MealRepository implements domain.MealRepository on a Store.
type MealRepository struct{ store *Store }

func (r *MealRepository) Save(_ context.Context, meal *domain.Meal) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row := mealRowOf(meal)
	for i := range s.meals {
		if s.meals[i].id == row.id {
			s.meals[i] = row
			return nil
		}
	}
	s.meals = append(s.meals, row)
	return nil
}

func (r *MealRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Meal, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.meals {
		if row.id == id {
			return row.toDomain(), nil
		}
	}
	return nil, nil
}

func (r *MealRepository) FindSince(_ context.Context, userID uuid.UUID, since time.Time) ([]*domain.Meal, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var meals []*domain.Meal
	for _, row := range s.meals {
		if row.userID == userID && !row.eatenAt.Before(since) {
			meals = append(meals, row.toDomain())
		}
	}
	sort.SliceStable(meals, func(i, j int) bool { return meals[i].EatenAt().Before(meals[j].EatenAt()) })
	return meals, nil
}

// SupplementRepository implements domain.SupplementRepository on a Store.
type SupplementRepository struct{ store *Store }

func (r *SupplementRepository) Save(_ context.Context, supplement *domain.Supplement) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row := supplementRowOf(supplement)
	for i := range s.supplements {
		if s.supplements[i].id == row.id {
			s.supplements[i] = row
			return nil
		}
	}
	s.supplements = append(s.supplements, row)
	return nil
}

func (r *SupplementRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Supplement, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.supplements {
		if row.id == id {
			return row.toDomain(), nil
		}
	}
	return nil, nil
}

func (r *SupplementRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*domain.Supplement, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var supplements []*domain.Supplement
	for _, row := range s.supplements {
		if row.userID == userID {
			supplements = append(supplements, row.toDomain())
		}
	}
	return supplements, nil
}

func (r *SupplementRepository) FindAll(_ context.Context) ([]*domain.Supplement, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	supplements := make([]*domain.Supplement, 0, len(s.supplements))
	for _, row := range s.supplements {
		supplements = append(supplements, row.toDomain())
	}
	return supplements, nil
}

func (r *SupplementRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.supplements {
		if s.supplements[i].id == id {
			s.supplements = append(s.supplements[:i], s.supplements[i+1:]...)
			return nil
		}
	}
	return nil
}

// AddictionRepository implements domain.AddictionRepository on a Store.
type AddictionRepository struct{ store *Store }

func (r *AddictionRepository) Save(_ context.Context, tracker *domain.AddictionTracker) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row := trackerRowOf(tracker)
	for i := range s.trackers {
		if s.trackers[i].id == row.id {
			s.trackers[i] = row
			return nil
		}
	}
	s.trackers = append(s.trackers, row)
	return nil
}

func (r *AddictionRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.AddictionTracker, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.trackers {
		if row.id == id {
			return row.toDomain(), nil
		}
	}
	return nil, nil
}

func (r *AddictionRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*domain.AddictionTracker, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var trackers []*domain.AddictionTracker
	for _, row := range s.trackers {
		if row.userID == userID {
			trackers = append(trackers, row.toDomain())
		}
	}
	return trackers, nil
}

func (r *AddictionRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.trackers {
		if s.trackers[i].id == id {
			s.trackers = append(s.trackers[:i], s.trackers[i+1:]...)
			return nil
		}
	}
	return nil
}

// JournalRepository implements domain.JournalRepository on a Store.
type JournalRepository struct{ store *Store }

func (r *JournalRepository) Save(_ context.Context, entry *domain.JournalEntry) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row := journalRowOf(entry)
	for i := range s.journal {
		if s.journal[i].id == row.id {
			s.journal[i] = row
			return nil
		}
	}
	s.journal = append(s.journal, row)
	return nil
}

func (r *JournalRepository) FindSince(_ context.Context, userID uuid.UUID, since time.Time) ([]*domain.JournalEntry, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []*domain.JournalEntry
	for _, row := range s.journal {
		if row.userID == userID && !row.date.Before(since) {
			entries = append(entries, row.toDomain())
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date().Before(entries[j].Date()) })
	return entries, nil
}

// GoalRepository implements domain.GoalRepository on a Store.
type GoalRepository struct{ store *Store }

func (r *GoalRepository) Save(_ context.Context, goal *domain.Goal) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row := goalRowOf(goal)
	for i := range s.goals {
		if s.goals[i].id == row.id {
			s.goals[i] = row
			return nil
		}
	}
	s.goals = append(s.goals, row)
	return nil
}

func (r *GoalRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Goal, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.goals {
		if row.id == id {
			return row.toDomain(), nil
		}
	}
	return nil, nil
}

func (r *GoalRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var goals []*domain.Goal
	for _, row := range s.goals {
		if row.userID == userID {
			goals = append(goals, row.toDomain())
		}
	}
	return goals, nil
}

// RoutineRepository implements domain.RoutineRepository on a Store.
type RoutineRepository struct{ store *Store }

func (r *RoutineRepository) Save(_ context.Context, completion *domain.RoutineCompletion) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row := routineRowOf(completion)
	for i := range s.routines {
		if s.routines[i].id == row.id {
			s.routines[i] = row
			return nil
		}
	}
	s.routines = append(s.routines, row)
	return nil
}

func (r *RoutineRepository) FindSince(_ context.Context, userID uuid.UUID, since time.Time) ([]*domain.RoutineCompletion, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var completions []*domain.RoutineCompletion
	for _, row := range s.routines {
		if row.userID == userID && !row.date.Before(since) {
			completions = append(completions, row.toDomain())
		}
	}
	sort.SliceStable(completions, func(i, j int) bool { return completions[i].Date().Before(completions[j].Date()) })
	return completions, nil
}

// PointsRepository implements domain.PointsRepository on a Store.
type PointsRepository struct{ store *Store }

func (r *PointsRepository) Add(_ context.Context, award *domain.Award) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.awards {
		if a.SourceEventID == award.SourceEventID {
			return false, nil
		}
	}
	s.awards = append(s.awards, *award)
	return true, nil
}

func (r *PointsRepository) Total(_ context.Context, userID uuid.UUID) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, a := range s.awards {
		if a.UserID == userID {
			total += a.Amount
		}
	}
	return total, nil
}

// Recent returns the newest awards first.
func (r *PointsRepository) Recent(_ context.Context, userID uuid.UUID, limit int) ([]*domain.Award, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var awards []*domain.Award
	for i := len(s.awards) - 1; i >= 0; i-- {
		if s.awards[i].UserID != userID {
			continue
		}
		a := s.awards[i]
		awards = append(awards, &a)
	}
	sort.SliceStable(awards, func(i, j int) bool {
		return awards[i].AwardedAt.After(awards[j].AwardedAt)
	})
	if limit > 0 && len(awards) > limit {
		awards = awards[:limit]
	}
	return awards, nil
}

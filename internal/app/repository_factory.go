package app

import (
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/felixgeelhaar/phoenix/internal/tracking/infrastructure/memory"
	"github.com/felixgeelhaar/phoenix/internal/tracking/infrastructure/persistence"
)

// Repositories groups every store the application writes to.
type Repositories struct {
	Meals       domain.MealRepository
	Supplements domain.SupplementRepository
	Addictions  domain.AddictionRepository
	Journal     domain.JournalRepository
	Goals       domain.GoalRepository
	Routines    domain.RoutineRepository
	Points      domain.PointsRepository
	Outbox      outbox.Repository
}

// RepositoryFactory creates repositories for a database connection. The SQL
// repositories rebind their queries for the connection's driver, so the same
// factory serves SQLite and PostgreSQL.
type RepositoryFactory struct {
	conn database.Connection
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{conn: conn}
}

// Repositories returns the SQL-backed repositories.
func (f *RepositoryFactory) Repositories() Repositories {
	return Repositories{
		Meals:       persistence.NewMealRepository(f.conn),
		Supplements: persistence.NewSupplementRepository(f.conn),
		Addictions:  persistence.NewAddictionRepository(f.conn),
		Journal:     persistence.NewJournalRepository(f.conn),
		Goals:       persistence.NewGoalRepository(f.conn),
		Routines:    persistence.NewRoutineRepository(f.conn),
		Points:      persistence.NewPointsRepository(f.conn),
		Outbox:      outbox.NewSQLRepository(f.conn),
	}
}

// UnitOfWork returns a unit of work that shares transactions with the
// repositories above.
func (f *RepositoryFactory) UnitOfWork() *database.UnitOfWork {
	return database.NewUnitOfWork(f.conn)
}

// Driver returns the database driver.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.conn.Driver()
}

// Connection returns the underlying connection.
func (f *RepositoryFactory) Connection() database.Connection {
	return f.conn
}

// MemoryRepositories returns repositories over an in-process store.
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Meals:       store.Meals(),
		Supplements: store.Supplements(),
		Addictions:  store.Addictions(),
		Journal:     store.Journal(),
		Goals:       store.Goals(),
		Routines:    store.Routines(),
		Points:      store.Points(),
		Outbox:      outbox.NewInMemoryRepository(),
	}
}

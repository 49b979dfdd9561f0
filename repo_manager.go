package titanic

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Users() Users
	Passengers() Passengers
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
	Validate() error
}

type mngr struct {
	db         *bun.DB
	users      Users
	passengers Passengers
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:         db,
		users:      NewUsersRepository(db),
		passengers: NewPassengersRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.passengers == nil {
		return errors.New("repository passengers should be initialized")
	}

	return nil
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Passengers() Passengers {
	return m.passengers
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error {
	return m.db.RunInTx(ctx, opts, fn)
}

package titanic

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// PassengerFilters narrows an advanced search. Zero values mean "not set".
type PassengerFilters struct {
	Sex      string
	MinAge   *float64
	MaxAge   *float64
	Pclass   int
	Embarked string
	Survived *bool
}

// StatisticsGroup is one aggregation bucket of the statistics endpoint.
type StatisticsGroup struct {
	Category     string   `json:"category"`
	Count        int      `json:"count"`
	SurvivalRate float64  `json:"survival_rate"`
	AverageAge   *float64 `json:"average_age,omitempty"`
	AverageFare  *float64 `json:"average_fare,omitempty"`
}

// Passengers is the passenger repository.
type Passengers interface {
	List(ctx context.Context, skip, limit int) ([]*Passenger, int, error)
	GetByID(ctx context.Context, id int64) (*Passenger, error)
	Search(ctx context.Context, filters PassengerFilters) ([]*Passenger, error)
	Statistics(ctx context.Context, groupBy string) ([]StatisticsGroup, error)
	Create(ctx context.Context, record *Passenger) (*Passenger, error)
	Update(ctx context.Context, record *Passenger) (*Passenger, error)
	Delete(ctx context.Context, id int64) error
}

type passengers struct {
	db *bun.DB
}

var _ Passengers = (*passengers)(nil)

func NewPassengersRepository(db *bun.DB) Passengers {
	return &passengers{db: db}
}

func (p *passengers) List(ctx context.Context, skip, limit int) ([]*Passenger, int, error) {
	var records []*Passenger

	total, err := p.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		ScanAndCount(ctx)

	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetByID returns (nil, nil) when no record matches.
func (p *passengers) GetByID(ctx context.Context, id int64) (*Passenger, error) {
	record := &Passenger{}

	err := p.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return record, nil
}

func (p *passengers) Search(ctx context.Context, filters PassengerFilters) ([]*Passenger, error) {
	var records []*Passenger

	q := p.db.NewSelect().Model(&records)

	if filters.Sex != "" {
		q = q.Where("?TableAlias.sex = ?", filters.Sex)
	}
	if filters.MinAge != nil {
		q = q.Where("?TableAlias.age >= ?", *filters.MinAge)
	}
	if filters.MaxAge != nil {
		q = q.Where("?TableAlias.age <= ?", *filters.MaxAge)
	}
	if filters.Pclass != 0 {
		q = q.Where("?TableAlias.pclass = ?", filters.Pclass)
	}
	if filters.Embarked != "" {
		q = q.Where("?TableAlias.embarked = ?", filters.Embarked)
	}
	if filters.Survived != nil {
		q = q.Where("?TableAlias.survived = ?", *filters.Survived)
	}

	if err := q.Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

// statisticsColumns whitelists the groupable columns; anything else is a
// validation error upstream.
var statisticsColumns = map[string]bool{
	"pclass":   true,
	"sex":      true,
	"embarked": true,
}

func (p *passengers) Statistics(ctx context.Context, groupBy string) ([]StatisticsGroup, error) {
	if groupBy != "" && !statisticsColumns[groupBy] {
		return nil, goerrors.New(
			fmt.Sprintf("cannot group statistics by %q", groupBy),
			goerrors.CategoryValidation,
		).WithTextCode("INVALID_GROUP_BY")
	}

	var groups []StatisticsGroup

	q := p.db.NewSelect().
		Model((*Passenger)(nil)).
		ColumnExpr("count(*) AS count").
		ColumnExpr("round(avg(CASE WHEN survived THEN 100.0 ELSE 0.0 END), 1) AS survival_rate").
		ColumnExpr("round(avg(age), 1) AS average_age").
		ColumnExpr("round(avg(fare), 1) AS average_fare")

	if groupBy == "" {
		q = q.ColumnExpr("'all' AS category")
	} else {
		q = q.ColumnExpr("cast(? AS TEXT) AS category", bun.Ident(groupBy)).
			GroupExpr("?", bun.Ident(groupBy)).
			OrderExpr("category ASC")
	}

	if err := q.Scan(ctx, &groups); err != nil {
		return nil, err
	}

	return groups, nil
}

func (p *passengers) Create(ctx context.Context, record *Passenger) (*Passenger, error) {
	_, err := p.db.NewInsert().
		Model(record).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert passenger")
	}

	return record, nil
}

func (p *passengers) Update(ctx context.Context, record *Passenger) (*Passenger, error) {
	res, err := p.db.NewUpdate().
		Model(record).
		WherePK().
		Exec(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update passenger")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrPassengerNotFound
	}

	return record, nil
}

func (p *passengers) Delete(ctx context.Context, id int64) error {
	res, err := p.db.NewDelete().
		Model((*Passenger)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete passenger")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrPassengerNotFound
	}

	return nil
}

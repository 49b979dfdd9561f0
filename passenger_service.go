package titanic

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// PassengerInput carries a full passenger payload for creation.
type PassengerInput struct {
	Name     string   `json:"name"`
	Sex      string   `json:"sex"`
	Age      *float64 `json:"age"`
	Survived bool     `json:"survived"`
	Pclass   int      `json:"pclass"`
	Fare     *float64 `json:"fare"`
	Embarked *string  `json:"embarked"`
}

// PassengerPatch carries a partial update; nil fields are left untouched.
type PassengerPatch struct {
	Name     *string  `json:"name"`
	Sex      *string  `json:"sex"`
	Age      *float64 `json:"age"`
	Survived *bool    `json:"survived"`
	Pclass   *int     `json:"pclass"`
	Fare     *float64 `json:"fare"`
	Embarked *string  `json:"embarked"`
}

// PassengerService implements the passenger use cases over the repository,
// normalizing inputs and wrapping results in the standard envelope.
type PassengerService struct {
	repo   Passengers
	logger Logger
}

func NewPassengerService(repo Passengers) *PassengerService {
	return &PassengerService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *PassengerService) WithLogger(logger Logger) *PassengerService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *PassengerService) GetAll(ctx context.Context, skip, limit int) (*StandardResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	records, total, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		s.logger.Error("passenger list error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list passengers")
	}

	return SuccessResponseCount(
		AsList(records),
		fmt.Sprintf("%d passengers retrieved", len(records)),
		total,
		map[string]any{"page": (skip / limit) + 1, "limit": limit},
	), nil
}

func (s *PassengerService) GetByID(ctx context.Context, id int64) (*StandardResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("passenger get error", "error", err, "id", id)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve passenger")
	}

	if record == nil {
		return nil, ErrPassengerNotFound
	}

	return SuccessResponse(record, "passenger found"), nil
}

func (s *PassengerService) SearchAdvanced(ctx context.Context, filters PassengerFilters) (*StandardResponse, error) {
	if filters.Sex != "" {
		filters.Sex = strings.ToLower(filters.Sex)
		if filters.Sex != "male" && filters.Sex != "female" {
			return nil, goerrors.New("sex must be 'male' or 'female'", goerrors.CategoryValidation).
				WithTextCode("INVALID_SEX")
		}
	}

	if filters.Embarked != "" {
		filters.Embarked = strings.ToUpper(filters.Embarked)
		if !isValidPort(filters.Embarked) {
			return nil, goerrors.New("embarkation port must be C, S or Q", goerrors.CategoryValidation).
				WithTextCode("INVALID_PORT")
		}
	}

	if filters.MinAge != nil && filters.MaxAge != nil && *filters.MinAge > *filters.MaxAge {
		return nil, goerrors.New("min_age must be lower than max_age", goerrors.CategoryValidation).
			WithTextCode("INVALID_AGE_RANGE")
	}

	records, err := s.repo.Search(ctx, filters)
	if err != nil {
		s.logger.Error("passenger search error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to search passengers")
	}

	survivalRate := 0.0
	if len(records) > 0 {
		survivors := 0
		for _, p := range records {
			if p.Survived {
				survivors++
			}
		}
		survivalRate = round1(float64(survivors) / float64(len(records)) * 100)
	}

	return SuccessResponseCount(
		AsList(records),
		fmt.Sprintf("%d passengers found", len(records)),
		len(records),
		map[string]any{"survival_rate": survivalRate},
	), nil
}

func (s *PassengerService) GetStatistics(ctx context.Context, groupBy string) (*StandardResponse, error) {
	groups, err := s.repo.Statistics(ctx, groupBy)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) && richErr.Category == goerrors.CategoryValidation {
			return nil, err
		}
		s.logger.Error("passenger statistics error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to compute statistics")
	}

	metadata := map[string]any{}
	if groupBy != "" {
		metadata["group_by"] = groupBy
	}

	return SuccessResponseCount(
		AsList(groups),
		fmt.Sprintf("%d statistic groups computed", len(groups)),
		len(groups),
		metadata,
	), nil
}

func (s *PassengerService) Create(ctx context.Context, input PassengerInput) (*StandardResponse, error) {
	record := &Passenger{
		Name:     strings.TrimSpace(input.Name),
		Sex:      strings.ToLower(input.Sex),
		Age:      input.Age,
		Survived: input.Survived,
		Pclass:   input.Pclass,
		Fare:     input.Fare,
	}

	if input.Embarked != nil {
		port := strings.ToUpper(strings.TrimSpace(*input.Embarked))
		if port != "" {
			record.Embarked = &port
		}
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		s.logger.Error("passenger create error", "error", err)
		return nil, err
	}

	return SuccessResponse(created, "passenger created"), nil
}

func (s *PassengerService) Update(ctx context.Context, id int64, patch PassengerPatch) (*StandardResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("passenger update lookup error", "error", err, "id", id)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve passenger")
	}

	if record == nil {
		return nil, ErrPassengerNotFound
	}

	if patch.Name != nil {
		record.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Sex != nil {
		record.Sex = strings.ToLower(*patch.Sex)
	}
	if patch.Age != nil {
		record.Age = patch.Age
	}
	if patch.Survived != nil {
		record.Survived = *patch.Survived
	}
	if patch.Pclass != nil {
		record.Pclass = *patch.Pclass
	}
	if patch.Fare != nil {
		record.Fare = patch.Fare
	}
	if patch.Embarked != nil {
		port := strings.ToUpper(strings.TrimSpace(*patch.Embarked))
		record.Embarked = &port
	}

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		s.logger.Error("passenger update error", "error", err, "id", id)
		return nil, err
	}

	return SuccessResponse(updated, "passenger updated"), nil
}

func (s *PassengerService) Delete(ctx context.Context, id int64) (*StandardResponse, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		if goerrors.Is(err, ErrPassengerNotFound) {
			return nil, ErrPassengerNotFound
		}
		s.logger.Error("passenger delete error", "error", err, "id", id)
		return nil, err
	}

	return SuccessResponseCount(nil, "passenger deleted", 0, nil), nil
}

func isValidPort(port string) bool {
	switch port {
	case "C", "S", "Q":
		return true
	default:
		return false
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

package titanic_test

import (
	"context"
	"testing"

	titanic "github.com/goliatone/titanic-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestPassengerGetAll(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPassengers)

	records := []*titanic.Passenger{
		{ID: 1, Name: "Braund, Mr. Owen Harris", Sex: "male", Pclass: 3},
		{ID: 2, Name: "Cumings, Mrs. John Bradley", Sex: "female", Pclass: 1, Survived: true},
	}
	repo.On("List", ctx, 0, 100).Return(records, 10, nil)

	service := titanic.NewPassengerService(repo)

	res, err := service.GetAll(ctx, 0, 100)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Len(t, res.Data, 2)
	assert.Equal(t, 10, res.Count)
	assert.Equal(t, 1, res.Metadata["page"])
	assert.Equal(t, 100, res.Metadata["limit"])
}

func TestPassengerGetAllClampsPagination(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPassengers)

	// negative skip and oversized limit never reach the repository
	repo.On("List", ctx, 0, 1000).Return([]*titanic.Passenger{}, 0, nil)

	service := titanic.NewPassengerService(repo)

	_, err := service.GetAll(ctx, -5, 9999)
	require.NoError(t, err)

	repo.AssertCalled(t, "List", ctx, 0, 1000)
}

func TestPassengerGetByID(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPassengers)

	repo.On("GetByID", ctx, int64(1)).Return(&titanic.Passenger{ID: 1, Name: "Moran, Mr. James"}, nil)
	repo.On("GetByID", ctx, int64(404)).Return(nil, nil)

	service := titanic.NewPassengerService(repo)

	res, err := service.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Len(t, res.Data, 1)
	assert.Equal(t, 1, res.Count)

	_, err = service.GetByID(ctx, 404)
	require.Error(t, err)
	assert.Equal(t, "PASSENGER_NOT_FOUND", titanic.TextCode(err))
}

func TestPassengerSearchAdvanced(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPassengers)

	// normalized filters: sex lowercased, port uppercased
	expected := titanic.PassengerFilters{Sex: "female", Embarked: "C"}
	repo.On("Search", ctx, expected).Return([]*titanic.Passenger{
		{ID: 2, Sex: "female", Survived: true},
		{ID: 10, Sex: "female", Survived: false},
	}, nil)

	service := titanic.NewPassengerService(repo)

	res, err := service.SearchAdvanced(ctx, titanic.PassengerFilters{Sex: "FEMALE", Embarked: "c"})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 50.0, res.Metadata["survival_rate"])
}

func TestPassengerSearchAdvancedValidation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPassengers)
	service := titanic.NewPassengerService(repo)

	t.Run("rejects unknown sex", func(t *testing.T) {
		_, err := service.SearchAdvanced(ctx, titanic.PassengerFilters{Sex: "other"})
		require.Error(t, err)
		assert.Equal(t, "INVALID_SEX", titanic.TextCode(err))
	})

	t.Run("rejects unknown port", func(t *testing.T) {
		_, err := service.SearchAdvanced(ctx, titanic.PassengerFilters{Embarked: "X"})
		require.Error(t, err)
		assert.Equal(t, "INVALID_PORT", titanic.TextCode(err))
	})

	t.Run("rejects inverted age range", func(t *testing.T) {
		_, err := service.SearchAdvanced(ctx, titanic.PassengerFilters{
			MinAge: floatPtr(50),
			MaxAge: floatPtr(10),
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_AGE_RANGE", titanic.TextCode(err))
	})

	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestPassengerStatistics(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPassengers)

	repo.On("Statistics", ctx, "pclass").Return([]titanic.StatisticsGroup{
		{Category: "1", Count: 3, SurvivalRate: 66.7},
		{Category: "2", Count: 1, SurvivalRate: 100.0},
		{Category: "3", Count: 6, SurvivalRate: 33.3},
	}, nil)

	service := titanic.NewPassengerService(repo)

	res, err := service.GetStatistics(ctx, "pclass")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, "pclass", res.Metadata["group_by"])
}

func TestPassengerStatisticsInvalidGroup(t *testing.T) {
	ctx := context.Background()

	db := titanic.NewPassengersRepository(nil)
	service := titanic.NewPassengerService(db)

	// the whitelist rejects the group before any query runs, so a nil DB
	// never gets touched
	_, err := service.GetStatistics(ctx, "fare")
	require.Error(t, err)
	assert.Equal(t, "INVALID_GROUP_BY", titanic.TextCode(err))
}

func TestPassengerCreateNormalizes(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPassengers)

	var created *titanic.Passenger
	repo.On("Create", ctx, mock.AnythingOfType("*titanic.Passenger")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*titanic.Passenger)
			created.ID = 11
		}).
		Return(&titanic.Passenger{ID: 11}, nil)

	service := titanic.NewPassengerService(repo)

	_, err := service.Create(ctx, titanic.PassengerInput{
		Name:     "  Dawson, Mr. Jack ",
		Sex:      "MALE",
		Pclass:   3,
		Fare:     floatPtr(7.25),
		Embarked: strPtr(" s "),
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "Dawson, Mr. Jack", created.Name)
	assert.Equal(t, "male", created.Sex)
	require.NotNil(t, created.Embarked)
	assert.Equal(t, "S", *created.Embarked)
}

func TestPassengerUpdatePartialPatch(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPassengers)

	existing := &titanic.Passenger{
		ID:     1,
		Name:   "Braund, Mr. Owen Harris",
		Sex:    "male",
		Age:    floatPtr(22),
		Pclass: 3,
		Fare:   floatPtr(7.25),
	}

	repo.On("GetByID", ctx, int64(1)).Return(existing, nil)

	var updated *titanic.Passenger
	repo.On("Update", ctx, mock.AnythingOfType("*titanic.Passenger")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*titanic.Passenger)
		}).
		Return(existing, nil)

	service := titanic.NewPassengerService(repo)

	_, err := service.Update(ctx, 1, titanic.PassengerPatch{
		Age: floatPtr(23),
	})
	require.NoError(t, err)

	require.NotNil(t, updated)
	assert.Equal(t, 23.0, *updated.Age)
	// untouched fields survive the patch
	assert.Equal(t, "Braund, Mr. Owen Harris", updated.Name)
	assert.Equal(t, "male", updated.Sex)
	assert.Equal(t, 3, updated.Pclass)
}

func TestPassengerUpdateMissing(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPassengers)

	repo.On("GetByID", ctx, int64(404)).Return(nil, nil)

	service := titanic.NewPassengerService(repo)

	_, err := service.Update(ctx, 404, titanic.PassengerPatch{Age: floatPtr(23)})
	require.Error(t, err)
	assert.Equal(t, "PASSENGER_NOT_FOUND", titanic.TextCode(err))

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPassengerDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPassengers)

	repo.On("Delete", ctx, int64(1)).Return(nil)
	repo.On("Delete", ctx, int64(404)).Return(titanic.ErrPassengerNotFound)

	service := titanic.NewPassengerService(repo)

	res, err := service.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 0, res.Count)

	_, err = service.Delete(ctx, 404)
	require.Error(t, err)
	assert.Equal(t, "PASSENGER_NOT_FOUND", titanic.TextCode(err))
}

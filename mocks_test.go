package titanic_test

import (
	"context"
	"time"

	titanic "github.com/goliatone/titanic-api"
	"github.com/stretchr/testify/mock"
)

// MockCredentialStore implements titanic.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindByEmail(ctx context.Context, email string) (*titanic.User, error) {
	args := m.Called(ctx, email)
	var user *titanic.User
	if v := args.Get(0); v != nil {
		user = v.(*titanic.User)
	}
	return user, args.Error(1)
}

func (m *MockCredentialStore) FindByID(ctx context.Context, id int64) (*titanic.User, error) {
	args := m.Called(ctx, id)
	var user *titanic.User
	if v := args.Get(0); v != nil {
		user = v.(*titanic.User)
	}
	return user, args.Error(1)
}

func (m *MockCredentialStore) Insert(ctx context.Context, user *titanic.User) (*titanic.User, error) {
	args := m.Called(ctx, user)
	var created *titanic.User
	if v := args.Get(0); v != nil {
		created = v.(*titanic.User)
	}
	return created, args.Error(1)
}

// MockConfig implements titanic.Config
type MockConfig struct {
	mock.Mock
}

func (m *MockConfig) GetSigningKey() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetSigningMethod() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetContextKey() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetTokenTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

func (m *MockConfig) GetTokenLookup() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetAuthScheme() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetIssuer() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetAudience() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func newMockConfig() *MockConfig {
	mockConfig := new(MockConfig)
	mockConfig.On("GetSigningKey").Return("test-signing-key")
	mockConfig.On("GetSigningMethod").Return("HS256")
	mockConfig.On("GetContextKey").Return("user")
	mockConfig.On("GetTokenTTL").Return(30 * time.Minute)
	mockConfig.On("GetTokenLookup").Return("header:Authorization")
	mockConfig.On("GetAuthScheme").Return("Bearer")
	mockConfig.On("GetIssuer").Return("test-issuer")
	mockConfig.On("GetAudience").Return([]string{"test:audience"})
	return mockConfig
}

// MockPassengers implements titanic.Passengers
type MockPassengers struct {
	mock.Mock
}

func (m *MockPassengers) List(ctx context.Context, skip, limit int) ([]*titanic.Passenger, int, error) {
	args := m.Called(ctx, skip, limit)
	var records []*titanic.Passenger
	if v := args.Get(0); v != nil {
		records = v.([]*titanic.Passenger)
	}
	return records, args.Int(1), args.Error(2)
}

func (m *MockPassengers) GetByID(ctx context.Context, id int64) (*titanic.Passenger, error) {
	args := m.Called(ctx, id)
	var record *titanic.Passenger
	if v := args.Get(0); v != nil {
		record = v.(*titanic.Passenger)
	}
	return record, args.Error(1)
}

func (m *MockPassengers) Search(ctx context.Context, filters titanic.PassengerFilters) ([]*titanic.Passenger, error) {
	args := m.Called(ctx, filters)
	var records []*titanic.Passenger
	if v := args.Get(0); v != nil {
		records = v.([]*titanic.Passenger)
	}
	return records, args.Error(1)
}

func (m *MockPassengers) Statistics(ctx context.Context, groupBy string) ([]titanic.StatisticsGroup, error) {
	args := m.Called(ctx, groupBy)
	var groups []titanic.StatisticsGroup
	if v := args.Get(0); v != nil {
		groups = v.([]titanic.StatisticsGroup)
	}
	return groups, args.Error(1)
}

func (m *MockPassengers) Create(ctx context.Context, record *titanic.Passenger) (*titanic.Passenger, error) {
	args := m.Called(ctx, record)
	var created *titanic.Passenger
	if v := args.Get(0); v != nil {
		created = v.(*titanic.Passenger)
	}
	return created, args.Error(1)
}

func (m *MockPassengers) Update(ctx context.Context, record *titanic.Passenger) (*titanic.Passenger, error) {
	args := m.Called(ctx, record)
	var updated *titanic.Passenger
	if v := args.Get(0); v != nil {
		updated = v.(*titanic.Passenger)
	}
	return updated, args.Error(1)
}

func (m *MockPassengers) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

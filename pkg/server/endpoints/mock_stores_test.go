package endpoints

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
)

// MockPapersStore implements store.PapersStore for testing using testify/mock
type MockPapersStore struct {
	mock.Mock
}

func NewMockPapersStore() *MockPapersStore {
	return &MockPapersStore{}
}

func (m *MockPapersStore) FindByIdentifier(ctx context.Context, identifier string) (*store.Paper, error) {
	args := m.Called(identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Paper), args.Error(1)
}

func (m *MockPapersStore) InsertPaper(ctx context.Context, paper *store.Paper) (*store.Paper, error) {
	args := m.Called(paper)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Paper), args.Error(1)
}

func (m *MockPapersStore) ListPapers(ctx context.Context) ([]store.Paper, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Paper), args.Error(1)
}

func (m *MockPapersStore) SearchByAuthorName(ctx context.Context, name string) ([]store.Paper, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Paper), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity(ctx context.Context) error {
	args := m.Called()
	return args.Error(0)
}

// MockResolver implements server.Resolver for testing using testify/mock
type MockResolver struct {
	mock.Mock
}

func NewMockResolver() *MockResolver {
	return &MockResolver{}
}

func (m *MockResolver) Resolve(ctx context.Context, externalID string) (*store.Paper, error) {
	args := m.Called(externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Paper), args.Error(1)
}

package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bandkon/kon/internal/repository"
)

// MockBandCatalogRepository is a mock implementation of repository.BandCatalogRepository.
type MockBandCatalogRepository struct {
	mock.Mock
}

// Save mocks the Save method.
func (m *MockBandCatalogRepository) Save(ctx context.Context, name string, bandTable map[string][]string, scheduleTable map[string][]bool, roomSpec []int) error {
	args := m.Called(ctx, name, bandTable, scheduleTable, roomSpec)
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockBandCatalogRepository) Get(ctx context.Context, name string) (*repository.BandCatalogEntry, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.BandCatalogEntry), args.Error(1)
}

// List mocks the List method.
func (m *MockBandCatalogRepository) List(ctx context.Context) ([]*repository.BandCatalogEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.BandCatalogEntry), args.Error(1)
}

// ExpectSave sets up an expectation for Save.
func (m *MockBandCatalogRepository) ExpectSave(name string, err error) *mock.Call {
	return m.On("Save", mock.Anything, name, mock.Anything, mock.Anything, mock.Anything).Return(err)
}

// ExpectGet sets up an expectation for Get.
func (m *MockBandCatalogRepository) ExpectGet(name string, entry *repository.BandCatalogEntry, err error) *mock.Call {
	return m.On("Get", mock.Anything, name).Return(entry, err)
}

// MockRunRepository is a mock implementation of repository.RunRepository.
type MockRunRepository struct {
	mock.Mock
}

// CreateRun mocks the CreateRun method.
func (m *MockRunRepository) CreateRun(ctx context.Context, expectedCount uint64) (int64, error) {
	args := m.Called(ctx, expectedCount)
	return args.Get(0).(int64), args.Error(1)
}

// RecordAssignment mocks the RecordAssignment method.
func (m *MockRunRepository) RecordAssignment(ctx context.Context, runID int64, sequence int, table map[string]string) error {
	args := m.Called(ctx, runID, sequence, table)
	return args.Error(0)
}

// CompleteRun mocks the CompleteRun method.
func (m *MockRunRepository) CompleteRun(ctx context.Context, runID int64, status repository.RunStatus, errMessage string) error {
	args := m.Called(ctx, runID, status, errMessage)
	return args.Error(0)
}

// ListRuns mocks the ListRuns method.
func (m *MockRunRepository) ListRuns(ctx context.Context, limit int) ([]*repository.ScheduleRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.ScheduleRun), args.Error(1)
}

// GetRun mocks the GetRun method.
func (m *MockRunRepository) GetRun(ctx context.Context, runID int64) (*repository.ScheduleRun, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ScheduleRun), args.Error(1)
}

// ListAssignments mocks the ListAssignments method.
func (m *MockRunRepository) ListAssignments(ctx context.Context, runID int64) ([]*repository.ScheduleAssignment, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.ScheduleAssignment), args.Error(1)
}

// ExpectCreateRun sets up an expectation for CreateRun.
func (m *MockRunRepository) ExpectCreateRun(expectedCount uint64, runID int64, err error) *mock.Call {
	return m.On("CreateRun", mock.Anything, expectedCount).Return(runID, err)
}

// ExpectCompleteRun sets up an expectation for CompleteRun.
func (m *MockRunRepository) ExpectCompleteRun(runID int64, status repository.RunStatus, err error) *mock.Call {
	return m.On("CompleteRun", mock.Anything, runID, status, mock.Anything).Return(err)
}

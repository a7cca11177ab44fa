package service

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

// MockChatAPI mocks the ChatAPI interface
type MockChatAPI struct {
	mock.Mock
}

func (m *MockChatAPI) ListSessions(ctx context.Context) ([]domain.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockChatAPI) CreateSession(ctx context.Context, title string) (*domain.Session, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockChatAPI) DeleteSession(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChatAPI) ListMessages(ctx context.Context, id uuid.UUID) ([]domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockChatAPI) SendMessage(ctx context.Context, id uuid.UUID, content string) (*domain.Message, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockChatAPI) SendMessageImage(ctx context.Context, id uuid.UUID, content, filename string, image io.Reader) (*domain.Message, error) {
	args := m.Called(ctx, id, content, filename, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

// MockProfileAPI mocks the ProfileAPI interface
type MockProfileAPI struct {
	mock.Mock
}

func (m *MockProfileAPI) GetProfile(ctx context.Context) (*domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileAPI) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// memState is an in-memory domain.StateRepository for tests
type memState struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemState() *memState {
	return &memState{values: map[string]string{}}
}

func (s *memState) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *memState) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memState) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/shouni/gemini-storybook/pkg/domain"
)

// --- Mocks ---

type mockStoryService struct {
	generateFunc func(ctx context.Context, prompt string) ([]domain.Scene, error)
}

func (m *mockStoryService) GenerateStory(ctx context.Context, prompt string) ([]domain.Scene, error) {
	return m.generateFunc(ctx, prompt)
}

type mockAssetService struct {
	imageFunc func(ctx context.Context, req domain.ImageRequest) (string, error)
	audioFunc func(ctx context.Context, req domain.AudioRequest) (string, error)
}

func (m *mockAssetService) GenerateImage(ctx context.Context, req domain.ImageRequest) (string, error) {
	return m.imageFunc(ctx, req)
}

func (m *mockAssetService) GenerateAudio(ctx context.Context, req domain.AudioRequest) (string, error) {
	return m.audioFunc(ctx, req)
}

// mockPersistence はインメモリの Persistence 実装です。
type mockPersistence struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account // username キー
	stories  map[string]*domain.Story
}

func newMockPersistence() *mockPersistence {
	return &mockPersistence{
		accounts: make(map[string]*domain.Account),
		stories:  make(map[string]*domain.Story),
	}
}

func (m *mockPersistence) CreateAccount(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[account.Username]; exists {
		return fmt.Errorf("create account: %w", domain.ErrUsernameTaken)
	}
	m.accounts[account.Username] = account
	return nil
}

func (m *mockPersistence) GetAccountByUsername(_ context.Context, username string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[username]
	if !ok {
		return nil, fmt.Errorf("account %q: %w", username, domain.ErrNotFound)
	}
	return account, nil
}

func (m *mockPersistence) SaveStory(_ context.Context, story *domain.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stories[story.ID] = story
	return nil
}

func (m *mockPersistence) ListStoriesByOwner(_ context.Context, ownerID string) ([]domain.StorySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	summaries := make([]domain.StorySummary, 0)
	for _, story := range m.stories {
		if story.OwnerID == ownerID {
			summaries = append(summaries, domain.StorySummary{
				ID: story.ID, Title: story.Title, Prompt: story.Prompt, CreatedAt: story.CreatedAt,
			})
		}
	}
	return summaries, nil
}

func (m *mockPersistence) GetStory(_ context.Context, id string) (*domain.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	story, ok := m.stories[id]
	if !ok {
		return nil, fmt.Errorf("story %q: %w", id, domain.ErrNotFound)
	}
	return story, nil
}

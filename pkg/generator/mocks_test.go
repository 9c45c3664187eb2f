package generator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"google.golang.org/genai"

	"github.com/shouni/gemini-storybook/pkg/domain"
)

// --- Mocks ---

type mockModel struct {
	storyFunc  func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)
	imageFunc  func(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error)
	speechFunc func(ctx context.Context, prompt, voice string) (*genai.GenerateContentResponse, error)

	storyCalls  atomic.Int32
	imageCalls  atomic.Int32
	speechCalls atomic.Int32
}

func (m *mockModel) GenerateStory(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	m.storyCalls.Add(1)
	if m.storyFunc != nil {
		return m.storyFunc(ctx, prompt)
	}
	return &genai.GenerateContentResponse{}, nil
}

func (m *mockModel) GenerateImage(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error) {
	m.imageCalls.Add(1)
	if m.imageFunc != nil {
		return m.imageFunc(ctx, parts, aspectRatio)
	}
	return &genai.GenerateContentResponse{}, nil
}

func (m *mockModel) GenerateSpeech(ctx context.Context, prompt, voice string) (*genai.GenerateContentResponse, error) {
	m.speechCalls.Add(1)
	if m.speechFunc != nil {
		return m.speechFunc(ctx, prompt, voice)
	}
	return &genai.GenerateContentResponse{}, nil
}

// mockCache は一意制約付きのインメモリ AssetCache です。
type mockCache struct {
	mu        sync.Mutex
	entries   map[string]string
	lookupErr error
	insertErr error
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]string)}
}

func cacheKey(kind domain.AssetKind, fp string) string {
	return string(kind) + "/" + fp
}

func (m *mockCache) LookupAsset(_ context.Context, kind domain.AssetKind, fp string) (string, bool, error) {
	if m.lookupErr != nil {
		return "", false, m.lookupErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	reference, ok := m.entries[cacheKey(kind, fp)]
	return reference, ok, nil
}

func (m *mockCache) InsertAsset(_ context.Context, kind domain.AssetKind, fp, reference string) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := cacheKey(kind, fp)
	if _, exists := m.entries[key]; exists {
		return fmt.Errorf("insert asset: %w", domain.ErrDuplicateAsset)
	}
	m.entries[key] = reference
	return nil
}

func (m *mockCache) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// --- Response builders ---

func inlineResponse(mime string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mime, Data: data}}},
			},
		}},
	}
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{Text: text}},
			},
		}},
	}
}

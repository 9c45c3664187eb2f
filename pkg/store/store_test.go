package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/gemini-storybook/pkg/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "storybook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAssetCache_挿入と照会(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, ok, err := s.LookupAsset(ctx, domain.AssetKindImage, "0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.False(t, ok, "未挿入キーはミスになるはず")

	require.NoError(t, s.InsertAsset(ctx, domain.AssetKindImage, "0123456789abcdef0123456789abcdef", "data:image/png;base64,AAAA"))

	reference, ok, err := s.LookupAsset(ctx, domain.AssetKindImage, "0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "data:image/png;base64,AAAA", reference)
}

func TestAssetCache_同一キーの二重挿入はErrDuplicateAsset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertAsset(ctx, domain.AssetKindAudio, "feedfacefeedfacefeedfacefeedface", "data:audio/wav;base64,AAAA"))

	err := s.InsertAsset(ctx, domain.AssetKindAudio, "feedfacefeedfacefeedfacefeedface", "data:audio/wav;base64,BBBB")
	assert.ErrorIs(t, err, domain.ErrDuplicateAsset)

	// 先勝ちの値が残る
	reference, ok, err := s.LookupAsset(ctx, domain.AssetKindAudio, "feedfacefeedfacefeedfacefeedface")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "data:audio/wav;base64,AAAA", reference)
}

func TestAssetCache_種別が異なれば同じfingerprintでも別キー(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	fp := "00000000000000000000000000000001"
	require.NoError(t, s.InsertAsset(ctx, domain.AssetKindImage, fp, "image-ref"))
	require.NoError(t, s.InsertAsset(ctx, domain.AssetKindAudio, fp, "audio-ref"))

	imageRef, _, err := s.LookupAsset(ctx, domain.AssetKindImage, fp)
	require.NoError(t, err)
	audioRef, _, err := s.LookupAsset(ctx, domain.AssetKindAudio, fp)
	require.NoError(t, err)
	assert.NotEqual(t, imageRef, audioRef)
}

func TestAssetCache_並行挿入でも行は1つ(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const workers = 10
	fp := "deadbeefdeadbeefdeadbeefdeadbeef"

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.InsertAsset(ctx, domain.AssetKindAudio, fp, "data:audio/wav;base64,AAAA")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrDuplicateAsset):
		default:
			t.Fatalf("想定外のエラー: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "成功する挿入はちょうど1件のはず")

	n, err := s.CountAssets(ctx, domain.AssetKindAudio, fp)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAccounts_作成と重複(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	account := &domain.Account{
		ID:           "acc-1",
		Username:     "zunda",
		PasswordHash: "$2a$10$fakehash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.CreateAccount(ctx, account))

	duplicate := &domain.Account{ID: "acc-2", Username: "zunda", PasswordHash: "x", CreatedAt: time.Now().UTC()}
	assert.ErrorIs(t, s.CreateAccount(ctx, duplicate), domain.ErrUsernameTaken)

	loaded, err := s.GetAccountByUsername(ctx, "zunda")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", loaded.ID)
	assert.Equal(t, account.PasswordHash, loaded.PasswordHash)

	_, err = s.GetAccountByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStories_保存と復元(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	owner := &domain.Account{ID: "acc-1", Username: "writer", PasswordHash: "x", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.CreateAccount(ctx, owner))

	story := &domain.Story{
		ID:      "story-1",
		OwnerID: owner.ID,
		Title:   "竜の昼寝",
		Prompt:  "a story about a sleepy dragon",
		Scenes: []domain.Scene{
			{Text: "The dragon woke up.", ImagePrompt: "a dragon waking", AudioPrompt: "Speak excitedly", ImageURL: "data:image/png;base64,AA", AudioURL: "data:audio/wav;base64,BB"},
			{Text: "It yawned.", ImagePrompt: "a dragon yawning", AudioPrompt: "Speak sleepily"},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.SaveStory(ctx, story))

	loaded, err := s.GetStory(ctx, "story-1")
	require.NoError(t, err)
	assert.Equal(t, story.Title, loaded.Title)
	require.Len(t, loaded.Scenes, 2)
	assert.Equal(t, story.Scenes[0], loaded.Scenes[0])
	assert.True(t, loaded.Scenes[0].IsComplete())
	assert.False(t, loaded.Scenes[1].IsComplete())

	summaries, err := s.ListStoriesByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "竜の昼寝", summaries[0].Title)

	_, err = s.GetStory(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shouni/gemini-storybook/pkg/domain"
)

// SaveStory は物語全体を1行として保存します。Scenes は JSON として
// シリアライズされます。
func (s *Store) SaveStory(ctx context.Context, story *domain.Story) error {
	scenesJSON, err := json.Marshal(story.Scenes)
	if err != nil {
		return fmt.Errorf("marshal scenes: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO stories (id, owner_id, title, prompt, scenes_json, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		story.ID, story.OwnerID, story.Title, story.Prompt, string(scenesJSON),
		story.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert story: %w", err)
	}
	return nil
}

// ListStoriesByOwner は所有者の物語を新しい順で一覧します。
// 一覧には Scenes を含めません（行が大きくなるため）。
func (s *Store) ListStoriesByOwner(ctx context.Context, ownerID string) ([]domain.StorySummary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, prompt, created_at FROM stories WHERE owner_id = ? ORDER BY created_at DESC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.StorySummary, 0)
	for rows.Next() {
		var (
			summary   domain.StorySummary
			createdAt string
		)
		if err := rows.Scan(&summary.ID, &summary.Title, &summary.Prompt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan story row: %w", err)
		}
		summary.CreatedAt = parseTimestamp(createdAt)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stories: %w", err)
	}
	return summaries, nil
}

// GetStory は ID で物語を取得し、Scenes を復元します。
func (s *Store) GetStory(ctx context.Context, id string) (*domain.Story, error) {
	var (
		story      domain.Story
		scenesJSON string
		createdAt  string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, owner_id, title, prompt, scenes_json, created_at FROM stories WHERE id = ?",
		id,
	).Scan(&story.ID, &story.OwnerID, &story.Title, &story.Prompt, &scenesJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("story %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get story: %w", err)
	}

	if err := json.Unmarshal([]byte(scenesJSON), &story.Scenes); err != nil {
		return nil, fmt.Errorf("unmarshal scenes for story %q: %w", id, err)
	}
	story.CreatedAt = parseTimestamp(createdAt)
	return &story, nil
}

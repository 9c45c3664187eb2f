package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shouni/gemini-storybook/pkg/domain"
)

// StoryGenerator はプロンプトから物語の場面構造を生成します。
type StoryGenerator struct {
	model GenerativeModel
}

// NewStoryGenerator は StoryGenerator を初期化します。
func NewStoryGenerator(model GenerativeModel) (*StoryGenerator, error) {
	if model == nil {
		return nil, fmt.Errorf("model (GenerativeModel) is required")
	}
	return &StoryGenerator{model: model}, nil
}

// GenerateStory はプロンプトから順序付きの場面列を生成します。
// JSON が解釈不能または空の場合は ErrEmptyStory を返します（再試行なし）。
func (g *StoryGenerator) GenerateStory(ctx context.Context, prompt string) ([]domain.Scene, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt is required: %w", ErrInvalidRequest)
	}

	resp, err := g.model.GenerateStory(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("物語構造の生成呼び出しに失敗しました: %w", err)
	}

	scenes := parseScenes(collectText(resp))
	if len(scenes) == 0 {
		return nil, ErrEmptyStory
	}
	return scenes, nil
}

// parseScenes はモデル出力を場面列として解釈します。JSON モードでも
// コードフェンスで包まれて返ることがあるため、先に剥がします。
// 解釈できない出力は空列に落とします。
func parseScenes(raw string) []domain.Scene {
	raw = stripCodeFence(strings.TrimSpace(raw))
	if raw == "" {
		return nil
	}

	var scenes []domain.Scene
	if err := json.Unmarshal([]byte(raw), &scenes); err != nil {
		return nil
	}
	return scenes
}

func stripCodeFence(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}

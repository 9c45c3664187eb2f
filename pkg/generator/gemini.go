package generator

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// ModelConfig は各生成経路で使うモデル名です。
type ModelConfig struct {
	TextModel   string
	ImageModel  string
	SpeechModel string
}

// GeminiModel は google.golang.org/genai クライアントを GenerativeModel に
// 適合させるアダプターです。モジュールレベルの共有クライアントは持たず、
// 構築時に注入されたものだけを使います。
type GeminiModel struct {
	client *genai.Client
	models ModelConfig
}

// NewGeminiModel は GeminiModel を初期化します。
func NewGeminiModel(client *genai.Client, models ModelConfig) (*GeminiModel, error) {
	if client == nil {
		return nil, fmt.Errorf("client (genai.Client) is required")
	}
	if models.TextModel == "" || models.ImageModel == "" || models.SpeechModel == "" {
		return nil, fmt.Errorf("models (text/image/speech) are required")
	}

	return &GeminiModel{
		client: client,
		models: models,
	}, nil
}

// sceneListSchema は物語構造生成のレスポンススキーマです。
// 各場面は本文・画像プロンプト・読み上げ指示の3フィールドを必須とします。
var sceneListSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text":        {Type: genai.TypeString},
			"imagePrompt": {Type: genai.TypeString},
			"audioPrompt": {Type: genai.TypeString},
		},
		Required: []string{"text", "imagePrompt", "audioPrompt"},
	},
}

// GenerateStory は JSON モードで場面列を生成します。
func (m *GeminiModel) GenerateStory(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   sceneListSchema,
	}
	return m.client.Models.GenerateContent(ctx, m.models.TextModel, genai.Text(prompt), config)
}

// GenerateImage は画像モダリティ出力を要求します。
func (m *GeminiModel) GenerateImage(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error) {
	contents := []*genai.Content{{Role: "user", Parts: parts}}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}
	if aspectRatio != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: aspectRatio}
	}
	return m.client.Models.GenerateContent(ctx, m.models.ImageModel, contents, config)
}

// GenerateSpeech は固定ボイスで音声モダリティ出力を要求します。
func (m *GeminiModel) GenerateSpeech(ctx context.Context, prompt, voice string) (*genai.GenerateContentResponse, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}
	return m.client.Models.GenerateContent(ctx, m.models.SpeechModel, genai.Text(prompt), config)
}

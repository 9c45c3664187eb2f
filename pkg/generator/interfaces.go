package generator

import (
	"context"

	"google.golang.org/genai"

	"github.com/shouni/gemini-storybook/pkg/domain"
)

// GenerativeModel は生成AIコラボレーターへの窓口です。レスポンスの
// candidate/part 構造は呼び出し側で解釈します。
type GenerativeModel interface {
	// GenerateStory はプロンプトから場面列の JSON を生成します。
	GenerateStory(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)
	// GenerateImage は与えられたパーツ列（プロンプト＋任意の参照画像）と
	// アスペクト比ヒントで画像を生成します。
	GenerateImage(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error)
	// GenerateSpeech は読み上げ指示込みのテキストを指定ボイスで音声化します。
	GenerateSpeech(ctx context.Context, prompt, voice string) (*genai.GenerateContentResponse, error)
}

// AssetCache は (kind, fingerprint) をキーとする解決済みアセット参照の
// 永続キャッシュです。TTL も上限もありません。
type AssetCache interface {
	LookupAsset(ctx context.Context, kind domain.AssetKind, fingerprint string) (string, bool, error)
	// InsertAsset は既存キーに対して domain.ErrDuplicateAsset を返します。
	InsertAsset(ctx context.Context, kind domain.AssetKind, fingerprint, reference string) error
}

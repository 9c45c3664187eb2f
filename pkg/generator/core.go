package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/shouni/gemini-storybook/pkg/audio"
	"github.com/shouni/gemini-storybook/pkg/domain"
	"github.com/shouni/gemini-storybook/pkg/fingerprint"
)

// AssetOptions は生成アセットの固定パラメータです。
type AssetOptions struct {
	// AspectRatio は全ての場面画像に適用するアスペクト比ヒントです。
	AspectRatio string
	// VoiceName はナレーションに使う固定ボイスです。
	VoiceName string
}

// AssetCore はアセット要求1件ごとのオーケストレーターです。
// キャッシュ照会 → （ミス時）外部生成呼び出し → ペイロード抽出 →
// 形式正規化 → キャッシュ書き込み、の順で処理します。
//
// read-then-call-then-write はトランザクションで括らないため、未知の
// fingerprint への並行リクエストは双方とも外部呼び出しを行い得ます。
// その場合2本目の書き込みは一意制約で弾かれますが、無害な競合として
// 握りつぶし、自身が計算した参照をそのまま返します。
type AssetCore struct {
	model   GenerativeModel
	cache   AssetCache
	fetcher *ReferenceFetcher
	opts    AssetOptions
}

// NewAssetCore は依存関係を注入して AssetCore を初期化します。
// fetcher は nil を許容します（参照画像なし動作）。
func NewAssetCore(model GenerativeModel, cache AssetCache, fetcher *ReferenceFetcher, opts AssetOptions) (*AssetCore, error) {
	if model == nil {
		return nil, fmt.Errorf("model (GenerativeModel) is required")
	}
	if cache == nil {
		return nil, fmt.Errorf("cache (AssetCache) is required")
	}

	return &AssetCore{
		model:   model,
		cache:   cache,
		fetcher: fetcher,
		opts:    opts,
	}, nil
}

// GenerateImage は場面画像を解決し、URL または data URI を返します。
func (c *AssetCore) GenerateImage(ctx context.Context, req domain.ImageRequest) (string, error) {
	if strings.TrimSpace(req.ImagePrompt) == "" {
		return "", fmt.Errorf("imagePrompt is required: %w", ErrInvalidRequest)
	}

	fp := fingerprint.Image(req.ImagePrompt)
	if reference, ok, err := c.cache.LookupAsset(ctx, domain.AssetKindImage, fp); err != nil {
		return "", fmt.Errorf("画像キャッシュの照会に失敗しました: %w", err)
	} else if ok {
		return reference, nil
	}

	parts := []*genai.Part{{Text: req.ImagePrompt}}
	if req.ReferenceImageURL != "" && c.fetcher != nil {
		if part := c.fetcher.PrepareImagePart(ctx, req.ReferenceImageURL); part != nil {
			parts = append(parts, part)
		}
	}

	resp, err := c.model.GenerateImage(ctx, parts, c.opts.AspectRatio)
	if err != nil {
		return "", fmt.Errorf("画像生成の呼び出しに失敗しました: %w", err)
	}

	blob, err := firstInlineData(resp)
	if err != nil {
		return "", err
	}

	reference := toDataURI(blob.MIMEType, blob.Data)
	c.storeAsset(ctx, domain.AssetKindImage, fp, reference)
	return reference, nil
}

// GenerateAudio は場面ナレーションを解決し、data URI を返します。
// ペイロードが生 PCM の場合は 24kHz 前提で WAV に組み立て、それ以外の
// MIME タイプはそのまま素通しします。
func (c *AssetCore) GenerateAudio(ctx context.Context, req domain.AudioRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", fmt.Errorf("text is required: %w", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.AudioPrompt) == "" {
		return "", fmt.Errorf("audioPrompt is required: %w", ErrInvalidRequest)
	}

	fp := fingerprint.Audio(req.AudioPrompt, req.Text)
	if reference, ok, err := c.cache.LookupAsset(ctx, domain.AssetKindAudio, fp); err != nil {
		return "", fmt.Errorf("音声キャッシュの照会に失敗しました: %w", err)
	} else if ok {
		return reference, nil
	}

	speechPrompt := req.AudioPrompt + ": " + req.Text
	resp, err := c.model.GenerateSpeech(ctx, speechPrompt, c.opts.VoiceName)
	if err != nil {
		return "", fmt.Errorf("音声生成の呼び出しに失敗しました: %w", err)
	}

	blob, err := firstInlineData(resp)
	if err != nil {
		return "", err
	}

	reference := normalizeAudioPayload(ctx, blob)
	c.storeAsset(ctx, domain.AssetKindAudio, fp, reference)
	return reference, nil
}

// normalizeAudioPayload はインライン音声ペイロードを最終表現へ変換します。
func normalizeAudioPayload(ctx context.Context, blob *genai.Blob) string {
	if !audio.IsRawPCMMime(blob.MIMEType) {
		return toDataURI(blob.MIMEType, blob.Data)
	}

	// サンプルレートは 24kHz 固定前提。宣言レートの不一致はヘッダーの
	// 誤記につながるため、補正はせず検知だけ行う。
	if declared, ok := audio.DeclaredSampleRate(blob.MIMEType); ok && declared != audio.DefaultSampleRate {
		slog.WarnContext(ctx, "宣言サンプルレートが想定と一致しません",
			"declared", declared, "assumed", audio.DefaultSampleRate, "mime", blob.MIMEType)
	}
	return audio.EncodeWAVDataURI(blob.Data, audio.DefaultSampleRate)
}

// storeAsset はキャッシュ書き込みを行います。並行リクエストとの
// 一意制約競合は無害として扱い、その他の失敗もアセット自体は解決済みの
// ため要求を落とさずログに残すだけにします。
func (c *AssetCore) storeAsset(ctx context.Context, kind domain.AssetKind, fp, reference string) {
	err := c.cache.InsertAsset(ctx, kind, fp, reference)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrDuplicateAsset):
		slog.DebugContext(ctx, "並行リクエストが同じアセットを先にキャッシュしました",
			"kind", kind, "fingerprint", fp)
	default:
		slog.WarnContext(ctx, "アセットのキャッシュ書き込みに失敗しました",
			"kind", kind, "fingerprint", fp, "error", err)
	}
}

package generator

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"

	"github.com/shouni/gemini-storybook/pkg/imgutil"
)

// ReferenceFetcher は画像生成要求に添付する参照画像を取得・整形します。
// 参照画像はあくまで補助であり、取得に失敗してもテキストのみで生成を
// 続行します（呼び出し側には nil を返します）。
type ReferenceFetcher struct {
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
}

// NewReferenceFetcher は ReferenceFetcher を初期化します。
// reader は nil を許容します（gs:// スキーム無効化）。
func NewReferenceFetcher(httpClient httpkit.ClientInterface, reader remoteio.InputReader) *ReferenceFetcher {
	return &ReferenceFetcher{
		httpClient: httpClient,
		reader:     reader,
	}
}

// PrepareImagePart は URL から参照画像を取得し、インライン添付用の
// genai.Part に変換します。失敗時は nil です。
func (f *ReferenceFetcher) PrepareImagePart(ctx context.Context, rawURL string) *genai.Part {
	data, err := f.fetchImageData(ctx, rawURL)
	if err != nil {
		slog.WarnContext(ctx, "参照画像の取得に失敗しました。テキストのみで続行します",
			"url", rawURL, "error", err)
		return nil
	}

	// アップロードサイズを抑えるため JPEG に再圧縮する（失敗時は原本のまま）
	if compressed, err := imgutil.CompressToJPEG(data, imgutil.DefaultQuality); err == nil {
		data = compressed
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		slog.WarnContext(ctx, "参照URLの内容が画像ではありません", "url", rawURL, "mime", mimeType)
		return nil
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}

func (f *ReferenceFetcher) fetchImageData(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "gs://") {
		if f.reader == nil {
			return nil, errGCSReaderUnavailable
		}
		rc, err := f.reader.Open(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	if f.httpClient == nil {
		return nil, errHTTPClientUnavailable
	}
	if safe, err := isSafeURL(rawURL); err != nil || !safe {
		return nil, err
	}
	return f.httpClient.FetchBytes(ctx, rawURL)
}

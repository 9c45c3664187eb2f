// Package adapters は外部インターフェースの具象実装を提供します。
package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// maxResponseBytes は1レスポンスあたりの読み取り上限です。参照画像の
// 取得が主用途のため、これを超えるものは扱いません。
const maxResponseBytes = 32 << 20 // 32 MiB

// HTTPFetcher は net/http ベースの httpkit.ClientInterface 実装です。
type HTTPFetcher struct {
	client *http.Client
}

var _ httpkit.ClientInterface = (*HTTPFetcher)(nil)

// NewHTTPFetcher は指定タイムアウトの HTTPFetcher を生成します。
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// DoRequest はリクエストを実行し、ボディ全体を返します。
func (f *HTTPFetcher) DoRequest(req *http.Request) ([]byte, error) {
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTPステータス異常: %s (%s)", resp.Status, req.URL)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
}

// FetchBytes は GET でボディを取得します。
func (f *HTTPFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return f.DoRequest(req)
}

// FetchAndDecodeJSON は GET して JSON を v にデコードします。
func (f *HTTPFetcher) FetchAndDecodeJSON(ctx context.Context, url string, v any) error {
	data, err := f.FetchBytes(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// PostJSONAndFetchBytes は data を JSON として POST し、ボディを返します。
func (f *HTTPFetcher) PostJSONAndFetchBytes(ctx context.Context, url string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("JSONエンコードに失敗しました: %w", err)
	}
	return f.PostRawBodyAndFetchBytes(ctx, url, payload, "application/json")
}

// PostRawBodyAndFetchBytes は生のボディを POST し、レスポンスを返します。
func (f *HTTPFetcher) PostRawBodyAndFetchBytes(ctx context.Context, url string, body []byte, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return f.DoRequest(req)
}

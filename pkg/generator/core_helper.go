package generator

import (
	"encoding/base64"

	"google.golang.org/genai"
)

// firstInlineData はレスポンスの最初の candidate から、インラインデータを
// 持つ最初の part を取り出します。それ以外の candidate / part は使いません。
// 見つからない場合は ErrNoPayload です（再試行しません）。
func firstInlineData(resp *genai.GenerateContentResponse) (*genai.Blob, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrNoPayload
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return nil, ErrNoPayload
	}

	for _, part := range candidate.Content.Parts {
		if part != nil && part.InlineData != nil {
			return part.InlineData, nil
		}
	}
	return nil, ErrNoPayload
}

// collectText はレスポンスの最初の candidate のテキスト part を連結します。
func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var text string
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text += part.Text
		}
	}
	return text
}

// toDataURI はバイナリペイロードをインライン埋め込み用の data URI に
// 包みます。
func toDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

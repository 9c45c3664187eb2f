package domain

// AssetKind は生成アセットの種別です。asset_cache テーブルの kind 列として
// そのまま永続化されます。
type AssetKind string

const (
	AssetKindImage AssetKind = "image"
	AssetKindAudio AssetKind = "audio"
)

// Valid は既知の種別かどうかを返します。
func (k AssetKind) Valid() bool {
	return k == AssetKindImage || k == AssetKindAudio
}

// ImageRequest は1場面分の画像生成要求です。
// ReferenceImageURL は任意で、指定時は参照画像としてプロンプトに添付されます。
type ImageRequest struct {
	ImagePrompt       string `json:"imagePrompt"`
	ReferenceImageURL string `json:"referenceImageUrl,omitempty"`
}

// AudioRequest は1場面分のナレーション音声生成要求です。
// AudioPrompt は読み上げ指示（語り口）、Text は読み上げ本文です。
type AudioRequest struct {
	Text        string `json:"text"`
	AudioPrompt string `json:"audioPrompt"`
}

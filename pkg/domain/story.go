package domain

import "time"

// Scene は物語を構成する1場面です。
// 生成直後は本文とプロンプトのみを持ち、アセットが解決されるたびに
// ImageURL / AudioURL がその場で埋められます（削除されることはありません）。
type Scene struct {
	Text        string `json:"text"`
	ImagePrompt string `json:"imagePrompt"`
	AudioPrompt string `json:"audioPrompt"`
	ImageURL    string `json:"imageUrl,omitempty"`
	AudioURL    string `json:"audioUrl,omitempty"`
}

// IsComplete は画像と音声の両方が解決済みかどうかを返します。
func (s Scene) IsComplete() bool {
	return s.ImageURL != "" && s.AudioURL != ""
}

// Story は保存対象となる物語全体です。Scenes は DB 上では JSON として
// シリアライズされます。
type Story struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Prompt    string    `json:"prompt"`
	Scenes    []Scene   `json:"scenes"`
	CreatedAt time.Time `json:"createdAt"`
}

// StorySummary は一覧表示用の軽量ビューです（Scenes を含みません）。
type StorySummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Account はユーザーアカウントです。PasswordHash には bcrypt ハッシュのみを
// 保持し、平文を格納してはいけません。
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

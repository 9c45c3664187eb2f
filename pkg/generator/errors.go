package generator

import "errors"

var (
	// ErrNoPayload はコラボレーターのレスポンスに利用可能なインライン
	// ペイロードが存在しなかったことを示します。再試行せず、キャッシュにも
	// 書き込まず、境界では 404 系として扱われます。
	ErrNoPayload = errors.New("no inline payload in generation response")

	// ErrEmptyStory は場面列の JSON が解釈不能または空だったことを示します。
	ErrEmptyStory = errors.New("story generation yielded no scenes")

	// ErrInvalidRequest は必須フィールド欠落を示します。キャッシュにも
	// 外部呼び出しにも到達する前に返されます。
	ErrInvalidRequest = errors.New("invalid generation request")
)

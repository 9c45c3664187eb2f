package domain

import "errors"

// ストレージ層と呼び出し側で共有するセンチネルエラー群です。
var (
	// ErrDuplicateAsset は (kind, fingerprint) の一意制約違反を示します。
	// 並行リクエストが同じアセットを書き込んだ場合に発生し、呼び出し側は
	// 無害な競合として扱います。
	ErrDuplicateAsset = errors.New("asset cache entry already exists")

	// ErrUsernameTaken はユーザー名の一意制約違反を示します。
	ErrUsernameTaken = errors.New("username already taken")

	// ErrNotFound は対象行が存在しないことを示します。
	ErrNotFound = errors.New("record not found")
)

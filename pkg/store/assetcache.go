package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shouni/gemini-storybook/pkg/domain"
)

// LookupAsset は (kind, fingerprint) をキーとするポイント読み取りです。
// 未キャッシュは (""), false, nil で返し、エラーとは区別します。
func (s *Store) LookupAsset(ctx context.Context, kind domain.AssetKind, fp string) (string, bool, error) {
	var reference string
	err := s.db.QueryRowContext(ctx,
		"SELECT reference FROM asset_cache WHERE kind = ? AND fingerprint = ?",
		string(kind), fp,
	).Scan(&reference)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup asset: %w", err)
	}
	return reference, true, nil
}

// InsertAsset は新しいキャッシュ行を挿入します。(kind, fingerprint) は
// 一意制約で保護されており、既存キーへの二重挿入は
// domain.ErrDuplicateAsset を返します。呼び出し側（オーケストレーター）は
// 並行生成の競合としてこれを握りつぶします。
func (s *Store) InsertAsset(ctx context.Context, kind domain.AssetKind, fp, reference string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO asset_cache (kind, fingerprint, reference, created_at) VALUES (?, ?, ?, ?)",
		string(kind), fp, reference, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("insert asset %s/%s: %w", kind, fp, domain.ErrDuplicateAsset)
	}
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// CountAssets は指定 fingerprint の行数を返します。一意性検証用です。
func (s *Store) CountAssets(ctx context.Context, kind domain.AssetKind, fp string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM asset_cache WHERE kind = ? AND fingerprint = ?",
		string(kind), fp,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count assets: %w", err)
	}
	return n, nil
}

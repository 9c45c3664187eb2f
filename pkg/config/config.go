// Package config はサーバーの設定を TOML ファイルと環境変数から読み込みます。
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config はサーバー全体の設定です。
type Config struct {
	// ListenAddr は HTTP サーバーの待ち受けアドレスです。
	ListenAddr string `toml:"listen_addr"`
	// DatabasePath は SQLite データベースファイルのパスです。
	DatabasePath string `toml:"database_path"`

	// GeminiAPIKey は生成AIコラボレーターの認証キーです。
	// 環境変数 GEMINI_API_KEY が設定されていればそちらを優先します。
	GeminiAPIKey string `toml:"gemini_api_key"`

	// 各生成経路のモデル名とアセット固定パラメータ。
	TextModel   string `toml:"text_model"`
	ImageModel  string `toml:"image_model"`
	SpeechModel string `toml:"speech_model"`
	VoiceName   string `toml:"voice_name"`
	AspectRatio string `toml:"aspect_ratio"`
}

// Default は既定値入りの Config を返します。
func Default() Config {
	return Config{
		ListenAddr:   ":8080",
		DatabasePath: "storybook.db",
		TextModel:    "gemini-2.5-flash",
		ImageModel:   "gemini-2.5-flash-image-preview",
		SpeechModel:  "gemini-2.5-flash-preview-tts",
		VoiceName:    "Kore",
		AspectRatio:  "16:9",
	}
}

// Load は TOML ファイルを既定値に重ねて読み込みます。path が空、または
// ファイルが存在しない場合は既定値のみを使います。
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// 設定ファイルなしでも既定値＋環境変数で動作する
		case err != nil:
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %q: %w", path, err)
			}
		}
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.GeminiAPIKey = key
	}

	return cfg, nil
}

// Validate は起動に必須の値を検証します。
func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return errors.New("gemini_api_key が設定されていません (GEMINI_API_KEY でも指定可能)")
	}
	if c.ListenAddr == "" {
		return errors.New("listen_addr が設定されていません")
	}
	if c.DatabasePath == "" {
		return errors.New("database_path が設定されていません")
	}
	return nil
}

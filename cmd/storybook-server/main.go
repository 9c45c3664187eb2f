// storybook-server は AI 物語生成バックエンドのエントリーポイントです。
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"google.golang.org/genai"

	"github.com/shouni/gemini-storybook/pkg/adapters"
	"github.com/shouni/gemini-storybook/pkg/config"
	"github.com/shouni/gemini-storybook/pkg/generator"
	"github.com/shouni/gemini-storybook/pkg/server"
	"github.com/shouni/gemini-storybook/pkg/store"
)

const referenceFetchTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "storybook.toml", "設定ファイル (TOML) のパス")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(context.Background(), *configPath); err != nil {
		slog.Error("サーバーの起動に失敗しました", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return err
	}

	model, err := generator.NewGeminiModel(client, generator.ModelConfig{
		TextModel:   cfg.TextModel,
		ImageModel:  cfg.ImageModel,
		SpeechModel: cfg.SpeechModel,
	})
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	fetcher := generator.NewReferenceFetcher(adapters.NewHTTPFetcher(referenceFetchTimeout), nil)

	assets, err := generator.NewAssetCore(model, db, fetcher, generator.AssetOptions{
		AspectRatio: cfg.AspectRatio,
		VoiceName:   cfg.VoiceName,
	})
	if err != nil {
		return err
	}

	story, err := generator.NewStoryGenerator(model)
	if err != nil {
		return err
	}

	srv, err := server.New(story, assets, db)
	if err != nil {
		return err
	}

	slog.Info("storybook-server を起動します", "addr", cfg.ListenAddr, "db", cfg.DatabasePath)
	return srv.Router().Run(cfg.ListenAddr)
}

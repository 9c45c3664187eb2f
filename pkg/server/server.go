// Package server は物語生成バックエンドの HTTP 境界です。リクエストの
// 検証とエラー種別からステータスコードへの写像のみを担当し、生成の
// 中身は generator 層に委譲します。
package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/shouni/gemini-storybook/pkg/domain"
)

// StoryService は物語構造生成の窓口です。
type StoryService interface {
	GenerateStory(ctx context.Context, prompt string) ([]domain.Scene, error)
}

// AssetService は場面アセット解決の窓口です。
type AssetService interface {
	GenerateImage(ctx context.Context, req domain.ImageRequest) (string, error)
	GenerateAudio(ctx context.Context, req domain.AudioRequest) (string, error)
}

// Persistence はアカウントと保存済み物語の永続化窓口です。
type Persistence interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error)
	SaveStory(ctx context.Context, story *domain.Story) error
	ListStoriesByOwner(ctx context.Context, ownerID string) ([]domain.StorySummary, error)
	GetStory(ctx context.Context, id string) (*domain.Story, error)
}

// Server は全ハンドラーの依存関係を保持します。
type Server struct {
	story    StoryService
	assets   AssetService
	store    Persistence
	sessions *sessionTable
}

// New は依存関係を注入して Server を初期化します。
func New(story StoryService, assets AssetService, store Persistence) (*Server, error) {
	if story == nil {
		return nil, fmt.Errorf("story (StoryService) is required")
	}
	if assets == nil {
		return nil, fmt.Errorf("assets (AssetService) is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store (Persistence) is required")
	}

	return &Server{
		story:    story,
		assets:   assets,
		store:    store,
		sessions: newSessionTable(),
	}, nil
}

// Router は全ルートを登録した gin.Engine を返します。
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.POST("/register", s.handleRegister)
		api.POST("/login", s.handleLogin)

		api.POST("/story", s.handleStory)
		api.POST("/image", s.handleImage)
		api.POST("/audio", s.handleAudio)

		authed := api.Group("", s.requireAuth())
		{
			authed.POST("/stories", s.handleSaveStory)
			authed.GET("/stories", s.handleListStories)
			authed.GET("/stories/:id", s.handleGetStory)
		}
	}

	return router
}

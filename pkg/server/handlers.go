package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shouni/gemini-storybook/pkg/domain"
	"github.com/shouni/gemini-storybook/pkg/generator"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type storyRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type saveStoryRequest struct {
	Title  string         `json:"title" binding:"required"`
	Prompt string         `json:"prompt"`
	Scenes []domain.Scene `json:"scenes" binding:"required"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateAccount(c.Request.Context(), account); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		slog.ErrorContext(c.Request.Context(), "アカウント作成に失敗しました", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": s.sessions.Issue(account.ID)})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	account, err := s.store.GetAccountByUsername(c.Request.Context(), req.Username)
	if err != nil {
		// 未登録とパスワード不一致は応答上区別しない
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": s.sessions.Issue(account.ID)})
}

func (s *Server) handleStory(c *gin.Context) {
	var req storyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	scenes, err := s.story.GenerateStory(c.Request.Context(), req.Prompt)
	if err != nil {
		s.writeGenerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scenes": scenes})
}

func (s *Server) handleImage(c *gin.Context) {
	var req domain.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ImagePrompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imagePrompt is required"})
		return
	}

	imageURL, err := s.assets.GenerateImage(c.Request.Context(), req)
	if err != nil {
		s.writeGenerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": imageURL})
}

func (s *Server) handleAudio(c *gin.Context) {
	var req domain.AudioRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" || req.AudioPrompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text and audioPrompt are required"})
		return
	}

	audioURL, err := s.assets.GenerateAudio(c.Request.Context(), req)
	if err != nil {
		s.writeGenerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audioUrl": audioURL})
}

func (s *Server) handleSaveStory(c *gin.Context) {
	var req saveStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and scenes are required"})
		return
	}

	story := &domain.Story{
		ID:        uuid.NewString(),
		OwnerID:   c.GetString(accountIDKey),
		Title:     req.Title,
		Prompt:    req.Prompt,
		Scenes:    req.Scenes,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveStory(c.Request.Context(), story); err != nil {
		slog.ErrorContext(c.Request.Context(), "物語の保存に失敗しました", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save story"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": story.ID})
}

func (s *Server) handleListStories(c *gin.Context) {
	summaries, err := s.store.ListStoriesByOwner(c.Request.Context(), c.GetString(accountIDKey))
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "物語一覧の取得に失敗しました", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list stories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stories": summaries})
}

func (s *Server) handleGetStory(c *gin.Context) {
	story, err := s.store.GetStory(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
			return
		}
		slog.ErrorContext(c.Request.Context(), "物語の取得に失敗しました", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load story"})
		return
	}
	if story.OwnerID != c.GetString(accountIDKey) {
		// 所有者以外には存在自体を知らせない
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}
	c.JSON(http.StatusOK, story)
}

// writeGenerationError は generator 層のエラー種別をステータスコードに
// 写像します。外部コラボレーター起因の失敗は詳細をログにのみ残し、
// クライアントには不透明な 500 を返します。
func (s *Server) writeGenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, generator.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, generator.ErrNoPayload), errors.Is(err, generator.ErrEmptyStory):
		c.JSON(http.StatusNotFound, gin.H{"error": "no content generated"})
	default:
		slog.ErrorContext(c.Request.Context(), "生成リクエストが失敗しました", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
	}
}

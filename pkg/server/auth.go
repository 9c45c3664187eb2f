package server

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const accountIDKey = "accountID"

// sessionTable はプロセス内の不透明トークン → アカウントID 対応表です。
// 単一プロセス前提のため、永続化も有効期限も持ちません。
type sessionTable struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func newSessionTable() *sessionTable {
	return &sessionTable{tokens: make(map[string]string)}
}

// Issue は新しいセッショントークンを発行します。
func (t *sessionTable) Issue(accountID string) string {
	token := uuid.NewString()
	t.mu.Lock()
	t.tokens[token] = accountID
	t.mu.Unlock()
	return token
}

// Resolve はトークンからアカウントIDを引きます。
func (t *sessionTable) Resolve(token string) (string, bool) {
	t.mu.RLock()
	accountID, ok := t.tokens[token]
	t.mu.RUnlock()
	return accountID, ok
}

// requireAuth は Authorization: Bearer <token> を検証し、アカウントIDを
// コンテキストに積むミドルウェアです。
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		accountID, ok := s.sessions.Resolve(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}

		c.Set(accountIDKey, accountID)
		c.Next()
	}
}

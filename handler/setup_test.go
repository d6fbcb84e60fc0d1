package handler

import (
	"bytes"
	"catalog-service/constant"
	"catalog-service/entities"
	"catalog-service/pkg/token"
	"catalog-service/repository"
	"catalog-service/repository/repotest"
	"catalog-service/service"
	"context"
	"encoding/json"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

const testOrigin = "http://localhost:3000"

type memoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memoryKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type testServer struct {
	engine *gin.Engine
	repo   repository.Repository
	tokens *token.Issuer
}

func newTestServer(t *testing.T, production bool) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidation()

	repo := repotest.Open(t)
	tokens := token.NewIssuer("test-secret", time.Hour)
	svc := service.NewService(service.Dependencies{
		Repo:   repo,
		Tokens: tokens,
		KV:     &memoryKV{values: map[string]string{}},
	})

	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()), CORS([]string{testOrigin}))
	New(svc, production).Routes(r)
	return testServer{engine: r, repo: repo, tokens: tokens}
}

func (s testServer) tokenFor(t *testing.T, user *entities.User) string {
	t.Helper()
	signed, _, err := s.tokens.Issue(user.ID, string(user.Role))
	require.NoError(t, err)
	return signed
}

func (s testServer) user(t *testing.T, email string, role constant.Role) (*entities.User, string) {
	t.Helper()
	user := repotest.User(t, s.repo, email, role)
	return user, s.tokenFor(t, user)
}

func (s testServer) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

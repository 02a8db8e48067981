package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"record_store/internal/auth"
	"record_store/internal/catalog"
	"record_store/internal/records"
	"record_store/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthn(t *testing.T, backend storage.Backend, name string) *auth.Authenticator {
	t.Helper()
	doc, err := storage.Open[auth.Users](context.Background(), backend, name)
	require.NoError(t, err)
	creds := auth.NewCredentialStore(doc, auth.NewHasher("bcrypt").WithBcryptCost(bcrypt.MinCost))
	return auth.NewAuthenticator(creds, auth.NewTokenIssuer("test-secret", 15*time.Minute), auth.NewMemoryRevoker())
}

func openRecords[T records.Record](t *testing.T, backend storage.Backend, name, resource string) *records.Store[T] {
	t.Helper()
	doc, err := storage.Open[records.Owned[T]](context.Background(), backend, name)
	require.NoError(t, err)
	return records.NewStore(doc, resource)
}

func openCatalog[T any](t *testing.T, backend storage.Backend, name, resource string) *catalog.Catalog[T] {
	t.Helper()
	doc, err := storage.Open[catalog.Entries[T]](context.Background(), backend, name)
	require.NoError(t, err)
	return catalog.New(doc, nil, resource)
}

type client struct {
	t *testing.T
	r *gin.Engine
}

// do sends body as JSON unless it is a string, which is sent as a urlencoded form
func (c client) do(method, target string, body any, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
		contentType = "application/x-www-form-urlencoded"
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	return w
}

func (c client) register(body any) {
	c.t.Helper()
	w := c.do(http.MethodPost, "/register/", body)
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())
}

func (c client) login(username, password string) string {
	c.t.Helper()
	w := c.do(http.MethodPost, "/login/", gin.H{"username": username, "password": password})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[AuthResponse](c.t, w)
	require.NotEmpty(c.t, resp.AccessToken)
	return resp.AccessToken
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func basic(username, password string) func(*http.Request) {
	return func(r *http.Request) { r.SetBasicAuth(username, password) }
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

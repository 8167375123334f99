package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/m7real/ex-mobile-server/internal/handlers"
	"github.com/m7real/ex-mobile-server/internal/models"
	"github.com/m7real/ex-mobile-server/internal/services"
	"github.com/m7real/ex-mobile-server/internal/testutils"
)

const testSecret = "test-secret"

type testEnv struct {
	app     *fiber.App
	store   *testutils.MemStore
	objects *testutils.MemObjects
	tokens  *services.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := testutils.NewMemStore()
	objects := testutils.NewMemObjects()
	tokens := services.NewTokenService(testSecret, time.Hour)
	access := services.NewAccessService(store)

	app := fiber.New(handlers.AppConfig())
	handlers.Register(app, handlers.Deps{
		Tokens:       tokens,
		Access:       access,
		Users:        services.NewUserService(store, store, tokens),
		Products:     services.NewProductService(store, store, access),
		Bookings:     services.NewBookingService(store),
		Catalog:      services.NewCatalogService(store, store),
		Images:       services.NewImageService(store, objects),
		StoreTimeout: time.Second,
	})
	return &testEnv{app: app, store: store, objects: objects, tokens: tokens}
}

// user seeds a user with role and returns its id and a bearer header.
func (e *testEnv) user(t *testing.T, email string, role models.Role) (string, string) {
	t.Helper()
	id := e.store.AddUser(models.User{Email: email, Role: role})
	token, err := e.tokens.Issue(email)
	require.NoError(t, err)
	return id.Hex(), "Bearer " + token
}

// do sends a JSON request. An empty auth omits the Authorization header.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, auth string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode(t *testing.T, raw []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

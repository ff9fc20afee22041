package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	domain "github.com/example/product-manager/domain/user"
	"github.com/example/product-manager/modules/auth"
	"github.com/example/product-manager/modules/product"
	"github.com/example/product-manager/modules/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScenarioApp serves the real auth and product services over an
// in-memory database seeded with one user.
func newScenarioApp(t *testing.T) (*fiber.App, *auth.TokenIssuer) {
	t.Helper()

	db, err := storage.Open(storage.Config{Driver: "sqlite", DSN: ":memory:"}, storage.NewSQLLogger())
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, db.Create(&domain.User{
		UserName:  "alice",
		Password:  "secret",
		FirstName: "Alice",
		LastName:  "Andersson",
	}).Error)

	issuer, err := auth.NewTokenIssuer(bytes.Repeat([]byte("k"), 32))
	require.NoError(t, err)

	authService := auth.NewAuthService(auth.NewUserRepository(db), auth.PlaintextMatcher{}, issuer)
	productService := product.NewService(product.NewRepository(db))

	return newTestApp(authService, productService), issuer
}

func login(t *testing.T, app *fiber.App, userName, password string) (int, string) {
	t.Helper()
	resp, body := doRequest(t, app, http.MethodPost, "/auth",
		AuthenticateRequest{UserName: userName, Password: password}, "")

	var tok TokenResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(body, &tok))
	}
	return resp.StatusCode, tok.Token
}

func TestScenario_ProductLifecycle(t *testing.T) {
	app, issuer := newScenarioApp(t)

	status, token := login(t, app, "alice", "secret")
	require.Equal(t, http.StatusOK, status)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "Alice", claims.GivenName)
	assert.Equal(t, "Andersson", claims.Surname)

	resp, body := doRequest(t, app, http.MethodPost, "/products", veraRequest(), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created ProductResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotZero(t, created.ID)

	resp, body = doRequest(t, app, http.MethodGet, "/products/AAA111", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got ProductResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, ProductResponse{
		ID:          created.ID,
		Name:        "Vera",
		Sku:         "AAA111",
		Description: "Black leather jacket",
		Image:       "img/url",
		Price:       199,
	}, got)

	resp, _ = doRequest(t, app, http.MethodPost, "/products", veraRequest(), token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doRequest(t, app, http.MethodGet, "/products?name=Vera", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []ProductResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	updated := veraRequest()
	updated.Description = "Winter jacket"
	resp, _ = doRequest(t, app, http.MethodPut, "/products/AAA111", updated, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, "/products/AAA111", nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, "/products/AAA111", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPut, "/products/AAA111", veraRequest(), token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, "/products/AAA111", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestScenario_SKUNeedingEscape(t *testing.T) {
	app, _ := newScenarioApp(t)

	_, token := login(t, app, "alice", "secret")

	req := veraRequest()
	req.Sku = "AB C1"
	resp, _ := doRequest(t, app, http.MethodPost, "/products", req, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	location := resp.Header.Get("Location")
	assert.Equal(t, "/products/AB%20C1", location)

	resp, body := doRequest(t, app, http.MethodGet, location, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got ProductResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "AB C1", got.Sku)

	resp, _ = doRequest(t, app, http.MethodPut, location, req, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, location, nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, location, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestScenario_WrongPassword(t *testing.T) {
	app, _ := newScenarioApp(t)

	status, token := login(t, app, "alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Empty(t, token)
}

func TestScenario_ListWithoutToken(t *testing.T) {
	app, _ := newScenarioApp(t)

	resp, _ := doRequest(t, app, http.MethodGet, "/products", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestScenario_TokenFromOtherKeyRejected(t *testing.T) {
	app, _ := newScenarioApp(t)

	other, err := auth.NewTokenIssuer(bytes.Repeat([]byte("x"), 32))
	require.NoError(t, err)
	forged, err := other.Issue(&domain.User{FirstName: "Eve", LastName: "E"})
	require.NoError(t, err)

	resp, _ := doRequest(t, app, http.MethodGet, "/products", nil, forged)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

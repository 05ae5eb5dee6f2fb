package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerTarget(t *testing.T) {
	host, scheme := swaggerTarget("portal.example.com", "", "http", "localhost:8080")
	assert.Equal(t, "portal.example.com", host)
	assert.Equal(t, "http", scheme)

	host, scheme = swaggerTarget("", "https, http", "http", "localhost:8080")
	assert.Equal(t, "localhost:8080", host)
	assert.Equal(t, "https", scheme)
}

func TestSwaggerUI(t *testing.T) {
	app := fiber.New()
	app.Get("/swagger/*", SwaggerUI("localhost:8080"))

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Host    string   `json:"host"`
		Schemes []string `json:"schemes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "example.com", doc.Host)
	assert.Equal(t, []string{"https"}, doc.Schemes)
}

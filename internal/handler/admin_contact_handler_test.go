package handler_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/handler"
)

func newAdminContactApp(svc *mockContactService) *fiber.App {
	app := fiber.New()
	handler.NewAdminContactHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/contacts"))
	return app
}

func TestAdminContactHandler_ListReturnsBareArray(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := &mockContactService{records: []dto.ContactRecord{
		{ID: "2", Name: "Grace", Email: "grace@x.com", Subject: "Later", Message: "Second", CreatedAt: created.Add(time.Hour)},
		{ID: "1", Name: "Ada", Email: "ada@x.com", Subject: "Hi", Message: "Hello", CreatedAt: created},
	}}

	resp, err := newAdminContactApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/contacts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var records []dto.ContactRecord
	decodeResponse(t, resp, &records)

	require.Len(t, records, 2)
	require.Equal(t, "Grace", records[0].Name)
	require.True(t, records[0].CreatedAt.Equal(created.Add(time.Hour)))
}

func TestAdminContactHandler_EmptyList(t *testing.T) {
	svc := &mockContactService{records: []dto.ContactRecord{}}

	resp, err := newAdminContactApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/contacts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(body))
}

func TestAdminContactHandler_ListFailure(t *testing.T) {
	svc := &mockContactService{listErr: errors.New("cursor closed")}

	resp, err := newAdminContactApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/contacts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var response envelope
	decodeResponse(t, resp, &response)
	require.False(t, response.Success)
	require.Equal(t, "Error fetching contacts", response.Message)
}

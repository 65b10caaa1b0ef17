package observability_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/observability"
)

func TestContactSubmissionsCounter(t *testing.T) {
	counter := observability.ContactSubmissions().WithLabelValues("degraded")
	before := testutil.ToFloat64(counter)

	counter.Inc()

	require.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	observability.ContactStoreAvailable().Set(1)
	observability.ContactSubmissions().WithLabelValues("persisted").Inc()

	app := fiber.New()
	app.Get("/metrics", observability.MetricsHandler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "contact_store_available 1")
	require.Contains(t, string(body), `contact_submissions_total{outcome="persisted"}`)
	require.Contains(t, string(body), "go_goroutines")
}

package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/contact", "", gin.H{
		"name":    "Ana García",
		"email":   "ana@example.com",
		"project": "We need a new online store with Stripe payments",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["lead_id"])
	require.Len(t, env.leads.leads, 1)
	assert.Equal(t, "landing", env.leads.leads[1].Source)
}

func TestContactEndpointValidation(t *testing.T) {
	env := newTestEnv(t)

	// Binding failures.
	for _, payload := range []gin.H{
		{},
		{"name": "Ana", "project": "A very long description of the project"},
		{"name": "Ana", "email": "not-an-email", "project": "A very long description of the project"},
	} {
		w := env.do(t, http.MethodPost, "/api/contact", "", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	// Passes binding, fails the project-length rule.
	w := env.do(t, http.MethodPost, "/api/contact", "", gin.H{
		"name": "Ana", "email": "ana@example.com", "project": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.leads.leads)
}

func TestSubscribeEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/newsletter", "", gin.H{"email": "ana@example.com"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/newsletter", "", gin.H{"email": "ana@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "already subscribed", decodeBody(t, w)["message"])

	w = env.do(t, http.MethodPost, "/api/newsletter", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnsubscribeEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/newsletter/unsubscribe", "", gin.H{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	env.do(t, http.MethodPost, "/api/newsletter", "", gin.H{"email": "ana@example.com"})
	w = env.do(t, http.MethodPost, "/api/newsletter/unsubscribe", "", gin.H{"email": "ana@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Resubscribing reports the reactivation.
	w = env.do(t, http.MethodPost, "/api/newsletter", "", gin.H{"email": "ana@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "subscription reactivated", decodeBody(t, w)["message"])
}

func TestTrackEventEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/analytics/event", "", gin.H{
		"event": "page_view",
		"url":   "https://agenciadev.es/",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/analytics/event", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicConfigEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "hola@agenciadev.es", body["contact_email"])
}

func TestCalculateROIEndpoint(t *testing.T) {
	env := newTestEnv(t)

	// An empty body gets the calculator defaults.
	w := env.do(t, http.MethodPost, "/api/calculate-roi", "", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(200), body["weekly_savings"])
	assert.Equal(t, true, body["profitable"])

	w = env.do(t, http.MethodPost, "/api/calculate-roi", "", gin.H{
		"hours": 40, "hourly_cost": 50, "investment": 10000,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1600), decodeBody(t, w)["weekly_savings"])
}

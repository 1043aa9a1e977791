package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuel14gregorioo/Agencia/internal/model"
)

func testResendServer(t *testing.T, status int, response string) (*ResendClient, *resendRequest, *http.Header) {
	t.Helper()

	var captured resendRequest
	var headers http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	c := NewResendClient("re_test_key", "Agencia <hola@agenciadev.es>")
	c.endpoint = server.URL
	return c, &captured, &headers
}

func TestResendSend(t *testing.T) {
	c, captured, headers := testResendServer(t, http.StatusOK, `{"id":"email_1"}`)

	err := c.Send(context.Background(), []string{"team@agenciadev.es"}, "subject", "<p>body</p>")
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test_key", headers.Get("Authorization"))
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "Agencia <hola@agenciadev.es>", captured.From)
	assert.Equal(t, []string{"team@agenciadev.es"}, captured.To)
	assert.Equal(t, "subject", captured.Subject)
	assert.Equal(t, "<p>body</p>", captured.HTML)
}

func TestResendSendAPIError(t *testing.T) {
	c, _, _ := testResendServer(t, http.StatusUnprocessableEntity, `{"message":"invalid to address"}`)

	err := c.Send(context.Background(), []string{"bad"}, "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid to address")
	assert.Contains(t, err.Error(), "422")
}

func TestResendSendOpaqueError(t *testing.T) {
	c, _, _ := testResendServer(t, http.StatusInternalServerError, `whoops`)

	err := c.Send(context.Background(), []string{"a@b.c"}, "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestLeadMailerRoutesRecipients(t *testing.T) {
	c, captured, _ := testResendServer(t, http.StatusOK, `{"id":"email_1"}`)
	mailer := NewLeadMailer(c, "team@agenciadev.es")

	lead := &model.Lead{
		ID:      7,
		Name:    "Ana",
		Email:   "ana@example.com",
		Project: "A web shop",
		Source:  "landing",
	}

	require.NoError(t, mailer.SendLeadNotification(context.Background(), lead))
	assert.Equal(t, []string{"team@agenciadev.es"}, captured.To)

	require.NoError(t, mailer.SendLeadConfirmation(context.Background(), lead))
	assert.Equal(t, []string{"ana@example.com"}, captured.To)
}

func TestLeadMailerRequiresNotifyAddress(t *testing.T) {
	c, _, _ := testResendServer(t, http.StatusOK, `{}`)
	mailer := NewLeadMailer(c, "")

	err := mailer.SendLeadNotification(context.Background(), &model.Lead{Email: "ana@example.com"})
	assert.Error(t, err)
}

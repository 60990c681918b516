package notify

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garilangu/gari-langu/internal/config"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSMSSender_Send(t *testing.T) {
	var gotAuth string
	var gotBody smsRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sender := NewSMSSender(config.SMSGateway{
		SMSAPIURL:   server.URL,
		SMSAPIKey:   "sms_key",
		SMSSenderID: "GARILANGU",
	}, newNoopLogger())

	err := sender.Send("+255700000001", "Gari Langu: Oil Change due 01-04-2026 for T123ABC")

	require.NoError(t, err)
	assert.Equal(t, "Bearer sms_key", gotAuth)
	assert.Equal(t, "GARILANGU", gotBody.From)
	assert.Equal(t, "+255700000001", gotBody.To)
	assert.Contains(t, gotBody.Message, "Oil Change")
}

func TestSMSSender_Send_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	sender := NewSMSSender(config.SMSGateway{SMSAPIURL: server.URL}, newNoopLogger())

	err := sender.Send("+255700000001", "test")
	assert.Error(t, err)
}

func TestSMSSender_Send_NotConfigured(t *testing.T) {
	sender := NewSMSSender(config.SMSGateway{}, newNoopLogger())

	err := sender.Send("+255700000001", "test")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

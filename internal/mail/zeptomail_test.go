package mail

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeptoMailService_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Zoho-enczapikey test-key", r.Header.Get("Authorization"))

		var payload zeptoPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "noreply@ca-firm.example", payload.From.Address)
		require.Len(t, payload.To, 1)
		assert.Equal(t, "asha@example.com", payload.To[0].EmailAddress.Address)
		assert.Equal(t, "Welcome", payload.Subject)
		assert.Equal(t, "<p>Hi</p>", payload.HTMLBody)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":[{"code":"EM_104"}]}`))
	}))
	defer server.Close()

	svc := NewZeptoMailService("test-key", "noreply@ca-firm.example", "CA Back Office")
	svc.endpoint = server.URL

	err := svc.Send("asha@example.com", "Asha", "Welcome", "<p>Hi</p>")
	assert.NoError(t, err)
}

func TestZeptoMailService_SendNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"TM_4001"}}`))
	}))
	defer server.Close()

	svc := NewZeptoMailService("bad-key", "noreply@ca-firm.example", "CA Back Office")
	svc.endpoint = server.URL

	err := svc.Send("asha@example.com", "Asha", "Welcome", "<p>Hi</p>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestZeptoMailService_SkipsWithoutKey(t *testing.T) {
	svc := NewZeptoMailService("", "noreply@ca-firm.example", "CA Back Office")
	// No endpoint override: an attempted request would fail, so a nil error
	// proves the send was skipped.
	assert.NoError(t, svc.Send("asha@example.com", "Asha", "Welcome", "<p>Hi</p>"))
}

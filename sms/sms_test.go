package sms_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-airwatch/config"
	"go-airwatch/sms"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+15551234567", sms.NormalizePhone("5551234567", "+1"))
	assert.Equal(t, "+445551234567", sms.NormalizePhone("5551234567", "+44"))
	assert.Equal(t, "+15551234567", sms.NormalizePhone("+15551234567", "+44"))
	assert.Equal(t, "+15551234567", sms.NormalizePhone("  5551234567 ", "+1"))
}

func TestTruncateBody(t *testing.T) {
	short := "air quality alert"
	assert.Equal(t, short, sms.TruncateBody(short))

	exact := strings.Repeat("a", sms.MaxBodyLength)
	assert.Equal(t, exact, sms.TruncateBody(exact))

	long := strings.Repeat("a", sms.MaxBodyLength+100)
	got := sms.TruncateBody(long)
	assert.Len(t, got, sms.MaxBodyLength)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestTruncateBodyMultibyte(t *testing.T) {
	// An alert for a place like "São Paulo" or "München" must not be cut
	// mid-rune when the body runs over the limit.
	long := strings.Repeat("é", sms.MaxBodyLength) + "tail"
	got := sms.TruncateBody(long)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, sms.MaxBodyLength, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "é..."))

	exact := strings.Repeat("ü", sms.MaxBodyLength)
	assert.Equal(t, exact, sms.TruncateBody(exact))
}

func newClient(serverURL string) *sms.Client {
	return sms.NewClient(config.SMSConfig{
		BaseURL:    serverURL,
		AccountSID: "AC123",
		AuthToken:  "token",
		FromNumber: "+15550001111",
	}, "+1")
}

func TestSendSuccess(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"To":   r.PostForm.Get("To"),
			"From": r.PostForm.Get("From"),
			"Body": r.PostForm.Get("Body"),
		}
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Contains(t, r.URL.Path, "/Accounts/AC123/Messages.json")

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"sid": "SM42", "status": "queued"})
	}))
	defer server.Close()

	receipt, err := newClient(server.URL).Send(context.Background(), "5551234567", "AQI 120 expected at 3pm")
	require.NoError(t, err)
	assert.Equal(t, "SM42", receipt.MessageID)
	assert.Equal(t, "queued", receipt.Status)
	assert.Equal(t, "+15551234567", gotForm["To"])
	assert.Equal(t, "+15550001111", gotForm["From"])
}

func TestSendGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"code": 21211, "message": "invalid 'To' number"})
	}))
	defer server.Close()

	_, err := newClient(server.URL).Send(context.Background(), "bogus", "hello")
	require.Error(t, err)

	var deliveryErr *sms.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, 21211, deliveryErr.Code)
	assert.Contains(t, deliveryErr.Message, "invalid 'To' number")
}

func TestSendGatewayErrorNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("<html>nope</html>"))
	}))
	defer server.Close()

	_, err := newClient(server.URL).Send(context.Background(), "5551234567", "hello")

	var deliveryErr *sms.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, http.StatusUnauthorized, deliveryErr.Code)
	assert.Contains(t, deliveryErr.Message, "status 401")
}

func TestSendTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := newClient(server.URL).Send(context.Background(), "5551234567", "hello")
	var deliveryErr *sms.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
}

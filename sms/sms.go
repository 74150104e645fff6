package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go-airwatch/config"
)

// MaxBodyLength is the gateway's hard limit on message bodies.
const MaxBodyLength = 1600

// Receipt is what the gateway acknowledges for one accepted message.
type Receipt struct {
	MessageID string
	Status    string
}

// DeliveryError carries the gateway's error code and message for a rejected
// send. Callers treat it as recoverable per event.
type DeliveryError struct {
	Code    int
	Message string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("sms: delivery failed (code %d): %s", e.Code, e.Message)
}

type Client struct {
	baseURL            string
	accountSID         string
	authToken          string
	fromNumber         string
	defaultCountryCode string
	httpClient         *http.Client
}

func NewClient(cfg config.SMSConfig, defaultCountryCode string) *Client {
	return &Client{
		baseURL:            cfg.BaseURL,
		accountSID:         cfg.AccountSID,
		authToken:          cfg.AuthToken,
		fromNumber:         cfg.FromNumber,
		defaultCountryCode: defaultCountryCode,
		httpClient:         &http.Client{Timeout: 15 * time.Second},
	}
}

// gatewayResponse covers both the success and error payload of the gateway.
type gatewayResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Send delivers one SMS. The destination is normalized to E.164 form and the
// body truncated to the gateway limit before sending. Exactly one outbound
// message per successful call; no retries happen here.
func (c *Client) Send(ctx context.Context, to, body string) (Receipt, error) {
	form := url.Values{}
	form.Set("To", NormalizePhone(to, c.defaultCountryCode))
	form.Set("From", c.fromNumber)
	form.Set("Body", TruncateBody(body))

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Receipt{}, fmt.Errorf("sms: create request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Receipt{}, &DeliveryError{Message: err.Error()}
	}
	defer resp.Body.Close()

	var payload gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		// Keep the HTTP status when the body gives us nothing; a 401 and a
		// 500 need different operator responses.
		return Receipt{}, &DeliveryError{
			Code:    resp.StatusCode,
			Message: fmt.Sprintf("unreadable gateway response (status %d): %v", resp.StatusCode, err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Receipt{}, &DeliveryError{Code: payload.Code, Message: payload.Message}
	}

	return Receipt{MessageID: payload.SID, Status: payload.Status}, nil
}

// NormalizePhone prepends the default country code when the stored number has
// no "+" prefix; numbers already in E.164 form pass through unchanged.
func NormalizePhone(number, defaultCountryCode string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, "+") {
		return number
	}
	return defaultCountryCode + number
}

// TruncateBody caps the body at MaxBodyLength characters, replacing the tail
// of the budget with an ellipsis marker when it has to cut. The limit counts
// runes, not bytes, so multibyte place names are never split mid-character.
func TruncateBody(body string) string {
	if utf8.RuneCountInString(body) <= MaxBodyLength {
		return body
	}
	runes := []rune(body)
	return string(runes[:MaxBodyLength-3]) + "..."
}

package middleware

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAuthToken = "test-auth-token"

// signTwilioRequest builds the signature the way Twilio documents it: the
// full URL (query string included) concatenated with the sorted form
// parameters, HMAC-SHA1 under the auth token, base64 encoded.
func signTwilioRequest(fullURL string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := fullURL
	for _, k := range keys {
		data += k + form.Get(k)
	}

	h := hmac.New(sha1.New, []byte(testAuthToken))
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func newSignatureTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/webhook", ValidateTwilioSignature(testAuthToken), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func postSigned(t *testing.T, app *fiber.App, target string, form url.Values, signature string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if signature != "" {
		req.Header.Set("X-Twilio-Signature", signature)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestValidateTwilioSignatureAccepts(t *testing.T) {
	app := newSignatureTestApp()
	form := url.Values{
		"From": {"whatsapp:+917888888888"},
		"Body": {"hello"},
	}
	sig := signTwilioRequest("http://example.com/webhook", form)

	resp := postSigned(t, app, "http://example.com/webhook", form, sig)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestValidateTwilioSignatureIncludesQueryString(t *testing.T) {
	app := newSignatureTestApp()
	form := url.Values{"Body": {"hello"}}

	// Signing the query-stripped URL must not validate.
	bare := signTwilioRequest("http://example.com/webhook", form)
	resp := postSigned(t, app, "http://example.com/webhook?foo=bar", form, bare)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	full := signTwilioRequest("http://example.com/webhook?foo=bar", form)
	resp = postSigned(t, app, "http://example.com/webhook?foo=bar", form, full)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestValidateTwilioSignatureRejects(t *testing.T) {
	app := newSignatureTestApp()
	form := url.Values{"Body": {"hello"}}

	resp := postSigned(t, app, "http://example.com/webhook", form, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postSigned(t, app, "http://example.com/webhook", form, "bogus-signature")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

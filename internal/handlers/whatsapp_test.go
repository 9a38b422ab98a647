package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asheemsiwach08/homi-apis/internal/models"
	"github.com/asheemsiwach08/homi-apis/internal/storage"
)

type fakeMessageSender struct {
	sent []string
}

func (f *fakeMessageSender) SendMessage(phone string, body string) error {
	f.sent = append(f.sent, body)
	return nil
}

func newWebhookTestApp() (*fiber.App, *storage.MemoryStore, *fakeMessageSender) {
	store := storage.NewMemoryStore()
	sender := &fakeMessageSender{}
	// The lead service is only reached for status-check messages, which
	// these tests do not exercise.
	handler := NewWhatsAppHandler(store, sender, nil)

	app := fiber.New()
	app.Post("/api_v1/whatsapp/webhook", handler.HandleWebhook)
	app.Get("/api_v1/whatsapp/messages", handler.ListMessages)
	return app, store, sender
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestWebhookPersistsAndReplies(t *testing.T) {
	app, store, sender := newWebhookTestApp()

	resp := postForm(t, app, "/api_v1/whatsapp/webhook", url.Values{
		"MessageSid": {"SM123"},
		"From":       {"whatsapp:+917888888888"},
		"Body":       {"hello"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Non-status messages get the usage hint.
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "application status")

	inbound, err := store.GetWhatsAppMessages("+917888888888", models.MessageDirectionInbound, 10)
	require.NoError(t, err)
	require.Len(t, inbound, 1)
	assert.Equal(t, "hello", inbound[0].Body)

	outbound, err := store.GetWhatsAppMessages("+917888888888", models.MessageDirectionOutbound, 10)
	require.NoError(t, err)
	assert.Len(t, outbound, 1)
}

func TestWebhookIgnoresStatusCallbacks(t *testing.T) {
	app, store, sender := newWebhookTestApp()

	// Delivery status callbacks have no Body.
	resp := postForm(t, app, "/api_v1/whatsapp/webhook", url.Values{
		"MessageSid": {"SM124"},
		"From":       {"whatsapp:+917888888888"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, sender.sent)

	msgs, err := store.GetWhatsAppMessages("", "", 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestListMessagesRejectsBadDirection(t *testing.T) {
	app, _, _ := newWebhookTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api_v1/whatsapp/messages?direction=sideways", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIsStatusCheckRequest(t *testing.T) {
	assert.True(t, isStatusCheckRequest("Check my application status please"))
	assert.True(t, isStatusCheckRequest("LOAN STATUS"))
	assert.False(t, isStatusCheckRequest("hello there"))
}

package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

func TestWebhookNotifier(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Posts the notification as JSON", func(t *testing.T) {
		t.Parallel()

		var received domain.Notification
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		notifier := NewWebhookNotifier(server.URL)
		err := notifier.Notify(ctx, domain.Notification{Title: "Goals ring closed", Body: "Every goal done."})

		require.NoError(t, err)
		assert.Equal(t, "Goals ring closed", received.Title)
		assert.Equal(t, "Every goal done.", received.Body)
	})

	t.Run("4xx and 5xx responses are errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		notifier := NewWebhookNotifier(server.URL)
		err := notifier.Notify(ctx, domain.Notification{Title: "x"})

		assert.ErrorContains(t, err, "502")
	})

	t.Run("Unreachable endpoint is an error", func(t *testing.T) {
		t.Parallel()

		notifier := NewWebhookNotifier("http://127.0.0.1:1/unreachable")
		err := notifier.Notify(ctx, domain.Notification{Title: "x"})
		assert.Error(t, err)
	})
}

func TestLogNotifier(t *testing.T) {
	t.Parallel()
	notifier := NewLogNotifier()
	assert.NoError(t, notifier.Notify(context.Background(), domain.Notification{Title: "x", Body: "y"}))
}

package webhook

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/municipal_incidents/internal/config"
	"github.com/shenikar/municipal_incidents/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(url string, retries int) *WebhookWorker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewWebhookWorker(nil, logger, &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "s3cret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: retries,
		WebhookBaseDelay:  time.Millisecond,
	})
}

func TestGenerateHMACSHA256(t *testing.T) {
	sig1 := generateHMACSHA256(`{"a":1}`, "key")
	sig2 := generateHMACSHA256(`{"a":1}`, "key")
	sig3 := generateHMACSHA256(`{"a":2}`, "key")
	assert.Len(t, sig1, 64)
	assert.Equal(t, sig1, sig2)
	assert.NotEqual(t, sig1, sig3)
}

func TestDeliver_SignsAndSucceeds(t *testing.T) {
	payload := `{"incident_id":"x","new_state":"done"}`
	var gotSig, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get(signatureHeader)
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	w := newTestWorker(srv.URL, 3)
	ok := w.deliver(context.Background(), models.StateChangeEvent{IncidentID: uuid.New()}, payload)

	require.True(t, ok)
	assert.Equal(t, payload, gotBody)
	assert.Equal(t, generateHMACSHA256(payload, "s3cret"), gotSig)
}

func TestDeliver_RetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := newTestWorker(srv.URL, 3)
	assert.True(t, w.deliver(context.Background(), models.StateChangeEvent{}, "{}"))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDeliver_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	w := newTestWorker(srv.URL, 2)
	assert.False(t, w.deliver(context.Background(), models.StateChangeEvent{}, "{}"))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDeliver_NoURL(t *testing.T) {
	w := newTestWorker("", 3)
	assert.False(t, w.deliver(context.Background(), models.StateChangeEvent{}, "{}"))
}

package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/garrettladley/boldrelay/internal/service/webhook"
)

func TestInstrument(t *testing.T) {
	t.Parallel()

	m := New()
	h := m.Instrument("webhook", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	for range 2 {
		req := httptest.NewRequestWithContext(t.Context(), http.MethodPost, "/api/webhook", nil)
		h(httptest.NewRecorder(), req)
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues("webhook", "400")); got != 2 {
		t.Errorf("requests{webhook,400} = %v, want 2", got)
	}
}

func TestInstrumentDefaultsToOK(t *testing.T) {
	t.Parallel()

	m := New()
	h := m.Instrument("health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	h(httptest.NewRecorder(), httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/health", nil))

	if got := testutil.ToFloat64(m.requests.WithLabelValues("health", "200")); got != 1 {
		t.Errorf("requests{health,200} = %v, want 1", got)
	}
}

func TestHandlersCountsAndForwards(t *testing.T) {
	t.Parallel()

	m := New()
	var forwarded []webhook.EventType
	next := webhook.HandlerFuncs{
		OnSaleApproved: func(_ context.Context, _ string, e webhook.Event) { forwarded = append(forwarded, e.Type) },
		OnVoidRejected: func(_ context.Context, _ string, e webhook.Event) { forwarded = append(forwarded, e.Type) },
	}
	h := m.Handlers(next)

	h.SaleApproved(t.Context(), "42", webhook.Event{Type: webhook.EventSaleApproved})
	h.SaleApproved(t.Context(), "42", webhook.Event{Type: webhook.EventSaleApproved})
	h.VoidRejected(t.Context(), "", webhook.Event{Type: webhook.EventVoidRejected})

	if got := testutil.ToFloat64(m.events.WithLabelValues("SALE_APPROVED")); got != 2 {
		t.Errorf("events{SALE_APPROVED} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.events.WithLabelValues("VOID_REJECTED")); got != 1 {
		t.Errorf("events{VOID_REJECTED} = %v, want 1", got)
	}
	if len(forwarded) != 3 {
		t.Errorf("forwarded %d events, want 3", len(forwarded))
	}
}

func TestHandlerExposition(t *testing.T) {
	t.Parallel()

	m := New()
	m.Handlers(nil).SaleRejected(t.Context(), "", webhook.Event{Type: webhook.EventSaleRejected})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `boldrelay_webhook_events_total{type="SALE_REJECTED"} 1`) {
		t.Errorf("exposition missing webhook counter:\n%s", rec.Body.String())
	}
}

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestPriceQuoterLastGoodFallback(t *testing.T) {
	var failing atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"price_usd":150.5}`)
	}))
	defer server.Close()

	quoter := NewHTTPPriceQuoter(server.URL, time.Second, nil)

	quote, err := quoter.QuoteUSD(context.Background())
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if quote != 150.5 {
		t.Fatalf("expected 150.5, got %v", quote)
	}

	failing.Store(true)
	quote, err = quoter.QuoteUSD(context.Background())
	if err != nil {
		t.Fatalf("expected last-good fallback, got error: %v", err)
	}
	if quote != 150.5 {
		t.Fatalf("expected last good quote 150.5, got %v", quote)
	}
}

func TestPriceQuoterErrorWithNoHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	quoter := NewHTTPPriceQuoter(server.URL, time.Second, nil)
	if _, err := quoter.QuoteUSD(context.Background()); err == nil {
		t.Fatalf("expected error when no quote was ever fetched")
	}
}

func TestWithRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := withRetry(ctx, 5, time.Millisecond, func(context.Context) error {
		calls++
		return fmt.Errorf("always fails")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("cancelled context should stop retries, got %d calls", calls)
	}
}

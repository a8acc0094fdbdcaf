package fantasydata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func TestFetchWeekMatchups_NormalizesAndSnapshotsRaw(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"league": map[string]any{
			"scoreboard": map[string]any{
				"matchups": []any{
					matchupNode("postevent", "Alpha Squad", "ALP", "Bravo Crew", "BRV", "Alpha Squad"),
				},
			},
		},
	}
	encoded, err := sonic.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal fixture tree: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("authorization"); got != "Bearer token-123" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		if got := r.URL.Query().Get("week"); got != "4" {
			t.Errorf("unexpected week query: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(encoded)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:   server.URL,
		LeagueKey: "414.l.777",
		Token:     "token-123",
		Logger:    logging.NewNop(),
	})

	matchups, payloads, err := client.FetchWeekMatchups(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matchups) != 1 {
		t.Fatalf("expected one matchup, got=%d", len(matchups))
	}
	if matchups[0].WinnerAbbreviation() != "ALP" {
		t.Fatalf("expected winner ALP, got=%q", matchups[0].WinnerAbbreviation())
	}
	if len(payloads) != 1 {
		t.Fatalf("expected one raw payload snapshot, got=%d", len(payloads))
	}
	if payloads[0].Week != 4 || payloads[0].Source != "fantasydata" {
		t.Fatalf("unexpected payload metadata: %+v", payloads[0])
	}
}

func TestFetchWeekMatchups_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"league":{"scoreboard":{}}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		LeagueKey:  "414.l.777",
		Token:      "token-123",
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	matchups, _, err := client.FetchWeekMatchups(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if len(matchups) != 0 {
		t.Fatalf("expected empty pre-season scoreboard, got=%d", len(matchups))
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 attempts, got=%d", got)
	}
}

func TestFetchWeekMatchups_MissingTokenShortCircuits(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{
		BaseURL:   "http://127.0.0.1:0",
		LeagueKey: "414.l.777",
		Logger:    logging.NewNop(),
	})

	_, _, err := client.FetchWeekMatchups(context.Background(), 1)
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got=%v", err)
	}
}

func TestFetchWeekMatchups_ProviderDeniedMapsToUnauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		LeagueKey:  "414.l.777",
		Token:      "expired-token",
		MaxRetries: 3,
		Logger:     logging.NewNop(),
	})

	_, _, err := client.FetchWeekMatchups(context.Background(), 1)
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got=%v", err)
	}
}

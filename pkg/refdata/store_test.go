package refdata

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func fallbackStore() *Store {
	return New(DefaultConfig(), nil)
}

func TestFallbackDisposableMembership(t *testing.T) {
	s := fallbackStore()
	ctx := context.Background()

	for _, d := range []string{"tempmail.com", "mailinator.com", "guerrillamail.com", "yopmail.com"} {
		if !s.IsDisposable(ctx, d) {
			t.Errorf("%s should be disposable", d)
		}
	}
	for _, d := range []string{"gmail.com", "example.com", "freemail.tk"} {
		if s.IsDisposable(ctx, d) {
			t.Errorf("%s should not be disposable", d)
		}
	}
}

func TestFallbackFreeProviders(t *testing.T) {
	s := fallbackStore()
	ctx := context.Background()

	if !s.IsFreeProvider(ctx, "gmail.com") || !s.IsFreeProvider(ctx, "outlook.com") {
		t.Error("major free providers missing from fallback set")
	}
	if s.IsFreeProvider(ctx, "acme-widgets.com") {
		t.Error("corporate domain flagged as free provider")
	}
}

func TestMembershipNormalisesCase(t *testing.T) {
	s := fallbackStore()
	if !s.IsDisposable(context.Background(), " TempMail.COM ") {
		t.Error("lookup should normalise case and whitespace")
	}
}

func TestMatchesDisposablePattern(t *testing.T) {
	s := fallbackStore()

	hits := []string{"temp-mail.example", "my10minutebox.net", "burnerbox.io", "trashmail.xyz"}
	for _, d := range hits {
		if !s.MatchesDisposablePattern(d) {
			t.Errorf("%s should match a disposable pattern", d)
		}
	}
	misses := []string{"gmail.com", "example.com", "templeton.org"}
	for _, d := range misses {
		if s.MatchesDisposablePattern(d) {
			t.Errorf("%s should not match", d)
		}
	}
}

func TestTLDRiskScores(t *testing.T) {
	s := fallbackStore()
	ctx := context.Background()

	tests := []struct {
		domain   string
		score    float64
		category string
	}{
		{"example.edu", 0, TLDTrusted},
		{"example.tk", 1.0, TLDHighRisk},
		{"example.zz-unlisted", 0.15, TLDUnknown},
	}
	for _, tt := range tests {
		score, category := s.TLDRiskScore(ctx, tt.domain)
		if category != tt.category {
			t.Errorf("TLDRiskScore(%s) category = %q, want %q", tt.domain, category, tt.category)
		}
		if diff := score - tt.score; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("TLDRiskScore(%s) = %.4f, want %.4f", tt.domain, score, tt.score)
		}
	}

	com, _ := s.TLDRiskScore(ctx, "example.com")
	info, _ := s.TLDRiskScore(ctx, "example.info")
	if !(com < info) {
		t.Errorf("suspicious TLD should outrank standard: com=%.3f info=%.3f", com, info)
	}
}

func TestMetaReportsBuiltinTables(t *testing.T) {
	s := fallbackStore()
	for _, table := range []string{TableDisposable, TableFree, TableTLD} {
		meta := s.Meta(table)
		if meta.Version != "builtin" {
			t.Errorf("table %s version = %q, want builtin", table, meta.Version)
		}
		if meta.Count == 0 {
			t.Errorf("table %s count = 0", table)
		}
	}
}

func TestSnapshotReadsPublishedTable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	payload, _ := json.Marshal([]string{"published-disposable.com"})
	require.NoError(t, mr.Set("mailsift:ref:domains", string(payload)))

	cfg := DefaultConfig()
	s := New(cfg, rdb)
	ctx := context.Background()

	require.True(t, s.IsDisposable(ctx, "published-disposable.com"))
	// published table replaces the fallback set entirely
	require.False(t, s.IsDisposable(ctx, "tempmail.com"))
}

func TestSnapshotServesStaleOnOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	mr.Close()

	s := New(DefaultConfig(), rdb)
	// KV down: the fallback snapshot still answers
	if !s.IsDisposable(context.Background(), "tempmail.com") {
		t.Error("outage must not lose the compiled-in table")
	}
}

func TestRefreshPublishesAndSwaps(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := DefaultConfig()
	// no sources configured: refresh publishes the compiled-in floor
	s := New(cfg, rdb)

	report, err := s.Refresh(context.Background(), TableDisposable)
	require.NoError(t, err)
	require.Equal(t, TableDisposable, report.Table)
	require.GreaterOrEqual(t, report.Total, len(fallbackDisposableDomains))
	require.True(t, mr.Exists("mailsift:ref:domains"))
	require.True(t, mr.Exists("mailsift:ref:domains:meta"))

	meta := s.Meta(TableDisposable)
	require.NotEqual(t, "builtin", meta.Version)
	require.WithinDuration(t, time.Now(), meta.LastUpdated, time.Minute)
}

func TestRefreshUnknownTable(t *testing.T) {
	s := fallbackStore()
	_, err := s.Refresh(context.Background(), TableFree)
	require.Error(t, err)
}

package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// TLD risk categories
const (
	TLDTrusted    = "trusted"
	TLDStandard   = "standard"
	TLDSuspicious = "suspicious"
	TLDHighRisk   = "high_risk"
	TLDUnknown    = "unknown"
)

// TLDProfile describes the signup-abuse profile of a top-level domain
type TLDProfile struct {
	Category       string  `json:"category"`
	RiskMultiplier float64 `json:"risk_multiplier"`
	Description    string  `json:"description,omitempty"`
}

// tldTable is an immutable snapshot of the TLD risk map
type tldTable struct {
	profiles map[string]TLDProfile
	meta     TableMeta
}

// unknownTLDScore is the moderate default for TLDs absent from the table
const unknownTLDScore = 0.15

// TLDProfile returns the risk profile for the TLD of domain. Unknown
// TLDs get category unknown with a moderate default.
func (s *Store) TLDProfile(ctx context.Context, domain string) TLDProfile {
	tld := extractTLD(domain)
	t := s.snapshotTLD(ctx)
	if p, ok := t.profiles[tld]; ok {
		return p
	}
	return TLDProfile{Category: TLDUnknown, RiskMultiplier: 0.62, Description: "unlisted tld"}
}

// TLDRiskScore maps the profile multiplier onto [0,1]:
// clamp((multiplier - 0.2) / 2.8, 0, 1). Unknown TLDs return 0.15.
func (s *Store) TLDRiskScore(ctx context.Context, domain string) (float64, string) {
	p := s.TLDProfile(ctx, domain)
	if p.Category == TLDUnknown {
		return unknownTLDScore, p.Category
	}
	score := (p.RiskMultiplier - 0.2) / 2.8
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, p.Category
}

func extractTLD(domain string) string {
	domain = normalizeDomain(domain)
	if dot := strings.LastIndex(domain, "."); dot >= 0 {
		return domain[dot+1:]
	}
	return domain
}

func (s *Store) snapshotTLD(ctx context.Context) *tldTable {
	if s.rdb == nil {
		return s.tld.Load()
	}
	if _, fresh := s.kvCache.Get(TableTLD); fresh {
		return s.tld.Load()
	}
	s.flight.Do(TableTLD, func() {
		if t, err := s.loadTLDTable(ctx); err == nil {
			s.tld.Store(t)
			s.kvCache.SetDefault(TableTLD, true)
		} else {
			s.logf("refdata: serving stale %s table: %v", TableTLD, err)
			s.kvCache.Set(TableTLD, true, s.cfg.CacheTTL/10)
		}
	})
	return s.tld.Load()
}

func (s *Store) loadTLDTable(ctx context.Context) (*tldTable, error) {
	raw, err := s.rdb.Get(ctx, s.key(TableTLD)).Result()
	if err != nil {
		return nil, fmt.Errorf("kv read %s: %w", TableTLD, err)
	}
	profiles := make(map[string]TLDProfile)
	if err := json.Unmarshal([]byte(raw), &profiles); err != nil {
		return nil, fmt.Errorf("kv decode %s: %w", TableTLD, err)
	}
	t := &tldTable{profiles: profiles}
	if rawMeta, err := s.rdb.Get(ctx, s.metaKey(TableTLD)).Result(); err == nil {
		_ = json.Unmarshal([]byte(rawMeta), &t.meta)
	}
	if t.meta.Count == 0 {
		t.meta.Count = len(profiles)
	}
	return t, nil
}

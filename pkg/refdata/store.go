package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Table names in the KV store
const (
	TableDisposable = "domains"
	TableFree       = "free_providers"
	TableTLD        = "tld_risk"
)

// TableMeta describes a published reference table
type TableMeta struct {
	Count       int       `json:"count"`
	LastUpdated time.Time `json:"last_updated"`
	Version     string    `json:"version"`
	Sources     []string  `json:"sources"`
}

// UpdateReport summarises one refresh run
type UpdateReport struct {
	Table    string        `json:"table"`
	Fetched  int           `json:"fetched"`
	Added    int           `json:"added"`
	Removed  int           `json:"removed"`
	Total    int           `json:"total"`
	Duration time.Duration `json:"duration"`
	Sources  []string      `json:"sources"`
}

// domainTable is an immutable snapshot of a domain set
type domainTable struct {
	set  map[string]struct{}
	meta TableMeta
}

// Config controls store behaviour
type Config struct {
	RedisURL        string        `yaml:"redis_url"`
	KeyPrefix       string        `yaml:"key_prefix"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	Sources         []string      `yaml:"sources"`
	SourceToken     string        `yaml:"-"`
}

// DefaultConfig returns store defaults: 1h read cache, 6h refresh
func DefaultConfig() *Config {
	return &Config{
		KeyPrefix:       "mailsift:ref",
		CacheTTL:        time.Hour,
		RefreshInterval: 6 * time.Hour,
	}
}

// Store provides constant-time membership tests over slowly-changing
// reference tables. Tables are copy-on-write: readers take an atomic
// snapshot, refreshes build a replacement off-path and swap the pointer.
type Store struct {
	cfg     *Config
	rdb     *redis.Client
	fetcher *sourceFetcher
	kvCache *cache.Cache

	disposable atomic.Pointer[domainTable]
	free       atomic.Pointer[domainTable]
	tld        atomic.Pointer[tldTable]

	flight flightGroup

	logf func(format string, args ...any)
}

// New creates a Store backed by the given redis client (may be nil for a
// pure compiled-in fallback store). Initial snapshots come from the
// fallback sets so lookups work before the first KV read completes.
func New(cfg *Config, rdb *redis.Client) *Store {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Store{
		cfg:     cfg,
		rdb:     rdb,
		fetcher: newSourceFetcher(cfg.SourceToken),
		kvCache: cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logf:    func(string, ...any) {},
	}
	s.disposable.Store(fallbackDisposableTable())
	s.free.Store(fallbackFreeTable())
	s.tld.Store(fallbackTLDTable())
	return s
}

// SetLogger installs a log function used for refresh/outage warnings
func (s *Store) SetLogger(logf func(format string, args ...any)) {
	if logf != nil {
		s.logf = logf
	}
}

// disposablePatterns match common temp-mail host morphology anywhere in
// the host, case-insensitively.
var disposablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)temp-?mail`),
	regexp.MustCompile(`(?i)throw-?away`),
	regexp.MustCompile(`(?i)disposable`),
	regexp.MustCompile(`(?i)10minute`),
	regexp.MustCompile(`(?i)guerrilla`),
	regexp.MustCompile(`(?i)mailinator`),
	regexp.MustCompile(`(?i)trash-?mail`),
	regexp.MustCompile(`(?i)fake-?(mail|inbox)`),
	regexp.MustCompile(`(?i)burner`),
	regexp.MustCompile(`(?i)yopmail`),
	regexp.MustCompile(`(?i)spam-?box`),
}

func normalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// IsDisposable reports whether domain is in the disposable set (exact match)
func (s *Store) IsDisposable(ctx context.Context, domain string) bool {
	domain = normalizeDomain(domain)
	t := s.snapshotDisposable(ctx)
	_, ok := t.set[domain]
	return ok
}

// MatchesDisposablePattern reports whether the host matches common
// temp-mail naming patterns without being in the exact list.
func (s *Store) MatchesDisposablePattern(domain string) bool {
	domain = normalizeDomain(domain)
	for _, re := range disposablePatterns {
		if re.MatchString(domain) {
			return true
		}
	}
	return false
}

// IsFreeProvider reports whether domain is a known free mailbox provider
func (s *Store) IsFreeProvider(ctx context.Context, domain string) bool {
	domain = normalizeDomain(domain)
	t := s.snapshotFree(ctx)
	_, ok := t.set[domain]
	return ok
}

// Meta returns the metadata of the current snapshot for a table
func (s *Store) Meta(table string) TableMeta {
	switch table {
	case TableDisposable:
		return s.disposable.Load().meta
	case TableFree:
		return s.free.Load().meta
	case TableTLD:
		return s.tld.Load().meta
	}
	return TableMeta{}
}

// snapshotDisposable returns the current table, reading through to the KV
// store when the cached copy has expired. KV failures serve the stale
// snapshot; the store never fails closed on a transient outage.
func (s *Store) snapshotDisposable(ctx context.Context) *domainTable {
	if s.rdb == nil {
		return s.disposable.Load()
	}
	if _, fresh := s.kvCache.Get(TableDisposable); fresh {
		return s.disposable.Load()
	}
	s.flight.Do(TableDisposable, func() {
		if t, err := s.loadDomainTable(ctx, TableDisposable); err == nil {
			s.disposable.Store(t)
			s.kvCache.SetDefault(TableDisposable, true)
		} else {
			s.logf("refdata: serving stale %s table: %v", TableDisposable, err)
			// back off for a fraction of the TTL before retrying the KV read
			s.kvCache.Set(TableDisposable, true, s.cfg.CacheTTL/10)
		}
	})
	return s.disposable.Load()
}

func (s *Store) snapshotFree(ctx context.Context) *domainTable {
	if s.rdb == nil {
		return s.free.Load()
	}
	if _, fresh := s.kvCache.Get(TableFree); fresh {
		return s.free.Load()
	}
	s.flight.Do(TableFree, func() {
		if t, err := s.loadDomainTable(ctx, TableFree); err == nil {
			s.free.Store(t)
			s.kvCache.SetDefault(TableFree, true)
		} else {
			s.logf("refdata: serving stale %s table: %v", TableFree, err)
			s.kvCache.Set(TableFree, true, s.cfg.CacheTTL/10)
		}
	})
	return s.free.Load()
}

func (s *Store) key(table string) string     { return s.cfg.KeyPrefix + ":" + table }
func (s *Store) metaKey(table string) string { return s.cfg.KeyPrefix + ":" + table + ":meta" }

// loadDomainTable reads a published domain list and its metadata from the KV store
func (s *Store) loadDomainTable(ctx context.Context, table string) (*domainTable, error) {
	raw, err := s.rdb.Get(ctx, s.key(table)).Result()
	if err != nil {
		return nil, fmt.Errorf("kv read %s: %w", table, err)
	}
	var domains []string
	if err := json.Unmarshal([]byte(raw), &domains); err != nil {
		return nil, fmt.Errorf("kv decode %s: %w", table, err)
	}
	t := &domainTable{set: make(map[string]struct{}, len(domains))}
	for _, d := range domains {
		t.set[normalizeDomain(d)] = struct{}{}
	}
	if rawMeta, err := s.rdb.Get(ctx, s.metaKey(table)).Result(); err == nil {
		_ = json.Unmarshal([]byte(rawMeta), &t.meta)
	}
	if t.meta.Count == 0 {
		t.meta.Count = len(t.set)
	}
	return t, nil
}

// Refresh fetches the configured sources for a table, deduplicates,
// sorts and publishes the result atomically to the KV store together
// with its metadata, then swaps the in-process snapshot.
func (s *Store) Refresh(ctx context.Context, table string) (*UpdateReport, error) {
	if table != TableDisposable {
		return nil, fmt.Errorf("table %s has no refresh sources", table)
	}
	start := time.Now()

	merged := make(map[string]struct{})
	var used []string
	for _, src := range s.cfg.Sources {
		domains, err := s.fetcher.Fetch(ctx, src)
		if err != nil {
			s.logf("refdata: source %s unreachable: %v", src, err)
			continue
		}
		for _, d := range domains {
			merged[normalizeDomain(d)] = struct{}{}
		}
		used = append(used, src)
	}
	if len(used) == 0 && len(s.cfg.Sources) > 0 {
		return nil, fmt.Errorf("all %d sources unreachable", len(s.cfg.Sources))
	}
	// keep the compiled-in floor so an empty upstream can never wipe the table
	for _, d := range fallbackDisposableDomains {
		merged[d] = struct{}{}
	}

	sorted := make([]string, 0, len(merged))
	for d := range merged {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	old := s.disposable.Load()
	added, removed := diffSets(old.set, merged)

	meta := TableMeta{
		Count:       len(sorted),
		LastUpdated: time.Now().UTC(),
		Version:     fmt.Sprintf("%d", time.Now().Unix()),
		Sources:     used,
	}

	if s.rdb != nil {
		payload, _ := json.Marshal(sorted)
		metaPayload, _ := json.Marshal(meta)
		pipe := s.rdb.TxPipeline()
		pipe.Set(ctx, s.key(table), payload, 0)
		pipe.Set(ctx, s.metaKey(table), metaPayload, 0)
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("kv write %s: %w", table, err)
		}
	}

	next := &domainTable{set: merged, meta: meta}
	s.disposable.Store(next)
	s.kvCache.SetDefault(table, true)

	return &UpdateReport{
		Table:    table,
		Fetched:  len(merged),
		Added:    added,
		Removed:  removed,
		Total:    len(sorted),
		Duration: time.Since(start),
		Sources:  used,
	}, nil
}

func diffSets(old, next map[string]struct{}) (added, removed int) {
	for d := range next {
		if _, ok := old[d]; !ok {
			added++
		}
	}
	for d := range old {
		if _, ok := next[d]; !ok {
			removed++
		}
	}
	return added, removed
}

// StartRefresher runs scheduled refreshes with jitter until ctx is
// cancelled. A failed or cancelled run leaves the current snapshot intact.
func (s *Store) StartRefresher(ctx context.Context) {
	if s.cfg.RefreshInterval <= 0 || len(s.cfg.Sources) == 0 {
		return
	}
	go func() {
		for {
			jitter := time.Duration(rand.Int63n(int64(s.cfg.RefreshInterval) / 10))
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.cfg.RefreshInterval + jitter):
			}
			if report, err := s.Refresh(ctx, TableDisposable); err != nil {
				s.logf("refdata: scheduled refresh failed: %v", err)
			} else {
				s.logf("refdata: refreshed %s: %d domains (%d added, %d removed)",
					report.Table, report.Total, report.Added, report.Removed)
			}
		}
	}()
}

// flightGroup coalesces concurrent loads of the same key into one
// in-progress call so a cold start does not fan out into N fetches.
type flightGroup struct {
	mu       sync.Mutex
	inflight map[string]chan struct{}
}

// Do runs fn for key unless a call for the same key is already running,
// in which case it waits for that call instead.
func (g *flightGroup) Do(key string, fn func()) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]chan struct{})
	}
	if ch, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		<-ch
		return
	}
	ch := make(chan struct{})
	g.inflight[key] = ch
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.inflight, key)
		g.mu.Unlock()
		close(ch)
	}()
	fn()
}

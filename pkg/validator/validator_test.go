package validator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/mailsift/mailsift/pkg/config"
	"github.com/mailsift/mailsift/pkg/fingerprint"
	"github.com/mailsift/mailsift/pkg/pattern"
	"github.com/mailsift/mailsift/pkg/record"
	"github.com/mailsift/mailsift/pkg/refdata"
	"github.com/mailsift/mailsift/pkg/risk"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestValidator(opts ...Option) *Validator {
	cfgStore := config.NewStore(nil, "", time.Minute)
	ref := refdata.New(refdata.DefaultConfig(), nil)
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return New(cfgStore, ref, opts...)
}

func validate(t *testing.T, v *Validator, email string) *ValidationResult {
	t.Helper()
	res, err := v.Validate(context.Background(), Request{Email: email})
	if err != nil {
		t.Fatalf("Validate(%q): %v", email, err)
	}
	return res
}

func TestValidateRequiresEmail(t *testing.T) {
	v := newTestValidator()
	_, err := v.Validate(context.Background(), Request{Email: "   "})
	if err == nil {
		t.Fatal("missing email should error")
	}
	if KindOf(err) != KindInvalidRequest {
		t.Errorf("kind = %q, want invalid_request", KindOf(err))
	}
}

func TestValidateTypicalPersonalAddress(t *testing.T) {
	v := newTestValidator()
	res := validate(t, v, "person1.person2@gmail.com")

	if res.Decision != risk.DecisionAllow {
		t.Fatalf("decision = %s (risk=%.3f reason=%s), want allow",
			res.Decision, res.RiskScore, res.BlockReason)
	}
	if !res.Valid {
		t.Error("allowed address should be valid")
	}
	if res.RiskScore >= 0.3 {
		t.Errorf("risk = %.3f, want below the warn cutoff", res.RiskScore)
	}
	if !res.Signals.Domain.FreeProvider {
		t.Error("gmail should be flagged as a free provider")
	}
	if res.Signals.Family.Type != pattern.TypeFormatted {
		t.Errorf("pattern type = %q, want %q (dot collapse must not erase structure)",
			res.Signals.Family.Type, pattern.TypeFormatted)
	}
}

func TestValidateSequentialOnFreeProvider(t *testing.T) {
	v := newTestValidator()
	res := validate(t, v, "user123@outlook.com")

	if res.Decision != risk.DecisionWarn {
		t.Fatalf("decision = %s (risk=%.3f reason=%s), want warn",
			res.Decision, res.RiskScore, res.BlockReason)
	}
	if !res.Valid {
		t.Error("warned addresses still pass")
	}
	if !res.Signals.Detectors.Sequential.Hit {
		t.Error("sequential pattern should be detected")
	}
	if !res.Signals.Markov.IsFraud {
		t.Error("generated-account shape should read as fraud")
	}
}

func TestValidateKeyboardWalkOnRiskyTLD(t *testing.T) {
	v := newTestValidator()
	res := validate(t, v, "qwerty123@freemail.tk")

	if res.Decision != risk.DecisionWarn {
		t.Fatalf("decision = %s (risk=%.3f reason=%s), want warn",
			res.Decision, res.RiskScore, res.BlockReason)
	}
	if res.RiskScore < 0.3 || res.RiskScore >= 0.6 {
		t.Errorf("risk = %.3f, want in the warn band", res.RiskScore)
	}
	if res.Signals.Domain.TLDRiskScore != 1.0 {
		t.Errorf("tk risk = %.3f, want 1.0", res.Signals.Domain.TLDRiskScore)
	}
}

func TestValidateDisposableDomain(t *testing.T) {
	v := newTestValidator()
	res := validate(t, v, "test@tempmail.com")

	if res.Decision != risk.DecisionBlock {
		t.Fatalf("decision = %s, want block", res.Decision)
	}
	if res.RiskScore != 0.95 {
		t.Errorf("risk = %.3f, want the disposable fast-path score", res.RiskScore)
	}
	if res.BlockReason != risk.ReasonDisposableDomain {
		t.Errorf("reason = %q", res.BlockReason)
	}
	if res.Valid {
		t.Error("blocked address must not be valid")
	}
	if res.Message == "" {
		t.Error("blocked result should carry the generic message")
	}
}

func TestValidateHighEntropyLocal(t *testing.T) {
	v := newTestValidator()
	res := validate(t, v, "xk9m2qw7r4p@gmail.com")

	if res.Decision != risk.DecisionBlock {
		t.Fatalf("decision = %s (risk=%.3f reason=%s), want block",
			res.Decision, res.RiskScore, res.BlockReason)
	}
	if res.BlockReason != risk.ReasonHighEntropy {
		t.Errorf("reason = %q, want high_entropy", res.BlockReason)
	}
	if res.RiskScore != res.Signals.Format.EntropyScore {
		t.Errorf("fast-path risk %.4f should equal the entropy score %.4f",
			res.RiskScore, res.Signals.Format.EntropyScore)
	}
}

func TestValidateMalformedAddress(t *testing.T) {
	v := newTestValidator()
	res := validate(t, v, "@nodomain.com")

	if res.Decision != risk.DecisionBlock || res.RiskScore != 0.8 {
		t.Fatalf("decision=%s risk=%.3f, want block at 0.8", res.Decision, res.RiskScore)
	}
	if res.BlockReason != risk.ReasonInvalidFormat {
		t.Errorf("reason = %q", res.BlockReason)
	}
	if res.Signals.Family.Type != "unknown" {
		t.Errorf("family type = %q, want unknown for unparseable locals", res.Signals.Family.Type)
	}
}

func TestValidateResultEnvelope(t *testing.T) {
	v := newTestValidator()
	res := validate(t, v, "john.smith@example.com")

	if res.RequestID == "" {
		t.Error("request id missing")
	}
	if res.Fingerprint.Hash == "" {
		t.Error("fingerprint missing")
	}
	if res.EmailHash() == "" || len(res.EmailHash()) != 16 {
		t.Errorf("email hash = %q, want 16 hex chars", res.EmailHash())
	}
	if res.LatencyMs < 0 {
		t.Errorf("latency = %.3f", res.LatencyMs)
	}
}

func TestValidateFingerprintDeterministic(t *testing.T) {
	v := newTestValidator()
	sig := fingerprint.Signals{IP: "203.0.113.9", ASN: "13335", BotScore: "80"}

	a, err := v.Validate(context.Background(), Request{Email: "a@example.com", Signals: sig})
	if err != nil {
		t.Fatal(err)
	}
	b, err := v.Validate(context.Background(), Request{Email: "b@example.com", Signals: sig})
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint.Hash != b.Fingerprint.Hash {
		t.Error("identical signals should fingerprint identically")
	}
}

func TestDatapointNeverCarriesRawLocalPart(t *testing.T) {
	v := newTestValidator()
	for _, addr := range []string{
		"john.smith@example.com",
		"user123@outlook.com",
		"maria2026+promo@gmail.com",
		"xkjqzwvm@example.com",
	} {
		res := validate(t, v, addr)
		dp := res.Datapoint(testNow)

		local := strings.SplitN(addr, "@", 2)[0]
		for i, blob := range dp.Blobs {
			if strings.Contains(blob, local) {
				t.Errorf("blob %d leaks local part of %q: %q", i, addr, blob)
			}
		}
		if dp.EmailHash != res.EmailHash() {
			t.Error("datapoint should carry the hash, not the address")
		}
		if dp.Blobs[record.BlobEmailLocalPart] == "" {
			t.Errorf("structural projection missing for %q", addr)
		}
	}
}

func TestDatapointProjection(t *testing.T) {
	v := newTestValidator()
	res := validate(t, v, "test@tempmail.com")
	dp := res.Datapoint(testNow)

	if dp.Blobs[record.BlobDecision] != "block" {
		t.Errorf("decision blob = %q", dp.Blobs[record.BlobDecision])
	}
	if dp.Blobs[record.BlobRiskBucket] != "high" {
		t.Errorf("bucket = %q", dp.Blobs[record.BlobRiskBucket])
	}
	if dp.Blobs[record.BlobIsDisposable] != "true" {
		t.Errorf("disposable blob = %q", dp.Blobs[record.BlobIsDisposable])
	}
	if dp.Blobs[record.BlobTLD] != "com" {
		t.Errorf("tld blob = %q", dp.Blobs[record.BlobTLD])
	}
	if dp.Doubles[record.DoubleRiskScore] != 0.95 {
		t.Errorf("risk double = %.3f", dp.Doubles[record.DoubleRiskScore])
	}
	if dp.Index != res.Fingerprint.Hash {
		t.Error("index should be the fingerprint hash")
	}
}

func TestValidateFamilyVelocity(t *testing.T) {
	v := newTestValidator()
	var last *ValidationResult
	for i := 0; i < 6; i++ {
		last = validate(t, v, fmt.Sprintf("account%03d@example.com", i+100))
	}
	if last.Signals.Velocity.CountInWindow != 6 {
		t.Errorf("count = %d, want 6 same-family observations", last.Signals.Velocity.CountInWindow)
	}
	if !last.Signals.Velocity.Burst {
		t.Error("six sightings inside the window should flag a burst")
	}
}

// Synthetic campaign battery: every generator family must be caught at
// its required rate, and ordinary personal addresses must pass.
func TestDetectionRates(t *testing.T) {
	v := newTestValidator()
	rng := rand.New(rand.NewSource(42))

	detected := func(addr string) bool {
		res := validate(t, v, addr)
		return res.Decision != risk.DecisionAllow
	}
	rate := func(addrs []string) float64 {
		hits := 0
		for _, a := range addrs {
			if detected(a) {
				hits++
			}
		}
		return float64(hits) / float64(len(addrs))
	}

	freeDomains := []string{"gmail.com", "outlook.com", "yahoo.com"}
	cheapDomains := []string{"freemail.tk", "inbox-now.xyz", "mailhub.top"}
	dispDomains := []string{"tempmail.com", "mailinator.com", "getnada.com"}
	walks := []string{"qwertyuiop", "asdfghjkl", "poiuytrewq", "qwertyui", "asdfghjk"}
	consonants := []byte("xzqjkvw")
	randomPool := []byte("xk9m2qw7r4pbz5j3")

	var sequential, keyboard, plus, dated, gibberish, random, legit []string
	for i := 0; i < 100; i++ {
		prefix := []string{"user", "test", "account"}[rng.Intn(3)]
		sequential = append(sequential, fmt.Sprintf("%s%d@%s",
			prefix, 100+rng.Intn(900), cheapDomains[rng.Intn(len(cheapDomains))]))

		keyboard = append(keyboard, fmt.Sprintf("%s@%s",
			walks[rng.Intn(len(walks))], freeDomains[rng.Intn(len(freeDomains))]))

		plus = append(plus, fmt.Sprintf("contact+%s%d@%s",
			[]string{"spam", "test", "temp"}[rng.Intn(3)], rng.Intn(100),
			dispDomains[rng.Intn(len(dispDomains))]))

		name := []string{"maria", "pedro", "elena", "viktor"}[rng.Intn(4)]
		dated = append(dated, fmt.Sprintf("%s%d@%s",
			name, 2026+rng.Intn(2), cheapDomains[rng.Intn(len(cheapDomains))]))

		mash := make([]byte, 8)
		for j := range mash {
			mash[j] = consonants[rng.Intn(len(consonants))]
		}
		gibberish = append(gibberish, fmt.Sprintf("%s@%s",
			mash, freeDomains[rng.Intn(len(freeDomains))]))

		pool := append([]byte(nil), randomPool...)
		rng.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })
		random = append(random, fmt.Sprintf("%s@gmail.com", pool[:11]))

		first := []string{"john", "maria", "david", "sarah", "elena"}[rng.Intn(5)]
		last := []string{"smith", "garcia", "miller", "wilson", "larsen"}[rng.Intn(5)]
		legit = append(legit, fmt.Sprintf("%s.%s@%s",
			first, last, []string{"gmail.com", "example.com", "acme-widgets.com"}[rng.Intn(3)]))
	}

	families := []struct {
		name    string
		addrs   []string
		minRate float64
	}{
		{"sequential", sequential, 0.95},
		{"keyboard", keyboard, 0.95},
		{"plus_disposable", plus, 0.95},
		{"dated", dated, 0.95},
		{"gibberish", gibberish, 0.95},
	}

	var all []string
	for _, f := range families {
		got := rate(f.addrs)
		if got < f.minRate {
			t.Errorf("%s detection rate %.2f, want >= %.2f", f.name, got, f.minRate)
		}
		all = append(all, f.addrs...)
	}
	all = append(all, random...)
	if overall := rate(all); overall < 0.90 {
		t.Errorf("overall detection rate %.2f, want >= 0.90", overall)
	}

	if pass := 1 - rate(legit); pass < 0.90 {
		t.Errorf("legitimate pass rate %.2f, want >= 0.90", pass)
	}
}

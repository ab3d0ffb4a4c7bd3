package validator

import (
	"strings"
	"time"

	"github.com/mailsift/mailsift/pkg/detect"
	"github.com/mailsift/mailsift/pkg/email"
	"github.com/mailsift/mailsift/pkg/fingerprint"
	"github.com/mailsift/mailsift/pkg/markov"
	"github.com/mailsift/mailsift/pkg/pattern"
	"github.com/mailsift/mailsift/pkg/record"
	"github.com/mailsift/mailsift/pkg/risk"
)

// Request is one validation call
type Request struct {
	Email    string `json:"email"`
	Consumer string `json:"consumer,omitempty"`
	Flow     string `json:"flow,omitempty"`

	Signals fingerprint.Signals `json:"-"`
}

// SignalBundle is the full detector output reported in the envelope.
// The bundle reflects exactly the snapshot used to compute the decision.
type SignalBundle struct {
	Format    email.FormatCheck     `json:"format"`
	Domain    risk.DomainAssessment `json:"domain"`
	Detectors detect.Results        `json:"detectors"`
	Family    pattern.Family        `json:"patternFamily"`
	Markov    markov.EnsembleResult `json:"markov"`
	Velocity  pattern.Velocity      `json:"familyVelocity"`
}

// ValidationResult is the envelope returned to the caller
type ValidationResult struct {
	RequestID   string                  `json:"requestId"`
	Valid       bool                    `json:"valid"`
	Decision    string                  `json:"decision"`
	RiskScore   float64                 `json:"riskScore"`
	BlockReason string                  `json:"blockReason,omitempty"`
	Signals     SignalBundle            `json:"signals"`
	Fingerprint fingerprint.Fingerprint `json:"fingerprint"`
	Message     string                  `json:"message,omitempty"`
	LatencyMs   float64                 `json:"latency_ms"`

	emailHash   string
	familyLocal string
}

// EmailHash is the 16-hex hash prefix of the validated address
func (r *ValidationResult) EmailHash() string { return r.emailHash }

// Datapoint projects the result onto the positional sink schema
func (r *ValidationResult) Datapoint(ts time.Time) record.Datapoint {
	dp := record.Datapoint{
		Timestamp: ts,
		Index:     r.Fingerprint.Hash,
		EmailHash: r.emailHash,
	}

	dp.Blobs[record.BlobDecision] = r.Decision
	dp.Blobs[record.BlobBlockReason] = r.BlockReason
	dp.Blobs[record.BlobCountry] = r.Fingerprint.Country
	dp.Blobs[record.BlobRiskBucket] = record.RiskBucket(r.RiskScore)
	dp.Blobs[record.BlobDomain] = r.Signals.Domain.TLDCategory + ":" + domainOf(r)
	dp.Blobs[record.BlobTLD] = tldOf(r)
	dp.Blobs[record.BlobPatternType] = r.Signals.Family.Type
	dp.Blobs[record.BlobPatternFamily] = r.Signals.Family.Hash
	dp.Blobs[record.BlobIsDisposable] = record.Bool(r.Signals.Domain.Disposable)
	dp.Blobs[record.BlobIsFreeProvider] = record.Bool(r.Signals.Domain.FreeProvider)
	dp.Blobs[record.BlobHasPlusAddressing] = record.Bool(r.Signals.Detectors.Plus.Present)
	dp.Blobs[record.BlobHasKeyboardWalk] = record.Bool(r.Signals.Detectors.Keyboard.Hit)
	dp.Blobs[record.BlobIsGibberish] = record.Bool(!r.Signals.Detectors.Gibberish.IsNatural)
	dp.Blobs[record.BlobEmailLocalPart] = r.familyLocal

	dp.Doubles[record.DoubleRiskScore] = r.RiskScore
	dp.Doubles[record.DoubleEntropyScore] = r.Signals.Format.EntropyScore
	dp.Doubles[record.DoubleBotScore] = r.Fingerprint.BotScoreValue()
	dp.Doubles[record.DoubleASN] = r.Fingerprint.ASNValue()
	dp.Doubles[record.DoubleLatencyMs] = r.LatencyMs
	dp.Doubles[record.DoubleTLDRiskScore] = r.Signals.Domain.TLDRiskScore
	dp.Doubles[record.DoubleDomainReputationScore] = r.Signals.Domain.ReputationScore
	dp.Doubles[record.DoublePatternConfidence] = r.Signals.Family.Confidence

	return dp
}

// domainOf and tldOf read the coarse domain projections from the family
// string so the record never needs the parsed address.
func domainOf(r *ValidationResult) string {
	if at := strings.LastIndex(r.Signals.Family.String, "@"); at >= 0 {
		return r.Signals.Family.String[at+1:]
	}
	return ""
}

func tldOf(r *ValidationResult) string {
	d := domainOf(r)
	if dot := strings.LastIndex(d, "."); dot >= 0 {
		return d[dot+1:]
	}
	return d
}

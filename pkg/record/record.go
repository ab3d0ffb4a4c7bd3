package record

import "time"

// Blob positions. The sink schema is positional: consumers address
// fields by index, so positions must never be reordered or reused.
const (
	BlobDecision = iota
	BlobBlockReason
	BlobCountry
	BlobRiskBucket
	BlobDomain
	BlobTLD
	BlobPatternType
	BlobPatternFamily
	BlobIsDisposable
	BlobIsFreeProvider
	BlobHasPlusAddressing
	BlobHasKeyboardWalk
	BlobIsGibberish
	BlobEmailLocalPart
	NumBlobs
)

// Double positions
const (
	DoubleRiskScore = iota
	DoubleEntropyScore
	DoubleBotScore
	DoubleASN
	DoubleLatencyMs
	DoubleTLDRiskScore
	DoubleDomainReputationScore
	DoublePatternConfidence
	NumDoubles
)

// Datapoint is one validation projected onto the positional sink
// schema: 14 blobs, 8 doubles, 1 indexed field.
type Datapoint struct {
	Timestamp time.Time           `json:"timestamp"`
	Index     string              `json:"index"`
	Blobs     [NumBlobs]string    `json:"blobs"`
	Doubles   [NumDoubles]float64 `json:"doubles"`

	// EmailHash is the first 16 hex chars of SHA-256 of the address;
	// the address itself never appears in a datapoint.
	EmailHash string `json:"emailHash"`
}

// Decision returns the decision blob
func (d Datapoint) Decision() string { return d.Blobs[BlobDecision] }

// RiskBucket coarsens a score for aggregation dashboards
func RiskBucket(score float64) string {
	switch {
	case score >= 0.6:
		return "high"
	case score >= 0.3:
		return "medium"
	}
	return "low"
}

// Bool projects a flag onto the sink's string alphabet
func Bool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

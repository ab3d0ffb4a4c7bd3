package risk

import (
	"github.com/mailsift/mailsift/pkg/config"
	"github.com/mailsift/mailsift/pkg/detect"
	"github.com/mailsift/mailsift/pkg/email"
	"github.com/mailsift/mailsift/pkg/markov"
	"github.com/mailsift/mailsift/pkg/pattern"
)

// Decisions
const (
	DecisionAllow = "allow"
	DecisionWarn  = "warn"
	DecisionBlock = "block"
)

// Block reasons
const (
	ReasonInvalidFormat    = "invalid_format"
	ReasonDisposableDomain = "disposable_domain"
	ReasonHighEntropy      = "high_entropy"
	ReasonGibberish        = "gibberish_detected"
	ReasonSequential       = "sequential_pattern"
	ReasonDated            = "dated_pattern"
	ReasonPlusAbuse        = "plus_addressing_abuse"
	ReasonKeyboardWalk     = "keyboard_walk"
	ReasonSuspicious       = "suspicious_pattern"
	ReasonHighRiskTLD      = "high_risk_tld"
	ReasonDomainReputation = "domain_reputation"
	ReasonEntropy          = "entropy_threshold"
	ReasonMarkovFraud      = "markov_chain_fraud"
)

// entropyFastPath is the normalised entropy above which the address is
// blocked outright.
const entropyFastPath = 0.7

// Inputs bundles everything the aggregator mixes
type Inputs struct {
	Format    email.FormatCheck
	Domain    DomainAssessment
	Detectors detect.Results
	Family    pattern.Family
	Markov    markov.EnsembleResult
}

// Assessment is the aggregator's output
type Assessment struct {
	RiskScore   float64 `json:"riskScore"`
	Decision    string  `json:"decision"`
	BlockReason string  `json:"blockReason,omitempty"`
	FastPath    bool    `json:"fastPath,omitempty"`

	DomainBasedRisk float64 `json:"domainBasedRisk"`
	LocalPartRisk   float64 `json:"localPartRisk"`
}

// Aggregate combines the detector axes into a score and decision.
// Domain axes add because they are independent signals; local-part axes
// take the max because they all analyse the same string and must not
// double-count.
func Aggregate(in Inputs, cfg *config.Config) Assessment {
	if fp, ok := fastPath(in, cfg); ok {
		fp.Decision = decide(fp.RiskScore, cfg)
		return fp
	}

	w := cfg.Weights

	domainRisk := in.Domain.ReputationScore*w.DomainReputation + in.Domain.TLDRiskScore*w.TLDRisk

	patternAxis := in.Detectors.MaxRisk()
	if in.Family.RiskScore > patternAxis {
		patternAxis = in.Family.RiskScore
	}
	if !cfg.Flags.EnablePatternCheck {
		patternAxis = 0
	}

	contributions := []axis{
		{ReasonEntropy, in.Format.EntropyScore * w.Entropy},
		{patternReason(in), patternAxis * w.PatternDetection},
		{ReasonMarkovFraud, in.Markov.Risk() * w.MarkovChain},
	}
	localRisk, localReason := 0.0, ""
	for _, c := range contributions {
		if c.value > localRisk {
			localRisk, localReason = c.value, c.reason
		}
	}

	score := domainRisk + localRisk
	if score > 1 {
		score = 1
	}

	out := Assessment{
		RiskScore:       score,
		Decision:        decide(score, cfg),
		DomainBasedRisk: domainRisk,
		LocalPartRisk:   localRisk,
	}
	if out.Decision != DecisionAllow {
		out.BlockReason = dominantReason(in, cfg, localRisk, localReason)
	}
	return out
}

type axis struct {
	reason string
	value  float64
}

// fastPath applies the short-circuit rules in their fixed order
func fastPath(in Inputs, cfg *config.Config) (Assessment, bool) {
	if !in.Format.FormatValid {
		return Assessment{RiskScore: 0.8, BlockReason: ReasonInvalidFormat, FastPath: true}, true
	}
	if cfg.Flags.EnableDisposableCheck && in.Domain.Disposable {
		return Assessment{RiskScore: 0.95, BlockReason: ReasonDisposableDomain, FastPath: true}, true
	}
	if in.Format.EntropyScore > entropyFastPath {
		return Assessment{RiskScore: in.Format.EntropyScore, BlockReason: ReasonHighEntropy, FastPath: true}, true
	}
	return Assessment{}, false
}

func decide(score float64, cfg *config.Config) string {
	switch {
	case score >= cfg.Thresholds.Block:
		return DecisionBlock
	case score >= cfg.Thresholds.Warn:
		return DecisionWarn
	}
	return DecisionAllow
}

// dominantReason names the single highest-contributing axis
func dominantReason(in Inputs, cfg *config.Config, localRisk float64, localReason string) string {
	w := cfg.Weights
	best, reason := localRisk, localReason
	if v := in.Domain.TLDRiskScore * w.TLDRisk; v > best {
		best, reason = v, ReasonHighRiskTLD
	}
	if v := in.Domain.ReputationScore * w.DomainReputation; v > best {
		best, reason = v, ReasonDomainReputation
	}
	return reason
}

// patternReason distinguishes which pattern detector dominates
func patternReason(in Inputs) string {
	switch in.Detectors.Dominant() {
	case "gibberish":
		return ReasonGibberish
	case "sequential":
		return ReasonSequential
	case "dated":
		return ReasonDated
	case "plus_addressing":
		return ReasonPlusAbuse
	case "keyboard_walk":
		return ReasonKeyboardWalk
	}
	return ReasonSuspicious
}

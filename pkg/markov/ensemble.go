package markov

import "sync"

// Arbitration rule tags, recorded per decision for explainability
const (
	RuleBothAgree        = "both_agree_high_confidence"
	RuleTrigramOverride  = "3gram_high_confidence_override"
	RuleBigramGibberish  = "2gram_gibberish_detection"
	RuleDisagreeDefault  = "disagree_default_to_2gram"
	RuleHigherConfidence = "higher_confidence_wins"
)

const (
	agreeMinConf        = 0.30
	trigramOverrideConf = 0.50
	trigramOverrideLead = 1.5
	bigramGibberishConf = 0.20
	gibberishEntropy    = 6.0
)

// OrderResult is one classifier pair's verdict annotated with its
// n-gram size.
type OrderResult struct {
	NGram int `json:"order"`
	ClassResult
}

// EnsembleResult is the arbitrated verdict of the bigram and trigram
// classifier pairs.
type EnsembleResult struct {
	IsFraud    bool          `json:"isFraud"`
	Confidence float64       `json:"confidence"`
	Rule       string        `json:"rule"`
	PerOrder   []OrderResult `json:"perOrder"`
}

// Bigram returns the 2-gram pair's verdict
func (r EnsembleResult) Bigram() ClassResult { return r.PerOrder[0].ClassResult }

// Trigram returns the 3-gram pair's verdict
func (r EnsembleResult) Trigram() ClassResult { return r.PerOrder[1].ClassResult }

// Risk translates the verdict into a [0,1] contribution
func (r EnsembleResult) Risk() float64 {
	if !r.IsFraud {
		return 0
	}
	if r.Confidence > 1 {
		return 1
	}
	return r.Confidence
}

// Ensemble arbitrates between a bigram and a trigram classifier pair.
// The trigram pair sees more context but needs longer sequences to be
// sure; the bigram pair is the steadier baseline.
type Ensemble struct {
	Bigram  *Classifier
	Trigram *Classifier
}

func NewEnsemble(bigram, trigram *Classifier) *Ensemble {
	return &Ensemble{Bigram: bigram, Trigram: trigram}
}

// Classify runs both pairs and applies the arbitration rules in order
func (e *Ensemble) Classify(s string) EnsembleResult {
	bi := e.Bigram.Classify(s)
	tri := e.Trigram.Classify(s)

	res := EnsembleResult{
		PerOrder: []OrderResult{
			{NGram: 2, ClassResult: bi},
			{NGram: 3, ClassResult: tri},
		},
	}

	switch {
	case bi.IsFraud == tri.IsFraud && minf(bi.Confidence, tri.Confidence) > agreeMinConf:
		res.IsFraud = bi.IsFraud
		res.Confidence = maxf(bi.Confidence, tri.Confidence)
		res.Rule = RuleBothAgree

	case tri.Confidence > trigramOverrideConf && tri.Confidence > trigramOverrideLead*bi.Confidence:
		res.IsFraud = tri.IsFraud
		res.Confidence = tri.Confidence
		res.Rule = RuleTrigramOverride

	case bi.IsFraud && bi.Confidence > bigramGibberishConf && bi.FraudEntropy > gibberishEntropy:
		res.IsFraud = true
		res.Confidence = bi.Confidence
		res.Rule = RuleBigramGibberish

	case bi.IsFraud != tri.IsFraud:
		res.IsFraud = bi.IsFraud
		res.Confidence = bi.Confidence
		res.Rule = RuleDisagreeDefault

	default:
		if bi.Confidence >= tri.Confidence {
			res.IsFraud = bi.IsFraud
			res.Confidence = bi.Confidence
		} else {
			res.IsFraud = tri.IsFraud
			res.Confidence = tri.Confidence
		}
		res.Rule = RuleHigherConfidence
	}
	return res
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

var (
	defaultOnce     sync.Once
	defaultEnsemble *Ensemble
)

// Default returns the ensemble trained on the compiled-in seed corpora.
// Training is deterministic and runs once per process.
func Default() *Ensemble {
	defaultOnce.Do(func() {
		defaultEnsemble = TrainFromCorpora(seedLegit, seedFraud)
	})
	return defaultEnsemble
}

// TrainFromCorpora builds a fresh ensemble from explicit corpora, used
// by the offline training command. Model orders follow the n-gram
// sizes: the bigram pair conditions on one preceding char, the trigram
// pair on two.
func TrainFromCorpora(legit, fraud []string) *Ensemble {
	legitBi, fraudBi := NewModel(1), NewModel(1)
	legitTri, fraudTri := NewModel(2), NewModel(2)
	legitBi.Train(legit)
	legitTri.Train(legit)
	fraudBi.Train(fraud)
	fraudTri.Train(fraud)
	return NewEnsemble(
		NewClassifier(legitBi, fraudBi),
		NewClassifier(legitTri, fraudTri),
	)
}

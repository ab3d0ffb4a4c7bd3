package markov

// ClassResult is one model pair's verdict on a sequence
type ClassResult struct {
	LegitEntropy float64 `json:"legitEntropy"`
	FraudEntropy float64 `json:"fraudEntropy"`
	IsFraud      bool    `json:"isFraud"`
	Confidence   float64 `json:"confidence"`
}

// Classifier scores a sequence under a legitimate and a fraud model of
// the same order; the model with the lower cross-entropy wins.
type Classifier struct {
	Legit *Model
	Fraud *Model
}

// NewClassifier pairs two trained models. Both must share an order.
func NewClassifier(legit, fraud *Model) *Classifier {
	return &Classifier{Legit: legit, Fraud: fraud}
}

// Order reports the shared model order
func (c *Classifier) Order() int { return c.Legit.Order }

// Classify compares cross-entropies. Confidence is the relative entropy
// gap: 0 when the models cannot tell the sequence apart.
func (c *Classifier) Classify(s string) ClassResult {
	hl := c.Legit.CrossEntropy(s)
	hf := c.Fraud.CrossEntropy(s)

	res := ClassResult{
		LegitEntropy: hl,
		FraudEntropy: hf,
		IsFraud:      hf < hl,
	}
	max := hl
	if hf > max {
		max = hf
	}
	if max > 0 {
		diff := hl - hf
		if diff < 0 {
			diff = -diff
		}
		res.Confidence = diff / max
	}
	return res
}

package markov

import "testing"

func TestClassifierConfidenceZeroWhenIndistinguishable(t *testing.T) {
	legit, fraud := NewModel(1), NewModel(1)
	c := NewClassifier(legit, fraud)
	// untrained models score every sequence identically
	r := c.Classify("whatever")
	if r.Confidence != 0 {
		t.Errorf("confidence = %.4f, want 0 for identical entropies", r.Confidence)
	}
	if r.IsFraud {
		t.Error("tie should not read as fraud")
	}
}

func TestClassifierPrefersTrainedSide(t *testing.T) {
	legit, fraud := NewModel(1), NewModel(1)
	legit.Train(seedLegit)
	fraud.Train(seedFraud)
	c := NewClassifier(legit, fraud)

	if r := c.Classify("john.smith"); r.IsFraud {
		t.Errorf("john.smith read as fraud (hl=%.2f hf=%.2f)", r.LegitEntropy, r.FraudEntropy)
	}
	if r := c.Classify("user123"); !r.IsFraud {
		t.Errorf("user123 read as legit (hl=%.2f hf=%.2f)", r.LegitEntropy, r.FraudEntropy)
	}
}

func TestDefaultEnsembleSeparates(t *testing.T) {
	e := Default()

	legit := []string{"john.smith", "maria.garcia", "jsmith", "laura.sanchez", "coffee.lover"}
	for _, s := range legit {
		if r := e.Classify(s); r.IsFraud {
			t.Errorf("%q read as fraud via %s (conf=%.2f)", s, r.Rule, r.Confidence)
		}
	}

	fraud := []string{"user123", "user12345", "test123", "qwerty123", "xk9m2qw7r4p", "bonus123"}
	for _, s := range fraud {
		r := e.Classify(s)
		if !r.IsFraud {
			t.Errorf("%q read as legit via %s (conf=%.2f)", s, r.Rule, r.Confidence)
		}
		if r.Risk() <= 0 {
			t.Errorf("%q fraud verdict should carry positive risk", s)
		}
	}
}

func TestEnsembleRuleIsAlwaysTagged(t *testing.T) {
	e := Default()
	known := map[string]bool{
		RuleBothAgree: true, RuleTrigramOverride: true, RuleBigramGibberish: true,
		RuleDisagreeDefault: true, RuleHigherConfidence: true,
	}
	for _, s := range []string{"john.smith", "user123", "xk9m2qw7r4p", "a", "zzz"} {
		r := e.Classify(s)
		if !known[r.Rule] {
			t.Errorf("Classify(%q) rule = %q, not a known tag", s, r.Rule)
		}
		if len(r.PerOrder) != 2 || r.PerOrder[0].NGram != 2 || r.PerOrder[1].NGram != 3 {
			t.Errorf("Classify(%q) per-order records malformed: %+v", s, r.PerOrder)
		}
	}
}

func TestEnsembleBothAgreeRule(t *testing.T) {
	// untrained legit models leave every transition at the uniform floor,
	// so a sequence the fraud models memorised wins at high confidence on
	// both orders
	legitBi, legitTri := NewModel(1), NewModel(2)
	fraudBi, fraudTri := NewModel(1), NewModel(2)
	fraudBi.Train([]string{"aaaaaaaa"})
	fraudTri.Train([]string{"aaaaaaaa"})
	e := NewEnsemble(NewClassifier(legitBi, fraudBi), NewClassifier(legitTri, fraudTri))

	r := e.Classify("aaaaaaaa")
	if !r.IsFraud {
		t.Fatal("memorised sequence should read as fraud")
	}
	if r.Rule != RuleBothAgree {
		t.Errorf("rule = %q, want %q", r.Rule, RuleBothAgree)
	}
	if r.Confidence <= agreeMinConf {
		t.Errorf("confidence = %.2f, want > %.2f", r.Confidence, agreeMinConf)
	}
}

func TestEnsembleRiskZeroForLegit(t *testing.T) {
	r := Default().Classify("maria.garcia")
	if r.Risk() != 0 {
		t.Errorf("legit verdict risk = %.3f, want 0", r.Risk())
	}
}

func TestTrainFromCorporaOrders(t *testing.T) {
	e := TrainFromCorpora([]string{"abc"}, []string{"xyz"})
	if e.Bigram.Order() != 1 {
		t.Errorf("bigram pair order = %d, want 1", e.Bigram.Order())
	}
	if e.Trigram.Order() != 2 {
		t.Errorf("trigram pair order = %d, want 2", e.Trigram.Order())
	}
}

package detect

import (
	"testing"

	"github.com/mailsift/mailsift/pkg/email"
)

func TestGibberishDetector(t *testing.T) {
	d := NewGibberishDetector()

	natural := []string{
		"john.smith",
		"maria.garcia",
		"anderson",
		"christopher",
		"sunshine",
	}
	for _, local := range natural {
		r := d.Analyze(email.Parse(local + "@example.com"))
		if !r.IsNatural {
			t.Errorf("%q flagged as gibberish (overall=%.2f)", local, r.Overall)
		}
		if r.Risk() != 0 {
			t.Errorf("natural %q should carry zero risk, got %.3f", local, r.Risk())
		}
	}

	gibberish := []string{
		"xkjqzwvm",
		"zqxkvjwp",
		"qzwxkvbj",
	}
	for _, local := range gibberish {
		r := d.Analyze(email.Parse(local + "@example.com"))
		if r.IsNatural {
			t.Errorf("%q not flagged as gibberish (overall=%.2f)", local, r.Overall)
		}
		if r.Risk() <= 0.5 {
			t.Errorf("gibberish %q risk = %.3f, want > 0.5", local, r.Risk())
		}
	}
}

func TestGibberishShortLocalSkipped(t *testing.T) {
	d := NewGibberishDetector()
	r := d.Analyze(email.Parse("x@example.com"))
	if !r.IsNatural {
		t.Error("single letter should not be judged")
	}
	r = d.Analyze(email.Parse("12345@example.com"))
	if !r.IsNatural {
		t.Error("digits-only local should not be judged")
	}
}

func TestGibberishNameSuffixSoftened(t *testing.T) {
	d := NewGibberishDetector()
	// both score low on the sets, but the -son suffix marks a surname shape
	withSuffix := d.Analyze(email.Parse("bxqzkson@example.com"))
	without := d.Analyze(email.Parse("bxqzkwvq@example.com"))

	if withSuffix.IsNatural || without.IsNatural {
		t.Fatal("both should read as gibberish")
	}
	if withSuffix.Confidence >= without.Confidence {
		t.Errorf("surname suffix should halve confidence: %.2f >= %.2f",
			withSuffix.Confidence, without.Confidence)
	}
}

func TestPipelineRunBundlesAllDetectors(t *testing.T) {
	p := NewPipeline()
	out := p.Run(email.Parse("user2026+spam@gmail.com"), testNow)

	if !out.Sequential.Hit && !out.Dated.Hit {
		t.Error("date-stamped counter local should trip sequential or dated")
	}
	if !out.Plus.Present || !out.Plus.Suspicious {
		t.Error("suspicious plus tag should be reported")
	}
	if out.MaxRisk() < out.Plus.Risk() {
		t.Error("MaxRisk should dominate every single detector risk")
	}
	if out.MaxRisk() < 0 || out.MaxRisk() > 1 {
		t.Errorf("MaxRisk = %.3f out of [0,1]", out.MaxRisk())
	}
}

func TestPipelineDominantNames(t *testing.T) {
	p := NewPipeline()

	tests := []struct {
		email    string
		dominant string
	}{
		{"qwertyuiop@example.com", "keyboard_walk"},
		{"xkjqzwvm@example.com", "gibberish"},
		{"john.smith@example.com", ""},
	}
	for _, tt := range tests {
		out := p.Run(email.Parse(tt.email), testNow)
		if got := out.Dominant(); got != tt.dominant {
			t.Errorf("Dominant(%q) = %q, want %q", tt.email, got, tt.dominant)
		}
	}
}

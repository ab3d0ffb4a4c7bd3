package detect

import (
	"testing"

	"github.com/mailsift/mailsift/pkg/email"
)

func TestSequentialDetector(t *testing.T) {
	d := NewSequentialDetector()

	tests := []struct {
		local   string
		hit     bool
		prefix  string
		minConf float64
		maxConf float64
	}{
		{"user123", true, "user", 0.7, 0.95},
		{"user1", true, "user", 0.5, 0.7},
		{"john.smith", false, "", 0, 0},
		{"test_0001", true, "test", 0.8, 0.95},
		{"account-42", true, "account", 0.6, 0.85},
		{"mailbox99999", true, "mailbox", 0.6, 0.85},
		{"john_a", true, "john", 0.3, 0.5},
		{"12345", false, "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.local, func(t *testing.T) {
			r := d.Analyze(email.Parse(tt.local + "@example.com"))
			if r.Hit != tt.hit {
				t.Fatalf("hit = %v, want %v", r.Hit, tt.hit)
			}
			if !tt.hit {
				return
			}
			if r.Prefix != tt.prefix {
				t.Errorf("prefix = %q, want %q", r.Prefix, tt.prefix)
			}
			if r.Confidence < tt.minConf || r.Confidence > tt.maxConf {
				t.Errorf("confidence = %.2f, want in [%.2f,%.2f]", r.Confidence, tt.minConf, tt.maxConf)
			}
		})
	}
}

func TestSequentialPaddedRun(t *testing.T) {
	d := NewSequentialDetector()
	padded := d.Analyze(email.Parse("user007@example.com"))
	plain := d.Analyze(email.Parse("user700@example.com"))

	if !padded.Padded {
		t.Error("zero-padded run should set Padded")
	}
	if plain.Padded {
		t.Error("non-padded run should not set Padded")
	}
	if padded.Confidence <= plain.Confidence {
		t.Errorf("padding should raise confidence: %.2f <= %.2f", padded.Confidence, plain.Confidence)
	}
}

func TestSequentialRiskBounds(t *testing.T) {
	d := NewSequentialDetector()
	for _, local := range []string{"user123", "a1", "test_000042"} {
		r := d.Analyze(email.Parse(local + "@example.com"))
		if risk := r.Risk(); risk < 0 || risk > 1 {
			t.Errorf("Risk(%q) = %.3f out of [0,1]", local, risk)
		}
	}
}

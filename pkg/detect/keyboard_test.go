package detect

import (
	"testing"

	"github.com/mailsift/mailsift/pkg/email"
)

func TestKeyboardDetector(t *testing.T) {
	d := NewKeyboardDetector()

	tests := []struct {
		local   string
		hit     bool
		typ     string
		minLen  int
		minConf float64
	}{
		{"qwerty", true, WalkHorizontal, 6, 0.6},
		{"asdfgh", true, WalkHorizontal, 6, 0.6},
		{"qwertyuiop", true, WalkHorizontal, 10, 0.9},
		{"zxcvbn", true, WalkHorizontal, 6, 0.6},
		{"john.smith", false, "", 0, 0},
		{"alexander", false, "", 0, 0},
		{"qaz", false, "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.local, func(t *testing.T) {
			r := d.Analyze(email.Parse(tt.local + "@example.com"))
			if r.Hit != tt.hit {
				t.Fatalf("hit = %v, want %v (len=%d layout=%s)", r.Hit, tt.hit, r.Length, r.Layout)
			}
			if !tt.hit {
				return
			}
			if r.Type != tt.typ {
				t.Errorf("type = %q, want %q", r.Type, tt.typ)
			}
			if r.Length < tt.minLen {
				t.Errorf("length = %d, want >= %d", r.Length, tt.minLen)
			}
			if r.Confidence < tt.minConf {
				t.Errorf("confidence = %.2f, want >= %.2f", r.Confidence, tt.minConf)
			}
		})
	}
}

func TestKeyboardVerticalWalk(t *testing.T) {
	d := NewKeyboardDetector()
	// numpad column
	r := d.Analyze(email.Parse("8520@example.com"))
	if !r.Hit {
		t.Fatalf("numpad column should hit, got len=%d", r.Length)
	}
	if r.Type != WalkVertical {
		t.Errorf("type = %q, want vertical", r.Type)
	}
}

func TestKeyboardWalkLengthRaisesConfidence(t *testing.T) {
	d := NewKeyboardDetector()
	short := d.Analyze(email.Parse("qwer@example.com"))
	long := d.Analyze(email.Parse("qwertyui@example.com"))

	if !short.Hit || !long.Hit {
		t.Fatal("both walks should hit")
	}
	if long.Confidence <= short.Confidence {
		t.Errorf("longer walk should score higher: %.2f <= %.2f", long.Confidence, short.Confidence)
	}
}

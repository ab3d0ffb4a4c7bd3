package markov

import (
	"os"
	"path/filepath"
	"testing"
)

func TestModelTrainAndProb(t *testing.T) {
	m := NewModel(1)
	m.Train([]string{"ab", "ab", "ac"})

	if m.Seen != 3 {
		t.Fatalf("Seen = %d, want 3", m.Seen)
	}
	pb := m.Prob("a", "b")
	pc := m.Prob("a", "c")
	pz := m.Prob("a", "z")

	if pb <= pc {
		t.Errorf("P(b|a)=%.4f should exceed P(c|a)=%.4f", pb, pc)
	}
	if pc <= pz {
		t.Errorf("P(c|a)=%.4f should exceed unseen P(z|a)=%.4f", pc, pz)
	}
	if pz <= 0 {
		t.Error("smoothing should keep unseen transitions positive")
	}
}

func TestCrossEntropyDirection(t *testing.T) {
	m := NewModel(1)
	m.Train([]string{"john", "joan", "jane", "josh"})

	familiar := m.CrossEntropy("john")
	alien := m.CrossEntropy("xqzw")

	if familiar >= alien {
		t.Errorf("trained sequence should be cheaper: %.2f >= %.2f", familiar, alien)
	}
}

func TestCrossEntropyEmpty(t *testing.T) {
	m := NewModel(1)
	m.Train([]string{"abc"})
	if h := m.CrossEntropy(""); h != 0 {
		t.Errorf("empty sequence entropy = %.2f, want 0", h)
	}
	if h := m.CrossEntropy("!!!"); h != 0 {
		t.Errorf("non-alphabet sequence entropy = %.2f, want 0", h)
	}
}

func TestNormalizeSequence(t *testing.T) {
	tests := []struct{ in, want string }{
		{"John.Smith", "john.smith"},
		{"user+tag", "usertag"},
		{"a b c", "abc"},
		{"üser", "ser"},
	}
	for _, tt := range tests {
		if got := normalizeSequence(tt.in); got != tt.want {
			t.Errorf("normalizeSequence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModelSaveLoadRoundTrip(t *testing.T) {
	m := NewModel(2)
	m.Train([]string{"john.smith", "maria.garcia"})

	path := filepath.Join(t.TempDir(), "model.json")
	if err := m.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if loaded.Order != 2 || loaded.Seen != 2 {
		t.Errorf("loaded order=%d seen=%d", loaded.Order, loaded.Seen)
	}
	if got, want := loaded.CrossEntropy("john.smith"), m.CrossEntropy("john.smith"); got != want {
		t.Errorf("entropy drifted after round trip: %.4f != %.4f", got, want)
	}
}

func TestLoadModelRejectsBadOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	data := `{"order":0,"counts":{},"totals":{},"trainedSequences":0}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadModel(path); err == nil {
		t.Error("expected error for order 0")
	}
}

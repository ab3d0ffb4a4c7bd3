package markov

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

const (
	startPad = "^"
	endMark  = "$"

	// add-epsilon smoothing keeps unseen transitions finite
	epsilon = 0.01
)

// alphabet is every symbol a normalised local part can contain plus the
// padding markers.
const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789._-^$"

// Model is a character-level Markov chain of a fixed order. Counts is
// context -> next char -> occurrences.
type Model struct {
	Order  int                           `json:"order"`
	Counts map[string]map[string]float64 `json:"counts"`
	Totals map[string]float64            `json:"totals"`
	Seen   int                           `json:"trainedSequences"`
}

// NewModel creates an empty model of the given order (1 = bigram
// transitions, 2 = trigram transitions).
func NewModel(order int) *Model {
	if order < 1 {
		order = 1
	}
	return &Model{
		Order:  order,
		Counts: make(map[string]map[string]float64),
		Totals: make(map[string]float64),
	}
}

// Train accumulates transition counts from the corpus. Sequences are
// lowercased and padded so word boundaries carry signal too.
func (m *Model) Train(corpus []string) {
	for _, s := range corpus {
		s = normalizeSequence(s)
		if s == "" {
			continue
		}
		padded := strings.Repeat(startPad, m.Order) + s + endMark
		for i := m.Order; i < len(padded); i++ {
			ctx := padded[i-m.Order : i]
			next := padded[i : i+1]
			row, ok := m.Counts[ctx]
			if !ok {
				row = make(map[string]float64)
				m.Counts[ctx] = row
			}
			row[next]++
			m.Totals[ctx]++
		}
		m.Seen++
	}
}

// Prob returns the smoothed transition probability P(next | ctx)
func (m *Model) Prob(ctx, next string) float64 {
	count := m.Counts[ctx][next]
	total := m.Totals[ctx]
	return (count + epsilon) / (total + epsilon*float64(len(alphabet)))
}

// CrossEntropy is the average negative log2 probability per transition
// of the sequence under this model. Lower means the model finds the
// sequence more plausible.
func (m *Model) CrossEntropy(s string) float64 {
	s = normalizeSequence(s)
	if s == "" {
		return 0
	}
	padded := strings.Repeat(startPad, m.Order) + s + endMark
	bits, transitions := 0.0, 0
	for i := m.Order; i < len(padded); i++ {
		ctx := padded[i-m.Order : i]
		next := padded[i : i+1]
		bits += -math.Log2(m.Prob(ctx, next))
		transitions++
	}
	if transitions == 0 {
		return 0
	}
	return bits / float64(transitions)
}

// normalizeSequence lowercases and drops characters outside the alphabet
func normalizeSequence(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Save writes the model as JSON
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling model: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing model file: %w", err)
	}
	return nil
}

// LoadModel reads a model previously written by Save
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing model file: %w", err)
	}
	if m.Order < 1 {
		return nil, fmt.Errorf("model file %s: invalid order %d", path, m.Order)
	}
	if m.Counts == nil {
		m.Counts = make(map[string]map[string]float64)
	}
	if m.Totals == nil {
		m.Totals = make(map[string]float64)
	}
	return &m, nil
}

package detect

import (
	"time"

	"github.com/mailsift/mailsift/pkg/email"
)

// Result is the generic projection of a detector outcome, used for
// deterministic iteration and risk mixing. Typed records live on Results.
type Result struct {
	Name       string  `json:"name"`
	Hit        bool    `json:"hit"`
	Confidence float64 `json:"confidence"`
	Risk       float64 `json:"risk"`
}

// Detector is a pure, stateless analysis capability over a normalised
// address. Implementations are shareable across requests.
type Detector interface {
	Name() string
	Detect(a *email.Address) Result
}

// Results bundles the typed outputs of one pipeline run
type Results struct {
	Sequential SequentialResult `json:"sequential"`
	Dated      DatedResult      `json:"dated"`
	Plus       PlusResult       `json:"plusAddressing"`
	Keyboard   KeyboardResult   `json:"keyboardWalk"`
	Gibberish  GibberishResult  `json:"gibberish"`
}

// Pipeline runs the detector set in a fixed order. Detectors are pure,
// so a panic in one is contained: its contribution becomes zero and the
// run continues.
type Pipeline struct {
	sequential *SequentialDetector
	dated      *DatedDetector
	plus       *PlusDetector
	keyboard   *KeyboardDetector
	gibberish  *GibberishDetector

	ordered []Detector
	logf    func(format string, args ...any)
}

// NewPipeline builds the standard detector set
func NewPipeline() *Pipeline {
	p := &Pipeline{
		sequential: NewSequentialDetector(),
		dated:      NewDatedDetector(),
		plus:       NewPlusDetector(),
		keyboard:   NewKeyboardDetector(),
		gibberish:  NewGibberishDetector(),
	}
	p.ordered = []Detector{p.sequential, p.dated, p.plus, p.keyboard, p.gibberish}
	p.logf = func(string, ...any) {}
	return p
}

// SetLogger installs a log function for contained detector failures
func (p *Pipeline) SetLogger(logf func(format string, args ...any)) {
	if logf != nil {
		p.logf = logf
	}
}

// Detectors returns the detector set in execution order
func (p *Pipeline) Detectors() []Detector {
	return p.ordered
}

// Run executes every detector against the address. now anchors the
// dated detector's year window.
func (p *Pipeline) Run(a *email.Address, now time.Time) Results {
	var out Results
	p.runSafe("sequential", func() { out.Sequential = p.sequential.Analyze(a) })
	p.runSafe("dated", func() { out.Dated = p.dated.AnalyzeAt(a, now) })
	p.runSafe("plus_addressing", func() { out.Plus = p.plus.Analyze(a) })
	p.runSafe("keyboard_walk", func() { out.Keyboard = p.keyboard.Analyze(a) })
	p.runSafe("gibberish", func() { out.Gibberish = p.gibberish.Analyze(a) })
	return out
}

// runSafe contains a detector panic so one detector can never abort the
// whole validation.
func (p *Pipeline) runSafe(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logf("detect: %s detector failed, contribution zeroed: %v", name, r)
		}
	}()
	fn()
}

// MaxRisk returns the highest detector risk, the local-part pattern
// contribution consumed by the aggregator.
func (r Results) MaxRisk() float64 {
	max := 0.0
	for _, risk := range []float64{
		r.Sequential.Risk(), r.Dated.Risk(), r.Plus.Risk(),
		r.Keyboard.Risk(), r.Gibberish.Risk(),
	} {
		if risk > max {
			max = risk
		}
	}
	return max
}

// Dominant names the detector with the highest risk, or "" when none hit
func (r Results) Dominant() string {
	name, max := "", 0.0
	for _, c := range []struct {
		name string
		risk float64
	}{
		{"gibberish", r.Gibberish.Risk()},
		{"sequential", r.Sequential.Risk()},
		{"dated", r.Dated.Risk()},
		{"plus_addressing", r.Plus.Risk()},
		{"keyboard_walk", r.Keyboard.Risk()},
	} {
		if c.risk > max {
			name, max = c.name, c.risk
		}
	}
	return name
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

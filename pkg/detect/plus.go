package detect

import "github.com/mailsift/mailsift/pkg/email"

// PlusResult describes plus-addressing use
type PlusResult struct {
	Present    bool    `json:"present"`
	Tag        string  `json:"tag,omitempty"`
	Suspicious bool    `json:"suspicious"`
	Confidence float64 `json:"confidence"`
}

// Risk translates the result into a [0,1] contribution. Plus-addressing
// alone is weak evidence; a throwaway tag is what raises it.
func (r PlusResult) Risk() float64 {
	if !r.Present {
		return 0
	}
	if r.Suspicious {
		return clamp01(r.Confidence)
	}
	return clamp01(r.Confidence * 0.5)
}

// PlusDetector reports the +tag the normaliser already extracted
type PlusDetector struct{}

func NewPlusDetector() *PlusDetector { return &PlusDetector{} }

func (d *PlusDetector) Name() string { return "plus_addressing" }

func (d *PlusDetector) Detect(a *email.Address) Result {
	r := d.Analyze(a)
	return Result{Name: d.Name(), Hit: r.Present, Confidence: r.Confidence, Risk: r.Risk()}
}

func (d *PlusDetector) Analyze(a *email.Address) PlusResult {
	if a.PlusTag == "" {
		return PlusResult{}
	}
	conf := 0.5
	if a.SuspiciousTag {
		conf = 0.7
	}
	return PlusResult{
		Present:    true,
		Tag:        a.PlusTag,
		Suspicious: a.SuspiciousTag,
		Confidence: conf,
	}
}

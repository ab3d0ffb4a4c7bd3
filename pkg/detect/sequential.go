package detect

import (
	"regexp"
	"strings"

	"github.com/mailsift/mailsift/pkg/email"
)

// SequentialResult describes a trailing-counter pattern
type SequentialResult struct {
	Hit        bool    `json:"hit"`
	Confidence float64 `json:"confidence"`
	RunLength  int     `json:"runLength"`
	Padded     bool    `json:"padded"`
	Separator  string  `json:"separator,omitempty"`
	Prefix     string  `json:"prefix,omitempty"`
}

// Risk translates the result into a [0,1] contribution
func (r SequentialResult) Risk() float64 {
	if !r.Hit {
		return 0
	}
	return clamp01(r.Confidence * 0.8)
}

// SequentialDetector flags local parts ending in a counter: a digit run
// (optionally separator-prefixed), a zero-padded run, or a single letter
// suffix after an underscore.
type SequentialDetector struct {
	trailing *regexp.Regexp
	suffix   *regexp.Regexp
}

// knownPrefixes are generic account words that commonly front generated
// counters; a counter after one of these is a much stronger signal.
var knownPrefixes = map[string]bool{
	"user": true, "test": true, "admin": true, "info": true, "mail": true,
	"contact": true, "account": true, "temp": true, "demo": true, "new": true,
	"my": true, "the": true, "email": true, "signup": true, "register": true,
}

func NewSequentialDetector() *SequentialDetector {
	return &SequentialDetector{
		trailing: regexp.MustCompile(`^(.*?)([._-]?)(\d+)$`),
		suffix:   regexp.MustCompile(`^(.+)_([a-z])$`),
	}
}

func (d *SequentialDetector) Name() string { return "sequential" }

func (d *SequentialDetector) Detect(a *email.Address) Result {
	r := d.Analyze(a)
	return Result{Name: d.Name(), Hit: r.Hit, Confidence: r.Confidence, Risk: r.Risk()}
}

func (d *SequentialDetector) Analyze(a *email.Address) SequentialResult {
	local := a.CanonicalLocal
	if local == "" {
		local = a.Local
	}

	if m := d.trailing.FindStringSubmatch(local); m != nil && m[1] != "" {
		prefix, sep, digits := m[1], m[2], m[3]
		prefix = strings.TrimRight(prefix, "._-")

		res := SequentialResult{
			Hit:       true,
			RunLength: len(digits),
			Padded:    len(digits) > 1 && digits[0] == '0',
			Separator: sep,
			Prefix:    prefix,
		}

		run := res.RunLength
		if run > 4 {
			run = 4
		}
		conf := 0.3 + 0.1*float64(run)
		if knownPrefixes[prefix] {
			conf += 0.15
		}
		if res.Padded {
			conf += 0.1
		}
		if sep != "" {
			conf += 0.05
		}
		if conf > 0.95 {
			conf = 0.95
		}
		res.Confidence = conf
		return res
	}

	if m := d.suffix.FindStringSubmatch(local); m != nil {
		return SequentialResult{
			Hit:        true,
			Confidence: 0.4,
			RunLength:  1,
			Separator:  "_",
			Prefix:     m[1],
		}
	}

	return SequentialResult{}
}

package detect

import (
	"strings"

	"github.com/mailsift/mailsift/pkg/email"
)

// GibberishResult describes n-gram naturalness analysis of a local part
type GibberishResult struct {
	BigramScore  float64 `json:"bigramScore"`
	TrigramScore float64 `json:"trigramScore"`
	Overall      float64 `json:"overall"`
	IsNatural    bool    `json:"isNatural"`
	Confidence   float64 `json:"confidence"`
	TotalNgrams  int     `json:"totalNgrams"`
}

// Risk translates the result into a [0,1] contribution: the more
// unnatural the text and the more n-grams backing the verdict, the higher.
func (r GibberishResult) Risk() float64 {
	if r.IsNatural {
		return 0
	}
	return clamp01((1 - r.Overall) * r.Confidence)
}

// GibberishDetector compares letter bigrams/trigrams against compiled-in
// common English n-gram sets.
type GibberishDetector struct {
	bigrams  map[string]bool
	trigrams map[string]bool
}

func NewGibberishDetector() *GibberishDetector {
	d := &GibberishDetector{
		bigrams:  make(map[string]bool, len(commonBigrams)),
		trigrams: make(map[string]bool, len(commonTrigrams)),
	}
	for _, g := range commonBigrams {
		d.bigrams[g] = true
	}
	for _, g := range commonTrigrams {
		d.trigrams[g] = true
	}
	return d
}

func (d *GibberishDetector) Name() string { return "gibberish" }

func (d *GibberishDetector) Detect(a *email.Address) Result {
	r := d.Analyze(a)
	return Result{Name: d.Name(), Hit: !r.IsNatural, Confidence: r.Confidence, Risk: r.Risk()}
}

func (d *GibberishDetector) Analyze(a *email.Address) GibberishResult {
	local := a.CanonicalLocal
	if local == "" {
		local = a.Local
	}
	letters := lettersOnly(local)

	res := GibberishResult{IsNatural: true}
	if len(letters) < 2 {
		// nothing to judge: digits-only locals are someone else's problem
		return res
	}

	bigrams := ngrams(letters, 2)
	trigrams := ngrams(letters, 3)
	res.TotalNgrams = len(bigrams) + len(trigrams)

	matched := 0
	for _, g := range bigrams {
		if d.bigrams[g] {
			matched++
		}
	}
	if len(bigrams) > 0 {
		res.BigramScore = float64(matched) / float64(len(bigrams))
	}

	matched = 0
	for _, g := range trigrams {
		if d.trigrams[g] {
			matched++
		}
	}
	if len(trigrams) > 0 {
		res.TrigramScore = float64(matched) / float64(len(trigrams))
	}

	res.Overall = 0.6*res.BigramScore + 0.4*res.TrigramScore

	threshold := 0.40
	if len(letters) < 5 {
		threshold = 0.30
	}
	res.IsNatural = res.Overall > threshold

	res.Confidence = float64(res.TotalNgrams) / 10
	if res.Confidence > 1 {
		res.Confidence = 1
	}

	// name-suffix allowlist: surnames trip the n-gram sets less than
	// dictionary words, so soften the verdict
	for _, suffix := range namePatternSuffixes {
		if strings.HasSuffix(letters, suffix) {
			res.Confidence /= 2
			break
		}
	}
	return res
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ngrams(s string, n int) []string {
	if len(s) < n {
		return nil
	}
	out := make([]string, 0, len(s)-n+1)
	for i := 0; i+n <= len(s); i++ {
		out = append(out, s[i:i+n])
	}
	return out
}

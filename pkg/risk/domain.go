package risk

import (
	"context"
	"strings"

	"github.com/mailsift/mailsift/pkg/email"
	"github.com/mailsift/mailsift/pkg/refdata"
)

// DomainAssessment is the full classification of an address's domain
type DomainAssessment struct {
	Disposable      bool     `json:"isDisposable"`
	FreeProvider    bool     `json:"isFreeProvider"`
	PatternMatch    bool     `json:"matchesDisposablePattern"`
	SubdomainDepth  int      `json:"subdomainDepth"`
	HasValidTLD     bool     `json:"hasValidTld"`
	ReputationScore float64  `json:"reputationScore"`
	TLDCategory     string   `json:"tldCategory"`
	TLDRiskScore    float64  `json:"tldRiskScore"`
	Heuristics      []string `json:"heuristics,omitempty"`
	Reason          string   `json:"reason,omitempty"`
}

// DomainClassifier scores a domain's standing reputation from the
// reference tables plus structural heuristics.
type DomainClassifier struct {
	ref *refdata.Store
}

func NewDomainClassifier(ref *refdata.Store) *DomainClassifier {
	return &DomainClassifier{ref: ref}
}

// Classify builds the assessment. Reference reads are cache-backed and
// never fail; on table outage they answer from fallback sets.
func (c *DomainClassifier) Classify(ctx context.Context, a *email.Address) DomainAssessment {
	domain := a.Domain

	out := DomainAssessment{
		Disposable:     c.ref.IsDisposable(ctx, domain),
		FreeProvider:   c.ref.IsFreeProvider(ctx, domain),
		PatternMatch:   c.ref.MatchesDisposablePattern(domain),
		SubdomainDepth: a.SubdomainDepth(),
		HasValidTLD:    a.TLD != "",
		Heuristics:     domainHeuristics(domain),
	}
	out.TLDRiskScore, out.TLDCategory = c.ref.TLDRiskScore(ctx, domain)

	score := 0.0
	if out.Disposable {
		score += 0.9
		out.Reason = "disposable_domain"
	}
	if out.PatternMatch {
		score += 0.3
		if out.Reason == "" {
			out.Reason = "disposable_pattern"
		}
	}
	score += 0.1 * float64(len(out.Heuristics))
	if extra := out.SubdomainDepth - 2; extra > 0 {
		score += 0.1 * float64(extra)
	}
	if score > 1 {
		score = 1
	}
	out.ReputationScore = score
	return out
}

// domainHeuristics returns the structural suspicion signals a domain
// triggers.
func domainHeuristics(domain string) []string {
	var hits []string
	if domain == "" {
		return hits
	}
	if len(domain) > 40 {
		hits = append(hits, "excessive_length")
	}
	labels := strings.Split(domain, ".")
	if len(labels) > 4 {
		hits = append(hits, "deep_nesting")
	}
	if len(domain) < 3 {
		hits = append(hits, "too_short")
	}
	if strings.Count(domain, "-") > 3 {
		hits = append(hits, "excessive_hyphens")
	}
	for _, label := range labels {
		if label != "" && isAllDigits(label) {
			hits = append(hits, "numeric_label")
			break
		}
	}
	for _, label := range labels {
		if len(label) >= 5 && isConsonantOnly(label) {
			hits = append(hits, "consonant_label")
			break
		}
	}
	return hits
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func isConsonantOnly(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
		switch r {
		case 'a', 'e', 'i', 'o', 'u', 'y':
			return false
		}
	}
	return s != ""
}

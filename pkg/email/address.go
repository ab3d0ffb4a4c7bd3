package email

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strings"
)

// Address represents a parsed and normalised email address
type Address struct {
	Raw    string
	Local  string
	Domain string
	TLD    string

	// Plus-addressing
	PlusTag       string
	SuspiciousTag bool

	// BareLocal is the local part with the +tag stripped but separators
	// kept; structure analysis reads this one.
	BareLocal string

	// Canonical is the normalised form: lowercased, +tag stripped and,
	// for Gmail, interior dots removed from the local part.
	Canonical      string
	CanonicalLocal string
}

// FormatCheck contains the result of RFC-5322-lite format validation
type FormatCheck struct {
	Valid        bool    `json:"valid"`
	FormatValid  bool    `json:"formatValid"`
	EntropyScore float64 `json:"entropyScore"`
	EntropyBits  float64 `json:"entropyBits"`
	LocalLength  int     `json:"localPartLength"`
	Reason       string  `json:"reason,omitempty"`
}

// Format failure reason codes
const (
	ReasonEmpty         = "empty"
	ReasonMissingAt     = "missing_at"
	ReasonEmptyLocal    = "empty_local"
	ReasonEmptyDomain   = "empty_domain"
	ReasonLocalTooLong  = "local_too_long"
	ReasonDomainTooLong = "domain_too_long"
	ReasonBadCharacters = "invalid_characters"
	ReasonBadDomain     = "invalid_domain"
)

const (
	maxLocalLength  = 64
	maxDomainLength = 255
)

// suspiciousTags are plus-address tags that indicate throwaway intent
var suspiciousTags = map[string]bool{
	"spam": true, "test": true, "fake": true, "junk": true,
	"temp": true, "trash": true, "burner": true, "x": true,
}

// gmailDomains collapse interior dots in the local part
var gmailDomains = map[string]bool{
	"gmail.com":      true,
	"googlemail.com": true,
}

// Parse splits an address on the final @, lowercases both halves and
// derives the canonical (plus-stripped, dot-collapsed) form. It never
// fails: format problems are reported by Validate.
func Parse(raw string) *Address {
	s := strings.ToLower(strings.TrimSpace(raw))
	at := strings.LastIndex(s, "@")

	a := &Address{Raw: raw}
	if at < 0 {
		a.Local = s
		return a
	}

	a.Local = s[:at]
	a.Domain = s[at+1:]
	if dot := strings.LastIndex(a.Domain, "."); dot >= 0 {
		a.TLD = a.Domain[dot+1:]
	}

	bare := a.Local
	if plus := strings.Index(bare, "+"); plus >= 0 {
		a.PlusTag = bare[plus+1:]
		bare = bare[:plus]
		a.SuspiciousTag = isSuspiciousTag(a.PlusTag)
	}
	a.BareLocal = bare

	canonical := bare
	if gmailDomains[a.Domain] {
		canonical = strings.ReplaceAll(canonical, ".", "")
	}

	a.CanonicalLocal = canonical
	a.Canonical = canonical + "@" + a.Domain
	return a
}

func isSuspiciousTag(tag string) bool {
	if tag == "" {
		return false
	}
	if suspiciousTags[tag] {
		return true
	}
	allDigits := true
	for _, r := range tag {
		if r < '0' || r > '9' {
			allDigits = false
			break
		}
	}
	return allDigits
}

// Validate performs RFC-5322-lite format validation and computes the
// local-part entropy score.
func (a *Address) Validate() FormatCheck {
	check := FormatCheck{LocalLength: len(a.Local)}

	switch {
	case a.Raw == "":
		check.Reason = ReasonEmpty
	case a.Domain == "" && !strings.Contains(a.Raw, "@"):
		check.Reason = ReasonMissingAt
	case a.Local == "":
		check.Reason = ReasonEmptyLocal
	case a.Domain == "":
		check.Reason = ReasonEmptyDomain
	case len(a.Local) > maxLocalLength:
		check.Reason = ReasonLocalTooLong
	case len(a.Domain) > maxDomainLength:
		check.Reason = ReasonDomainTooLong
	case !validLocal(a.Local):
		check.Reason = ReasonBadCharacters
	case !validDomain(a.Domain):
		check.Reason = ReasonBadDomain
	default:
		check.Valid = true
		check.FormatValid = true
	}

	check.EntropyBits = shannonBits(a.Local)
	check.EntropyScore = normalizeEntropy(check.EntropyBits)
	return check
}

// validLocal checks the local part against the dot-atom grammar: atext
// characters with non-leading, non-trailing, non-doubled dots.
func validLocal(local string) bool {
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	for _, r := range local {
		if !isAtext(r) && r != '.' {
			return false
		}
	}
	return true
}

func isAtext(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("!#$%&'*+-/=?^_`{|}~", r)
}

func validDomain(domain string) bool {
	if !strings.Contains(domain, ".") {
		return false
	}
	labels := strings.Split(domain, ".")
	for _, label := range labels {
		if label == "" || len(label) > 63 {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, r := range label {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
				return false
			}
		}
	}
	tld := labels[len(labels)-1]
	if len(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// shannonBits returns the Shannon entropy of the character distribution
func shannonBits(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	counts := make(map[rune]int)
	total := 0
	for _, r := range s {
		counts[r]++
		total++
	}
	var bits float64
	for _, c := range counts {
		p := float64(c) / float64(total)
		bits -= p * math.Log2(p)
	}
	return bits
}

// normalizeEntropy maps raw entropy bits to [0,1]. The affine mapping keeps
// short all-distinct strings like user123 below the fast-path threshold
// while long high-diversity strings saturate.
func normalizeEntropy(bits float64) float64 {
	score := (bits - 2.0) / 2.0
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// SubdomainDepth returns the number of labels below the registrable domain
func (a *Address) SubdomainDepth() int {
	if a.Domain == "" {
		return 0
	}
	n := strings.Count(a.Domain, ".") - 1
	if n < 0 {
		return 0
	}
	return n
}

// HashPrefix returns the first 16 hex chars of the SHA-256 of the
// lowercased raw address. Records never carry the address in cleartext.
func (a *Address) HashPrefix() string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(a.Raw))))
	return hex.EncodeToString(sum[:])[:16]
}

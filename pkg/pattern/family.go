package pattern

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/mailsift/mailsift/pkg/detect"
	"github.com/mailsift/mailsift/pkg/email"
)

// Family types
const (
	TypeSequential = "sequential"
	TypeDated      = "dated"
	TypePlus       = "plus_addressing"
	TypeFormatted  = "formatted"
	TypeRandom     = "random"
	TypeSimple     = "simple"
	TypeUnknown    = "unknown"
)

// Structure tokens
const (
	TokenName   = "NAME"
	TokenWord   = "WORD"
	TokenShort  = "SHORT"
	TokenNum    = "NUM"
	TokenYear   = "YEAR"
	TokenYY     = "YY"
	TokenMonth  = "MONTH-YEAR"
	TokenDate   = "DATE"
	TokenTag    = "TAG"
	TokenRandom = "RANDOM"
)

// Family is the abstract canonical form of an address: two addresses
// produced by the same generator template share a family string.
type Family struct {
	String     string            `json:"family"`
	Hash       string            `json:"familyHash"`
	Type       string            `json:"type"`
	Confidence float64           `json:"confidence"`
	RiskScore  float64           `json:"riskScore"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// DomainContext carries the domain classification facts the extractor
// needs for risk roll-up.
type DomainContext struct {
	FreeProvider bool
	Disposable   bool
}

// wordDenylist keeps throwaway words out of the NAME token
var wordDenylist = map[string]bool{
	"test": true, "fake": true, "spam": true, "temp": true, "demo": true,
	"user": true, "admin": true, "mail": true, "email": true, "info": true,
	"asdf": true, "qwerty": true, "example": true, "sample": true,
}

var (
	trailingDate = regexp.MustCompile(`[._-]?((?:19|20)\d{2}|\d{8}|(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*[._-]?\d{2,4}|\d{2})$`)
	leadingYear  = regexp.MustCompile(`^((?:19|20)\d{2})[._-]?`)
	trailingNum  = regexp.MustCompile(`[._-]?\d+$`)
)

// Extractor canonicalises addresses into family signatures
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// Extract produces the family for an address given the detector results
// and the domain classification, evaluating the rules in priority order.
func (e *Extractor) Extract(a *email.Address, det detect.Results, dom DomainContext) Family {
	// Structure comes from the separator-preserving local: Gmail dot
	// collapse is an identity rule, not a template change.
	local := a.BareLocal
	if local == "" {
		local = a.Local
	}
	domain := a.Domain

	var fam Family
	switch {
	case det.Dated.Hit && det.Dated.Confidence >= 0.6:
		stripped := stripDate(local, det.Dated.Shape)
		fam = Family{
			Type:       TypeDated,
			String:     joinFamily(baseStructure(stripped), dateToken(det.Dated.Shape), domain),
			Confidence: det.Dated.Confidence,
			Metadata:   map[string]string{"shape": det.Dated.Shape},
		}
	case det.Sequential.Hit && det.Sequential.Confidence >= 0.5:
		base := baseStructure(det.Sequential.Prefix)
		fam = Family{
			Type:       TypeSequential,
			String:     joinFamily(base, TokenNum, domain),
			Confidence: det.Sequential.Confidence,
		}
	case det.Plus.Present:
		base := baseStructure(local)
		conf := 0.5
		if det.Plus.Suspicious {
			conf = 0.7
		}
		fam = Family{
			Type:       TypePlus,
			String:     base + "+" + TokenTag + "@" + domain,
			Confidence: conf,
		}
	case looksRandom(local):
		fam = Family{
			Type:       TypeRandom,
			String:     TokenRandom + "@" + domain,
			Confidence: 0.6,
		}
	case strings.ContainsAny(local, "._-"):
		fam = Family{
			Type:       TypeFormatted,
			String:     baseStructure(local) + "@" + domain,
			Confidence: 0.4,
		}
	case local != "":
		fam = Family{
			Type:       TypeSimple,
			String:     baseStructure(local) + "@" + domain,
			Confidence: 0.3,
		}
	default:
		fam = Family{Type: TypeUnknown, String: TokenUnknownFamily(domain), Confidence: 0}
	}

	fam.Hash = HashFamily(fam.String)
	fam.RiskScore = rollupRisk(fam, dom)
	return fam
}

// TokenUnknownFamily is the family for unparseable locals
func TokenUnknownFamily(domain string) string {
	return "UNKNOWN@" + domain
}

// HashFamily returns the first 16 hex chars of SHA-256 of the family
// string; stable across processes.
func HashFamily(family string) string {
	sum := sha256.Sum256([]byte(family))
	return hex.EncodeToString(sum[:])[:16]
}

func joinFamily(base, token, domain string) string {
	if base == "" {
		return token + "@" + domain
	}
	return base + "." + token + "@" + domain
}

func dateToken(shape string) string {
	switch shape {
	case detect.ShapeYear, detect.ShapeLeadYear:
		return TokenYear
	case detect.ShapeShortYear:
		return TokenYY
	case detect.ShapeMonthYear:
		return TokenMonth
	case detect.ShapeFullDate:
		return TokenDate
	}
	return TokenYear
}

func stripDate(local, shape string) string {
	if shape == detect.ShapeLeadYear {
		return leadingYear.ReplaceAllString(local, "")
	}
	return trailingDate.ReplaceAllString(local, "")
}

// baseStructure replaces each separator-delimited segment with its
// structure token.
func baseStructure(local string) string {
	local = strings.Trim(local, "._-")
	if local == "" {
		return ""
	}
	segments := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	tokens := make([]string, 0, len(segments))
	for _, seg := range segments {
		tokens = append(tokens, classifySegment(seg))
	}
	return strings.Join(tokens, ".")
}

func classifySegment(seg string) string {
	if seg == "" {
		return TokenShort
	}
	if isDigits(seg) {
		return TokenNum
	}
	// a short trailing counter does not change the segment's shape
	trimmed := strings.TrimRight(seg, "0123456789")
	if trimmed == "" {
		return TokenNum
	}
	if len(trimmed) <= 2 {
		return TokenShort
	}
	if isLowerAlpha(trimmed) && len(trimmed) <= 15 && !wordDenylist[trimmed] {
		return TokenName
	}
	return TokenWord
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return len(s) > 0
}

// looksRandom flags high char-class diversity locals that mix letters
// and digits, length 8 or more.
func looksRandom(local string) bool {
	if len(local) < 8 {
		return false
	}
	letters, digits := 0, 0
	distinct := make(map[rune]struct{})
	for _, r := range local {
		distinct[r] = struct{}{}
		switch {
		case r >= 'a' && r <= 'z':
			letters++
		case r >= '0' && r <= '9':
			digits++
		}
	}
	if letters == 0 || digits == 0 {
		return false
	}
	diversity := float64(len(distinct)) / float64(len(local))
	return diversity > 0.7
}

// rollupRisk computes the family's contribution to the pattern axis
func rollupRisk(fam Family, dom DomainContext) float64 {
	base := map[string]float64{
		TypeSequential: 0.3,
		TypeDated:      0.3,
		TypePlus:       0.2,
		TypeRandom:     0.4,
		TypeFormatted:  0.1,
		TypeSimple:     0.05,
		TypeUnknown:    0.1,
	}[fam.Type]

	risk := base + fam.Confidence*0.3
	if dom.FreeProvider && (fam.Type == TypeSequential || fam.Type == TypeDated) {
		risk += 0.2
	}
	if dom.Disposable {
		risk += 0.4
	}
	if risk > 1 {
		risk = 1
	}
	if risk < 0 {
		risk = 0
	}
	return risk
}

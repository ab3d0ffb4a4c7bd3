package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Signals are the transport-level facts observed for one request.
// All fields are raw strings; absent signals stay empty.
type Signals struct {
	IP         string
	Country    string
	ASN        string
	BotScore   string
	JA3        string
	JA4        string
	UserAgent  string
	DeviceType string
}

// Fingerprint identifies a request origin without retaining the raw IP
// or user agent beyond the request.
type Fingerprint struct {
	Hash       string `json:"hash"`
	Country    string `json:"country,omitempty"`
	ASN        string `json:"asn,omitempty"`
	BotScore   string `json:"botScore,omitempty"`
	JA3        string `json:"ja3,omitempty"`
	JA4        string `json:"ja4,omitempty"`
	UserAgent  string `json:"userAgent,omitempty"`
	DeviceType string `json:"deviceType,omitempty"`
}

// Derive computes the composite hash over the stable signal subset.
// Identical signals always produce the identical hash.
func Derive(s Signals) Fingerprint {
	composite := strings.Join([]string{s.IP, s.JA4, s.ASN, s.DeviceType, s.BotScore}, "|")
	sum := sha256.Sum256([]byte(composite))

	return Fingerprint{
		Hash:       hex.EncodeToString(sum[:]),
		Country:    s.Country,
		ASN:        s.ASN,
		BotScore:   s.BotScore,
		JA3:        s.JA3,
		JA4:        s.JA4,
		UserAgent:  s.UserAgent,
		DeviceType: s.DeviceType,
	}
}

// BotScoreValue parses the bot score for numeric sinks; 0 when absent
// or unparseable.
func (f Fingerprint) BotScoreValue() float64 {
	v, err := strconv.ParseFloat(f.BotScore, 64)
	if err != nil {
		return 0
	}
	return v
}

// ASNValue parses the ASN for numeric sinks; 0 when absent
func (f Fingerprint) ASNValue() float64 {
	v, err := strconv.ParseFloat(f.ASN, 64)
	if err != nil {
		return 0
	}
	return v
}

package validator

import (
	"encoding/json"
	"strconv"
)

// ResponseHeaders is the header set attached to the client response
// when enable_response_headers is on.
func ResponseHeaders(res *ValidationResult) map[string]string {
	h := map[string]string{
		"X-Risk-Score":           formatScore(res.RiskScore),
		"X-Fraud-Decision":       res.Decision,
		"X-Fingerprint-Hash":     res.Fingerprint.Hash,
		"X-Detection-Latency-Ms": strconv.FormatFloat(res.LatencyMs, 'f', 1, 64),
	}
	if res.BlockReason != "" {
		h["X-Fraud-Reason"] = res.BlockReason
	}
	if res.Fingerprint.BotScore != "" {
		h["X-Bot-Score"] = res.Fingerprint.BotScore
	}
	if res.Fingerprint.Country != "" {
		h["X-Country"] = res.Fingerprint.Country
	}
	if res.Signals.Family.Type != "" {
		h["X-Pattern-Type"] = res.Signals.Family.Type
		h["X-Pattern-Confidence"] = formatScore(res.Signals.Family.Confidence)
	}
	h["X-Has-Gibberish"] = boolHeader(!res.Signals.Detectors.Gibberish.IsNatural)
	return h
}

// OriginHeaders is the prefix-namespaced set mirrored to the origin
func OriginHeaders(res *ValidationResult) map[string]string {
	h := map[string]string{
		"X-Fraud-Risk-Score":         formatScore(res.RiskScore),
		"X-Fraud-Decision":           res.Decision,
		"X-Fraud-Fingerprint":        res.Fingerprint.Hash,
		"X-Fraud-Has-Gibberish":      boolHeader(!res.Signals.Detectors.Gibberish.IsNatural),
		"X-Fraud-Pattern-Type":       res.Signals.Family.Type,
		"X-Fraud-Pattern-Confidence": formatScore(res.Signals.Family.Confidence),
	}
	if res.BlockReason != "" {
		h["X-Fraud-Reason"] = res.BlockReason
	}
	if res.Fingerprint.BotScore != "" {
		h["X-Fraud-Bot-Score"] = res.Fingerprint.BotScore
	}
	if res.Fingerprint.Country != "" {
		h["X-Fraud-Country"] = res.Fingerprint.Country
	}
	if res.Fingerprint.ASN != "" {
		h["X-Fraud-ASN"] = res.Fingerprint.ASN
	}
	return h
}

// originBody re-serialises the request as received; consumer and flow
// are opaque passthroughs.
func originBody(req Request) []byte {
	body, err := json.Marshal(req)
	if err != nil {
		return nil
	}
	return body
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func boolHeader(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

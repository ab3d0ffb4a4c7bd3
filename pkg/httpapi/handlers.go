package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mailsift/mailsift/pkg/fingerprint"
	"github.com/mailsift/mailsift/pkg/risk"
	"github.com/mailsift/mailsift/pkg/validator"
)

const maxBodyBytes = 1 << 20

// signalsFromRequest collects the transport signals the fingerprint is
// derived from. Edge headers win over direct connection facts; absent
// signals stay empty.
func signalsFromRequest(r *http.Request) fingerprint.Signals {
	pick := func(names ...string) string {
		for _, n := range names {
			if v := r.Header.Get(n); v != "" {
				return v
			}
		}
		return ""
	}
	return fingerprint.Signals{
		IP:         pick("CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"),
		Country:    pick("CF-IPCountry", "X-Country"),
		ASN:        pick("X-ASN", "CF-ASN"),
		BotScore:   pick("X-Bot-Score", "CF-Bot-Score"),
		JA3:        pick("CF-JA3-Hash", "X-JA3"),
		JA4:        pick("CF-JA4", "X-JA4"),
		UserAgent:  r.UserAgent(),
		DeviceType: pick("X-Device-Type", "CF-Device-Type"),
	}
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validator.Request
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Signals = signalsFromRequest(r)

	res, err := s.validator.Validate(r.Context(), req)
	if err != nil {
		if validator.KindOf(err) == validator.KindInvalidRequest {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.warnf("httpapi: validation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if s.responseHeadersEnabled(r) {
		for k, v := range validator.ResponseHeaders(res) {
			w.Header().Set(k, v)
		}
	}

	status := http.StatusOK
	if res.Decision == risk.DecisionBlock {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, res)
}

// batchRequest validates a set of addresses in one call; transport
// signals are shared across the batch.
type batchRequest struct {
	Emails   []string `json:"emails"`
	Consumer string   `json:"consumer,omitempty"`
	Flow     string   `json:"flow,omitempty"`
}

type batchResponse struct {
	Results []*validator.ValidationResult `json:"results"`
}

const maxBatchSize = 100

func (s *Server) handleValidateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Emails) == 0 {
		writeError(w, http.StatusBadRequest, "emails is required")
		return
	}
	if len(req.Emails) > maxBatchSize {
		writeError(w, http.StatusBadRequest, "too many emails in batch")
		return
	}

	signals := signalsFromRequest(r)
	out := batchResponse{Results: make([]*validator.ValidationResult, 0, len(req.Emails))}
	for _, addr := range req.Emails {
		res, err := s.validator.Validate(r.Context(), validator.Request{
			Email:    addr,
			Consumer: req.Consumer,
			Flow:     req.Flow,
			Signals:  signals,
		})
		if err != nil {
			res = &validator.ValidationResult{
				Decision:    risk.DecisionBlock,
				BlockReason: risk.ReasonInvalidFormat,
				Message:     err.Error(),
			}
		}
		out.Results = append(out.Results, res)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) responseHeadersEnabled(r *http.Request) bool {
	cfg, err := s.cfgStore.Load(r.Context())
	if err != nil {
		return false
	}
	return cfg.Flags.EnableResponseHeaders
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// trailing garbage is a malformed body too
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

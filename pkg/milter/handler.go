package milter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/d--j/go-milter"

	"github.com/mailsift/mailsift/pkg/fingerprint"
	"github.com/mailsift/mailsift/pkg/risk"
	"github.com/mailsift/mailsift/pkg/validator"
)

const headerPrefix = "X-MailSift-"

// Handler scores the envelope sender of each SMTP transaction. The
// decision is made at MAIL FROM so rejected senders never transmit a
// body.
type Handler struct {
	milter.NoOpMilter

	validator *validator.Validator
	logf      func(format string, args ...any)

	connectHost string
	connectAddr string
	heloName    string

	result    *validator.ValidationResult
	startTime time.Time
}

func NewHandler(v *validator.Validator, logf func(format string, args ...any)) *Handler {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Handler{validator: v, logf: logf, startTime: time.Now()}
}

func (h *Handler) NewConnection(m milter.Modifier) error {
	h.startTime = time.Now()
	return nil
}

func (h *Handler) Connect(host string, family string, port uint16, addr string, m milter.Modifier) (*milter.Response, error) {
	h.connectHost = host
	h.connectAddr = addr
	return milter.RespContinue, nil
}

func (h *Handler) Helo(name string, m milter.Modifier) (*milter.Response, error) {
	h.heloName = name
	return milter.RespContinue, nil
}

// MailFrom validates the envelope sender and rejects blocked addresses
func (h *Handler) MailFrom(from string, esmtpArgs string, m milter.Modifier) (*milter.Response, error) {
	h.result = nil
	addr := stripAngles(from)
	if addr == "" {
		// null sender, used for bounces; let it through
		return milter.RespContinue, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	res, err := h.validator.Validate(ctx, validator.Request{
		Email: addr,
		Flow:  "smtp",
		Signals: fingerprint.Signals{
			IP: h.connectAddr,
		},
	})
	if err != nil {
		h.logf("milter: validation failed for %s: %v", h.connectHost, err)
		return milter.RespContinue, nil
	}
	h.result = res

	if res.Decision == risk.DecisionBlock {
		resp, _ := milter.RejectWithCodeAndReason(550,
			fmt.Sprintf("5.7.1 Sender address rejected (%s)", res.BlockReason))
		return resp, nil
	}
	return milter.RespContinue, nil
}

// EndOfMessage stamps the verdict headers onto accepted messages
func (h *Handler) EndOfMessage(m milter.Modifier) (*milter.Response, error) {
	if h.result == nil {
		return milter.RespContinue, nil
	}

	headers := [][2]string{
		{"Decision", h.result.Decision},
		{"Risk-Score", fmt.Sprintf("%.3f", h.result.RiskScore)},
		{"Pattern-Type", h.result.Signals.Family.Type},
		{"Scan-Ms", fmt.Sprintf("%.1f", float64(time.Since(h.startTime).Microseconds())/1000)},
	}
	for _, kv := range headers {
		if kv[1] == "" {
			continue
		}
		if err := m.AddHeader(headerPrefix+kv[0], kv[1]); err != nil {
			return milter.RespTempFail, fmt.Errorf("adding verdict header: %w", err)
		}
	}
	return milter.RespContinue, nil
}

func (h *Handler) Abort(m milter.Modifier) error {
	h.result = nil
	return nil
}

func (h *Handler) Cleanup(m milter.Modifier) {}

// stripAngles removes the <> around an SMTP envelope address
func stripAngles(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<")
	s = strings.TrimSuffix(s, ">")
	return strings.TrimSpace(s)
}

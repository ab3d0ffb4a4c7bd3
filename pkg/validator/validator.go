package validator

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mailsift/mailsift/pkg/config"
	"github.com/mailsift/mailsift/pkg/detect"
	"github.com/mailsift/mailsift/pkg/email"
	"github.com/mailsift/mailsift/pkg/fingerprint"
	"github.com/mailsift/mailsift/pkg/markov"
	"github.com/mailsift/mailsift/pkg/pattern"
	"github.com/mailsift/mailsift/pkg/record"
	"github.com/mailsift/mailsift/pkg/refdata"
	"github.com/mailsift/mailsift/pkg/risk"
)

// blockMessage is the generic user-visible text; diagnostic detail
// stays in the server record.
const blockMessage = "this email address cannot be used"

// Validator orchestrates one validation end to end: parse, fingerprint,
// classify, detect, aggregate, record.
type Validator struct {
	cfg     *config.Store
	ref     *refdata.Store
	domains *risk.DomainClassifier

	pipeline  *detect.Pipeline
	extractor *pattern.Extractor
	tracker   *pattern.FamilyTracker
	ensemble  *markov.Ensemble

	recorder  *record.Recorder
	forwarder *record.Forwarder

	logf  func(format string, args ...any)
	warnf func(format string, args ...any)
	now   func() time.Time
}

// Option adjusts validator construction
type Option func(*Validator)

// WithEnsemble replaces the compiled-in Markov ensemble, for deployments
// that train on their own traffic.
func WithEnsemble(e *markov.Ensemble) Option {
	return func(v *Validator) { v.ensemble = e }
}

// WithRecorder installs the decision recorder
func WithRecorder(r *record.Recorder) Option {
	return func(v *Validator) { v.recorder = r }
}

// WithForwarder installs the origin forwarder
func WithForwarder(f *record.Forwarder) Option {
	return func(v *Validator) { v.forwarder = f }
}

// WithClock fixes the time source, used by tests
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithLoggers installs the info and warning log functions
func WithLoggers(logf, warnf func(format string, args ...any)) Option {
	return func(v *Validator) {
		if logf != nil {
			v.logf = logf
		}
		if warnf != nil {
			v.warnf = warnf
		}
	}
}

func New(cfg *config.Store, ref *refdata.Store, opts ...Option) *Validator {
	v := &Validator{
		cfg:       cfg,
		ref:       ref,
		domains:   risk.NewDomainClassifier(ref),
		pipeline:  detect.NewPipeline(),
		extractor: pattern.NewExtractor(),
		tracker:   pattern.NewFamilyTracker(time.Hour, 5, 10000),
		ensemble:  markov.Default(),
		logf:      func(string, ...any) {},
		warnf:     func(string, ...any) {},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.pipeline.SetLogger(v.warnf)
	return v
}

// Validate runs the full pipeline for one request. The only error it
// returns is an invalid request (missing email); every other condition
// is expressed inside the envelope.
func (v *Validator) Validate(ctx context.Context, req Request) (*ValidationResult, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, errInvalidRequest("email is required")
	}

	t0 := v.now()
	fp := fingerprint.Derive(req.Signals)

	// cached read: outages fall back to defaults, never block
	cfg, err := v.cfg.Load(ctx)
	if err != nil {
		v.warnf("validator: config load degraded: %v", err)
		cfg = config.Default()
	}

	addr := email.Parse(req.Email)
	res := &ValidationResult{
		RequestID:   uuid.NewString(),
		Fingerprint: fp,
		emailHash:   addr.HashPrefix(),
	}
	res.Signals.Format = addr.Validate()

	if res.Signals.Format.FormatValid {
		v.runDetectors(ctx, addr, cfg, res, t0)
	} else {
		res.Signals.Family = pattern.Family{
			Type:   pattern.TypeUnknown,
			String: pattern.TokenUnknownFamily(addr.Domain),
		}
		res.Signals.Family.Hash = pattern.HashFamily(res.Signals.Family.String)
	}

	assessment := risk.Aggregate(risk.Inputs{
		Format:    res.Signals.Format,
		Domain:    res.Signals.Domain,
		Detectors: res.Signals.Detectors,
		Family:    res.Signals.Family,
		Markov:    res.Signals.Markov,
	}, cfg)

	res.RiskScore = assessment.RiskScore
	res.Decision = assessment.Decision
	res.BlockReason = assessment.BlockReason
	res.Valid = res.Signals.Format.FormatValid && res.Decision != risk.DecisionBlock
	if res.Decision == risk.DecisionBlock {
		res.Message = blockMessage
	}
	res.familyLocal = familyLocal(res.Signals.Family.String)
	res.LatencyMs = float64(v.now().Sub(t0).Microseconds()) / 1000

	v.dispatch(cfg, req, res, t0)
	return res, nil
}

// runDetectors fans out the independent analyses. Detectors are pure
// and read-only, so they run concurrently; the bundle is assembled
// before the aggregator sees any of it.
func (v *Validator) runDetectors(ctx context.Context, addr *email.Address, cfg *config.Config, res *ValidationResult, t0 time.Time) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		res.Signals.Domain = v.domains.Classify(ctx, addr)
	}()
	go func() {
		defer wg.Done()
		res.Signals.Detectors = v.pipeline.Run(addr, t0)
	}()
	go func() {
		defer wg.Done()
		defer func() {
			if p := recover(); p != nil {
				v.warnf("validator: markov ensemble failed, contribution zeroed: %v", p)
			}
		}()
		res.Signals.Markov = v.ensemble.Classify(addr.CanonicalLocal)
	}()
	wg.Wait()

	res.Signals.Family = v.extractor.Extract(addr, res.Signals.Detectors, pattern.DomainContext{
		FreeProvider: res.Signals.Domain.FreeProvider,
		Disposable:   res.Signals.Domain.Disposable,
	})
	res.Signals.Velocity = v.tracker.Observe(res.Signals.Family.Hash, t0)
}

// dispatch sends the side effects: the observability record and,
// when enabled, the origin mirror. Neither touches the response path.
func (v *Validator) dispatch(cfg *config.Config, req Request, res *ValidationResult, t0 time.Time) {
	shouldLog := cfg.Flags.LogAllValidations || res.Decision != risk.DecisionAllow
	if v.recorder != nil && shouldLog {
		v.recorder.Emit(res.Datapoint(t0))
	}
	if v.forwarder != nil && cfg.OriginURL != "" {
		headers := map[string]string{}
		if cfg.Flags.EnableOriginHeaders {
			headers = OriginHeaders(res)
		}
		v.forwarder.Forward(cfg.OriginURL, originBody(req), headers)
	}
	if res.Decision != risk.DecisionAllow {
		v.logf("validator: request=%s decision=%s reason=%s risk=%.3f family=%s consumer=%s flow=%s",
			res.RequestID, res.Decision, res.BlockReason, res.RiskScore,
			res.Signals.Family.Hash, req.Consumer, req.Flow)
	}
}

// familyLocal is the structural projection of the local part: the
// family string with the domain suffix removed.
func familyLocal(family string) string {
	if at := strings.LastIndex(family, "@"); at >= 0 {
		return family[:at]
	}
	return family
}

package record

import (
	"context"
	"time"
)

// Recorder dispatches datapoints to the sink off the request path.
// Failures are logged, never surfaced.
type Recorder struct {
	sink    Sink
	logf    func(format string, args ...any)
	warnf   func(format string, args ...any)
	timeout time.Duration
}

func NewRecorder(sink Sink) *Recorder {
	return &Recorder{
		sink:    sink,
		logf:    func(string, ...any) {},
		warnf:   func(string, ...any) {},
		timeout: 5 * time.Second,
	}
}

// SetLoggers installs the info and warning log functions
func (r *Recorder) SetLoggers(logf, warnf func(format string, args ...any)) {
	if logf != nil {
		r.logf = logf
	}
	if warnf != nil {
		r.warnf = warnf
	}
}

// Emit writes the datapoint in the background. Blocks are additionally
// logged at warning level so they stand out in plain log streams.
func (r *Recorder) Emit(dp Datapoint) {
	if dp.Decision() == "block" {
		r.warnf("blocked email_hash=%s reason=%s risk=%.3f",
			dp.EmailHash, dp.Blobs[BlobBlockReason], dp.Doubles[DoubleRiskScore])
	}
	if r.sink == nil {
		return
	}
	spawn(r.logf, "sink write", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		return r.sink.Write(ctx, dp)
	})
}

// spawn runs fn detached; a failure is logged and dropped
func spawn(logf func(format string, args ...any), name string, fn func() error) {
	go func() {
		defer func() {
			if p := recover(); p != nil {
				logf("record: %s panicked: %v", name, p)
			}
		}()
		if err := fn(); err != nil {
			logf("record: %s failed: %v", name, err)
		}
	}()
}

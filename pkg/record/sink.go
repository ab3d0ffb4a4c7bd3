package record

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Sink receives decision datapoints. Writes are best-effort: a failing
// sink never fails a validation.
type Sink interface {
	Write(ctx context.Context, dp Datapoint) error
}

// StreamSink appends datapoints to a redis stream, one entry per
// validation, positional fields named blob1..blob14 / double1..double8 /
// index1 so consumers can address them stably.
type StreamSink struct {
	rdb    redis.UniversalClient
	stream string
	maxLen int64
}

func NewStreamSink(rdb redis.UniversalClient, stream string) *StreamSink {
	return &StreamSink{rdb: rdb, stream: stream, maxLen: 100000}
}

func (s *StreamSink) Write(ctx context.Context, dp Datapoint) error {
	values := make(map[string]interface{}, NumBlobs+NumDoubles+3)
	values["ts"] = dp.Timestamp.UnixMilli()
	values["index1"] = dp.Index
	values["email_hash"] = dp.EmailHash
	for i, b := range dp.Blobs {
		values["blob"+strconv.Itoa(i+1)] = b
	}
	for i, d := range dp.Doubles {
		values["double"+strconv.Itoa(i+1)] = d
	}

	err := s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: values,
	}).Err()
	if err != nil {
		return fmt.Errorf("stream append: %w", err)
	}
	return nil
}

// LogSink writes datapoints through a log function, for deployments
// without a stream consumer.
type LogSink struct {
	logf func(format string, args ...any)
}

func NewLogSink(logf func(format string, args ...any)) *LogSink {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &LogSink{logf: logf}
}

func (s *LogSink) Write(_ context.Context, dp Datapoint) error {
	s.logf("decision email_hash=%s decision=%s reason=%s risk=%.3f bucket=%s latency_ms=%.1f fingerprint=%s",
		dp.EmailHash,
		dp.Blobs[BlobDecision],
		dp.Blobs[BlobBlockReason],
		dp.Doubles[DoubleRiskScore],
		dp.Blobs[BlobRiskBucket],
		dp.Doubles[DoubleLatencyMs],
		dp.Index,
	)
	return nil
}

package fanlog

import (
	"io"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// discardSink drops every event after touching the message, the cheapest
// realistic sink.
type discardSink struct {
	n int
}

func (s *discardSink) Deliver(e *Event) {
	s.n += len(e.Message)
}

func newBenchDispatcher(b *testing.B) *Dispatcher {
	b.Helper()
	d, err := New(WithCapacity(4096))
	if err != nil {
		b.Fatalf("failed to create dispatcher: %v", err)
	}
	b.Cleanup(func() { _ = d.Close() })
	return d
}

func BenchmarkLogAsync(b *testing.B) {
	d := newBenchDispatcher(b)
	d.AddSink(&discardSink{})
	d.Flush()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Log(NewEvent(FlagInfo, LevelInfo, "benchmark message"))
	}
	b.StopTimer()
	d.Flush()
}

func BenchmarkLogSync(b *testing.B) {
	d := newBenchDispatcher(b)
	d.AddSink(&discardSink{})
	d.Flush()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.LogSync(NewEvent(FlagInfo, LevelInfo, "benchmark message"))
	}
}

func BenchmarkLogAsyncFourSinks(b *testing.B) {
	d := newBenchDispatcher(b)
	for i := 0; i < 4; i++ {
		d.AddSink(&discardSink{})
	}
	d.Flush()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Log(NewEvent(FlagInfo, LevelInfo, "benchmark message"))
	}
	b.StopTimer()
	d.Flush()
}

func BenchmarkLogAsyncParallelProducers(b *testing.B) {
	d := newBenchDispatcher(b)
	d.AddSink(&discardSink{})
	d.Flush()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			d.Log(NewEvent(FlagInfo, LevelInfo, "benchmark message"))
		}
	})
	b.StopTimer()
	d.Flush()
}

// BenchmarkZapComparison logs the same payload through an io.Discard zap
// logger, as a throughput reference point for the async path above.
func BenchmarkZapComparison(b *testing.B) {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(io.Discard), zap.InfoLevel)
	logger := zap.New(core)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message")
	}
}

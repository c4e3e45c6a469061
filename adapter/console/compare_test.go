package console_test

import (
	"io"
	"testing"
	"time"

	"github.com/trickstertwo/logfront"
	_ "github.com/trickstertwo/logfront/adapter/console"
	_ "github.com/trickstertwo/logfront/adapter/slog"
	_ "github.com/trickstertwo/logfront/adapter/zap"
	_ "github.com/trickstertwo/logfront/adapter/zerolog"
)

var (
	cmpAt    = time.Date(2024, 12, 31, 23, 59, 59, 123_000_000, time.UTC)
	cmpNames = []string{"console", "json", "slog", "zap", "zerolog"}
)

func genFieldsN(n int) []logfront.Field {
	fs := make([]logfront.Field, 0, n)
	for i := range n {
		switch i % 5 {
		case 0:
			fs = append(fs, logfront.Str("s", "v"))
		case 1:
			fs = append(fs, logfront.Int64("i", int64(i)))
		case 2:
			fs = append(fs, logfront.Bool("b", i&1 == 0))
		case 3:
			fs = append(fs, logfront.Dur("d", time.Millisecond))
		default:
			fs = append(fs, logfront.Float64("f", 3.14159))
		}
	}
	return fs
}

func runCompare(b *testing.B, fields, bound []logfront.Field, parallel bool) {
	b.Helper()

	for _, name := range cmpNames {
		b.Run(name, func(b *testing.B) {
			newAdapter, err := logfront.LookupAdapterFactory(name)
			if err != nil {
				b.Fatal(err)
			}
			a := newAdapter(io.Discard, logfront.LevelDebug)
			if len(bound) > 0 {
				a = a.With(bound)
			}
			b.ReportAllocs()
			b.ResetTimer()
			if parallel {
				b.RunParallel(func(pb *testing.PB) {
					for pb.Next() {
						a.Log(logfront.LevelInfo, "bench", "bench", cmpAt, fields)
					}
				})
				return
			}
			for i := 0; i < b.N; i++ {
				a.Log(logfront.LevelInfo, "bench", "bench", cmpAt, fields)
			}
		})
	}
}

func BenchmarkCompare_Serial_NoFields(b *testing.B) {
	runCompare(b, nil, nil, false)
}

func BenchmarkCompare_Serial_10Fields(b *testing.B) {
	runCompare(b, genFieldsN(10), nil, false)
}

func BenchmarkCompare_Serial_Bound5_5Fields(b *testing.B) {
	runCompare(b, genFieldsN(5), genFieldsN(5), false)
}

func BenchmarkCompare_Parallel_10Fields(b *testing.B) {
	runCompare(b, genFieldsN(10), nil, true)
}

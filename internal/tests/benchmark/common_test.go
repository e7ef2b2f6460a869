package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/yndnr/gridmatch-go/internal/core/domain"
	"github.com/yndnr/gridmatch-go/internal/core/service"
	"github.com/yndnr/gridmatch-go/internal/storage/memory"
	"github.com/yndnr/gridmatch-go/pkg/gamecode"
)

// LobbyCounts defines the registry sizes for benchmarking.
var LobbyCounts = []int{1000, 10000, 100000}

// SmallLobbyCounts for quick benchmarks.
var SmallLobbyCounts = []int{1000, 5000, 10000}

// newBenchTokens creates a token service with a fixed secret.
func newBenchTokens(b *testing.B) *service.TokenService {
	b.Helper()

	tokens, err := service.NewTokenService(&service.TokenServiceConfig{
		Secret: "benchmark-secret-key",
	})
	if err != nil {
		b.Fatalf("NewTokenService failed: %v", err)
	}
	return tokens
}

// newBenchSession creates a seated session for the given lobby.
func newBenchSession(b *testing.B, code, name string) *domain.Session {
	b.Helper()

	sess, err := domain.NewSession(code, name)
	if err != nil {
		b.Fatalf("NewSession failed: %v", err)
	}
	return sess
}

// prefillStore fills a registry with waiting lobbies and returns their codes.
func prefillStore(b *testing.B, ctx context.Context, store *memory.Store, count int) []string {
	b.Helper()

	codes := make([]string, count)
	for i := 0; i < count; i++ {
		code, err := gamecode.Generate()
		if err != nil {
			b.Fatalf("Generate failed: %v", err)
		}

		lobby := domain.NewLobby(code)
		if err := store.CreateLobby(ctx, lobby); err != nil {
			// Collisions get rarer as the registry fills; retry once
			// with a longer code.
			code, _ = gamecode.GenerateWithLength(10)
			lobby = domain.NewLobby(code)
			if err := store.CreateLobby(ctx, lobby); err != nil {
				b.Fatalf("CreateLobby failed: %v", err)
			}
		}
		codes[i] = code
	}
	return codes
}

// playedOutMoves is an X-wins sequence across the top row.
var playedOutMoves = []struct {
	mark domain.Mark
	pos  int
}{
	{domain.X, 0}, {domain.O, 3}, {domain.X, 1}, {domain.O, 4}, {domain.X, 2},
}

// reportMemory attaches heap usage to the benchmark output.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.HeapAlloc)/1024/1024, fmt.Sprintf("%s-heap-MB", prefix))
}

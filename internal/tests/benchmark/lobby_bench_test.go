package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/yndnr/gridmatch-go/internal/core/service"
	"github.com/yndnr/gridmatch-go/internal/storage/memory"
)

// BenchmarkLobbyCreate benchmarks lobby creation at various registry sizes.
func BenchmarkLobbyCreate(b *testing.B) {
	for _, preload := range SmallLobbyCounts {
		b.Run(fmt.Sprintf("preload_%d", preload), func(b *testing.B) {
			ctx := context.Background()
			store := memory.New()
			lobbies := service.NewLobbyService(store, newBenchTokens(b), nil, nil)

			prefillStore(b, ctx, store, preload)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_, err := lobbies.Create(ctx, &service.CreateLobbyRequest{
					PlayerName: fmt.Sprintf("bench-player-%d", i),
				})
				if err != nil {
					b.Fatalf("Create failed: %v", err)
				}
			}

			b.StopTimer()
			reportMemory(b, "mem")
		})
	}
}

// BenchmarkLobbyGet benchmarks snapshot reads at various registry sizes.
func BenchmarkLobbyGet(b *testing.B) {
	for _, count := range SmallLobbyCounts {
		b.Run(fmt.Sprintf("lobbies_%d", count), func(b *testing.B) {
			ctx := context.Background()
			store := memory.New()
			lobbies := service.NewLobbyService(store, newBenchTokens(b), nil, nil)

			codes := prefillStore(b, ctx, store, count)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				code := codes[i%len(codes)]
				if _, err := lobbies.Get(ctx, &service.GetLobbyRequest{Code: code}); err != nil {
					b.Fatalf("Get failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkLobbyCreateJoin benchmarks the full create-then-join pairing flow.
func BenchmarkLobbyCreateJoin(b *testing.B) {
	ctx := context.Background()
	store := memory.New()
	lobbies := service.NewLobbyService(store, newBenchTokens(b), nil, nil)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		created, err := lobbies.Create(ctx, &service.CreateLobbyRequest{PlayerName: "alice"})
		if err != nil {
			b.Fatalf("Create failed: %v", err)
		}

		joined, err := lobbies.Join(ctx, &service.JoinLobbyRequest{
			Code:       created.Code,
			PlayerName: "bob",
		})
		if err != nil {
			b.Fatalf("Join failed: %v", err)
		}
		if !joined.Started {
			b.Fatal("second seat should start the game")
		}
	}
}

// BenchmarkStoreLobbyBySession benchmarks the session index lookup.
func BenchmarkStoreLobbyBySession(b *testing.B) {
	ctx := context.Background()
	store := memory.New()
	codes := prefillStore(b, ctx, store, 10000)

	sessionIDs := make([]string, len(codes))
	for i, code := range codes {
		sess := newBenchSession(b, code, "player")
		if err := store.BindSession(ctx, sess.ID, code); err != nil {
			b.Fatalf("BindSession failed: %v", err)
		}
		sessionIDs[i] = sess.ID
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		id := sessionIDs[i%len(sessionIDs)]
		if _, err := store.LobbyBySession(ctx, id); err != nil {
			b.Fatalf("LobbyBySession failed: %v", err)
		}
	}
}

// cmd/replaydlq/main.go: Devuelve a la cola los envíos de reportes que
// terminaron en la dead letter queue.
// Uso: go run ./cmd/replaydlq -n 50
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/config"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/infra"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/worker"
)

func main() {
	limit := flag.Int("n", 100, "máximo de trabajos a reencolar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "redis: %v\n", err)
		os.Exit(1)
	}
	defer rdb.Close()

	ctx := context.Background()
	pending, _ := worker.DLQLength(ctx, rdb, worker.QueueReportes)
	moved, err := worker.ReplayDLQ(ctx, rdb, worker.QueueReportes, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d de %d trabajos reencolados en %s\n", moved, pending, worker.QueueReportes)
}

package world

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
)

// Build generates every chunk and then meshes every chunk. Meshing reads
// neighbour cells, so the generation phase finishes completely before the
// first mesh is built. workers bounds the goroutines per phase; 0 means
// unbounded.
func (w *World) Build(ctx context.Context, g gen.Generator, workers int) error {
	start := time.Now()

	err := w.forEachChunk(ctx, workers, func(c *Chunk) {
		g.Generate(chunkVolume{w: w, origin: c.Origin(w.dims.ChunkSize)})
	})
	if err != nil {
		return fmt.Errorf("generate chunks: %w", err)
	}
	generated := time.Since(start)

	if err := w.forEachChunk(ctx, workers, w.rebuild); err != nil {
		return fmt.Errorf("mesh chunks: %w", err)
	}

	for _, c := range w.chunks {
		c.dirty = false
	}
	w.dirtyQueue = w.dirtyQueue[:0]

	empty := 0
	for _, c := range w.chunks {
		if c.empty {
			empty++
		}
	}
	w.log.Info("world built",
		"chunks", len(w.chunks),
		"empty", empty,
		"generate", generated,
		"total", time.Since(start),
	)
	return nil
}

// forEachChunk runs fn once per chunk. fn must only write state owned by its
// chunk.
func (w *World) forEachChunk(ctx context.Context, workers int, fn func(*Chunk)) error {
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, c := range w.chunks {
		c := c
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

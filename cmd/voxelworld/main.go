package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelworld/internal/camera"
	"github.com/OCharnyshevich/voxelworld/internal/config"
	"github.com/OCharnyshevich/voxelworld/internal/frustum"
	"github.com/OCharnyshevich/voxelworld/internal/picker"
	"github.com/OCharnyshevich/voxelworld/internal/scene"
	"github.com/OCharnyshevich/voxelworld/internal/viewer"
	"github.com/OCharnyshevich/voxelworld/internal/wire"
	"github.com/OCharnyshevich/voxelworld/internal/world"
)

func main() {
	cfg := config.Default()

	configSrc := flag.String("config", "", "config file path or go-getter URL (http, git::, s3::)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "terrain seed")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.IntVar(&cfg.World.Width, "world-width", cfg.World.Width, "world width in chunks")
	flag.IntVar(&cfg.World.Height, "world-height", cfg.World.Height, "world height in chunks")
	flag.IntVar(&cfg.World.Depth, "world-depth", cfg.World.Depth, "world depth in chunks")
	flag.IntVar(&cfg.World.ChunkSize, "chunk-size", cfg.World.ChunkSize, "chunk edge in voxels")
	flag.IntVar(&cfg.World.Workers, "workers", cfg.World.Workers, "build goroutines per phase (0 = one per chunk)")
	flag.IntVar(&cfg.World.MaxRebuildsPerFrame, "max-rebuilds", cfg.World.MaxRebuildsPerFrame, "chunk meshes rebuilt per frame (0 = all)")
	flag.StringVar(&cfg.Terrain.Generator, "generator", cfg.Terrain.Generator, "terrain generator: default or flat")
	flag.BoolVar(&cfg.Terrain.Caves, "caves", cfg.Terrain.Caves, "carve caves below the surface")
	flag.StringVar(&cfg.Viewer.Addr, "addr", cfg.Viewer.Addr, "viewer listen address")
	flag.IntVar(&cfg.Viewer.TickHz, "tick-hz", cfg.Viewer.TickHz, "frames per second")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *configSrc != "" {
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

		fromFile, err := loadConfig(ctx, *configSrc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, explicit)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error("voxelworld error", "error", err)
		os.Exit(1)
	}
}

func loadConfig(ctx context.Context, src string) (*config.Config, error) {
	if _, err := os.Stat(src); err == nil {
		return config.Load(src)
	}
	dir, err := os.MkdirTemp("", "voxelworld-config")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	path, err := config.Fetch(ctx, src, filepath.Join(dir, "voxelworld.yaml"))
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	w, err := world.New(cfg.Dims(), log)
	if err != nil {
		return fmt.Errorf("create world: %w", err)
	}
	log.Info("building world",
		"chunks", cfg.Dims().Chunks(),
		"chunkSize", cfg.World.ChunkSize,
		"generator", cfg.Terrain.Generator,
		"seed", cfg.Seed,
	)
	if err := w.Build(ctx, cfg.Generator(), cfg.World.Workers); err != nil {
		return fmt.Errorf("build world: %w", err)
	}

	p, err := picker.New(w, cfg.PickerOptions())
	if err != nil {
		return fmt.Errorf("create picker: %w", err)
	}
	// Yaw -90° faces -z.
	cam := camera.New(cfg.Center(), mgl32.DegToRad(-90), 0, mgl32.DegToRad(cfg.Camera.PitchMax), cfg.Lens())
	ctl := camera.NewController(cam, cfg.Camera.Speed, cfg.Camera.Sensitivity)
	culler := frustum.New(cfg.VerticalFOV(), cfg.Camera.Aspect, cfg.Camera.Near, cfg.Camera.Far)
	sc := scene.New(w, ctl, p, culler, cfg.World.MaxRebuildsPerFrame, log)

	codec, err := wire.NewCodec()
	if err != nil {
		return err
	}
	defer codec.Close()

	return viewer.New(cfg, sc, codec, log).Start(ctx)
}

package config

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelworld/internal/camera"
	"github.com/OCharnyshevich/voxelworld/internal/picker"
	"github.com/OCharnyshevich/voxelworld/internal/world"
	"github.com/OCharnyshevich/voxelworld/pkg/voxel"
	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
)

// Config holds every startup setting. It is not modified after startup.
type Config struct {
	Seed     int64  `yaml:"seed" json:"seed"`
	LogLevel string `yaml:"log_level" json:"log_level"`

	World   WorldConfig   `yaml:"world" json:"world"`
	Terrain TerrainConfig `yaml:"terrain" json:"terrain"`
	Camera  CameraConfig  `yaml:"camera" json:"camera"`
	Picker  PickerConfig  `yaml:"picker" json:"picker"`
	Viewer  ViewerConfig  `yaml:"viewer" json:"viewer"`
}

// WorldConfig sizes the world. Width, Height and Depth count chunks.
type WorldConfig struct {
	Width     int `yaml:"width" json:"width"`
	Height    int `yaml:"height" json:"height"`
	Depth     int `yaml:"depth" json:"depth"`
	ChunkSize int `yaml:"chunk_size" json:"chunk_size"`

	// Workers bounds build goroutines per phase (0 = one per chunk).
	Workers int `yaml:"workers" json:"workers"`
	// MaxRebuildsPerFrame caps dirty re-meshing per frame (0 = all).
	MaxRebuildsPerFrame int `yaml:"max_rebuilds_per_frame" json:"max_rebuilds_per_frame"`
}

type TerrainConfig struct {
	Generator  string `yaml:"generator" json:"generator"` // "default" or "flat"
	FlatHeight int    `yaml:"flat_height" json:"flat_height"`

	SnowLevel    int  `yaml:"snow_level" json:"snow_level"`
	StoneLevel   int  `yaml:"stone_level" json:"stone_level"`
	DirtLevel    int  `yaml:"dirt_level" json:"dirt_level"`
	GrassLevel   int  `yaml:"grass_level" json:"grass_level"`
	SubsoilDepth int  `yaml:"subsoil_depth" json:"subsoil_depth"`
	Caves        bool `yaml:"caves" json:"caves"`

	TreeProbability float64 `yaml:"tree_probability" json:"tree_probability"`
	TreeWidth       int     `yaml:"tree_width" json:"tree_width"`
	TreeHeight      int     `yaml:"tree_height" json:"tree_height"`
}

// CameraConfig angles are in degrees, speed in voxels per second.
type CameraConfig struct {
	FOV         float32 `yaml:"fov" json:"fov"`
	Aspect      float32 `yaml:"aspect" json:"aspect"`
	Near        float32 `yaml:"near" json:"near"`
	Far         float32 `yaml:"far" json:"far"`
	PitchMax    float32 `yaml:"pitch_max" json:"pitch_max"`
	Speed       float32 `yaml:"speed" json:"speed"`
	Sensitivity float32 `yaml:"sensitivity" json:"sensitivity"`
}

type PickerConfig struct {
	MaxDistance float32 `yaml:"max_distance" json:"max_distance"`
	Step        float32 `yaml:"step" json:"step"`
	Material    string  `yaml:"material" json:"material"`
}

type ViewerConfig struct {
	Addr   string `yaml:"addr" json:"addr"`
	TickHz int    `yaml:"tick_hz" json:"tick_hz"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	p := gen.DefaultParams()
	return &Config{
		Seed:     p.Seed,
		LogLevel: "info",
		World: WorldConfig{
			Width:     12,
			Height:    2,
			Depth:     12,
			ChunkSize: 48,
		},
		Terrain: TerrainConfig{
			Generator:       "default",
			FlatHeight:      8,
			SnowLevel:       p.SnowLevel,
			StoneLevel:      p.StoneLevel,
			DirtLevel:       p.DirtLevel,
			GrassLevel:      p.GrassLevel,
			SubsoilDepth:    p.SubsoilDepth,
			TreeProbability: p.TreeProbability,
			TreeWidth:       p.TreeWidth,
			TreeHeight:      p.TreeHeight,
		},
		Camera: CameraConfig{
			FOV:         50,
			Aspect:      16.0 / 9.0,
			Near:        0.1,
			Far:         2000,
			PitchMax:    89,
			Speed:       7,
			Sensitivity: 0.001,
		},
		Picker: PickerConfig{
			MaxDistance: 6,
			Step:        0.1,
			Material:    "stone",
		},
		Viewer: ViewerConfig{
			Addr:   "127.0.0.1:8080",
			TickHz: 60,
		},
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	keep := *cfg
	*cfg = *fromFile

	if explicitFlags["seed"] {
		cfg.Seed = keep.Seed
	}
	if explicitFlags["log-level"] {
		cfg.LogLevel = keep.LogLevel
	}
	if explicitFlags["world-width"] {
		cfg.World.Width = keep.World.Width
	}
	if explicitFlags["world-height"] {
		cfg.World.Height = keep.World.Height
	}
	if explicitFlags["world-depth"] {
		cfg.World.Depth = keep.World.Depth
	}
	if explicitFlags["chunk-size"] {
		cfg.World.ChunkSize = keep.World.ChunkSize
	}
	if explicitFlags["workers"] {
		cfg.World.Workers = keep.World.Workers
	}
	if explicitFlags["max-rebuilds"] {
		cfg.World.MaxRebuildsPerFrame = keep.World.MaxRebuildsPerFrame
	}
	if explicitFlags["generator"] {
		cfg.Terrain.Generator = keep.Terrain.Generator
	}
	if explicitFlags["caves"] {
		cfg.Terrain.Caves = keep.Terrain.Caves
	}
	if explicitFlags["addr"] {
		cfg.Viewer.Addr = keep.Viewer.Addr
	}
	if explicitFlags["tick-hz"] {
		cfg.Viewer.TickHz = keep.Viewer.TickHz
	}
}

// Dims returns the world extent.
func (c *Config) Dims() world.Dims {
	return world.Dims{
		Width:     c.World.Width,
		Height:    c.World.Height,
		Depth:     c.World.Depth,
		ChunkSize: c.World.ChunkSize,
	}
}

// WorldHeight returns the world height in voxels.
func (c *Config) WorldHeight() int { return c.World.Height * c.World.ChunkSize }

// Center returns the middle of the world's top face at one chunk height,
// where the camera starts.
func (c *Config) Center() mgl32.Vec3 {
	s := float32(c.World.ChunkSize)
	return mgl32.Vec3{float32(c.World.Width) * s / 2, s, float32(c.World.Depth) * s / 2}
}

// VerticalFOV returns the camera field of view in radians.
func (c *Config) VerticalFOV() float32 { return mgl32.DegToRad(c.Camera.FOV) }

func (c *Config) Lens() camera.Lens {
	return camera.Lens{
		FOV:    c.VerticalFOV(),
		Aspect: c.Camera.Aspect,
		Near:   c.Camera.Near,
		Far:    c.Camera.Far,
	}
}

// GenParams returns the terrain parameters for the configured world.
func (c *Config) GenParams() gen.Params {
	s := c.World.ChunkSize
	t := c.Terrain
	return gen.Params{
		Seed:            c.Seed,
		Width:           c.World.Width * s,
		Height:          c.World.Height * s,
		Depth:           c.World.Depth * s,
		SnowLevel:       t.SnowLevel,
		StoneLevel:      t.StoneLevel,
		DirtLevel:       t.DirtLevel,
		GrassLevel:      t.GrassLevel,
		SubsoilDepth:    t.SubsoilDepth,
		Caves:           t.Caves,
		TreeProbability: t.TreeProbability,
		TreeWidth:       t.TreeWidth,
		TreeHeight:      t.TreeHeight,
	}
}

// Generator returns the configured terrain generator.
func (c *Config) Generator() gen.Generator {
	if c.Terrain.Generator == "flat" {
		return gen.NewFlatGenerator(c.Terrain.FlatHeight)
	}
	return gen.NewDefaultGenerator(c.GenParams())
}

// PickerOptions returns the ray march settings. Call Validate first; an
// unknown material name falls back to stone.
func (c *Config) PickerOptions() picker.Options {
	m, err := voxel.Parse(c.Picker.Material)
	if err != nil || m == voxel.Air {
		m = voxel.Stone
	}
	return picker.Options{
		MaxDistance: c.Picker.MaxDistance,
		Step:        c.Picker.Step,
		Material:    m,
	}
}

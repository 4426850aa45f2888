package config

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/OCharnyshevich/voxelworld/internal/mesh"
	"github.com/OCharnyshevich/voxelworld/internal/wire"
	"github.com/OCharnyshevich/voxelworld/pkg/voxel"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("voxelworld.schema.json", schemaJSON)

// Load reads a YAML file on top of the defaults. Unknown keys are errors.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Validate checks the config against the embedded JSON schema and the rules
// a schema cannot express.
func (c *Config) Validate() error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if c.World.ChunkSize > mesh.MaxChunkSize {
		return fmt.Errorf("%w: chunk_size %d exceeds %d", ErrInvalid, c.World.ChunkSize, mesh.MaxChunkSize)
	}
	// The cell above the top layer must still encode.
	if h := c.WorldHeight(); h > wire.MaxPosY {
		return fmt.Errorf("%w: world is %d voxels tall, streamed positions allow %d", ErrInvalid, h, wire.MaxPosY)
	}
	t := c.Terrain
	if !(t.GrassLevel < t.DirtLevel && t.DirtLevel < t.StoneLevel && t.StoneLevel < t.SnowLevel) {
		return fmt.Errorf("%w: levels must satisfy grass < dirt < stone < snow, got %d/%d/%d/%d",
			ErrInvalid, t.GrassLevel, t.DirtLevel, t.StoneLevel, t.SnowLevel)
	}
	if c.Camera.Near >= c.Camera.Far {
		return fmt.Errorf("%w: camera near %v must be below far %v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	m, err := voxel.Parse(c.Picker.Material)
	if err != nil || m == voxel.Air {
		return fmt.Errorf("%w: picker material %q", ErrInvalid, c.Picker.Material)
	}
	return nil
}

// Fetch downloads a config from any go-getter source (local path, http,
// git::, s3::) to dst and returns dst.
func Fetch(ctx context.Context, src, dst string) (string, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working dir: %w", err)
	}
	client := &get.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: get.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("fetch config %s: %w", src, err)
	}
	return dst, nil
}

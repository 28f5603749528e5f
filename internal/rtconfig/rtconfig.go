// Package rtconfig holds the process-wide tunables the core's allocator
// and reader consult: nursery/tenured arena sizes, plus a gensym salt
// that is loaded but not consulted (see GensymConfig).
// Config is loaded from an optional YAML document, mirroring the
// teacher's Config/Load/Validate shape; the collector and reader never
// require a file to function — Default() already returns a usable
// configuration.
package rtconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level tunables document.
type Config struct {
	GC     GCConfig `yaml:"gc"`
	Gensym GensymConfig `yaml:"gensym"`
}

// GCConfig mirrors gcheap.New's two capacity arguments.
type GCConfig struct {
	NurseryBytes uint64 `yaml:"nursery_bytes"`
	TenuredBytes uint64 `yaml:"tenured_bytes"`
}

// GensymConfig holds a salt string read from the "gensym" section.
// Nothing in this module reads Salt: internal/symtab.Gensym builds names
// from its prefix and a UUID only.
type GensymConfig struct {
	Salt string `yaml:"salt"`
}

// Default returns the configuration used when no file is supplied: a 1
// MiB nursery, a 16 MiB tenured generation, and no gensym salt.
func Default() Config {
	return Config{
		GC: GCConfig{
			NurseryBytes: 1 << 20,
			TenuredBytes: 1 << 24,
		},
	}
}

// Load reads and parses a YAML document from path, filling in any field
// the document omits from Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("rtconfig: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("rtconfig: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects a config whose arena sizes could never hold a single
// object header, catching an obviously-wrong YAML document early rather
// than surfacing it as an immediate AllocationFailure on first use.
func (c Config) Validate() error {
	const minArena = 64
	if c.GC.NurseryBytes < minArena {
		return fmt.Errorf("rtconfig: gc.nursery_bytes must be at least %d, got %d", minArena, c.GC.NurseryBytes)
	}
	if c.GC.TenuredBytes < minArena {
		return fmt.Errorf("rtconfig: gc.tenured_bytes must be at least %d, got %d", minArena, c.GC.TenuredBytes)
	}
	return nil
}

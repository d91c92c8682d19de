package bench

import (
	"errors"
	"fmt"

	"github.com/chronos-tachyon/huffcode"
)

// Config controls a Runner.
type Config struct {
	// OutputDir receives the encoded and decoded artifacts.
	OutputDir string

	// WriteArtifacts enables writing <name>_code.txt (or .bin) and
	// <name>_decoded.txt for every source.
	WriteArtifacts bool

	// Packed writes the encoded artifact as packed bytes instead of one
	// '0' / '1' character per bit.  Reported sizes are in bits either way.
	Packed bool

	// FixedWidth selects the width of the baseline codec.
	FixedWidth huffcode.FixedWidth

	// Workers is the number of sources processed at once.
	Workers int

	// CacheSize is the number of built codes kept for reuse when the same
	// content appears more than once.  0 disables the cache.
	CacheSize int
}

// DefaultConfig returns the settings of a plain single-threaded run.
func DefaultConfig() Config {
	return Config{
		OutputDir:  ".",
		FixedWidth: huffcode.ByteWidth,
		Workers:    1,
		CacheSize:  16,
	}
}

// Validate reports the first unusable setting.
func (cfg Config) Validate() error {
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.CacheSize < 0 {
		return fmt.Errorf("cache size must not be negative, got %d", cfg.CacheSize)
	}
	if cfg.WriteArtifacts && cfg.OutputDir == "" {
		return errors.New("output directory is required when writing artifacts")
	}
	switch cfg.FixedWidth {
	case huffcode.ByteWidth, huffcode.MinimalWidth:
	default:
		return fmt.Errorf("unknown fixed width %s", cfg.FixedWidth)
	}
	return nil
}

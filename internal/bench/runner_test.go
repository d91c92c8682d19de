package bench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/chronos-tachyon/huffcode"
	"github.com/chronos-tachyon/huffcode/internal/logger"
)

func writeInputs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	return dir
}

func newTestRunner(t *testing.T, cfg Config) *Runner {
	t.Helper()
	r, err := NewRunner(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	return r
}

func TestRunner_Batch(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"skewed.txt": "aaaaaaaab",
		"empty.txt":  "",
	})
	sources := []string{
		filepath.Join(dir, "skewed.txt"),
		filepath.Join(dir, "empty.txt"),
		filepath.Join(dir, "missing.txt"),
	}

	var done int32
	r := newTestRunner(t, DefaultConfig())
	r.OnDone = func(string, []Result) { atomic.AddInt32(&done, 1) }

	results, err := r.Run(context.Background(), sources)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	if n := atomic.LoadInt32(&done); n != 3 {
		t.Errorf("expected OnDone 3 times, got %d", n)
	}

	type testRow struct {
		scheme  Scheme
		encoded uint64
		kind    string
	}

	testData := [...]testRow{
		{scheme: SchemeFixed, encoded: 72},
		{scheme: SchemeHuffman, encoded: 9},
		{scheme: SchemeFixed, kind: "EmptyAlphabet"},
		{scheme: SchemeHuffman, kind: "EmptyAlphabet"},
		{scheme: SchemeFixed, kind: "Other"},
		{scheme: SchemeHuffman, kind: "Other"},
	}
	for index, row := range testData {
		res := results[index]
		if res.Source != sources[index/2] {
			t.Errorf("row %d: expected source %q, got %q", index, sources[index/2], res.Source)
		}
		if res.Scheme != row.scheme {
			t.Errorf("row %d: expected scheme %q, got %q", index, row.scheme, res.Scheme)
		}
		if kind := ErrorKind(res.Err); kind != row.kind {
			t.Errorf("row %d: expected error kind %q, got %q (%v)", index, row.kind, kind, res.Err)
		}
		if row.kind != "" {
			continue
		}
		if res.EncodedBits != row.encoded {
			t.Errorf("row %d: expected %d encoded bits, got %d", index, row.encoded, res.EncodedBits)
		}
		if res.OriginalBits != 72 {
			t.Errorf("row %d: expected 72 original bits, got %d", index, res.OriginalBits)
		}
		if !res.Verified {
			t.Errorf("row %d: not verified", index)
		}
	}

	if n := Failed(results); n != 4 {
		t.Errorf("expected 4 failed rows, got %d", n)
	}
}

func TestRunner_Cache(t *testing.T) {
	r := newTestRunner(t, DefaultConfig())
	data := []byte("abracadabra")

	first := r.RunData("first", data)
	second := r.RunData("second", data)
	if first[1].Cached {
		t.Errorf("first run unexpectedly cached")
	}
	if !second[1].Cached {
		t.Errorf("second run not cached")
	}
	if first[1].EncodedBits != 23 || second[1].EncodedBits != 23 {
		t.Errorf("expected 23 bits, got %d and %d", first[1].EncodedBits, second[1].EncodedBits)
	}

	cfg := DefaultConfig()
	cfg.CacheSize = 0
	r = newTestRunner(t, cfg)
	r.RunData("first", data)
	if again := r.RunData("second", data); again[1].Cached {
		t.Errorf("run cached with the cache disabled")
	}
}

func TestRunner_Artifacts(t *testing.T) {
	for _, packed := range []bool{false, true} {
		t.Run(fmt.Sprintf("packed=%v", packed), func(t *testing.T) {
			dir := writeInputs(t, map[string]string{"skewed.txt": "aaaaaaaab"})
			outDir := t.TempDir()

			cfg := DefaultConfig()
			cfg.OutputDir = outDir
			cfg.WriteArtifacts = true
			cfg.Packed = packed
			r := newTestRunner(t, cfg)

			results := r.RunFile(filepath.Join(dir, "skewed.txt"))
			if n := Failed(results); n != 0 {
				t.Fatalf("expected no failures, got %d: %v", n, results[1].Err)
			}

			// b → "0", a → "1"
			codeName, expectCode := "skewed_code.txt", []byte("111111110")
			if packed {
				codeName, expectCode = "skewed_code.bin", []byte{0xff, 0x00}
			}
			code, err := os.ReadFile(filepath.Join(outDir, codeName))
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}
			if !bytes.Equal(expectCode, code) {
				t.Errorf("wrong encoded artifact:\n\texpect: %#v\n\tactual: %#v", expectCode, code)
			}

			decoded, err := os.ReadFile(filepath.Join(outDir, "skewed_decoded.txt"))
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}
			if string(decoded) != "aaaaaaaab" {
				t.Errorf("wrong decoded artifact: %q", decoded)
			}
		})
	}
}

func TestRunner_Workers(t *testing.T) {
	files := make(map[string]string)
	var sources []string
	dir := t.TempDir()
	for index := 0; index < 8; index++ {
		name := fmt.Sprintf("input%d.txt", index)
		files[name] = fmt.Sprintf("%0*d", index+1, index)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(files[name]), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		sources = append(sources, path)
	}

	cfg := DefaultConfig()
	cfg.Workers = 4
	r := newTestRunner(t, cfg)
	results, err := r.Run(context.Background(), sources)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 2*len(sources) {
		t.Fatalf("expected %d results, got %d", 2*len(sources), len(results))
	}
	for index, res := range results {
		if res.Source != sources[index/2] {
			t.Errorf("row %d: expected source %q, got %q", index, sources[index/2], res.Source)
		}
		if res.Err != nil {
			t.Errorf("row %d: %v", index, res.Err)
		}
		if expect := uint64(8 * (index/2 + 1)); res.OriginalBits != expect {
			t.Errorf("row %d: expected %d original bits, got %d", index, expect, res.OriginalBits)
		}
	}
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRunner(t, DefaultConfig())
	results, err := r.Run(ctx, []string{"never-read.txt"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestConfig_Validate(t *testing.T) {
	type testRow struct {
		name   string
		mutate func(*Config)
		valid  bool
	}

	testData := [...]testRow{
		{name: "default", mutate: func(*Config) {}, valid: true},
		{name: "minimal-width", mutate: func(cfg *Config) { cfg.FixedWidth = huffcode.MinimalWidth }, valid: true},
		{name: "zero-workers", mutate: func(cfg *Config) { cfg.Workers = 0 }},
		{name: "negative-cache", mutate: func(cfg *Config) { cfg.CacheSize = -1 }},
		{name: "no-output-dir", mutate: func(cfg *Config) { cfg.WriteArtifacts, cfg.OutputDir = true, "" }},
		{name: "bad-width", mutate: func(cfg *Config) { cfg.FixedWidth = 7 }},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			cfg := DefaultConfig()
			row.mutate(&cfg)
			err := cfg.Validate()
			if row.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !row.valid && err == nil {
				t.Errorf("expected an error")
			}
			if _, err := NewRunner(cfg, logger.Nop()); (err == nil) != row.valid {
				t.Errorf("NewRunner disagrees with Validate: %v", err)
			}
		})
	}
}

func TestErrorKind(t *testing.T) {
	type testRow struct {
		err  error
		kind string
	}

	testData := [...]testRow{
		{err: nil, kind: ""},
		{err: fmt.Errorf("wrapped: %w", huffcode.ErrEmptyAlphabet), kind: "EmptyAlphabet"},
		{err: &huffcode.UnknownSymbolError{Symbol: 'x'}, kind: "UnknownSymbol"},
		{err: fmt.Errorf("decode: %w", &huffcode.CorruptStreamError{Reason: "test"}), kind: "CorruptStream"},
		{err: errors.New("disk on fire"), kind: "Other"},
	}
	for _, row := range testData {
		if kind := ErrorKind(row.err); kind != row.kind {
			t.Errorf("ErrorKind(%v) = %q, expected %q", row.err, kind, row.kind)
		}
	}
}

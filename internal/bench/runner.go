// Package bench runs fixed-length and Huffman coding sessions over a batch of
// inputs and collects the size and timing figures for a report.
package bench

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chronos-tachyon/huffcode"
	"github.com/chronos-tachyon/huffcode/internal/logger"
)

// Scheme names a coding scheme in the report.
type Scheme string

const (
	SchemeFixed   Scheme = "fixed-length"
	SchemeHuffman Scheme = "huffman"
)

// Result is one report row: one source coded with one scheme.
type Result struct {
	Source       string
	Scheme       Scheme
	OriginalBits uint64
	EncodedBits  uint64
	EncodeTime   time.Duration
	DecodeTime   time.Duration

	// Verified is set when the decoded output hashes the same as the input.
	Verified bool

	// Cached is set when the Huffman code was reused from an earlier source
	// with identical content, in which case EncodeTime covers only the cache
	// lookup and the encode itself.
	Cached bool

	Err error
}

// Ratio returns OriginalBits / EncodedBits.
func (res Result) Ratio() float64 {
	return huffcode.Ratio(res.OriginalBits, res.EncodedBits)
}

// model is everything derived from one input's frequencies.  It is never
// modified after construction, so sessions may share it.
type model struct {
	ft   huffcode.FrequencyTable
	tree *huffcode.Tree
	book huffcode.CodeBook
}

// Runner processes sources.  Every source is an independent session; the only
// state shared between sessions is the model cache.
type Runner struct {
	cfg   Config
	log   logger.Logger
	cache *lru.Cache[uint64, *model]

	// OnDone, if set, is called after each source finishes.  It may be
	// called from several goroutines at once.
	OnDone func(source string, results []Result)
}

// NewRunner validates cfg and returns a Runner.
func NewRunner(cfg Config, log logger.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	r := &Runner{cfg: cfg, log: log}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[uint64, *model](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("model cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

// Run processes every source, at most cfg.Workers at a time, and returns the
// results in source order, fixed-length row first.  A failing source does not
// stop the batch; its rows carry the error.  Run returns a non-nil error only
// if ctx is cancelled, along with the rows of the sources that completed.
func (r *Runner) Run(ctx context.Context, sources []string) ([]Result, error) {
	perSource := make([][]Result, len(sources))
	sem := make(chan struct{}, r.cfg.Workers)
	var wg sync.WaitGroup

loop:
	for index, source := range sources {
		if ctx.Err() != nil {
			break
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			break loop
		}
		wg.Add(1)
		go func(index int, source string) {
			defer wg.Done()
			defer func() { <-sem }()
			results := r.RunFile(source)
			perSource[index] = results
			if r.OnDone != nil {
				r.OnDone(source, results)
			}
		}(index, source)
	}
	wg.Wait()

	var out []Result
	for _, results := range perSource {
		out = append(out, results...)
	}
	return out, ctx.Err()
}

// RunFile reads one source from disk and runs both schemes over it.
func (r *Runner) RunFile(path string) []Result {
	data, err := os.ReadFile(path)
	if err != nil {
		r.log.Errorf("%s: %v", path, err)
		return failed(path, 0, fmt.Errorf("read input: %w", err))
	}
	return r.RunData(path, data)
}

// RunData runs both schemes over data, labelling the rows with source.
func (r *Runner) RunData(source string, data []byte) []Result {
	digest := xxhash.Sum64(data)

	start := time.Now()
	m, cached, err := r.lookupModel(digest, data)
	buildTime := time.Since(start)
	if err != nil {
		r.log.Errorf("%s: %v", source, err)
		return failed(source, uint64(len(data))*huffcode.BitsPerSymbol, err)
	}

	fixed := r.runFixed(source, data, digest, &m.ft)
	huff := r.runHuffman(source, data, digest, m, cached, buildTime)
	if huff.Err == nil {
		r.log.Debugf("%s: %s", source, &m.book)
	}
	r.log.Infof("%s: %d bytes, %d distinct symbols, fixed %.3f, huffman %.3f",
		source, len(data), m.ft.Len(), fixed.Ratio(), huff.Ratio())
	return []Result{fixed, huff}
}

// lookupModel returns the cached model for digest, or builds a new one.
func (r *Runner) lookupModel(digest uint64, data []byte) (*model, bool, error) {
	if r.cache != nil {
		if m, found := r.cache.Get(digest); found {
			return m, true, nil
		}
	}
	m, err := buildModel(data)
	if err != nil {
		return nil, false, err
	}
	if r.cache != nil {
		r.cache.Add(digest, m)
	}
	return m, false, nil
}

func buildModel(data []byte) (*model, error) {
	m := &model{ft: huffcode.CountBytes(data)}
	tree, err := huffcode.BuildTree(&m.ft)
	if err != nil {
		return nil, err
	}
	m.tree = tree
	m.book = huffcode.NewCodeBook(tree)
	return m, nil
}

func (r *Runner) runFixed(source string, data []byte, digest uint64, ft *huffcode.FrequencyTable) Result {
	res := Result{Source: source, Scheme: SchemeFixed, OriginalBits: huffcode.OriginalBits(ft)}

	start := time.Now()
	fc, err := huffcode.NewFixedLengthCodec(ft, r.cfg.FixedWidth)
	if err != nil {
		res.Err = err
		return res
	}
	bits, err := fc.Encode(data)
	res.EncodeTime = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("fixed-length encode: %w", err)
		return res
	}
	res.EncodedBits = bits.Len()

	start = time.Now()
	out, err := fc.Decode(bits)
	res.DecodeTime = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("fixed-length decode: %w", err)
		return res
	}
	res.Verified = xxhash.Sum64(out) == digest
	if !res.Verified {
		res.Err = errors.New("fixed-length decode: output does not match input")
	}
	return res
}

// runHuffman codes data with m.  Building the code counts as part of
// encoding, so buildTime is added to the encode time.
func (r *Runner) runHuffman(source string, data []byte, digest uint64, m *model, cached bool, buildTime time.Duration) Result {
	res := Result{Source: source, Scheme: SchemeHuffman, OriginalBits: huffcode.OriginalBits(&m.ft), Cached: cached}

	start := time.Now()
	bits, err := huffcode.Encode(data, &m.book)
	res.EncodeTime = buildTime + time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("huffman encode: %w", err)
		return res
	}
	res.EncodedBits = bits.Len()

	start = time.Now()
	out, err := huffcode.Decode(bits, m.tree)
	res.DecodeTime = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("huffman decode: %w", err)
		return res
	}
	res.Verified = xxhash.Sum64(out) == digest
	if !res.Verified {
		res.Err = errors.New("huffman decode: output does not match input")
	}

	if r.cfg.WriteArtifacts {
		if err := r.writeArtifacts(source, &bits, out); err != nil {
			r.log.Errorf("%s: %v", source, err)
			res.Err = err
		}
	}
	return res
}

// writeArtifacts writes the encoded and decoded representations of one
// source into cfg.OutputDir.
func (r *Runner) writeArtifacts(source string, bits *huffcode.BitString, decoded []byte) error {
	base := artifactBase(source)

	codePath := filepath.Join(r.cfg.OutputDir, base+"_code.txt")
	if r.cfg.Packed {
		codePath = filepath.Join(r.cfg.OutputDir, base+"_code.bin")
	}
	if err := writeFile(codePath, func(f *os.File) error {
		if r.cfg.Packed {
			return bits.Pack(f)
		}
		_, err := bits.WriteText(f)
		return err
	}); err != nil {
		return fmt.Errorf("write encoded artifact: %w", err)
	}

	decodedPath := filepath.Join(r.cfg.OutputDir, base+"_decoded.txt")
	if err := os.WriteFile(decodedPath, decoded, 0o644); err != nil {
		return fmt.Errorf("write decoded artifact: %w", err)
	}
	r.log.Debugf("%s: wrote %s and %s", source, codePath, decodedPath)
	return nil
}

func artifactBase(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func failed(source string, originalBits uint64, err error) []Result {
	return []Result{
		{Source: source, Scheme: SchemeFixed, OriginalBits: originalBits, Err: err},
		{Source: source, Scheme: SchemeHuffman, OriginalBits: originalBits, Err: err},
	}
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	var n int
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// ErrorKind names the class of err for reports: "EmptyAlphabet",
// "UnknownSymbol", "CorruptStream", "" for nil, or "Other".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, huffcode.ErrEmptyAlphabet):
		return "EmptyAlphabet"
	case errors.Is(err, huffcode.ErrUnknownSymbol):
		return "UnknownSymbol"
	case errors.Is(err, huffcode.ErrCorruptStream):
		return "CorruptStream"
	default:
		return "Other"
	}
}

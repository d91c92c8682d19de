// Command huffbench compares fixed-length and Huffman coding over a list of
// files and writes a CSV report with sizes in bits, compression ratios, and
// encode / decode times.
//
// Usage:
//
//	huffbench [flags] <file>[,<file>...] [<file>...]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"

	"github.com/chronos-tachyon/huffcode"
	"github.com/chronos-tachyon/huffcode/internal/bench"
	"github.com/chronos-tachyon/huffcode/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	application := "huffbench"
	fs := flag.NewFlagSet(application, flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := bench.DefaultConfig()
	reportPath := fs.String("report", "huffman_results.csv", "Path of the CSV report; empty to skip")
	bom := fs.Bool("bom", true, "Start the report with a UTF-8 byte order mark")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Directory for encoded and decoded artifacts")
	fs.BoolVar(&cfg.WriteArtifacts, "artifacts", false, "Write <name>_code.txt and <name>_decoded.txt for each input")
	fs.BoolVar(&cfg.Packed, "packed", false, "Write the encoded artifact as packed bytes (<name>_code.bin)")
	fixedWidth := fs.String("fixed-width", cfg.FixedWidth.String(), "Baseline code width: byte or minimal")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of inputs processed at once")
	fs.IntVar(&cfg.CacheSize, "cache", cfg.CacheSize, "Number of built codes kept for repeated inputs; 0 disables")
	progress := fs.Bool("progress", false, "Show a progress bar")
	verbose := fs.Bool("v", false, "Log debugging detail")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage of %s [OPTIONS] <file(s)>\n", application)
		fmt.Fprintf(stderr, "Flag:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *noColor {
		color.NoColor = true
	}
	log := logger.New(stderr, *verbose)

	fw, err := huffcode.ParseFixedWidth(*fixedWidth)
	if err != nil {
		log.Errorf("%v", err)
		return 2
	}
	cfg.FixedWidth = fw

	files := splitFiles(fs.Args())
	if len(files) == 0 {
		fmt.Fprintln(stderr, "No file provided")
		fs.Usage()
		return 2
	}
	if cfg.WriteArtifacts {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Errorf("create output directory: %v", err)
			return 1
		}
	}

	runner, err := bench.NewRunner(cfg, log)
	if err != nil {
		log.Errorf("%v", err)
		return 2
	}

	var bar *pb.ProgressBar
	if *progress {
		bar = pb.New(len(files))
		bar.SetWriter(stderr)
		bar.Start()
		runner.OnDone = func(string, []bench.Result) { bar.Increment() }
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := runner.Run(ctx, files)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		log.Errorf("batch interrupted: %v", err)
	}

	printSummary(stdout, results)

	if *reportPath != "" {
		if err := bench.WriteReportFile(*reportPath, results, *bom); err != nil {
			log.Errorf("%v", err)
			return 1
		}
		log.Infof("report written to %s", *reportPath)
	}

	if err != nil || bench.Failed(results) != 0 {
		return 1
	}
	return 0
}

// splitFiles accepts both separate arguments and comma-separated lists.
func splitFiles(args []string) []string {
	var out []string
	for _, arg := range args {
		for _, file := range strings.Split(arg, ",") {
			if file = strings.TrimSpace(file); file != "" {
				out = append(out, file)
			}
		}
	}
	return out
}

func printSummary(w io.Writer, results []bench.Result) {
	ok := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%s %s [%s]: %v\n", fail("FAIL"), res.Source, res.Scheme, res.Err)
			continue
		}
		fmt.Fprintf(w, "%s %s [%s]: %d -> %d bits, ratio %.3f\n",
			ok("OK  "), res.Source, res.Scheme, res.OriginalBits, res.EncodedBits, res.Ratio())
	}
}

// Command dxtlt illustrates the transform/untransform round trip over a DDS
// container from the command line. It is not a generic encoder front end
// (the core never touches pixels) — it only demonstrates wiring
// fileformat/dds, a Bundle of per-format builders, and an Estimator
// together, per spec.md §6.3.
//
// Usage:
//
//	dxtlt transform [options] <input.dds> <output.dds>
//	dxtlt untransform <input.dds> <output.dds>
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/dxtlt/dxt-lossless-transform-go/bc1"
	"github.com/dxtlt/dxt-lossless-transform-go/bc2"
	"github.com/dxtlt/dxt-lossless-transform-go/bc3"
	"github.com/dxtlt/dxt-lossless-transform-go/estimator"
	"github.com/dxtlt/dxt-lossless-transform-go/estimator/lzmatch"
	"github.com/dxtlt/dxt-lossless-transform-go/estimator/zstdsize"
	"github.com/dxtlt/dxt-lossless-transform-go/fileformat"
	"github.com/dxtlt/dxt-lossless-transform-go/fileformat/dds"
	"github.com/dxtlt/dxt-lossless-transform-go/header"
)

func main() {
	log.SetFlags(log.Lshortfile)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "transform":
		err = runTransform(os.Args[2:])
	case "untransform":
		err = runUntransform(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "dxtlt: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "dxtlt: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  dxtlt transform [options] <input.dds> <output.dds>
  dxtlt untransform <input.dds> <output.dds>

Run "dxtlt <command> -h" for command-specific options.
`)
}

// transformOptions are parsed by go-flags; --auto (-a) picks the
// estimator-driven brute-force search instead of the fixed defaults.
type transformOptions struct {
	Auto          bool   `short:"a" long:"auto" description:"search all settings combinations with an estimator instead of using the defaults"`
	Estimator     string `short:"e" long:"estimator" default:"lzmatch" choice:"lzmatch" choice:"zstd" description:"estimator used by --auto"`
	Comprehensive bool   `short:"c" long:"comprehensive" description:"also try Variant2/Variant3 decorrelation when searching (implies --auto)"`
}

func runTransform(args []string) error {
	var opts transformOptions
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "dxtlt transform"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}
	if len(rest) != 2 {
		return fmt.Errorf("expected <input.dds> <output.dds>, got %d positional args", len(rest))
	}
	input, output := rest[0], rest[1]

	src, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}

	bundle, err := buildBundle(opts)
	if err != nil {
		return err
	}
	handler := dds.Handler{}
	if !handler.CanHandle(src, filepath.Ext(input)) {
		return fmt.Errorf("%s is not a recognized DDS file", input)
	}

	dst := make([]byte, len(src))
	if err := handler.Transform(src, dst, bundle); err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	if err := os.WriteFile(output, dst, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	log.Printf("transformed %s (%d bytes) -> %s", input, len(src), output)
	return nil
}

func runUntransform(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected <input.dds> <output.dds>, got %d positional args", len(args))
	}
	input, output := args[0], args[1]

	src, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}

	bundle := fileformat.NewBundle().
		With(header.FormatBC1, fileformat.ManualBuilder{Format: header.FormatBC1}).
		With(header.FormatBC2, fileformat.ManualBuilder{Format: header.FormatBC2}).
		With(header.FormatBC3, fileformat.ManualBuilder{Format: header.FormatBC3})
	handler := dds.Handler{}

	dst := make([]byte, len(src))
	if err := handler.Untransform(src, dst, bundle); err != nil {
		return fmt.Errorf("untransform: %w", err)
	}
	if err := os.WriteFile(output, dst, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	log.Printf("untransformed %s (%d bytes) -> %s", input, len(src), output)
	return nil
}

// buildBundle wires one Builder per BC format according to opts: either the
// fixed default Settings, or an AutoBuilder driven by the chosen Estimator.
func buildBundle(opts transformOptions) (*fileformat.Bundle, error) {
	bundle := fileformat.NewBundle()

	if !opts.Auto && !opts.Comprehensive {
		return bundle.
			With(header.FormatBC1, fileformat.ManualBuilder{Format: header.FormatBC1, BC1: bc1.DefaultSettings()}).
			With(header.FormatBC2, fileformat.ManualBuilder{Format: header.FormatBC2, BC2: bc2.DefaultSettings()}).
			With(header.FormatBC3, fileformat.ManualBuilder{Format: header.FormatBC3, BC3: bc3.DefaultSettings()}), nil
	}

	est, err := chooseEstimator(opts.Estimator)
	if err != nil {
		return nil, err
	}
	comprehensive := opts.Comprehensive

	return bundle.
		With(header.FormatBC1, fileformat.AutoBuilder{
			Format: header.FormatBC1,
			BC1:    bc1.EstimateSettings{Estimator: est, UseAllDecorrelationModes: comprehensive},
		}).
		With(header.FormatBC2, fileformat.AutoBuilder{
			Format: header.FormatBC2,
			BC2:    bc2.EstimateSettings{Estimator: est, UseAllDecorrelationModes: comprehensive},
		}).
		With(header.FormatBC3, fileformat.AutoBuilder{
			Format: header.FormatBC3,
			BC3:    bc3.EstimateSettings{Estimator: est, UseAllDecorrelationModes: comprehensive},
		}), nil
}

func chooseEstimator(name string) (estimator.Estimator, error) {
	switch name {
	case "lzmatch":
		return lzmatch.New(), nil
	case "zstd":
		return zstdsize.NewDefault(), nil
	default:
		return nil, fmt.Errorf("unknown estimator %q", name)
	}
}

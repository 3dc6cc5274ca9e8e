package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/vearutop/uwcolor"
)

// errUsage marks invalid command lines, reported with usage and exit code 2.
var errUsage = errors.New("usage")

func main() {
	log.SetFlags(0)
	log.SetPrefix("uwcolor: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:])
	stop()

	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		usage()
		os.Exit(2)
	default:
		fail(err)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	switch args[0] {
	case "enhance":
		return runEnhance(ctx, args[1:])
	case "brackets":
		return runBrackets(args[1:])
	case "sample":
		return runSample(ctx, args[1:])
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

// parseFlags wraps flag errors, including -h, as usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: uwcolor <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  enhance  -in photo.jpg -out corrected.jpg [-depth 5] [-red 1.5] [-green 1.2] [-blue 1.1] [-q 90]")
	fmt.Fprintln(os.Stderr, "           [-keep-meta] [-compare side.jpg] [-preview 1024] [-sample-url URL] [-timeout 30s] [-v]")
	fmt.Fprintln(os.Stderr, "           (without -in the sample image is downloaded and corrected)")
	fmt.Fprintln(os.Stderr, "  brackets (prints depth brackets and default profiles as JSON)")
	fmt.Fprintln(os.Stderr, "  sample   -out sample.jpg [-url URL] [-timeout 30s]")
}

func runEnhance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("enhance", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image (jpg, png, gif, bmp, tiff, webp)")
	outPath := fs.String("out", "", "output image, format by extension")
	depth := fs.Float64("depth", float64(uwcolor.DepthChoices[0]), "approximate depth in meters")
	red := fs.Float64("red", 0, "red strength override")
	green := fs.Float64("green", 0, "green strength override")
	blue := fs.Float64("blue", 0, "blue strength override")
	q := fs.Int("q", 90, "JPEG quality")
	keepMeta := fs.Bool("keep-meta", false, "carry EXIF and ICC over to JPEG output")
	comparePath := fs.String("compare", "", "write corrected and original side by side")
	preview := fs.Uint("preview", 0, "max size of each half of the comparison image, 0 for full size")
	sampleURL := fs.String("sample-url", uwcolor.DefaultSampleURL, "image to use when -in is empty")
	timeout := fs.Duration("timeout", 30*time.Second, "sample download timeout")
	verbose := fs.Bool("v", false, "verbose output")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *outPath == "" {
		return fmt.Errorf("%w: missing required arguments", errUsage)
	}
	if *depth < 0 {
		return fmt.Errorf("%w: depth must not be negative: %v", errUsage, *depth)
	}

	profile := uwcolor.ProfileForDepth(*depth)
	overrides := map[string]struct {
		ch uwcolor.Channel
		v  float64
	}{
		"red":   {uwcolor.Red, *red},
		"green": {uwcolor.Green, *green},
		"blue":  {uwcolor.Blue, *blue},
	}
	var err error
	fs.Visit(func(f *flag.Flag) {
		o, ok := overrides[f.Name]
		if !ok || err != nil {
			return
		}
		profile, err = profile.WithStrength(o.ch, o.v)
	})
	if err != nil {
		return err
	}

	var data []byte
	if *inPath != "" {
		if data, err = os.ReadFile(filepath.Clean(*inPath)); err != nil {
			return err
		}
	} else {
		log.Println("no input image, using sample", *sampleURL)
		fctx, cancel := context.WithTimeout(ctx, *timeout)
		defer cancel()
		if data, err = uwcolor.FetchSampleData(fctx, *sampleURL); err != nil {
			return err
		}
	}

	if *verbose {
		log.Printf("depth %vm: channels %v, strengths %v, threshold %v",
			*depth, profile.Channels, profile.Strengths, profile.Threshold)
	}

	return uwcolor.EnhanceData(data, *outPath, profile, func(opt *uwcolor.FileOptions) {
		opt.Quality = *q
		opt.KeepMeta = *keepMeta
		opt.ComparePath = *comparePath
		opt.PreviewMax = *preview
		opt.OnResult = func(res *uwcolor.Result) {
			if *verbose {
				log.Printf("corrected %dx%d image written to %s", res.Corrected.Width, res.Corrected.Height, *outPath)
			}
		}
	})
}

func runBrackets(args []string) error {
	fs := flag.NewFlagSet("brackets", flag.ContinueOnError)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(uwcolor.Brackets(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(payload))
	return err
}

func runSample(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	outPath := fs.String("out", "", "output file")
	url := fs.String("url", uwcolor.DefaultSampleURL, "sample image URL")
	timeout := fs.Duration("timeout", 30*time.Second, "download timeout")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *outPath == "" {
		return fmt.Errorf("%w: missing required arguments", errUsage)
	}
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	data, err := uwcolor.FetchSampleData(ctx, *url)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Clean(*outPath), data, 0o644)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

// Command solid2d evaluates a YAML scene of 2D modules and prints the
// result.
//
//	solid2d [-config solid.toml] [-backend mesh] [-enable fill] [-jobs 4] [-output area] scene.yaml
//
// Outputs: tree (the instantiated node tree), outlines, area, bbox, wkt,
// wkb (hex) and geojson.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/gogpu/solid"
	"github.com/gogpu/solid/builtin"
	"github.com/gogpu/solid/geometry"
	"github.com/gogpu/solid/geometry/encoding"
	"github.com/gogpu/solid/internal/config"
	"github.com/gogpu/solid/module"
	"github.com/gogpu/solid/node"
	"github.com/gogpu/solid/scene"
)

var errUsage = errors.New("usage: solid2d [flags] scene.yaml")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("solid2d: %v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("solid2d", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "TOML configuration file")
		backend    = fs.String("backend", "", "tessellation backend: constrained or mesh")
		enable     = fs.String("enable", "", "comma separated experimental features to enable")
		output     = fs.String("output", "tree", "output: tree, outlines, area, bbox, wkt, wkb, geojson")
		jobs       = fs.Int("jobs", runtime.GOMAXPROCS(0), "subtrees evaluated concurrently")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *backend != "" {
		cfg.Render.Backend = *backend
	}
	if *enable != "" {
		for _, name := range strings.Split(*enable, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Features.Enable = append(cfg.Features.Enable, name)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.NewLogger(stderr)
	if err != nil {
		return err
	}
	defer solid.SetLogger(solid.SwapLogger(logger))

	settings, err := cfg.RenderSettings()
	if err != nil {
		return err
	}
	reg, features := builtin.NewLibrary()
	if err := cfg.ApplyFeatures(features); err != nil {
		return err
	}

	s, err := scene.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	tree, err := s.Evaluate(module.NewRootContext(reg))
	if err != nil {
		return err
	}
	if r := node.FindRoot(tree); r != nil {
		tree = r
	}

	if *output == "tree" {
		_, err := io.WriteString(stdout, node.Dump(tree))
		return err
	}
	p, err := node.EvaluateConcurrent(context.Background(), tree, *jobs)
	if err != nil {
		return err
	}
	return write(stdout, *output, p, settings)
}

func write(w io.Writer, output string, p *geometry.Polygon2d, settings geometry.RenderSettings) error {
	var err error
	switch output {
	case "outlines":
		_, err = io.WriteString(w, p.Dump())
	case "area":
		_, err = fmt.Fprintf(w, "%g\n", p.Area(settings))
	case "bbox":
		_, err = fmt.Fprintln(w, p.BoundingBox())
	case "wkt":
		_, err = fmt.Fprintln(w, encoding.MarshalWKT(p))
	case "wkb":
		var b []byte
		if b, err = encoding.MarshalWKB(p); err == nil {
			_, err = fmt.Fprintln(w, hex.EncodeToString(b))
		}
	case "geojson":
		var b []byte
		if b, err = encoding.MarshalGeoJSON(p, map[string]any{"sanitized": p.IsSanitized()}); err == nil {
			_, err = fmt.Fprintf(w, "%s\n", b)
		}
	default:
		return fmt.Errorf("unknown output %q", output)
	}
	return err
}

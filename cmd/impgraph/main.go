package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vanderheijden86/impgraph/internal/datasource"
	"github.com/vanderheijden86/impgraph/pkg/config"
	"github.com/vanderheijden86/impgraph/pkg/debug"
	"github.com/vanderheijden86/impgraph/pkg/engine"
	"github.com/vanderheijden86/impgraph/pkg/metrics"
	"github.com/vanderheijden86/impgraph/pkg/model"
	"github.com/vanderheijden86/impgraph/pkg/prepare"
	"github.com/vanderheijden86/impgraph/pkg/render"
	"github.com/vanderheijden86/impgraph/pkg/sim"
	"github.com/vanderheijden86/impgraph/pkg/ui"
	"github.com/vanderheijden86/impgraph/pkg/version"
	"github.com/vanderheijden86/impgraph/pkg/view"
	"github.com/vanderheijden86/impgraph/pkg/watcher"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file path (default: XDG config dir)")
	themeName := flag.String("theme", "", "Theme name: default, midnight, ember, minimal")
	fps := flag.Int("fps", 0, "Interactive frame rate")
	exportPNG := flag.String("export-png", "", "Render a settled layout to a PNG file and exit")
	exportSVG := flag.String("export-svg", "", "Render a settled layout to an SVG file and exit")
	width := flag.Int("width", 0, "Export width in pixels")
	height := flag.Int("height", 0, "Export height in pixels")
	settle := flag.Int("settle", 0, "Simulation steps before export")
	emit := flag.String("emit", "", "Convert a raw graph to payload JSON: 'full' or 'min'")
	watch := flag.Bool("watch", false, "Reload the graph when the file changes")
	forcePoll := flag.Bool("poll", false, "Force polling instead of filesystem events")
	flag.Parse()

	if *help {
		fmt.Println("Usage: impgraph [options] <graph.json|graph.db>")
		fmt.Println("\nAn interactive force-directed dependency graph viewer.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("impgraph %s\n", version.Version)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one graph file is required")
		fmt.Fprintln(os.Stderr, "Run 'impgraph -help' for usage")
		os.Exit(1)
	}
	path := config.ExpandPath(flag.Arg(0))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *themeName != "" {
		cfg.View.Theme = *themeName
	}
	if *fps > 0 {
		cfg.View.FPS = *fps
	}
	if *width > 0 {
		cfg.Export.Width = *width
	}
	if *height > 0 {
		cfg.Export.Height = *height
	}
	if *settle > 0 {
		cfg.Export.SettleTicks = *settle
	}

	if *emit != "" {
		if err := runEmit(path, *emit); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	payload, err := datasource.Load(path, cfg.Colors)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	debug.Log("loaded %d nodes, %d links from %s", len(payload.Nodes), len(payload.Links), path)

	if *exportPNG != "" || *exportSVG != "" {
		if err := runExport(payload, cfg, *exportPNG, *exportSVG); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal; use -export-png or -export-svg")
		os.Exit(1)
	}

	if err := runViewer(payload, cfg, path, *watch, *forcePoll); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(config.ExpandPath(path))
	}
	return config.Load()
}

// runEmit converts a raw graph file to payload JSON on stdout.
func runEmit(path, mode string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading graph: %w", err)
	}
	g, err := prepare.ParseRawGraph(data)
	if err != nil {
		return err
	}

	var out []byte
	switch strings.ToLower(mode) {
	case "full":
		out, err = prepare.ExportFull(g)
	case "min", "minimal":
		out, err = prepare.ExportMinimal(g)
	default:
		return fmt.Errorf("unknown emit mode %q (want full or min)", mode)
	}
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(out, '\n'))
	return err
}

// newScheduler assembles the engine stack from config.
func newScheduler(payload *model.Payload, cfg config.Config, w, h float64) (*engine.Scheduler, error) {
	params := sim.DefaultParams()
	applyPhysics(&params, cfg.Physics)

	theme := render.ThemeByName(cfg.View.Theme)
	theme.Particles.Enabled = cfg.View.Particles
	if theme.Particles.Enabled && theme.Particles.Count == 0 {
		theme.Particles = render.ParticleStyle{
			Enabled: true,
			Count:   40,
			Color:   render.RGBA(180, 195, 210, 1),
			SizeMin: 0.5,
			SizeMax: 1.6,
			Speed:   6,
			Opacity: 0.25,
		}
	}

	return engine.New(engine.Options{
		Payload:       payload,
		Width:         w,
		Height:        h,
		Params:        params,
		Scale:         view.DefaultScaleConfig(),
		Theme:         theme,
		ClusterColors: prepare.ClusterColors(cfg.Colors),
	})
}

func applyPhysics(p *sim.Params, pc config.PhysicsConfig) {
	if pc.Charge > 0 {
		p.Charge = pc.Charge
	}
	if pc.Spring > 0 {
		p.Spring = pc.Spring
	}
	if pc.RestLen > 0 {
		p.RestLen = pc.RestLen
	}
	if pc.Damping > 0 {
		p.Damping = pc.Damping
	}
	if pc.Centering > 0 {
		p.Centering = pc.Centering
	}
	if pc.Theta > 0 {
		p.Theta = pc.Theta
	}
}

// runExport settles the layout headless and writes PNG and SVG snapshots
// concurrently.
func runExport(payload *model.Payload, cfg config.Config, pngPath, svgPath string) error {
	sched, err := newScheduler(payload, cfg, float64(cfg.Export.Width), float64(cfg.Export.Height))
	if err != nil {
		return err
	}

	start := time.Now()
	sched.Settle(cfg.Export.SettleTicks, 1.0/60.0)
	debug.LogTiming("settle", time.Since(start))

	var g errgroup.Group
	if pngPath != "" {
		g.Go(func() error {
			dc := gg.NewContext(cfg.Export.Width, cfg.Export.Height)
			sched.Draw(dc)
			if err := dc.SavePNG(pngPath); err != nil {
				return fmt.Errorf("writing %s: %w", pngPath, err)
			}
			fmt.Printf("wrote %s\n", pngPath)
			return nil
		})
	}
	if svgPath != "" {
		g.Go(func() error {
			f, err := os.Create(svgPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", svgPath, err)
			}
			defer f.Close()
			if err := sched.WriteSVG(f); err != nil {
				return fmt.Errorf("writing %s: %w", svgPath, err)
			}
			fmt.Printf("wrote %s\n", svgPath)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, s := range metrics.AllTimingStats() {
		debug.Log("%s: n=%d avg=%.2fms max=%.2fms", s.Name, s.Count, s.AvgMs, s.MaxMs)
	}
	return nil
}

// runViewer starts the interactive terminal viewer, optionally watching
// the source file for live reloads.
func runViewer(payload *model.Payload, cfg config.Config, path string, watch, forcePoll bool) error {
	// The real viewport arrives with the first WindowSizeMsg; this is just
	// a sane placeholder.
	sched, err := newScheduler(payload, cfg, 160, 96)
	if err != nil {
		return err
	}

	opts := ui.Options{
		Scheduler:  sched,
		SourcePath: path,
		FPS:        cfg.View.FPS,
		Reload: func() (*model.Payload, error) {
			return datasource.Load(path, cfg.Colors)
		},
	}

	if watch {
		w, err := watcher.New(path, watcher.WithForcePoll(forcePoll))
		if err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		defer w.Stop()
		opts.Watcher = w
	}

	return ui.Run(opts)
}

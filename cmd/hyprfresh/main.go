// Command hyprfresh lists, snapshots and previews screensaver effects.
//
// Usage:
//
//	hyprfresh -list
//	hyprfresh -snapshot frame.png -preview plasmula -time 12.5
//	hyprfresh -snapshot frame.png -preview matrix -gpu
//	hyprfresh -preview matrix -duration 10s
//
// Without -preview the effect configured for -monitor (or the global
// [screensaver] name) is used.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gogpu/saver"
	"github.com/gogpu/saver/config"
	"github.com/gogpu/saver/gpu"
	"github.com/gogpu/saver/loader"
	"github.com/gogpu/saver/shader"
)

// options holds the parsed command line.
type options struct {
	configPath string
	verbose    bool
	list       bool
	preview    string
	monitor    string
	duration   time.Duration
	snapshot   string
	seconds    float64
	width      int
	height     int
	scale      float64
	workers    int
	compile    bool
	gpu        bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("hyprfresh", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", config.DefaultFile, "path to config file")
	fs.BoolVar(&o.verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&o.list, "list", false, "list available screensavers and exit")
	fs.StringVar(&o.preview, "preview", "", "run the named screensaver immediately")
	fs.StringVar(&o.monitor, "monitor", "", "use the screensaver configured for this monitor (e.g. DP-1)")
	fs.DurationVar(&o.duration, "duration", 0, "exit the preview after this long (0 = until a key is pressed)")
	fs.StringVar(&o.snapshot, "snapshot", "", "render one frame to a .png, .bmp or .tiff file and exit")
	fs.Float64Var(&o.seconds, "time", 0, "effect time in seconds for -snapshot")
	fs.IntVar(&o.width, "width", 1920, "snapshot width in pixels")
	fs.IntVar(&o.height, "height", 1080, "snapshot height in pixels")
	fs.Float64Var(&o.scale, "scale", 8, "physical pixels per terminal half-cell in the preview")
	fs.IntVar(&o.workers, "workers", 0, "render workers (0 = GOMAXPROCS)")
	fs.BoolVar(&o.compile, "compile", false, "compile the effect's WGSL to SPIR-V and report the result")
	fs.BoolVar(&o.gpu, "gpu", false, "draw -snapshot with the effect's shader on the GPU, falling back to the CPU")
	err := fs.Parse(args)
	return o, err
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	saver.SetLogger(log)

	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("no config file, using defaults", "path", o.configPath)
		} else {
			log.Error("failed to load config, using defaults", "err", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Warn("invalid config", "err", err)
	}

	reg := saver.NewBuiltinRegistry()
	if err := loader.Apply(reg, config.ExpandPath(cfg.Screensaver.ShaderDir)); err != nil {
		log.Warn("some custom screensavers were not loaded", "err", err)
	}
	reg.Freeze()

	if o.list {
		printList(stdout, reg)
		return 0
	}

	name := o.preview
	if name == "" {
		if o.monitor != "" && !cfg.Enabled(o.monitor) {
			log.Info("screensaver disabled on monitor", "monitor", o.monitor)
			return 0
		}
		name = cfg.ScreensaverFor(o.monitor)
	}

	entry, effect, err := resolve(reg, cfg, name)
	if errors.Is(err, saver.ErrNotFound) {
		fmt.Fprintf(stderr, "Unknown screensaver %q. Use -list to see available options.\n", name)
		return 1
	}
	if err != nil {
		log.Error("invalid screensaver options", "err", err)
		return 1
	}

	if o.compile {
		m, err := shader.CompileCached(entry.Name, entry.Fragment)
		if err != nil {
			log.Error("shader compilation failed", "name", entry.Name, "err", err)
			return 1
		}
		fmt.Fprintf(stdout, "%s: %d SPIR-V words from %d bytes of WGSL\n", m.Label, len(m.SPIRV), len(m.WGSL))
		if o.snapshot == "" && o.preview == "" {
			return 0
		}
	}

	renderer := saver.NewRenderer(o.workers)
	defer renderer.Close()

	if o.snapshot != "" {
		if err := snapshot(renderer, entry, effect, o); err != nil {
			log.Error("snapshot failed", "err", err)
			return 1
		}
		log.Info("snapshot written", "name", entry.Name, "path", o.snapshot, "width", o.width, "height", o.height)
		return 0
	}

	log.Info("preview mode", "name", entry.Name)
	if err := runPreview(renderer, effect, previewOptions{
		fps:      cfg.Screensaver.FPS,
		duration: o.duration,
		scale:    o.scale,
		opacity:  cfg.Screensaver.Opacity,
	}); err != nil {
		log.Error("preview failed", "err", err)
		return 1
	}
	return 0
}

// resolve looks name up and applies the configured options when name is the
// globally configured screensaver.
func resolve(reg *saver.Registry, cfg config.Config, name string) (saver.Entry, saver.Effect, error) {
	entry, ok := reg.Lookup(name)
	if !ok {
		return saver.Entry{}, nil, fmt.Errorf("%w: %q", saver.ErrNotFound, name)
	}
	effect := entry.Effect
	if strings.EqualFold(name, cfg.Screensaver.Name) {
		var err error
		if effect, err = saver.Configure(effect, cfg.Screensaver.Options); err != nil {
			return saver.Entry{}, nil, fmt.Errorf("options for %q: %w", name, err)
		}
	}
	return entry, effect, nil
}

func snapshot(r *saver.Renderer, entry saver.Entry, e saver.Effect, o options) error {
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("invalid snapshot size %dx%d", o.width, o.height)
	}
	if _, err := saver.FormatFromPath(o.snapshot); err != nil {
		return err
	}
	pm := saver.NewPixmap(o.width, o.height)
	ctx := saver.NewFrameContext(o.seconds, float64(o.width), float64(o.height))
	if !o.gpu {
		r.Render(e, ctx, pm)
		return pm.Save(o.snapshot)
	}
	if err := renderGPU(entry, e, ctx, pm); err != nil {
		saver.Logger().Warn("GPU snapshot failed, using CPU fallback", "name", entry.Name, "err", err)
		r.Render(e, ctx, pm)
	}
	return pm.Save(o.snapshot)
}

// renderGPU draws the entry's fragment stage offscreen with the settings
// of e.
func renderGPU(entry saver.Entry, e saver.Effect, ctx saver.FrameContext, pm *saver.Pixmap) error {
	mod, err := shader.CompileCached(entry.Name, entry.Fragment)
	if err != nil {
		return err
	}
	dev, err := gpu.Open()
	if err != nil {
		return err
	}
	defer dev.Close()
	saver.Logger().Debug("rendering on GPU", "adapter", dev.Name())
	return dev.Render(mod, saver.FrameUniforms(e, ctx), pm)
}

func printList(w io.Writer, reg *saver.Registry) {
	fmt.Fprintln(w, "Available screensavers:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range reg.Entries() {
		source := ""
		if e.Source != saver.SourceBuiltin {
			source = "(" + e.Source + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Name, e.Description, source)
	}
	_ = tw.Flush()
}

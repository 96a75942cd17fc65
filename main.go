package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mcncl/jqk/internal/annotator"
	"github.com/mcncl/jqk/internal/config"
	"github.com/mcncl/jqk/internal/errors"
	"github.com/mcncl/jqk/internal/parser"
	"github.com/mcncl/jqk/internal/renderer"
	"github.com/mcncl/jqk/internal/style"
)

// version is set at build time with -ldflags "-X main.version=1.2.3".
var version = "dev"

// CLI defines the command-line interface
var CLI struct {
	File        string           `arg:"" optional:"" help:"JSON file to read. Reads stdin when omitted." type:"path"`
	ColorOutput bool             `help:"Force colored output even when stdout is not a terminal." short:"C"`
	List        bool             `help:"Print only the key paths, one per line." short:"l"`
	QuoteKeys   bool             `help:"Quote keys that are not plain identifiers, e.g. .\"a b\"." short:"q"`
	Palette     string           `help:"Color palette (${palettes})." short:"p" placeholder:"NAME"`
	Config      string           `help:"Path to a config file. Defaults to the nearest .jqk.yml." short:"c" type:"path"`
	Debug       bool             `help:"Enable debug logging." short:"d"`
	Version     kong.VersionFlag `help:"Show version and install location." short:"V"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Color  bool
	Stdin  io.Reader
	Stdout io.Writer
	Logger *slog.Logger
}

const description = `jqk - Query key finder for jq

Prints a JSON document with the jq path of every key, so the query for any
value can be read straight off the output.

Example:

    $ echo '{"japan": [{"name": "tokyo", "population": "14M"}, {"name": "osaka", "population": "2.7M"}]}' > data.json

    $ jqk data.json
    {
      .japan: [
        {
          .japan[0].name: "tokyo",
          .japan[0].population: "14M"
        },
        {
          .japan[1].name: "osaka",
          .japan[1].population: "2.7M"
        }
      ]
    }

    $ jqk --list data.json
    .japan
    .japan[0].name
    .japan[0].population
    .japan[1].name
    .japan[1].population

    $ jq -r '.japan[1].population' data.json
    2.7M`

func main() {
	// Do not die on SIGPIPE: a closed stdout comes back as EPIPE from Write
	// and is handled below.
	signal.Ignore(syscall.SIGPIPE)

	app := kong.Must(&CLI,
		kong.Name("jqk"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Vars{
			"version":  versionString(),
			"palettes": strings.Join(style.PaletteNames(), ", "),
		},
	)

	kctx, err := app.Parse(os.Args[1:])
	app.FatalIfErrorf(err)

	// Nothing to read: interactive terminal and no file.
	if CLI.File == "" && isTerminal(os.Stdin) {
		_ = kctx.PrintUsage(false)
		return
	}

	cfg, _, err := config.LoadConfigWithCLI(CLI.Config, config.Overrides{
		Palette:   CLI.Palette,
		List:      CLI.List,
		QuoteKeys: CLI.QuoteKeys,
		Debug:     CLI.Debug,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.UserFriendlyError(errors.NewConfigError("failed to load configuration", err)))
		os.Exit(1)
	}

	color := cfg.ColorEnabled(CLI.ColorOutput, isTerminal(os.Stdout))
	var stdout io.Writer = os.Stdout
	if color {
		stdout = colorable.NewColorable(os.Stdout)
	}

	err = run(&Context{
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Color:  color,
		Stdin:  os.Stdin,
		Stdout: stdout,
		Logger: newLogger(os.Stderr, cfg.Dev.Debug),
	})
	if err != nil {
		// stdout is a pipe and something closed it (e.g. 'head' or 'less').
		// Exit non-zero since the output is truncated, but stay quiet.
		if errors.IsOutputClosed(err) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	logger := ctx.Logger
	if logger == nil {
		logger = newLogger(io.Discard, false)
	}
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	// 1. Read the whole input
	data, err := readInput(ctx)
	if err != nil {
		return err
	}
	logger.Debug("read input", "source", inputName(), "bytes", len(data))

	// 2. Parse JSON
	doc, err := parser.ParseBytes(data)
	if err != nil {
		return err
	}
	logger.Debug("parsed document", "kind", doc.Kind().String())

	// 3. Annotate every key with its path
	tree := annotator.NewAnnotator(annotator.Options{QuoteKeys: cfg.Paths.QuoteKeys}).Annotate(doc)
	stats := annotator.Count(tree)
	logger.Debug("annotated document",
		"keys", stats.Keys,
		"scalars", stats.Scalars,
		"containers", stats.Containers,
		"max_depth", stats.MaxDepth,
	)

	// 4. Render
	mode := renderer.ModePretty
	if cfg.List {
		mode = renderer.ModeList
	}
	logger.Debug("rendering", "mode", mode.String(), "color", ctx.Color, "palette", cfg.Palette, "indent", cfg.Indent)

	w := style.NewWriter(ctx.Stdout, cfg.PaletteOrDefault(), ctx.Color)
	if err := renderer.NewRenderer(mode, cfg.Indent).Render(w, tree); err != nil {
		return errors.NewOutputError("failed to write output", err)
	}
	return nil
}

// readInput reads JSON from file or stdin
func readInput(ctx *Context) ([]byte, error) {
	if CLI.File != "" {
		return parser.ReadFile(CLI.File)
	}
	if ctx.Stdin == nil {
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}
	data, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	return data, nil
}

func inputName() string {
	if CLI.File != "" {
		return CLI.File
	}
	return "stdin"
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// versionString reports the version and the directory jqk runs from.
func versionString() string {
	location := "unknown location"
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		location = filepath.Dir(exe)
	}
	return fmt.Sprintf("jqk %s at %s", version, location)
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/whiteboard/internal/config"
	"github.com/example/whiteboard/internal/notify"
	"github.com/example/whiteboard/internal/store"
	"github.com/example/whiteboard/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	notifier *notify.Notifier
	config   *config.Config
	stdout   io.Writer

	clearAlerts  bool
	saveAlerts   bool
	exportAlerts bool
	copyAlerts   bool
	themeName    string
	user         string
	saveDir      string
	activeTheme  *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	if p := os.Getenv("WHITEBOARD_CONFIG"); p != "" && configPathOverride == "" {
		configPathOverride = p
	}
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	return newRootWithConfig(cfg, notify.New(notify.LoadPreferences()))
}

func newRootWithConfig(cfg *config.Config, n *notify.Notifier) *root {
	r := &root{
		fs:       flag.NewFlagSet("whiteboard", flag.ContinueOnError),
		program:  "whiteboard",
		notifier: n,
		config:   cfg,
		stdout:   os.Stdout,
	}
	r.fs.BoolVar(&r.clearAlerts, "notify-clear", cfg.Notify.Clear, "show a desktop notification after clearing the canvas")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a drawing")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting a drawing")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default. Empty flag defaults fall
	// through in Run.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (light, dark or a [theme.NAME] section)")
	r.fs.StringVar(&r.user, "user", "", "owner of the drawing store")
	r.fs.StringVar(&r.saveDir, "save-dir", "", "directory holding drawings and exports")
	r.fs.SetOutput(io.Discard)
	r.fs.Usage = usageFunc(r)
	return r
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// resolve applies environment and config fallbacks to unset flags.
func (r *root) resolve() {
	if r.notifier != nil {
		r.notifier.Enable(notify.EventClear, r.clearAlerts)
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.config.Theme = firstNonEmpty(r.themeName, os.Getenv("WHITEBOARD_THEME"), r.config.Theme)
	r.config.User = firstNonEmpty(r.user, os.Getenv("WHITEBOARD_USER"), r.config.User)
	r.config.SaveDir = firstNonEmpty(r.saveDir, os.Getenv("WHITEBOARD_SAVE_DIR"), r.config.SaveDir)
	r.activeTheme = r.config.ResolveTheme()
}

func (r *root) dataDir() string {
	return firstNonEmpty(r.config.SaveDir, config.DataDir())
}

func (r *root) store() *store.Store {
	return store.New(r.dataDir(), firstNonEmpty(r.config.User, store.DefaultUser))
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: r}
		}
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.resolve()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "open":
		cmd, err = parseOpenCmd(subArgs, r)
	case "list":
		cmd, err = parseListCmd(subArgs, r)
	case "delete":
		cmd, err = parseDeleteCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "export":
		cmd, err = parseExportCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "widths":
		cmd, err = parseWidthsCmd(subArgs, r)
	case "tools":
		cmd, err = parseToolsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

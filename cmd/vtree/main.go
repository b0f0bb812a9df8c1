package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬  ┬┌┬┐┬─┐┌─┐┌─┐
  └┐┌┘ │ ├┬┘├┤ ├┤
   └┘  ┴ ┴└─└─┘└─┘
`

// globalFlags are shared by every command.
type globalFlags struct {
	configDir string
	noColor   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, errors.Classify(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "vtree",
		Short: "Virtual tree rendering with a live patch stream",
		Long: `vtree renders views into a live tree and patches it in place.

Every state change runs one render and patch cycle. The live tree can be
served over HTTP, with a WebSocket that streams one patch frame per cycle
and feeds browser events back into the app.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor || !isTerminal(os.Stderr) {
				errors.DisableColors()
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configDir, "config", "c", ".", "Directory holding vtree.json or vtree.yaml")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		demoCmd(flags),
		serveCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads the configuration from dir, falling back to defaults
// when dir has no config file.
func loadConfig(dir string) (*config.Config, error) {
	var cfg *config.Config
	if config.Exists(dir) {
		var err error
		if cfg, err = config.Load(dir); err != nil {
			return nil, err
		}
	} else {
		cfg = config.New()
		if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the slog logger described by cfg.
func newLogger(cfg config.LogConfig, w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printer writes CLI messages, colored only on a terminal.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) *printer {
	f, ok := w.(*os.File)
	return &printer{w: w, color: ok && isTerminal(f)}
}

func (p *printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + "\033[0m"
}

// success prints a success message.
func (p *printer) success(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.paint("\033[32m", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func (p *printer) info(format string, args ...any) {
	fmt.Fprintf(p.w, "  %s\n", fmt.Sprintf(format, args...))
}

// heading prints a bold line.
func (p *printer) heading(format string, args ...any) {
	fmt.Fprintln(p.w, p.paint("\033[1m", fmt.Sprintf(format, args...)))
}

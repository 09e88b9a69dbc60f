package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"viewer2d/config"
	"viewer2d/scene"
	"viewer2d/viewer"
	"viewer2d/world"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stderr).ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options are the flags shared by every command.
type options struct {
	configPath string
	scenePath  string
	verbose    bool
	logger     *log.Logger
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "viewer2d",
		Short:        "Pan, rotate and zoom a 2D scene over a reference grid",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = newLogger(logOut, opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(opts)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	root.PersistentFlags().StringVarP(&opts.scenePath, "scene", "s", "", "Starlark scene script (default: built-in demo)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSnapshotCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

// setup loads the configuration and the scene and builds a viewer over them.
func setup(opts *options) (*viewer.Viewer, config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, cfg, err
	}
	if opts.scenePath != "" {
		cfg.Scene = opts.scenePath
	}
	vo, err := viewer.OptionsFromConfig(cfg, opts.logger)
	if err != nil {
		return nil, cfg, err
	}

	name, src, err := readScene(cfg.Scene)
	if err != nil {
		return nil, cfg, err
	}
	model := world.NewModel()
	if _, err := scene.Load(opts.logger, model, name, src); err != nil {
		return nil, cfg, err
	}
	return viewer.New(model, vo), cfg, nil
}

// readScene returns the script at path, or the built-in demo for an empty path.
func readScene(path string) (string, []byte, error) {
	if path == "" {
		return scene.DefaultName, scene.Default(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return path, nil, fmt.Errorf("read scene: %w", err)
	}
	return path, src, nil
}

func runWindow(opts *options) error {
	v, cfg, err := setup(opts)
	if err != nil {
		return err
	}
	defer v.Close()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)

	g := NewGame(v, opts.logger, cfg.Scene)
	opts.logger.Info("window open", "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "shapes", v.Model().Len())
	return ebiten.RunGame(g)
}

func newConfigCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), "."+format, cfg)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or toml")
	return cmd
}

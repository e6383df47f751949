package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"strconv"
	"syscall"

	"github.com/bryanchriswhite/i3windows/internal/api"
	"github.com/bryanchriswhite/i3windows/internal/config"
	"github.com/bryanchriswhite/i3windows/internal/dispatcher"
	"github.com/bryanchriswhite/i3windows/internal/logger"
	"github.com/bryanchriswhite/i3windows/internal/output"
	"github.com/bryanchriswhite/i3windows/internal/render"
	"github.com/bryanchriswhite/i3windows/internal/window"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// Version is set at build time
var Version = "dev"

var (
	cfgFile       string
	initConfigErr error
	rootCmd       = &cobra.Command{
		Use:   "i3windows [group]",
		Short: "i3windows - visible i3 windows as a lemonbar segment",
		Long: `i3windows prints one lemonbar line listing the windows on visible i3
workspaces, and a new line whenever focus, titles or urgency change.

Each entry is underlined by state (focused, urgent, other) and clicking it
runs the configured click command with the window id.

The optional group argument splits workspaces across several bars:
a window is shown only when (workspace - 1) mod 3 equals the group.`,
		Example: `  # All visible workspaces
  i3windows | lemonbar

  # Workspaces 1, 4, 7, ... on the first monitor's bar
  i3windows 0 | lemonbar

  # Mirror the line over HTTP for other consumers
  i3windows --listen 127.0.0.1:7878`,
		Args:          cobra.MaximumNArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/i3windows/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().String("listen", "", "serve the current line over HTTP on this address")

	// Bind flags to viper
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("server.listen", rootCmd.Flags().Lookup("listen"))
}

func initConfig() {
	initConfigErr = config.Prepare(viper.GetViper(), cfgFile)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig returns the validated configuration and sets up logging
func loadConfig() (*config.Config, error) {
	if initConfigErr != nil {
		return nil, initConfigErr
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.LogLevel)
	return cfg, nil
}

// parseGroup reads the optional positional group selector
func parseGroup(args []string) (*int, error) {
	if len(args) == 0 {
		return nil, nil
	}
	group, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid group %q: must be an integer", args[0])
	}
	return &group, nil
}

// currentPlaceholders resolves {user} and {host} for title formatters
func currentPlaceholders() render.Placeholders {
	return placeholdersFrom(os.Getenv, user.Current, os.Hostname)
}

func placeholdersFrom(getenv func(string) string, current func() (*user.User, error), hostname func() (string, error)) render.Placeholders {
	var p render.Placeholders

	for _, key := range []string{"LOGNAME", "USER", "LNAME", "USERNAME"} {
		if v := getenv(key); v != "" {
			p.User = v
			break
		}
	}
	if p.User == "" {
		if u, err := current(); err == nil {
			p.User = u.Username
		}
	}

	if host, err := hostname(); err == nil {
		p.Host = host
	}
	return p
}

func runRoot(cmd *cobra.Command, args []string) error {
	group, err := parseGroup(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.WithComponent("main")

	renderer, err := render.NewFromConfig(cfg, currentPlaceholders())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	stdout := output.NewLineWriter(cmd.OutOrStdout(), "stdout")
	var out output.Output = stdout

	if cfg.Server.Listen != "" {
		lines := output.NewBroadcaster()
		out = output.Multi{stdout, lines}
		server := api.NewServer(lines, Version)
		g.Go(func() error {
			return server.Start(ctx, cfg.Server.Listen)
		})
	}

	backend := window.NewI3Backend()
	d := dispatcher.New(backend, renderer, out, group)

	log.Info().
		Str("backend", backend.Name()).
		Interface("group", group).
		Msg("Starting")

	g.Go(func() error {
		return d.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("Shutting down")
	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/dharmasatrya/skysearch/internal/app"
	"github.com/dharmasatrya/skysearch/internal/config"
	"github.com/dharmasatrya/skysearch/internal/logging"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	debug      bool

	app *app.App
}

// NewRootCmd creates the root cobra command for the skysearch CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "skysearch",
		Short: "Search flights and airports on the Sky Scrapper API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			level := cfg.Log.Level
			if cmd.Flags().Changed("log-level") {
				level = opts.logLevel
			}
			if opts.debug {
				level = "debug"
			}
			format := cfg.Log.Format
			if cmd.Flags().Changed("log-format") {
				format = opts.logFormat
			}
			logger := logging.NewLoggerWithWriter(logging.ParseLevel(level), format, cmd.ErrOrStderr())

			// One-shot commands have nothing to share a cache with.
			cfg.Cache.Backend = config.CacheNone

			a, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			opts.app = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.app != nil {
				return opts.app.Close()
			}
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newAirportsCmd(opts),
		newNearbyCmd(opts),
		newSearchCmd(opts),
	)

	return root
}

// Package cli implements the contentctl command line.
package cli

import (
	"fmt"
	"io"

	"github.com/olive-branch-content-api/internal/config"
	"github.com/olive-branch-content-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// env carries the configuration and logger resolved before a subcommand runs
type env struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     zerolog.Logger
}

// NewRootCmd builds the contentctl command tree
func NewRootCmd() *cobra.Command {
	e := &env{v: viper.New()}

	root := &cobra.Command{
		Use:   "contentctl",
		Short: "Olive Branch content tooling",
		Long: `contentctl serves, searches and synchronizes the Olive Branch content:
articles, timeline events, evidence documents and categories.

Content comes from the markdown/JSON content tree or from the relational
store, selected with --source or CONTENT_SOURCE.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&e.cfgFile, "config", "", "YAML config file")
	flags.String("source", "", "content source: store or files")
	flags.String("content-dir", "", "content tree directory")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	// Bind flags to viper
	_ = e.v.BindPFlag("content_source", flags.Lookup("source"))
	_ = e.v.BindPFlag("content_dir", flags.Lookup("content-dir"))
	_ = e.v.BindPFlag("log_level", flags.Lookup("log-level"))

	root.AddCommand(
		newServeCmd(e),
		newSearchCmd(e),
		newListCmd(e),
		newSyncCmd(e),
		newMigrateCmd(e),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// load resolves configuration; CLI logs go to stderr so stdout stays data
func (e *env) load(logOut io.Writer) error {
	cfg, err := config.LoadFrom(e.v, e.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	e.cfg = cfg
	e.log = logger.NewWithWriter(logOut, cfg.Log, cfg.Env)
	return nil
}

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/satchelworks/satchelops/config/satchelcfg"
	"github.com/satchelworks/satchelops/internal/logging"
)

// logRetentionDays bounds how long auto-generated log files are kept.
const logRetentionDays = 7

// activeLogFile holds the log file opened by PersistentPreRunE so main can
// close it after the command finishes.
var activeLogFile *logging.LogFile

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "satchelops",
		Short:   "Satchel async storage provisioner",
		Long:    "satchelops provisions the async storage sidecar of Satchel workspace namespaces.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultConfig := os.Getenv("SATCHEL_CONFIG")
	if defaultConfig == "" {
		defaultConfig = satchelcfg.DefaultFileName
	}
	cmd.PersistentFlags().StringP("config", "c", defaultConfig, "Config file (env SATCHEL_CONFIG)")

	defaultDB := os.Getenv("SATCHEL_DB_URL")
	if defaultDB == "" {
		defaultDB = satchelcfg.DefaultDBURL
	}
	cmd.PersistentFlags().String("db-url", defaultDB, "SSH pair store URL (env SATCHEL_DB_URL) (sqlite:/path/to.db | memory:)")

	cmd.PersistentFlags().String("kubeconfig", "", "Kubeconfig path (default: cluster.kubeconfig in config, then standard loading rules)")
	cmd.PersistentFlags().String("log-format", "human", "Log format (human|text|json) (env SATCHEL_LOG_FORMAT)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error) (env SATCHEL_LOG_LEVEL)")
	cmd.PersistentFlags().String("log-output", "-", "Log output (- for stderr, none to disable, a path, or empty for a generated file)")
	cmd.PersistentFlags().String("log-dir", "", "Directory for generated and relative log files")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("SATCHEL_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		levelName, _ := c.Flags().GetString("log-level")
		if env := os.Getenv("SATCHEL_LOG_LEVEL"); env != "" {
			levelName = env
		}
		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return err
		}

		output, _ := c.Flags().GetString("log-output")
		var l logging.Logger
		if output == "-" {
			l, err = logging.New(format, level)
		} else {
			dir, _ := c.Flags().GetString("log-dir")
			if dir == "" {
				dir = defaultLogDir()
			}
			lf, lfErr := logging.NewLogFile(&logging.LogConfig{
				Output:        output,
				Dir:           dir,
				RetentionDays: logRetentionDays,
			})
			if lfErr != nil {
				return lfErr
			}
			activeLogFile = lf
			if output == "" {
				_ = logging.CleanupOldLogFiles(dir, logRetentionDays)
			}
			l, err = logging.NewWithWriter(format, level, lf.Writer())
		}
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdInit())
	cmd.AddCommand(newCmdProvision())
	cmd.AddCommand(newCmdStatus())
	cmd.AddCommand(newCmdDeprovision())
	cmd.AddCommand(newCmdLogs())
	cmd.AddCommand(newCmdPortForward())
	cmd.AddCommand(newCmdSSHKey())
	return cmd
}

// defaultLogDir is used when --log-dir is not given and a log file is needed.
func defaultLogDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "satchelops", "logs")
	}
	return filepath.Join(os.TempDir(), "satchelops", "logs")
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Error(ctx, "command failed", "err", err)
	}
	if activeLogFile != nil {
		_ = activeLogFile.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

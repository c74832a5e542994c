package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackwell-systems/aptext/internal/config"
	"github.com/blackwell-systems/aptext/internal/dpkg"
	"github.com/blackwell-systems/aptext/internal/scanner"
)

// Usage is the one-line synopsis printed for usage errors.
const Usage = "Usage: apt-ext oldkernels|unmanaged|missing|backup [dest]|restore [source]"

// ErrUsage marks a missing or unknown verb or a wrong argument count.
var ErrUsage = errors.New("usage error")

var (
	cfgFile string
	verbose bool

	// cfg is the effective configuration, loaded before every command runs.
	cfg *config.Config

	// Replaced in tests.
	newRunner     = func(cmd *cobra.Command) dpkg.Runner { return execRunner(cmd) }
	kernelRelease = dpkg.KernelRelease

	// RootCmd is the root command for apt-ext
	RootCmd = &cobra.Command{
		Use:   "apt-ext",
		Short: "Maintenance verbs for Debian-family package management",
		Long: `apt-ext complements apt with maintenance operations the package
manager does not offer itself:

  oldkernels  list installed kernel packages that do not belong to the running kernel
  unmanaged   list files on disk that no installed package owns
  missing     list files installed packages own that are absent from disk
  backup      save the list of explicitly selected packages
  restore     reinstall packages from a saved list

Settings are read from $XDG_CONFIG_HOME/apt-ext/config.toml; flags override
the file. Run 'apt-ext config' to print the effective configuration.`,
		Example: `  # Purge old kernels
  sudo apt-get purge $(apt-ext oldkernels)

  # Review stray files outside /var and /home
  apt-ext unmanaged | less

  # Back up selections and restore them on a new machine
  apt-ext backup /media/usb
  sudo apt-ext restore /media/usb/packages.list`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              verbArgs,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("%w: no command given", ErrUsage)
		},
	}
)

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/apt-ext/config.toml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug information to stderr")
	flags.String("root", "/", "filesystem root to inspect")
	flags.String("admin-dir", dpkg.DefaultAdminDir, "dpkg database directory, relative to --root")
	flags.String("data-dir", "~/.apt-ext", "directory for backups and backup history")
	flags.StringSlice("exclude", scanner.DefaultExclude, "top-level paths skipped by the filesystem walk")

	RootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	RootCmd.AddCommand(oldkernelsCmd)
	RootCmd.AddCommand(unmanagedCmd)
	RootCmd.AddCommand(missingCmd)
	RootCmd.AddCommand(backupCmd)
	RootCmd.AddCommand(restoreCmd)
	RootCmd.AddCommand(backupsCmd)
	RootCmd.AddCommand(configCmd)
}

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"root":      config.KeyRoot,
	"admin-dir": config.KeyAdminDir,
	"data-dir":  config.KeyDataDir,
	"exclude":   config.KeyExclude,
}

// setup configures logging and loads the configuration.
func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	v := viper.New()
	config.SetDefaults(v, scanner.DefaultExclude)
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	slog.Debug("configuration loaded", "root", cfg.Root, "admin_dir", cfg.AdminDir, "data_dir", cfg.DataDir)
	return nil
}

// verbArgs rejects arguments that did not resolve to a subcommand.
func verbArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}

// maxArgs is cobra.MaximumNArgs reporting ErrUsage.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return fmt.Errorf("%w: %s accepts at most %d argument(s), received %d", ErrUsage, cmd.Name(), n, len(args))
		}
		return nil
	}
}

func execRunner(cmd *cobra.Command) *dpkg.ExecRunner {
	return &dpkg.ExecRunner{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

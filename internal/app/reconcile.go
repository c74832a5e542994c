package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aptext/internal/analyzer"
	"github.com/blackwell-systems/aptext/internal/dpkg"
	"github.com/blackwell-systems/aptext/internal/output"
	"github.com/blackwell-systems/aptext/internal/scanner"
)

var unmanagedCmd = &cobra.Command{
	Use:   "unmanaged",
	Short: "List files on disk that no installed package owns",
	Long: `Walk the filesystem below every top-level directory that is not
excluded and print, sorted and one per line, each path that no installed
package lists among its files.

Excluded top-level paths are configured with --exclude or the exclude key.`,
	Example: `  apt-ext unmanaged
  apt-ext unmanaged --exclude /home,/var,/opt,/srv`,
	Args: maxArgs(0),
	RunE: runUnmanaged,
}

var missingCmd = &cobra.Command{
	Use:   "missing",
	Short: "List files owned by installed packages that are absent from disk",
	Long: `Print, sorted and one per line, each path that an installed package
lists among its files but the filesystem walk did not find. Paths that
exist as directories are not reported.`,
	Example: `  apt-ext missing`,
	Args:    maxArgs(0),
	RunE:    runMissing,
}

func runUnmanaged(cmd *cobra.Command, args []string) error {
	walked, managed, err := collectPaths(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), analyzer.Format(analyzer.Unmanaged(walked, managed)))
	return nil
}

func runMissing(cmd *cobra.Command, args []string) error {
	walked, managed, err := collectPaths(cmd.Context())
	if err != nil {
		return err
	}

	isDir := func(path string) bool {
		return analyzer.IsDir(filepath.Join(cfg.Root, path))
	}
	fmt.Fprint(cmd.OutOrStdout(), analyzer.Format(analyzer.Missing(managed, walked, isDir)))
	return nil
}

// collectPaths materializes both sides of the reconciliation: the paths
// found on disk and the paths owned by installed packages.
func collectPaths(ctx context.Context) (walked, managed []string, err error) {
	spinner := output.NewSpinner("Walking filesystem")
	spinner.Start()
	walked, err = scanner.New(cfg.Root, cfg.Exclude).Walk(ctx)
	spinner.Stop()
	if err != nil {
		return nil, nil, err
	}

	managed, err = dpkg.ManagedFiles(ctx, openDatabase())
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("collected paths", "walked", len(walked), "managed", len(managed), "elapsed", spinner.Elapsed())
	return walked, managed, nil
}

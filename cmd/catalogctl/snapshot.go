package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bookstoreapp/bookstore-server/internal/snapshot"
)

func newExportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write every book and magazine to a snapshot file",
		Long:  "Write every book and magazine to a snapshot file. A missing " + snapshot.FileExtension + " extension is added.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if filepath.Ext(path) != snapshot.FileExtension {
				path += snapshot.FileExtension
			}

			e, err := open(flags, false)
			if err != nil {
				return err
			}
			defer e.Close()

			stats, err := exportTo(cmd, e, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d books and %d magazines to %s\n", stats.Books, stats.Magazines, path)
			return nil
		},
	}
}

// exportTo writes to a temporary file and renames it into place so a failed
// export never leaves a truncated snapshot behind.
func exportTo(cmd *cobra.Command, e *env, path string) (snapshot.Stats, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return snapshot.Stats{}, fmt.Errorf("create snapshot: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	w := bufio.NewWriter(tmp)
	stats, err := snapshot.Export(cmd.Context(), e.catalog, w)
	if err == nil {
		err = w.Flush()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return snapshot.Stats{}, fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return snapshot.Stats{}, fmt.Errorf("write snapshot: %w", err)
	}
	return stats, nil
}

func newImportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load a snapshot file into the catalog",
		Long: strings.TrimSpace(`
Load a snapshot file into the catalog. Records keep their ids; a record
whose id already exists is replaced. The search index is rebuilt afterwards.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			e, err := open(flags, true)
			if err != nil {
				return err
			}
			defer e.Close()

			stats, err := snapshot.Import(cmd.Context(), e.catalog, bufio.NewReader(f), e.log.Logger)
			if err != nil {
				return err
			}
			if err := e.searchService().Reindex(cmd.Context()); err != nil {
				return fmt.Errorf("rebuild search index: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d books and %d magazines (%d replaced)\n",
				stats.Books, stats.Magazines, stats.Replaced)
			return nil
		},
	}
}

func newReindexCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the search index from the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := open(flags, true)
			if err != nil {
				return err
			}
			defer e.Close()

			svc := e.searchService()
			if !svc.Enabled() {
				fmt.Fprintln(cmd.OutOrStdout(), "Search is disabled; nothing to rebuild")
				return nil
			}
			if err := svc.Reindex(cmd.Context()); err != nil {
				return err
			}
			count, err := svc.DocumentCount()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d documents\n", count)
			return nil
		},
	}
}

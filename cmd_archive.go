package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blogem/reqsink/archive"
	"github.com/blogem/reqsink/config"
	"github.com/blogem/reqsink/database"
	"github.com/blogem/reqsink/models"
	"github.com/blogem/reqsink/repositories"
)

var (
	archivePath   string
	archiveLimit  int
	archiveOffset int
	archiveFormat string
)

// archivedEntry is one printed row of the archive command
type archivedEntry struct {
	ArchiveID  int64                   `json:"archive_id" yaml:"archive_id"`
	ArchivedAt time.Time               `json:"archived_at" yaml:"archived_at"`
	Request    *models.CapturedRequest `json:"request,omitempty" yaml:"request,omitempty"`
	Error      string                  `json:"error,omitempty" yaml:"error,omitempty"`
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Print requests archived to sqlite",
	Long: `Print requests that were evicted from memory and archived to sqlite,
oldest first. Output is one JSON object per line, or a YAML document stream.`,
	Example: `  reqsink archive --sqlite requests.db
  reqsink archive -s requests.db --limit 20 --offset 40 --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if archiveFormat != "json" && archiveFormat != "yaml" {
			return fmt.Errorf("unknown format %q (use json or yaml)", archiveFormat)
		}
		if archiveLimit < 1 || archiveOffset < 0 {
			return errors.New("limit must be at least 1 and offset must not be negative")
		}

		path := archivePath
		if path == "" {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			path = cfg.SQLitePath
		}
		if path == "" {
			return errors.New("no sqlite file given (use --sqlite or REQSINK_SQLITE)")
		}
		repos, err := openArchive(cmd.Context(), path)
		if err != nil {
			return err
		}
		defer repos.Archive.Close()

		total, err := repos.Archive.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d archived requests in %s\n", total, path)

		return printArchive(cmd.Context(), cmd.OutOrStdout(), repos.Archive, archiveLimit, archiveOffset, archiveFormat)
	},
}

func init() {
	archiveCmd.Flags().StringVarP(&archivePath, "sqlite", "s", "", "SQLite file written by serve (defaults to REQSINK_SQLITE)")
	archiveCmd.Flags().IntVar(&archiveLimit, "limit", 100, "Maximum number of requests to print")
	archiveCmd.Flags().IntVar(&archiveOffset, "offset", 0, "Number of requests to skip")
	archiveCmd.Flags().StringVar(&archiveFormat, "format", "json", "Output format (json, yaml)")
	rootCmd.AddCommand(archiveCmd)
}

// openArchive opens an existing archive file without touching its schema
func openArchive(ctx context.Context, path string) (*repositories.Repositories, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	db, err := database.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return repositories.NewRepositories(db), nil
}

// printArchive writes one page of archived requests to w. Rows that cannot be
// decoded are printed with their error instead of failing the whole page.
func printArchive(ctx context.Context, w io.Writer, repo repositories.ArchiveRepository, limit, offset int, format string) error {
	rows, err := repo.List(ctx, limit, offset)
	if err != nil {
		return err
	}

	entries := make([]archivedEntry, 0, len(rows))
	for _, row := range rows {
		entry := archivedEntry{ArchiveID: row.ID, ArchivedAt: row.ArchivedAt}
		rec, err := archive.Decode(row.Data)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Request = rec
		}
		entries = append(entries, entry)
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, entry := range entries {
			if err := enc.Encode(entry); err != nil {
				return fmt.Errorf("failed to write yaml: %w", err)
			}
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		for _, entry := range entries {
			if err := enc.Encode(entry); err != nil {
				return fmt.Errorf("failed to write json: %w", err)
			}
		}
		return nil
	}
}

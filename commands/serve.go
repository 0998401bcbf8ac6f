package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/api"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/data/fetcher"
)

var (
	servePort int

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the report proxy HTTP server",
		Long: `serve starts a small HTTP proxy that forwards report queries to the
Wolkvox API. Clients pass date_ini/date_end query parameters (14-digit
YYYYMMDDhhmmss) and the wolkvox-token / wolkvox-server headers; an upstream
"no conversations" answer is normalized to an empty payload.

The configured operations list is published at /api/operations. When the
list comes from a local file (--operations-file), edits to that file are
picked up without restarting the server.`,
		RunE: runServe,
	}
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8787, "Listen port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}

	registry, err := loadOperations(cmd.Context())
	if err != nil {
		return err
	}
	if operationsFile != "" {
		if err := registry.Watch(expandPath(operationsFile)); err != nil {
			return fmt.Errorf("failed to watch operations file: %w", err)
		}
		defer registry.Close()
	}

	client := fetcher.NewClient()
	return api.NewServer(servePort, client, registry).Start()
}

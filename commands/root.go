package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/conversation"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/daterange"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/data/fetcher"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/data/operations"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/presentation/formatter"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/util"
)

var (
	// Logging related
	debug   bool
	logFile string

	// Query configuration
	fromDate      string
	toDate        string
	operationName string
	phoneFilter   string
	showID        string

	// Operations source
	operationsURL  string
	operationsFile string

	// Output related
	outputFormat string
	timezone     string
	noCache      bool

	rootCmd = &cobra.Command{
		Use:   "wolkvox-chat-viewer [flags]",
		Short: "Wolkvox conversation report viewer",
		Long: `wolkvox-chat-viewer fetches customer-support interaction reports from the
Wolkvox API and presents them as grouped, chronologically ordered conversations.

Report ranges are limited to a single calendar month by the upstream API.

Examples:
  wolkvox-chat-viewer --operation Ventas --from 2024-03-01 --to 2024-03-05
  wolkvox-chat-viewer --operation Ventas --from 2024-03-01 --to 2024-03-05 --filter 555
  wolkvox-chat-viewer --operation Ventas --from 2024-03-01 --to 2024-03-05 --show 3233478550
  wolkvox-chat-viewer --operation Ventas --from 2024-03-01 --to 2024-03-05 -o json`,
		RunE: runView,
	}
)

const defaultLogFile = "~/.wolkvox-chat-viewer/logs/app.log"

func init() {
	rootCmd.Flags().StringVar(&fromDate, "from", "",
		"Report range start day (2006-01-02 or 02/01/2006)")
	rootCmd.Flags().StringVar(&toDate, "to", "",
		"Report range end day, same calendar month as --from")
	rootCmd.Flags().StringVar(&operationName, "operation", "",
		"Operation name from the operations list")
	rootCmd.Flags().StringVar(&phoneFilter, "filter", "",
		"Keep only conversations whose phone contains this substring")
	rootCmd.Flags().StringVar(&showID, "show", "",
		"Render the transcript of one conversation (phone or session id)")

	rootCmd.PersistentFlags().StringVar(&operationsURL, "operations-url", operations.DefaultSourceURL,
		"URL of the operations list JSON")
	rootCmd.PersistentFlags().StringVar(&operationsFile, "operations-file", "",
		"Local operations list JSON (overrides --operations-url)")

	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone for record timestamps and day boundaries (e.g. America/Bogota, UTC)")
	rootCmd.Flags().BoolVar(&noCache, "no-cache", false,
		"Bypass the in-memory report cache")

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile,
		"Log file path")
}

func runView(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	tp := util.GetTimeProvider()

	registry, err := loadOperations(cmd.Context())
	if err != nil {
		return err
	}

	if operationName == "" {
		return fmt.Errorf("--operation is required; available: %s",
			strings.Join(registry.Names(), ", "))
	}
	op, err := registry.Lookup(operationName)
	if err != nil {
		return err
	}

	validator := daterange.NewValidator(tp.Location())
	start, err := validator.ParseDay(fromDate)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	end, err := validator.ParseDay(toDate)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}
	rng, err := validator.Validate(start, end)
	if err != nil {
		return err
	}

	client := fetcher.NewClient()
	client.SetCacheEnabled(!noCache)

	records, err := client.FetchReport(cmd.Context(), op, rng)
	if err != nil {
		return err
	}

	convs := conversation.NewAggregator(tp).Aggregate(records, phoneFilter)

	if showID != "" {
		return renderTranscript(tp, convs, showID)
	}

	listFormatter, err := formatter.NewListFormatter(outputFormat, tp)
	if err != nil {
		return err
	}
	return listFormatter.Format(convs)
}

func renderTranscript(tp *util.TimeProvider, convs []*conversation.Conversation, id string) error {
	for _, conv := range convs {
		if conv.ID == id {
			entries := conversation.NewSegmenter(tp).Segment(conv)
			return formatter.NewChatRenderer().Render(conv, entries)
		}
	}
	return fmt.Errorf("no conversation %q in the fetched range", id)
}

// setup wires logging and the time provider from the shared flags.
func setup() error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logPath := expandPath(logFile)
	if err := ensureDir(filepath.Dir(logPath)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(logLevel, logPath, debug)

	return util.InitializeTimeProvider(timezone)
}

func loadOperations(ctx context.Context) (*operations.Registry, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	registry := operations.NewRegistry()
	if operationsFile != "" {
		if err := registry.LoadFile(expandPath(operationsFile)); err != nil {
			return nil, err
		}
		return registry, nil
	}
	if err := registry.LoadURL(ctx, operationsURL); err != nil {
		return nil, err
	}
	return registry, nil
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "List the operations available for reporting",
	RunE:  runOperations,
}

func init() {
	rootCmd.AddCommand(operationsCmd)
}

func runOperations(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}

	registry, err := loadOperations(cmd.Context())
	if err != nil {
		return err
	}

	names := registry.Names()
	if len(names) == 0 {
		fmt.Println("No operations configured.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

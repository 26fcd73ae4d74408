package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Schema management",
}

var schemaInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the keyspace and all tables (idempotent)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := newApp(true)
		if err != nil {
			return err
		}
		defer app.Close()

		fmt.Println("schema ready")

		return nil
	},
}

func init() {
	schemaCmd.AddCommand(schemaInitCmd)
	rootCmd.AddCommand(schemaCmd)
}

package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arloliu/registrar/manager"
)

var countryCmd = &cobra.Command{
	Use:   "country",
	Short: "Country management",
}

var countryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all countries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := newApp(false)
		if err != nil {
			return err
		}
		defer app.Close()

		return printResponse(app.Environment().ListCountries(cmd.Context()))
	},
}

var countryAddCmd = &cobra.Command{
	Use:   "add <name> <code>",
	Short: "Create a country",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(false)
		if err != nil {
			return err
		}
		defer app.Close()

		return printResponse(app.Environment().CreateCountry(cmd.Context(),
			manager.CreateCountryInput{Name: args[0], Code: args[1]}))
	},
}

var countryRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a country, cascading into its schools and holidays",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}

		app, err := newApp(false)
		if err != nil {
			return err
		}
		defer app.Close()

		return printResponse(app.Environment().DeleteCountry(cmd.Context(), id))
	},
}

func init() {
	countryCmd.AddCommand(countryListCmd, countryAddCmd, countryRmCmd)
	rootCmd.AddCommand(countryCmd)
}

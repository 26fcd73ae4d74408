package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arloliu/registrar/manager"
)

var schoolCmd = &cobra.Command{
	Use:   "school",
	Short: "School management",
}

var schoolAddCmd = &cobra.Command{
	Use:   "add <name> <country-id>",
	Short: "Create a school in an existing country",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		countryID, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}

		app, err := newApp(false)
		if err != nil {
			return err
		}
		defer app.Close()

		return printResponse(app.Environment().CreateSchool(cmd.Context(),
			manager.CreateSchoolInput{Name: args[0], CountryID: countryID}))
	},
}

func init() {
	schoolCmd.AddCommand(schoolAddCmd)
	rootCmd.AddCommand(schoolCmd)
}

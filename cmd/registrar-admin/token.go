package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arloliu/registrar/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Bearer token utilities",
}

var (
	tokenSchoolID  int
	tokenUserToken string
	tokenTTL       time.Duration
)

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Sign a bearer token for a school and user",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		secret := viper.GetString("jwt-secret")
		if secret == "" {
			return errors.New("jwt-secret is required")
		}

		decoder := auth.NewJWTDecoder([]byte(secret), tokenTTL)
		signed, err := decoder.Issue(auth.Claims{SchoolID: tokenSchoolID, UserToken: tokenUserToken})
		if err != nil {
			return err
		}

		fmt.Println(signed)

		return nil
	},
}

func init() {
	flags := tokenIssueCmd.Flags()
	flags.IntVar(&tokenSchoolID, "school-id", 0, "tenant school id")
	flags.StringVar(&tokenUserToken, "user-token", "", "user session token")
	flags.DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")

	for _, name := range []string{"school-id", "user-token"} {
		if err := tokenIssueCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}

	tokenCmd.AddCommand(tokenIssueCmd)
	rootCmd.AddCommand(tokenCmd)
}

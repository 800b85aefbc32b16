package commands

import (
	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
)

func init() {
	for _, cmd := range []*cobra.Command{loginCmd, signupCmd} {
		cmd.Flags().StringVar(&authEmail, "email", "", "Account email; prompted for when empty.")
		cmd.Flags().StringVar(&authPassword, "password", "", "Account password; prompted for when empty.")
	}
	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login [--email <email> --password <password>]",
	Short: "Logs in and stores the account's api key.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appFrom(cmd)
		if authEmail == "" || authPassword == "" {
			return app.PromptLogin(cmd.Context())
		}
		return app.Login(cmd.Context(), authEmail, authPassword)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup [--email <email> --password <password>]",
	Short: "Creates an account with the free starting credits.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appFrom(cmd)
		if authEmail == "" || authPassword == "" {
			return app.PromptSignup(cmd.Context())
		}
		return app.Signup(cmd.Context(), authEmail, authPassword, authPassword)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forgets the stored api key.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return appFrom(cmd).Logout()
	},
}

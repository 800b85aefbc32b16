package commands

import (
	"github.com/spf13/cobra"
)

var historyPage int

func init() {
	historyCmd.Flags().IntVar(&historyPage, "page", 1, "History page to show.")
	rootCmd.AddCommand(balanceCmd, historyCmd, plansCmd)
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Shows the remaining credits and what each action costs.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return appFrom(cmd).Balance(cmd.Context())
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [--page <n>]",
	Short: "Lists credit movements, newest first.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return appFrom(cmd).History(cmd.Context(), historyPage)
	},
}

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Lists the subscription plans.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		appFrom(cmd).Plans()
	},
}

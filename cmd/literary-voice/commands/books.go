package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reviewCmd, infoCmd, similarCmd)
}

var reviewCmd = &cobra.Command{
	Use:   "review <title or ISBN>",
	Short: "Summarizes the most liked review of a book (5 credits).",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return appFrom(cmd).Review(cmd.Context(), strings.Join(args, " "))
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <title or ISBN>",
	Short: "Shows a book's title, author and catalog link (1 credit).",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return appFrom(cmd).Info(cmd.Context(), strings.Join(args, " "))
	},
}

var similarCmd = &cobra.Command{
	Use:   "similar <title or author>",
	Short: "Lists other books by the same author (2 credits).",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return appFrom(cmd).Similar(cmd.Context(), strings.Join(args, " "))
	},
}

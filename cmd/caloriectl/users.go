package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	usersCmd := &cobra.Command{Use: "users", Short: "User operations"}

	profileCmd := &cobra.Command{
		Use:   "profile USER_ID",
		Short: "Get a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/users/%s/profile", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	usersCmd.AddCommand(profileCmd)

	logsCmd := &cobra.Command{
		Use:   "logs USER_ID",
		Short: "List a user's day logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/users/%s/logs", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	usersCmd.AddCommand(logsCmd)

	var days int
	dailyCmd := &cobra.Command{
		Use:   "daily USER_ID",
		Short: "Show daily consumption totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/users/%s/analytics/daily?days=%s",
				apiFlag, args[0], strconv.Itoa(days))
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	dailyCmd.Flags().IntVarP(&days, "days", "d", 7, "Number of days to report")
	usersCmd.AddCommand(dailyCmd)

	rootCmd.AddCommand(usersCmd)
}

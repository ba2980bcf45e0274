package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	backupCmd := &cobra.Command{Use: "backup", Short: "Backup operations"}

	// export
	var outFile string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Download a snapshot of all profiles and logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/backup/export", apiFlag))
			if err != nil {
				return err
			}
			if outFile == "" {
				_, _ = fmt.Fprintln(os.Stdout, string(data))
				return nil
			}
			return os.WriteFile(outFile, data, 0o644)
		},
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "Write snapshot to file instead of stdout")
	backupCmd.AddCommand(exportCmd)

	// import
	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Merge a snapshot file into the service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			data, err := doPostRaw(fmt.Sprintf("%s/api/backup/import", apiFlag), raw)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	backupCmd.AddCommand(importCmd)

	rootCmd.AddCommand(backupCmd)
}

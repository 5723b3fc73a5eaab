package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fetchOutput string

var fetchCmd = &cobra.Command{
	Use:   "fetch KEY",
	Short: "Download a result file from storage into the data directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.EnsureDataDir(); err != nil {
			return err
		}
		dst := fetchOutput
		if dst == "" {
			dst = cfg.DownloadPath(args[0])
		}

		s, err := newService(true)
		if err != nil {
			return err
		}
		if err := s.Fetch(cmd.Context(), args[0], dst); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dst)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "Destination path (default <data_dir>/downloads/<name>)")
}

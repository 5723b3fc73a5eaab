package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mat-analysis/pkg/model"
)

var categoriesSort bool

var categoriesCmd = &cobra.Command{
	Use:   "categories [CATEGORY]",
	Short: "List variables grouped by category",
	Long: `List variables grouped by category. Names are sorted within each
category; --sort=false keeps the order they appear in the file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadInput(cmd, false)
		if err != nil {
			return err
		}
		groups := s.ListCategories()
		if categoriesSort {
			for _, names := range groups {
				slices.Sort(names)
			}
		}
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			names, ok := groups[model.Category(args[0])]
			if !ok {
				return fmt.Errorf("unknown category %q", args[0])
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		}

		for _, cat := range model.AllCategories {
			names := groups[cat]
			if len(names) == 0 {
				continue
			}
			fmt.Fprintf(out, "%s (%d)\n", cat, len(names))
			for _, name := range names {
				fmt.Fprintf(out, "  %s\n", name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	addInputFlags(categoriesCmd)
	categoriesCmd.Flags().BoolVar(&categoriesSort, "sort", true, "Sort names within each category")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relab-mx/scoreboard/internal/sampledata"
)

func newGenerateCmd() *cobra.Command {
	var (
		researchers int
		areas       int
		seed        int64
		out         string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sample YAML dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := sampledata.NewGenerator(
				sampledata.WithResearcherCount(researchers),
				sampledata.WithAreaCount(areas),
				sampledata.WithSeed(seed),
			)
			ds := gen.Generate()
			if err := ds.Save(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d researchers to %s\n", len(ds.Researchers), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&researchers, "researchers", 25, "number of researchers to generate")
	cmd.Flags().IntVar(&areas, "areas", 4, "number of areas to spread researchers across")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for reproducible output")
	cmd.Flags().StringVar(&out, "out", "dataset.yaml", "output file path")

	return cmd
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relab-mx/scoreboard/internal/adapters/repository"
	app "github.com/relab-mx/scoreboard/internal/app"
	"github.com/relab-mx/scoreboard/internal/sampledata"
	"github.com/relab-mx/scoreboard/pkg/logger"
)

func newRecomputeCmd() *cobra.Command {
	var dataset string

	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute every active researcher in a dataset and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecompute(cmd, dataset)
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", "", "path to a YAML dataset (required)")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func runRecompute(cmd *cobra.Command, dataset string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	ctx := context.Background()

	ds, err := sampledata.Load(dataset)
	if err != nil {
		return err
	}

	source := repository.NewMemorySource()
	ds.Apply(source)

	svc := app.New(app.WithSource(source))
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	defer svc.Stop()

	result, err := svc.RecomputeAll(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "recomputed %d researchers\n", result.Count)
	for _, f := range result.Failures {
		fmt.Fprintf(out, "failed %s: %s\n", f.ResearcherID, f.Reason)
	}

	summaries, err := svc.AreaSummary(ctx)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Fprintf(out, "area %s: %d researchers, %d total points\n",
			s.AreaID, s.ResearcherCount, s.Total)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/hupe1980/binder"
	"github.com/hupe1980/binder/psmio"
	"github.com/spf13/cobra"
)

type lossFlags struct {
	input     string
	labels    string
	threshold float64
	json      bool
}

func newLossCmd(g *globalFlags) *cobra.Command {
	f := &lossFlags{}

	cmd := &cobra.Command{
		Use:   "loss",
		Short: "Report the expected Binder loss of given partitions",
		Example: `  binder loss --input psm.csv --labels candidates.csv
  binder loss --input psm.json --labels result.json --threshold 0.3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.resolve(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				cfg.Threshold = f.threshold
			}
			return runLoss(cmd, cfg, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.input, "input", "i", "", "posterior similarity matrix")
	fs.StringVarP(&f.labels, "labels", "l", "", "partitions (.csv rows, .json arrays or a result record)")
	fs.Float64VarP(&f.threshold, "threshold", "c", binder.DefaultThreshold, "pairwise loss threshold")
	fs.BoolVar(&f.json, "json", false, "print losses as a JSON array")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("labels")

	return cmd
}

func runLoss(cmd *cobra.Command, cfg *Config, f *lossFlags) error {
	ctx := cmd.Context()

	codecOpt, cd, err := cfg.codecOption()
	if err != nil {
		return err
	}

	in, err := parseLocation(f.input)
	if err != nil {
		return err
	}
	lab, err := parseLocation(f.labels)
	if err != nil {
		return err
	}

	src, err := in.open(ctx, cfg)
	if err != nil {
		return err
	}
	m, err := psmio.Load(ctx, src, in.name, codecOpt)
	if err != nil {
		return err
	}

	lsrc, err := lab.open(ctx, cfg)
	if err != nil {
		return err
	}
	parts, err := psmio.LoadLabels(ctx, lsrc, lab.name, codecOpt)
	if err != nil {
		return err
	}

	losses, err := binder.ExpectedLoss(m, cfg.Threshold, parts...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if f.json {
		data, err := cd.Marshal(losses)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	for i, l := range losses {
		if _, err := fmt.Fprintf(w, "partition %d: loss=%.6g\n", i+1, l); err != nil {
			return err
		}
	}
	return nil
}

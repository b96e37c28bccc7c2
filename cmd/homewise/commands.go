package main

import (
	"fmt"

	"github.com/homewise/affordability/internal/calculation"
	"github.com/homewise/affordability/internal/config"
	"github.com/homewise/affordability/internal/domain"
	"github.com/homewise/affordability/internal/output"
	"github.com/homewise/affordability/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newScenarioCmd(a *app) *cobra.Command {
	var (
		price string
		rf    rateFlags
	)
	cmd := &cobra.Command{
		Use:   "scenario [input-file]",
		Short: "Check whether a target price is affordable for the profile in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid --price %q: %w", price, err)
			}
			report, engine, err := a.run(cmd.Context(), args[0], &rf)
			if err != nil {
				return err
			}
			sr, err := engine.Evaluate(report.Result, target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			status := "NOT AFFORDABLE"
			if sr.IsAffordable {
				status = "AFFORDABLE"
			}
			fmt.Fprintf(out, "Target %s vs maximum %s: %s\n",
				money.FormatWhole(sr.TargetPrice), money.FormatWhole(sr.MaxAffordable), status)
			for _, rec := range sr.Recommendations {
				fmt.Fprintf(out, "  - %s\n", rec)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&price, "price", "", "target property price")
	_ = cmd.MarkFlagRequired("price")
	rf.register(cmd)
	return cmd
}

func newDutyCmd(a *app) *cobra.Command {
	var (
		jurisdiction string
		price        string
		firstHome    bool
	)
	cmd := &cobra.Command{
		Use:   "duty",
		Short: "Quote transfer duty for a purchase price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := decimal.NewFromString(price)
			if err != nil || p.IsNegative() {
				return fmt.Errorf("invalid --price %q", price)
			}
			table := calculation.DefaultStampDutyTable()
			schedule, known := table.Schedule(domain.Jurisdiction(jurisdiction))
			if !known {
				fmt.Fprintf(cmd.ErrOrStderr(), "unknown jurisdiction %q, using %s\n", jurisdiction, schedule.Jurisdiction)
			}
			duty := table.DutyFor(domain.Jurisdiction(jurisdiction), p, firstHome)
			fmt.Fprintf(cmd.OutOrStdout(), "%s stamp duty on %s: %s\n",
				schedule.Jurisdiction, money.FormatWhole(p), money.Format(duty))
			return nil
		},
	}
	cmd.Flags().StringVarP(&jurisdiction, "jurisdiction", "j", string(domain.DefaultJurisdiction), "state or territory code")
	cmd.Flags().StringVar(&price, "price", "", "purchase price")
	cmd.Flags().BoolVar(&firstHome, "first-home", false, "apply the first home buyer exemption")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file without calculating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if _, err := newEngine(cfg, a.logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid: %d scenario(s)\n", len(cfg.Scenarios))
			return nil
		},
	}
}

func newExampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example [output-file]",
		Short: "Write an example input file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "example_config.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			if err := output.SaveConfiguration(config.NewInputParser().CreateExampleConfiguration(), filename); err != nil {
				return fmt.Errorf("failed to write example configuration: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", filename)
			return nil
		},
	}
}

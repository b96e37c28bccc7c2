package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/homewise/affordability/internal/calculation"
	"github.com/homewise/affordability/internal/config"
	"github.com/homewise/affordability/internal/domain"
	"github.com/homewise/affordability/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rateFlags select where the cash rate comes from when an input file has
// no base_annual_rate.
type rateFlags struct {
	source string
	rbaURL string
	margin string
}

func (f *rateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "rate-source", config.RateSourceStatic, "cash rate source when the file has no rate (static, rba)")
	cmd.Flags().StringVar(&f.rbaURL, "rba-url", config.DefaultRBAURL, "RBA cash rate page")
	cmd.Flags().StringVar(&f.margin, "margin", domain.DefaultLoanRateMargin.String(), "loan rate margin over the cash rate, as a fraction")
}

func (f *rateFlags) serverConfig() (config.ServerConfig, error) {
	cfg := config.DefaultServerConfig()
	switch src := strings.ToLower(f.source); src {
	case config.RateSourceStatic, config.RateSourceRBA:
		cfg.RateSource = src
	default:
		return cfg, fmt.Errorf("unknown rate source %q", f.source)
	}
	cfg.RBAURL = f.rbaURL
	margin, err := decimal.NewFromString(f.margin)
	if err != nil || margin.IsNegative() {
		return cfg, fmt.Errorf("invalid margin %q", f.margin)
	}
	cfg.LoanRateMargin = margin
	return cfg, nil
}

// run loads an input file and computes its report, resolving the rate if
// the file does not fix one.
func (a *app) run(ctx context.Context, filename string, rf *rateFlags) (*domain.Report, *calculation.CalculationEngine, error) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	engine, err := newEngine(cfg, a.logger)
	if err != nil {
		return nil, nil, err
	}

	var quote *domain.RateQuote
	rate := decimal.Zero
	if cfg.Loan.BaseAnnualRate == nil {
		serverCfg, err := rf.serverConfig()
		if err != nil {
			return nil, nil, err
		}
		stack := newRateStack(serverCfg, a.logger)
		defer stack.Close()

		q, err := stack.resolver.CurrentCashRate(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve interest rate: %w", err)
		}
		quote = &q
		rate = q.LoanRate(serverCfg.LoanRateMargin)
		a.logger.Info("resolved loan rate",
			zap.String("source", q.Source),
			zap.String("cash_rate", q.CashRatePercent.String()),
			zap.String("loan_rate", rate.String()))
	}

	terms := cfg.Loan.Terms(rate)
	if err := terms.Validate(); err != nil {
		return nil, nil, err
	}

	report, err := engine.Run(ctx, cfg, terms)
	if err != nil {
		return nil, nil, fmt.Errorf("calculation failed: %w", err)
	}
	report.Rate = quote
	return report, engine, nil
}

// newEngine builds an engine from the file's rules and optional duty table.
func newEngine(cfg *domain.Configuration, logger *zap.Logger) (*calculation.CalculationEngine, error) {
	return calculation.NewConfiguredEngine(cfg, logger.Sugar())
}

func newCalculateCmd(a *app) *cobra.Command {
	var (
		format    string
		outputDir string
		rf        rateFlags
	)
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate buying power and evaluate the configured scenarios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, _, err := a.run(cmd.Context(), args[0], &rf)
			if err != nil {
				return err
			}

			if outputDir != "" {
				if err := os.MkdirAll(outputDir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				files, err := output.GenerateReport(report, format, outputDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
				}
				return nil
			}

			if strings.EqualFold(format, "all") {
				return fmt.Errorf("format \"all\" requires --output")
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("%w: %q. Try one of: %s", output.ErrUnsupportedFormat, format,
					strings.Join(output.AvailableFormatterNames(), ", "))
			}
			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+", all)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "write a timestamped report file to this directory instead of stdout")
	rf.register(cmd)
	return cmd
}

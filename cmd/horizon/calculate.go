package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/horizonfin/horizon/internal/calculation"
	"github.com/horizonfin/horizon/internal/config"
	"github.com/horizonfin/horizon/internal/output"
)

func calculateCmd() *cobra.Command {
	var (
		format     string
		returnRate string
		targetAge  int
	)

	cmd := &cobra.Command{
		Use:   "calculate [profile-file]",
		Short: "Project retirement finances from a profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, opts, err := config.NewInputParser().LoadProfileFromFile(args[0])
			if err != nil {
				return err
			}
			if returnRate != "" {
				if opts.ExpectedReturnRate, err = decimal.NewFromString(returnRate); err != nil {
					return fmt.Errorf("invalid --return %q: %w", returnRate, err)
				}
			}
			if targetAge > 0 {
				opts.TargetAge = targetAge
			}
			if err := config.NewInputParser().ValidateScenario(opts); err != nil {
				return err
			}

			calc := calculation.NewEngine().CalculateRetirement(profile, opts)

			formatter, err := output.NewFormatter(format)
			if err != nil {
				return err
			}
			rendered, err := formatter.Format(calc)
			if err != nil {
				return fmt.Errorf("failed to render projection: %w", err)
			}
			_, err = os.Stdout.Write(rendered)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, csv or json")
	cmd.Flags().StringVar(&returnRate, "return", "", "expected annual return rate (default: profile scenario)")
	cmd.Flags().IntVar(&targetAge, "target-age", 0, "simulate until this age (default: profile scenario)")
	return cmd
}

func readinessCmd() *cobra.Command {
	var rateFlag string

	cmd := &cobra.Command{
		Use:   "readiness [profile-file]",
		Short: "Score retirement readiness for a profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, opts, err := config.NewInputParser().LoadProfileFromFile(args[0])
			if err != nil {
				return err
			}

			rate := opts.ExpectedReturnRate
			if rateFlag != "" {
				if rate, err = decimal.NewFromString(rateFlag); err != nil {
					return fmt.Errorf("invalid --rate %q: %w", rateFlag, err)
				}
			}

			engine := calculation.NewEngine()
			result := engine.CalculateRetirementReadiness(profile, rate, nil)

			fmt.Printf("Readiness score:      %s / 100\n", result.ReadinessScore.StringFixed(1))
			fmt.Printf("Current savings rate: %s%%\n", result.CurrentSavingsRate.Mul(decimal.NewFromInt(100)).StringFixed(1))
			fmt.Printf("Monthly savings:      %s\n", result.MonthlySavings.StringFixed(2))
			fmt.Printf("Projected pension:    %s\n", result.ProjectedRetirementIncome.StringFixed(2))
			if len(result.Recommendations) > 0 {
				fmt.Println("\nRecommendations:")
				for _, rec := range result.Recommendations {
					fmt.Println("  -", rec)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rateFlag, "rate", "", "expected annual return rate (default: profile scenario)")
	return cmd
}

func requiredSavingsCmd() *cobra.Command {
	var (
		target    string
		years     int
		rateFlag  string
		inflation string
	)

	cmd := &cobra.Command{
		Use:   "required-savings",
		Short: "Estimate the monthly savings needed for a target retirement income",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetIncome, err := decimal.NewFromString(target)
			if err != nil || !targetIncome.IsPositive() {
				return fmt.Errorf("--target must be a positive amount, got %q", target)
			}
			if years < 1 {
				return fmt.Errorf("--years must be at least 1, got %d", years)
			}
			rate, err := decimal.NewFromString(rateFlag)
			if err != nil {
				return fmt.Errorf("invalid --rate %q: %w", rateFlag, err)
			}
			infl, err := decimal.NewFromString(inflation)
			if err != nil {
				return fmt.Errorf("invalid --inflation %q: %w", inflation, err)
			}

			result := calculation.CalculateRequiredSavings(targetIncome, years, rate, infl)
			fmt.Printf("Required monthly savings: %s\n", result.RequiredMonthlySavings.StringFixed(2))
			fmt.Printf("Required fund:            %s\n", result.RequiredRetirementFund.StringFixed(2))
			fmt.Printf("Target annual income:     %s (inflated)\n", result.TargetAnnualIncome.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "target monthly retirement income (required)")
	cmd.Flags().IntVar(&years, "years", 0, "years until retirement (required)")
	cmd.Flags().StringVar(&rateFlag, "rate", "0.07", "expected annual return rate")
	cmd.Flags().StringVar(&inflation, "inflation", "0.03", "annual inflation rate")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("years")
	return cmd
}

package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"loan-evaluator/domain"
	"loan-evaluator/repository"
	"loan-evaluator/service"
)

func quoteCmd() *cobra.Command {
	var (
		input        domain.LoanInput
		showSchedule bool
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print the monthly payment for a loan",
		Example: `  loan-evaluator quote --amount 10000 --rate 12 --term 12
  loan-evaluator quote --amount 250000 --rate 6.5 --term 360 --schedule`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printQuote(cmd.Context(), cmd.OutOrStdout(), input, showSchedule)
		},
	}

	cmd.Flags().Float64Var(&input.Amount, "amount", 0, "loan principal")
	cmd.Flags().Float64Var(&input.InterestRate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&input.TermMonths, "term", 12, "term in months")
	cmd.Flags().BoolVar(&showSchedule, "schedule", false, "print the full amortization schedule")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// printQuote runs the input through the same LoanService limits the API
// applies.
func printQuote(ctx context.Context, out io.Writer, input domain.LoanInput, showSchedule bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	loans := service.NewLoanService(repository.NewLoanRepositoryMemory(), repository.NewMemoryCache(), 0)

	result, err := loans.CalculateLoan(ctx, input)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Monthly payment\t%.2f\t\n", result.MonthlyPayment)
	fmt.Fprintf(tw, "Total payment\t%.2f\t\n", result.TotalPayment)
	fmt.Fprintf(tw, "Total interest\t%.2f\t\n", result.TotalInterest)
	if err := tw.Flush(); err != nil {
		return err
	}

	if !showSchedule {
		return nil
	}

	rows, err := loans.BuildSchedule(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tPayment\tPrincipal\tInterest\tBalance\t")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t\n", row.Month, row.Payment, row.Principal, row.Interest, row.Balance)
	}
	return tw.Flush()
}

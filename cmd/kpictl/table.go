package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
	"github.com/vfg2006/fund-kpi-api/internal/usecases/kpi"
)

func newTableCmd(load func() (kpi.Reporter, error)) *cobra.Command {
	var (
		year  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Imprime a tabela anual de investidores, investimentos e AUM",
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter, err := load()
			if err != nil {
				return err
			}

			if year == 0 {
				year = reporter.Navigation(0).CurrentYear
			}

			if watch {
				return reporter.WatchAnnualReport(cmd.Context(), year, func(report *domain.AnnualReport) error {
					return renderReport(cmd.OutOrStdout(), report)
				})
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			report, err := reporter.GetAnnualReport(ctx, year)
			if err != nil {
				return err
			}

			return renderReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "ano consultado (padrão: ano atual)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reimprime a tabela a cada atualização do subgraph")

	return cmd
}

// renderReport imprime a tabela com a coluna Quantity seguida de Jan..Dec
func renderReport(out io.Writer, report *domain.AnnualReport) error {
	fmt.Fprintf(out, "%d", report.Year)
	if report.Navigation.HasPrevious {
		fmt.Fprintf(out, "  < %d", report.Year-1)
	}
	if report.Navigation.HasNext {
		fmt.Fprintf(out, "  > %d", report.Year+1)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := make([]string, 0, domain.MonthsPerYear+1)
	header = append(header, "Quantity")
	for m := time.January; m <= time.December; m++ {
		header = append(header, m.String()[:3])
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range report.Rows {
		cells := make([]string, 0, domain.MonthsPerYear+1)
		cells = append(cells, row.Quantity)
		for _, month := range row.Months {
			cells = append(cells, month.Render())
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}

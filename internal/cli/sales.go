package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fogfactory/conveyor"
	"github.com/fogfactory/conveyor/observe"
	"github.com/fogfactory/conveyor/sales"
	"github.com/spf13/cobra"
)

var errNoSalesFile = errors.New("no sales file: pass one as argument or set sales.file")

func newSalesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales [file]",
		Short: "Stream a sales CSV through the pipeline and print the analytics report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.salesReport(cmd, args)
		},
	}
	cmd.Flags().Int("top", 0, "number of top customers, overrides sales.top")
	return cmd
}

func (a *app) salesReport(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		a.cfg.Sales.File = args[0]
	}
	if cmd.Flags().Changed("top") {
		a.cfg.Sales.Top, _ = cmd.Flags().GetInt("top")
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	if a.cfg.Sales.File == "" {
		return errNoSalesFile
	}

	log := a.log.WithComponent("sales")
	records, err := sales.LoadFile(a.cfg.Sales.File)
	if err != nil {
		return err
	}
	log.Info("records loaded", map[string]any{"file": a.cfg.Sales.File, "records": len(records)})

	result, err := conveyor.Run(records, a.cfg.Pipeline.Capacity,
		conveyor.WithObserver(observe.Log(log.Zerolog())),
	)
	if err != nil {
		log.Error("streaming records failed", err, map[string]any{"run_id": result.RunID()})
		return err
	}

	printReport(cmd.OutOrStdout(), sales.NewAnalyzer(result.Destination()), a.cfg.Sales.Top)
	return nil
}

func printReport(w io.Writer, analyzer *sales.Analyzer, top int) {
	s := analyzer.Summary()

	fmt.Fprintln(w, "===== SALES ANALYTICS =====")
	fmt.Fprintf(w, "Total records: %d\n", s.Records)

	fmt.Fprintln(w, "\n--- Overall Metrics ---")
	fmt.Fprintf(w, "Total revenue:         %.2f\n", s.TotalRevenue)
	fmt.Fprintf(w, "Average order value:   %.2f\n", s.AverageOrderValue)
	fmt.Fprintf(w, "Returns rate:          %.2f%%\n", s.ReturnsRate*100)

	fmt.Fprintln(w, "\n--- Revenue by Country ---")
	printTotals(w, s.RevenueByCountry, 15)

	fmt.Fprintln(w, "\n--- Revenue by Category ---")
	printTotals(w, s.RevenueByCategory, 15)

	fmt.Fprintln(w, "\n--- Monthly Revenue (YYYY-MM) ---")
	for _, m := range s.MonthlyRevenue {
		fmt.Fprintf(w, "%d-%02d:     %10.2f\n", m.Year, m.Month, m.Revenue)
	}

	fmt.Fprintln(w, "\n--- Top Customers by Revenue ---")
	printTotals(w, analyzer.TopCustomers(top), 10)
}

func printTotals(w io.Writer, totals []sales.Total, width int) {
	for _, t := range totals {
		fmt.Fprintf(w, "%-*s %10.2f\n", width, t.Key, t.Revenue)
	}
}

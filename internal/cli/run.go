package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fogfactory/conveyor"
	"github.com/fogfactory/conveyor/observe"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Move item-1..item-N from a source to a destination through the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDemo(cmd)
		},
	}
	cmd.Flags().Int("capacity", 0, "queue capacity, overrides pipeline.capacity")
	cmd.Flags().Int("items", 0, "number of source items, overrides pipeline.items")
	cmd.Flags().String("sentinel", "", "end the stream with this value instead of a tagged end marker")
	cmd.Flags().Bool("metrics", false, "print the OpenTelemetry instruments recorded during the run")
	return cmd
}

func (a *app) runDemo(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("capacity") {
		a.cfg.Pipeline.Capacity, _ = flags.GetInt("capacity")
	}
	if flags.Changed("items") {
		a.cfg.Pipeline.Items, _ = flags.GetInt("items")
	}
	if flags.Changed("sentinel") {
		a.cfg.Pipeline.Sentinel, _ = flags.GetString("sentinel")
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	p := a.cfg.Pipeline

	log := a.log.WithComponent("pipeline")
	observers := []conveyor.Observer{observe.Log(log.Zerolog())}

	var reader *sdkmetric.ManualReader
	if withMetrics, _ := flags.GetBool("metrics"); withMetrics {
		reader = sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		defer func() { _ = provider.Shutdown(context.Background()) }()

		metrics, err := observe.NewMetrics(provider.Meter(serviceName))
		if err != nil {
			return err
		}
		observers = append(observers, metrics.Observer())
	}
	opts := []conveyor.Option{conveyor.WithObserver(conveyor.Observers(observers...))}

	source := lo.Map(lo.RangeFrom(1, p.Items), func(i, _ int) string {
		return fmt.Sprintf("item-%d", i)
	})

	var (
		result conveyor.Result[string]
		err    error
	)
	if p.Sentinel != "" {
		result, err = conveyor.RunWithSentinel(source, p.Capacity, p.Sentinel, opts...)
	} else {
		result, err = conveyor.Run(source, p.Capacity, opts...)
	}
	if err != nil {
		log.Error("run failed", err, map[string]any{"run_id": result.RunID()})
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "=== Producer-Consumer Demo ===")
	fmt.Fprintf(w, "%-23s%s\n", "Run ID:", result.RunID())
	fmt.Fprintf(w, "%-23s%v\n", "Source container:", source)
	fmt.Fprintf(w, "%-23s%v\n", "Destination container:", result.Destination())
	fmt.Fprintf(w, "%-23s%d\n", "Produced count:", result.Produced())
	fmt.Fprintf(w, "%-23s%d\n", "Consumed count:", result.Consumed())

	if reader != nil {
		return printMetrics(cmd.Context(), w, reader)
	}
	return nil
}

func printMetrics(ctx context.Context, w io.Writer, reader *sdkmetric.ManualReader) error {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return fmt.Errorf("collecting metrics: %w", err)
	}

	fmt.Fprintln(w, "\n--- Metrics ---")
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				total := lo.SumBy(data.DataPoints, func(dp metricdata.DataPoint[int64]) int64 { return dp.Value })
				fmt.Fprintf(w, "%-25s %d\n", m.Name, total)
			case metricdata.Histogram[int64]:
				count := lo.SumBy(data.DataPoints, func(dp metricdata.HistogramDataPoint[int64]) uint64 { return dp.Count })
				fmt.Fprintf(w, "%-25s %d samples\n", m.Name, count)
			}
		}
	}
	return nil
}

package observe_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fogfactory/conveyor"
	"github.com/fogfactory/conveyor/observe"
	"github.com/maxatome/go-testdeep/td"
	"github.com/rs/zerolog"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestLog(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	l := zerolog.New(zerolog.SyncWriter(&buf)).Level(zerolog.DebugLevel)

	// Act
	_, err := conveyor.Run([]string{"item-1", "item-2"}, 1,
		conveyor.WithObserver(observe.Log(l)),
		conveyor.WithRunID("log-run"))

	// Assert
	td.Require(t).CmpNoError(err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	td.Require(t).Cmp(lines, td.Len(6))

	type entry struct {
		Level     string `json:"level"`
		RunID     string `json:"run_id"`
		Task      string `json:"task"`
		Event     string `json:"event"`
		Item      string `json:"item"`
		QueueSize int    `json:"queue_size"`
		Message   string `json:"message"`
	}
	entries := make([]entry, 0, len(lines))
	for _, line := range lines {
		var e entry
		td.Require(t).CmpNoError(json.Unmarshal([]byte(line), &e), line)
		entries = append(entries, e)
	}

	for _, e := range entries {
		td.Cmp(t, e.RunID, "log-run")
	}
	td.Cmp(t, entries, td.Contains(td.Struct(entry{
		Level: "info", RunID: "log-run", Task: "producer", Event: "end_sent",
		Message: "produced end of stream, producer exiting",
	}, td.StructFields{"QueueSize": td.Between(0, 1)})))
	td.Cmp(t, entries, td.Contains(td.Struct(entry{
		Level: "debug", RunID: "log-run", Task: "consumer", Event: "consumed", Item: "item-2",
		Message: "consumed item",
	}, td.StructFields{"QueueSize": td.Between(0, 1)})))
}

func TestLogLevelFilter(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	l := zerolog.New(zerolog.SyncWriter(&buf)).Level(zerolog.InfoLevel)

	// Act
	_, err := conveyor.Run([]int{1, 2, 3}, 2, conveyor.WithObserver(observe.Log(l)))

	// Assert: only the two end of stream lines are kept
	td.Require(t).CmpNoError(err)
	td.Cmp(t, strings.Count(buf.String(), "\n"), 2)
	td.CmpNot(t, buf.String(), td.Contains(`"event":"produced"`))
}

func TestMetrics(t *testing.T) {
	// Arrange
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	metrics, err := observe.NewMetrics(provider.Meter("conveyor-test"))
	td.Require(t).CmpNoError(err)

	// Act
	_, err = conveyor.Run([]int{1, 2, 3, 4}, 2, conveyor.WithObserver(metrics.Observer()))
	td.Require(t).CmpNoError(err)

	// Assert
	var rm metricdata.ResourceMetrics
	td.Require(t).CmpNoError(reader.Collect(context.Background(), &rm))

	sums := map[string]int64{}
	tasks := map[string][]string{}
	var histogramCount uint64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
					task, _ := dp.Attributes.Value("task")
					tasks[m.Name] = append(tasks[m.Name], task.AsString())
				}
			case metricdata.Histogram[int64]:
				for _, dp := range data.DataPoints {
					histogramCount += dp.Count
				}
			}
		}
	}
	td.Cmp(t, sums, map[string]int64{
		"conveyor.items.produced": 4,
		"conveyor.items.consumed": 4,
	})
	td.Cmp(t, tasks, map[string][]string{
		"conveyor.items.produced": {"producer"},
		"conveyor.items.consumed": {"consumer"},
	})
	td.Cmp(t, histogramCount, uint64(10)) // 4 produced + 4 consumed + 2 end of stream
}

package benchmark

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/fogfactory/conveyor"
	"github.com/samber/lo"
)

// Profile generates a cpu profile file of runs moving items through each capacity. It will be outputted as conveyor_{date}_n{items}_{capacities}.prof.
//
// - items Number of items moved by each run.
// - capacities Queue capacities, one run per capacity.
//
// use pprof to read the file (go install github.com/google/pprof@latest).
func Profile(items int, capacities ...int) error {
	// Profile file
	f, err := os.Create(fmt.Sprintf("conveyor_%s_n%d_%s.prof",
		strings.ReplaceAll(time.Now().Truncate(time.Second).Format(time.DateTime), " ", "-"),
		items,
		strings.Join(lo.Map(capacities, func(item, _ int) string { return fmt.Sprint(item) }), "-")))
	if err != nil {
		return err
	}
	defer f.Close()

	source := lo.Range(items)

	if err := pprof.StartCPUProfile(f); err != nil {
		return err
	}
	defer pprof.StopCPUProfile()

	for _, capacity := range capacities {
		start := time.Now()
		result, err := conveyor.Run(source, capacity)
		if err != nil {
			return err
		}
		fmt.Printf("(capacity %d: %d items in %s)\n", capacity, result.Consumed(), time.Since(start))
	}

	// sequential equivalent, without any handoff
	start := time.Now()
	destination := make([]int, 0, items)
	destination = append(destination, source...)
	fmt.Printf("(seq: %d items in %s)\n", len(destination), time.Since(start))
	fmt.Printf("profile:%s\n", f.Name())

	// Call pprof on a file
	// pprof -http=:8080 $file
	return nil
}

package conveyor_test

import (
	"fmt"
	"testing"

	"github.com/fogfactory/conveyor"
	"github.com/samber/lo"
)

func BenchmarkRun(b *testing.B) {
	source := lo.Range(10_000)
	for _, capacity := range []int{1, 16, 256} {
		b.Run(fmt.Sprintf("capacity_%d", capacity), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := conveyor.Run(source, capacity); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkQueuePutGet(b *testing.B) {
	q, err := conveyor.New[int](64)
	if err != nil {
		b.Fatal(err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < b.N; i++ {
			q.Get()
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Put(i)
	}
	<-done
}

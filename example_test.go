package binder_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/binder"
	"github.com/hupe1980/binder/psm"
)

func Example() {
	m, err := psm.FromRows([][]float64{
		{1, 0.9, 0.1, 0.1},
		{0.9, 1, 0.1, 0.1},
		{0.1, 0.1, 1, 0.9},
		{0.1, 0.1, 0.9, 1},
	})
	if err != nil {
		log.Fatal(err)
	}

	res, err := binder.Run(context.Background(), m,
		binder.WithTargetIterations(100),
		binder.WithMaxThreads(2),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Labels, res.NumClusters)
	fmt.Printf("%.2f\n", res.Loss)
	// Output:
	// [1 1 2 2] 2
	// 2.60
}

func ExampleExpectedLoss() {
	m, _ := psm.FromRows([][]float64{
		{1, 0.8, 0.2},
		{0.8, 1, 0.2},
		{0.2, 0.2, 1},
	})

	losses, err := binder.ExpectedLoss(m, 0.5,
		[]int{1, 1, 2},
		[]int{1, 2, 3},
	)
	if err != nil {
		log.Fatal(err)
	}
	for _, l := range losses {
		fmt.Printf("%.2f\n", l)
	}
	// Output:
	// 2.10
	// 2.70
}

func ExampleBasicMetricsCollector() {
	m, _ := psm.FromRows([][]float64{{1, 0.7}, {0.7, 1}})

	mc := &binder.BasicMetricsCollector{}
	if _, err := binder.Run(context.Background(), m,
		binder.WithTargetIterations(10),
		binder.WithMaxThreads(1),
		binder.WithMetricsCollector(mc),
	); err != nil {
		log.Fatal(err)
	}

	stats := mc.GetStats()
	fmt.Println(stats.RunCount, stats.IterationCount)
	// Output: 1 10
}

package main

import (
	"context"
	"fmt"
	"time"

	termination "github.com/CDECatapult/termination-manager"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewDevelopment()

	m := termination.New(
		termination.WithLogger(logger),
		termination.WithGrace(3*time.Second),
		termination.WithDrainGrace(10*time.Second),
		termination.WithOnStopError(func(err error) {
			logger.Error("shutdown task failed", zap.Error(err))
		}),
	)
	defer m.Recover()

	m.SetTrigger(context.Background(), termination.WithSysSignal())

	pool := newPool(4)

	// Stop the intake first, then drain the workers, then flush results.
	m.MustAdd(termination.Task{Name: "intake", Priority: 100, Stop: pool.closeIntake}).
		MustAdd(termination.Task{Name: "workers", Priority: 50, Stop: pool.drain}).
		MustAdd(termination.Task{Name: "results", Priority: 10, Stop: pool.flush})

	fmt.Println("running; press Ctrl+C to stop")
	pool.run()

	m.Wait()
	fmt.Printf("done, exit code %d\n", m.ExitCode())
}

type pool struct {
	jobs    chan int
	results chan int
	workers int
}

func newPool(workers int) *pool {
	return &pool{
		jobs:    make(chan int, 64),
		results: make(chan int, 64),
		workers: workers,
	}
}

func (p *pool) run() {
	for w := 0; w < p.workers; w++ {
		go func() {
			for j := range p.jobs {
				time.Sleep(50 * time.Millisecond)
				p.results <- j * j
			}
		}()
	}

	go func() {
		for i := 0; ; i++ {
			p.jobs <- i
			time.Sleep(200 * time.Millisecond)
		}
	}()
}

func (p *pool) closeIntake(time.Duration) error {
	fmt.Println("intake closed")
	return nil
}

func (p *pool) drain(grace time.Duration) error {
	deadline := time.After(grace)
	for {
		select {
		case <-p.jobs:
		case <-deadline:
			return fmt.Errorf("drain incomplete: %d jobs left", len(p.jobs))
		default:
			fmt.Println("workers drained")
			return nil
		}
	}
}

func (p *pool) flush(time.Duration) error {
	fmt.Printf("flushed %d pending results\n", len(p.results))
	return nil
}

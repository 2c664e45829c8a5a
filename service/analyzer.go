package service

import (
	"bufio"
	"context"
	"fmt"
	"golang.org/x/sync/errgroup"
	"io"
	"runtime"
	"tempnet/builder"
	"tempnet/logs"
	"time"
)

type NodePreference struct {
	Node  string
	Value float64
}

// Analyzer computes betweenness preference for all nodes in parallel
type Analyzer struct {
	Workers int // <= 0 means runtime.NumCPU()

	preference func(*builder.Extraction, string) float64
}

func (a Analyzer) compute(x *builder.Extraction, v string) NodePreference {
	f := a.preference
	if f == nil {
		f = BetweennessPreference
	}
	return NodePreference{Node: v, Value: f(x, v)}
}

func (a Analyzer) workers() int {
	if a.Workers > 0 {
		return a.Workers
	}
	return runtime.NumCPU()
}

// Candidates returns the nodes with at least one predecessor and one successor
// in the aggregate network
func Candidates(x *builder.Extraction) []string {
	var nodes []string
	for _, v := range x.FirstOrder.Vertices() {
		if x.FirstOrder.InDegree(v) > 0 && x.FirstOrder.OutDegree(v) > 0 {
			nodes = append(nodes, v)
		}
	}
	return nodes
}

// stream fans the candidates out to a bounded pool of workers. Results are
// handed to emit from a single goroutine in completion order. The first emit
// error cancels the pool and is returned.
func (a Analyzer) stream(ctx context.Context, x *builder.Extraction, emit func(NodePreference) error) error {
	workers := a.workers()
	poolCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	results := make(chan NodePreference, workers)
	emitted := make(chan error, 1)
	go func() {
		var err error
		for r := range results {
			if err != nil {
				continue
			}
			if err = emit(r); err != nil {
				cancel(err)
			}
		}
		emitted <- err
	}()

	g, gctx := errgroup.WithContext(poolCtx)
	g.SetLimit(workers)
	for _, v := range Candidates(x) {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case results <- a.compute(x, v):
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	err := g.Wait()
	close(results)
	if emitErr := <-emitted; emitErr != nil {
		return emitErr
	}
	if err == nil {
		err = ctx.Err()
	}
	return err
}

// Distribution returns the betweenness preference of every candidate node, unordered
func (a Analyzer) Distribution(ctx context.Context, x *builder.Extraction) ([]NodePreference, error) {
	var dist []NodePreference
	err := a.stream(ctx, x, func(r NodePreference) error {
		dist = append(dist, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dist, nil
}

// WriteDistribution writes one "node value" line per candidate node
func (a Analyzer) WriteDistribution(ctx context.Context, x *builder.Extraction, w io.Writer) error {
	startTime := time.Now()
	bw := bufio.NewWriter(w)
	count := 0
	err := a.stream(ctx, x, func(r NodePreference) error {
		count++
		_, err := fmt.Fprintf(bw, "%s %.6f\n", r.Node, r.Value)
		return err
	})
	if err != nil {
		return err
	}
	logs.Logger.Infof("betweenness preference of %d nodes computed with %d workers in %v", count, a.workers(), time.Since(startTime))
	return bw.Flush()
}

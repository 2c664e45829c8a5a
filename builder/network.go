package builder

import (
	"fmt"
	"tempnet/logs"
	"tempnet/models"
)

// Network owns a temporal edge log and the state extracted from it.
// The cache is rebuilt lazily whenever the log version moves.
type Network struct {
	log           *models.TemporalEdgeLog
	opts          Options
	cache         *Extraction
	cachedVersion uint64
}

func NewNetwork(log *models.TemporalEdgeLog, opts Options) *Network {
	if log == nil {
		log = models.NewTemporalEdgeLog()
	}
	return &Network{log: log, opts: opts}
}

// Log returns the underlying log. Mutating it directly marks the network stale.
func (n *Network) Log() *models.TemporalEdgeLog {
	return n.log
}

func (n *Network) Options() Options {
	return n.opts
}

func (n *Network) Append(t int, source, target string) {
	n.log.Append(t, source, target)
}

// Stale reports whether the next Extraction call recomputes
func (n *Network) Stale() bool {
	return n.cache == nil || n.cachedVersion != n.log.Version()
}

// Extraction returns the derived state, recomputing it if the log changed.
// Pruning rewrites the log, so the cached version is taken afterwards.
func (n *Network) Extraction() *Extraction {
	if n.Stale() {
		n.cache = Extract(n.log, n.opts)
		n.cachedVersion = n.log.Version()
	}
	return n.cache
}

// AggregateTime rebuckets the log into windows of the given width and
// re-extracts immediately
func (n *Network) AggregateTime(window int) error {
	if err := n.log.Rebucket(window); err != nil {
		return fmt.Errorf("aggregate time: %w", err)
	}
	x := n.Extraction()
	logs.Logger.Infof("aggregated with window %d: %d steps, %d two-paths", window, x.Steps, x.TwoPathCount())
	return nil
}

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Each metrics file enqueues its collectors from init(); nothing touches the
// default registry until MustRegister runs.
var pending struct {
	sync.Once
	collectors []prometheus.Collector
}

func register(cs ...prometheus.Collector) {
	pending.collectors = append(pending.collectors, cs...)
}

// MustRegister installs every enqueued collector into the default Prometheus
// registry. Only the first call has any effect.
func MustRegister() {
	pending.Do(func() {
		prometheus.MustRegister(pending.collectors...)
	})
}

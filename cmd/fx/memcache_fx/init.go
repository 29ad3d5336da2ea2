package memcache_fx

import (
	"time"

	"go.uber.org/fx"

	mem "github.com/davidsodrelins/comunyCAR/pkg/memcache"
)

var Module = fx.Provide(provideCounters)

func provideCounters() mem.CounterStore {
	return mem.NewCounters(5 * time.Minute)
}

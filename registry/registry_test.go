package registry

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOrderIsMonotonic(t *testing.T) {
	r := New(nil)

	assert.Equal(t, uint64(0), r.NextOrder())
	assert.Equal(t, uint64(1), r.NextOrder())
	assert.Equal(t, uint64(2), r.Peek())
	assert.Equal(t, uint64(2), r.NextOrder())
}

func TestNextOrderConcurrentTokensAreUnique(t *testing.T) {
	r := New(nil)

	const workers = 8
	const perWorker = 500

	var mu sync.Mutex
	seen := make(map[uint64]bool, workers*perWorker)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]uint64, 0, perWorker)
			for range perWorker {
				local = append(local, r.NextOrder())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, tok := range local {
				seen[tok] = true
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, uint64(workers*perWorker), r.Peek())
}

func TestMetrics(t *testing.T) {
	r := New(nil)

	r.NextOrder()
	r.NextOrder()
	r.ContainerDefined("FOO", 2)
	r.DefinitionFailed("constant_already_bound")
	r.DefinitionFailed("constant_already_bound")

	assert.Equal(t, float64(2), testutil.ToFloat64(r.constantsCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.containersDefined))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.definitionFailures.WithLabelValues("constant_already_bound")))
}

func TestRegister(t *testing.T) {
	r := New(nil)
	reg := prometheus.NewRegistry()

	require.NoError(t, r.Register(reg))
	// Same collectors twice must be rejected by prometheus.
	assert.Error(t, r.Register(reg))
}

func TestGlobalIsStable(t *testing.T) {
	g := Global()
	require.NotNil(t, g)
	assert.Same(t, g, Global())
	assert.False(t, InitGlobal(New(nil)), "global already initialized")
}

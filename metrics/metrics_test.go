// Copyright (c) 2026 The Vela developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopDefault(t *testing.T) {
	// the default service swallows everything without side effects
	assert.Nil(t, HTTPHandler())
	Counter("noop_counter").Add(1)
	CounterVec("noop_counter_vec", []string{"outcome"}).AddWithLabel(1, map[string]string{"outcome": "ok"})
	Histogram("noop_histogram", Bucket10s).Observe(100)
}

func TestLazyLoadInstantiatesOnce(t *testing.T) {
	calls := 0
	loader := LazyLoad(func() int {
		calls++
		return calls
	})
	assert.Equal(t, 1, loader())
	assert.Equal(t, 1, loader())
	assert.Equal(t, 1, calls)
}

func TestInitializePrometheusMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	assert.NotNil(t, HTTPHandler())

	c := Counter("test_counter")
	assert.NotNil(t, c)
	c.Add(1)

	// repeated lookups return the same meter
	assert.Equal(t, c, Counter("test_counter"))

	// re-initialization keeps the existing service
	InitializePrometheusMetrics()
	assert.NotNil(t, HTTPHandler())
}

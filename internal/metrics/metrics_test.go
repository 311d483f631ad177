package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/lazypower/lifeclock/internal/longevity"
)

func TestObserveEntry(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveEntry(longevity.KindFood, 2.25, longevity.State{CurrentLifeExpectancy: 78.6, TotalLifeExtension: 2.25})
	m.ObserveEntry(longevity.KindFood, -1.25, longevity.State{CurrentLifeExpectancy: 78.5, TotalLifeExtension: 1.0})
	m.ObserveEntry(longevity.KindSleep, 2.0, longevity.State{CurrentLifeExpectancy: 78.7, TotalLifeExtension: 3.0})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EntriesLogged.WithLabelValues("food")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntriesLogged.WithLabelValues("sleep")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.EntriesLogged.WithLabelValues("exercise")))
	assert.Equal(t, 78.7, testutil.ToFloat64(m.LifeExpectancy))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.LifeExtension))
}

func TestObserveRejected(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRejected(longevity.KindSleep)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectedInputs.WithLabelValues("sleep")))
}

func TestRegisterTwicePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

package longevity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	c := Remaining(78.5, 30)
	assert.Equal(t, 48, c.Years)
	assert.Equal(t, 5, c.Months)
	assert.Equal(t, 28, c.Days)
	assert.Equal(t, 15, c.Hours)
	assert.Equal(t, 0, c.Minutes)
	assert.InDelta(t, 48.5*365.25*86400, c.TotalSeconds, 1e-3)
}

func TestRemainingExhausted(t *testing.T) {
	assert.Equal(t, Countdown{}, Remaining(78.5, 78.5))
	assert.Equal(t, Countdown{}, Remaining(70, 90))
}

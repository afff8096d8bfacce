package drift

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDDM_WarmUp(t *testing.T) {
	d := NewDDM(WithMinNumInstances(10))
	for i := 0; i < 9; i++ {
		assert.Equal(t, Result{}, d.Update(false))
	}
	assert.Equal(t, 9, d.Statistics().NumErrors)
}

func TestDDM_DetectsRisingErrorRate(t *testing.T) {
	d := NewDDM()

	// 安定期: 誤り率10%
	for i := 0; i < 1000; i++ {
		r := d.Update(i%10 != 0)
		assert.False(t, r.DriftDetected, "stable phase at %d", i)
	}
	assert.InDelta(t, 0.1, d.Statistics().MinErrorRate, 0.05)

	var warned, drifted bool
	for i := 0; i < 500 && !drifted; i++ {
		r := d.Update(i%2 == 0)
		warned = warned || r.WarningDetected
		drifted = r.DriftDetected
	}
	assert.True(t, warned)
	assert.True(t, drifted)

	// statistics start over after a drift
	assert.Equal(t, 0, d.Statistics().NumInstances)
}

func TestDDM_Reset(t *testing.T) {
	d := NewDDM(WithWarningLevel(1), WithOutControlLevel(2))
	for i := 0; i < 50; i++ {
		d.Update(i%3 == 0)
	}
	d.Reset()
	s := d.Statistics()
	assert.Equal(t, 0, s.NumInstances)
	assert.Equal(t, 0, s.NumErrors)
	assert.True(t, math.IsInf(s.MinErrorRate, 1))
}

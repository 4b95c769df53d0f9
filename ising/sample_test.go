package ising_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvane/loopybp/ising"
)

func TestSample_CertainUpMarginalAlwaysReturnsSpinUp(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := [2]float64{0, 1}
	for i := 0; i < 100; i++ {
		assert.Equal(t, ising.SpinUp, ising.Sample(p, rng))
	}
}

func TestSample_CertainDownMarginalAlwaysReturnsSpinDown(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := [2]float64{1, 0}
	for i := 0; i < 100; i++ {
		assert.Equal(t, ising.SpinDown, ising.Sample(p, rng))
	}
}

func TestSample_FairMarginalProducesBothStates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := [2]float64{0.5, 0.5}
	seenUp, seenDown := false, false
	for i := 0; i < 200; i++ {
		switch ising.Sample(p, rng) {
		case ising.SpinUp:
			seenUp = true
		case ising.SpinDown:
			seenDown = true
		}
	}
	assert.True(t, seenUp)
	assert.True(t, seenDown)
}

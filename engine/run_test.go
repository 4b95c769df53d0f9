package engine_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvane/loopybp/builder"
	"github.com/corvane/loopybp/core"
	"github.com/corvane/loopybp/engine"
	"github.com/corvane/loopybp/ising"
)

func TestRun_IsolatedVariableConvergesImmediately(t *testing.T) {
	g, err := builder.BuildGraph(1, ising.SumProduct{}, nil)
	require.NoError(t, err)

	e := engine.New(g)
	info, err := e.Run(10, 0, 1e-9, engine.NoDamping(), engine.NoDamping())
	require.NoError(t, err)
	assert.True(t, info.Converged)
	assert.Equal(t, engine.Converged, e.State())

	marginals, err := e.VariableMarginals()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, marginals[0][0], 1e-12)
	assert.InDelta(t, 0.5, marginals[0][1], 1e-12)
}

func TestRun_IsolatedVariableWithFieldConvergesToSigmoid(t *testing.T) {
	// Variable 0 carries a local field of 0.5 via a zero-coupling factor to
	// a dummy variable 1; with coupling=0, the factor-to-variable message
	// into 0 is exactly field1 regardless of variable 1's state, so after
	// one sweep variable 0's marginal is sigmoid(2*0.5), sigmoid(-2*0.5).
	g, err := builder.BuildGraph(2, ising.SumProduct{}, []builder.Constructor{
		builder.Chain(2, 0, 0.5, 0),
	})
	require.NoError(t, err)

	e := engine.New(g)
	info, err := e.Run(5, 0, 1e-12, engine.NoDamping(), engine.NoDamping())
	require.NoError(t, err)
	assert.True(t, info.Converged)

	marginals, err := e.VariableMarginals()
	require.NoError(t, err)
	const want = 0.7310585786300049 // sigmoid(1.0)
	assert.InDelta(t, want, marginals[0][1], 1e-9)
	assert.InDelta(t, 1-want, marginals[0][0], 1e-9)
}

func TestRun_TwoVariableFactorConvergesInOneSweep(t *testing.T) {
	g, err := builder.BuildGraph(2, ising.SumProduct{}, []builder.Constructor{
		builder.Chain(2, 1.2, 0.3, -0.1),
	})
	require.NoError(t, err)

	e := engine.New(g)
	info, err := e.Run(5, 0, 1e-12, engine.NoDamping(), engine.NoDamping())
	require.NoError(t, err)
	assert.True(t, info.Converged)
	assert.LessOrEqual(t, info.Iterations, 2)
}

func TestRun_TwoVariableUnbiasedFactorMatchesClosedFormMarginals(t *testing.T) {
	// J=1, no local fields: by symmetry every message stays at 0 from the
	// first sweep onward, so both variable marginals are exactly uniform
	// and the factor marginal is the normalized raw factor table itself:
	// p(+,+) = p(-,-) = e/(2e+2/e), p(+,-) = p(-,+) = (1/e)/(2e+2/e).
	g, err := builder.BuildGraph(2, ising.SumProduct{}, []builder.Constructor{
		builder.Chain(2, 1, 0, 0),
	})
	require.NoError(t, err)

	e := engine.New(g)
	info, err := e.Run(5, 0, 1e-12, engine.NoDamping(), engine.NoDamping())
	require.NoError(t, err)
	assert.True(t, info.Converged)

	variableMarginals, err := e.VariableMarginals()
	require.NoError(t, err)
	for j := 0; j < 2; j++ {
		assert.InDelta(t, 0.5, variableMarginals[j][0], 1e-12)
		assert.InDelta(t, 0.5, variableMarginals[j][1], 1e-12)
	}

	factorMarginals, err := e.FactorMarginals()
	require.NoError(t, err)
	denom := 2*math.E + 2/math.E
	wantSame := math.E / denom
	wantDiff := (1 / math.E) / denom
	fm := factorMarginals[0]
	assert.InDelta(t, wantSame, fm[0][0], 1e-9) // (-1,-1)
	assert.InDelta(t, wantDiff, fm[0][1], 1e-9) // (-1,+1)
	assert.InDelta(t, wantDiff, fm[1][0], 1e-9) // (+1,-1)
	assert.InDelta(t, wantSame, fm[1][1], 1e-9) // (+1,+1)
}

func TestRun_ThreeVariableChainMatchesBruteForceMarginals(t *testing.T) {
	coupling, field1, field2 := 0.7, 0.2, -0.3
	g, err := builder.BuildGraph(3, ising.SumProduct{}, []builder.Constructor{
		builder.Chain(3, coupling, field1, field2),
	})
	require.NoError(t, err)

	diameter := builder.Diameter(g)
	require.Equal(t, 2, diameter)

	e := engine.New(g)
	info, err := e.Run(diameter+2, 0, 1e-10, engine.NoDamping(), engine.NoDamping())
	require.NoError(t, err)
	require.True(t, info.Converged)

	got, err := e.VariableMarginals()
	require.NoError(t, err)

	want := bruteForceChainMarginals(coupling, field1, field2)
	for j := 0; j < 3; j++ {
		assert.InDelta(t, want[j][0], got[j][0], 1e-6)
		assert.InDelta(t, want[j][1], got[j][1], 1e-6)
	}
}

// bruteForceChainMarginals enumerates all 8 configurations of a 3-variable
// chain 0-1-2 with factors (0,1) and (1,2), both sharing coupling and using
// field1 on the chain's first endpoint and field2 on its second endpoint
// of each factor (matching builder.Chain's per-edge field assignment), and
// returns each variable's exact {p(-1), p(+1)} marginal.
func bruteForceChainMarginals(coupling, field1, field2 float64) [3][2]float64 {
	spins := [2]float64{-1, 1}
	var z float64
	var sum [3][2]float64 // sum[j][si] accumulates weight where variable j = spins[si]

	for _, s0 := range spins {
		for _, s1 := range spins {
			for _, s2 := range spins {
				w := math.Exp(coupling*s0*s1+field1*s0+field2*s1) *
					math.Exp(coupling*s1*s2+field1*s1+field2*s2)
				z += w
				i0, i1, i2 := index(s0), index(s1), index(s2)
				sum[0][i0] += w
				sum[1][i1] += w
				sum[2][i2] += w
			}
		}
	}
	var out [3][2]float64
	for j := 0; j < 3; j++ {
		out[j][0] = sum[j][0] / z
		out[j][1] = sum[j][1] / z
	}
	return out
}

func index(s float64) int {
	if s < 0 {
		return 0
	}
	return 1
}

func TestRun_FourVariableRingConverges(t *testing.T) {
	g, err := builder.BuildGraph(4, ising.SumProduct{}, []builder.Constructor{
		builder.Ring(4, 0.4, 0.1, -0.05),
	})
	require.NoError(t, err)

	e := engine.New(g)
	info, err := e.Run(200, 0, 1e-9, engine.ConstantSchedule(0.1), engine.ConstantSchedule(0.1))
	require.NoError(t, err)
	assert.True(t, info.Converged)
	assert.LessOrEqual(t, info.FinalDistance, 1e-9)
}

func TestRun_InvalidMaxIter(t *testing.T) {
	g, err := builder.BuildGraph(1, ising.SumProduct{}, nil)
	require.NoError(t, err)
	e := engine.New(g)
	_, err = e.Run(-1, 0, 0, engine.NoDamping(), engine.NoDamping())
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidMaxIter))
}

func TestRun_InvalidMinIter(t *testing.T) {
	g, err := builder.BuildGraph(1, ising.SumProduct{}, nil)
	require.NoError(t, err)
	e := engine.New(g)
	_, err = e.Run(3, 4, 0, engine.NoDamping(), engine.NoDamping())
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidMinIter))
}

func TestRun_InvalidTol(t *testing.T) {
	g, err := builder.BuildGraph(1, ising.SumProduct{}, nil)
	require.NoError(t, err)
	e := engine.New(g)
	_, err = e.Run(3, 0, -0.1, engine.NoDamping(), engine.NoDamping())
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidTol))
}

func TestRun_InvalidScheduleIsRaisedBeforeMutatingState(t *testing.T) {
	g, err := builder.BuildGraph(2, ising.SumProduct{}, []builder.Constructor{
		builder.Chain(2, 0.5, 0, 0),
	})
	require.NoError(t, err)
	e := engine.New(g)

	badSchedule := func(i int) float64 { return 1.5 }
	_, err = e.Run(3, 0, 0, badSchedule, engine.NoDamping())
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidSchedule))
	// The engine must remain Ready: no iteration was ever attempted.
	assert.Equal(t, engine.Ready, e.State())
}

func TestRun_RejectsUnbuiltGraph(t *testing.T) {
	g := core.NewGraph(2, ising.SumProduct{}, 0)
	_, err := g.AddFactor(0.5, 0, 0, 0, 1, func() float64 { return 0 })
	require.NoError(t, err)
	// g.Build() is deliberately never called.

	e := engine.New(g)
	_, err = e.Run(1, 0, 0, engine.NoDamping(), engine.NoDamping())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotBuilt))
	assert.Equal(t, engine.Ready, e.State())
}

func TestRun_CannotRunTwice(t *testing.T) {
	g, err := builder.BuildGraph(1, ising.SumProduct{}, nil)
	require.NoError(t, err)
	e := engine.New(g)
	_, err = e.Run(1, 0, 0, engine.NoDamping(), engine.NoDamping())
	require.NoError(t, err)

	_, err = e.Run(1, 0, 0, engine.NoDamping(), engine.NoDamping())
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrNotReady))
}

func TestRun_ExhaustsWhenTolNeverReached(t *testing.T) {
	// minIter == maxIter == 5: the convergence test needs an iteration
	// index of at least 5, which the 5 iterations (indices 0..4) never
	// reach. Nonzero, asymmetric fields also keep the ring off the trivial
	// all-zero fixed point, so the distance stays above 1e-12 throughout.
	g, err := builder.BuildGraph(4, ising.SumProduct{}, []builder.Constructor{
		builder.Ring(4, 0.9, 0.4, -0.3),
	})
	require.NoError(t, err)
	e := engine.New(g)
	info, err := e.Run(5, 5, 1e-12, engine.NoDamping(), engine.NoDamping())
	require.NoError(t, err)
	assert.False(t, info.Converged)
	assert.Equal(t, engine.Exhausted, e.State())
	assert.Equal(t, 5, info.Iterations)
}

func TestRun_HistoryOptionRecordsOnePerIteration(t *testing.T) {
	g, err := builder.BuildGraph(3, ising.SumProduct{}, []builder.Constructor{
		builder.Chain(3, 0.5, 0, 0),
	})
	require.NoError(t, err)
	e := engine.New(g)
	info, err := e.Run(4, 4, 1e-12, engine.NoDamping(), engine.NoDamping(), engine.WithHistory())
	require.NoError(t, err)
	assert.Len(t, info.History, info.Iterations)
}

func TestMarginals_UnavailableBeforeRun(t *testing.T) {
	g, err := builder.BuildGraph(1, ising.SumProduct{}, nil)
	require.NoError(t, err)
	e := engine.New(g)
	_, err = e.VariableMarginals()
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrMarginalsUnavailable))
}

func TestRun_NonFiniteMessageFailsTheEngine(t *testing.T) {
	// tanh() saturates to exactly 1.0 well before its argument reaches
	// infinity in float64, so a large coupling and a large biased opposite
	// message drive sum-product's atanh(1.0) to +Inf on the first sweep.
	g, err := builder.BuildGraph(2, ising.SumProduct{}, []builder.Constructor{
		builder.Chain(2, 100, 0, 100),
	})
	require.NoError(t, err)
	e := engine.New(g)

	_, err = e.Run(1, 0, 0, engine.NoDamping(), engine.NoDamping())
	require.Error(t, err)
	var numErr *engine.NumericalError
	require.True(t, errors.As(err, &numErr))
	assert.Equal(t, engine.Failed, e.State())

	_, err = e.VariableMarginals()
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrMarginalsUnavailable))
}

package problem

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays a fixed sequence of draws, cycling when exhausted.
type scripted struct {
	vals []int
	i    int
}

func (s *scripted) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func newSeeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestGenerateOperandRange(t *testing.T) {
	g := NewGenerator(newSeeded(1))
	for i := 0; i < 1000; i++ {
		p := g.Generate()
		assert.GreaterOrEqual(t, p.A, 1)
		assert.LessOrEqual(t, p.A, 9)
		assert.GreaterOrEqual(t, p.B, 1)
		assert.LessOrEqual(t, p.B, 9)
	}
}

func TestGenerateDivisionDividesEvenly(t *testing.T) {
	g := NewGenerator(newSeeded(2))
	seen := 0
	for i := 0; i < 2000; i++ {
		p := g.Generate()
		if p.Op != OpDiv {
			continue
		}
		seen++
		require.NotZero(t, p.B)
		assert.Zero(t, p.A%p.B, "%s should divide evenly", p.Text())
		assert.Equal(t, p.A/p.B, p.Answer)
	}
	assert.Greater(t, seen, 0, "expected some division problems")
}

func TestGenerateSubtractionNeverNegative(t *testing.T) {
	g := NewGenerator(newSeeded(3))
	for i := 0; i < 2000; i++ {
		p := g.Generate()
		if p.Op == OpSub {
			assert.GreaterOrEqual(t, p.A, p.B)
			assert.GreaterOrEqual(t, p.Answer, 0)
		}
	}
}

func TestGenerateRejectsUnevenDivision(t *testing.T) {
	// First trial draws 2 ÷ 3 (uneven, rejected); second draws 6 ÷ 3.
	src := &scripted{vals: []int{1, 2, 3, 5, 2, 3}}
	p := NewGenerator(src).Generate()
	assert.Equal(t, OpDiv, p.Op)
	assert.Equal(t, 6, p.A)
	assert.Equal(t, 3, p.B)
	assert.Equal(t, 2, p.Answer)
}

func TestGenerateSwapsSubtractionOperands(t *testing.T) {
	// Draws 2 - 5, which must be corrected to 5 - 2, not rejected.
	src := &scripted{vals: []int{1, 4, 1}}
	p := NewGenerator(src).Generate()
	assert.Equal(t, OpSub, p.Op)
	assert.Equal(t, 5, p.A)
	assert.Equal(t, 2, p.B)
	assert.Equal(t, 3, p.Answer)
}

func TestGenerateDeterministicWithSameSource(t *testing.T) {
	g1 := NewGenerator(newSeeded(42))
	g2 := NewGenerator(newSeeded(42))
	for i := 0; i < 100; i++ {
		assert.Equal(t, g1.Generate(), g2.Generate())
	}
}

// internal/problem/generator.go
//
// Problem generation by rejection sampling.
//
// Operands are drawn uniformly from [1,9] and the operation uniformly from
// the four defined ops. Division candidates that do not divide evenly are
// rejected and redrawn; subtraction candidates are corrected (operands
// swapped) so results are never negative. The per-trial rejection rate is
// low enough that the unbounded retry loop settles immediately at
// human-visible scale.

package problem

import (
	"math/rand"
	"time"
)

const (
	operandMin = 1
	operandMax = 9
)

// Source supplies uniform random integers. *math/rand.Rand satisfies it;
// tests inject a scripted source for determinism.
type Source interface {
	Intn(n int) int
}

// Generator produces Problems from a random source.
type Generator struct {
	src Source
}

// NewGenerator constructs a Generator. A nil source falls back to a
// time-seeded math/rand source.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{src: src}
}

// Generate returns a new Problem satisfying the domain invariants:
// division answers are whole, subtraction answers are non-negative.
func (g *Generator) Generate() Problem {
	span := operandMax - operandMin + 1
	for {
		a := operandMin + g.src.Intn(span)
		b := operandMin + g.src.Intn(span)
		op := Op(g.src.Intn(NumOps))

		if op == OpDiv && a%b != 0 {
			continue
		}
		if op == OpSub && a < b {
			a, b = b, a
		}
		return New(a, b, op)
	}
}

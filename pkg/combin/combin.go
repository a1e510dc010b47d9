// Package combin provides a lexicographic "n choose k" subset walker.
//
// The walker is an explicit cursor: Next advances, Current exposes the
// combination. By default every step yields a freshly allocated slice;
// callers that care about allocation supply a reusable buffer and must
// consume Current before advancing again.
package combin

import (
	"github.com/set-challenge/pkg/errors"
)

// Generator walks all size-k subsets of a source slice in lexicographic
// order of index positions.
type Generator[T any] struct {
	src     []T
	k       int
	idx     []int
	buf     []T
	shared  bool // buf is caller-owned and refilled in place
	started bool
	done    bool
}

// NewGenerator creates a walker that allocates a fresh result slice on
// every step.
func NewGenerator[T any](src []T, k int) (*Generator[T], error) {
	return newGenerator(src, k, nil, false)
}

// NewGeneratorWithBuffer creates a walker that fills the supplied
// buffer on every step. The buffer length must equal k.
func NewGeneratorWithBuffer[T any](src []T, k int, buf []T) (*Generator[T], error) {
	if len(buf) != k {
		return nil, errors.Newf(errors.CodeInvalidArgument, "buffer length %d does not match k=%d", len(buf), k)
	}
	return newGenerator(src, k, buf, true)
}

func newGenerator[T any](src []T, k int, buf []T, shared bool) (*Generator[T], error) {
	if src == nil {
		return nil, errors.New(errors.CodeInvalidArgument, "nil combination source")
	}
	if k < 0 {
		return nil, errors.Newf(errors.CodeInvalidArgument, "negative subset size %d", k)
	}
	if k > len(src) {
		return nil, errors.Newf(errors.CodeInvalidArgument, "subset size %d exceeds source length %d", k, len(src))
	}
	return &Generator[T]{src: src, k: k, idx: make([]int, k), buf: buf, shared: shared}, nil
}

// Next advances to the next combination. It returns false once the walk
// is exhausted; Current is only valid after a true return. A size-zero
// walk yields exactly one (empty) combination.
func (g *Generator[T]) Next() bool {
	if g.done {
		return false
	}
	if !g.started {
		g.started = true
		for i := range g.idx {
			g.idx[i] = i
		}
		g.fill()
		return true
	}
	n := len(g.src)
	// Rightmost position that can still advance.
	i := g.k - 1
	for i >= 0 && g.idx[i] == n-g.k+i {
		i--
	}
	if i < 0 {
		g.done = true
		return false
	}
	g.idx[i]++
	for j := i + 1; j < g.k; j++ {
		g.idx[j] = g.idx[j-1] + 1
	}
	g.fill()
	return true
}

// Current returns the combination produced by the last successful Next.
// In buffered mode the same slice is returned every step.
func (g *Generator[T]) Current() []T {
	return g.buf
}

func (g *Generator[T]) fill() {
	if !g.shared {
		g.buf = make([]T, g.k)
	}
	for i, p := range g.idx {
		g.buf[i] = g.src[p]
	}
}

// Count returns the binomial coefficient C(n, k), the number of
// combinations a walk over n elements produces. Returns 0 for k < 0 or
// k > n.
func Count(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := int64(1)
	for i := 1; i <= k; i++ {
		result = result * int64(n-k+i) / int64(i)
	}
	return result
}

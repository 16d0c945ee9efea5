// Package ring provides Sequence, an ordered, randomly indexable list stored in a
// wrap-around buffer. Both ends take insertion and removal in amortized O(1), and interior
// insertion or removal only moves the elements between the index and the nearer end.
//
// A Sequence is not safe for concurrent use. Callers that share one between goroutines must
// hold their own lock around every group of calls that has to be seen as one unit, or keep the
// Sequence owned by a single goroutine. The modification check done by Iterator and Cursor is a
// same-goroutine safety net against mutating a Sequence while walking it; it is advisory and
// does not detect data races.
package ring

import (
	"fmt"
	"math"
)

const (
	MinCapacity         = 10
	DefaultGrowthFactor = 1.2
)

// The zero Sequence is empty and ready to use.
type Sequence[T any] struct {
	items  []T
	head   int // physical index of logical 0
	tail   int // physical index one past the last element, equals head when empty or full
	size   int
	growth float64
	mods   uint64
}

// New creates a Sequence holding at least capacity elements before it has to grow.
func New[T any](capacity int) *Sequence[T] {
	return NewWithGrowth[T](capacity, DefaultGrowthFactor)
}

// NewWithGrowth creates a Sequence whose buffer is multiplied by growthFactor when it runs out of room.
// A capacity below MinCapacity or a growthFactor below DefaultGrowthFactor is raised to that floor
// without complaint, the same as passing the floor itself.
func NewWithGrowth[T any](capacity int, growthFactor float64) *Sequence[T] {
	if !(growthFactor >= DefaultGrowthFactor) || math.IsInf(growthFactor, 1) {
		growthFactor = DefaultGrowthFactor
	}
	return &Sequence[T]{
		items:  make([]T, max(capacity, MinCapacity)),
		growth: growthFactor,
	}
}

// Of creates a Sequence holding values in order.
func Of[T any](values ...T) *Sequence[T] {
	ret := New[T](len(values))
	ret.AppendAll(values...)
	return ret
}

func (s *Sequence[T]) Len() int {
	return s.size
}

func (s *Sequence[T]) Cap() int {
	return len(s.items)
}

func (s *Sequence[T]) IsEmpty() bool {
	return s.size == 0
}

func (s *Sequence[T]) IsFull() bool {
	return s.size == len(s.items)
}

// GrowthFactor returns the factor the buffer grows by. The zero Sequence grows by DefaultGrowthFactor.
func (s *Sequence[T]) GrowthFactor() float64 {
	if s.growth < DefaultGrowthFactor {
		return DefaultGrowthFactor
	}
	return s.growth
}

func (s *Sequence[T]) normalize(i int) int {
	if i < 0 {
		return i + s.size
	}
	return i
}

func (s *Sequence[T]) translate(i int) int {
	return (s.head + i) % len(s.items)
}

// wrap maps any integer, negative included, onto a physical index.
func (s *Sequence[T]) wrap(x int) int {
	c := len(s.items)
	return (x%c + c) % c
}

func (s *Sequence[T]) forward(x int) int {
	x++
	if x == len(s.items) {
		return 0
	}
	return x
}

func (s *Sequence[T]) backward(x int) int {
	if x == 0 {
		x = len(s.items)
	}
	return x - 1
}

// convert normalizes and range checks the caller supplied index i, then returns its physical slot.
func (s *Sequence[T]) convert(i int) (int, error) {
	at := s.normalize(i)
	if at < 0 || at >= s.size {
		return 0, &IndexError{Index: i, Size: s.size}
	}
	return s.translate(at), nil
}

func (s *Sequence[T]) ensureCapacity(required int) {
	if required <= len(s.items) {
		return
	}
	s.resize(s.grownCapacity(required))
}

func (s *Sequence[T]) grownCapacity(required int) int {
	c := math.Ceil(float64(required) * s.GrowthFactor())
	if c >= float64(math.MaxInt) {
		return required
	}
	return max(MinCapacity, required, int(c))
}

// resize moves the live run to the start of a fresh buffer, undoing any wrap.
func (s *Sequence[T]) resize(capacity int) {
	items := make([]T, capacity)
	s.copyTo(items)
	s.items = items
	s.head = 0
	s.tail = s.size % capacity
	s.mods++
}

// Reserve grows the buffer to exactly capacity when it is smaller. Growing counts as a structural change.
func (s *Sequence[T]) Reserve(capacity int) {
	if capacity > len(s.items) {
		s.resize(capacity)
	}
}

// copyTo writes the live run into dst in logical order with at most two copies, and returns the count.
func (s *Sequence[T]) copyTo(dst []T) int {
	if s.size == 0 {
		return 0
	}
	end := s.head + s.size
	if end <= len(s.items) {
		return copy(dst, s.items[s.head:end])
	}
	n := copy(dst, s.items[s.head:])
	return n + copy(dst[n:], s.items[:end-len(s.items)])
}

// Snapshot returns a copy of the elements in logical order.
// Copying the two halves of a wrapped run with the builtin copy beats walking the indexes one by one,
// see BenchmarkSequence_Snapshot.
func (s *Sequence[T]) Snapshot() []T {
	ret := make([]T, s.size)
	s.copyTo(ret)
	return ret
}

// Get returns the element at i. A negative i counts back from the end, so Get(-1) is the last element.
func (s *Sequence[T]) Get(i int) (T, error) {
	x, err := s.convert(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.items[x], nil
}

// Set replaces the element at i and returns the one it held. Replacing is not a structural change,
// so live iterators stay valid. Setting at exactly Len() appends instead, which is structural and
// returns the zero value.
func (s *Sequence[T]) Set(i int, v T) (T, error) {
	var prev T
	if i == s.size {
		s.Append(v)
		return prev, nil
	}
	x, err := s.convert(i)
	if err != nil {
		return prev, err
	}
	prev, s.items[x] = s.items[x], v
	return prev, nil
}

func (s *Sequence[T]) PeekFront() (T, error) {
	if s.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return s.items[s.head], nil
}

func (s *Sequence[T]) PeekBack() (T, error) {
	if s.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return s.items[s.backward(s.tail)], nil
}

func (s *Sequence[T]) PopFront() (T, error) {
	if s.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return s.removeHead(), nil
}

func (s *Sequence[T]) PopBack() (T, error) {
	if s.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return s.removeTail(), nil
}

// Clear drops every element and keeps the allocated capacity.
func (s *Sequence[T]) Clear() {
	clear(s.items)
	s.head, s.tail, s.size = 0, 0, 0
	s.mods++
}

// Reverse reverses the order in place. It invalidates live iterators, as they would otherwise
// observe a half reversed sequence.
func (s *Sequence[T]) Reverse() {
	if s.size < 2 {
		return
	}
	for i, j := 0, s.size-1; i < j; i, j = i+1, j-1 {
		x, y := s.translate(i), s.translate(j)
		s.items[x], s.items[y] = s.items[y], s.items[x]
	}
	s.mods++
}

// Subrange returns an independent Sequence holding a copy of the elements in [from, to).
func (s *Sequence[T]) Subrange(from, to int) (*Sequence[T], error) {
	if from < 0 || from > s.size {
		return nil, &IndexError{Index: from, Size: s.size}
	}
	if to < 0 || to > s.size {
		return nil, &IndexError{Index: to, Size: s.size}
	}
	if from > to {
		return nil, fmt.Errorf("%w: subrange from %d is after to %d", ErrIllegalArgument, from, to)
	}
	n := to - from
	ret := NewWithGrowth[T](n, s.GrowthFactor())
	for i := 0; i < n; i++ {
		ret.items[i] = s.items[s.translate(from+i)]
	}
	ret.size = n
	ret.tail = n % len(ret.items)
	return ret, nil
}

func (s *Sequence[T]) String() string {
	return fmt.Sprint(s.Snapshot())
}

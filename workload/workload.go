// Package workload runs randomized operation mixes against a ring.Sequence, checking every step
// against a plain slice holding the same elements.
package workload

import (
	"context"
	"errors"
	"fmt"
	"github.com/dustin/go-humanize"
	"math/rand"
	"ringkit/ring"
	"ringkit/stopwatch"
	"slices"
	"strings"
	"time"
)

var ErrMismatch = errors.New("workload: sequence diverged from oracle")

// Mix holds the relative weight of every operation kind. An all-zero Mix weighs them equally.
type Mix struct {
	Append  int
	Prepend int
	Insert  int
	Remove  int
	Set     int
	Pop     int
	Reverse int
	Clear   int
}

func (m Mix) weights() []int {
	ret := []int{m.Append, m.Prepend, m.Insert, m.Remove, m.Set, m.Pop, m.Reverse, m.Clear}
	for _, w := range ret {
		if w != 0 {
			return ret
		}
	}
	return []int{1, 1, 1, 1, 1, 1, 1, 1}
}

var opNames = []string{"append", "prepend", "insert", "remove", "set", "pop", "reverse", "clear"}

type Workload struct {
	Name         string
	Capacity     int
	GrowthFactor float64 `yaml:"growthFactor"`
	Operations   int
	Seed         int64
	Mix          Mix
}

func (w Workload) validate() error {
	if w.Name == "" {
		return fmt.Errorf("workload without name")
	}
	if w.Operations < 0 {
		return fmt.Errorf("workload %s: negative operations %d", w.Name, w.Operations)
	}
	for i, weight := range []int{w.Mix.Append, w.Mix.Prepend, w.Mix.Insert, w.Mix.Remove,
		w.Mix.Set, w.Mix.Pop, w.Mix.Reverse, w.Mix.Clear} {
		if weight < 0 {
			return fmt.Errorf("workload %s: negative weight %d for %s", w.Name, weight, opNames[i])
		}
	}
	return nil
}

type Result struct {
	Name       string
	Operations int
	Counts     map[string]int
	Len        int
	Cap        int
	Elapsed    time.Duration
}

func (r Result) OpsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Operations) / r.Elapsed.Seconds()
}

func (r Result) String() string {
	var counts []string
	for _, name := range opNames {
		if n := r.Counts[name]; n > 0 {
			counts = append(counts, fmt.Sprintf("%s=%s", name, humanize.Comma(int64(n))))
		}
	}
	return fmt.Sprintf("%s: %s ops in %v (%s ops/s), len %s cap %s [%s]",
		r.Name,
		humanize.Comma(int64(r.Operations)),
		r.Elapsed,
		humanize.CommafWithDigits(r.OpsPerSecond(), 1),
		humanize.Comma(int64(r.Len)),
		humanize.Comma(int64(r.Cap)),
		strings.Join(counts, " "),
	)
}

// checkEvery is how many operations pass between full comparisons of sequence and oracle.
const checkEvery = 256

type runner struct {
	rng    *rand.Rand
	seq    *ring.Sequence[int]
	oracle []int
}

// Run executes w, returning ErrMismatch wrapped with details as soon as the sequence disagrees with the oracle.
func Run(ctx context.Context, w Workload) (Result, error) {
	if err := w.validate(); err != nil {
		return Result{}, err
	}
	growth := w.GrowthFactor
	if growth == 0 {
		growth = ring.DefaultGrowthFactor
	}
	r := runner{
		rng: rand.New(rand.NewSource(w.Seed)),
		seq: ring.NewWithGrowth[int](w.Capacity, growth),
	}
	weights := w.Mix.weights()
	total := 0
	for _, weight := range weights {
		total += weight
	}
	ret := Result{Name: w.Name, Counts: make(map[string]int)}

	watch := stopwatch.New()
	if err := watch.Start(0); err != nil {
		return Result{}, err
	}
	for n := 0; n < w.Operations; n++ {
		if n%checkEvery == 0 {
			if err := context.Cause(ctx); err != nil {
				return Result{}, fmt.Errorf("workload %s: %w", w.Name, err)
			}
			if err := r.check(); err != nil {
				return Result{}, fmt.Errorf("%w: workload %s after %d operations: %v", ErrMismatch, w.Name, n, err)
			}
		}
		op := pick(weights, r.rng.Intn(total))
		if err := r.apply(op); err != nil {
			return Result{}, fmt.Errorf("%w: workload %s operation %d (%s): %v", ErrMismatch, w.Name, n, opNames[op], err)
		}
		ret.Counts[opNames[op]]++
	}
	elapsed, err := watch.Stop()
	if err != nil {
		return Result{}, err
	}
	if err := r.check(); err != nil {
		return Result{}, fmt.Errorf("%w: workload %s at the end: %v", ErrMismatch, w.Name, err)
	}
	ret.Operations = w.Operations
	ret.Len = r.seq.Len()
	ret.Cap = r.seq.Cap()
	ret.Elapsed = elapsed
	return ret, nil
}

func pick(weights []int, x int) int {
	for i, weight := range weights {
		if x < weight {
			return i
		}
		x -= weight
	}
	return len(weights) - 1
}

func (r *runner) check() error {
	if r.seq.Len() > r.seq.Cap() {
		return fmt.Errorf("len %d over cap %d", r.seq.Len(), r.seq.Cap())
	}
	if got := r.seq.Snapshot(); !slices.Equal(got, r.oracle) {
		return fmt.Errorf("got %d elements, want %d", len(got), len(r.oracle))
	}
	return nil
}

func expect(got, want int, err error) error {
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("got %d, want %d", got, want)
	}
	return nil
}

func (r *runner) apply(op int) error {
	v := r.rng.Int()
	size := len(r.oracle)
	switch opNames[op] {
	case "append":
		r.seq.Append(v)
		r.oracle = append(r.oracle, v)
	case "prepend":
		r.seq.Prepend(v)
		r.oracle = slices.Insert(r.oracle, 0, v)
	case "insert":
		i := r.rng.Intn(size + 1)
		if err := r.seq.Insert(i, v); err != nil {
			return err
		}
		r.oracle = slices.Insert(r.oracle, i, v)
	case "remove":
		if size == 0 {
			if _, err := r.seq.RemoveAt(0); !errors.Is(err, ring.ErrOutOfRange) {
				return fmt.Errorf("remove on empty: %v", err)
			}
			return nil
		}
		i := r.rng.Intn(size)
		got, err := r.seq.RemoveAt(i)
		if err := expect(got, r.oracle[i], err); err != nil {
			return err
		}
		r.oracle = slices.Delete(r.oracle, i, i+1)
	case "set":
		if size == 0 {
			return nil
		}
		i := r.rng.Intn(size)
		got, err := r.seq.Set(i, v)
		if err := expect(got, r.oracle[i], err); err != nil {
			return err
		}
		r.oracle[i] = v
	case "pop":
		if size == 0 {
			if _, err := r.seq.PopFront(); !errors.Is(err, ring.ErrEmpty) {
				return fmt.Errorf("pop on empty: %v", err)
			}
			return nil
		}
		if v%2 == 0 {
			got, err := r.seq.PopFront()
			if err := expect(got, r.oracle[0], err); err != nil {
				return err
			}
			r.oracle = slices.Delete(r.oracle, 0, 1)
			return nil
		}
		got, err := r.seq.PopBack()
		if err := expect(got, r.oracle[size-1], err); err != nil {
			return err
		}
		r.oracle = r.oracle[:size-1]
	case "reverse":
		r.seq.Reverse()
		slices.Reverse(r.oracle)
	case "clear":
		r.seq.Clear()
		r.oracle = r.oracle[:0]
	}
	return nil
}

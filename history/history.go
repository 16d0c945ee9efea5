// Package history keeps the most recent lines of a stream for later queries.
//
// A Recorder's buffer is owned by the goroutine running Run, every read goes through it,
// so no lock is involved.
package history

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"ringkit/ring"
)

type Recorder struct {
	limit int
	buf   *ring.Sequence[string]
	tee   io.Writer
	query chan chan []string
	done  chan struct{}
}

type Option func(r *Recorder)

// WithTee also writes every recorded line, newline terminated, to w.
func WithTee(w io.Writer) Option {
	return func(r *Recorder) {
		r.tee = w
	}
}

// New returns a Recorder keeping at most limit lines, limit below 1 counting as 1.
func New(limit int, opts ...Option) *Recorder {
	limit = max(limit, 1)
	ret := &Recorder{
		limit: limit,
		buf:   ring.New[string](limit + 1),
		query: make(chan chan []string),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (r *Recorder) Limit() int {
	return r.limit
}

// Run records lines until lines is closed or ctx is done, answering Query meanwhile.
// It must be called once.
func (r *Recorder) Run(ctx context.Context, lines <-chan string) error {
	defer close(r.done)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			r.record(line)
		case resp := <-r.query:
			resp <- r.buf.Snapshot()
			// One-shot round trip.
			close(resp)
		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}
}

func (r *Recorder) record(line string) {
	r.buf.Append(line)
	for r.buf.Len() > r.limit {
		_, _ = r.buf.PopFront()
	}
	if r.tee == nil {
		return
	}
	if _, err := io.WriteString(r.tee, line+"\n"); err != nil {
		slog.Warn("history tee drop", "err", err, "line", line)
	}
}

// Query returns the recorded lines, oldest first. Once Run has returned it reports the final lines.
func (r *Recorder) Query(ctx context.Context) ([]string, error) {
	ch := make(chan []string, 1)
	select {
	case r.query <- ch:
	case <-r.done:
		return r.buf.Snapshot(), nil
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
	return <-ch, nil
}

// Lines scans src line by line into a channel, closed once src is exhausted or ctx is done.
// A non-empty prefix is put in front of every line.
func Lines(ctx context.Context, src io.Reader, prefix string) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(src)
		for scanner.Scan() {
			select {
			case ch <- prefix + scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			slog.Warn("history scan", "err", err)
		}
	}()
	return ch
}

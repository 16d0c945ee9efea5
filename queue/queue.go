// Package queue provides a FIFO queue backed by a singly linked list.
// Like ring.Sequence it is not safe for concurrent use and its iterator only detects
// structural changes made while it is live.
package queue

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty       = errors.New("queue: underflow")
	ErrInvalidated = errors.New("queue: modified during iteration")
)

type link[T any] struct {
	next  *link[T]
	value T
}

type Queue[T any] struct {
	head *link[T]
	tail *link[T]
	size int
	mods uint64
}

func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

func (q *Queue[T]) Len() int {
	return q.size
}

func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

// Add puts v at the back.
func (q *Queue[T]) Add(v T) {
	l := &link[T]{value: v}
	if q.tail == nil {
		q.head = l
	} else {
		q.tail.next = l
	}
	q.tail = l
	q.size++
	q.mods++
}

func (q *Queue[T]) AddAll(values ...T) {
	for _, v := range values {
		q.Add(v)
	}
}

// Remove takes the front element off.
func (q *Queue[T]) Remove() (T, error) {
	if q.head == nil {
		var zero T
		return zero, ErrEmpty
	}
	l := q.head
	q.head = l.next
	if q.head == nil {
		q.tail = nil
	}
	q.size--
	q.mods++
	return l.value, nil
}

// Peek returns the front element without removing it.
func (q *Queue[T]) Peek() (T, error) {
	if q.head == nil {
		var zero T
		return zero, ErrEmpty
	}
	return q.head.value, nil
}

func (q *Queue[T]) Clear() {
	q.head, q.tail = nil, nil
	q.size = 0
	q.mods++
}

func (q *Queue[T]) Snapshot() []T {
	ret := make([]T, 0, q.size)
	for l := q.head; l != nil; l = l.next {
		ret = append(ret, l.value)
	}
	return ret
}

func (q *Queue[T]) String() string {
	return fmt.Sprint(q.Snapshot())
}

// RemoveFunc unlinks every element for which del returns true and returns how many went.
func (q *Queue[T]) RemoveFunc(del func(T) bool) int {
	removed := 0
	var prev *link[T]
	for l := q.head; l != nil; l = l.next {
		if !del(l.value) {
			prev = l
			continue
		}
		if prev == nil {
			q.head = l.next
		} else {
			prev.next = l.next
		}
		if l == q.tail {
			q.tail = prev
		}
		removed++
	}
	if removed > 0 {
		q.size -= removed
		q.mods++
	}
	return removed
}

func Contains[T comparable](q *Queue[T], v T) bool {
	for l := q.head; l != nil; l = l.next {
		if l.value == v {
			return true
		}
	}
	return false
}

// RemoveValue drops every occurrence of v.
func RemoveValue[T comparable](q *Queue[T], v T) int {
	return q.RemoveFunc(func(e T) bool { return e == v })
}

// RetainValues drops every element equal to none of values.
func RetainValues[T comparable](q *Queue[T], values ...T) int {
	keep := make(map[T]struct{}, len(values))
	for _, v := range values {
		keep[v] = struct{}{}
	}
	return q.RemoveFunc(func(e T) bool {
		_, ok := keep[e]
		return !ok
	})
}

// Iterator walks the queue front to back.
type Iterator[T any] struct {
	q       *Queue[T]
	next    *link[T]
	value   T
	stamp   uint64
	started bool
	err     error
}

func (q *Queue[T]) Iter() *Iterator[T] {
	return &Iterator[T]{q: q, stamp: q.mods}
}

func (it *Iterator[T]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.stamp != it.q.mods {
		it.err = ErrInvalidated
		return false
	}
	if !it.started {
		it.next = it.q.head
		it.started = true
	}
	if it.next == nil {
		return false
	}
	it.value = it.next.value
	it.next = it.next.next
	return true
}

func (it *Iterator[T]) Value() T {
	return it.value
}

func (it *Iterator[T]) Err() error {
	return it.err
}

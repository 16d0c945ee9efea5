package ring

// Cursor walks a Sequence in both directions and can edit it at its position.
// It sits between two elements: Next steps over the element after it, Prev over the element before it.
//
// A Cursor records the modification count of its Sequence when created. Any structural change
// made through something other than the Cursor itself stops it, and Err reports ErrInvalidated.
type Cursor[T any] struct {
	s     *Sequence[T]
	next  int // index of the element Next would return
	last  int // index of the element last returned, -1 if none
	value T
	stamp uint64
	err   error
}

// Cursor returns a Cursor positioned so that its first Next returns the element at start.
// start may be Len(), leaving the Cursor at the end, ready for Prev.
func (s *Sequence[T]) Cursor(start int) (*Cursor[T], error) {
	if start < 0 || start > s.size {
		return nil, &IndexError{Index: start, Size: s.size}
	}
	return &Cursor[T]{s: s, next: start, last: -1, stamp: s.mods}, nil
}

func (c *Cursor[T]) check() bool {
	if c.err != nil {
		return false
	}
	if c.stamp != c.s.mods {
		c.err = ErrInvalidated
		return false
	}
	return true
}

func (c *Cursor[T]) Next() bool {
	if !c.check() || c.next >= c.s.size {
		return false
	}
	c.last = c.next
	c.next++
	c.value = c.s.items[c.s.translate(c.last)]
	return true
}

func (c *Cursor[T]) Prev() bool {
	if !c.check() || c.next <= 0 {
		return false
	}
	c.next--
	c.last = c.next
	c.value = c.s.items[c.s.translate(c.last)]
	return true
}

// Seek moves the Cursor so that Next returns the element at i, and forgets the current element.
func (c *Cursor[T]) Seek(i int) error {
	if !c.check() {
		return c.err
	}
	if i < 0 || i > c.s.size {
		return &IndexError{Index: i, Size: c.s.size}
	}
	c.next = i
	c.last = -1
	return nil
}

// Value returns the element passed over by the last successful Next or Prev.
func (c *Cursor[T]) Value() T {
	return c.value
}

// Index returns the index of Value, or -1 when there is no current element.
func (c *Cursor[T]) Index() int {
	return c.last
}

// Set replaces the current element. The Cursor stays valid, as do other iterators.
func (c *Cursor[T]) Set(v T) error {
	if !c.check() {
		return c.err
	}
	if c.last < 0 {
		return ErrExhausted
	}
	c.s.items[c.s.translate(c.last)] = v
	c.value = v
	return nil
}

// Remove deletes the current element. Other iterators over the Sequence are invalidated, this one is not.
func (c *Cursor[T]) Remove() error {
	if !c.check() {
		return c.err
	}
	if c.last < 0 {
		return ErrExhausted
	}
	if _, err := c.s.RemoveAt(c.last); err != nil {
		return err
	}
	if c.last < c.next {
		c.next--
	}
	c.last = -1
	c.stamp = c.s.mods
	return nil
}

// Insert puts v in front of the Cursor, so a following Next is unaffected and Prev returns v.
func (c *Cursor[T]) Insert(v T) error {
	if !c.check() {
		return c.err
	}
	if err := c.s.Insert(c.next, v); err != nil {
		return err
	}
	c.next++
	c.last = -1
	c.stamp = c.s.mods
	return nil
}

// Err returns ErrInvalidated once the Cursor has noticed a foreign structural change, nil otherwise.
func (c *Cursor[T]) Err() error {
	return c.err
}

// Iterator is a one way, single use walk over a Sequence, in the manner of bufio.Scanner:
//
//	it := s.Iter()
//	for it.Next() {
//		use(it.Value())
//	}
//	if err := it.Err(); err != nil {
//		// the Sequence changed under the loop
//	}
type Iterator[T any] struct {
	c       Cursor[T]
	reverse bool
}

// Iter walks from the first element to the last.
func (s *Sequence[T]) Iter() *Iterator[T] {
	return &Iterator[T]{c: Cursor[T]{s: s, next: 0, last: -1, stamp: s.mods}}
}

// ReverseIter walks from the last element to the first.
func (s *Sequence[T]) ReverseIter() *Iterator[T] {
	return &Iterator[T]{c: Cursor[T]{s: s, next: s.size, last: -1, stamp: s.mods}, reverse: true}
}

func (it *Iterator[T]) Next() bool {
	if it.reverse {
		return it.c.Prev()
	}
	return it.c.Next()
}

func (it *Iterator[T]) Value() T {
	return it.c.Value()
}

func (it *Iterator[T]) Index() int {
	return it.c.Index()
}

func (it *Iterator[T]) Err() error {
	return it.c.Err()
}

package ring

func (s *Sequence[T]) Append(v T) {
	s.ensureCapacity(s.size + 1)
	s.items[s.tail] = v
	s.tail = s.forward(s.tail)
	s.size++
	s.mods++
}

func (s *Sequence[T]) Prepend(v T) {
	s.ensureCapacity(s.size + 1)
	s.head = s.backward(s.head)
	s.items[s.head] = v
	s.size++
	s.mods++
}

// Insert places v so that it ends up at index i, moving later elements back by one.
// i may be Len() to append, or negative to count back from the end.
// An index past Len() is rejected with ErrOutOfRange, not clamped to an append.
func (s *Sequence[T]) Insert(i int, v T) error {
	at := s.normalize(i)
	if at < 0 || at > s.size {
		return &IndexError{Index: i, Size: s.size}
	}
	switch {
	case at == s.size:
		s.Append(v)
	case at == 0:
		s.Prepend(v)
	default:
		s.insertMiddle(at, v)
	}
	return nil
}

// insertMiddle moves whichever side of i is shorter, so at most min(i, size-i) elements are copied.
func (s *Sequence[T]) insertMiddle(i int, v T) {
	s.ensureCapacity(s.size + 1)
	x := s.translate(i)
	if i < s.size-i {
		s.shiftHeadLeft(x)
		s.items[s.backward(x)] = v
	} else {
		s.shiftTailRight(x)
		s.items[x] = v
	}
	s.size++
	s.mods++
}

// RemoveAt removes and returns the element at i. On an empty Sequence every index is out of range.
func (s *Sequence[T]) RemoveAt(i int) (T, error) {
	at := s.normalize(i)
	if at < 0 || at >= s.size {
		var zero T
		return zero, &IndexError{Index: i, Size: s.size}
	}
	return s.removeIndex(at), nil
}

// removeIndex removes the element at the already checked logical index i.
func (s *Sequence[T]) removeIndex(i int) T {
	switch i {
	case 0:
		return s.removeHead()
	case s.size - 1:
		return s.removeTail()
	}
	return s.removeMiddle(i)
}

func (s *Sequence[T]) removeHead() T {
	var zero T
	ret := s.items[s.head]
	s.items[s.head] = zero
	s.head = s.forward(s.head)
	s.size--
	s.mods++
	return ret
}

func (s *Sequence[T]) removeTail() T {
	var zero T
	s.tail = s.backward(s.tail)
	ret := s.items[s.tail]
	s.items[s.tail] = zero
	s.size--
	s.mods++
	return ret
}

func (s *Sequence[T]) removeMiddle(i int) T {
	x := s.translate(i)
	ret := s.items[x]
	if i < s.size-1-i {
		s.shiftHeadRight(x)
	} else {
		s.shiftTailLeft(x)
	}
	s.size--
	s.mods++
	return ret
}

// The four shifts below move one side of physical slot x by a single slot. A side is either one
// contiguous run or, when it crosses the end of the buffer, two runs joined by the element that
// hops between the last slot and slot 0. The caller guarantees the slot being shifted into is free.

// shiftHeadLeft moves [head, x) one slot toward the head, freeing the slot before x.
func (s *Sequence[T]) shiftHeadLeft(x int) {
	c := len(s.items)
	switch {
	case s.head == 0:
		s.items[c-1] = s.items[0]
		copy(s.items[:x-1], s.items[1:x])
	case s.head < x:
		copy(s.items[s.head-1:x-1], s.items[s.head:x])
	default:
		copy(s.items[s.head-1:c-1], s.items[s.head:c])
		if x > 0 {
			s.items[c-1] = s.items[0]
			copy(s.items[:x-1], s.items[1:x])
		}
	}
	s.head = s.backward(s.head)
}

// shiftTailRight moves [x, tail) one slot toward the tail, freeing x.
func (s *Sequence[T]) shiftTailRight(x int) {
	c := len(s.items)
	if x < s.tail {
		copy(s.items[x+1:s.tail+1], s.items[x:s.tail])
	} else {
		copy(s.items[1:s.tail+1], s.items[:s.tail])
		s.items[0] = s.items[c-1]
		copy(s.items[x+1:c], s.items[x:c-1])
	}
	s.tail = s.forward(s.tail)
}

// shiftHeadRight moves [head, x) one slot toward the tail over x, and clears the old head slot.
func (s *Sequence[T]) shiftHeadRight(x int) {
	c := len(s.items)
	if s.head < x {
		copy(s.items[s.head+1:x+1], s.items[s.head:x])
	} else {
		copy(s.items[1:x+1], s.items[:x])
		s.items[0] = s.items[c-1]
		copy(s.items[s.head+1:c], s.items[s.head:c-1])
	}
	var zero T
	s.items[s.head] = zero
	s.head = s.forward(s.head)
}

// shiftTailLeft moves (x, tail) one slot toward the head over x, and clears the old last slot.
func (s *Sequence[T]) shiftTailLeft(x int) {
	c := len(s.items)
	if x < s.tail {
		copy(s.items[x:s.tail-1], s.items[x+1:s.tail])
	} else {
		copy(s.items[x:c-1], s.items[x+1:c])
		if s.tail > 0 {
			s.items[c-1] = s.items[0]
			copy(s.items[:s.tail-1], s.items[1:s.tail])
		}
	}
	s.tail = s.backward(s.tail)
	var zero T
	s.items[s.tail] = zero
}

// AppendAll appends values in order, growing at most once.
func (s *Sequence[T]) AppendAll(values ...T) {
	n := len(values)
	if n == 0 {
		return
	}
	s.ensureCapacity(s.size + n)
	m := copy(s.items[s.tail:], values)
	copy(s.items, values[m:])
	s.tail = (s.tail + n) % len(s.items)
	s.size += n
	s.mods++
}

// PrependAll puts values in front of the current elements, keeping their order, growing at most once.
func (s *Sequence[T]) PrependAll(values ...T) {
	n := len(values)
	if n == 0 {
		return
	}
	s.ensureCapacity(s.size + n)
	start := s.wrap(s.head - n)
	m := copy(s.items[start:], values)
	copy(s.items, values[m:])
	s.head = start
	s.size += n
	s.mods++
}

// InsertAll inserts values so the first of them ends up at index i. Like insertMiddle it only
// moves the shorter side, here by len(values) slots.
func (s *Sequence[T]) InsertAll(i int, values ...T) error {
	at := s.normalize(i)
	if at < 0 || at > s.size {
		return &IndexError{Index: i, Size: s.size}
	}
	n := len(values)
	switch {
	case n == 0:
		return nil
	case at == s.size:
		s.AppendAll(values...)
		return nil
	case at == 0:
		s.PrependAll(values...)
		return nil
	}

	s.ensureCapacity(s.size + n)
	c := len(s.items)
	if at < s.size-at {
		head := s.wrap(s.head - n)
		for k := 0; k < at; k++ {
			s.items[(head+k)%c] = s.items[(s.head+k)%c]
		}
		s.head = head
	} else {
		for k := s.size - 1; k >= at; k-- {
			s.items[(s.head+k+n)%c] = s.items[(s.head+k)%c]
		}
		s.tail = (s.tail + n) % c
	}
	for k, v := range values {
		s.items[(s.head+at+k)%c] = v
	}
	s.size += n
	s.mods++
	return nil
}

// RemoveFunc removes every element for which del returns true and reports how many went.
// Survivors are compacted toward the head in a single pass.
func (s *Sequence[T]) RemoveFunc(del func(T) bool) int {
	kept := 0
	for i := 0; i < s.size; i++ {
		v := s.items[s.translate(i)]
		if del(v) {
			continue
		}
		if kept != i {
			s.items[s.translate(kept)] = v
		}
		kept++
	}
	removed := s.size - kept
	if removed == 0 {
		return 0
	}
	var zero T
	for i := kept; i < s.size; i++ {
		s.items[s.translate(i)] = zero
	}
	s.size = kept
	s.tail = s.translate(kept)
	s.mods++
	return removed
}

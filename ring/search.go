package ring

// The equality based helpers are functions rather than methods so that Sequence itself
// can hold any element type, comparable or not.

func (s *Sequence[T]) IndexFunc(f func(T) bool) int {
	for i := 0; i < s.size; i++ {
		if f(s.items[s.translate(i)]) {
			return i
		}
	}
	return -1
}

func (s *Sequence[T]) LastIndexFunc(f func(T) bool) int {
	for i := s.size - 1; i >= 0; i-- {
		if f(s.items[s.translate(i)]) {
			return i
		}
	}
	return -1
}

func (s *Sequence[T]) ContainsFunc(f func(T) bool) bool {
	return s.IndexFunc(f) >= 0
}

// IndexOf returns the index of the first element equal to v, or -1.
func IndexOf[T comparable](s *Sequence[T], v T) int {
	return s.IndexFunc(func(e T) bool { return e == v })
}

// LastIndexOf returns the index of the last element equal to v, or -1.
func LastIndexOf[T comparable](s *Sequence[T], v T) int {
	return s.LastIndexFunc(func(e T) bool { return e == v })
}

func Contains[T comparable](s *Sequence[T], v T) bool {
	return IndexOf(s, v) >= 0
}

func ContainsAll[T comparable](s *Sequence[T], values ...T) bool {
	for _, v := range values {
		if !Contains(s, v) {
			return false
		}
	}
	return true
}

// Remove deletes the first element equal to v and reports whether there was one.
func Remove[T comparable](s *Sequence[T], v T) bool {
	i := IndexOf(s, v)
	if i < 0 {
		return false
	}
	s.removeIndex(i)
	return true
}

// RemoveAll deletes every element that equals one of values and returns how many were deleted.
func RemoveAll[T comparable](s *Sequence[T], values ...T) int {
	set := toSet(values)
	return s.RemoveFunc(func(e T) bool {
		_, ok := set[e]
		return ok
	})
}

// RetainAll deletes every element that equals none of values and returns how many were deleted.
func RetainAll[T comparable](s *Sequence[T], values ...T) int {
	set := toSet(values)
	return s.RemoveFunc(func(e T) bool {
		_, ok := set[e]
		return !ok
	})
}

func toSet[T comparable](values []T) map[T]struct{} {
	ret := make(map[T]struct{}, len(values))
	for _, v := range values {
		ret[v] = struct{}{}
	}
	return ret
}

// Equal reports whether a and b hold equal elements in the same order. Capacity and layout are ignored.
func Equal[T comparable](a, b *Sequence[T]) bool {
	if a.size != b.size {
		return false
	}
	for i := 0; i < a.size; i++ {
		if a.items[a.translate(i)] != b.items[b.translate(i)] {
			return false
		}
	}
	return true
}

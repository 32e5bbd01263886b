// Package history provides the owned, ordered reading history kept by
// every sensor: a singly linked list of numeric values with average and
// prune-minimum statistics.
package history

import (
	"golang.org/x/exp/constraints"
)

// Number is the set of value types a reading history can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// node is a single reading in the list.
type node[T Number] struct {
	val  T
	next *node[T]
}

// List stores the readings of one sensor in insertion order.
// The zero value is an empty list ready for use. A List is not safe for
// concurrent use; it belongs to exactly one sensor.
type List[T Number] struct {
	head *node[T]
	size int
}

// New creates an empty list, optionally seeded with values.
func New[T Number](values ...T) *List[T] {
	l := &List[T]{}
	for _, v := range values {
		l.Append(v)
	}
	return l
}

// Append adds a reading at the end of the list.
func (l *List[T]) Append(v T) {
	n := &node[T]{val: v}
	if l.head == nil {
		l.head = n
	} else {
		cur := l.head
		for cur.next != nil {
			cur = cur.next
		}
		cur.next = n
	}
	l.size++
}

// Len returns the number of readings held.
func (l *List[T]) Len() int {
	return l.size
}

// Average returns the mean of all readings using T's own division, so
// integer lists truncate toward zero. An empty list yields 0; check Len
// when that would be ambiguous.
func (l *List[T]) Average() T {
	if l.size == 0 {
		return 0
	}
	var sum T
	for cur := l.head; cur != nil; cur = cur.next {
		sum += cur.val
	}
	return sum / T(l.size)
}

// RemoveMin removes the smallest reading and returns it. On ties the
// earliest one goes. An empty list yields 0 and is left untouched.
func (l *List[T]) RemoveMin() T {
	if l.head == nil {
		return 0
	}

	var prev, minPrev *node[T]
	minNode := l.head
	for cur := l.head; cur != nil; cur = cur.next {
		if cur.val < minNode.val {
			minNode = cur
			minPrev = prev
		}
		prev = cur
	}

	if minPrev == nil {
		l.head = minNode.next
	} else {
		minPrev.next = minNode.next
	}
	minNode.next = nil
	l.size--
	return minNode.val
}

// Min returns the smallest reading without removing it.
func (l *List[T]) Min() (T, bool) {
	if l.head == nil {
		return 0, false
	}
	m := l.head.val
	for cur := l.head.next; cur != nil; cur = cur.next {
		if cur.val < m {
			m = cur.val
		}
	}
	return m, true
}

// Last returns the most recent reading, or 0 if empty.
func (l *List[T]) Last() T {
	var last T
	for cur := l.head; cur != nil; cur = cur.next {
		last = cur.val
	}
	return last
}

// Values returns a copy of all readings in order.
func (l *List[T]) Values() []T {
	if l.size == 0 {
		return nil
	}
	out := make([]T, 0, l.size)
	for cur := l.head; cur != nil; cur = cur.next {
		out = append(out, cur.val)
	}
	return out
}

// LastN returns the last n readings (for chart rendering).
func (l *List[T]) LastN(n int) []T {
	if n <= 0 || l.size == 0 {
		return nil
	}
	vals := l.Values()
	start := len(vals) - n
	if start < 0 {
		start = 0
	}
	return vals[start:]
}

// Clone returns a deep copy that shares nothing with l.
func (l *List[T]) Clone() *List[T] {
	c := &List[T]{}
	c.copyFrom(l)
	return c
}

// Assign replaces the contents of l with a deep copy of src. Assigning a
// list to itself leaves it unchanged; a nil src empties l.
func (l *List[T]) Assign(src *List[T]) {
	if l == src {
		return
	}
	l.Release()
	if src != nil {
		l.copyFrom(src)
	}
}

// Release drops every reading and reports how many were dropped. The list
// is empty afterwards and may be reused.
func (l *List[T]) Release() int {
	released := 0
	for l.head != nil {
		n := l.head
		l.head = n.next
		n.next = nil
		released++
	}
	l.size = 0
	return released
}

// copyFrom appends copies of src's readings to the end of l.
func (l *List[T]) copyFrom(src *List[T]) {
	tail := l.head
	for tail != nil && tail.next != nil {
		tail = tail.next
	}
	for cur := src.head; cur != nil; cur = cur.next {
		n := &node[T]{val: cur.val}
		if tail == nil {
			l.head = n
		} else {
			tail.next = n
		}
		tail = n
		l.size++
	}
}

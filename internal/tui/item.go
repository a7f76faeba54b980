package tui

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyTaken    = errors.New("item already taken")
	ErrIndexOutOfRange = errors.New("item index out of range")
)

// Item is a selectable entry. Alias is what the user sees and matches
// against; Value is handed back to the caller when the item is chosen.
type Item[T any] struct {
	alias string
	Value T

	// Score and MatchedPositions describe the last query match. Both are
	// nil in Browse mode and before the first query edit.
	Score            *int
	MatchedPositions []int
}

func NewItem[T any](alias string, value T) Item[T] {
	return Item[T]{alias: alias, Value: value}
}

func (it *Item[T]) Alias() string { return it.alias }

func (it *Item[T]) setMatch(score int, positions []int) {
	it.Score = &score
	it.MatchedPositions = positions
}

func (it *Item[T]) clearMatch() {
	it.Score = nil
	it.MatchedPositions = nil
}

// Store holds items addressed by stable index. Items are only appended;
// once a session starts nothing is reordered or removed.
type Store[T any] struct {
	items []Item[T]
	taken []bool
}

func (s *Store[T]) Append(item Item[T]) {
	s.items = append(s.items, item)
	s.taken = append(s.taken, false)
}

func (s *Store[T]) AppendMany(items []Item[T]) {
	s.items = append(s.items, items...)
	s.taken = append(s.taken, make([]bool, len(items))...)
}

func (s *Store[T]) Len() int { return len(s.items) }

// Get returns the item at index i. It panics when i is out of range.
func (s *Store[T]) Get(i int) *Item[T] {
	return &s.items[i]
}

// Take transfers ownership of the item at index i to the caller. A taken
// index cannot be taken again.
func (s *Store[T]) Take(i int) (Item[T], error) {
	if i < 0 || i >= len(s.items) {
		return Item[T]{}, fmt.Errorf("take %d of %d: %w", i, len(s.items), ErrIndexOutOfRange)
	}
	if s.taken[i] {
		return Item[T]{}, fmt.Errorf("take %d: %w", i, ErrAlreadyTaken)
	}
	s.taken[i] = true
	item := s.items[i]
	var zero T
	s.items[i].Value = zero
	return item, nil
}

func (s *Store[T]) Taken(i int) bool {
	return i >= 0 && i < len(s.taken) && s.taken[i]
}

func (s *Store[T]) Clear() {
	s.items = nil
	s.taken = nil
}

func (s *Store[T]) clearMatches() {
	for i := range s.items {
		s.items[i].clearMatch()
	}
}

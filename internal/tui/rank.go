package tui

import (
	"cmp"
	"runtime"
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"
)

const (
	// ParallelThreshold is the store size above which ranking fans out
	// across a worker pool.
	ParallelThreshold = 10000
	// ChunkSize is the number of contiguous items one worker scores at a time.
	ChunkSize = 50

	// baseScore keeps every real match positive once the per-character
	// length penalty has been taken back out of the sahilm score.
	baseScore = 100
)

// chunk exposes a contiguous window of a store as a fuzzy.Source.
type chunk[T any] struct {
	items []Item[T]
}

func (c chunk[T]) String(i int) string { return c.items[i].alias }
func (c chunk[T]) Len() int            { return len(c.items) }

type ranker struct {
	workers   int
	threshold int
}

var (
	rankerOnce   sync.Once
	sharedRanker *ranker
)

// defaultRanker is created on first use and shared by every menu in the
// process. It holds no goroutines between calls.
func defaultRanker() *ranker {
	rankerOnce.Do(func() {
		sharedRanker = &ranker{workers: runtime.NumCPU(), threshold: ParallelThreshold}
	})
	return sharedRanker
}

type rankedMatch struct {
	index int
	score int
}

// rankStore scores every item in s against query, records the score and
// matched positions on each matching item and returns the matching
// indices ordered by descending score, ties by ascending index.
//
// An empty query matches nothing and leaves every item unscored.
func rankStore[T any](r *ranker, s *Store[T], query string) []int {
	s.clearMatches()
	if query == "" || s.Len() == 0 {
		return nil
	}

	var matches []rankedMatch
	if s.Len() > r.threshold {
		matches = rankParallel(r, s, query)
	} else {
		matches = scoreChunk(s.items, 0, query)
	}

	slices.SortFunc(matches, func(a, b rankedMatch) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.index
	}
	return out
}

func rankParallel[T any](r *ranker, s *Store[T], query string) []rankedMatch {
	var (
		mu      sync.Mutex
		results []rankedMatch
	)

	var g errgroup.Group
	g.SetLimit(max(1, r.workers))
	for base := 0; base < s.Len(); base += ChunkSize {
		end := min(base+ChunkSize, s.Len())
		items := s.items[base:end]
		g.Go(func() error {
			found := scoreChunk(items, base, query)
			if len(found) == 0 {
				return nil
			}
			mu.Lock()
			results = append(results, found...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// scoreChunk matches query against items, which start at store index
// base. Only the items in the chunk are written.
func scoreChunk[T any](items []Item[T], base int, query string) []rankedMatch {
	found := fuzzy.FindFrom(query, chunk[T]{items: items})
	if len(found) == 0 {
		return nil
	}
	out := make([]rankedMatch, 0, len(found))
	for _, m := range found {
		item := &items[m.Index]
		score := lengthFreeScore(m, item.alias)
		item.setMatch(score, runeOffsets(item.alias, m.MatchedIndexes))
		out = append(out, rankedMatch{index: base + m.Index, score: score})
	}
	return out
}

// lengthFreeScore takes back the penalty sahilm charges per unmatched
// byte, so a long alias scores like a short one with the same matched runs.
func lengthFreeScore(m fuzzy.Match, alias string) int {
	unmatched := max(0, len(alias)-len(m.MatchedIndexes))
	return max(1, m.Score+unmatched+baseScore)
}

// runeOffsets converts byte offsets into s to character offsets.
func runeOffsets(s string, byteOffsets []int) []int {
	if len(byteOffsets) == 0 {
		return nil
	}
	out := make([]int, 0, len(byteOffsets))
	next := 0
	count := 0
	for i := 0; i < len(s) && next < len(byteOffsets); {
		if i == byteOffsets[next] {
			out = append(out, count)
			next++
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return out
}

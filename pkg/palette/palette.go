// Package palette implements the command palette search index.
//
// Items (tabs, actions, prospects, settings) are registered once and searched
// with a tiered ranking: label prefix, label substring, keyword, then fuzzy
// subsequence. Within a tier, recently executed items float to the top.
package palette

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// DefaultLimit is the result page size used when Search is given limit <= 0.
	DefaultLimit = 20

	// MaxRecent bounds the execution history; older labels are evicted.
	MaxRecent = 10
)

// ErrNotInvocable is returned by Execute when the item has no action.
var ErrNotInvocable = errors.New("palette item has no action")

// Item is a searchable palette entry. Label doubles as its identity for
// recency tracking.
type Item struct {
	Label    string
	Category string // tab | action | prospect | setting | shortcut
	Action   func() error
	Keywords []string
}

// tier is the match quality of a result; lower ranks first.
type tier int

const (
	tierPrefix tier = iota
	tierSubstring
	tierKeyword
	tierFuzzy
)

// Result is a single ranked search hit. It is only valid until the next
// Register/Clear call.
type Result struct {
	Item  Item
	tier  tier
	order int // registration index, final tie-breaker
}

// Palette indexes items and tracks recently executed labels.
// Not safe for concurrent use; drive it from the UI goroutine.
type Palette struct {
	items     []Item
	recent    []string
	maxRecent int
	logger    *zap.Logger
}

// New creates an empty palette. A nil logger disables logging.
func New(logger *zap.Logger) *Palette {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Palette{
		maxRecent: MaxRecent,
		logger:    logger,
	}
}

// Register adds a single item.
func (p *Palette) Register(item Item) {
	p.items = append(p.items, item)
}

// RegisterMany adds items in order.
func (p *Palette) RegisterMany(items []Item) {
	p.items = append(p.items, items...)
}

// Clear removes every registered item. Execution history is kept so that
// re-registered items keep their recency boost.
func (p *Palette) Clear() {
	p.items = nil
}

// ItemCount returns the number of registered items.
func (p *Palette) ItemCount() int {
	return len(p.items)
}

// Search returns items matching query, best first, truncated to limit.
//
// Matching is case-insensitive. An empty query matches everything and ranks
// by recency alone. A query with no matches yields an empty slice.
func (p *Palette) Search(query string, limit int) []Result {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))

	results := make([]Result, 0, len(p.items))
	for i, item := range p.items {
		t, ok := matchTier(item, q)
		if !ok {
			continue
		}
		results = append(results, Result{Item: item, tier: t, order: i})
	}

	rank := p.recentRank()
	slices.SortFunc(results, func(a, b Result) int {
		if c := cmp.Compare(a.tier, b.tier); c != 0 {
			return c
		}
		if c := cmp.Compare(rankOf(rank, a.Item.Label), rankOf(rank, b.Item.Label)); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Execute runs the result's action and, on success, moves its label to the
// front of the recent history. Action errors are returned to the caller
// wrapped with the label; panics are not recovered.
func (p *Palette) Execute(r Result) error {
	label := r.Item.Label
	if r.Item.Action == nil {
		return fmt.Errorf("execute %q: %w", label, ErrNotInvocable)
	}
	if err := r.Item.Action(); err != nil {
		return fmt.Errorf("execute %q: %w", label, err)
	}

	p.touch(label)
	p.logger.Debug("palette command executed",
		zap.String("label", label),
		zap.String("category", r.Item.Category),
	)
	return nil
}

// Recent returns executed labels, most recent first.
func (p *Palette) Recent() []string {
	return slices.Clone(p.recent)
}

// touch moves label to the front of the history, deduplicating and evicting
// the oldest entry past maxRecent.
func (p *Palette) touch(label string) {
	if i := slices.Index(p.recent, label); i >= 0 {
		p.recent = slices.Delete(p.recent, i, i+1)
	}
	p.recent = slices.Insert(p.recent, 0, label)
	if len(p.recent) > p.maxRecent {
		p.recent = p.recent[:p.maxRecent]
	}
}

// recentRank maps each recent label to its history position (0 = newest).
func (p *Palette) recentRank() map[string]int {
	rank := make(map[string]int, len(p.recent))
	for i, label := range p.recent {
		rank[label] = i
	}
	return rank
}

// rankOf returns the history position of label, or a value past the end of
// the history when it was never executed.
func rankOf(rank map[string]int, label string) int {
	if i, ok := rank[label]; ok {
		return i
	}
	return len(rank)
}

// matchTier classifies how item matches the lowercased query q. The first
// matching rule wins.
func matchTier(item Item, q string) (tier, bool) {
	if q == "" {
		return tierPrefix, true
	}
	label := strings.ToLower(item.Label)
	switch {
	case strings.HasPrefix(label, q):
		return tierPrefix, true
	case strings.Contains(label, q):
		return tierSubstring, true
	case keywordMatch(item.Keywords, q):
		return tierKeyword, true
	case isSubsequence(q, label):
		return tierFuzzy, true
	}
	return 0, false
}

// keywordMatch reports whether any keyword equals or contains q.
func keywordMatch(keywords []string, q string) bool {
	for _, kw := range keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}

// isSubsequence reports whether the runes of needle appear in haystack in
// order, not necessarily contiguously.
func isSubsequence(needle, haystack string) bool {
	rest := haystack
	for _, r := range needle {
		i := strings.IndexRune(rest, r)
		if i < 0 {
			return false
		}
		_, size := utf8.DecodeRuneInString(rest[i:])
		rest = rest[i+size:]
	}
	return true
}

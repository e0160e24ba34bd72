package knowledge

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"

	"tekmakon-site/internal/domain"
)

// Matcher resolves free text to the first knowledge entry, in table order,
// with a trigger occurring anywhere in the lowercased text.
// It is immutable after construction and safe for concurrent use.
type Matcher struct {
	entries  []domain.KnowledgeEntry
	fallback string
	machine  *goahocorasick.Machine
	// owner maps a trigger to the lowest index of an entry declaring it.
	owner map[string]int
}

// NewMatcher compiles entries into a single automaton over all triggers.
func NewMatcher(entries []domain.KnowledgeEntry, fallback string) (*Matcher, error) {
	if len(entries) == 0 {
		return nil, errors.New("knowledge: entries must not be empty")
	}
	if strings.TrimSpace(fallback) == "" {
		return nil, errors.New("knowledge: fallback must not be empty")
	}

	owner := make(map[string]int)
	for i, e := range entries {
		if len(e.Triggers) == 0 {
			return nil, fmt.Errorf("knowledge: entry %d has no triggers", i)
		}
		if strings.TrimSpace(e.Response) == "" {
			return nil, fmt.Errorf("knowledge: entry %d has an empty response", i)
		}
		for _, t := range e.Triggers {
			if t == "" {
				return nil, fmt.Errorf("knowledge: entry %d has an empty trigger", i)
			}
			if t != strings.ToLower(t) {
				return nil, fmt.Errorf("knowledge: entry %d trigger %q must be lowercase", i, t)
			}
			if _, seen := owner[t]; !seen {
				owner[t] = i
			}
		}
	}

	triggers := lo.Keys(owner)
	slices.Sort(triggers)
	patterns := lo.Map(triggers, func(t string, _ int) []rune { return []rune(t) })

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("knowledge: build automaton: %w", err)
	}

	return &Matcher{
		entries:  slices.Clone(entries),
		fallback: fallback,
		machine:  m,
		owner:    owner,
	}, nil
}

// Lookup returns the winning entry for query, if any.
func (m *Matcher) Lookup(query string) (domain.KnowledgeEntry, bool) {
	text := []rune(strings.ToLower(query))
	if len(text) == 0 {
		return domain.KnowledgeEntry{}, false
	}

	best := -1
	for _, term := range m.machine.MultiPatternSearch(text, false) {
		idx, ok := m.owner[string(term.Word)]
		if !ok {
			continue
		}
		if best < 0 || idx < best {
			best = idx
		}
		if best == 0 {
			break
		}
	}
	if best < 0 {
		return domain.KnowledgeEntry{}, false
	}
	return m.entries[best], true
}

// Match returns the response for query, or the fallback menu.
func (m *Matcher) Match(query string) string {
	if e, ok := m.Lookup(query); ok {
		return e.Response
	}
	return m.fallback
}

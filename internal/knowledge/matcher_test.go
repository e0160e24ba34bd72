package knowledge

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"tekmakon-site/internal/domain"
)

func mustDefaultMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := NewMatcher(DefaultEntries(), Fallback)
	require.NoError(t, err)
	return m
}

// responseFor returns the response of the first default entry declaring trigger.
func responseFor(t *testing.T, trigger string) string {
	t.Helper()
	for _, e := range DefaultEntries() {
		for _, tr := range e.Triggers {
			if tr == trigger {
				return e.Response
			}
		}
	}
	t.Fatalf("no entry declares trigger %q", trigger)
	return ""
}

func TestNewMatcher_Validates(t *testing.T) {
	_, err := NewMatcher(nil, Fallback)
	require.ErrorContains(t, err, "entries must not be empty")

	_, err = NewMatcher(DefaultEntries(), "  ")
	require.ErrorContains(t, err, "fallback must not be empty")

	_, err = NewMatcher([]domain.KnowledgeEntry{{Response: "x"}}, Fallback)
	require.ErrorContains(t, err, "no triggers")

	_, err = NewMatcher([]domain.KnowledgeEntry{{Triggers: []string{""}, Response: "x"}}, Fallback)
	require.ErrorContains(t, err, "empty trigger")

	_, err = NewMatcher([]domain.KnowledgeEntry{{Triggers: []string{"OpSuite"}, Response: "x"}}, Fallback)
	require.ErrorContains(t, err, "lowercase")

	_, err = NewMatcher([]domain.KnowledgeEntry{{Triggers: []string{"x"}, Response: " "}}, Fallback)
	require.ErrorContains(t, err, "empty response")
}

func TestDefaultEntries_AreWellFormed(t *testing.T) {
	entries := DefaultEntries()
	require.Len(t, entries, 18)
	for _, e := range entries {
		require.NotEmpty(t, e.Triggers)
		require.NotEmpty(t, e.Response)
		for _, tr := range e.Triggers {
			require.Equal(t, strings.ToLower(tr), tr)
		}
	}
}

func TestMatch_CaseInsensitive(t *testing.T) {
	m := mustDefaultMatcher(t)
	require.Equal(t, responseFor(t, "opsuite"), m.Match("What is OpSuite?"))
	require.Equal(t, responseFor(t, "opsuite"), m.Match("OPSUITE"))
}

func TestMatch_SubstringAnywhere(t *testing.T) {
	m := mustDefaultMatcher(t)
	require.Equal(t, responseFor(t, "mobile app"), m.Match("do you build MOBILE APPS for us"))
	require.Equal(t, responseFor(t, "location"), m.Match("your location please"))
}

func TestMatch_FirstEntryWins(t *testing.T) {
	m := mustDefaultMatcher(t)

	// modbus is declared before iot
	require.Equal(t, responseFor(t, "modbus"), m.Match("Tell me about Modbus and IoT"))
	require.Equal(t, responseFor(t, "modbus"), m.Match("Tell me about IoT and Modbus"))

	// "maintenance" contains "ai", and the AI entry precedes the support entry
	require.Equal(t, responseFor(t, "ai"), m.Match("maintenance"))

	// "explain" contains "ai", modbus still precedes it
	require.Equal(t, responseFor(t, "modbus"), m.Match("Explain Modbus"))

	require.Equal(t, responseFor(t, "iot"), m.Match("internet of things"))
}

func TestMatch_Fallback(t *testing.T) {
	m := mustDefaultMatcher(t)
	require.Equal(t, Fallback, m.Match(""))
	require.Equal(t, Fallback, m.Match("   "))
	require.Equal(t, Fallback, m.Match("xyz"))
	require.Equal(t, Fallback, m.Match("hello there"))
}

func TestMatch_CustomTablePrecedence(t *testing.T) {
	entries := []domain.KnowledgeEntry{
		{Triggers: []string{"iot"}, Response: "short"},
		{Triggers: []string{"internet of things", "iot"}, Response: "long"},
	}
	m, err := NewMatcher(entries, "fallback")
	require.NoError(t, err)

	require.Equal(t, "short", m.Match("IoT, the internet of things"))
	require.Equal(t, "long", m.Match("internet of things"))
	require.Equal(t, "fallback", m.Match("nothing here"))
}

func TestLookup(t *testing.T) {
	m := mustDefaultMatcher(t)

	e, ok := m.Lookup("How much is a quote?")
	require.True(t, ok)
	require.Contains(t, e.Triggers, "quote")

	_, ok = m.Lookup("")
	require.False(t, ok)
}

func TestMatch_Idempotent(t *testing.T) {
	m := mustDefaultMatcher(t)
	first := m.Match("What is OpSuite?")
	require.Equal(t, first, m.Match("What is OpSuite?"))
}

func TestMatch_ConcurrentUse(t *testing.T) {
	m := mustDefaultMatcher(t)
	want := responseFor(t, "modbus")

	got := make([]string, 16)
	var wg sync.WaitGroup
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = m.Match("explain modbus")
		}()
	}
	wg.Wait()
	for _, g := range got {
		require.Equal(t, want, g)
	}
}

func TestSuggestions(t *testing.T) {
	got := Suggestions()
	require.Len(t, got, maxSuggestions)
	for _, s := range got {
		require.Contains(t, suggestions, s)
	}
}

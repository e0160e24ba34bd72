package domain

// KnowledgeEntry maps a set of lowercase trigger substrings to a canned response.
type KnowledgeEntry struct {
	Triggers []string
	Response string
}

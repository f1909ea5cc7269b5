package textmatch

// List is an ordered, immutable set of normalized phrases. The zero value is
// an empty list.
type List struct {
	items []string
}

// NewList normalizes and de-duplicates phrases, keeping first-seen order.
// Phrases that normalize to nothing are dropped.
func NewList(phrases ...string) List {
	items := make([]string, 0, len(phrases))
	seen := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		n := Normalize(p)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		items = append(items, n)
	}
	return List{items: items}
}

// Len returns the number of phrases.
func (l List) Len() int { return len(l.items) }

// Items returns a copy of the phrases in order.
func (l List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// First returns the first phrase, in list order, that occurs in t.
func (l List) First(t Text) (string, bool) {
	for _, p := range l.items {
		if t.hasNormalized(p) {
			return p, true
		}
	}
	return "", false
}

// Any reports whether any phrase occurs in t.
func (l List) Any(t Text) bool {
	_, ok := l.First(t)
	return ok
}

// All returns every phrase that occurs in t, in list order.
func (l List) All(t Text) []string {
	var out []string
	for _, p := range l.items {
		if t.hasNormalized(p) {
			out = append(out, p)
		}
	}
	return out
}

// Contains reports whether phrase itself is a member of the list.
func (l List) Contains(phrase string) bool {
	n := Normalize(phrase)
	for _, p := range l.items {
		if p == n {
			return true
		}
	}
	return false
}

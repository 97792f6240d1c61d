package proposal

import (
	"sort"
	"strings"
)

// TokenMap maps placeholder tokens such as "<<Client Name>>" to the text
// that replaces them. Keys are matched literally and case-sensitively.
type TokenMap map[string]string

// Token wraps a key in the placeholder delimiters: Token("Date") is "<<Date>>".
func Token(key string) string {
	return "<<" + key + ">>"
}

// Keys returns the non-empty keys ordered longest first, ties broken lexically.
// This is the order in which overlapping keys compete for a match.
func (m TokenMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Replacer builds a single-pass replacer over the map. At every position the
// longest matching key wins and replaced text is never rescanned.
func (m TokenMap) Replacer() *strings.Replacer {
	keys := m.Keys()
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return strings.NewReplacer(pairs...)
}

// Replace substitutes every key occurring in s.
func (m TokenMap) Replace(s string) string {
	if len(m) == 0 || s == "" {
		return s
	}
	return m.Replacer().Replace(s)
}

// Merge copies every entry of other into m, overwriting existing keys.
func (m TokenMap) Merge(other TokenMap) {
	for k, v := range other {
		m[k] = v
	}
}

// Clone returns an independent copy of the map.
func (m TokenMap) Clone() TokenMap {
	out := make(TokenMap, len(m))
	out.Merge(m)
	return out
}

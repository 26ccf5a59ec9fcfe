package naming

import (
	"sort"
	"strings"
	"unicode"
)

// Abbreviations returns display candidates for name, longest first. The full
// trimmed name is always the first candidate.
func Abbreviations(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	seen := map[string]struct{}{}
	var out []string
	add := func(s string) {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(name)
	if stripped := stripBrackets(name); stripped != name {
		add(stripped)
		name = stripped
	}
	for _, sep := range []string{": ", " - ", " | "} {
		if i := strings.LastIndex(name, sep); i >= 0 {
			add(name[i+len(sep):])
			add(name[:i])
		}
	}
	if a := acronym(name); len([]rune(a)) > 1 {
		add(a)
	}

	sort.SliceStable(out[1:], func(i, j int) bool {
		return len([]rune(out[1+i])) > len([]rune(out[1+j]))
	})
	return out
}

// stripBrackets removes "(...)" and "[...]" groups.
func stripBrackets(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
				continue
			}
		}
		if depth == 0 {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.Join(strings.Fields(b.String()), " "), " :", ":")
}

// acronym keeps the first letter of every word and any digits.
func acronym(s string) string {
	var b strings.Builder
	for _, w := range strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == ':' || r == '|'
	}) {
		rs := []rune(w)
		if unicode.IsDigit(rs[0]) {
			b.WriteString(w)
			continue
		}
		if unicode.IsLetter(rs[0]) {
			b.WriteRune(unicode.ToUpper(rs[0]))
		}
	}
	return b.String()
}

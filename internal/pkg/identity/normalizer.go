package identity

import "strings"

// Normalize canonicalizes an employee identifier into a comparable key: the
// part after the last backslash, lower-cased. Empty input yields "", which
// never matches anything.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.LastIndex(raw, `\`); i >= 0 {
		raw = raw[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(raw))
}

// Equal reports whether two identifiers refer to the same employee.
func Equal(a, b string) bool {
	ka := Normalize(a)
	return ka != "" && ka == Normalize(b)
}

// Normalizer applies Normalize and knows the default domain used when an
// unqualified key has to be tried in its qualified form.
type Normalizer struct {
	DefaultDomain string
}

func NewNormalizer(defaultDomain string) Normalizer {
	return Normalizer{DefaultDomain: strings.TrimSpace(defaultDomain)}
}

func (n Normalizer) Key(raw string) string {
	return Normalize(raw)
}

// Candidates lists the exact forms tried for raw, in order: the
// lower-cased raw form and, for an unqualified raw when a default domain is
// configured, "<domain>\<key>".
func (n Normalizer) Candidates(raw string) []string {
	key := Normalize(raw)
	if key == "" {
		return nil
	}

	form := strings.ToLower(strings.TrimSpace(raw))
	out := []string{form}
	if n.DefaultDomain != "" && !strings.Contains(form, `\`) {
		out = append(out, strings.ToLower(n.DefaultDomain)+`\`+key)
	}
	return out
}

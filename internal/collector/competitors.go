package collector

import "strings"

// Detector scans article text for tracked competitor keywords. The
// vocabulary is fixed at construction so runs stay independent of each
// other and of process-global state.
type Detector struct {
	keywords []string
}

// NewDetector builds a detector from a list of competitor keywords.
// Keywords are matched lower-case; results are reported capitalized.
func NewDetector(keywords []string) *Detector {
	kws := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			kws = append(kws, kw)
		}
	}
	return &Detector{keywords: kws}
}

// Detect returns the competitors mentioned in any of the given text
// fields, in vocabulary order, each with its first letter upper-cased.
// Matching is case-insensitive plain substring search, no word
// boundaries: a keyword inside a longer word still counts. Known
// limitation, kept deliberately.
func (d *Detector) Detect(fields ...string) []string {
	text := strings.ToLower(strings.Join(fields, " "))

	var found []string
	for _, kw := range d.keywords {
		if strings.Contains(text, kw) {
			found = append(found, capitalize(kw))
		}
	}
	return found
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

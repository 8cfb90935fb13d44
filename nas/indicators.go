package nas

import (
	"bytes"
	"strings"

	"github.com/geoprobe/geoprobe/config"
)

// Indicators is an ordered set of tokens whose presence marks a NAS dialect.
type Indicators []string

// ParseIndicators splits a semicolon-separated list.
//
// Empty tokens are dropped; tokens are otherwise kept as written.
func ParseIndicators(s string) Indicators {
	var ret Indicators
	for _, tok := range strings.Split(s, ";") {
		if tok == "" {
			continue
		}
		ret = append(ret, tok)
	}
	return ret
}

// LoadIndicators reads the indicator list from the [KeyIndicator] option,
// falling back to [DefaultIndicators].
func LoadIndicators(p config.Provider) Indicators {
	return ParseIndicators(config.GetDefault(p, KeyIndicator, DefaultIndicators))
}

// Find returns the first indicator contained in b.
func (is Indicators) Find(b []byte) (string, bool) {
	for _, i := range is {
		if bytes.Contains(b, []byte(i)) {
			return i, true
		}
	}
	return "", false
}

func (is Indicators) String() string {
	return strings.Join(is, ";")
}

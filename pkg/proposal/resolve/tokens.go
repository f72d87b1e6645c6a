package resolve

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidToken is returned for token keys that are not of the form {name}.
var ErrInvalidToken = errors.New("invalid token")

// TokenMap maps literal tokens, braces included, to their values.
type TokenMap map[string]any

// Keys returns the tokens in sorted order, the order in which they are
// applied to each region.
func (m TokenMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks every key is a braced token with a non-empty name.
func (m TokenMap) Validate() error {
	for _, k := range m.Keys() {
		if !ValidToken(k) {
			return fmt.Errorf("%w: %q", ErrInvalidToken, k)
		}
	}
	return nil
}

// Format renders every value, failing on the first that cannot be rendered.
func (m TokenMap) Format() (map[string]string, error) {
	out := make(map[string]string, len(m))
	for _, k := range m.Keys() {
		s, err := FormatValue(k, m[k])
		if err != nil {
			return nil, err
		}
		out[k] = s
	}
	return out, nil
}

// ValidToken reports whether key is "{name}" with a non-empty name that
// contains no further braces.
func ValidToken(key string) bool {
	if len(key) < 3 || key[0] != '{' || key[len(key)-1] != '}' {
		return false
	}
	return !strings.ContainsAny(key[1:len(key)-1], "{}")
}

// Token builds the token for a field name.
func Token(name string) string {
	return "{" + name + "}"
}

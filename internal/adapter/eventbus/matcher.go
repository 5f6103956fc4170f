package eventbus

import (
	"strings"

	"github.com/tejashwikalptaru/eventhub/internal/domain"
)

// Matches reports whether a subscription pattern matches a concrete event name.
//
// An exact pattern matches only the identical name. A wildcard pattern "P.*" matches
// every name starting with "P.", so "foo.*" matches "foo.bar" and "foo.bar.baz" but
// neither "foo" nor "foobar". Matching is case-sensitive.
func Matches(pattern domain.Pattern, name domain.EventName) bool {
	if pattern.IsWildcard() {
		return strings.HasPrefix(string(name), pattern.Prefix())
	}
	return string(pattern) == string(name)
}

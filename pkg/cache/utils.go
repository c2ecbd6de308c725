package cache

import (
	"fmt"
	"strings"
)

// Key joins prefix and parts with ':'. String parts are lower-cased so
// checksummed and plain hex addresses share one entry.
func Key(prefix string, parts ...interface{}) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range parts {
		b.WriteByte(':')
		if s, ok := p.(string); ok {
			b.WriteString(strings.ToLower(s))
			continue
		}
		fmt.Fprint(&b, p)
	}
	return b.String()
}

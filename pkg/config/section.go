package config

import (
	"fmt"
	"strings"
)

// section renders a titled block of key/value pairs for the startup dump.
// kv alternates keys and values; a missing trailing value prints as empty.
func section(title string, kv ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- %s ---\n", title)
	for i := 0; i < len(kv); i += 2 {
		var value any = ""
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		fmt.Fprintf(&b, "  %v: %v\n", kv[i], value)
	}
	return b.String()
}

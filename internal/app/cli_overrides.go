package app

import (
	"strings"
)

// splitKinds flattens comma separated entries so that "--kinds toggles,accounts"
// and FLAGSYNC_KINDS="toggles, accounts" both yield one entry per kind.
func splitKinds(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

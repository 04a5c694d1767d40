package domain

import (
	"fmt"
	"strings"
)

type ResourceKind string

const (
	KindToggle  ResourceKind = "Toggle"
	KindAccount ResourceKind = "Account"
)

// AllKinds is the reconciliation order used when no kind is selected.
var AllKinds = []ResourceKind{KindToggle, KindAccount}

func (rk ResourceKind) String() string {
	return string(rk)
}

// ParseKind accepts the kind name in any case, plus the plural forms used on
// the command line ("toggles", "accounts").
func ParseKind(s string) (ResourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toggle", "toggles", "feature", "features":
		return KindToggle, nil
	case "account", "accounts", "user", "users":
		return KindAccount, nil
	}
	return "", fmt.Errorf("unknown resource kind %q", s)
}

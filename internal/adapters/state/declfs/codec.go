package declfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/errors"
	"github.com/olusolaa/flagsync/pkg/convert"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// decodeFile returns the declarations in path as raw maps, in file order.
func decodeFile(ctx context.Context, path string, kind domain.ResourceKind) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeLoadError, fmt.Sprintf("failed to read %s", path))
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return decodeHCL(ctx, path, raw, kind)
	case ".json":
		err = json.Unmarshal(raw, &doc)
	case ".toml":
		// TOML has no top-level arrays, so declarations live in [[toggles]]
		// or [[accounts]] tables.
		var table map[string]any
		if _, err = toml.Decode(string(raw), &table); err == nil && len(table) > 0 {
			doc = table
		}
	default:
		err = yaml.Unmarshal(raw, &doc)
	}
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeLoadError,
			fmt.Sprintf("failed to parse %s", path), "Fix the file syntax.")
	}

	items, err := listOf(doc, kind)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeLoadError,
			fmt.Sprintf("unexpected layout in %s", path),
			fmt.Sprintf("Use a top-level list or a %q key holding a list.", sectionName(kind)))
	}
	return items, nil
}

// listOf accepts either a bare list or a map with the kind's section key.
func listOf(doc any, kind domain.ResourceKind) ([]map[string]any, error) {
	if doc == nil {
		return []map[string]any{}, nil
	}
	if m, err := convert.ToMap(doc); err == nil {
		section, ok := m[sectionName(kind)]
		if !ok {
			return nil, fmt.Errorf("missing %q section", sectionName(kind))
		}
		return convert.ToSliceOfMap(section)
	}
	return convert.ToSliceOfMap(doc)
}

func sectionName(kind domain.ResourceKind) string {
	if kind == domain.KindAccount {
		return "accounts"
	}
	return "toggles"
}

package policy

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Baseline is the set of accepted violations, keyed by toggle name.
type Baseline map[string]domain.Toggle

func (b Baseline) Keys() []string {
	return domain.SortedKeys(b)
}

// LoadBaseline reads a YAML or JSON baseline. An empty path or a missing file
// yields an empty baseline.
func LoadBaseline(path string) (Baseline, error) {
	baseline := Baseline{}
	if path == "" {
		return baseline, nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return baseline, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeBaselineError, "failed to read policy baseline "+path)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return baseline, nil
	}

	if isJSON(path) {
		err = json.Unmarshal(raw, &baseline)
	} else {
		err = yaml.Unmarshal(raw, &baseline)
	}
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeBaselineError,
			"policy baseline "+path+" is not valid", "Regenerate it with `flagsync scan --write-baseline`.")
	}
	for key, toggle := range baseline {
		if toggle.Name == "" {
			toggle.Name = key
			baseline[key] = toggle
		}
	}
	return baseline, nil
}

// WriteBaseline records found as the accepted set, replacing the file.
func WriteBaseline(path string, found domain.Snapshot) error {
	if path == "" {
		return errors.NewUserFacing(errors.CodeConfigValidation, "no policy baseline path configured",
			"Set policy.baseline_path in the config file or FLAGSYNC_POLICY_BASELINE_PATH.")
	}
	baseline := make(Baseline, len(found))
	for key, res := range found {
		if toggle, ok := res.(domain.Toggle); ok {
			baseline[key] = toggle.Normalize(domain.NormalizeOptions{}).(domain.Toggle)
		}
	}

	var (
		raw []byte
		err error
	)
	if isJSON(path) {
		raw, err = json.MarshalIndent(baseline, "", "  ")
	} else {
		raw, err = yaml.Marshal(baseline)
	}
	if err != nil {
		return errors.Wrap(err, errors.CodeBaselineError, "failed to encode policy baseline")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, errors.CodeBaselineError, "failed to create baseline directory")
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrap(err, errors.CodeBaselineError, "failed to write policy baseline "+path)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

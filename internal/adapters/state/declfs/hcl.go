package declfs

import (
	"context"
	"fmt"
	"math"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/errors"
)

// HCL declarations use one labelled block per resource:
//
//	toggle "checkout-v2" {
//	  description = "new checkout"
//	  strategies  = [{ name = "default" }]
//	}
func blockType(kind domain.ResourceKind) string {
	if kind == domain.KindAccount {
		return "account"
	}
	return "toggle"
}

func decodeHCL(_ context.Context, path string, raw []byte, kind domain.ResourceKind) ([]map[string]any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(raw, path)
	if diags.HasErrors() {
		return nil, hclError(path, diags)
	}

	schema := &hcl.BodySchema{Blocks: []hcl.BlockHeaderSchema{{Type: blockType(kind), LabelNames: []string{keyField(kind)}}}}
	content, diags := file.Body.Content(schema)
	if diags.HasErrors() {
		return nil, hclError(path, diags)
	}

	items := make([]map[string]any, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, hclError(path, diags)
		}

		fields := make(map[string]any, len(attrs)+1)
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, hclError(path, diags)
			}
			goVal, err := convertCtyValue(val)
			if err != nil {
				return nil, errors.Wrap(err, errors.CodeLoadError,
					fmt.Sprintf("%s: attribute %q of %s %q", path, name, blockType(kind), block.Labels[0]))
			}
			fields[name] = goVal
		}
		if _, ok := fields[keyField(kind)]; !ok {
			fields[keyField(kind)] = block.Labels[0]
		}
		items = append(items, fields)
	}
	return items, nil
}

func hclError(path string, diags hcl.Diagnostics) error {
	return errors.NewUserFacing(errors.CodeLoadError,
		fmt.Sprintf("failed to parse %s: %s", path, diags.Error()), "Fix the HCL syntax.")
}

// convertCtyValue turns a static HCL value into plain Go values: string,
// bool, int64 or float64, []any and map[string]any.
func convertCtyValue(val cty.Value) (any, error) {
	if !val.IsKnown() {
		return nil, fmt.Errorf("value is not known statically")
	}
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if i64, acc := bf.Int64(); acc == big.Exact {
			return i64, nil
		}
		f64, _ := bf.Float64()
		if math.IsInf(f64, 0) {
			return bf.Text('g', -1), nil
		}
		return f64, nil
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		out := []any{}
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			goVal, err := convertCtyValue(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, goVal)
		}
		return out, nil
	case ty.IsMapType() || ty.IsObjectType():
		out := map[string]any{}
		for it := val.ElementIterator(); it.Next(); {
			k, elem := it.Element()
			goVal, err := convertCtyValue(elem)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = goVal
		}
		return out, nil
	}

	// Anything else goes through JSON.
	raw, err := ctyjson.Marshal(val, ty)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s value: %w", ty.FriendlyName(), err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s value: %w", ty.FriendlyName(), err)
	}
	return out, nil
}

package convert

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNotMap        = errors.New("value is not a map")
	ErrNotSlice      = errors.New("value is not a list")
	errNotMapElement = errors.New("list element is not a map")
)

// ToMap returns data as map[string]any. Maps with non-string keys are
// rejected. A nil input yields a nil map.
func ToMap(data any) (map[string]any, error) {
	if data == nil {
		return nil, nil
	}
	if m, ok := data.(map[string]any); ok {
		return m, nil
	}
	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Map || val.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: input type %T", ErrNotMap, data)
	}
	out := make(map[string]any, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, nil
}

// ToSliceOfMap converts []any or []map[string]any to []map[string]any.
// A nil input yields an empty slice.
func ToSliceOfMap(data any) ([]map[string]any, error) {
	if data == nil {
		return []map[string]any{}, nil
	}
	if sliceMap, ok := data.([]map[string]any); ok {
		return sliceMap, nil
	}

	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: input type %T", ErrNotSlice, data)
	}

	result := make([]map[string]any, 0, val.Len())
	for i := 0; i < val.Len(); i++ {
		item, err := ToMap(val.Index(i).Interface())
		if err != nil || item == nil {
			return nil, fmt.Errorf("index %d: %w (type %T)", i, errNotMapElement, val.Index(i).Interface())
		}
		result = append(result, item)
	}
	return result, nil
}

// ToSliceOfString converts a list of scalars to []string using fmt's %v.
func ToSliceOfString(data any) ([]string, error) {
	if data == nil {
		return []string{}, nil
	}
	if slice, ok := data.([]string); ok {
		return slice, nil
	}

	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: input type %T", ErrNotSlice, data)
	}

	result := make([]string, 0, val.Len())
	for i := 0; i < val.Len(); i++ {
		result = append(result, fmt.Sprintf("%v", val.Index(i).Interface()))
	}
	return result, nil
}

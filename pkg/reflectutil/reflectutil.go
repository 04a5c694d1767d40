package reflectutil

import (
	"reflect"
)

func DerefValue(v reflect.Value) reflect.Value {
	for (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func IsEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Chan, reflect.String:
		return val.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return val.IsNil()
	default:
		return reflect.DeepEqual(val.Interface(), reflect.Zero(val.Type()).Interface())
	}
}

// IsTruthy treats nil, false, zero numbers and empty strings or collections
// as false and everything else as true.
func IsTruthy(v any) bool {
	if v == nil {
		return false
	}
	val := DerefValue(reflect.ValueOf(v))
	switch val.Kind() {
	case reflect.Bool:
		return val.Bool()
	case reflect.Ptr, reflect.Interface:
		return !val.IsNil()
	case reflect.Invalid:
		return false
	}
	return !IsEmptyValue(val.Interface())
}

// IsBool reports whether v holds a boolean, as opposed to a truthy string or
// number.
func IsBool(v any) bool {
	if v == nil {
		return false
	}
	return DerefValue(reflect.ValueOf(v)).Kind() == reflect.Bool
}

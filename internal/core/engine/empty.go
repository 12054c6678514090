package engine

import "reflect"

// IsStructurallyEmpty reports whether v carries no usable shape:
//   - nil, nil pointers and nil interfaces
//   - empty strings, maps, slices and arrays
//   - every bool and every number, whatever its value
//   - patterns and functions, which have no enumerable content
//   - structs whose fields are all zero
func IsStructurallyEmpty(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *Pattern:
		return true
	case Template:
		return x.isZero()
	case string:
		return x == ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsStructurallyEmpty(rv.Elem().Interface())
	case reflect.Struct:
		return rv.IsZero()
	}
	return false
}

// isSequence reports slices and arrays
func isSequence(v interface{}) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// toSequence copies a slice or array into []interface{}
func toSequence(v interface{}) []interface{} {
	if seq, ok := v.([]interface{}); ok {
		return seq
	}
	rv := reflect.ValueOf(v)
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func isFunc(v interface{}) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

package schema

import "reflect"

// Columns returns column names of a model in declaration order.
func Columns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var res []string
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" {
			res = append(res, tag)
		}
	}
	return res
}

// Values returns column values of a model in the order of Columns.
// Nil pointers become SQL NULL and booleans become 0 or 1.
func Values(model any) []any {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()
	var res []any
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("db") == "" {
			continue
		}
		res = append(res, sqlValue(v.Field(i)))
	}
	return res
}

func sqlValue(f reflect.Value) any {
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return nil
		}
		f = f.Elem()
	}
	switch f.Kind() {
	case reflect.Bool:
		if f.Bool() {
			return 1
		}
		return 0
	case reflect.Int, reflect.Int64, reflect.Int32:
		return f.Int()
	case reflect.Float64, reflect.Float32:
		return f.Float()
	default:
		return f.String()
	}
}

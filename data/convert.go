package data

import (
	"fmt"
	"reflect"
	"time"
	"unicode"
	"unicode/utf8"
)

var timeType = reflect.TypeOf(time.Time{})

// New converts an arbitrary Go value into the template data model.  Struct
// field names are converted to lowerCamel; time.Time formats as RFC 3339.
// Passing an existing Value returns it unchanged; nil becomes Null.
func New(value interface{}) Value {
	if val, ok := value.(Value); ok {
		return val
	}

	if value == nil {
		return Null{}
	}

	// drill through pointers and interfaces to the underlying type
	var v = reflect.ValueOf(value)
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if !v.IsValid() {
		return Null{}
	}

	if v.Type() == timeType {
		return String(v.Interface().(time.Time).Format(time.RFC3339))
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(v.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(v.Float())
	case reflect.Bool:
		return Bool(v.Bool())
	case reflect.String:
		return String(v.String())
	case reflect.Slice:
		if v.IsNil() {
			return Null{}
		}
		var list = make(List, v.Len())
		for i := 0; i < v.Len(); i++ {
			list[i] = New(v.Index(i).Interface())
		}
		return list
	case reflect.Map:
		var m = make(Map, v.Len())
		for _, key := range v.MapKeys() {
			if key.Kind() != reflect.String {
				panic("map keys must be strings")
			}
			m[key.String()] = New(v.MapIndex(key).Interface())
		}
		return m
	case reflect.Struct:
		var m = make(Map)
		var valType = v.Type()
		for i := 0; i < valType.NumField(); i++ {
			if !v.Field(i).CanInterface() {
				continue
			}
			m[lowerCamel(valType.Field(i).Name)] = New(v.Field(i).Interface())
		}
		return m
	default:
		panic(fmt.Errorf("unexpected data type: %T (%v)", value, value))
	}
}

func lowerCamel(name string) string {
	var first, size = utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(first)) + name[size:]
}

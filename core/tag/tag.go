// Package tag fills zero-valued struct fields from `default:"..."` tags.
package tag

import (
	"encoding"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const (
	tagName   = "default"
	separator = ","
)

var durationType = reflect.TypeFor[time.Duration]()

// ApplyDefaults sets default values for zero-valued fields of the struct
// target points to. Nested structs and pointers to structs are walked;
// fields that already hold a value are left alone.
//
//	type Config struct {
//	    Host    string        `default:"localhost"`
//	    Timeout time.Duration `default:"3s"`
//	    Tags    []string      `default:"a,b"`
//	    Labels  map[string]string `default:"env:dev,team:core"`
//	}
func ApplyDefaults(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer {
		return ErrTargetMustBePointer
	}
	if v.IsNil() {
		return ErrTargetIsNil
	}
	if v.Elem().Kind() != reflect.Struct {
		return ErrUnsupportedType
	}
	return applyStruct(v.Elem(), "")
}

func applyStruct(v reflect.Value, prefix string) error {
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}

		if err := applyField(fv, field.Tag.Get(tagName), path); err != nil {
			return err
		}
	}
	return nil
}

func applyField(v reflect.Value, def, path string) error {
	switch v.Kind() {
	case reflect.Struct:
		if def != "" && isTextUnmarshaler(v) && v.IsZero() {
			return set(v, def, path)
		}
		return applyStruct(v, path)

	case reflect.Pointer:
		if v.Type().Elem().Kind() == reflect.Struct {
			if v.IsNil() {
				if def == "" && !hasDefaults(v.Type().Elem()) {
					return nil
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			return applyStruct(v.Elem(), path)
		}
		if !v.IsNil() || def == "" {
			return nil
		}
		v.Set(reflect.New(v.Type().Elem()))
		return set(v.Elem(), def, path)

	case reflect.Slice:
		for i := range v.Len() {
			elem := v.Index(i)
			if elem.Kind() == reflect.Struct {
				if err := applyStruct(elem, path+"["+strconv.Itoa(i)+"]"); err != nil {
					return err
				}
			}
		}
	}

	if def == "" || !v.IsZero() {
		return nil
	}
	return set(v, def, path)
}

// hasDefaults reports whether t or any nested struct declares a default tag.
func hasDefaults(t reflect.Type) bool {
	for i := range t.NumField() {
		f := t.Field(i)
		if _, ok := f.Tag.Lookup(tagName); ok {
			return true
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && hasDefaults(ft) {
			return true
		}
	}
	return false
}

func isTextUnmarshaler(v reflect.Value) bool {
	if !v.CanAddr() {
		return false
	}
	_, ok := v.Addr().Interface().(encoding.TextUnmarshaler)
	return ok
}

func set(v reflect.Value, s, path string) error {
	if err := parse(v, s); err != nil {
		return &FieldError{Path: path, Kind: v.Kind(), Value: s, Err: err}
	}
	return nil
}

func parse(v reflect.Value, s string) error {
	if v.CanAddr() {
		if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(s))
		}
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(s)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type() == durationType {
			d, err := time.ParseDuration(strings.TrimSpace(s))
			if err != nil {
				return err
			}
			v.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		v.SetBool(b)

	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			v.SetBytes([]byte(s))
			return nil
		}
		parts := strings.Split(s, separator)
		slice := reflect.MakeSlice(v.Type(), len(parts), len(parts))
		for i, part := range parts {
			if err := parse(slice.Index(i), strings.TrimSpace(part)); err != nil {
				return err
			}
		}
		v.Set(slice)

	case reflect.Map:
		m := reflect.MakeMap(v.Type())
		for pair := range strings.SplitSeq(s, separator) {
			k, val, ok := strings.Cut(pair, ":")
			if !ok {
				continue
			}
			key := reflect.New(v.Type().Key()).Elem()
			if err := parse(key, strings.TrimSpace(k)); err != nil {
				return err
			}
			elem := reflect.New(v.Type().Elem()).Elem()
			if err := parse(elem, strings.TrimSpace(val)); err != nil {
				return err
			}
			m.SetMapIndex(key, elem)
		}
		v.Set(m)

	default:
		return ErrUnsupportedType
	}
	return nil
}

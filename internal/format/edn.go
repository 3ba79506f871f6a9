package format

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN writes v as EDN. Struct fields are named by their json tags and
// keep declaration order; map keys are sorted. Keys become kebab-case
// keywords, so exitCode and exit_code both print as :exit-code.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	e := ednEncoder{pretty: pretty}
	_, err := io.WriteString(w, e.render(reflect.ValueOf(v), 0)+"\n")
	return err
}

type ednEncoder struct {
	pretty bool
}

func (e ednEncoder) render(v reflect.Value, level int) string {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return "nil"
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return "nil"
	}

	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.String:
		return strconv.Quote(v.String())
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return "nil"
		}
		items := make([]string, v.Len())
		for i := range items {
			items[i] = e.render(v.Index(i), level+1)
		}
		return e.collection("[", "]", items, level)
	case reflect.Map:
		if v.IsNil() {
			return "nil"
		}
		if v.Type().Key().Kind() != reflect.String {
			break
		}
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		entries := make([]string, 0, len(keys))
		for _, k := range keys {
			val := v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key()))
			entries = append(entries, ":"+ednKeyword(k)+" "+e.render(val, level+1))
		}
		return e.collection("{", "}", entries, level)
	case reflect.Struct:
		return e.collection("{", "}", e.structEntries(v, level), level)
	}
	return strconv.Quote(fmt.Sprintf("%v", v.Interface()))
}

func (e ednEncoder) structEntries(v reflect.Value, level int) []string {
	t := v.Type()
	var entries []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, omitEmpty, skip := jsonFieldName(f)
		if skip {
			continue
		}
		fv := v.Field(i)
		if omitEmpty && isEmptyValue(fv) {
			continue
		}
		entries = append(entries, ":"+ednKeyword(name)+" "+e.render(fv, level+1))
	}
	return entries
}

func (e ednEncoder) collection(start, end string, items []string, level int) string {
	if len(items) == 0 {
		return start + end
	}
	if !e.pretty {
		return start + strings.Join(items, " ") + end
	}
	inner := strings.Repeat("  ", level+1)
	return start + "\n" + inner + strings.Join(items, "\n"+inner) + "\n" + strings.Repeat("  ", level) + end
}

func jsonFieldName(f reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	return name, strings.Contains(","+opts+",", ",omitempty,"), false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.String, reflect.Array:
		return v.Len() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return v.IsZero()
}

// ednKeyword turns json-style keys into kebab-case keyword names.
func ednKeyword(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == '_' || r == ' ':
			b.WriteByte('-')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return b.String()
}

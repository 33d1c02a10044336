package types

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// UntranslatedField is a BilingualText that has text in some of the
// document's languages but not all of them.
type UntranslatedField struct {
	Path    string
	Missing []Locale
}

func (f UntranslatedField) String() string {
	locales := make([]string, len(f.Missing))
	for i, l := range f.Missing {
		locales[i] = string(l)
	}
	return fmt.Sprintf("%s (missing %s)", f.Path, strings.Join(locales, ", "))
}

var bilingualTextType = reflect.TypeOf(BilingualText{})

// Untranslated walks the whole document, component variables included, and
// returns every partially translated field. Fields empty in every language
// are unused and not reported.
func (d *Document) Untranslated() []UntranslatedField {
	if d == nil {
		return nil
	}
	w := &translationWalker{locales: d.Languages}
	w.walk("globals", reflect.ValueOf(d.Globals))
	w.walk("pages", reflect.ValueOf(d.Pages))
	w.walk("sections", reflect.ValueOf(d.Sections))
	return w.found
}

type translationWalker struct {
	locales []Locale
	found   []UntranslatedField
}

func (w *translationWalker) walk(path string, v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if !v.IsNil() {
			w.walk(path, v.Elem())
		}
	case reflect.Struct:
		if v.Type() == bilingualTextType {
			w.check(path, v.Interface().(BilingualText))
			return
		}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			w.walk(path+"."+fieldName(field), v.Field(i))
		}
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return
		}
		for i := 0; i < v.Len(); i++ {
			w.walk(fmt.Sprintf("%s[%d]", path, i), v.Index(i))
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			w.walk(path+"."+k.String(), v.MapIndex(k))
		}
	}
}

func (w *translationWalker) check(path string, t BilingualText) {
	if t.IsZero() {
		return
	}
	if missing := t.Missing(w.locales); len(missing) > 0 {
		w.found = append(w.found, UntranslatedField{Path: path, Missing: missing})
	}
}

// fieldName prefers the JSON name so paths match the document.
func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name[:1]) + f.Name[1:]
	}
	return name
}

// Package template substitutes named {placeholders} in endpoint paths.
package template

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/jikan-go/jikan/client/internal/errors"
)

type span struct {
	start, end int
	value      string
}

// Resolve replaces the first occurrence of {key} in tmpl with the string form
// of params[key]. Every key must have a placeholder in tmpl; keys are checked in
// sorted order so the reported parameter is stable. Placeholders without a
// matching key are left untouched.
func Resolve(tmpl string, params map[string]any) (string, error) {
	if len(params) == 0 {
		return tmpl, nil
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	spans := make([]span, 0, len(keys))
	for _, k := range keys {
		if strings.ContainsAny(k, "{}") {
			return "", &errors.ValidationError{Param: k, Template: tmpl, Reason: "must not contain braces"}
		}
		placeholder := "{" + k + "}"
		idx := strings.Index(tmpl, placeholder)
		if idx < 0 {
			return "", &errors.ValidationError{Param: k, Template: tmpl}
		}
		spans = append(spans, span{start: idx, end: idx + len(placeholder), value: String(params[k])})
	}

	// Splice against the original template so substituted values are never
	// scanned for placeholders themselves.
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	b.Grow(len(tmpl))
	prev := 0
	for _, s := range spans {
		b.WriteString(tmpl[prev:s.start])
		b.WriteString(s.value)
		prev = s.end
	}
	b.WriteString(tmpl[prev:])
	return b.String(), nil
}

// String renders a parameter value. nil renders as "" and pointers are
// dereferenced; everything else uses fmt.Sprint.
func String(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		if _, ok := rv.Interface().(fmt.Stringer); ok {
			break
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface())
}

// Package hamlet is a tiny "to be or not to be" assertion helper for tests.
//
//	must_be, wont_be := hamlet.Specifications(t)
//	must_be.Equal(42, answer)
//	wont_be.Nil(err)
package hamlet

import (
	"reflect"
	"strings"
	"testing"
)

type Hamlet struct {
	t        testing.TB
	expected bool
	prefix   string
}

func Specifications(t testing.TB) (Hamlet, Hamlet) {
	return Hamlet{t: t, expected: true, prefix: "must be"}, Hamlet{t: t, expected: false, prefix: "wont be"}
}

func (it Hamlet) check(outcome bool, what string, details ...interface{}) {
	it.t.Helper()
	if outcome != it.expected {
		it.t.Fatalf("%s %s, details: %#v", it.prefix, what, details)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	kind := reflect.ValueOf(value)
	switch kind.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return kind.IsNil()
	}
	return false
}

func (it Hamlet) Nil(value interface{}) {
	it.t.Helper()
	it.check(isNil(value), "nil", value)
}

func (it Hamlet) True(value bool) {
	it.t.Helper()
	it.check(value, "true", value)
}

func (it Hamlet) Equal(expected, actual interface{}) {
	it.t.Helper()
	it.check(reflect.DeepEqual(expected, actual), "equal", expected, actual)
}

func (it Hamlet) Same(expected, actual interface{}) {
	it.t.Helper()
	same := reflect.ValueOf(expected).Pointer() == reflect.ValueOf(actual).Pointer()
	it.check(same, "same", expected, actual)
}

func (it Hamlet) Length(expected int, actual interface{}) {
	it.t.Helper()
	it.check(reflect.ValueOf(actual).Len() == expected, "length", expected, actual)
}

func (it Hamlet) Text(expected string, actual interface{}) {
	it.t.Helper()
	value, ok := actual.(interface{ String() string })
	text := ""
	if ok {
		text = value.String()
	} else if plain, isString := actual.(string); isString {
		text = plain
	}
	it.check(text == expected, "text", expected, text)
}

func (it Hamlet) Contains(fragment, actual string) {
	it.t.Helper()
	it.check(strings.Contains(actual, fragment), "containing", fragment, actual)
}

func (it Hamlet) Panic(todo func()) {
	it.t.Helper()
	panicked := func() (result bool) {
		defer func() {
			result = recover() != nil
		}()
		todo()
		return false
	}()
	it.check(panicked, "panic")
}

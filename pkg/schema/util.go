package schema

import "reflect"

// deepEqualAny compares two decoded JSON values for structural equality,
// used by Keyword.Equals implementations across the catalog (spec.md §8
// property 2: "two documents parsed from the same JSON text are equal").
func deepEqualAny(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

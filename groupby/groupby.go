// Package groupby groups slice elements by key while preserving order.
//
// Unlike a map-based grouping, keys are matched by equality alone, so key
// types never need to be hashable: ByFunc accepts an arbitrary equality
// relation, which admits slice keys, struct keys containing slices, or
// approximate equality. The price is a linear scan over the groups found so
// far, O(n*g) for n elements and g distinct groups. In exchange the result
// is fully deterministic: groups appear in the order their keys first occur
// in the input, and every group keeps its elements in input order. No
// ordering is imposed on the keys themselves.
//
// # Usage
//
//	words := []string{"listen", "silent", "enlist", "google", "banana"}
//	byLength := groupby.By(words, func(w string) int { return len(w) })
//	// [{6 [listen silent enlist google banana]}]
//
//	nums := []int{1, 3, 7, 1, 2, 1, 2}
//	runs := groupby.Group(nums)
//	// [{1 [1 1 1]} {3 [3]} {7 [7]} {2 [2 2]}]
package groupby

// Grouping is one discovered key together with every element that mapped to
// it, in input order.
type Grouping[K, T any] struct {
	Key      K
	Elements []T
}

// ByFunc groups elements by the given key function, matching keys with the
// eq relation. Each element's key is compared against the keys discovered
// so far, in discovery order; the first match wins, and an unmatched key
// opens a new group at the end. eq must be reflexive and symmetric for the
// grouping to be coherent.
func ByFunc[T, K any](elements []T, key func(T) K, eq func(K, K) bool) []Grouping[K, T] {
	var groups []Grouping[K, T]
	for _, el := range elements {
		k := key(el)
		matched := false
		for i := range groups {
			if eq(groups[i].Key, k) {
				groups[i].Elements = append(groups[i].Elements, el)
				matched = true
				break
			}
		}
		if !matched {
			groups = append(groups, Grouping[K, T]{Key: k, Elements: []T{el}})
		}
	}
	return groups
}

// By groups elements by the given key function, comparing keys with ==.
func By[T any, K comparable](elements []T, key func(T) K) []Grouping[K, T] {
	return ByFunc(elements, key, func(a, b K) bool { return a == b })
}

// Group groups equal elements together, keyed by the element value itself.
func Group[T comparable](elements []T) []Grouping[T, T] {
	return By(elements, func(el T) T { return el })
}

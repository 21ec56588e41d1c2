package mutator

import (
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

// rebuild returns a fresh node copied from orig with set applied on top.
// Attributes, locations and every field set leaves alone come from orig;
// the intern factory is f, so the node takes part in interning.
func rebuild[S any, P interface {
	*N
	copyable[S]
}, N any](orig S, f metadata.InternFactory, set func(P)) P {
	cp := P(new(N))
	cp.Copy(orig, f)
	set(cp)
	return cp
}

// visitList applies f to every element of list. It returns list itself
// when no element changed, else a new slice, and reports which.
func visitList[T comparable](list []T, f func(T) T) ([]T, bool) {
	var out []T
	for i, x := range list {
		y := f(x)
		if out == nil && y != x {
			out = slices.Clone(list)
		}
		if out != nil {
			out[i] = y
		}
	}
	if out == nil {
		return list, false
	}
	return out, true
}

// walk is visitList for callers that only need the result.
func walk[T comparable](list []T, f func(T) T) []T {
	out, _ := visitList(list, f)
	return out
}

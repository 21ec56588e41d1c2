package mutator

import (
	"cmp"
	"math"
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

// sortAllTypes puts the copied type list of a module in the order of the
// original list. A type ranks at the first position a type with the same
// full name held in orig; types with no counterpart, such as helper types
// found in method bodies, go last and keep the order they were found in.
func sortAllTypes(names metadata.NameTable, orig, types []metadata.NamedTypeDefinition) {
	first := make(map[int]int, len(orig))
	for i, t := range orig {
		k := names.Key(metadata.TypeName(t))
		if _, ok := first[k]; !ok {
			first[k] = i
		}
	}
	rank := make(map[metadata.NamedTypeDefinition]int, len(types))
	for _, t := range types {
		r, ok := first[names.Key(metadata.TypeName(t))]
		if !ok {
			r = math.MaxInt
		}
		rank[t] = r
	}
	slices.SortStableFunc(types, func(a, b metadata.NamedTypeDefinition) int {
		return cmp.Compare(rank[a], rank[b])
	})
}

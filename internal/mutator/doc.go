// Package mutator holds the two traversal engines over metadata graphs.
//
// DeepCopier turns any graph rooted at a module or assembly into a fully
// independent mutable copy. Every node is copied at most once; sharing
// and cycles in the source carry over to the copy. Back pointers such as
// ContainingTypeDefinition are taken from the traversal context, so copied
// members point at copied containers.
//
// MutatingVisitor rewrites an already mutable graph in place. References
// are copy-on-write: a reference node is replaced only when one of its
// constituents changed, so unchanged references keep their identity.
//
// Neither engine is safe for concurrent use by overlapping traversals.
package mutator

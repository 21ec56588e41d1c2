// Package mutable provides the mutable implementation of the metadata
// object model. Every node type has getters satisfying the interfaces of
// package metadata, setters, and a Copy method that shallow-copies any
// metadata view of the same kind into the receiver. Copy clones every list
// it takes over, so mutating the copy never perturbs the source.
//
// Back pointers such as ContainingTypeDefinition are copied verbatim by
// Copy. Traversal engines overwrite them once the container has a copy of
// its own.
package mutable

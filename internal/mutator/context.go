package mutator

import "github.com/il2js/metamodel/internal/metadata"

// traversalContext records the innermost containers of the node being
// visited. Engines save it on entry to a container and restore it on exit,
// so it always reflects the current path from the root.
type traversalContext struct {
	unit      metadata.Unit
	namespace metadata.UnitNamespace
	typeDef   metadata.TypeDefinition
	method    metadata.MethodDefinition
	signature metadata.Signature
	alias     metadata.AliasForType
}

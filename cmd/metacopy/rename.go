package main

import (
	"strings"

	"github.com/il2js/metamodel/internal/host"
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

// renamer rewrites references to namespace types by full name. Targets in
// the System namespace become platform references; other targets are
// referenced in the unit of the type they replace.
type renamer struct {
	host    *host.Host
	renames map[string]string
	made    map[renameKey]metadata.TypeReference
	count   int
}

type renameKey struct {
	unit   string
	target string
}

func newRenamer(h *host.Host, renames map[string]string) *renamer {
	return &renamer{host: h, renames: renames, made: make(map[renameKey]metadata.TypeReference)}
}

// rewrite is installed as the RewriteTypeReference hook.
func (r *renamer) rewrite(ref metadata.TypeReference) metadata.TypeReference {
	nt, ok := ref.(metadata.NamespaceTypeReference)
	if !ok {
		return ref
	}
	target, ok := r.renames[metadata.TypeName(nt)]
	if !ok {
		return ref
	}
	ns := nt.ContainingUnitNamespace()
	if ns == nil || ns.Unit() == nil {
		return ref
	}
	unit := ns.Unit()
	key := renameKey{unit: unit.Name(), target: target}
	if t, ok := r.made[key]; ok {
		r.count++
		return t
	}
	t := r.reference(unit, target, nt.GenericParameterCount())
	r.made[key] = t
	r.count++
	return t
}

func (r *renamer) reference(unit metadata.UnitReference, target string, arity int) metadata.TypeReference {
	ns, name := "", target
	if i := strings.LastIndexByte(target, '.'); i >= 0 {
		ns, name = target[:i], target[i+1:]
	}
	if ns == "System" && arity == 0 {
		if t := r.host.Platform().Lookup(name); t != nil {
			return t
		}
	}
	var nsRef metadata.UnitNamespaceReference = mutable.NewRootUnitNamespaceReference(unit)
	if ns != "" {
		for _, seg := range strings.Split(ns, ".") {
			nsRef = mutable.NewNestedUnitNamespaceReference(nsRef, seg)
		}
	}
	return mutable.NewNamespaceTypeReference(nsRef, name, arity, r.host.InternFactory())
}

package mutator

import (
	"context"

	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

// MutatingVisitor rewrites a mutable graph in place. Definitions are
// changed where they stand. References are copy-on-write: a reference is
// replaced by a new node only when one of its constituent references came
// back different, otherwise the original node is kept.
//
// Nodes that are not mutable are left alone. With visitImmutable set they
// are still walked, read-only, so hooks observe them.
type MutatingVisitor struct {
	engine

	visitImmutable bool
	active         map[any]struct{}
	observed       map[any]struct{}
}

// NewMutatingVisitor returns a visitor using the services of h.
func NewMutatingVisitor(h metadata.Host, visitImmutable bool, opts ...Option) *MutatingVisitor {
	return &MutatingVisitor{
		engine:         newEngine("visitor", h, opts),
		visitImmutable: visitImmutable,
		active:         make(map[any]struct{}),
		observed:       make(map[any]struct{}),
	}
}

// VisitModule walks m. An assembly is walked with VisitAssembly. The
// result is m itself; its contents may have been rewritten.
func (v *MutatingVisitor) VisitModule(ctx context.Context, m metadata.Module) (metadata.Module, error) {
	if m == nil {
		return nil, ErrNilRoot
	}
	if a, ok := m.(metadata.Assembly); ok {
		out, err := v.VisitAssembly(ctx, a)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	if err := v.run(ctx, "mutator.VisitModule", m, v.reset, func() {
		v.module(m)
	}); err != nil {
		return nil, err
	}
	return m, nil
}

// VisitAssembly walks a and its member modules.
func (v *MutatingVisitor) VisitAssembly(ctx context.Context, a metadata.Assembly) (metadata.Assembly, error) {
	if a == nil {
		return nil, ErrNilRoot
	}
	if err := v.run(ctx, "mutator.VisitAssembly", a, v.reset, func() {
		v.assembly(a)
	}); err != nil {
		return nil, err
	}
	return a, nil
}

// VisitTypeReference returns r, or a new reference when something r
// refers to was rewritten. Results are cached until the next traversal.
func (v *MutatingVisitor) VisitTypeReference(r metadata.TypeReference) metadata.TypeReference {
	return v.typeRef(r)
}

// VisitMethodReference is VisitTypeReference for method references.
func (v *MutatingVisitor) VisitMethodReference(r metadata.MethodReference) metadata.MethodReference {
	return v.methodRef(r)
}

// VisitFieldReference is VisitTypeReference for field references.
func (v *MutatingVisitor) VisitFieldReference(r metadata.FieldReference) metadata.FieldReference {
	return v.fieldRef(r)
}

func (v *MutatingVisitor) reset() {
	v.active = make(map[any]struct{})
	v.observed = make(map[any]struct{})
}

// observe hands n to the Observe hook the first time n is reached. A
// definition can be reached both as itself and as a reference.
func (v *MutatingVisitor) observe(n any) {
	f := v.opts.hooks.Observe
	if f == nil {
		return
	}
	if _, ok := v.observed[n]; ok {
		return
	}
	v.observed[n] = struct{}{}
	f(n)
}

// enter reports whether the node n should be walked now. Every node is
// observed once. A node that is not mutable is walked only when the
// visitor walks immutable nodes too.
func (v *MutatingVisitor) enter(n any, isMutable bool) bool {
	if v.halted() || mutable.IsDummy(n) {
		return false
	}
	if _, ok := v.cache.value(n); ok {
		v.stats.cacheHits++
		return false
	}
	v.cache.setValue(n, n)
	v.observe(n)
	if !isMutable && !v.visitImmutable {
		return false
	}
	v.stats.values++
	return true
}

// settle records what visiting the reference orig produced.
func (v *MutatingVisitor) settle(orig, out any) {
	if out == orig {
		v.cache.refs[orig] = orig
		v.stats.refsKept++
		return
	}
	v.cache.setRef(orig, out)
	v.stats.refsNew++
}

// begin marks r as being visited. It reports false when r is already on
// the way down, which happens for references reaching themselves through
// a generic parameter; the inner occurrence is left as it is.
func (v *MutatingVisitor) begin(r any) bool {
	if _, ok := v.active[r]; ok {
		return false
	}
	v.active[r] = struct{}{}
	return true
}

func (v *MutatingVisitor) end(r any) { delete(v.active, r) }

package mutable

import (
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

type tristate uint8

const (
	unknown tristate = iota
	yes
	no
)

func tristateOf(b bool) tristate {
	if b {
		return yes
	}
	return no
}

// genericParameter holds what type and method generic parameters share.
// Reference and value type derivability is computed on first use and
// reset whenever flags or constraints change.
type genericParameter struct {
	reference
	internFactory metadata.InternFactory
	platformType  metadata.PlatformType
	name          string
	index         int
	constraints   []metadata.TypeReference
	flags         metadata.GenericParameterFlags

	isReferenceType tristate
	isValueType     tristate
	deriving        bool
}

func (p *genericParameter) Name() string                              { return p.name }
func (p *genericParameter) SetName(v string)                          { p.name = v }
func (p *genericParameter) Index() int                                { return p.index }
func (p *genericParameter) SetIndex(v int)                            { p.index = v }
func (p *genericParameter) InternFactory() metadata.InternFactory     { return p.internFactory }
func (p *genericParameter) SetInternFactory(f metadata.InternFactory) { p.internFactory = f }
func (p *genericParameter) PlatformType() metadata.PlatformType       { return p.platformType }
func (p *genericParameter) Constraints() []metadata.TypeReference     { return p.constraints }
func (p *genericParameter) GenericFlags() metadata.GenericParameterFlags {
	return p.flags
}
func (p *genericParameter) ResolvedType() metadata.TypeDefinition { return DummyType }

// SetPlatformType supplies the well-known types consulted when deriving
// IsReferenceType from the constraints.
func (p *genericParameter) SetPlatformType(v metadata.PlatformType) {
	p.platformType = v
	p.resetDerived()
}

func (p *genericParameter) SetConstraints(v []metadata.TypeReference) {
	p.constraints = v
	p.resetDerived()
}

func (p *genericParameter) SetGenericFlags(v metadata.GenericParameterFlags) {
	p.flags = v
	p.resetDerived()
}

func (p *genericParameter) resetDerived() {
	p.isReferenceType = unknown
	p.isValueType = unknown
}

// IsReferenceType reports whether every instantiation is a reference
// type: the parameter has the class constraint, or a constraint that is a
// class other than System.Object, System.ValueType and System.Enum, or a
// constraint that is itself a generic parameter known to be a reference
// type.
func (p *genericParameter) IsReferenceType() bool {
	if p.isReferenceType == unknown {
		if p.deriving {
			return false
		}
		p.deriving = true
		p.isReferenceType = tristateOf(p.deriveReferenceType())
		p.deriving = false
	}
	return p.isReferenceType == yes
}

// IsValueType reports whether every instantiation is a value type.
func (p *genericParameter) IsValueType() bool {
	if p.isValueType == unknown {
		if p.deriving {
			return false
		}
		p.deriving = true
		p.isValueType = tristateOf(p.deriveValueType())
		p.deriving = false
	}
	return p.isValueType == yes
}

func (p *genericParameter) deriveReferenceType() bool {
	if p.flags.MustBeReferenceType {
		return true
	}
	if p.flags.MustBeValueType {
		return false
	}
	for _, c := range p.constraints {
		if _, ok := c.(metadata.GenericParameterReference); ok {
			if gp := resolveGenericParameter(c); gp != nil && gp.IsReferenceType() {
				return true
			}
			continue
		}
		if p.isPlatformBase(c) {
			continue
		}
		def := c.ResolvedType()
		if IsDummy(def) || def.Flags().IsInterface || def.IsValueType() {
			continue
		}
		return true
	}
	return false
}

func (p *genericParameter) deriveValueType() bool {
	if p.flags.MustBeValueType {
		return true
	}
	for _, c := range p.constraints {
		if gp := resolveGenericParameter(c); gp != nil && gp.IsValueType() {
			return true
		}
	}
	return false
}

// isPlatformBase reports whether c is one of the classes that say nothing
// about reference-ness of the parameter.
func (p *genericParameter) isPlatformBase(c metadata.TypeReference) bool {
	if p.platformType == nil {
		return false
	}
	for _, t := range []metadata.TypeReference{
		p.platformType.SystemObject(),
		p.platformType.SystemValueType(),
		p.platformType.SystemEnum(),
	} {
		if SameType(c, t) {
			return true
		}
	}
	return false
}

func (p *genericParameter) copyGenericParameter(from metadata.GenericParameter, f metadata.InternFactory) {
	p.copyReference(from)
	p.internFactory = f
	p.name = from.Name()
	p.index = from.Index()
	p.constraints = slices.Clone(from.Constraints())
	p.flags = from.GenericFlags()
	if src, ok := from.(interface{ PlatformType() metadata.PlatformType }); ok {
		p.platformType = src.PlatformType()
	}
	p.resetDerived()
}

// GenericTypeParameter is a generic parameter owned by a type.
type GenericTypeParameter struct {
	genericParameter
	definingType metadata.TypeDefinition
}

// NewGenericTypeParameter returns parameter index of definingType.
func NewGenericTypeParameter(definingType metadata.TypeDefinition, name string, index int, f metadata.InternFactory) *GenericTypeParameter {
	p := &GenericTypeParameter{definingType: definingType}
	p.name = name
	p.index = index
	p.internFactory = f
	return p
}

func (p *GenericTypeParameter) DefiningTypeDefinition() metadata.TypeDefinition { return p.definingType }
func (p *GenericTypeParameter) SetDefiningTypeDefinition(v metadata.TypeDefinition) {
	p.definingType = v
}
func (p *GenericTypeParameter) DefiningType() metadata.TypeReference {
	if p.definingType == nil {
		return nil
	}
	return p.definingType
}
func (p *GenericTypeParameter) InternedKey() uint { return typeKey(p.internFactory, p) }

func (p *GenericTypeParameter) Copy(from metadata.GenericTypeParameter, f metadata.InternFactory) {
	p.copyGenericParameter(from, f)
	p.definingType = from.DefiningTypeDefinition()
}

// GenericMethodParameter is a generic parameter owned by a method.
type GenericMethodParameter struct {
	genericParameter
	definingMethod metadata.MethodDefinition
}

// NewGenericMethodParameter returns parameter index of definingMethod.
func NewGenericMethodParameter(definingMethod metadata.MethodDefinition, name string, index int, f metadata.InternFactory) *GenericMethodParameter {
	p := &GenericMethodParameter{definingMethod: definingMethod}
	p.name = name
	p.index = index
	p.internFactory = f
	return p
}

func (p *GenericMethodParameter) DefiningMethodDefinition() metadata.MethodDefinition {
	return p.definingMethod
}
func (p *GenericMethodParameter) SetDefiningMethodDefinition(v metadata.MethodDefinition) {
	p.definingMethod = v
}
func (p *GenericMethodParameter) DefiningMethod() metadata.MethodReference {
	if p.definingMethod == nil {
		return nil
	}
	return p.definingMethod
}
func (p *GenericMethodParameter) InternedKey() uint { return typeKey(p.internFactory, p) }

func (p *GenericMethodParameter) Copy(from metadata.GenericMethodParameter, f metadata.InternFactory) {
	p.copyGenericParameter(from, f)
	p.definingMethod = from.DefiningMethodDefinition()
}

package mutable

import (
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

type metadataExpression struct {
	expressionType metadata.TypeReference
	locations      []metadata.Location
}

func (e *metadataExpression) Type() metadata.TypeReference       { return e.expressionType }
func (e *metadataExpression) SetType(v metadata.TypeReference)   { e.expressionType = v }
func (e *metadataExpression) Locations() []metadata.Location     { return e.locations }
func (e *metadataExpression) SetLocations(v []metadata.Location) { e.locations = v }

func (e *metadataExpression) copyExpression(from metadata.MetadataExpression) {
	e.expressionType = from.Type()
	e.locations = slices.Clone(from.Locations())
}

// MetadataConstant is a literal compile time value.
type MetadataConstant struct {
	metadataExpression
	value any
}

// NewMetadataConstant returns a constant of type t.
func NewMetadataConstant(t metadata.TypeReference, value any) *MetadataConstant {
	c := &MetadataConstant{value: value}
	c.expressionType = t
	return c
}

func (c *MetadataConstant) Value() any     { return c.value }
func (c *MetadataConstant) SetValue(v any) { c.value = v }

func (c *MetadataConstant) Copy(from metadata.MetadataConstant, _ metadata.InternFactory) {
	c.copyExpression(from)
	c.value = from.Value()
}

// MetadataCreateArray is an array literal.
type MetadataCreateArray struct {
	metadataExpression
	elementType  metadata.TypeReference
	rank         uint32
	sizes        []uint64
	lowerBounds  []int64
	initializers []metadata.MetadataExpression
}

func (a *MetadataCreateArray) ElementType() metadata.TypeReference     { return a.elementType }
func (a *MetadataCreateArray) SetElementType(v metadata.TypeReference) { a.elementType = v }
func (a *MetadataCreateArray) Rank() uint32                            { return a.rank }
func (a *MetadataCreateArray) SetRank(v uint32)                        { a.rank = v }
func (a *MetadataCreateArray) Sizes() []uint64                         { return a.sizes }
func (a *MetadataCreateArray) SetSizes(v []uint64)                     { a.sizes = v }
func (a *MetadataCreateArray) LowerBounds() []int64                    { return a.lowerBounds }
func (a *MetadataCreateArray) SetLowerBounds(v []int64)                { a.lowerBounds = v }
func (a *MetadataCreateArray) Initializers() []metadata.MetadataExpression {
	return a.initializers
}
func (a *MetadataCreateArray) SetInitializers(v []metadata.MetadataExpression) {
	a.initializers = v
}

func (a *MetadataCreateArray) Copy(from metadata.MetadataCreateArray, _ metadata.InternFactory) {
	a.copyExpression(from)
	a.elementType = from.ElementType()
	a.rank = from.Rank()
	a.sizes = slices.Clone(from.Sizes())
	a.lowerBounds = slices.Clone(from.LowerBounds())
	a.initializers = slices.Clone(from.Initializers())
}

// MetadataNamedArgument assigns a field or property of an attribute.
type MetadataNamedArgument struct {
	metadataExpression
	argumentName  string
	argumentValue metadata.MetadataExpression
	isField       bool
}

func (n *MetadataNamedArgument) ArgumentName() string     { return n.argumentName }
func (n *MetadataNamedArgument) SetArgumentName(v string) { n.argumentName = v }
func (n *MetadataNamedArgument) ArgumentValue() metadata.MetadataExpression {
	return n.argumentValue
}
func (n *MetadataNamedArgument) SetArgumentValue(v metadata.MetadataExpression) {
	n.argumentValue = v
}
func (n *MetadataNamedArgument) IsField() bool     { return n.isField }
func (n *MetadataNamedArgument) SetIsField(v bool) { n.isField = v }

func (n *MetadataNamedArgument) Copy(from metadata.MetadataNamedArgument, _ metadata.InternFactory) {
	n.copyExpression(from)
	n.argumentName = from.ArgumentName()
	n.argumentValue = from.ArgumentValue()
	n.isField = from.IsField()
}

// MetadataTypeOf is a typeof(T) expression.
type MetadataTypeOf struct {
	metadataExpression
	typeToGet metadata.TypeReference
}

func (t *MetadataTypeOf) TypeToGet() metadata.TypeReference     { return t.typeToGet }
func (t *MetadataTypeOf) SetTypeToGet(v metadata.TypeReference) { t.typeToGet = v }

func (t *MetadataTypeOf) Copy(from metadata.MetadataTypeOf, _ metadata.InternFactory) {
	t.copyExpression(from)
	t.typeToGet = from.TypeToGet()
}

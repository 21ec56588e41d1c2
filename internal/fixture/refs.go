package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

// Reference syntax follows IL assembler notation:
//
//	int32 string object           platform aliases
//	[mscorlib]System.Text.Encoder  type of another unit
//	Ns.Box`1  Ns.Box<int32>        generic type, generic instance
//	Ns.Outer/Inner                 nested type
//	T[]  T[,]  T*  T&              vector, matrix, pointers
//	!0  !!0                        generic parameters of the enclosing
//	                               type and method
//
// Member references are "[instance] <type> <owner>::<name>" for fields and
// the same followed by "[<args>](<param types>)" for methods.

var aliases = map[string]string{
	"void":    "Void",
	"bool":    "Boolean",
	"char":    "Char",
	"int8":    "SByte",
	"uint8":   "Byte",
	"int16":   "Int16",
	"uint16":  "UInt16",
	"int32":   "Int32",
	"uint32":  "UInt32",
	"int64":   "Int64",
	"uint64":  "UInt64",
	"float32": "Single",
	"float64": "Double",
	"nint":    "IntPtr",
	"nuint":   "UIntPtr",
	"string":  "String",
	"object":  "Object",
}

// scope is what generic parameter references resolve against.
type scope struct {
	typeDef metadata.TypeDefinition
	method  metadata.MethodDefinition
}

// parseError is a reference syntax or resolution error at a byte offset
// into the reference text.
type parseError struct {
	offset int
	msg    string
}

func (e *parseError) Error() string { return e.msg }

type refParser struct {
	u   *unitBuilder
	sc  scope
	src string
	i   int
}

func (p *refParser) failf(format string, args ...any) error {
	return &parseError{offset: p.i, msg: fmt.Sprintf(format, args...)}
}

func (p *refParser) done() bool { return p.i >= len(p.src) }

func (p *refParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.src[p.i]
}

func (p *refParser) eat(s string) bool {
	if strings.HasPrefix(p.src[p.i:], s) {
		p.i += len(s)
		return true
	}
	return false
}

func (p *refParser) skipSpace() {
	for !p.done() && p.src[p.i] == ' ' {
		p.i++
	}
}

func identByte(c byte) bool {
	return c == '_' || c == '.' || c == '`' || c == '$' || c == '\'' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func (p *refParser) ident() (string, error) {
	start := p.i
	for !p.done() && identByte(p.src[p.i]) {
		p.i++
	}
	if p.i == start {
		return "", p.failf("expected a name")
	}
	return p.src[start:p.i], nil
}

func (p *refParser) number() (int, error) {
	start := p.i
	for !p.done() && '0' <= p.src[p.i] && p.src[p.i] <= '9' {
		p.i++
	}
	n, err := strconv.Atoi(p.src[start:p.i])
	if err != nil {
		p.i = start
		return 0, p.failf("expected a number")
	}
	return n, nil
}

// splitArity separates a trailing `n from name.
func splitArity(name string) (string, int, bool) {
	i := strings.LastIndexByte(name, '`')
	if i < 0 {
		return name, 0, false
	}
	n, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return name, 0, false
	}
	return name[:i], n, true
}

// typeRef parses a complete type reference.
func (p *refParser) typeRef() (metadata.TypeReference, error) {
	p.skipSpace()
	t, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.eat("[]"):
			t = mutable.NewVector(t, p.u.factory)
		case p.peek() == '[':
			p.i++
			rank := uint32(1)
			for p.eat(",") {
				rank++
			}
			if !p.eat("]") {
				return nil, p.failf("expected ']' closing array rank")
			}
			t = mutable.NewMatrix(t, rank, p.u.factory)
		case p.eat("*"):
			t = mutable.NewPointer(t, p.u.factory)
		case p.eat("&"):
			t = mutable.NewManagedPointer(t, p.u.factory)
		default:
			return t, nil
		}
	}
}

func (p *refParser) primary() (metadata.TypeReference, error) {
	switch {
	case p.eat("!!"):
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		if p.sc.method == nil {
			return nil, p.failf("!!%d outside of a generic method", n)
		}
		params := p.sc.method.GenericParameters()
		if n >= len(params) {
			return nil, p.failf("method %s has no generic parameter %d", p.sc.method.Name(), n)
		}
		return params[n], nil
	case p.eat("!"):
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		if p.sc.typeDef == nil {
			return nil, p.failf("!%d outside of a generic type", n)
		}
		params := p.sc.typeDef.GenericParameters()
		if n >= len(params) {
			return nil, p.failf("type has no generic parameter %d", n)
		}
		return params[n], nil
	}
	return p.named()
}

func (p *refParser) typeArgs() ([]metadata.TypeReference, error) {
	if !p.eat("<") {
		return nil, nil
	}
	var args []metadata.TypeReference
	for {
		t, err := p.typeRef()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		p.skipSpace()
		if p.eat(">") {
			return args, nil
		}
		if !p.eat(",") {
			return nil, p.failf("expected ',' or '>' in type arguments")
		}
	}
}

// named parses [unit]Ns.Name<args>/Nested<args>...
func (p *refParser) named() (metadata.TypeReference, error) {
	unit := ""
	if p.eat("[") {
		start := p.i
		for !p.done() && p.peek() != ']' {
			p.i++
		}
		unit = strings.TrimSpace(p.src[start:p.i])
		if !p.eat("]") || unit == "" {
			return nil, p.failf("expected a unit name in brackets")
		}
	}
	start := p.i
	full, err := p.ident()
	if err != nil {
		return nil, err
	}
	name, arity, explicit := splitArity(full)
	args, err := p.typeArgs()
	if err != nil {
		return nil, err
	}
	if explicit && args != nil && arity != len(args) {
		return nil, &parseError{offset: start, msg: fmt.Sprintf("%s expects %d type arguments, got %d", full, arity, len(args))}
	}
	if !explicit {
		arity = len(args)
	}

	var cur metadata.TypeReference
	if unit == "" && arity == 0 && !strings.Contains(name, ".") && p.peek() != '/' {
		if sys, ok := aliases[name]; ok {
			cur, err = p.u.platformType(sys)
			if err != nil {
				return nil, &parseError{offset: start, msg: err.Error()}
			}
			return cur, nil
		}
	}
	top, err := p.u.namespaceType(unit, name, arity)
	if err != nil {
		return nil, &parseError{offset: start, msg: err.Error()}
	}
	cur = p.u.instantiate(top, args)

	for p.eat("/") {
		start = p.i
		seg, err := p.ident()
		if err != nil {
			return nil, err
		}
		segName, segArity, segExplicit := splitArity(seg)
		segArgs, err := p.typeArgs()
		if err != nil {
			return nil, err
		}
		if !segExplicit {
			segArity = len(segArgs)
		}
		nested, err := p.u.nestedType(cur, segName, segArity)
		if err != nil {
			return nil, &parseError{offset: start, msg: err.Error()}
		}
		cur = p.u.instantiate(nested, segArgs)
	}
	return cur, nil
}

// memberSignature is the parsed form of a member reference.
type memberSignature struct {
	instance bool
	typ      metadata.TypeReference
	owner    metadata.TypeReference
	name     string
	args     []metadata.TypeReference
	params   []metadata.TypeReference
	isMethod bool
}

func (p *refParser) member() (*memberSignature, error) {
	p.skipSpace()
	sig := &memberSignature{}
	if p.eat("instance ") {
		sig.instance = true
	}
	var err error
	if sig.typ, err = p.typeRef(); err != nil {
		return nil, err
	}
	if p.peek() != ' ' {
		return nil, p.failf("expected a space after the member type")
	}
	p.skipSpace()
	if sig.owner, err = p.typeRef(); err != nil {
		return nil, err
	}
	if !p.eat("::") {
		return nil, p.failf("expected '::' after the owning type")
	}
	if sig.name, err = p.ident(); err != nil {
		return nil, err
	}
	if sig.args, err = p.typeArgs(); err != nil {
		return nil, err
	}
	if p.eat("(") {
		sig.isMethod = true
		p.skipSpace()
		if !p.eat(")") {
			for {
				t, err := p.typeRef()
				if err != nil {
					return nil, err
				}
				sig.params = append(sig.params, t)
				p.skipSpace()
				if p.eat(")") {
					break
				}
				if !p.eat(",") {
					return nil, p.failf("expected ',' or ')' in parameter list")
				}
			}
		}
	}
	p.skipSpace()
	if !p.done() {
		return nil, p.failf("unexpected %q", p.src[p.i:])
	}
	return sig, nil
}

// ownerPath parses "<owner>::<name>", used for entry points and property
// accessors.
func (p *refParser) ownerPath() (metadata.TypeReference, string, error) {
	owner, err := p.typeRef()
	if err != nil {
		return nil, "", err
	}
	if !p.eat("::") {
		return nil, "", p.failf("expected '::' after the owning type")
	}
	name, err := p.ident()
	if err != nil {
		return nil, "", err
	}
	if !p.done() {
		return nil, "", p.failf("unexpected %q", p.src[p.i:])
	}
	return owner, name, nil
}

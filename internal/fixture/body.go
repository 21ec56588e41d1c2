package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/il2js/metamodel/internal/diag"
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

type operandKind uint8

const (
	noOperand operandKind = iota
	int32Operand
	int64Operand
	float64Operand
	stringOperand
	argOperand
	localOperand
	fieldOperand
	methodOperand
	typeOperand
	branchOperand
	switchOperand
)

var operandKinds = map[metadata.OperationCode]operandKind{
	metadata.OpLdarg:     argOperand,
	metadata.OpStarg:     argOperand,
	metadata.OpLdloc:     localOperand,
	metadata.OpStloc:     localOperand,
	metadata.OpLdcI4:     int32Operand,
	metadata.OpLdcI8:     int64Operand,
	metadata.OpLdcR8:     float64Operand,
	metadata.OpLdstr:     stringOperand,
	metadata.OpLdfld:     fieldOperand,
	metadata.OpLdflda:    fieldOperand,
	metadata.OpStfld:     fieldOperand,
	metadata.OpLdsfld:    fieldOperand,
	metadata.OpStsfld:    fieldOperand,
	metadata.OpCall:      methodOperand,
	metadata.OpCallvirt:  methodOperand,
	metadata.OpNewobj:    methodOperand,
	metadata.OpLdftn:     methodOperand,
	metadata.OpCalli:     typeOperand,
	metadata.OpNewarr:    typeOperand,
	metadata.OpLdtoken:   typeOperand,
	metadata.OpBox:       typeOperand,
	metadata.OpUnbox:     typeOperand,
	metadata.OpCastclass: typeOperand,
	metadata.OpIsinst:    typeOperand,
	metadata.OpInitobj:   typeOperand,
	metadata.OpBr:        branchOperand,
	metadata.OpBrtrue:    branchOperand,
	metadata.OpBrfalse:   branchOperand,
	metadata.OpSwitch:    switchOperand,
}

// body builds the locals and instructions of a method. The offset of an
// instruction is its index in the body.
func (u *unitBuilder) body(md *mutable.MethodDefinition, ms *methodSpec) *mutable.MethodBody {
	sc := scope{typeDef: md.ContainingTypeDefinition(), method: md}
	body := mutable.NewMethodBody(md)

	locals := make([]metadata.LocalDefinition, 0, len(ms.Locals))
	for _, ls := range ms.Locals {
		l := mutable.NewLocalDefinition(md, ls.Name, u.parseType(ls.Type, sc))
		l.SetIsReference(ls.Ref)
		locals = append(locals, l)
	}
	body.SetLocalVariables(locals)

	ops := make([]metadata.Operation, 0, len(ms.Body))
	for i, t := range ms.Body {
		if op := u.operation(md, locals, t, uint32(i), sc); op != nil {
			ops = append(ops, op)
		}
	}
	body.SetOperations(ops)
	return body
}

func (u *unitBuilder) operation(md *mutable.MethodDefinition, locals []metadata.LocalDefinition, t textSpec, offset uint32, sc scope) metadata.Operation {
	text := strings.TrimSpace(t.text)
	mnemonic, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)
	code, ok := metadata.ParseOperationCode(mnemonic)
	if !ok {
		u.errorf(t.at, diag.CodeFixtureUnknownOpcode, "unknown instruction %q", mnemonic)
		return nil
	}
	kind := operandKinds[code]
	if kind == noOperand {
		if rest != "" {
			u.errorf(t.at, diag.CodeFixtureInvalidOperand, "%s takes no operand", code)
			return nil
		}
		return mutable.NewOperation(code, offset, nil)
	}
	if rest == "" {
		u.errorf(t.at, diag.CodeFixtureInvalidOperand, "%s needs an operand", code)
		return nil
	}
	operand := textSpec{text: rest, at: pos{line: t.at.line, col: t.at.col + strings.Index(t.text, rest)}}

	value, err := u.operand(kind, md, locals, operand, sc)
	if err != nil {
		u.errorf(operand.at, diag.CodeFixtureInvalidOperand, "%s: %v", code, err)
		return nil
	}
	if value == nil {
		return nil
	}
	return mutable.NewOperation(code, offset, value)
}

// operand parses the operand of an instruction. A nil value with a nil
// error means a reference failed and was already reported.
func (u *unitBuilder) operand(kind operandKind, md *mutable.MethodDefinition, locals []metadata.LocalDefinition, t textSpec, sc scope) (any, error) {
	switch kind {
	case int32Operand:
		n, err := strconv.ParseInt(t.text, 0, 32)
		return int32(n), err
	case int64Operand:
		return strconv.ParseInt(t.text, 0, 64)
	case float64Operand:
		return strconv.ParseFloat(t.text, 64)
	case stringOperand:
		return strconv.Unquote(t.text)
	case argOperand:
		return parameterOperand(md, t.text)
	case localOperand:
		return localVariableOperand(locals, t.text)
	case fieldOperand:
		if f := u.fieldRef(t, sc); f != nil {
			return f, nil
		}
	case methodOperand:
		if m := u.methodRef(t, sc); m != nil {
			return m, nil
		}
	case typeOperand:
		if r := u.parseType(t, sc); r != nil {
			return r, nil
		}
	case branchOperand:
		n, err := strconv.ParseUint(t.text, 10, 32)
		return uint32(n), err
	case switchOperand:
		return switchTargets(t.text)
	}
	return nil, nil
}

// parameterOperand accepts a parameter name or index.
func parameterOperand(md *mutable.MethodDefinition, s string) (metadata.ParameterDefinition, error) {
	params := md.ParameterDefinitions()
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= len(params) {
			return nil, fmt.Errorf("method %s has no parameter %d", md.Name(), n)
		}
		return params[n], nil
	}
	for _, p := range params {
		if p.Name() == s {
			return p, nil
		}
	}
	return nil, fmt.Errorf("method %s has no parameter %s", md.Name(), s)
}

// localVariableOperand accepts a local name or index.
func localVariableOperand(locals []metadata.LocalDefinition, s string) (metadata.LocalDefinition, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= len(locals) {
			return nil, fmt.Errorf("no local %d", n)
		}
		return locals[n], nil
	}
	for _, l := range locals {
		if l.Name() == s {
			return l, nil
		}
	}
	return nil, fmt.Errorf("no local %s", s)
}

// switchTargets reads "(t1, t2, ...)".
func switchTargets(s string) ([]uint32, error) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("switch targets must be parenthesized")
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return []uint32{}, nil
	}
	parts := strings.Split(inner, ",")
	out := make([]uint32, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, err
		}
		out[i] = uint32(n)
	}
	return out, nil
}

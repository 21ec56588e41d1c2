package metadata

import "fmt"

// Visibility of a type member or nested type.
type Visibility uint8

const (
	VisibilityDefault Visibility = iota
	VisibilityPrivate
	VisibilityFamilyAndAssembly
	VisibilityAssembly
	VisibilityFamily
	VisibilityFamilyOrAssembly
	VisibilityPublic
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityFamilyAndAssembly:
		return "famandassem"
	case VisibilityAssembly:
		return "assembly"
	case VisibilityFamily:
		return "family"
	case VisibilityFamilyOrAssembly:
		return "famorassem"
	case VisibilityPublic:
		return "public"
	default:
		return "default"
	}
}

// Variance of a generic type parameter.
type Variance uint8

const (
	NonVariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "out"
	case Contravariant:
		return "in"
	default:
		return ""
	}
}

// CallingConvention is the calling convention of a signature. The low
// nibble is the convention kind, the high bits are flags.
type CallingConvention uint8

const (
	CallingConventionDefault        CallingConvention = 0x0
	CallingConventionC              CallingConvention = 0x1
	CallingConventionStandard       CallingConvention = 0x2
	CallingConventionThisCall       CallingConvention = 0x3
	CallingConventionFastCall       CallingConvention = 0x4
	CallingConventionExtraArguments CallingConvention = 0x5
	CallingConventionGeneric        CallingConvention = 0x10
	CallingConventionHasThis        CallingConvention = 0x20
	CallingConventionExplicitThis   CallingConvention = 0x40
)

// HasThis reports whether the signature takes an implicit this argument.
func (c CallingConvention) HasThis() bool { return c&CallingConventionHasThis != 0 }

// IsGeneric reports whether the signature carries generic parameters.
func (c CallingConvention) IsGeneric() bool { return c&CallingConventionGeneric != 0 }

// LayoutKind describes how the fields of a type are laid out.
type LayoutKind uint8

const (
	LayoutAuto LayoutKind = iota
	LayoutSequential
	LayoutExplicit
)

// ModuleKind is the kind of artifact a module was compiled into.
type ModuleKind uint8

const (
	ModuleKindDynamicallyLinkedLibrary ModuleKind = iota
	ModuleKindConsoleApplication
	ModuleKindWindowsApplication
	ModuleKindManifestResourceFile
	ModuleKindUnmanagedDynamicallyLinkedLibrary
)

func (k ModuleKind) String() string {
	switch k {
	case ModuleKindConsoleApplication:
		return "exe"
	case ModuleKindWindowsApplication:
		return "winexe"
	case ModuleKindManifestResourceFile:
		return "resource"
	case ModuleKindUnmanagedDynamicallyLinkedLibrary:
		return "native"
	default:
		return "dll"
	}
}

// SecurityAction is the action of a declarative security attribute.
type SecurityAction uint16

const (
	SecurityActionDemand SecurityAction = iota + 2
	SecurityActionAssert
	SecurityActionDeny
	SecurityActionPermitOnly
	SecurityActionLinkDemand
	SecurityActionInheritanceDemand
	SecurityActionRequestMinimum
	SecurityActionRequestOptional
	SecurityActionRequestRefuse
)

// HandlerKind is the kind of an exception handler region.
type HandlerKind uint8

const (
	HandlerCatch HandlerKind = iota
	HandlerFilter
	HandlerFinally
	HandlerFault
)

func (k HandlerKind) String() string {
	switch k {
	case HandlerFilter:
		return "filter"
	case HandlerFinally:
		return "finally"
	case HandlerFault:
		return "fault"
	default:
		return "catch"
	}
}

// UnmanagedType is the native type a value is marshalled as.
type UnmanagedType uint8

const (
	UnmanagedNotSpecified UnmanagedType = 0x00
	UnmanagedBool         UnmanagedType = 0x02
	UnmanagedI4           UnmanagedType = 0x07
	UnmanagedLPStr        UnmanagedType = 0x14
	UnmanagedLPWStr       UnmanagedType = 0x15
	UnmanagedByValArray   UnmanagedType = 0x1e
	UnmanagedInterface    UnmanagedType = 0x1c
	UnmanagedSafeArray    UnmanagedType = 0x1d
	UnmanagedLPArray      UnmanagedType = 0x2a
	UnmanagedCustom       UnmanagedType = 0x2c
)

// OperationCode identifies an IL instruction. Only the mnemonic matters to
// this package; encoding belongs to the reader and writer.
type OperationCode uint16

const (
	OpNop OperationCode = iota
	OpLdarg
	OpStarg
	OpLdloc
	OpStloc
	OpLdcI4
	OpLdcI8
	OpLdcR8
	OpLdstr
	OpLdnull
	OpLdfld
	OpLdflda
	OpStfld
	OpLdsfld
	OpStsfld
	OpCall
	OpCallvirt
	OpCalli
	OpNewobj
	OpNewarr
	OpLdtoken
	OpLdftn
	OpBox
	OpUnbox
	OpCastclass
	OpIsinst
	OpInitobj
	OpBr
	OpBrtrue
	OpBrfalse
	OpSwitch
	OpPop
	OpDup
	OpAdd
	OpRet
	OpThrow
)

var operationNames = [...]string{
	OpNop:       "nop",
	OpLdarg:     "ldarg",
	OpStarg:     "starg",
	OpLdloc:     "ldloc",
	OpStloc:     "stloc",
	OpLdcI4:     "ldc.i4",
	OpLdcI8:     "ldc.i8",
	OpLdcR8:     "ldc.r8",
	OpLdstr:     "ldstr",
	OpLdnull:    "ldnull",
	OpLdfld:     "ldfld",
	OpLdflda:    "ldflda",
	OpStfld:     "stfld",
	OpLdsfld:    "ldsfld",
	OpStsfld:    "stsfld",
	OpCall:      "call",
	OpCallvirt:  "callvirt",
	OpCalli:     "calli",
	OpNewobj:    "newobj",
	OpNewarr:    "newarr",
	OpLdtoken:   "ldtoken",
	OpLdftn:     "ldftn",
	OpBox:       "box",
	OpUnbox:     "unbox",
	OpCastclass: "castclass",
	OpIsinst:    "isinst",
	OpInitobj:   "initobj",
	OpBr:        "br",
	OpBrtrue:    "brtrue",
	OpBrfalse:   "brfalse",
	OpSwitch:    "switch",
	OpPop:       "pop",
	OpDup:       "dup",
	OpAdd:       "add",
	OpRet:       "ret",
	OpThrow:     "throw",
}

func (op OperationCode) String() string {
	if int(op) < len(operationNames) && operationNames[op] != "" {
		return operationNames[op]
	}
	return fmt.Sprintf("op(0x%x)", uint16(op))
}

// ParseOperationCode maps a mnemonic back to its code.
func ParseOperationCode(name string) (OperationCode, bool) {
	for i, n := range operationNames {
		if n == name {
			return OperationCode(i), true
		}
	}
	return 0, false
}

// Version is a four part assembly version.
type Version struct {
	Major, Minor, Build, Revision uint16
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// Location is a source position a node was produced from.
type Location struct {
	Document string
	Line     int
	Column   int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Document, l.Line, l.Column)
}

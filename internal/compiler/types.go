package compiler

// Kind is the closed family of semantic types MiniJava programs can have.
type Kind int

const (
	KindInt Kind = iota
	KindBoolean
	KindIntArray
	KindClass
	KindUndefined
)

// Type is a semantic type: a Kind, plus a class name when Kind == KindClass.
// Undefined is the sentinel used to silence cascading diagnostics once an
// expression has already failed to type-check.
type Type struct {
	Kind      Kind
	ClassName string
}

var (
	Int       = Type{Kind: KindInt}
	Boolean   = Type{Kind: KindBoolean}
	IntArray  = Type{Kind: KindIntArray}
	Undefined = Type{Kind: KindUndefined}
)

func ClassType(name string) Type {
	return Type{Kind: KindClass, ClassName: name}
}

func (t Type) IsInt() bool       { return t.Kind == KindInt }
func (t Type) IsBoolean() bool   { return t.Kind == KindBoolean }
func (t Type) IsIntArray() bool  { return t.Kind == KindIntArray }
func (t Type) IsArray() bool     { return t.Kind == KindIntArray }
func (t Type) IsClass() bool     { return t.Kind == KindClass }
func (t Type) IsUndefined() bool { return t.Kind == KindUndefined }

func (t Type) String() string {
	switch t.Kind {
	case KindInt:
		return "int"
	case KindBoolean:
		return "boolean"
	case KindIntArray:
		return "int[]"
	case KindClass:
		return t.ClassName
	default:
		return "<undefined>"
	}
}

// IsAssignableTo reports whether a value of type t may be used where a value
// of type target is expected. Undefined is assignable to, and accepts,
// everything else so that a single earlier type error never cascades into a
// second one at every use site of the offending expression. There is no
// user-defined inheritance, so class assignability is simply name equality.
func (t Type) IsAssignableTo(target Type) bool {
	if t.IsUndefined() || target.IsUndefined() {
		return true
	}
	if t.Kind != target.Kind {
		return false
	}
	if t.Kind == KindClass {
		return t.ClassName == target.ClassName
	}
	return true
}

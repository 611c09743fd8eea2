package compiler

import "fmt"

// ErrorKind enumerates every diagnostic the pipeline can produce, mirroring
// the kind table in the language spec: lex/parse failures abort their stage
// immediately, symbol and type errors accumulate across the whole pass.
type ErrorKind int

const (
	LexError ErrorKind = iota
	ParseError

	DuplicateClass
	DuplicateField
	DuplicateMethod
	DuplicateParameter
	DuplicateLocal

	UndeclaredIdentifier
	UndeclaredClass
	UndeclaredMethod
	ExpectedVariableGotClass
	InvalidAssignment
	NotArrayType
	WrongIndexType
	WrongSizeType
	WrongIfConditionType
	WrongWhileConditionType
	UnprintableType
	InvalidLeftOpAnd
	InvalidRightOpAnd
	InvalidLeftOpOr
	InvalidRightOpOr
	InvalidLeftOpPlus
	InvalidRightOpPlus
	InvalidLeftOpMinus
	InvalidRightOpMinus
	InvalidLeftOpTimes
	InvalidRightOpTimes
	InvalidLtComparison
	InvalidGtComparison
	InvalidLeComparison
	InvalidGeComparison
	InvalidEqComparison
	InvalidNeComparison
	NegationExpectedBoolean
	MethodCallOnNonClassType
	WrongParameterCount
	WrongParameterType
	WrongReturnType
	LengthOnNonArrayType
	InvalidIntLiteral
)

// Error is a single diagnostic: a kind, the position it occurred at, and the
// arguments needed to render it. It implements the error interface so it can
// be returned and compared like any other Go error.
type Error struct {
	Kind ErrorKind
	File string
	Pos  Position
	Args []interface{}
}

func newError(file string, pos Position, kind ErrorKind, args ...interface{}) *Error {
	return &Error{Kind: kind, File: file, Pos: pos, Args: args}
}

// Error renders the diagnostic as "<file>:<line>:<col>: error: <message>",
// the stable format the rest of the toolchain depends on.
func (e *Error) Error() string {
	return fmt.Sprintf("%s:%s: error: %s", e.File, e.Pos, e.render())
}

func (e *Error) render() string {
	a := e.Args
	switch e.Kind {
	case LexError:
		return fmt.Sprintf("%s", a[0])
	case ParseError:
		return fmt.Sprintf("%s", a[0])
	case DuplicateClass:
		return fmt.Sprintf("class %q is already declared", a[0])
	case DuplicateField:
		return fmt.Sprintf("field %q is already declared in class %q", a[0], a[1])
	case DuplicateMethod:
		return fmt.Sprintf("method %q is already declared in class %q", a[0], a[1])
	case DuplicateParameter:
		return fmt.Sprintf("parameter %q is already declared in method %q", a[0], a[1])
	case DuplicateLocal:
		return fmt.Sprintf("local variable %q is already declared in method %q", a[0], a[1])
	case UndeclaredIdentifier:
		return fmt.Sprintf("undeclared identifier %q", a[0])
	case UndeclaredClass:
		return fmt.Sprintf("undeclared class %q", a[0])
	case UndeclaredMethod:
		return fmt.Sprintf("class %q has no method %q", a[0], a[1])
	case ExpectedVariableGotClass:
		return fmt.Sprintf("%q is a class, not a variable", a[0])
	case InvalidAssignment:
		return fmt.Sprintf("cannot assign value of type %s to variable of type %s", a[0], a[1])
	case NotArrayType:
		return fmt.Sprintf("type %s is not an int array", a[0])
	case WrongIndexType:
		return fmt.Sprintf("array index must be int, got %s", a[0])
	case WrongSizeType:
		return fmt.Sprintf("array size must be int, got %s", a[0])
	case WrongIfConditionType:
		return "if condition must be boolean"
	case WrongWhileConditionType:
		return "while condition must be boolean"
	case UnprintableType:
		return fmt.Sprintf("cannot print value of type %s", a[0])
	case InvalidLeftOpAnd:
		return fmt.Sprintf("left operand of && must be boolean, got %s", a[0])
	case InvalidRightOpAnd:
		return fmt.Sprintf("right operand of && must be boolean, got %s", a[0])
	case InvalidLeftOpOr:
		return fmt.Sprintf("left operand of || must be boolean, got %s", a[0])
	case InvalidRightOpOr:
		return fmt.Sprintf("right operand of || must be boolean, got %s", a[0])
	case InvalidLeftOpPlus:
		return fmt.Sprintf("left operand of + must be int, got %s", a[0])
	case InvalidRightOpPlus:
		return fmt.Sprintf("right operand of + must be int, got %s", a[0])
	case InvalidLeftOpMinus:
		return fmt.Sprintf("left operand of - must be int, got %s", a[0])
	case InvalidRightOpMinus:
		return fmt.Sprintf("right operand of - must be int, got %s", a[0])
	case InvalidLeftOpTimes:
		return fmt.Sprintf("left operand of * must be int, got %s", a[0])
	case InvalidRightOpTimes:
		return fmt.Sprintf("right operand of * must be int, got %s", a[0])
	case InvalidLtComparison:
		return fmt.Sprintf("cannot compare %s < %s", a[0], a[1])
	case InvalidGtComparison:
		return fmt.Sprintf("cannot compare %s > %s", a[0], a[1])
	case InvalidLeComparison:
		return fmt.Sprintf("cannot compare %s <= %s", a[0], a[1])
	case InvalidGeComparison:
		return fmt.Sprintf("cannot compare %s >= %s", a[0], a[1])
	case InvalidEqComparison:
		return fmt.Sprintf("cannot compare %s == %s", a[0], a[1])
	case InvalidNeComparison:
		return fmt.Sprintf("cannot compare %s != %s", a[0], a[1])
	case NegationExpectedBoolean:
		return fmt.Sprintf("operand of ! must be boolean, got %s", a[0])
	case MethodCallOnNonClassType:
		return fmt.Sprintf("cannot call a method on a value of type %s", a[0])
	case WrongParameterCount:
		return fmt.Sprintf("method %q expects %d argument(s), got %d", a[0], a[2], a[1])
	case WrongParameterType:
		return fmt.Sprintf("argument %d of method %q has type %s, expected %s", a[1], a[0], a[2], a[3])
	case WrongReturnType:
		return fmt.Sprintf("method %q returns %s, expected %s", a[0], a[1], a[2])
	case LengthOnNonArrayType:
		return fmt.Sprintf(".length is only valid on an array, got %s", a[0])
	case InvalidIntLiteral:
		return fmt.Sprintf("integer literal %q is out of range", a[0])
	default:
		return "unknown error"
	}
}

// ErrorList is a named slice type for the accumulated diagnostics of a
// single pass; the pipeline's own functions return plain []*Error.
type ErrorList []*Error

func (l ErrorList) HasErrors() bool {
	return len(l) > 0
}

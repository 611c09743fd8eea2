package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkSource(t *testing.T, src string) (*Result, []*Error) {
	t.Helper()
	_, result, errs := checkSourceProgram(t, src)
	return result, errs
}

func checkSourceProgram(t *testing.T, src string) (*Program, *Result, []*Error) {
	t.Helper()
	prog := mustLexAndParse(t, src)
	table, symErrs := BuildSymbols(prog, "t.java")
	require.Empty(t, symErrs)
	result, errs := Check(prog, table, "t.java")
	return prog, result, errs
}

func TestCheck_WrongIfConditionType(t *testing.T) {
	_, errs := checkSource(t, `
		class Main {
			public static void main(String[] args) {
				if (1)
					System.out.println(1);
			}
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, WrongIfConditionType, errs[0].Kind)
}

func TestCheck_IntLiteralOverflowRejected(t *testing.T) {
	_, errs := checkSource(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(9999999999);
			}
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, InvalidIntLiteral, errs[0].Kind)
}

func TestCheck_InvalidAssignment(t *testing.T) {
	_, errs := checkSource(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(1);
			}
		}
		class Foo {
			boolean b;
			public int m() {
				b = 1;
				return 1;
			}
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, InvalidAssignment, errs[0].Kind)
}

func TestCheck_UndeclaredIdentifierCascadeSuppression(t *testing.T) {
	// Both occurrences of "y" are genuinely undeclared and each is
	// reported, but the Undefined type assigned to them must not also
	// trigger an "invalid operand of +" error on top — the sentinel only
	// suppresses secondary errors that would be caused BY the first one,
	// not independent uses of the same bad name.
	_, errs := checkSource(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(y + y);
			}
		}
	`)
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, UndeclaredIdentifier, e.Kind)
	}
}

func TestCheck_ArrayOperations(t *testing.T) {
	prog, result, errs := checkSourceProgram(t, `
		class Main {
			public static void main(String[] args) {
				int[] a;
				a = new int[10];
				System.out.println(a[0]);
				System.out.println(a.length);
			}
		}
	`)
	require.Empty(t, errs)
	access := prog.Main.Stmts[1].(*PrintlnStmt).Value.(*ArrayAccessExpr)
	assert.True(t, result.TypeOf(access).IsInt())
}

func TestCheck_MethodCallWrongParameterCount(t *testing.T) {
	_, errs := checkSource(t, `
		class Main {
			public static void main(String[] args) {
				Foo f;
				f = new Foo();
				System.out.println(f.m(1));
			}
		}
		class Foo {
			public int m() { return 1; }
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, WrongParameterCount, errs[0].Kind)
}

func TestCheck_MethodCallWrongParameterType(t *testing.T) {
	_, errs := checkSource(t, `
		class Main {
			public static void main(String[] args) {
				Foo f;
				f = new Foo();
				System.out.println(f.m(true));
			}
		}
		class Foo {
			public int m(int x) { return x; }
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, WrongParameterType, errs[0].Kind)
}

func TestCheck_WrongReturnType(t *testing.T) {
	_, errs := checkSource(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(1);
			}
		}
		class Foo {
			public int m() { return true; }
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, WrongReturnType, errs[0].Kind)
}

func TestCheck_ThisHasEnclosingClassType(t *testing.T) {
	prog, result, errs := checkSourceProgram(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(1);
			}
		}
		class Foo {
			public Foo self() { return this; }
		}
	`)
	require.Empty(t, errs)
	this := prog.Classes[0].Methods[0].ReturnExpr.(*ThisExpr)
	ty := result.TypeOf(this)
	require.True(t, ty.IsClass())
	assert.Equal(t, "Foo", ty.ClassName)
}

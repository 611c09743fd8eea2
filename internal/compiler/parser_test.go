package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLexAndParse(t *testing.T, src string) *Program {
	t.Helper()
	tokens, lexErrs := Lex([]byte(src), "t.java")
	require.Empty(t, lexErrs)
	prog, parseErrs := Parse(tokens, "t.java")
	require.Empty(t, parseErrs)
	return prog
}

func TestParse_MainClassShape(t *testing.T) {
	prog := mustLexAndParse(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(1);
			}
		}
	`)
	assert.Equal(t, "Main", prog.Main.Name)
	assert.Equal(t, "main", prog.Main.Method)
	assert.Equal(t, "args", prog.Main.Arg)
	require.Len(t, prog.Main.Stmts, 1)
}

func TestParse_MultiDimensionalArrayRejected(t *testing.T) {
	_, errs := lexAndParse(`
		class Main {
			public static void main(String[] args) {
				int[][] x;
				System.out.println(1);
			}
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, ParseError, errs[0].Kind)
}

func TestParse_NewMultiDimensionalArrayRejected(t *testing.T) {
	_, errs := lexAndParse(`
		class Main {
			public static void main(String[] args) {
				int[] x;
				x = new int[10][5];
				System.out.println(1);
			}
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, ParseError, errs[0].Kind)
}

func TestParse_DanglingElseBindsToNearestIf(t *testing.T) {
	prog := mustLexAndParse(t, `
		class Main {
			public static void main(String[] args) {
				if (true)
					if (false)
						System.out.println(1);
					else
						System.out.println(2);
			}
		}
	`)
	outer, ok := prog.Main.Stmts[0].(*IfStmt)
	require.True(t, ok)
	inner, ok := outer.Then.(*IfElseStmt)
	require.True(t, ok, "the else must attach to the inner if, not the outer one")
	_ = inner
}

func TestParse_ExpressionPrecedence(t *testing.T) {
	prog := mustLexAndParse(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(1 + 2 * 3);
			}
		}
	`)
	printStmt := prog.Main.Stmts[0].(*PrintlnStmt)
	top, ok := printStmt.Value.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, OpPlus, top.Op, "+ must be the root: * binds tighter than +")
	right, ok := top.Right.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, OpTimes, right.Op)
}

func TestParse_MethodWithFormalsAndReturn(t *testing.T) {
	prog := mustLexAndParse(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(1);
			}
		}
		class Adder {
			public int add(int a, int b) {
				return a + b;
			}
		}
	`)
	require.Len(t, prog.Classes, 1)
	m := prog.Classes[0].Methods[0]
	assert.Equal(t, "add", m.Name)
	require.Len(t, m.Formals, 2)
	assert.Equal(t, "a", m.Formals[0].Name)
	assert.Equal(t, "b", m.Formals[1].Name)
}

func lexAndParse(src string) (*Program, []*Error) {
	tokens, lexErrs := Lex([]byte(src), "t.java")
	if len(lexErrs) > 0 {
		return nil, lexErrs
	}
	return Parse(tokens, "t.java")
}

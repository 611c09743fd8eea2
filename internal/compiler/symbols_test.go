package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSymbols(t *testing.T, src string) (*Table, []*Error) {
	t.Helper()
	prog := mustLexAndParse(t, src)
	return BuildSymbols(prog, "t.java")
}

func TestBuildSymbols_DuplicateClass(t *testing.T) {
	_, errs := buildSymbols(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(1);
			}
		}
		class Foo { }
		class Foo { }
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, DuplicateClass, errs[0].Kind)
}

func TestBuildSymbols_DuplicateField(t *testing.T) {
	_, errs := buildSymbols(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(1);
			}
		}
		class Foo {
			int x;
			int x;
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, DuplicateField, errs[0].Kind)
}

func TestBuildSymbols_DuplicateMethod(t *testing.T) {
	_, errs := buildSymbols(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(1);
			}
		}
		class Foo {
			public int m() { return 1; }
			public int m() { return 2; }
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, DuplicateMethod, errs[0].Kind)
}

func TestBuildSymbols_DuplicateParameter(t *testing.T) {
	_, errs := buildSymbols(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(1);
			}
		}
		class Foo {
			public int m(int a, int a) { return a; }
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, DuplicateParameter, errs[0].Kind)
}

func TestBuildSymbols_DuplicateLocal(t *testing.T) {
	_, errs := buildSymbols(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(1);
			}
		}
		class Foo {
			public int m() {
				int a;
				int a;
				return a;
			}
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, DuplicateLocal, errs[0].Kind)
}

func TestBuildSymbols_LocalMayShadowFieldOrParameter(t *testing.T) {
	table, errs := buildSymbols(t, `
		class Main {
			public static void main(String[] args) {
				System.out.println(1);
			}
		}
		class Foo {
			int a;
			public int m(int a) {
				int a;
				return a;
			}
		}
	`)
	require.Empty(t, errs)
	cls := table.Classes["Foo"]
	require.NotNil(t, cls)
	method := cls.Methods["m"]
	require.NotNil(t, method)
	assert.Len(t, method.Locals, 1)
	assert.Len(t, method.Formals, 1)
	assert.Len(t, cls.Fields, 1)
}

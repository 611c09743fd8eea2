package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These mirror the concrete end-to-end scenarios in the language
// specification: each is a full program run through Compile, asserting on
// the exact set of error kinds the pipeline as a whole is expected to
// produce (none, for the scenarios that type-check cleanly).

func TestCompile_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantKinds []ErrorKind
	}{
		{
			name: "factorial program type-checks cleanly",
			src: `
				class Factorial {
					public static void main(String[] a) {
						System.out.println(new Fac().ComputeFac(10));
					}
				}
				class Fac {
					public int ComputeFac(int num) {
						int num_aux;
						if (num < 1)
							num_aux = 1;
						else
							num_aux = num * (this.ComputeFac(num - 1));
						return num_aux;
					}
				}
			`,
		},
		{
			name: "array sum program type-checks cleanly",
			src: `
				class ArraySum {
					public static void main(String[] a) {
						int[] numbers;
						int i;
						int sum;
						numbers = new int[5];
						i = 0;
						sum = 0;
						while (i < numbers.length) {
							numbers[i] = i;
							sum = sum + numbers[i];
							i = i + 1;
						}
						System.out.println(sum);
					}
				}
			`,
		},
		{
			name: "duplicate class declaration is reported",
			src: `
				class Main {
					public static void main(String[] a) {
						System.out.println(1);
					}
				}
				class Dup { }
				class Dup { }
			`,
			wantKinds: []ErrorKind{DuplicateClass},
		},
		{
			name: "undeclared class used in new is reported",
			src: `
				class Main {
					public static void main(String[] a) {
						Missing m;
						m = new Missing();
						System.out.println(1);
					}
				}
			`,
			wantKinds: []ErrorKind{UndeclaredClass, UndeclaredClass},
		},
		{
			name: "calling an undeclared method is reported once, not cascaded",
			src: `
				class Main {
					public static void main(String[] a) {
						Counter c;
						c = new Counter();
						System.out.println(c.incr());
					}
				}
				class Counter {
					public int value() { return 0; }
				}
			`,
			wantKinds: []ErrorKind{UndeclaredMethod},
		},
		{
			name: "assigning a boolean to an int field is reported",
			src: `
				class Main {
					public static void main(String[] a) {
						System.out.println(1);
					}
				}
				class Holder {
					int n;
					public int set() {
						n = true;
						return n;
					}
				}
			`,
			wantKinds: []ErrorKind{InvalidAssignment},
		},
		{
			name: "printing a boolean is reported",
			src: `
				class Main {
					public static void main(String[] a) {
						System.out.println(true);
					}
				}
			`,
			wantKinds: []ErrorKind{UnprintableType},
		},
		{
			name: "indexing an array with a boolean is reported",
			src: `
				class Main {
					public static void main(String[] a) {
						int[] ia;
						ia = new int[5];
						ia[true] = 1;
					}
				}
			`,
			wantKinds: []ErrorKind{WrongIndexType},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Compile([]byte(tt.src), "t.java")
			if len(tt.wantKinds) == 0 {
				require.Empty(t, errs)
				return
			}
			require.Len(t, errs, len(tt.wantKinds))
			kinds := make([]ErrorKind, len(errs))
			for i, e := range errs {
				kinds[i] = e.Kind
			}
			assert.Equal(t, tt.wantKinds, kinds)
		})
	}
}

func TestCompile_LexErrorAbortsBeforeLaterStages(t *testing.T) {
	result, errs := Compile([]byte("class Main { public static void main(String[] a) { _x = 1; } }"), "t.java")
	require.Nil(t, result)
	require.Len(t, errs, 1)
	assert.Equal(t, LexError, errs[0].Kind)
}

func TestCompile_ParseErrorAbortsBeforeLaterStages(t *testing.T) {
	result, errs := Compile([]byte("class Main { public static void main(String[] a) { 1 = 2; } }"), "t.java")
	require.Nil(t, result)
	require.Len(t, errs, 1)
	assert.Equal(t, ParseError, errs[0].Kind)
}

func TestCompile_ErrorMessageFormat(t *testing.T) {
	_, errs := Compile([]byte("class Main { public static void main(String[] a) { System.out.println(x); } }"), "t.java")
	require.Len(t, errs, 1)
	assert.Regexp(t, `^t\.java:1:\d+: error: .+$`, errs[0].Error())
}

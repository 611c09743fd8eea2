package compiler

// Compile runs the full lex -> parse -> build-symbols -> check pipeline in
// one call, mirroring the stage-by-stage shape of the teacher's own
// Compile(path) but without the teacher's bare println progress lines:
// this package is a pure library, and a caller that wants progress output
// (cmd/mjc does, through a real logger) drives the four stage functions
// itself and logs between them instead.
type CompileResult struct {
	Tokens  []Token
	Program *Program
	Symbols *Table
	Types   *Result
}

// Compile lexes and parses source, then builds symbols and type-checks it.
// Lexing and parsing are fatal for the stage: the first error returned from
// either aborts the pipeline immediately, since there is no token stream or
// AST to hand to the next stage. Symbol building and type checking both
// accumulate diagnostics and both always run, even if symbol building
// already found errors, matching the accumulating policy for those two
// stages.
func Compile(source []byte, file string) (*CompileResult, []*Error) {
	tokens, errs := Lex(source, file)
	if len(errs) > 0 {
		return nil, errs
	}

	prog, errs := Parse(tokens, file)
	if len(errs) > 0 {
		return nil, errs
	}

	var all []*Error

	table, symErrs := BuildSymbols(prog, file)
	all = append(all, symErrs...)

	result, typeErrs := Check(prog, table, file)
	all = append(all, typeErrs...)

	res := &CompileResult{Tokens: tokens, Program: prog, Symbols: table, Types: result}
	if len(all) > 0 {
		return res, all
	}
	return res, nil
}

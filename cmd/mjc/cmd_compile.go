package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"minijavac/internal/compiler"
)

func newCompileCmd() *cobra.Command {
	var printAST bool
	var printDot bool
	var stopBeforeCodegen bool
	var outputPath string

	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Lex, parse and type-check a MiniJava source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			log := commonlog.GetLogger("mjc.compile")

			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			log.Infof("lexing %s", path)
			tokens, errs := compiler.Lex(source, path)
			if len(errs) > 0 {
				return reportAndFail(errs)
			}

			log.Infof("parsing %s (%d tokens)", path, len(tokens))
			prog, errs := compiler.Parse(tokens, path)
			if len(errs) > 0 {
				return reportAndFail(errs)
			}

			log.Info("building symbol table")
			table, symErrs := compiler.BuildSymbols(prog, path)

			log.Info("checking types")
			_, typeErrs := compiler.Check(prog, table, path)

			all := append(symErrs, typeErrs...)

			out := os.Stdout
			if outputPath != "" && (printAST || printDot) {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outputPath, err)
				}
				defer f.Close()
				out = f
			}

			if printAST {
				compiler.Fprint(out, prog)
			}
			if printDot {
				compiler.FprintDot(out, prog)
			}
			if stopBeforeCodegen {
				log.Debug("-S given: stopping before code generation (unimplemented)")
			}

			if len(all) > 0 {
				return reportAndFail(all)
			}
			log.Notice("compiled with no errors")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&printAST, "print-ast", "p", false, "print the parsed AST as indented text")
	cmd.Flags().BoolVarP(&printDot, "graphviz", "g", false, "print the parsed AST as GraphViz dot source")
	cmd.Flags().BoolVarP(&stopBeforeCodegen, "stop-before-codegen", "S", false, "stop before code generation (accepted for interface compatibility; code generation is not implemented)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path for -p/-g (defaults to stdout)")

	return cmd
}

func reportAndFail(errs []*compiler.Error) error {
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	return fmt.Errorf("%d error(s)", len(errs))
}

package compiler

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented, plain-text dump of the AST, in the spirit of
// mjc's ASTPrinter: one declaration or statement per line, children
// indented two spaces deeper than their parent. It is a pure consumer of
// the tree the checking pipeline already produced and never influences it.
func Fprint(w io.Writer, prog *Program) {
	p := &printer{w: w}
	p.printMainClass(prog.Main)
	for _, cls := range prog.Classes {
		p.printClass(cls)
	}
}

type printer struct {
	w     io.Writer
	depth int
}

func (p *printer) line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.depth), fmt.Sprintf(format, args...))
}

func (p *printer) indented(fn func()) {
	p.depth++
	fn()
	p.depth--
}

func (p *printer) printMainClass(m *MainClassDecl) {
	p.line("MainClass %s", m.Name)
	p.indented(func() {
		p.line("public static void %s(String[] %s)", m.Method, m.Arg)
		p.indented(func() {
			for _, v := range m.Locals {
				p.line("var %s %s", v.Type, v.Name)
			}
			for _, s := range m.Stmts {
				p.printStmt(s)
			}
		})
	})
}

func (p *printer) printClass(c *ClassDecl) {
	p.line("Class %s", c.Name)
	p.indented(func() {
		for _, f := range c.Fields {
			p.line("field %s %s", f.Type, f.Name)
		}
		for _, m := range c.Methods {
			p.printMethod(m)
		}
	})
}

func (p *printer) printMethod(m *MethodDecl) {
	formals := make([]string, len(m.Formals))
	for i, f := range m.Formals {
		formals[i] = fmt.Sprintf("%s %s", f.Type, f.Name)
	}
	p.line("Method %s %s(%s)", m.ReturnType, m.Name, strings.Join(formals, ", "))
	p.indented(func() {
		for _, v := range m.Locals {
			p.line("var %s %s", v.Type, v.Name)
		}
		for _, s := range m.Stmts {
			p.printStmt(s)
		}
		p.line("return %s", exprString(m.ReturnExpr))
	})
}

func (p *printer) printStmt(s Stmt) {
	switch n := s.(type) {
	case *BlockStmt:
		p.line("{")
		p.indented(func() {
			for _, inner := range n.Stmts {
				p.printStmt(inner)
			}
		})
		p.line("}")
	case *IfStmt:
		p.line("if (%s)", exprString(n.Cond))
		p.indented(func() { p.printStmt(n.Then) })
	case *IfElseStmt:
		p.line("if (%s)", exprString(n.Cond))
		p.indented(func() { p.printStmt(n.Then) })
		p.line("else")
		p.indented(func() { p.printStmt(n.Else) })
	case *WhileStmt:
		p.line("while (%s)", exprString(n.Cond))
		p.indented(func() { p.printStmt(n.Body) })
	case *PrintlnStmt:
		p.line("System.out.println(%s);", exprString(n.Value))
	case *AssignStmt:
		p.line("%s = %s;", n.Name, exprString(n.Value))
	case *ArrayAssignStmt:
		p.line("%s[%s] = %s;", n.Name, exprString(n.Index), exprString(n.Value))
	}
}

// exprString renders an expression as a single line of MiniJava-like
// source for the printer.
func exprString(e Expr) string {
	switch n := e.(type) {
	case *IntLitExpr:
		return n.Text
	case *TrueExpr:
		return "true"
	case *FalseExpr:
		return "false"
	case *ThisExpr:
		return "this"
	case *IdentExpr:
		return n.Name
	case *NotExpr:
		return "!" + exprString(n.Operand)
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", exprString(n.Left), n.Op, exprString(n.Right))
	case *ArrayAccessExpr:
		return fmt.Sprintf("%s[%s]", exprString(n.Array), exprString(n.Index))
	case *ArrayLengthExpr:
		return exprString(n.Array) + ".length"
	case *NewInstanceExpr:
		return "new " + n.ClassName + "()"
	case *NewIntArrayExpr:
		return fmt.Sprintf("new int[%s]", exprString(n.Size))
	case *MethodCallExpr:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = exprString(a)
		}
		return fmt.Sprintf("%s.%s(%s)", exprString(n.Receiver), n.Name, strings.Join(args, ", "))
	default:
		return "?"
	}
}

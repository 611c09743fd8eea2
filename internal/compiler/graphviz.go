package compiler

import (
	"fmt"
	"io"
)

// FprintDot writes the AST as GraphViz dot source, the Go counterpart of
// mjc's ASTGraphPrinter. Every class, field, method, formal, statement and
// expression becomes a labeled box; local variable declarations are not
// emitted. Edges run from parent to child in source order. Like Fprint, it
// only reads the tree.
func FprintDot(w io.Writer, prog *Program) {
	g := &dotPrinter{w: w}
	fmt.Fprintln(g.w, "digraph AST {")
	fmt.Fprintln(g.w, "  node [shape=box, fontname=\"monospace\"];")
	root := g.node("Program")
	main := g.node(fmt.Sprintf("MainClass\\n%s", prog.Main.Name))
	g.edge(root, main)
	for _, s := range prog.Main.Stmts {
		g.edge(main, g.stmt(s))
	}
	for _, cls := range prog.Classes {
		g.edge(root, g.class(cls))
	}
	fmt.Fprintln(g.w, "}")
}

type dotPrinter struct {
	w      io.Writer
	nextID int
}

func (g *dotPrinter) node(label string) string {
	id := fmt.Sprintf("n%d", g.nextID)
	g.nextID++
	fmt.Fprintf(g.w, "  %s [label=%q];\n", id, label)
	return id
}

func (g *dotPrinter) edge(from, to string) {
	fmt.Fprintf(g.w, "  %s -> %s;\n", from, to)
}

func (g *dotPrinter) class(c *ClassDecl) string {
	id := g.node(fmt.Sprintf("Class\\n%s", c.Name))
	for _, f := range c.Fields {
		fid := g.node(fmt.Sprintf("field %s %s", f.Type, f.Name))
		g.edge(id, fid)
	}
	for _, m := range c.Methods {
		g.edge(id, g.method(m))
	}
	return id
}

func (g *dotPrinter) method(m *MethodDecl) string {
	id := g.node(fmt.Sprintf("Method\\n%s %s", m.ReturnType, m.Name))
	for _, f := range m.Formals {
		g.edge(id, g.node(fmt.Sprintf("formal %s %s", f.Type, f.Name)))
	}
	for _, s := range m.Stmts {
		g.edge(id, g.stmt(s))
	}
	g.edge(id, g.expr(m.ReturnExpr))
	return id
}

func (g *dotPrinter) stmt(s Stmt) string {
	switch n := s.(type) {
	case *BlockStmt:
		id := g.node("Block")
		for _, inner := range n.Stmts {
			g.edge(id, g.stmt(inner))
		}
		return id
	case *IfStmt:
		id := g.node("If")
		g.edge(id, g.expr(n.Cond))
		g.edge(id, g.stmt(n.Then))
		return id
	case *IfElseStmt:
		id := g.node("IfElse")
		g.edge(id, g.expr(n.Cond))
		g.edge(id, g.stmt(n.Then))
		g.edge(id, g.stmt(n.Else))
		return id
	case *WhileStmt:
		id := g.node("While")
		g.edge(id, g.expr(n.Cond))
		g.edge(id, g.stmt(n.Body))
		return id
	case *PrintlnStmt:
		id := g.node("Println")
		g.edge(id, g.expr(n.Value))
		return id
	case *AssignStmt:
		id := g.node(fmt.Sprintf("Assign\\n%s", n.Name))
		g.edge(id, g.expr(n.Value))
		return id
	case *ArrayAssignStmt:
		id := g.node(fmt.Sprintf("ArrayAssign\\n%s", n.Name))
		g.edge(id, g.expr(n.Index))
		g.edge(id, g.expr(n.Value))
		return id
	default:
		return g.node("?")
	}
}

func (g *dotPrinter) expr(e Expr) string {
	switch n := e.(type) {
	case *IntLitExpr:
		return g.node(n.Text)
	case *TrueExpr:
		return g.node("true")
	case *FalseExpr:
		return g.node("false")
	case *ThisExpr:
		return g.node("this")
	case *IdentExpr:
		return g.node(n.Name)
	case *NotExpr:
		id := g.node("Not")
		g.edge(id, g.expr(n.Operand))
		return id
	case *BinaryExpr:
		id := g.node(n.Op.String())
		g.edge(id, g.expr(n.Left))
		g.edge(id, g.expr(n.Right))
		return id
	case *ArrayAccessExpr:
		id := g.node("ArrayAccess")
		g.edge(id, g.expr(n.Array))
		g.edge(id, g.expr(n.Index))
		return id
	case *ArrayLengthExpr:
		id := g.node("Length")
		g.edge(id, g.expr(n.Array))
		return id
	case *NewInstanceExpr:
		return g.node(fmt.Sprintf("New\\n%s", n.ClassName))
	case *NewIntArrayExpr:
		id := g.node("NewIntArray")
		g.edge(id, g.expr(n.Size))
		return id
	case *MethodCallExpr:
		id := g.node(fmt.Sprintf("Call\\n%s", n.Name))
		g.edge(id, g.expr(n.Receiver))
		for _, a := range n.Args {
			g.edge(id, g.expr(a))
		}
		return id
	default:
		return g.node("?")
	}
}

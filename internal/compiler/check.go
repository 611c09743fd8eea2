package compiler

import "strconv"

// The type checker assigns every expression node a Type and accumulates
// diagnostics rather than aborting, mirroring the teacher's per-node-type
// rule functions (symbol_table.go's buildVariable/buildMethod0 pattern of
// one function per AST shape) and the original mjc TypeChecker's
// one-visitor-method-per-production table: every rule below corresponds to
// exactly one row of that table. An expression whose type cannot be
// determined (an undeclared name, class or method, a call on an undefined
// receiver, or an out-of-range literal) is recorded as Undefined, which
// IsAssignableTo treats as compatible with everything; an operator, array
// access or allocation with bad operands still records its usual result
// type. Either way a single root-cause error never cascades into a pile of
// secondary ones at every use site.

// Result is the hand-off contract a downstream code generator would consume:
// a dense map from expression NodeID to its checked Type.
type Result struct {
	types map[NodeID]Type
}

func (r *Result) TypeOf(e Expr) Type {
	if t, ok := r.types[e.ID()]; ok {
		return t
	}
	return Undefined
}

func (r *Result) set(e Expr, t Type) Type {
	r.types[e.ID()] = t
	return t
}

type checker struct {
	file    string
	table   *Table
	result  *Result
	errs    []*Error
	class   *ClassInfo // class providing the context for "this" and field lookup
	method  *MethodInfo
}

func (c *checker) errorf(pos Position, kind ErrorKind, args ...interface{}) {
	c.errs = append(c.errs, newError(c.file, pos, kind, args...))
}

// Check runs the type checker over a program using the symbol table built
// for it. Both must come from the same parse.
func Check(prog *Program, table *Table, file string) (*Result, []*Error) {
	c := &checker{file: file, table: table, result: &Result{types: map[NodeID]Type{}}}
	c.checkDeclaredTypes(prog)
	c.checkMain(prog)
	for _, cls := range prog.Classes {
		c.checkClass(cls)
	}
	return c.result, c.errs
}

// checkDeclaredTypes validates every class-valued type mentioned anywhere in
// the program's declarations (fields, formals, locals, return types) refers
// to a class that actually exists, before any expression is checked.
func (c *checker) checkDeclaredTypes(prog *Program) {
	check := func(t Type, pos Position) {
		if t.IsClass() {
			if _, ok := c.table.Classes[t.ClassName]; !ok {
				c.errorf(pos, UndeclaredClass, t.ClassName)
			}
		}
	}
	for _, v := range prog.Main.Locals {
		check(v.Type, v.Pos)
	}
	for _, cls := range prog.Classes {
		for _, f := range cls.Fields {
			check(f.Type, f.Pos)
		}
		for _, m := range cls.Methods {
			check(m.ReturnType, m.Pos)
			for _, formal := range m.Formals {
				check(formal.Type, formal.Pos)
			}
			for _, local := range m.Locals {
				check(local.Type, local.Pos)
			}
		}
	}
}

func (c *checker) checkMain(prog *Program) {
	c.class = c.table.Classes[prog.Main.Name]
	c.method = c.table.Main
	for _, s := range prog.Main.Stmts {
		c.checkStmt(s)
	}
	c.method = nil
}

func (c *checker) checkClass(cls *ClassDecl) {
	c.class = c.table.Classes[cls.Name]
	if c.class == nil {
		return
	}
	for _, m := range cls.Methods {
		c.checkMethod(m)
	}
}

func (c *checker) checkMethod(m *MethodDecl) {
	c.method = c.table.MethodInfoFor(m)
	for _, s := range m.Stmts {
		c.checkStmt(s)
	}
	actual := c.checkExpr(m.ReturnExpr)
	if !actual.IsAssignableTo(m.ReturnType) {
		c.errorf(m.ReturnExpr.Position(), WrongReturnType, m.Name, actual, m.ReturnType)
	}
	c.method = nil
}

// ---- Statements ----

func (c *checker) checkStmt(s Stmt) {
	switch n := s.(type) {
	case *BlockStmt:
		for _, inner := range n.Stmts {
			c.checkStmt(inner)
		}
	case *IfStmt:
		c.checkCondition(n.Cond, WrongIfConditionType)
		c.checkStmt(n.Then)
	case *IfElseStmt:
		c.checkCondition(n.Cond, WrongIfConditionType)
		c.checkStmt(n.Then)
		c.checkStmt(n.Else)
	case *WhileStmt:
		c.checkCondition(n.Cond, WrongWhileConditionType)
		c.checkStmt(n.Body)
	case *PrintlnStmt:
		t := c.checkExpr(n.Value)
		if !t.IsUndefined() && !t.IsInt() {
			c.errorf(n.Value.Position(), UnprintableType, t)
		}
	case *AssignStmt:
		c.checkAssign(n)
	case *ArrayAssignStmt:
		c.checkArrayAssign(n)
	}
}

func (c *checker) checkCondition(e Expr, kind ErrorKind) {
	t := c.checkExpr(e)
	if !t.IsUndefined() && !t.IsBoolean() {
		c.errorf(e.Position(), kind)
	}
}

func (c *checker) checkAssign(n *AssignStmt) {
	v, found := c.resolveVariable(n.Name)
	valueType := c.checkExpr(n.Value)
	if !found {
		if c.isClassName(n.Name) {
			c.errorf(n.NamePos, ExpectedVariableGotClass, n.Name)
		} else {
			c.errorf(n.NamePos, UndeclaredIdentifier, n.Name)
		}
		return
	}
	if !valueType.IsAssignableTo(v.Type) {
		c.errorf(n.Value.Position(), InvalidAssignment, valueType, v.Type)
	}
}

func (c *checker) checkArrayAssign(n *ArrayAssignStmt) {
	v, found := c.resolveVariable(n.Name)
	indexType := c.checkExpr(n.Index)
	valueType := c.checkExpr(n.Value)
	if !found {
		if c.isClassName(n.Name) {
			c.errorf(n.NamePos, ExpectedVariableGotClass, n.Name)
		} else {
			c.errorf(n.NamePos, UndeclaredIdentifier, n.Name)
		}
		return
	}
	if !v.Type.IsUndefined() && !v.Type.IsIntArray() {
		c.errorf(n.NamePos, NotArrayType, v.Type)
	}
	if !indexType.IsUndefined() && !indexType.IsInt() {
		c.errorf(n.Index.Position(), WrongIndexType, indexType)
	}
	if !valueType.IsUndefined() && !valueType.IsInt() {
		c.errorf(n.Value.Position(), InvalidAssignment, valueType, Int)
	}
}

// ---- Expressions ----

func (c *checker) checkExpr(e Expr) Type {
	switch n := e.(type) {
	case *IntLitExpr:
		return c.checkIntLit(n)
	case *TrueExpr:
		return c.result.set(n, Boolean)
	case *FalseExpr:
		return c.result.set(n, Boolean)
	case *ThisExpr:
		return c.result.set(n, ClassType(c.class.Name))
	case *IdentExpr:
		return c.checkIdent(n)
	case *NewInstanceExpr:
		return c.checkNewInstance(n)
	case *NewIntArrayExpr:
		return c.checkNewIntArray(n)
	case *ArrayAccessExpr:
		return c.checkArrayAccess(n)
	case *ArrayLengthExpr:
		return c.checkArrayLength(n)
	case *NotExpr:
		return c.checkNot(n)
	case *BinaryExpr:
		return c.checkBinary(n)
	case *MethodCallExpr:
		return c.checkMethodCall(n)
	default:
		return Undefined
	}
}

func (c *checker) checkIntLit(n *IntLitExpr) Type {
	if !isValidIntLiteral(n.Text) {
		c.errorf(n.Position(), InvalidIntLiteral, n.Text)
		return c.result.set(n, Undefined)
	}
	return c.result.set(n, Int)
}

// isValidIntLiteral reports whether text is all digits and parses as a
// 32-bit signed integer, matching Integer.parseInt's range.
func isValidIntLiteral(text string) bool {
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	_, err := strconv.ParseInt(text, 10, 32)
	return err == nil
}

func (c *checker) checkIdent(n *IdentExpr) Type {
	v, found := c.resolveVariable(n.Name)
	if !found {
		if c.isClassName(n.Name) {
			c.errorf(n.Position(), ExpectedVariableGotClass, n.Name)
		} else {
			c.errorf(n.Position(), UndeclaredIdentifier, n.Name)
		}
		return c.result.set(n, Undefined)
	}
	return c.result.set(n, v.Type)
}

func (c *checker) checkNewInstance(n *NewInstanceExpr) Type {
	if _, ok := c.table.Classes[n.ClassName]; !ok {
		c.errorf(n.Position(), UndeclaredClass, n.ClassName)
		return c.result.set(n, Undefined)
	}
	return c.result.set(n, ClassType(n.ClassName))
}

func (c *checker) checkNewIntArray(n *NewIntArrayExpr) Type {
	sizeType := c.checkExpr(n.Size)
	if !sizeType.IsUndefined() && !sizeType.IsInt() {
		c.errorf(n.Size.Position(), WrongSizeType, sizeType)
	}
	return c.result.set(n, IntArray)
}

func (c *checker) checkArrayAccess(n *ArrayAccessExpr) Type {
	arrType := c.checkExpr(n.Array)
	indexType := c.checkExpr(n.Index)
	if !arrType.IsUndefined() && !arrType.IsIntArray() {
		c.errorf(n.Array.Position(), NotArrayType, arrType)
	}
	if !indexType.IsUndefined() && !indexType.IsInt() {
		c.errorf(n.Index.Position(), WrongIndexType, indexType)
	}
	return c.result.set(n, Int)
}

func (c *checker) checkArrayLength(n *ArrayLengthExpr) Type {
	arrType := c.checkExpr(n.Array)
	if !arrType.IsUndefined() && !arrType.IsIntArray() {
		c.errorf(n.Array.Position(), LengthOnNonArrayType, arrType)
	}
	return c.result.set(n, Int)
}

func (c *checker) checkNot(n *NotExpr) Type {
	operandType := c.checkExpr(n.Operand)
	if !operandType.IsUndefined() && !operandType.IsBoolean() {
		c.errorf(n.Operand.Position(), NegationExpectedBoolean, operandType)
	}
	return c.result.set(n, Boolean)
}

func (c *checker) checkBinary(n *BinaryExpr) Type {
	left := c.checkExpr(n.Left)
	right := c.checkExpr(n.Right)
	switch n.Op {
	case OpAnd:
		if !left.IsUndefined() && !left.IsBoolean() {
			c.errorf(n.Left.Position(), InvalidLeftOpAnd, left)
		}
		if !right.IsUndefined() && !right.IsBoolean() {
			c.errorf(n.Right.Position(), InvalidRightOpAnd, right)
		}
		return c.result.set(n, Boolean)
	case OpOr:
		if !left.IsUndefined() && !left.IsBoolean() {
			c.errorf(n.Left.Position(), InvalidLeftOpOr, left)
		}
		if !right.IsUndefined() && !right.IsBoolean() {
			c.errorf(n.Right.Position(), InvalidRightOpOr, right)
		}
		return c.result.set(n, Boolean)
	case OpPlus:
		c.requireIntOperands(n.Left, left, InvalidLeftOpPlus, n.Right, right, InvalidRightOpPlus)
		return c.result.set(n, Int)
	case OpMinus:
		c.requireIntOperands(n.Left, left, InvalidLeftOpMinus, n.Right, right, InvalidRightOpMinus)
		return c.result.set(n, Int)
	case OpTimes:
		c.requireIntOperands(n.Left, left, InvalidLeftOpTimes, n.Right, right, InvalidRightOpTimes)
		return c.result.set(n, Int)
	case OpLt:
		c.requireComparable(n, left, right, InvalidLtComparison)
		return c.result.set(n, Boolean)
	case OpGt:
		c.requireComparable(n, left, right, InvalidGtComparison)
		return c.result.set(n, Boolean)
	case OpLe:
		c.requireComparable(n, left, right, InvalidLeComparison)
		return c.result.set(n, Boolean)
	case OpGe:
		c.requireComparable(n, left, right, InvalidGeComparison)
		return c.result.set(n, Boolean)
	case OpEq:
		c.requireEquatable(n, left, right, InvalidEqComparison)
		return c.result.set(n, Boolean)
	case OpNe:
		c.requireEquatable(n, left, right, InvalidNeComparison)
		return c.result.set(n, Boolean)
	default:
		return c.result.set(n, Undefined)
	}
}

func (c *checker) requireIntOperands(leftExpr Expr, left Type, leftKind ErrorKind, rightExpr Expr, right Type, rightKind ErrorKind) {
	if !left.IsUndefined() && !left.IsInt() {
		c.errorf(leftExpr.Position(), leftKind, left)
	}
	if !right.IsUndefined() && !right.IsInt() {
		c.errorf(rightExpr.Position(), rightKind, right)
	}
}

func (c *checker) requireComparable(n *BinaryExpr, left, right Type, kind ErrorKind) {
	if (left.IsUndefined() || left.IsInt()) && (right.IsUndefined() || right.IsInt()) {
		return
	}
	c.errorf(n.Position(), kind, left, right)
}

func (c *checker) requireEquatable(n *BinaryExpr, left, right Type, kind ErrorKind) {
	if left.IsUndefined() || right.IsUndefined() {
		return
	}
	if left.IsAssignableTo(right) || right.IsAssignableTo(left) {
		return
	}
	c.errorf(n.Position(), kind, left, right)
}

func (c *checker) checkMethodCall(n *MethodCallExpr) Type {
	recvType := c.checkExpr(n.Receiver)
	argTypes := make([]Type, len(n.Args))
	for i, arg := range n.Args {
		argTypes[i] = c.checkExpr(arg)
	}
	if recvType.IsUndefined() {
		return c.result.set(n, Undefined)
	}
	if !recvType.IsClass() {
		c.errorf(n.Receiver.Position(), MethodCallOnNonClassType, recvType)
		return c.result.set(n, Undefined)
	}
	classInfo, ok := c.table.Classes[recvType.ClassName]
	if !ok {
		// Receiver type names a class that does not exist; already
		// reported where the type itself was produced.
		return c.result.set(n, Undefined)
	}
	method, ok := classInfo.Methods[n.Name]
	if !ok {
		c.errorf(n.NamePos, UndeclaredMethod, recvType.ClassName, n.Name)
		return c.result.set(n, Undefined)
	}
	if len(argTypes) != len(method.Formals) {
		c.errorf(n.NamePos, WrongParameterCount, n.Name, len(argTypes), len(method.Formals))
		return c.result.set(n, method.ReturnType)
	}
	for i, formal := range method.Formals {
		if argTypes[i].IsUndefined() {
			continue
		}
		if !argTypes[i].IsAssignableTo(formal.Type) {
			c.errorf(n.Args[i].Position(), WrongParameterType, n.Name, i+1, argTypes[i], formal.Type)
		}
	}
	return c.result.set(n, method.ReturnType)
}

// resolveVariable implements the lookup order local > parameter > field.
func (c *checker) resolveVariable(name string) (*VariableInfo, bool) {
	if c.method != nil {
		if v := c.method.lookupLocal(name); v != nil {
			return v, true
		}
		if v := c.method.lookupFormal(name); v != nil {
			return v, true
		}
	}
	if c.class != nil {
		if v := c.class.FieldsBy[name]; v != nil {
			return v, true
		}
	}
	return nil, false
}

func (c *checker) isClassName(name string) bool {
	_, ok := c.table.Classes[name]
	return ok
}

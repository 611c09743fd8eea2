package compiler

import "fmt"

// The parser is a hand-written recursive-descent parser with a token cursor,
// following the teacher's parser/expression cursor idiom (getCurrentToken,
// stepForward, expectToken, hasRemainTokens) rather than a parser generator
// — nothing in the retrieval pack builds a teaching-language front end with
// a generator dependency. Binary expressions are parsed by precedence
// climbing instead of the teacher's shunting-yard-style buildExpressionsTree,
// since MiniJava's precedence table is fixed and small enough that climbing
// reads more directly as the grammar.
//
// Dangling else is resolved the standard way: the "then" branch of every
// "if" is parsed through parseStatementNoShortIf, and an "if" parsed there
// takes an "else" that directly follows its own "then" branch before
// returning, so an "else" always binds to the nearest open "if".

type parser struct {
	file   string
	tokens []Token
	pos    int
	nextID NodeID
}

// Parse consumes a token stream and produces a Program. Parsing is
// fatal-for-stage: the first syntax error halts parsing and is returned as
// the sole error.
func Parse(tokens []Token, file string) (*Program, []*Error) {
	p := &parser{file: file, tokens: tokens}
	prog, err := p.parseProgram()
	if err != nil {
		return nil, []*Error{err}
	}
	return prog, nil
}

func (p *parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) at(tt TokenType) bool {
	return p.current().Type == tt
}

func (p *parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *parser) expect(tt TokenType) (Token, *Error) {
	if !p.at(tt) {
		return Token{}, p.unexpected(tt)
	}
	return p.advance(), nil
}

func (p *parser) unexpected(want TokenType) *Error {
	got := p.current()
	msg := fmt.Sprintf("expected %s, found %s %q", want, got.Type, got.Text)
	return newError(p.file, got.Pos, ParseError, msg)
}

func (p *parser) errorf(pos Position, format string, args ...interface{}) *Error {
	return newError(p.file, pos, ParseError, fmt.Sprintf(format, args...))
}

func (p *parser) freshID() NodeID {
	id := p.nextID
	p.nextID++
	return id
}

// ---- Program / classes ----

func (p *parser) parseProgram() (*Program, *Error) {
	main, err := p.parseMainClass()
	if err != nil {
		return nil, err
	}
	var classes []*ClassDecl
	for p.at(TClass) {
		cls, err := p.parseClassDecl()
		if err != nil {
			return nil, err
		}
		classes = append(classes, cls)
	}
	if !p.at(TEOF) {
		return nil, p.errorf(p.current().Pos, "unexpected trailing input after last class")
	}
	return &Program{Main: main, Classes: classes}, nil
}

func (p *parser) parseMainClass() (*MainClassDecl, *Error) {
	classTok, err := p.expect(TClass)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TLBrace); err != nil {
		return nil, err
	}
	if _, err := p.expect(TPublic); err != nil {
		return nil, err
	}
	if _, err := p.expect(TStatic); err != nil {
		return nil, err
	}
	if _, err := p.expect(TVoid); err != nil {
		return nil, err
	}
	method, err := p.expect(TIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TLParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(TString); err != nil {
		return nil, err
	}
	if _, err := p.expect(TLBracket); err != nil {
		return nil, err
	}
	if _, err := p.expect(TRBracket); err != nil {
		return nil, err
	}
	arg, err := p.expect(TIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TRParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(TLBrace); err != nil {
		return nil, err
	}
	locals, err := p.parseVarDecls()
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementsUntilBrace()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TRBrace); err != nil {
		return nil, err
	}
	if _, err := p.expect(TRBrace); err != nil {
		return nil, err
	}
	return &MainClassDecl{
		Pos:    classTok.Pos,
		Name:   name.Text,
		Method: method.Text,
		Arg:    arg.Text,
		Locals: locals,
		Stmts:  stmts,
	}, nil
}

func (p *parser) parseClassDecl() (*ClassDecl, *Error) {
	classTok, err := p.expect(TClass)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TLBrace); err != nil {
		return nil, err
	}
	var fields []*FieldDecl
	for p.startsType() {
		ty, namePos, fieldName, err := p.parseTypeAndName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TSemicolon); err != nil {
			return nil, err
		}
		fields = append(fields, &FieldDecl{Pos: namePos, Type: ty, Name: fieldName})
	}
	var methods []*MethodDecl
	for p.at(TPublic) {
		m, err := p.parseMethodDecl()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if _, err := p.expect(TRBrace); err != nil {
		return nil, err
	}
	return &ClassDecl{Pos: classTok.Pos, Name: name.Text, Fields: fields, Methods: methods}, nil
}

func (p *parser) parseMethodDecl() (*MethodDecl, *Error) {
	pubTok, err := p.expect(TPublic)
	if err != nil {
		return nil, err
	}
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TLParen); err != nil {
		return nil, err
	}
	var formals []*Formal
	if !p.at(TRParen) {
		for {
			ty, pos, fname, err := p.parseTypeAndName()
			if err != nil {
				return nil, err
			}
			formals = append(formals, &Formal{Pos: pos, Type: ty, Name: fname})
			if !p.at(TComma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TRParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(TLBrace); err != nil {
		return nil, err
	}
	locals, err := p.parseVarDecls()
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementsUntilReturn()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TReturn); err != nil {
		return nil, err
	}
	retExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TSemicolon); err != nil {
		return nil, err
	}
	if _, err := p.expect(TRBrace); err != nil {
		return nil, err
	}
	return &MethodDecl{
		Pos:        pubTok.Pos,
		ReturnType: retType,
		Name:       name.Text,
		Formals:    formals,
		Locals:     locals,
		Stmts:      stmts,
		ReturnExpr: retExpr,
	}, nil
}

// parseStatementsUntilReturn collects statements up to (not including) the
// method's mandatory trailing "return", so it stops as soon as "return" is
// seen rather than trying to statement-parse it.
func (p *parser) parseStatementsUntilReturn() ([]Stmt, *Error) {
	var stmts []Stmt
	for !p.at(TReturn) {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (p *parser) parseStatementsUntilBrace() ([]Stmt, *Error) {
	var stmts []Stmt
	for !p.at(TRBrace) {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// startsType reports whether the current token can begin a type, used to
// decide whether the next class member is a field or the method section has
// begun.
func (p *parser) startsType() bool {
	switch p.current().Type {
	case TInt, TBoolean, TIdentifier:
		return true
	default:
		return false
	}
}

func (p *parser) parseType() (Type, *Error) {
	switch p.current().Type {
	case TInt:
		p.advance()
		if p.at(TLBracket) {
			p.advance()
			if _, err := p.expect(TRBracket); err != nil {
				return Type{}, err
			}
			// A second "[" immediately after "int[]" would be a
			// multi-dimensional array, which MiniJava's grammar does
			// not admit syntactically.
			if p.at(TLBracket) {
				return Type{}, p.errorf(p.current().Pos, "multi-dimensional arrays are not supported")
			}
			return IntArray, nil
		}
		return Int, nil
	case TBoolean:
		p.advance()
		return Boolean, nil
	case TIdentifier:
		tok := p.advance()
		return ClassType(tok.Text), nil
	default:
		got := p.current()
		return Type{}, p.errorf(got.Pos, "expected a type, found %s %q", got.Type, got.Text)
	}
}

func (p *parser) parseTypeAndName() (Type, Position, string, *Error) {
	ty, err := p.parseType()
	if err != nil {
		return Type{}, Position{}, "", err
	}
	name, err := p.expect(TIdentifier)
	if err != nil {
		return Type{}, Position{}, "", err
	}
	return ty, name.Pos, name.Text, nil
}

func (p *parser) parseVarDecls() ([]*VarDecl, *Error) {
	var decls []*VarDecl
	for p.startsVarDecl() {
		ty, pos, name, err := p.parseTypeAndName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TSemicolon); err != nil {
			return nil, err
		}
		decls = append(decls, &VarDecl{Pos: pos, Type: ty, Name: name})
	}
	return decls, nil
}

// startsVarDecl disambiguates "Type name;" from a leading statement. Only
// "int", "boolean" and a bare class-name identifier can start a local
// declaration, and the latter is only a declaration when followed
// immediately by another identifier (a statement starting with an
// identifier is always an assignment).
func (p *parser) startsVarDecl() bool {
	switch p.current().Type {
	case TInt, TBoolean:
		return true
	case TIdentifier:
		return p.peekType(1) == TIdentifier
	default:
		return false
	}
}

func (p *parser) peekType(offset int) TokenType {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return TEOF
	}
	return p.tokens[idx].Type
}

// ---- Statements ----
//
// parseStatement and parseStatementNoShortIf follow the classic
// statement / statement_no_short_if split. Every "if" consumes an "else"
// that directly follows its "then" branch, so an "else" attaches to the
// innermost "if" still open; an "if" with no "else" is accepted in either
// context.

func (p *parser) parseStatement() (Stmt, *Error) {
	return p.parseStatementImpl(true)
}

func (p *parser) parseStatementNoShortIf() (Stmt, *Error) {
	return p.parseStatementImpl(false)
}

func (p *parser) parseStatementImpl(allowShortIf bool) (Stmt, *Error) {
	switch p.current().Type {
	case TLBrace:
		return p.parseBlock()
	case TIf:
		return p.parseIf(allowShortIf)
	case TWhile:
		return p.parseWhile(allowShortIf)
	case TPrintln:
		return p.parsePrintln()
	case TIdentifier:
		return p.parseAssignOrArrayAssign()
	default:
		got := p.current()
		return nil, p.errorf(got.Pos, "expected a statement, found %s %q", got.Type, got.Text)
	}
}

func (p *parser) parseBlock() (Stmt, *Error) {
	open, err := p.expect(TLBrace)
	if err != nil {
		return nil, err
	}
	var stmts []Stmt
	for !p.at(TRBrace) {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(TRBrace); err != nil {
		return nil, err
	}
	return &BlockStmt{stmtHeader: stmtHeader{pos: open.Pos}, Stmts: stmts}, nil
}

func (p *parser) parseIf(allowShortIf bool) (Stmt, *Error) {
	ifTok, err := p.expect(TIf)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TRParen); err != nil {
		return nil, err
	}
	then, err := p.parseStatementNoShortIf()
	if err != nil {
		return nil, err
	}
	if !p.at(TElse) {
		return &IfStmt{stmtHeader: stmtHeader{pos: ifTok.Pos}, Cond: cond, Then: then}, nil
	}
	p.advance()
	elseStmt, err := p.parseStatementImpl(allowShortIf)
	if err != nil {
		return nil, err
	}
	return &IfElseStmt{stmtHeader: stmtHeader{pos: ifTok.Pos}, Cond: cond, Then: then, Else: elseStmt}, nil
}

func (p *parser) parseWhile(allowShortIf bool) (Stmt, *Error) {
	whileTok, err := p.expect(TWhile)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TRParen); err != nil {
		return nil, err
	}
	var body Stmt
	if allowShortIf {
		body, err = p.parseStatement()
	} else {
		body, err = p.parseStatementNoShortIf()
	}
	if err != nil {
		return nil, err
	}
	return &WhileStmt{stmtHeader: stmtHeader{pos: whileTok.Pos}, Cond: cond, Body: body}, nil
}

func (p *parser) parsePrintln() (Stmt, *Error) {
	tok, err := p.expect(TPrintln)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TLParen); err != nil {
		return nil, err
	}
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TRParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(TSemicolon); err != nil {
		return nil, err
	}
	return &PrintlnStmt{stmtHeader: stmtHeader{pos: tok.Pos}, Value: val}, nil
}

func (p *parser) parseAssignOrArrayAssign() (Stmt, *Error) {
	name, err := p.expect(TIdentifier)
	if err != nil {
		return nil, err
	}
	if p.at(TLBracket) {
		p.advance()
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TRBracket); err != nil {
			return nil, err
		}
		if _, err := p.expect(TAssign); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TSemicolon); err != nil {
			return nil, err
		}
		return &ArrayAssignStmt{
			stmtHeader: stmtHeader{pos: name.Pos},
			Name:       name.Text,
			NamePos:    name.Pos,
			Index:      index,
			Value:      value,
		}, nil
	}
	if _, err := p.expect(TAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TSemicolon); err != nil {
		return nil, err
	}
	return &AssignStmt{
		stmtHeader: stmtHeader{pos: name.Pos},
		Name:       name.Text,
		NamePos:    name.Pos,
		Value:      value,
	}, nil
}

// ---- Expressions ----
//
// Precedence climbing, lowest to highest: || , && , ==/!= , </>/<=/>= ,
// +/- , * , unary ! , then the primary/postfix grammar (array indexing,
// .length, method calls).

func (p *parser) parseExpression() (Expr, *Error) {
	return p.parseOr()
}

func (p *parser) parseOr() (Expr, *Error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(TOr) {
		tok := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = p.newBinary(tok.Pos, OpOr, left, right)
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, *Error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.at(TAnd) {
		tok := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = p.newBinary(tok.Pos, OpAnd, left, right)
	}
	return left, nil
}

func (p *parser) parseEquality() (Expr, *Error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.at(TEqual) || p.at(TNotEqual) {
		tok := p.advance()
		op := OpEq
		if tok.Type == TNotEqual {
			op = OpNe
		}
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = p.newBinary(tok.Pos, op, left, right)
	}
	return left, nil
}

func (p *parser) parseRelational() (Expr, *Error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.at(TLessThan) || p.at(TGreaterThan) || p.at(TLessEqual) || p.at(TGreaterEqual) {
		tok := p.advance()
		var op BinaryOp
		switch tok.Type {
		case TLessThan:
			op = OpLt
		case TGreaterThan:
			op = OpGt
		case TLessEqual:
			op = OpLe
		default:
			op = OpGe
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = p.newBinary(tok.Pos, op, left, right)
	}
	return left, nil
}

func (p *parser) parseAdditive() (Expr, *Error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.at(TPlus) || p.at(TMinus) {
		tok := p.advance()
		op := OpPlus
		if tok.Type == TMinus {
			op = OpMinus
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = p.newBinary(tok.Pos, op, left, right)
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expr, *Error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(TStar) {
		tok := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = p.newBinary(tok.Pos, OpTimes, left, right)
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, *Error) {
	if p.at(TNot) {
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		e := &NotExpr{Operand: operand}
		e.pos = tok.Pos
		e.setID(p.freshID())
		return e, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Expr, *Error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	// The array base of "[...]" cannot itself be a freshly allocated array:
	// "new int[e][e]" is a parse error, not an expression indexing another
	// expression.
	if _, isNewArray := e.(*NewIntArrayExpr); isNewArray && p.at(TLBracket) {
		return nil, p.errorf(p.current().Pos, "cannot index a freshly allocated array; multi-dimensional arrays are not supported")
	}
	for {
		switch p.current().Type {
		case TLBracket:
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TRBracket); err != nil {
				return nil, err
			}
			n := &ArrayAccessExpr{Array: e, Index: index}
			n.pos = e.Position()
			n.setID(p.freshID())
			e = n
		case TDot:
			p.advance()
			if p.at(TLength) {
				p.advance()
				n := &ArrayLengthExpr{Array: e}
				n.pos = e.Position()
				n.setID(p.freshID())
				e = n
				continue
			}
			name, err := p.expect(TIdentifier)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TLParen); err != nil {
				return nil, err
			}
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			n := &MethodCallExpr{Receiver: e, Name: name.Text, NamePos: name.Pos, Args: args}
			n.pos = e.Position()
			n.setID(p.freshID())
			e = n
		default:
			return e, nil
		}
	}
}

func (p *parser) parseArgs() ([]Expr, *Error) {
	var args []Expr
	if p.at(TRParen) {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.at(TComma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(TRParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parsePrimary() (Expr, *Error) {
	tok := p.current()
	switch tok.Type {
	case TInteger:
		p.advance()
		e := &IntLitExpr{Text: tok.Text}
		e.pos = tok.Pos
		e.setID(p.freshID())
		return e, nil
	case TTrue:
		p.advance()
		e := &TrueExpr{}
		e.pos = tok.Pos
		e.setID(p.freshID())
		return e, nil
	case TFalse:
		p.advance()
		e := &FalseExpr{}
		e.pos = tok.Pos
		e.setID(p.freshID())
		return e, nil
	case TThis:
		p.advance()
		e := &ThisExpr{}
		e.pos = tok.Pos
		e.setID(p.freshID())
		return e, nil
	case TIdentifier:
		p.advance()
		e := &IdentExpr{Name: tok.Text}
		e.pos = tok.Pos
		e.setID(p.freshID())
		return e, nil
	case TNew:
		return p.parseNew()
	case TLParen:
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TRParen); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, p.errorf(tok.Pos, "expected an expression, found %s %q", tok.Type, tok.Text)
	}
}

func (p *parser) parseNew() (Expr, *Error) {
	newTok, err := p.expect(TNew)
	if err != nil {
		return nil, err
	}
	if p.at(TInt) {
		p.advance()
		if _, err := p.expect(TLBracket); err != nil {
			return nil, err
		}
		size, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TRBracket); err != nil {
			return nil, err
		}
		e := &NewIntArrayExpr{Size: size}
		e.pos = newTok.Pos
		e.setID(p.freshID())
		return e, nil
	}
	name, err := p.expect(TIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TLParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(TRParen); err != nil {
		return nil, err
	}
	e := &NewInstanceExpr{ClassName: name.Text}
	e.pos = newTok.Pos
	e.setID(p.freshID())
	return e, nil
}

func (p *parser) newBinary(pos Position, op BinaryOp, left, right Expr) Expr {
	e := &BinaryExpr{Op: op, Left: left, Right: right}
	e.pos = pos
	e.setID(p.freshID())
	return e
}

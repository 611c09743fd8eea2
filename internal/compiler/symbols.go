package compiler

// The symbol table builder runs in the same two passes as the teacher's
// buildSymbolTables / buildClassSymbolTable / buildClassVariables /
// buildClassMethods pipeline: pass one records every class's fields and
// method signatures (including formals) so that any class can refer to any
// other regardless of declaration order, pass two registers each method's
// locals. Unlike the teacher, both passes accumulate diagnostics
// into a shared list instead of returning on the first error, since
// symbol-table construction is an accumulating stage.

type VariableInfo struct {
	Name string
	Type Type
	Pos  Position
}

type MethodInfo struct {
	Name       string
	ReturnType Type
	Formals    []*VariableInfo
	FormalsBy  map[string]*VariableInfo
	Locals     []*VariableInfo
	LocalsBy   map[string]*VariableInfo
	Decl       *MethodDecl
	Pos        Position
}

func (m *MethodInfo) lookupLocal(name string) *VariableInfo    { return m.LocalsBy[name] }
func (m *MethodInfo) lookupFormal(name string) *VariableInfo   { return m.FormalsBy[name] }

type ClassInfo struct {
	Name      string
	Fields    []*VariableInfo
	FieldsBy  map[string]*VariableInfo
	Methods   map[string]*MethodInfo
	Decl      *ClassDecl
	Pos       Position
}

type Table struct {
	Classes  map[string]*ClassInfo
	MainName string
	MainPos  Position
	// Main holds the symbols of the main class's implicit entry-point
	// method, so identifiers in its body resolve through the same
	// local > parameter > field lookup as an ordinary method's.
	Main     *MethodInfo
	byMethod map[*MethodDecl]*MethodInfo
}

func newTable() *Table {
	return &Table{Classes: map[string]*ClassInfo{}, byMethod: map[*MethodDecl]*MethodInfo{}}
}

// MethodInfoFor returns the MethodInfo built for a parsed MethodDecl, used by
// the type checker to resolve formals/locals without re-walking the class
// table.
func (t *Table) MethodInfoFor(decl *MethodDecl) *MethodInfo {
	return t.byMethod[decl]
}

// BuildSymbols runs the two-pass builder over a parsed program.
func BuildSymbols(prog *Program, file string) (*Table, []*Error) {
	b := &symbolBuilder{file: file, table: newTable()}
	b.passOne(prog)
	b.passTwo(prog)
	return b.table, b.errs
}

type symbolBuilder struct {
	file  string
	table *Table
	errs  []*Error
}

func (b *symbolBuilder) errorf(pos Position, kind ErrorKind, args ...interface{}) {
	b.errs = append(b.errs, newError(b.file, pos, kind, args...))
}

// passOne records every class's name, fields and method signatures.
func (b *symbolBuilder) passOne(prog *Program) {
	b.table.MainName = prog.Main.Name
	b.table.MainPos = prog.Main.Pos
	// The main class occupies the class namespace too: a later class
	// reusing its name is a duplicate, exactly like two ordinary classes
	// sharing a name.
	mainInfo := &ClassInfo{Name: prog.Main.Name, FieldsBy: map[string]*VariableInfo{}, Methods: map[string]*MethodInfo{}, Pos: prog.Main.Pos}
	b.table.Classes[prog.Main.Name] = mainInfo
	b.table.Main = &MethodInfo{
		Name:      prog.Main.Method,
		FormalsBy: map[string]*VariableInfo{},
		LocalsBy:  map[string]*VariableInfo{},
		Pos:       prog.Main.Pos,
	}

	for _, cls := range prog.Classes {
		if _, dup := b.table.Classes[cls.Name]; dup {
			b.errorf(cls.Pos, DuplicateClass, cls.Name)
			continue
		}
		info := &ClassInfo{Name: cls.Name, FieldsBy: map[string]*VariableInfo{}, Methods: map[string]*MethodInfo{}, Decl: cls, Pos: cls.Pos}
		b.table.Classes[cls.Name] = info

		for _, f := range cls.Fields {
			if _, dup := info.FieldsBy[f.Name]; dup {
				b.errorf(f.Pos, DuplicateField, f.Name, cls.Name)
				continue
			}
			v := &VariableInfo{Name: f.Name, Type: f.Type, Pos: f.Pos}
			info.Fields = append(info.Fields, v)
			info.FieldsBy[f.Name] = v
		}

		for _, m := range cls.Methods {
			if _, dup := info.Methods[m.Name]; dup {
				b.errorf(m.Pos, DuplicateMethod, m.Name, cls.Name)
				continue
			}
			mi := &MethodInfo{
				Name:       m.Name,
				ReturnType: m.ReturnType,
				FormalsBy:  map[string]*VariableInfo{},
				LocalsBy:   map[string]*VariableInfo{},
				Decl:       m,
				Pos:        m.Pos,
			}
			for _, formal := range m.Formals {
				if _, dup := mi.FormalsBy[formal.Name]; dup {
					b.errorf(formal.Pos, DuplicateParameter, formal.Name, m.Name)
					continue
				}
				v := &VariableInfo{Name: formal.Name, Type: formal.Type, Pos: formal.Pos}
				mi.Formals = append(mi.Formals, v)
				mi.FormalsBy[formal.Name] = v
			}
			info.Methods[m.Name] = mi
			b.table.byMethod[m] = mi
		}
	}
}

// passTwo registers each method's locals. A local is a duplicate only if it
// repeats the name of another local of the same method; sharing a name with
// a parameter or a field is allowed, and lookup later prefers local over
// parameter over field.
func (b *symbolBuilder) passTwo(prog *Program) {
	b.buildLocals(b.table.Main, prog.Main.Locals, prog.Main.Method)
	for _, cls := range prog.Classes {
		info := b.table.Classes[cls.Name]
		if info == nil {
			continue
		}
		for _, m := range cls.Methods {
			mi := info.Methods[m.Name]
			if mi == nil {
				continue
			}
			b.buildLocals(mi, m.Locals, m.Name)
		}
	}
}

func (b *symbolBuilder) buildLocals(mi *MethodInfo, locals []*VarDecl, methodName string) {
	for _, local := range locals {
		if _, dup := mi.LocalsBy[local.Name]; dup {
			b.errorf(local.Pos, DuplicateLocal, local.Name, methodName)
			continue
		}
		v := &VariableInfo{Name: local.Name, Type: local.Type, Pos: local.Pos}
		mi.Locals = append(mi.Locals, v)
		mi.LocalsBy[local.Name] = v
	}
}

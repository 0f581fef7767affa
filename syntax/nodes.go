package syntax

// Node is any element of the Swift syntax tree. Trees are built once by
// the parser and never modified afterwards.
type Node interface {
	Range() Range
	aNode()
}

type node struct {
	rng Range
}

func (n *node) Range() Range { return n.rng }
func (*node) aNode()         {}

func (n *node) setRange(r Range) { n.rng = r }

// File is a parsed Swift source unit.
type File struct {
	node
	Name  string
	Items []Stmt // top-level declarations and statements
}

// ----------------------------------------------------------------------------
// Declarations

type (
	Decl interface {
		Node
		aDecl()
	}

	// Attribute is an @name or @name(args) annotation. Args is raw text.
	Attribute struct {
		node
		Name string
		Args string
	}

	// Decorations common to most declarations.
	Decorations struct {
		Attrs []*Attribute
		Mods  []string // e.g. "public", "private(set)", "static"
	}

	ImportDecl struct {
		Decorations
		decl
		Kind string // optional import kind: class, struct, func ...
		Path string
	}

	// VarDecl covers both let (Immutable) and var declarations.
	VarDecl struct {
		Decorations
		decl
		Immutable bool
		Kind      VarKind

		// VarStored
		Inits []*PatternInit

		// VarComputed, VarAccessors, VarObserved, VarRequirement
		Name string
		Type Type
		Init Expr // VarObserved only, may be nil

		Getter  *Accessor // VarComputed (Param unused) and VarAccessors
		Setter  *Accessor
		WillSet *Accessor
		DidSet  *Accessor

		Settable bool // VarRequirement: { get set }
	}

	// PatternInit is one "pattern [: Type] [= init]" of a stored declaration.
	PatternInit struct {
		node
		Pattern Pattern
		Type    Type
		Init    Expr
	}

	// Accessor is a get/set/willSet/didSet block. Param is the explicit
	// parameter name, or "" when the source omits it.
	Accessor struct {
		node
		Mods  []string
		Param string
		Body  *Block
	}

	FuncDecl struct {
		Decorations
		decl
		Name     string
		Generics *GenericParams
		Params   []*Param
		Throws   string // "", "throws" or "rethrows"
		Result   Type
		Where    []*Requirement
		Body     *Block // nil for protocol requirements
	}

	// Param is a function or initializer parameter. Label is the external
	// argument label: "" when it matches Name, "_" when omitted at call sites.
	Param struct {
		node
		Attrs    []*Attribute
		Label    string
		Name     string
		Type     Type
		Inout    bool
		Variadic bool
		Default  Expr
	}

	InitDecl struct {
		Decorations
		decl
		Failable string // "", "?" or "!"
		Generics *GenericParams
		Params   []*Param
		Throws   string
		Body     *Block
	}

	DeinitDecl struct {
		Decorations
		decl
		Body *Block
	}

	ClassDecl struct {
		Decorations
		decl
		Name     string
		Generics *GenericParams
		Inherits []Type
		Where    []*Requirement
		Members  []Decl
	}

	StructDecl struct {
		Decorations
		decl
		Name     string
		Generics *GenericParams
		Inherits []Type
		Where    []*Requirement
		Members  []Decl
	}

	ProtocolDecl struct {
		Decorations
		decl
		Name     string
		Inherits []Type
		Members  []Decl
	}

	ExtensionDecl struct {
		Decorations
		decl
		Type     *TypeIdent
		Inherits []Type
		Where    []*Requirement
		Members  []Decl
	}

	EnumDecl struct {
		Decorations
		decl
		Indirect bool
		Name     string
		Generics *GenericParams
		Inherits []Type
		Where    []*Requirement
		Cases    []*EnumCase // flattened across case declarations, in order
		Members  []Decl
	}

	// EnumCase is one element of a "case a, b(Int), c = 3" declaration.
	EnumCase struct {
		node
		Indirect bool
		Name     string
		Payload  *TupleType // associated values
		Raw      Expr       // raw value literal
	}

	TypealiasDecl struct {
		Decorations
		decl
		Name     string
		Generics *GenericParams
		Type     Type // nil for associatedtype without default
		Assoc    bool // associatedtype
	}

	SubscriptDecl struct {
		Decorations
		decl
		Params []*Param
		Result Type
		Getter *Accessor
		Setter *Accessor
	}

	GenericParams struct {
		node
		Params []*GenericParam
		Where  []*Requirement
	}

	GenericParam struct {
		node
		Name       string
		Constraint Type
	}

	// Requirement is one "T: Proto" or "T == U" where-clause entry.
	Requirement struct {
		node
		Left  Type
		Op    string
		Right Type
	}
)

type decl struct{ node }

func (*decl) aDecl() {}

// VarKind distinguishes the body shapes of a variable declaration.
type VarKind int

const (
	VarStored      VarKind = iota // let a = 1, b: Int
	VarComputed                   // var a: Int { return 1 }
	VarAccessors                  // var a: Int { get {} set {} }
	VarObserved                   // var a: Int = 1 { willSet {} didSet {} }
	VarRequirement                // var a: Int { get set } in a protocol
)

// HasModifier reports whether mod appears in the declaration modifiers.
func (d *Decorations) HasModifier(mod string) bool {
	for _, m := range d.Mods {
		if m == mod {
			return true
		}
	}
	return false
}

// HasAttribute reports whether @name is attached.
func (d *Decorations) HasAttribute(name string) bool {
	for _, a := range d.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// DeclDecorations returns the attributes and modifiers of d, or nil.
func DeclDecorations(d Decl) *Decorations {
	switch d := d.(type) {
	case *ImportDecl:
		return &d.Decorations
	case *VarDecl:
		return &d.Decorations
	case *FuncDecl:
		return &d.Decorations
	case *InitDecl:
		return &d.Decorations
	case *DeinitDecl:
		return &d.Decorations
	case *ClassDecl:
		return &d.Decorations
	case *StructDecl:
		return &d.Decorations
	case *ProtocolDecl:
		return &d.Decorations
	case *ExtensionDecl:
		return &d.Decorations
	case *EnumDecl:
		return &d.Decorations
	case *TypealiasDecl:
		return &d.Decorations
	case *SubscriptDecl:
		return &d.Decorations
	}
	return nil
}

// IsStatic reports whether a member declaration belongs to its type rather
// than to instances (static, or class-level in classes).
func IsStatic(d Decl) bool {
	dec := DeclDecorations(d)
	return dec != nil && (dec.HasModifier("static") || dec.HasModifier("class"))
}

// ----------------------------------------------------------------------------
// Statements

type (
	Stmt interface {
		Node
		aStmt()
	}

	// Block is a braced statement list.
	Block struct {
		node
		Stmts []Stmt
	}

	DeclStmt struct {
		stmt
		Decl Decl
	}

	ExprStmt struct {
		stmt
		X Expr
	}

	IfStmt struct {
		stmt
		Conds  []*Condition
		Then   *Block
		ElseIf *IfStmt
		Else   *Block
	}

	GuardStmt struct {
		stmt
		Conds []*Condition
		Else  *Block
	}

	SwitchStmt struct {
		stmt
		Subject Expr
		Cases   []*CaseClause
	}

	// CaseClause is a "case p1, p2:" or "default:" label with its body.
	CaseClause struct {
		node
		Items   []*CaseItem
		Default bool
		Body    []Stmt
	}

	CaseItem struct {
		node
		Pattern Pattern
		Where   Expr
	}

	ForInStmt struct {
		stmt
		Pattern Pattern
		Seq     Expr
		Where   Expr
		Body    *Block
	}

	WhileStmt struct {
		stmt
		Conds []*Condition
		Body  *Block
	}

	RepeatWhileStmt struct {
		stmt
		Body *Block
		Cond Expr
	}

	ReturnStmt struct {
		stmt
		X Expr // may be nil
	}

	BreakStmt struct {
		stmt
		Label string
	}

	ContinueStmt struct {
		stmt
		Label string
	}

	FallthroughStmt struct {
		stmt
	}

	ThrowStmt struct {
		stmt
		X Expr
	}

	DeferStmt struct {
		stmt
		Body *Block
	}

	DoStmt struct {
		stmt
		Body    *Block
		Catches []*CatchClause
	}

	CatchClause struct {
		node
		Pattern Pattern // nil for a bare catch
		Where   Expr
		Body    *Block
	}

	// Condition is one element of an if/guard/while condition list.
	Condition struct {
		node
		Kind CondKind

		X Expr // CondExpr

		// CondOptionalBinding: let/var Pattern [: Type] = Init
		// CondCase: case Pattern = Init
		Immutable bool
		Pattern   Pattern
		Type      Type
		Init      Expr

		Availability string // CondAvailability raw arguments
	}
)

type stmt struct{ node }

func (*stmt) aStmt() {}

// CondKind distinguishes condition list elements.
type CondKind int

const (
	CondExpr CondKind = iota
	CondOptionalBinding
	CondCase
	CondAvailability
)

// ----------------------------------------------------------------------------
// Expressions

type (
	Expr interface {
		Node
		aExpr()
	}

	// LiteralExpr is nil, true/false, a number, or a string. Value holds the
	// source text; for strings it includes delimiters.
	LiteralExpr struct {
		expr
		Kind         LitKind
		Value        string
		Interpolated bool
	}

	ArrayLiteralExpr struct {
		expr
		Elems []Expr
	}

	DictLiteralExpr struct {
		expr
		Entries []*DictEntry
	}

	DictEntry struct {
		node
		Key   Expr
		Value Expr
	}

	// IdentExpr is a name, optionally specialized: Array<Int>. Implicit
	// closure parameters ($0) and operator references (+) are IdentExprs too.
	IdentExpr struct {
		expr
		Name        string
		GenericArgs []Type
	}

	// ImplicitMemberExpr is .name with the type inferred from context.
	ImplicitMemberExpr struct {
		expr
		Name string
	}

	SelfExpr struct {
		expr
	}

	SuperExpr struct {
		expr
	}

	WildcardExpr struct {
		expr
	}

	ParenExpr struct {
		expr
		X Expr
	}

	TupleExpr struct {
		expr
		Elems []*TupleElem
	}

	TupleElem struct {
		node
		Label string
		X     Expr
	}

	PrefixExpr struct {
		expr
		Op string
		X  Expr
	}

	PostfixExpr struct {
		expr
		Op string
		X  Expr
	}

	// InOutExpr is &x passed to an inout parameter.
	InOutExpr struct {
		expr
		X Expr
	}

	BinaryExpr struct {
		expr
		Op string
		X  Expr
		Y  Expr
	}

	AssignExpr struct {
		expr
		Lhs Expr
		Rhs Expr
	}

	TernaryExpr struct {
		expr
		Cond Expr
		Then Expr
		Else Expr
	}

	// TryExpr is try, try? (Kind "?") or try! (Kind "!").
	TryExpr struct {
		expr
		Kind string
		X    Expr
	}

	// CastExpr is x is T, x as T, x as? T or x as! T.
	CastExpr struct {
		expr
		Op   string
		X    Expr
		Type Type
	}

	CallExpr struct {
		expr
		Fun      Expr
		Args     []*Arg
		Trailing *ClosureExpr
	}

	Arg struct {
		node
		Label string
		X     Expr
	}

	ClosureExpr struct {
		expr
		Captures  string // raw capture list text without brackets
		Params    []*ClosureParam
		Signature bool // an explicit "... in" signature was present
		Throws    bool
		Result    Type
		Body      []Stmt
	}

	ClosureParam struct {
		node
		Name string
		Type Type
	}

	// MemberExpr is X.Name. Name may be a tuple index ("0") or "init".
	MemberExpr struct {
		expr
		X           Expr
		Name        string
		GenericArgs []Type
	}

	SubscriptExpr struct {
		expr
		X    Expr
		Args []*Arg
	}

	// OptionalChainExpr is the postfix ? in a?.b.
	OptionalChainExpr struct {
		expr
		X Expr
	}

	// ForceExpr is the postfix ! in a!.
	ForceExpr struct {
		expr
		X Expr
	}

	// TypeExpr is a type in expression position: [Int] in [Int](), Int.self.
	TypeExpr struct {
		expr
		Type Type
	}

	// KeyPathExpr is \Type.path, kept as raw text.
	KeyPathExpr struct {
		expr
		Raw string
	}
)

type expr struct{ node }

func (*expr) aExpr() {}

// LitKind classifies literal expressions.
type LitKind int

const (
	LitNil LitKind = iota
	LitBool
	LitInt
	LitFloat
	LitString
)

// ----------------------------------------------------------------------------
// Types

type (
	Type interface {
		Node
		aType()
	}

	// TypeIdent is a possibly dotted, possibly generic type name.
	TypeIdent struct {
		typ
		Parts []*TypePart
	}

	TypePart struct {
		node
		Name string
		Args []Type
	}

	ArrayType struct {
		typ
		Elem Type
	}

	DictType struct {
		typ
		Key   Type
		Value Type
	}

	OptionalType struct {
		typ
		Elem Type
	}

	// ImplicitlyUnwrappedType is T!.
	ImplicitlyUnwrappedType struct {
		typ
		Elem Type
	}

	FuncType struct {
		typ
		Attrs  []*Attribute
		Params []*TupleTypeElem
		Throws bool
		Result Type
	}

	TupleType struct {
		typ
		Elems []*TupleTypeElem
	}

	TupleTypeElem struct {
		node
		Label    string // "" when unlabeled; "_" is normalized to ""
		Type     Type
		Inout    bool
		Variadic bool
	}

	// CompositionType is A & B.
	CompositionType struct {
		typ
		Types []Type
	}

	// MetatypeType is T.Type or T.Protocol.
	MetatypeType struct {
		typ
		Elem Type
		Kind string
	}
)

type typ struct{ node }

func (*typ) aType() {}

// Name returns the dotted name without generic arguments.
func (t *TypeIdent) Name() string {
	s := ""
	for i, p := range t.Parts {
		if i > 0 {
			s += "."
		}
		s += p.Name
	}
	return s
}

// ----------------------------------------------------------------------------
// Patterns

type (
	Pattern interface {
		Node
		aPattern()
	}

	IdentPattern struct {
		pattern
		Name string
	}

	WildcardPattern struct {
		pattern
	}

	TuplePattern struct {
		pattern
		Elems []*TuplePatternElem
	}

	TuplePatternElem struct {
		node
		Label   string
		Pattern Pattern
	}

	// BindingPattern is let p / var p inside a case pattern.
	BindingPattern struct {
		pattern
		Immutable bool
		Pattern   Pattern
	}

	// EnumCasePattern is [Type].name[(sub-patterns)].
	EnumCasePattern struct {
		pattern
		Type  Type // nil for .name
		Name  string
		Tuple *TuplePattern
	}

	IsPattern struct {
		pattern
		Type Type
	}

	// ExprPattern matches against an expression value: literals, ranges.
	ExprPattern struct {
		pattern
		X Expr
	}

	// TypedPattern is p: T, used in catch clauses and closure params.
	TypedPattern struct {
		pattern
		Pattern Pattern
		Type    Type
	}

	// OptionalPattern is p? in case let x?.
	OptionalPattern struct {
		pattern
		Pattern Pattern
	}
)

type pattern struct{ node }

func (*pattern) aPattern() {}

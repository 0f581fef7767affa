package syntax

// Inspect traverses the tree rooted at n in depth-first order, calling f
// for each node. If f returns false, the children of that node are skipped.
// Nil nodes are never passed to f.
func Inspect(n Node, f func(Node) bool) {
	if isNil(n) || !f(n) {
		return
	}
	for _, c := range children(n) {
		Inspect(c, f)
	}
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch n := n.(type) {
	case *Block:
		return n == nil
	case *TypeIdent:
		return n == nil
	case *TupleType:
		return n == nil
	case *ClosureExpr:
		return n == nil
	case *IfStmt:
		return n == nil
	case *Accessor:
		return n == nil
	case *GenericParams:
		return n == nil
	case *TuplePattern:
		return n == nil
	}
	return false
}

type nodes []Node

func (l *nodes) add(ns ...Node) {
	for _, n := range ns {
		if !isNil(n) {
			*l = append(*l, n)
		}
	}
}

func children(n Node) []Node {
	var l nodes
	switch n := n.(type) {
	case *File:
		for _, s := range n.Items {
			l.add(s)
		}

	// declarations
	case *VarDecl:
		for _, pi := range n.Inits {
			l.add(pi)
		}
		l.add(n.Type, n.Init, n.Getter, n.Setter, n.WillSet, n.DidSet)
	case *PatternInit:
		l.add(n.Pattern, n.Type, n.Init)
	case *Accessor:
		l.add(n.Body)
	case *FuncDecl:
		l.add(n.Generics)
		for _, p := range n.Params {
			l.add(p)
		}
		l.add(n.Result, n.Body)
	case *Param:
		l.add(n.Type, n.Default)
	case *InitDecl:
		l.add(n.Generics)
		for _, p := range n.Params {
			l.add(p)
		}
		l.add(n.Body)
	case *DeinitDecl:
		l.add(n.Body)
	case *ClassDecl:
		l.add(n.Generics)
		addTypes(&l, n.Inherits)
		addDecls(&l, n.Members)
	case *StructDecl:
		l.add(n.Generics)
		addTypes(&l, n.Inherits)
		addDecls(&l, n.Members)
	case *ProtocolDecl:
		addTypes(&l, n.Inherits)
		addDecls(&l, n.Members)
	case *ExtensionDecl:
		l.add(n.Type)
		addTypes(&l, n.Inherits)
		addDecls(&l, n.Members)
	case *EnumDecl:
		l.add(n.Generics)
		addTypes(&l, n.Inherits)
		for _, c := range n.Cases {
			l.add(c)
		}
		addDecls(&l, n.Members)
	case *EnumCase:
		l.add(n.Payload, n.Raw)
	case *TypealiasDecl:
		l.add(n.Generics, n.Type)
	case *SubscriptDecl:
		for _, p := range n.Params {
			l.add(p)
		}
		l.add(n.Result, n.Getter, n.Setter)
	case *GenericParams:
		for _, p := range n.Params {
			l.add(p)
		}
	case *GenericParam:
		l.add(n.Constraint)

	// statements
	case *Block:
		for _, s := range n.Stmts {
			l.add(s)
		}
	case *DeclStmt:
		l.add(n.Decl)
	case *ExprStmt:
		l.add(n.X)
	case *IfStmt:
		for _, c := range n.Conds {
			l.add(c)
		}
		l.add(n.Then, n.ElseIf, n.Else)
	case *GuardStmt:
		for _, c := range n.Conds {
			l.add(c)
		}
		l.add(n.Else)
	case *Condition:
		l.add(n.X, n.Pattern, n.Type, n.Init)
	case *SwitchStmt:
		l.add(n.Subject)
		for _, c := range n.Cases {
			l.add(c)
		}
	case *CaseClause:
		for _, it := range n.Items {
			l.add(it)
		}
		for _, s := range n.Body {
			l.add(s)
		}
	case *CaseItem:
		l.add(n.Pattern, n.Where)
	case *ForInStmt:
		l.add(n.Pattern, n.Seq, n.Where, n.Body)
	case *WhileStmt:
		for _, c := range n.Conds {
			l.add(c)
		}
		l.add(n.Body)
	case *RepeatWhileStmt:
		l.add(n.Body, n.Cond)
	case *ReturnStmt:
		l.add(n.X)
	case *ThrowStmt:
		l.add(n.X)
	case *DeferStmt:
		l.add(n.Body)
	case *DoStmt:
		l.add(n.Body)
		for _, c := range n.Catches {
			l.add(c)
		}
	case *CatchClause:
		l.add(n.Pattern, n.Where, n.Body)

	// expressions
	case *ArrayLiteralExpr:
		for _, e := range n.Elems {
			l.add(e)
		}
	case *DictLiteralExpr:
		for _, e := range n.Entries {
			l.add(e)
		}
	case *DictEntry:
		l.add(n.Key, n.Value)
	case *IdentExpr:
		addTypes(&l, n.GenericArgs)
	case *ParenExpr:
		l.add(n.X)
	case *TupleExpr:
		for _, e := range n.Elems {
			l.add(e)
		}
	case *TupleElem:
		l.add(n.X)
	case *PrefixExpr:
		l.add(n.X)
	case *PostfixExpr:
		l.add(n.X)
	case *InOutExpr:
		l.add(n.X)
	case *BinaryExpr:
		l.add(n.X, n.Y)
	case *AssignExpr:
		l.add(n.Lhs, n.Rhs)
	case *TernaryExpr:
		l.add(n.Cond, n.Then, n.Else)
	case *TryExpr:
		l.add(n.X)
	case *CastExpr:
		l.add(n.X, n.Type)
	case *CallExpr:
		l.add(n.Fun)
		for _, a := range n.Args {
			l.add(a)
		}
		l.add(n.Trailing)
	case *Arg:
		l.add(n.X)
	case *ClosureExpr:
		for _, p := range n.Params {
			l.add(p)
		}
		l.add(n.Result)
		for _, s := range n.Body {
			l.add(s)
		}
	case *ClosureParam:
		l.add(n.Type)
	case *MemberExpr:
		l.add(n.X)
		addTypes(&l, n.GenericArgs)
	case *SubscriptExpr:
		l.add(n.X)
		for _, a := range n.Args {
			l.add(a)
		}
	case *OptionalChainExpr:
		l.add(n.X)
	case *ForceExpr:
		l.add(n.X)
	case *TypeExpr:
		l.add(n.Type)

	// types
	case *TypeIdent:
		for _, p := range n.Parts {
			addTypes(&l, p.Args)
		}
	case *ArrayType:
		l.add(n.Elem)
	case *DictType:
		l.add(n.Key, n.Value)
	case *OptionalType:
		l.add(n.Elem)
	case *ImplicitlyUnwrappedType:
		l.add(n.Elem)
	case *FuncType:
		for _, e := range n.Params {
			l.add(e)
		}
		l.add(n.Result)
	case *TupleType:
		for _, e := range n.Elems {
			l.add(e)
		}
	case *TupleTypeElem:
		l.add(n.Type)
	case *CompositionType:
		addTypes(&l, n.Types)
	case *MetatypeType:
		l.add(n.Elem)

	// patterns
	case *TuplePattern:
		for _, e := range n.Elems {
			l.add(e)
		}
	case *TuplePatternElem:
		l.add(n.Pattern)
	case *BindingPattern:
		l.add(n.Pattern)
	case *EnumCasePattern:
		l.add(n.Type, n.Tuple)
	case *IsPattern:
		l.add(n.Type)
	case *ExprPattern:
		l.add(n.X)
	case *TypedPattern:
		l.add(n.Pattern, n.Type)
	case *OptionalPattern:
		l.add(n.Pattern)
	}
	return l
}

func addTypes(l *nodes, ts []Type) {
	for _, t := range ts {
		l.add(t)
	}
}

func addDecls(l *nodes, ds []Decl) {
	for _, d := range ds {
		l.add(d)
	}
}

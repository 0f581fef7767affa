package syntax

// tokKind classifies lexer tokens.
type tokKind int

const (
	tEOF tokKind = iota
	tIdent
	tKeyword
	tInt
	tFloat
	tString
	tOperator
	tPunct
)

var tokKindNames = [...]string{
	tEOF:      "end of file",
	tIdent:    "identifier",
	tKeyword:  "keyword",
	tInt:      "integer literal",
	tFloat:    "float literal",
	tString:   "string literal",
	tOperator: "operator",
	tPunct:    "punctuation",
}

func (k tokKind) String() string { return tokKindNames[k] }

// token is one lexeme of Swift source.
type token struct {
	kind tokKind
	text string
	rng  Range

	// spaceBefore is set when whitespace, a comment or the start of input
	// precedes the token; nlBefore when that gap contains a newline.
	spaceBefore bool
	nlBefore    bool

	// interpolated marks string literals containing \( ... ).
	interpolated bool
}

// keywords are reserved words that never act as plain identifiers in
// expression position. Declaration modifiers are contextual and absent here.
var keywords = map[string]bool{
	"associatedtype": true, "class": true, "deinit": true, "enum": true,
	"extension": true, "func": true, "import": true, "init": true,
	"inout": true, "let": true, "operator": true, "protocol": true,
	"struct": true, "subscript": true, "typealias": true, "var": true,
	"break": true, "case": true, "continue": true, "default": true,
	"defer": true, "do": true, "else": true, "fallthrough": true,
	"for": true, "guard": true, "if": true, "in": true, "repeat": true,
	"return": true, "switch": true, "where": true, "while": true,
	"as": true, "catch": true, "false": true, "is": true, "nil": true,
	"rethrows": true, "super": true, "self": true, "Self": true,
	"throw": true, "throws": true, "true": true, "try": true,
}

// declModifiers are contextual keywords accepted before a declaration.
var declModifiers = map[string]bool{
	"public": true, "private": true, "fileprivate": true, "internal": true,
	"open": true, "final": true, "override": true, "static": true,
	"mutating": true, "nonmutating": true, "lazy": true, "weak": true,
	"unowned": true, "dynamic": true, "convenience": true, "required": true,
	"optional": true, "indirect": true, "class": true,
}

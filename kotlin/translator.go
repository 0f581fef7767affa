// Package kotlin translates Swift syntax trees into Kotlin token sequences.
//
// Each node kind has one rule that receives the node and its enclosing
// context and returns a tokens.Sequence. Rules recurse into children and
// assemble the results; they never mutate the tree and share no state
// between calls, so one Translator may serve many goroutines.
//
// Unsupported shapes degrade to "// FIXME:" comment tokens. A tree that
// breaks the parser's structural guarantees yields an error wrapping
// errors.ErrInvariant.
package kotlin

import (
	"fmt"

	"github.com/teranos/swiftkotlin/errors"
	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

const (
	DefaultIndent      = "    "
	DefaultFixmePrefix = "// FIXME: "
)

// Translator holds translation options. It is immutable after New.
type Translator struct {
	parser syntax.Parser
	indent string
	fixme  string
	types  map[string]string
}

// Option configures a Translator.
type Option func(*Translator)

// WithIndent sets the indentation unit inserted per nesting level.
func WithIndent(unit string) Option {
	return func(t *Translator) { t.indent = unit }
}

// WithFixmePrefix sets the comment prefix of unsupported-construct markers.
func WithFixmePrefix(prefix string) Option {
	return func(t *Translator) { t.fixme = prefix }
}

// WithTypeMap adds Swift to Kotlin type-name conversions on top of the
// built-in ones. Later entries win.
func WithTypeMap(m map[string]string) Option {
	return func(t *Translator) {
		for k, v := range m {
			t.types[k] = v
		}
	}
}

// WithParser replaces the parser used by TranslateSource and by string
// interpolation re-translation.
func WithParser(p syntax.Parser) Option {
	return func(t *Translator) { t.parser = p }
}

// New creates a Translator.
func New(opts ...Option) *Translator {
	t := &Translator{
		parser: syntax.NewParser(),
		indent: DefaultIndent,
		fixme:  DefaultFixmePrefix,
		types:  defaultTypeMap(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// invariantViolation is raised by rules when the tree breaks a structural
// guarantee. It is recovered by the exported entry points only.
type invariantViolation struct {
	err error
}

// fail aborts the current translation with an invariant error.
func fail(n syntax.Node, format string, args ...interface{}) {
	err := errors.NewInvariantError(format, args...)
	if n != nil {
		err = errors.WithDetailf(err, "at %s (%T)", n.Range().Start, n)
	}
	panic(invariantViolation{err: err})
}

func recoverInvariant(err *error) {
	if r := recover(); r != nil {
		v, ok := r.(invariantViolation)
		if !ok {
			panic(r)
		}
		*err = v.err
	}
}

// TranslateSource parses src with the configured parser and translates it.
// Parse failures are returned unchanged and wrap errors.ErrParse.
func (t *Translator) TranslateSource(name, src string) (tokens.Sequence, error) {
	f, err := t.parser.ParseFile(name, src)
	if err != nil {
		return tokens.Sequence{}, err
	}
	return t.TranslateFile(f)
}

// TranslateFile translates every top-level item of f, separating items with
// linebreaks and type or function declarations with a blank line.
func (t *Translator) TranslateFile(f *syntax.File) (seq tokens.Sequence, err error) {
	defer recoverInvariant(&err)
	if f == nil {
		fail(nil, "nil file")
	}
	return t.members(frame{}, stmtsAsItems(f.Items)).WithOrigin(f), nil
}

// TranslateDecl translates a single top-level declaration.
func (t *Translator) TranslateDecl(d syntax.Decl) (seq tokens.Sequence, err error) {
	defer recoverInvariant(&err)
	return t.checked(t.decl(frame{}, d), d), nil
}

// TranslateExpr translates a single expression.
func (t *Translator) TranslateExpr(x syntax.Expr) (seq tokens.Sequence, err error) {
	defer recoverInvariant(&err)
	return t.checked(t.expr(frame{}, x), x), nil
}

// checked enforces scope balance on a complete translation result.
func (t *Translator) checked(s tokens.Sequence, n syntax.Node) tokens.Sequence {
	if !s.Balanced() {
		fail(n, "unbalanced scopes in translation of %T", n)
	}
	return s
}

// frame is the enclosing-node context a rule sees.
type frame struct {
	owner     syntax.Decl           // innermost enclosing type declaration
	ext       *syntax.ExtensionDecl // set inside extension bodies
	protocol  bool                  // inside a protocol body
	inClosure bool
	closure   string // callee name for return@ labels
	shorthand bool   // $0, $1 ... are renamed to explicit parameters
}

// fixmeTok builds an unsupported-construct marker.
func (t *Translator) fixmeTok(n syntax.Node, format string, args ...interface{}) tokens.Token {
	return tokens.Cmt(t.fixme + fmt.Sprintf(format, args...)).WithOrigin(n)
}

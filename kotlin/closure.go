package kotlin

import (
	"strconv"
	"strings"

	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

// closure renders a Kotlin lambda. The final return is dropped; other
// returns are labelled with callee.
func (t *Translator) closure(f frame, x *syntax.ClosureExpr, callee string) tokens.Sequence {
	inner := frame{owner: f.owner, ext: f.ext, inClosure: true, closure: callee}

	var params []tokens.Sequence
	if x.Signature {
		for _, p := range x.Params {
			params = append(params, seqOf(tokens.Ident(identName(p.Name)).WithOrigin(p)))
		}
	} else if n := shorthandParams(x); n > 1 {
		inner.shorthand = true
		for i := 0; i < n; i++ {
			params = append(params, seqOf(tokens.Ident("p"+strconv.Itoa(i))))
		}
	}

	body := x.Body
	var last tokens.Sequence
	if n := len(body); n > 0 {
		if ret, ok := body[n-1].(*syntax.ReturnStmt); ok && ret.X != nil {
			last = t.expr(inner, ret.X).WithOrigin(ret)
			body = body[:n-1]
		}
	}
	stmts := t.stmts(inner, body)
	if !last.IsEmpty() {
		if stmts.IsEmpty() {
			stmts = last
		} else {
			stmts = lines(stmts, last)
		}
	}

	head := seqOf(tokens.Open("{"))
	if len(params) > 0 {
		head = spaced(head, commaList(params), seqOf(tokens.Sym("->")))
	}
	if stmts.IsEmpty() {
		return head.Suffix(space(), tokens.Close("}")).WithOrigin(x)
	}
	if !stmts.Contains(isLinebreak) {
		return spaced(head, stmts, seqOf(tokens.Close("}"))).WithOrigin(x)
	}
	return head.Append(stmts.Prefix(nl()).Indent(t.indent)).Suffix(nl(), tokens.Close("}")).WithOrigin(x)
}

func isLinebreak(tok tokens.Token) bool { return tok.Kind == tokens.Linebreak }

// shorthandParams counts the $n parameters a closure body uses, not
// counting nested closures.
func shorthandParams(x *syntax.ClosureExpr) int {
	n := 0
	for _, s := range x.Body {
		syntax.Inspect(s, func(node syntax.Node) bool {
			switch node := node.(type) {
			case *syntax.ClosureExpr:
				return false
			case *syntax.IdentExpr:
				if strings.HasPrefix(node.Name, "$") {
					if i, err := strconv.Atoi(node.Name[1:]); err == nil && i+1 > n {
						n = i + 1
					}
				}
			}
			return true
		})
	}
	return n
}

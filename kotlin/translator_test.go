package kotlin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/swiftkotlin/errors"
	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

func translate(t *testing.T, src string) string {
	t.Helper()
	seq, err := New().TranslateSource("test.swift", src)
	require.NoError(t, err)
	return seq.Text()
}

func TestComputedPropertyGetter(t *testing.T) {
	got := translate(t, `var area: Int {
    return width * height
}`)
	assert.Equal(t, `val area: Int
    get() {
        return width * height
    }`, got)
}

func TestPlainEnumKeepsCaseOrder(t *testing.T) {
	got := translate(t, `enum Direction {
    case north
    case south
    case east
}`)
	assert.Equal(t, `enum class Direction {
    north,
    south,
    east
}`, got)
}

func TestStringEnumGetsReverseLookup(t *testing.T) {
	got := translate(t, `enum Color: String {
    case red, green, blue
}`)
	assert.Equal(t, `enum class Color(val rawValue: String) {
    red("red"),
    green("green"),
    blue("blue");

    companion object {
        fun fromRawValue(rawValue: String) = values().associateBy(Color::rawValue)[rawValue]
    }
}`, got)
}

func TestGuardInvertsComparisons(t *testing.T) {
	got := translate(t, `func check(x: Int?, y: Int) {
    guard x == nil || y > 5 else {
        return
    }
    print(y)
}`)
	assert.Equal(t, `fun check(x: Int?, y: Int) {
    if (x != null && y <= 5) {
        return
    }
    print(y)
}`, got)
}

func TestGuardParenthesizedOperand(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"guard !(a && b) else { return }", "if (a && b) {\n    return\n}"},
		{"guard (a + b) > c else { return }", "if ((a + b) <= c) {\n    return\n}"},
		{"guard !(a || b), c else { return }", "if (a || b || !c) {\n    return\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, translate(t, tt.src))
		})
	}
}

func TestInterpolationParenthesizedExpr(t *testing.T) {
	assert.Equal(t, `val s = "${(a + b)}"`, translate(t, `let s = "\((a + b))"`))
}

func TestInterpolationNestedParens(t *testing.T) {
	got := translate(t, `let s = "\(f(g(1)))"`)
	assert.Equal(t, `val s = "${f(g(1))}"`, got)
}

func TestEmptyStructCompanionFirst(t *testing.T) {
	got := translate(t, `struct Util {
    static func a() -> Int {
        return 1
    }
    static func b() {
        print("b")
    }
}`)
	assert.Equal(t, `data class Util(val _dummy: Int = 0) {
    companion object {
        fun a(): Int = 1

        fun b() {
            print("b")
        }
    }
}`, got)
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"nil", "x = nil", "x = null"},
		{"self", "self.x = 1", "this.x = 1"},
		{"half open range", "let r = 0..<n", "val r = 0 until n"},
		{"closed range", "let r = 1...5", "val r = 1..5"},
		{"nil coalescing", "let v = a ?? b", "val v = a ?: b"},
		{"force unwrap", "let v = a!", "val v = a!!"},
		{"optional chain propagates", "let v = a?.b.c", "val v = a?.b?.c"},
		{"optional call", "handler?()", "handler?.invoke()"},
		{"labels", "move(from: a, to: b)", "move(from = a, to = b)"},
		{"discard", "_ = compute()", "compute()"},
		{"ternary", "let v = ok ? 1 : 2", "val v = if (ok) 1 else 2"},
		{"try dropped", "let v = try load()", "val v = load()"},
		{"try optional", "let v = try? load()", "val v = try { load() } catch (e: Throwable) { null }"},
		{"forced cast", "let v = x as! String", "val v = x as String"},
		{"array literal", "let v = [1, 2]", "val v = mutableListOf(1, 2)"},
		{"typed array", "let v = [String]()", "val v = mutableListOf<String>()"},
		{"dictionary literal", `let v = ["a": 1]`, `val v = mutableMapOf("a" to 1)`},
		{"typed dictionary", "let v = [String: Int]()", "val v = mutableMapOf<String, Int>()"},
		{"pair", "let v = (1, 2)", "val v = Pair(1, 2)"},
		{"triple", "let v = (1, 2, 3)", "val v = Triple(1, 2, 3)"},
		{"inout", "swap(&a, &b)", "swap(a, b)"},
		{"closure it", "let v = xs.map { $0 * 2 }", "val v = xs.map { it * 2 }"},
		{"closure params", "let v = xs.map { x in x * 2 }", "val v = xs.map { x -> x * 2 }"},
		{"closure final return", "let v = xs.filter { x in return x > 1 }", "val v = xs.filter { x -> x > 1 }"},
		{"dollar escaped", `let s = "$\(x)"`, `val s = "\$${x}"`},
		{"bitwise", "let v = a & b", "val v = a and b"},
		{"octal", "let v = 0o17", "val v = 15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translate(t, tt.src))
		})
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"if let hoists binding",
			"if let v = find() {\n    use(v)\n}",
			"val v = find()\nif (v != null) {\n    use(v)\n}",
		},
		{
			"guard let elvis",
			"guard let v = find() else {\n    return\n}",
			"val v = find() ?: return",
		},
		{
			"guard negates plain condition",
			"guard ready else {\n    return\n}",
			"if (!ready) {\n    return\n}",
		},
		{
			"guard binding and condition",
			"guard let v = find(), v > 0 else {\n    return\n}",
			"val v = find()\nif (v == null || v <= 0) {\n    return\n}",
		},
		{
			"switch",
			"switch n {\ncase 1, 2:\n    a()\ncase 3...5:\n    b()\ndefault:\n    break\n}",
			"when (n) {\n    1, 2 -> a()\n    in 3..5 -> b()\n}",
		},
		{
			"for in",
			"for i in 0..<n {\n    print(i)\n}",
			"for (i in 0 until n) {\n    print(i)\n}",
		},
		{
			"repeat while",
			"repeat {\n    step()\n} while more()",
			"do {\n    step()\n} while (more())",
		},
		{
			"do catch",
			"do {\n    try run()\n} catch {\n    log(error)\n}",
			"try {\n    run()\n} catch (error: Throwable) {\n    log(error)\n}",
		},
		{
			"defer",
			"func f() {\n    defer {\n        close()\n    }\n    work()\n}",
			"fun f() {\n    try {\n        work()\n    } finally {\n        close()\n    }\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translate(t, tt.src))
		})
	}
}

func TestDeclarations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"let", "let a = 1", "val a = 1"},
		{"optional without value", "var name: String?", "var name: String? = null"},
		{"implicitly unwrapped", "var view: UIView!", "lateinit var view: UIView"},
		{"dropped modifiers", "weak var delegate: Delegate?", "var delegate: Delegate? = null"},
		{"fileprivate", "fileprivate let a = 1", "private val a = 1"},
		{"lazy", "lazy var items = load()", "val items by lazy { load() }"},
		{
			"lazy closure",
			"lazy var items: [Int] = {\n    return [1]\n}()",
			"val items: MutableList<Int> by lazy { mutableListOf(1) }",
		},
		{
			"function",
			"func add(_ a: Int, to b: Int) -> Int {\n    let c = a + b\n    return c\n}",
			"fun add(a: Int, b: Int): Int {\n    val c = a + b\n    return c\n}",
		},
		{"override drops defaults", "override func f(a: Int = g(1, 2), b: Int = 3) {}", "override fun f(a: Int, b: Int) {}"},
		{"variadic", "func sum(_ xs: Int...) {}", "fun sum(vararg xs: Int) {}"},
		{"typealias", "typealias Handler = (String) -> Void", "typealias Handler = (String) -> Unit"},
		{"import dropped", "import Foundation", ""},
		{"discardable result", "@discardableResult func f() {}", "fun f() {}"},
		{
			"observers",
			"var score: Int = 0 {\n    willSet {\n        print(newValue)\n    }\n    didSet {\n        print(oldValue)\n    }\n}",
			"var score: Int = 0\n    set(newValue) {\n        val oldValue = field\n        print(newValue)\n        field = newValue\n        print(oldValue)\n    }",
		},
		{
			"didSet without old value",
			"var score: Int = 0 {\n    didSet {\n        save()\n    }\n}",
			"var score: Int = 0\n    set(newValue) {\n        field = newValue\n        save()\n    }",
		},
		{
			"initializer delegation",
			"class A: B {\n    init(x: Int) {\n        super.init(x: f(x))\n        setup()\n    }\n}",
			"class A : B {\n    constructor(x: Int) : super(x = f(x)) {\n        setup()\n    }\n}",
		},
		{
			"class statics last",
			"class A {\n    static let shared = A()\n    var x = 1\n}",
			"class A {\n    var x = 1\n\n    companion object {\n        val shared = A()\n    }\n}",
		},
		{
			"struct with stored members",
			"struct Point {\n    var x: Int\n    let y = 0.5\n}",
			"data class Point(var x: Int, val y: Double = 0.5)",
		},
		{
			"protocol",
			"protocol Shape {\n    var area: Double { get }\n    var name: String { get set }\n    func draw()\n}",
			"interface Shape {\n    val area: Double\n    var name: String\n\n    fun draw()\n}",
		},
		{
			"extension",
			"public extension Int {\n    func double() -> Int {\n        return self * 2\n    }\n}",
			"public fun Int.double(): Int = this * 2",
		},
		{
			"extension inheritance",
			"extension A: B {\n    func f() {}\n}",
			"// FIXME: Kotlin does not support inheritance clauses in extensions: B\nfun A.f() {}",
		},
		{
			"sealed enum",
			"enum Result {\n    case ok(Int)\n    case failed(code: Int, reason: String)\n}",
			"sealed class Result {\n    data class ok(val v1: Int) : Result()\n    data class failed(val code: Int, val reason: String) : Result()\n}",
		},
		{
			"int enum counter",
			"enum Level: Int {\n    case low = 1, mid, high\n}",
			"enum class Level(val rawValue: Int) {\n    low(1),\n    mid(2),\n    high(3);\n\n    companion object {\n        fun fromRawValue(rawValue: Int) = values().associateBy(Level::rawValue)[rawValue]\n    }\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translate(t, tt.src))
		})
	}
}

func TestSelfNamesOwningType(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"protocol requirement",
			"protocol Copyable {\n    func copy() -> Self\n}",
			"fun copy(): Copyable",
		},
		{
			"static factory in companion",
			"protocol Shape {\n    static func make() -> Self\n}",
			"fun make(): Shape",
		},
		{
			"class method",
			"class Node {\n    func clone() -> Self {\n        return self\n    }\n}",
			"fun clone(): Node",
		},
		{
			"extension",
			"extension Point {\n    func moved() -> Self {\n        return self\n    }\n}",
			"fun Point.moved(): Point",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(t, tt.src)
			assert.Contains(t, got, tt.want)
			assert.NotContains(t, got, "Self")
		})
	}
}

func TestItemsSeparatedByBlankLineAroundFunctions(t *testing.T) {
	got := translate(t, "let a = 1\nlet b = 2\nfunc f() {}\nlet c = 3")
	assert.Equal(t, "val a = 1\nval b = 2\n\nfun f() {}\n\nval c = 3", got)
}

func TestOptionsApply(t *testing.T) {
	tr := New(WithIndent("\t"), WithFixmePrefix("// TODO(kotlin): "), WithTypeMap(map[string]string{"URL": "java.net.URI"}))
	seq, err := tr.TranslateSource("t.swift", "extension A: B {\n    func f(u: URL) {\n        g()\n    }\n}")
	require.NoError(t, err)
	assert.Equal(t, "// TODO(kotlin): Kotlin does not support inheritance clauses in extensions: B\nfun A.f(u: java.net.URI) {\n\tg()\n}", seq.Text())
}

func TestParseErrorPassesThrough(t *testing.T) {
	_, err := New().TranslateSource("bad.swift", "func (")
	require.Error(t, err)
	assert.True(t, errors.IsParseError(err))
}

func TestInvariantViolationIsError(t *testing.T) {
	_, err := New().TranslateExpr(&syntax.BinaryExpr{Op: "+"})
	require.Error(t, err)
	assert.True(t, errors.IsInvariantError(err))
}

func TestScopeBalanceOfFixtures(t *testing.T) {
	for _, src := range []string{
		"class A {\n    static func f() {}\n    func g() { h { x in x } }\n}",
		"struct S {\n    var x: [String: [Int]]\n    static let z = 1\n}",
		"enum E {\n    case a(Int)\n    case b\n    func f() {}\n}",
		"switch v {\ncase .a(let x) where x > 1:\n    f()\n    g()\ndefault:\n    h()\n}",
	} {
		seq, err := New().TranslateSource("t.swift", src)
		require.NoError(t, err, src)
		assert.True(t, seq.Balanced(), seq.Text())
	}
}

func TestTokensCarryOrigin(t *testing.T) {
	seq, err := New().TranslateSource("t.swift", "let a = b == c")
	require.NoError(t, err)
	for _, tok := range seq.Tokens() {
		assert.NotNil(t, tok.Origin, "token %q", tok.Text)
	}
	op := seq.Index(0, func(tok tokens.Token) bool { return tok.Text == "==" })
	require.GreaterOrEqual(t, op, 0)
	_, ok := seq.At(op).Origin.(*syntax.BinaryExpr)
	assert.True(t, ok)
}

func TestSharedTranslatorIsStateless(t *testing.T) {
	tr := New()
	first, err := tr.TranslateSource("a.swift", "let a = [Int]()")
	require.NoError(t, err)
	second, err := tr.TranslateSource("a.swift", "let a = [Int]()")
	require.NoError(t, err)
	assert.Equal(t, first.Text(), second.Text())
	assert.False(t, strings.Contains(first.Text(), "\t"))
}

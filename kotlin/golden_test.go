package kotlin

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/teranos/swiftkotlin/syntax"
)

// TestGolden translates the input.swift section of every testdata archive
// and compares it with output.kt. Set UPDATE_GOLDEN=1 to rewrite outputs.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, files, "no golden archives in testdata/")

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)

			var input, want *txtar.File
			for i := range ar.Files {
				switch ar.Files[i].Name {
				case "input.swift":
					input = &ar.Files[i]
				case "output.kt":
					want = &ar.Files[i]
				}
			}
			require.NotNil(t, input, "missing input.swift")

			seq, err := New().TranslateSource(file, string(input.Data))
			require.NoError(t, err)
			assert.True(t, seq.Balanced())
			got := seq.Text() + "\n"

			if os.Getenv("UPDATE_GOLDEN") != "" {
				if want == nil {
					ar.Files = append(ar.Files, txtar.File{Name: "output.kt"})
					want = &ar.Files[len(ar.Files)-1]
				}
				want.Data = []byte(got)
				require.NoError(t, os.WriteFile(file, txtar.Format(ar), 0o644))
				return
			}
			require.NotNil(t, want, "missing output.kt, run with UPDATE_GOLDEN=1")
			assert.Equal(t, string(want.Data), got)
		})
	}
}

// TestClassifyEnum covers all three encodings: plain case lists, value
// enums with a rawValue, and the sealed class used for payload cases.
func TestClassifyEnum(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want enumEncoding
		raw  string
	}{
		{"plain", "enum E { case a, b }", enumPlain, ""},
		{"plain with protocol", "enum E: Equatable { case a }", enumPlain, ""},
		{"int raw", "enum E: Int { case a = 1, b }", enumValue, "Int"},
		{"string raw after protocol", "enum E: Codable, String { case a }", enumValue, "String"},
		{"payload", "enum E { case a(Int)\n case b }", enumSealed, ""},
		{"payload wins over raw", "enum E: Int { case a(Int) }", enumSealed, "Int"},
		{"indirect payload", "indirect enum T { case leaf\n case node(T, T) }", enumSealed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := syntax.ParseFile("e.swift", tt.src)
			require.NoError(t, err)
			require.Len(t, f.Items, 1)
			d := findEnum(t, f)

			// Classification depends only on the declaration.
			for i := 0; i < 3; i++ {
				enc, raw, _ := classifyEnum(d)
				assert.Equal(t, tt.want, enc, enc.String())
				if tt.raw == "" {
					assert.Nil(t, raw)
				} else {
					require.NotNil(t, raw)
					assert.Equal(t, tt.raw, raw.Name())
				}
			}
		})
	}
}

func findEnum(t *testing.T, f *syntax.File) *syntax.EnumDecl {
	t.Helper()
	var d *syntax.EnumDecl
	syntax.Inspect(f, func(n syntax.Node) bool {
		if e, ok := n.(*syntax.EnumDecl); ok && d == nil {
			d = e
		}
		return d == nil
	})
	require.NotNil(t, d)
	return d
}

func TestRawValuesContinueAfterExplicit(t *testing.T) {
	tests := []struct {
		name string
		src  string
		raw  string
		want []string
	}{
		{"int", "enum E: Int { case a = 5, b, c }", "Int", []string{"", "6", "7"}},
		{"float", "enum E: Double { case a = 1.5, b, c }", "Double", []string{"", "2.0", "3.0"}},
		{"float from zero", "enum E: Double { case a, b }", "Double", []string{"0.0", "1.0"}},
		{"string", "enum E: String { case a, b = \"x\" }", "String", []string{`"a"`, ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := syntax.ParseFile("e.swift", tt.src)
			require.NoError(t, err)
			got := rawValues(findEnum(t, f).Cases, tt.raw)
			texts := make([]string, len(got))
			for i, tok := range got {
				texts[i] = tok.Text
			}
			assert.Equal(t, tt.want, texts)
		})
	}
}

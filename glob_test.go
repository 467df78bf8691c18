package globset

import "testing"

func TestGlobMatcher(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.rs", "main.rs", true},
		{"*.rs", "src/main.rs", false},
		{"**/*.rs", "src/main.rs", true},
		{"src/**", "src/a/b/c", true},
		{"src/**", "lib/a", false},
		{"a?c", "abc", true},
		{"a?c", "a/c", false},
		{"[a-c]x", "bx", true},
		{"[!a-c]x", "dx", true},
		{"{foo,bar}.go", "bar.go", true},
		{"{foo,bar}.go", "baz.go", false},
	}
	for _, tc := range tests {
		g, err := New(tc.pattern)
		if err != nil {
			t.Fatalf("New(%q) error: %v", tc.pattern, err)
		}
		if g.Glob() != tc.pattern {
			t.Errorf("Glob() = %q, want %q", g.Glob(), tc.pattern)
		}
		m := g.CompileMatcher()
		if got := m.IsMatch(tc.path); got != tc.want {
			t.Errorf("IsMatch(%q, %q) = %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}

func TestGlobBuilderCaseInsensitive(t *testing.T) {
	g, err := NewBuilder("*.RS").CaseInsensitive(true).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := g.Glob(); got != "*.rs" {
		t.Errorf("Glob() = %q, want %q", got, "*.rs")
	}
	if !g.CompileMatcher().IsMatch("main.rs") {
		t.Error("IsMatch(main.rs) = false, want true")
	}
}

func TestGlobBuilderInvalid(t *testing.T) {
	if _, err := NewBuilder("[a-z").Build(); err == nil {
		t.Error("Build() succeeded for unclosed class")
	}
}

func TestCandidate(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a/b/c", "a/b/c"},
		{`a\b\c`, "a/b/c"},
		{"plain", "plain"},
	}
	for _, tc := range tests {
		c := NewCandidate(tc.path)
		if got := c.Path(); got != tc.want {
			t.Errorf("NewCandidate(%q).Path() = %q, want %q", tc.path, got, tc.want)
		}
	}

	g, err := New("a/*/c")
	if err != nil {
		t.Fatal(err)
	}
	if !g.CompileMatcher().IsMatchCandidate(NewCandidate(`a\b\c`)) {
		t.Error("IsMatchCandidate = false, want true")
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain/path.txt", "plain/path.txt"},
		{"*.rs", `\*.rs`},
		{"a?b", `a\?b`},
		{"[abc]", `\[abc\]`},
		{"{a,b}", `\{a\,b\}`},
		{`back\slash`, `back\\slash`},
		{"!bang^caret", `\!bang\^caret`},
	}
	for _, tc := range tests {
		if got := Escape(tc.in); got != tc.want {
			t.Errorf("Escape(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"hello*world?[test]{a,b}",
		`weird\name!`,
		"^start,comma",
	}
	for _, in := range inputs {
		g, err := New(Escape(in))
		if err != nil {
			t.Fatalf("New(Escape(%q)) error: %v", in, err)
		}
		m := g.CompileMatcher()
		if !m.IsMatch(in) {
			t.Errorf("escaped %q does not match itself", in)
		}
		if m.IsMatch(in + "x") {
			t.Errorf("escaped %q matches %q", in, in+"x")
		}
	}
}

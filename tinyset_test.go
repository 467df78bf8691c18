package globset

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTinyGlobSetIsMatch(t *testing.T) {
	set, err := NewTinyGlobSet([]string{
		"**/*.rs",      // 0
		"*.toml",       // 1
		"Cargo.lock",   // 2
		"target/**",    // 3
		"**/main.go",   // 4
		"**/*.test.js", // 5
		"src/**/*.py",  // 6
		"a/*/b",        // 7
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"main.rs", true},
		{"x/y/z.rs", true},
		{"Cargo.toml", true},
		{"sub/Cargo.toml", false},
		{"Cargo.lock", true},
		{"target/out", true},
		{"target", false},
		{"main.go", true},
		{"cmd/main.go", true},
		{"xmain.go", false},
		{"app.test.js", true},
		{"src/x/y.py", true},
		{"a/x/b", true},
		{"a/x/y/b", false},
		{"other", false},
	}
	for _, tc := range tests {
		if got := set.IsMatch(tc.path); got != tc.want {
			t.Errorf("IsMatch(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestTinyGlobSetMatches(t *testing.T) {
	set, err := NewTinyGlobSet([]string{
		"**/*.rs",    // 0
		"src/**",     // 1
		"**/lib.rs",  // 2
		"src/lib.rs", // 3
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want []int
	}{
		{"src/lib.rs", []int{0, 3, 1, 2}},
		{"lib.rs", []int{0, 2}},
		{"src/other.txt", []int{1}},
		{"nope", nil},
	}
	for _, tc := range tests {
		got := set.Matches(tc.path)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Matches(%q) diff (-want +got):\n%s", tc.path, diff)
		}
	}
}

func TestTinyGlobSetCandidate(t *testing.T) {
	set, err := NewTinyGlobSet([]string{"src/**/*.rs"})
	if err != nil {
		t.Fatal(err)
	}
	c := NewCandidate(`src\deep\main.rs`)
	if !set.IsMatchCandidate(c) {
		t.Error("IsMatchCandidate = false, want true")
	}
	if got := set.MatchesCandidate(c); len(got) != 1 || got[0] != 0 {
		t.Errorf("MatchesCandidate = %v, want [0]", got)
	}
	buf := make([]int, 0, 4)
	buf = set.MatchesIntoCandidate(c, buf)
	if len(buf) != 1 || buf[0] != 0 {
		t.Errorf("MatchesIntoCandidate = %v, want [0]", buf)
	}
}

func TestTinyGlobSetBuilder(t *testing.T) {
	b := NewTinyGlobSetBuilder()
	for _, pattern := range []string{"*.go", "docs/**"} {
		g, err := New(pattern)
		if err != nil {
			t.Fatal(err)
		}
		b.Add(g)
	}
	set := b.Build()
	if set.Len() != 2 {
		t.Errorf("Len() = %d, want 2", set.Len())
	}
	if !set.IsMatch("main.go") || !set.IsMatch("docs/guide.md") {
		t.Error("built set misses expected paths")
	}
	if set.IsMatch("src/main.c") {
		t.Error("built set matches unrelated path")
	}
}

func TestTinyGlobSetInvalidPattern(t *testing.T) {
	if _, err := NewTinyGlobSet([]string{"{a,b"}); err == nil {
		t.Error("NewTinyGlobSet succeeded with invalid pattern")
	}
}

// The tiny set must agree with the trie-backed set on every path.
func TestTinyGlobSetAgreesWithGlobSet(t *testing.T) {
	patterns := []string{
		"**/*.rs",
		"*.toml",
		"Cargo.lock",
		"target/**",
		"**/main.go",
		"**/*.test.js",
		"src/**/*.py",
		"docs/*/index.md",
		"*",
		"{a,b}/**",
		"!*.secret",
		"a?needle",
		"b?needle",
	}
	full, err := NewGlobSet(patterns)
	if err != nil {
		t.Fatal(err)
	}
	tiny, err := NewTinyGlobSet(patterns)
	if err != nil {
		t.Fatal(err)
	}

	paths := []string{
		"", "main.rs", "a/b/c.rs", "Cargo.toml", "x/Cargo.toml",
		"Cargo.lock", "target/debug/app", "target", "main.go",
		"deep/main.go", "xmain.go", "app.test.js", "q/app.test.js",
		"src/pkg/mod.py", "docs/v1/index.md", "docs/v1/v2/index.md",
		"one-segment", "a/tree/file", "b/tree/file", "c/tree/file",
		"api.secret", "notes.txt", "axneedle", "bxneedle",
	}
	for _, path := range paths {
		if got, want := tiny.IsMatch(path), full.IsMatch(path); got != want {
			t.Errorf("IsMatch(%q): tiny = %v, full = %v", path, got, want)
		}
		gotSet := append([]int(nil), tiny.Matches(path)...)
		wantSet := append([]int(nil), full.Matches(path)...)
		sort.Ints(gotSet)
		sort.Ints(wantSet)
		if diff := cmp.Diff(wantSet, gotSet); diff != "" {
			t.Errorf("Matches(%q) diff (-full +tiny):\n%s", path, diff)
		}
	}
}

package globset

import "testing"

func TestExtractLiteral(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
		ok      bool
	}{
		{"", "", false},
		{"*", "", false},
		{"**", "", false},
		{"?", "", false},
		{"**/*", "", false},
		{"[abc]", "", false},
		{"{a,b}", "", false},

		{"abc", "abc", true},
		{"src/**", "src/", true},
		{"**/*.rs", ".rs", true},
		{"*.test.js", ".test.js", true},
		{"foo*bar", "foo", true},    // tie goes to the first run
		{"fo*barbaz", "barbaz", true},
		{"[ab]cd", "cd", true},
		{"{a,b}xyz", "xyz", true},
		{"a?longer", "longer", true},
		{`a\*b`, "a", true}, // escape breaks the run
		{"**/foo/**/bar", "foo/", true},
		{"src/**/test_*.py", "test_", true},
	}
	for _, tc := range tests {
		got, ok := extractLiteral(tc.pattern)
		if ok != tc.ok || got != tc.want {
			t.Errorf("extractLiteral(%q) = %q, %v, want %q, %v", tc.pattern, got, ok, tc.want, tc.ok)
		}
	}
}

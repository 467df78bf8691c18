package tried

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type prefixHit struct {
	Value  uint32
	Length int
}

func collectPrefixes(da *DoubleArray, key string) []prefixHit {
	var hits []prefixHit
	it := da.CommonPrefixSearch([]byte(key))
	for {
		v, n, ok := it.Next()
		if !ok {
			return hits
		}
		hits = append(hits, prefixHit{Value: v, Length: n})
	}
}

func TestBuildAndSearch(t *testing.T) {
	keyset := []Entry{
		{[]byte("a"), 0},
		{[]byte("ab"), 1},
		{[]byte("aba"), 2},
		{[]byte("ac"), 3},
		{[]byte("acb"), 4},
		{[]byte("acc"), 5},
		{[]byte("ad"), 6},
		{[]byte("ba"), 7},
		{[]byte("bb"), 8},
		{[]byte("bc"), 9},
		{[]byte("c"), 10},
		{[]byte("caa"), 11},
	}

	bytes, err := Build(keyset)
	if err != nil {
		t.Fatalf("Build(keyset) error = %v", err)
	}
	da := New(bytes)

	for _, e := range keyset {
		v, ok := da.ExactMatchSearch(e.Key)
		if !ok || v != e.Value {
			t.Errorf("ExactMatchSearch(%q) = (%d, %t), want (%d, true)", e.Key, v, ok, e.Value)
		}
	}
	for _, miss := range []string{"aa", "abc", "b", "ca", ""} {
		if v, ok := da.ExactMatchSearch([]byte(miss)); ok {
			t.Errorf("ExactMatchSearch(%q) = (%d, true), want miss", miss, v)
		}
	}

	prefixTests := []struct {
		key  string
		want []prefixHit
	}{
		{"a", []prefixHit{{0, 1}}},
		{"aa", []prefixHit{{0, 1}}},
		{"abbb", []prefixHit{{0, 1}, {1, 2}}},
		{"abaa", []prefixHit{{0, 1}, {1, 2}, {2, 3}}},
		{"caa", []prefixHit{{10, 1}, {11, 3}}},
		{"d", nil},
		{"", nil},
	}
	for _, tc := range prefixTests {
		got := collectPrefixes(da, tc.key)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("CommonPrefixSearch(%q) diff (-want +got):\n%s", tc.key, diff)
		}
	}
}

func TestExactMatchSearchCornerCase(t *testing.T) {
	// Regression test from https://github.com/takuyaa/yada/pull/28
	keyset := []Entry{
		{[]byte("a"), 97},
		{[]byte("ab"), 1},
		{[]byte("de"), 2},
	}

	bytes, err := Build(keyset)
	if err != nil {
		t.Fatalf("Build(keyset) error = %v", err)
	}
	da := New(bytes)

	for _, e := range keyset {
		v, ok := da.ExactMatchSearch(e.Key)
		if !ok || v != e.Value {
			t.Errorf("ExactMatchSearch(%q) = (%d, %t), want (%d, true)", e.Key, v, ok, e.Value)
		}
	}
	if v, ok := da.ExactMatchSearch([]byte("dasss")); ok {
		t.Errorf("ExactMatchSearch(%q) = (%d, true), want miss", "dasss", v)
	}
}

func TestCommonPrefixSearchExhausted(t *testing.T) {
	bytes, err := Build([]Entry{{[]byte("ab"), 1}})
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	it := New(bytes).CommonPrefixSearch([]byte("abc"))

	if v, n, ok := it.Next(); !ok || v != 1 || n != 2 {
		t.Errorf("Next() = (%d, %d, %t), want (1, 2, true)", v, n, ok)
	}
	for i := 0; i < 3; i++ {
		if _, _, ok := it.Next(); ok {
			t.Error("Next() after exhaustion = true, want false")
		}
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Error("Build(nil) error = nil, want error")
	}
	dup := []Entry{{[]byte("a"), 0}, {[]byte("a"), 1}}
	if _, err := Build(dup); err == nil {
		t.Error("Build(duplicate keys) error = nil, want error")
	}
	nul := []Entry{{[]byte("a\x00b"), 0}}
	if _, err := Build(nul); err == nil {
		t.Error("Build(key with NUL) error = nil, want error")
	}
}

func TestBuilderStats(t *testing.T) {
	keyset := []Entry{
		{[]byte("a"), 0},
		{[]byte("aa"), 0},
		{[]byte("aaa"), 0},
		{[]byte("aaaa"), 0},
		{[]byte("aaaaa"), 0},
		{[]byte("ab"), 0},
		{[]byte("abc"), 0},
		{[]byte("abcd"), 0},
		{[]byte("abcde"), 0},
		{[]byte("abcdef"), 0},
	}

	b := NewBuilder()
	if _, err := b.BuildFromKeyset(keyset); err != nil {
		t.Fatalf("BuildFromKeyset error = %v", err)
	}

	if b.NumUnits() == 0 {
		t.Error("NumUnits() = 0, want > 0")
	}
	if b.NumUsedUnits() == 0 {
		t.Error("NumUsedUnits() = 0, want > 0")
	}
	if b.NumUsedUnits() >= b.NumUnits() {
		t.Errorf("NumUsedUnits() = %d, want < NumUnits() = %d", b.NumUsedUnits(), b.NumUnits())
	}
}

package globset

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type corpusGroup struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
	Cases    []struct {
		Path    string `yaml:"path"`
		Matches []int  `yaml:"matches"`
	} `yaml:"cases"`
}

func loadCorpus(t *testing.T) []corpusGroup {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "corpus.yaml"))
	require.NoError(t, err)
	var groups []corpusGroup
	require.NoError(t, yaml.Unmarshal(data, &groups))
	require.NotEmpty(t, groups)
	return groups
}

func TestGlobSetCorpus(t *testing.T) {
	for _, group := range loadCorpus(t) {
		t.Run(group.Name, func(t *testing.T) {
			set, err := NewGlobSet(group.Patterns)
			require.NoError(t, err)
			for _, tc := range group.Cases {
				got := set.Matches(tc.Path)
				if got == nil {
					got = []int{}
				}
				sort.Ints(got)
				assert.Equal(t, tc.Matches, got, "Matches(%q)", tc.Path)
				assert.Equal(t, len(tc.Matches) > 0, set.IsMatch(tc.Path), "IsMatch(%q)", tc.Path)
				if len(tc.Matches) > 0 {
					first, ok := set.FirstMatch(tc.Path)
					assert.True(t, ok, "FirstMatch(%q)", tc.Path)
					assert.Equal(t, tc.Matches[0], first, "FirstMatch(%q)", tc.Path)
				}
			}
		})
	}
}

func TestTinyGlobSetCorpus(t *testing.T) {
	for _, group := range loadCorpus(t) {
		t.Run(group.Name, func(t *testing.T) {
			set, err := NewTinyGlobSet(group.Patterns)
			require.NoError(t, err)
			for _, tc := range group.Cases {
				got := set.Matches(tc.Path)
				if got == nil {
					got = []int{}
				}
				sort.Ints(got)
				assert.Equal(t, tc.Matches, got, "Matches(%q)", tc.Path)
				assert.Equal(t, len(tc.Matches) > 0, set.IsMatch(tc.Path), "IsMatch(%q)", tc.Path)
			}
		})
	}
}

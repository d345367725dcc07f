package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeListFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.dat")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadList_File(t *testing.T) {
	path := writeListFile(t, "# journals\nhttps://a.example/rss\n\n  https://b.example/rss  \n#https://c.example/rss\n")

	items, source, err := LoadList(path, "TEST_LIST_UNSET")

	require.NoError(t, err)
	assert.Equal(t, ListSourceFile, source)
	assert.Equal(t, []string{"https://a.example/rss", "https://b.example/rss"}, items)
}

func TestLoadList_MissingFile(t *testing.T) {
	items, source, err := LoadList(filepath.Join(t.TempDir(), "missing.dat"), "TEST_LIST_UNSET")

	require.NoError(t, err)
	assert.Equal(t, ListSourceNone, source)
	assert.Empty(t, items)
}

func TestLoadList_EnvWinsOverFile(t *testing.T) {
	path := writeListFile(t, "from-file\n")
	t.Setenv("TEST_LIST", "from-env")

	items, source, err := LoadList(path, "TEST_LIST")

	require.NoError(t, err)
	assert.Equal(t, ListSourceEnv, source)
	assert.Equal(t, []string{"from-env"}, items)
}

func TestLoadList_EnvSeparators(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{
			name:  "semicolons",
			value: "segmentation AND mri; diffusion ;;",
			want:  []string{"segmentation AND mri", "diffusion"},
		},
		{
			name:  "newlines take precedence",
			value: "a;b\n c \n\n",
			want:  []string{"a;b", "c"},
		},
		{
			name:  "single entry",
			value: "transformer",
			want:  []string{"transformer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_LIST", tt.value)

			items, source, err := LoadList("unused.dat", "TEST_LIST")

			require.NoError(t, err)
			assert.Equal(t, ListSourceEnv, source)
			assert.Equal(t, tt.want, items)
		})
	}
}

func TestLoadList_BlankEnvFallsBackToFile(t *testing.T) {
	path := writeListFile(t, "from-file\n")
	t.Setenv("TEST_LIST", "   ")

	items, source, err := LoadList(path, "TEST_LIST")

	require.NoError(t, err)
	assert.Equal(t, ListSourceFile, source)
	assert.Equal(t, []string{"from-file"}, items)
}

func TestLoadList_UnreadablePath(t *testing.T) {
	// a directory cannot be scanned as a list file
	_, _, err := LoadList(t.TempDir(), "TEST_LIST_UNSET")

	assert.Error(t, err)
}

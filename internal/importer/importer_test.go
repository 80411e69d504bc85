package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ziadkadry99/string-analyzer/internal/db"
	"github.com/ziadkadry99/string-analyzer/internal/records"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func setupService(t *testing.T) *records.Service {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return records.NewService(records.NewStore(database))
}

func TestExpandPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "nested", "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "nested", "skip.log"), "c")
	writeFile(t, filepath.Join(dir, "node_modules", "x.txt"), "x")

	files, err := ExpandPatterns(
		[]string{filepath.Join(dir, "**", "*.txt"), filepath.Join(dir, "a.txt")},
		[]string{filepath.ToSlash(filepath.Join(dir, "node_modules")) + "/**", "*.log"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "nested", "b.txt"),
	}, files)
}

func TestExpandPatternsBadPattern(t *testing.T) {
	_, err := ExpandPatterns([]string{"[unclosed"}, nil)
	assert.Error(t, err)
}

func TestMatchesExclude(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"data/strings.db", []string{"**/*.db"}, true},
		{"strings.db", []string{"*.db"}, true},
		{"deep/dir/file.txt", []string{"*.txt"}, true},
		{"file.txt", nil, false},
		{"a/vendor/b.txt", []string{"**/vendor/**"}, true},
		{"a/b.txt", []string{"**/vendor/**"}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchesExclude(tt.path, tt.patterns), "%s %v", tt.path, tt.patterns)
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	writeFile(t, first, "racecar\nhello world\r\n\n   \nracecar\n")
	writeFile(t, second, "hello world\nnoon")

	svc := setupService(t)
	im := New(svc, Options{Logger: zaptest.NewLogger(t)})

	res, err := im.Import(context.Background(), []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, Result{Files: 2, Lines: 7, Created: 3, Duplicates: 2, Skipped: 2}, res)

	_, err = svc.Get(context.Background(), "hello world")
	assert.NoError(t, err, "carriage return must be stripped")
}

func TestImportKeepBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.txt")
	writeFile(t, path, "\n  \n")

	res, err := New(setupService(t), Options{KeepBlank: true}).Import(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
}

func TestImportMissingFile(t *testing.T) {
	_, err := New(setupService(t), Options{}).Import(context.Background(), []string{"/does/not/exist.txt"})
	assert.Error(t, err)
}

func TestImportCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, path, "a\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := New(setupService(t), Options{}).Import(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Files)
}

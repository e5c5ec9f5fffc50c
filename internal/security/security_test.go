package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewManagerCanonicalizesRoots(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager([]string{dir, "  ", ""}, nil)
	require.NoError(t, err)
	require.Len(t, m.AllowedDirectories(), 1)
	require.NoError(t, m.ValidateConfig())
}

func TestValidateConfigEmptyAllowList(t *testing.T) {
	m, err := NewManager(nil, nil)
	require.NoError(t, err)
	require.Error(t, m.ValidateConfig())
}

func TestValidateOpenPathContainment(t *testing.T) {
	allowed := t.TempDir()
	outside := t.TempDir()

	inside := writeFile(t, allowed, "sales.csv", "amount,category\n")
	escaped := writeFile(t, outside, "other.csv", "amount\n")

	m, err := NewManager([]string{allowed}, nil)
	require.NoError(t, err)

	canonical, err := m.ValidateOpenPath(inside)
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(canonical))

	_, err = m.ValidateOpenPath(escaped)
	require.ErrorIs(t, err, ErrNotAllowed)
}

func TestValidateOpenPathExtensionAndExistence(t *testing.T) {
	allowed := t.TempDir()
	m, err := NewManager([]string{allowed}, nil)
	require.NoError(t, err)

	_, err = m.ValidateOpenPath(filepath.Join(allowed, "book.xlsx"))
	require.ErrorIs(t, err, ErrUnsupportedExtension)

	_, err = m.ValidateOpenPath(filepath.Join(allowed, "missing.csv"))
	require.ErrorIs(t, err, ErrNotFound)

	_, err = m.ValidateOpenPath("")
	require.ErrorIs(t, err, ErrNotAllowed)
}

func TestValidateOpenPathRejectsDirectory(t *testing.T) {
	allowed := t.TempDir()
	sub := filepath.Join(allowed, "nested.csv")
	require.NoError(t, os.Mkdir(sub, 0o755))

	m, err := NewManager([]string{allowed}, nil)
	require.NoError(t, err)

	_, err = m.ValidateOpenPath(sub)
	require.ErrorIs(t, err, ErrNotAllowed)
}

func TestValidateWritePath(t *testing.T) {
	allowed := t.TempDir()
	outside := t.TempDir()

	m, err := NewManager([]string{allowed}, nil)
	require.NoError(t, err)

	// Target need not exist, but its directory must be contained.
	target, err := m.ValidateWritePath(filepath.Join(allowed, "export.xlsx"))
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(target))

	_, err = m.ValidateWritePath(filepath.Join(outside, "export.xlsx"))
	require.ErrorIs(t, err, ErrNotAllowed)
}

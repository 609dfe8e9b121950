// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/astgen/internal/exc"
)

func TestFileSystemLocalWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	f, err := NewFileSystemLocal(root)
	require.Nil(t, err)

	content := "class Expr {\n}"
	require.Nil(t, f.Write(ctx, "/lox/Expr.java", content))
	written, err := os.ReadFile(filepath.Join(root, "lox", "Expr.java"))
	require.Nil(t, err)
	require.Equal(t, content, string(written))
}

func TestFileSystemLocalWriteFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	// A regular file where the output directory should go makes MkdirAll fail.
	require.Nil(t, os.WriteFile(filepath.Join(root, "lox"), []byte("x"), 0o644))
	f, err := NewFileSystemLocal(root)
	require.Nil(t, err)

	err = f.Write(ctx, "/lox/Expr.java", "class Expr {\n}")
	require.NotNil(t, err)
	e, ok := err.(exc.Exception)
	require.True(t, ok)
	require.Equal(t, exc.CodeWriteFailure, e.Code())
}

func TestFileSystemMultiWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	f, err := NewFileSystemLocal(root)
	require.Nil(t, err)

	err = FileSystemMulti{f}.Write(ctx, "/Expr.java", "class Expr {\n}")
	require.NotNil(t, err)
	e, ok := err.(exc.Exception)
	require.True(t, ok)
	require.Equal(t, exc.CodeUnsuportedFileSystemOperation, e.Code())
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDDLStatements(t *testing.T) {
	stmts, err := readDDLStatements(filepath.Join("..", "..", "migrations", "001_initial_schema.sql"))
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "CREATE TABLE preset_store")
	assert.Contains(t, stmts[0], "allow_commit_timestamp=true")
	assert.NotContains(t, stmts[0], "--")
}

func TestReadDDLStatements_SplitsAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ddl.sql")
	require.NoError(t, os.WriteFile(path, []byte("-- header\r\nCREATE TABLE a (x INT64) PRIMARY KEY (x);\r\n\r\nCREATE INDEX i ON a (x);\r\n"), 0o600))

	stmts, err := readDDLStatements(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"CREATE TABLE a (x INT64) PRIMARY KEY (x)", "CREATE INDEX i ON a (x)"}, stmts)
}

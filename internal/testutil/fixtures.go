package testutil

import (
	_ "embed"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// MoviesDump is a mysqldump-style export with two tables:
// movies (10 columns, 20 rows) and actors (9 columns, 20 rows).
//
//go:embed testdata/movies.sql
var MoviesDump string

// WriteDump writes content to name inside a fresh temp directory and
// returns the file path.
func WriteDump(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dump %s: %v", path, err)
	}
	return path
}

// SingleTableDump returns a dump declaring one table `t` with columns
// id and name and n rows.
func SingleTableDump(n int) string {
	dump := "CREATE TABLE `t` (\n  `id` int NOT NULL,\n  `name` varchar(20)\n);\n"
	if n == 0 {
		return dump
	}
	dump += "INSERT INTO `t` VALUES "
	for i := 1; i <= n; i++ {
		if i > 1 {
			dump += ","
		}
		dump += "(" + strconv.Itoa(i) + ",'row " + strconv.Itoa(i) + "')"
	}
	return dump + ";\n"
}

// Package main provides tests for the dumpnav CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/dumpnav/internal/cli"
	"github.com/leapstack-labs/dumpnav/internal/testutil"
)

// execute runs the root command in an empty working directory so no
// dumpnav.yaml is picked up.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("NO_COLOR", "")

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func moviesPath(t *testing.T) string {
	t.Helper()
	return testutil.WriteDump(t, "movies.sql", testutil.MoviesDump)
}

func TestVersionCommand(t *testing.T) {
	output, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version command error = %v", err)
	}
	if !strings.Contains(output, "dumpnav") {
		t.Errorf("version output should contain 'dumpnav', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	output, err := execute(t, "", "--help")
	if err != nil {
		t.Fatalf("help command error = %v", err)
	}

	expectedCommands := []string{"browse", "tables", "schema", "show", "query", "completion"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestNoArgsPrintsHelp(t *testing.T) {
	output, err := execute(t, "")
	if err != nil {
		t.Fatalf("root command error = %v", err)
	}
	if !strings.Contains(output, "Usage:") {
		t.Errorf("output should contain usage, got: %s", output)
	}
}

func TestTablesCommand(t *testing.T) {
	path := moviesPath(t)

	output, err := execute(t, "", "tables", path, "--output", "csv")
	if err != nil {
		t.Fatalf("tables command error = %v", err)
	}
	for _, want := range []string{"table,columns,rows", "movies,10,20", "actors,9,20"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

func TestRootBrowsesFileArgument(t *testing.T) {
	path := moviesPath(t)

	// Piped stdin selects the plain prompt.
	output, err := execute(t, "2\nn\nq\n", path, "--page-size", "5")
	if err != nil {
		t.Fatalf("browse error = %v", err)
	}
	if !strings.Contains(output, "Table: actors") {
		t.Errorf("output should show the actors table, got: %s", output)
	}
	if !strings.Contains(output, "Rows: 6-10 of 20") {
		t.Errorf("output should show the second page, got: %s", output)
	}
}

func TestConfigFileAndFlags(t *testing.T) {
	path := moviesPath(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(cfgPath, []byte("output: json\nnull_display: \"-\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	output, err := execute(t, "", "--config", cfgPath, "show", path, "movies", "--search", "Spirited")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if !strings.Contains(output, `"budget": null`) {
		t.Errorf("json output should carry null budget, got: %s", output)
	}

	output, err = execute(t, "", "--config", cfgPath, "-o", "csv", "show", path, "movies", "--search", "Spirited")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if !strings.Contains(output, ",-") {
		t.Errorf("csv output should show the configured null text, got: %s", output)
	}
}

func TestInvalidConfiguration(t *testing.T) {
	path := moviesPath(t)

	_, err := execute(t, "", "tables", path, "--max-cell-width", "2")
	if err == nil {
		t.Fatal("expected an error for a too small max cell width")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseErrorIsReported(t *testing.T) {
	path := testutil.WriteDump(t, "broken.sql", "CREATE TABLE `t` (\n  `id` int\n);\nINSERT INTO `t` VALUES (1,2);\n")

	_, err := execute(t, "", "tables", path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the file, got: %v", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	output, err := execute(t, "", "completion", "bash")
	if err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(output, "dumpnav") {
		t.Errorf("completion script should mention dumpnav, got: %.200s", output)
	}
}

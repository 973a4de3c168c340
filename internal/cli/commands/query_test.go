package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dumpnav/internal/cli/config"
	clitest "github.com/leapstack-labs/dumpnav/internal/cli/testutil"
	"github.com/leapstack-labs/dumpnav/internal/testutil"
	"github.com/leapstack-labs/dumpnav/pkg/adapter"
	"github.com/leapstack-labs/dumpnav/pkg/parser"
)

func TestQueryCommand(t *testing.T) {
	path := testutil.WriteDump(t, "movies.sql", testutil.MoviesDump)

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  []map[string]any
	}{
		{
			name: "sql argument",
			args: []string{path, "SELECT title FROM movies WHERE release_year > 2010 ORDER BY id"},
			want: []map[string]any{{"title": "Parasite"}, {"title": "Interstellar"}},
		},
		{
			name: "sql split over arguments",
			args: []string{path, "SELECT", "count(*) AS n", "FROM actors"},
			want: []map[string]any{{"n": "20"}},
		},
		{
			name:  "sql on stdin",
			stdin: "SELECT name FROM actors WHERE movie_id = 3 ORDER BY id",
			args:  []string{path},
			want:  []map[string]any{{"name": "Christian Bale"}, {"name": "Heath Ledger"}},
		},
		{
			name: "null values",
			args: []string{path, "SELECT budget FROM movies WHERE id = 11"},
			want: []map[string]any{{"budget": nil}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := clitest.ExecuteCommand(t, NewQueryCommand(), jsonConfig(), tt.stdin, tt.args...)
			require.NoError(t, res.Err)
			assert.Equal(t, tt.want, decodeRecords(t, res.Out))
		})
	}
}

func TestQueryCommand_InputFile(t *testing.T) {
	path := testutil.WriteDump(t, "movies.sql", testutil.MoviesDump)
	sqlFile := filepath.Join(t.TempDir(), "q.sql")
	require.NoError(t, os.WriteFile(sqlFile, []byte("SELECT max(rating) AS best FROM movies"), 0o600))

	res := clitest.ExecuteCommand(t, NewQueryCommand(), jsonConfig(), "", path, "--input", sqlFile)
	require.NoError(t, res.Err)
	assert.Equal(t, []map[string]any{{"best": "9.3"}}, decodeRecords(t, res.Out))
}

func TestQueryCommand_Errors(t *testing.T) {
	path := testutil.WriteDump(t, "movies.sql", testutil.MoviesDump)

	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{"write rejected", "", []string{path, "DELETE FROM movies"}, "query failed"},
		{"bad sql", "", []string{path, "SELEC 1"}, "query failed"},
		{"empty stdin", "  \n", []string{path}, "no SQL given"},
		{"missing input file", "", []string{path, "--input", "nope.sql"}, "failed to read file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := clitest.ExecuteCommand(t, NewQueryCommand(), jsonConfig(), tt.stdin, tt.args...)
			require.Error(t, res.Err)
			assert.Contains(t, res.Err.Error(), tt.wantErr)
		})
	}
}

func TestQueryCommand_TextNoRows(t *testing.T) {
	path := testutil.WriteDump(t, "movies.sql", testutil.MoviesDump)
	cfg := config.Default()
	cfg.OutputFormat = config.OutputText

	res := clitest.ExecuteCommand(t, NewQueryCommand(), cfg, "", path, "SELECT * FROM movies WHERE id < 0")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "(0 rows)")
}

// lines replays fixed REPL input. "^C" simulates an interrupt.
type lines struct {
	input   []string
	prompts []string
}

func (l *lines) Readline() (string, error) {
	if len(l.input) == 0 {
		return "", io.EOF
	}
	line := l.input[0]
	l.input = l.input[1:]
	if line == "^C" {
		return "", readline.ErrInterrupt
	}
	return line, nil
}

func (l *lines) SetPrompt(p string) {
	l.prompts = append(l.prompts, p)
}

func replFixture(t *testing.T) (*CommandContext, *clitest.TestRenderer, *adapter.Mirror) {
	t.Helper()
	db, err := parser.Parse(testutil.MoviesDump)
	require.NoError(t, err)

	ctx := context.Background()
	m, err := adapter.Open(ctx, db, testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	tr := clitest.NewTestRendererJSON()
	cc := &CommandContext{
		Cfg:      config.Default(),
		Logger:   testutil.NewTestLogger(t),
		Renderer: tr.Renderer,
		DB:       db,
		Path:     "movies.sql",
	}
	return cc, tr, m
}

func TestREPL_MultiLineStatement(t *testing.T) {
	cc, tr, m := replFixture(t)
	in := &lines{input: []string{
		"SELECT title",
		"FROM movies",
		"WHERE id = 7;",
	}}

	require.NoError(t, repl(context.Background(), in, cc, m))

	assert.Equal(t, []string{replContPrompt, replContPrompt, replPrompt}, in.prompts)
	assert.Contains(t, tr.Output(), `"title": "Inception"`)
}

func TestREPL_InterruptDiscardsBuffer(t *testing.T) {
	cc, tr, m := replFixture(t)
	in := &lines{input: []string{
		"SELECT nonsense",
		"^C",
		"SELECT count(*) AS n FROM movies;",
	}}

	require.NoError(t, repl(context.Background(), in, cc, m))

	assert.Empty(t, tr.ErrorOutput())
	assert.Contains(t, tr.Output(), `"n": "20"`)
}

func TestREPL_DotCommands(t *testing.T) {
	cc, tr, m := replFixture(t)
	in := &lines{input: []string{
		".tables",
		".schema actors",
		".schema",
		".bogus",
		".quit",
		"SELECT 1;",
	}}

	require.NoError(t, repl(context.Background(), in, cc, m))

	out := tr.Output()
	assert.Contains(t, out, `"name": "movies"`)
	assert.Contains(t, out, `"name": "actors"`)
	assert.Contains(t, out, `"column": "movie_id"`)
	assert.Contains(t, out, `"type": "INTEGER"`)
	assert.NotContains(t, out, `"1"`, "statements after .quit are not run")

	errOut := tr.ErrorOutput()
	assert.Contains(t, errOut, "usage: .schema <table>")
	assert.Contains(t, errOut, "unknown command: .bogus")
}

func TestREPL_ErrorsDoNotStopLoop(t *testing.T) {
	cc, tr, m := replFixture(t)
	in := &lines{input: []string{
		"DROP TABLE movies;",
		".schema directors",
		"SELECT count(*) AS n FROM movies;",
	}}

	require.NoError(t, repl(context.Background(), in, cc, m))

	assert.Contains(t, tr.ErrorOutput(), "Error: query failed")
	assert.Contains(t, tr.ErrorOutput(), `no table named "directors"`)
	assert.Contains(t, tr.Output(), `"n": "20"`)
}

func TestNewTableCompleter(t *testing.T) {
	c := newTableCompleter([]string{"movies", "actors"})

	var names []string
	for _, child := range c.GetChildren() {
		names = append(names, string(child.GetName()))
	}
	assert.Contains(t, names, "movies ")
	assert.Contains(t, names, "actors ")
	assert.Contains(t, names, ".schema ")
}

package search_test

import (
	"testing"

	"github.com/leapstack-labs/dumpnav/internal/testutil"
	"github.com/leapstack-labs/dumpnav/pkg/core"
	"github.com/leapstack-labs/dumpnav/pkg/parser"
	"github.com/leapstack-labs/dumpnav/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moviesTable(t *testing.T) *core.Table {
	t.Helper()
	db, err := parser.Parse(testutil.MoviesDump)
	require.NoError(t, err)
	movies, ok := db.Table("movies")
	require.True(t, ok)
	return movies
}

func TestRows_Movies(t *testing.T) {
	movies := moviesTable(t)

	tests := []struct {
		query string
		want  []int
	}{
		{query: "Nolan", want: []int{2, 6, 14}},
		{query: "nOLAN", want: []int{2, 6, 14}},
		{query: "drama", want: []int{0, 7, 16, 18}},
		{query: "1994", want: []int{0, 3, 5}},
		{query: "south korea", want: []int{13, 17}},
		{query: "AMÉLIE", want: []int{11}},
		{query: "'", want: []int{4, 19}},
		{query: "no such movie", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, search.Rows(movies, tt.query))
		})
	}
}

func TestRows_EmptyQuery(t *testing.T) {
	assert.Nil(t, search.Rows(moviesTable(t), ""))
}

func TestRows_SkipsNull(t *testing.T) {
	table := &core.Table{
		Name:    "t",
		Columns: []core.Column{{Name: "a"}, {Name: "b"}},
		Rows: []core.Row{
			{core.Null(), core.String("x")},
			{core.String("NULL"), core.Number("1")},
			{core.Number("2"), core.Null()},
		},
	}

	assert.Equal(t, []int{1}, search.Rows(table, "null"))
	assert.Equal(t, []int{2}, search.Rows(table, "2"))
}

func TestTables(t *testing.T) {
	names := []string{"movies", "actors", "movie_actors", "Reviews"}

	assert.Equal(t, []string{"movies", "movie_actors"}, search.Tables(names, "MOVIE"))
	assert.Equal(t, []string{"Reviews"}, search.Tables(names, "rev"))
	assert.Equal(t, []string{}, search.Tables(names, "zzz"))
	assert.Equal(t, names, search.Tables(names, ""))
}

func TestMatch(t *testing.T) {
	assert.True(t, search.Match("Christopher Nolan", "nolan"))
	assert.True(t, search.Match("Straße", "STRASSE"))
	assert.False(t, search.Match("Nolan", "nolans"))
}

func TestHighlights(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  [][2]int
	}{
		{name: "single", text: "Christopher Nolan", query: "nolan", want: [][2]int{{12, 17}}},
		{name: "repeated", text: "abcABCabc", query: "ABC", want: [][2]int{{0, 3}, {3, 6}, {6, 9}}},
		{name: "non overlapping", text: "aaaa", query: "aa", want: [][2]int{{0, 2}, {2, 4}}},
		{name: "multibyte", text: "Léon Léon", query: "LÉON", want: [][2]int{{0, 5}, {6, 11}}},
		{name: "folding expands", text: "Straße", query: "SS", want: [][2]int{{4, 6}}},
		{name: "folded rune matched once", text: "straße", query: "s", want: [][2]int{{0, 1}, {4, 6}}},
		{name: "folded rune at end", text: "Fuß", query: "s", want: [][2]int{{2, 4}}},
		{name: "no match", text: "Inception", query: "nolan", want: nil},
		{name: "empty query", text: "Inception", query: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, search.Highlights(tt.text, tt.query))
		})
	}
}

package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/leapstack-labs/dumpnav/pkg/core"
	"github.com/leapstack-labs/dumpnav/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peopleTable() *core.Table {
	return &core.Table{
		Name: "people",
		Columns: []core.Column{
			{Name: "id", Type: "int"},
			{Name: "name", Type: "varchar(50)"},
			{Name: "city", Type: "varchar(50)"},
		},
	}
}

func TestParseInsert(t *testing.T) {
	ins, err := parser.ParseInsert("INSERT INTO `people` VALUES (1,'Ann','Oslo'), (2 , 'Bob, Jr.' ,NULL)\n,(3,'C\\'s','x')")
	require.NoError(t, err)

	assert.Equal(t, "people", ins.Table)
	assert.Nil(t, ins.Columns)
	require.Len(t, ins.Tuples, 3)
	assert.Equal(t, []string{"2", "'Bob, Jr.'", "NULL"}, ins.Tuples[1].Values)
	assert.Equal(t, 2, ins.Tuples[2].Pos.Line)
	assert.Equal(t, 2, ins.Tuples[2].Pos.Column)

	rows, err := ins.Rows(peopleTable())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, core.Row{core.Number("2"), core.String("Bob, Jr."), core.Null()}, rows[1])
	assert.Equal(t, core.String("C's"), rows[2][1])
}

func TestParseInsert_Variants(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		table  string
		tuples int
	}{
		{name: "ignore modifier", sql: "INSERT IGNORE INTO `people` VALUES (1,'a','b')", table: "people", tuples: 1},
		{name: "value keyword", sql: "insert into people value (1,'a','b'),(2,'c','d')", table: "people", tuples: 2},
		{name: "on duplicate key", sql: "INSERT INTO `people` VALUES (1,'a','b') ON DUPLICATE KEY UPDATE name=VALUES(name)", table: "people", tuples: 1},
		{name: "qualified", sql: "INSERT INTO `db`.`people` VALUES (1,'a','b')", table: "people", tuples: 1},
		{name: "parens in string", sql: "INSERT INTO `people` VALUES (1,'a)(b','(c')", table: "people", tuples: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, err := parser.ParseInsert(tt.sql)
			require.NoError(t, err)
			assert.Equal(t, tt.table, ins.Table)
			assert.Len(t, ins.Tuples, tt.tuples)
		})
	}
}

func TestInsert_ExplicitColumns(t *testing.T) {
	ins, err := parser.ParseInsert("INSERT INTO `people` (`city`, `id`) VALUES ('Rome', 7)")
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "id"}, ins.Columns)

	rows, err := ins.Rows(peopleTable())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, core.Row{core.Number("7"), core.Null(), core.String("Rome")}, rows[0])
}

func TestInsert_RowErrors(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		message string
	}{
		{name: "too few values", sql: "INSERT INTO `people` VALUES (1,'a','b'),(2,'c')", message: "tuple 2: tuple has 2 values, expected 3"},
		{name: "too many values", sql: "INSERT INTO `people` VALUES (1,'a','b',4)", message: "tuple has 4 values, expected 3"},
		{name: "empty tuple", sql: "INSERT INTO `people` VALUES ()", message: "tuple has 0 values, expected 3"},
		{name: "column list count", sql: "INSERT INTO `people` (`id`) VALUES (1,'a')", message: "tuple has 2 values, expected 1"},
		{name: "unknown column", sql: "INSERT INTO `people` (`id`,`age`) VALUES (1,2)", message: "column `age` is not declared"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, err := parser.ParseInsert(tt.sql)
			require.NoError(t, err)

			_, err = ins.Rows(peopleTable())
			require.ErrorIs(t, err, parser.ErrRowParse)
			assert.Contains(t, err.Error(), tt.message)
			assert.Contains(t, err.Error(), "in table `people`")
		})
	}
}

func TestParseInsert_Errors(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		target error
	}{
		{name: "select form", sql: "INSERT INTO `people` SELECT * FROM other", target: parser.ErrRowParse},
		{name: "no tuples", sql: "INSERT INTO `people` VALUES", target: parser.ErrRowParse},
		{name: "garbage between tuples", sql: "INSERT INTO `people` VALUES (1,'a','b') (2,'c','d')", target: parser.ErrRowParse},
		{name: "dangling comma", sql: "INSERT INTO `people` VALUES (1,'a','b'),", target: parser.ErrRowParse},
		{name: "unterminated string", sql: "INSERT INTO `people` VALUES (1,'a", target: parser.ErrMalformedLiteral},
		{name: "empty value", sql: "INSERT INTO `people` VALUES (1,,'b')", target: parser.ErrMalformedLiteral},
		{name: "unclosed tuple", sql: "INSERT INTO `people` VALUES (1,'a','b'", target: parser.ErrRowParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseInsert(tt.sql)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestProperty_RowCellCountMatchesColumns(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("rows have exactly one cell per column or the tuple is rejected", prop.ForAll(
		func(columns int, deltas []int) bool {
			table := &core.Table{Name: "t"}
			for i := 0; i < columns; i++ {
				table.Columns = append(table.Columns, core.Column{Name: fmt.Sprintf("c%d", i)})
			}

			tuples := make([]string, len(deltas))
			mismatch := false
			for i, delta := range deltas {
				n := columns + delta
				values := make([]string, n)
				for k := range values {
					values[k] = fmt.Sprintf("'v%d,%d'", i, k)
				}
				tuples[i] = "(" + strings.Join(values, ",") + ")"
				mismatch = mismatch || n != columns
			}

			ins, err := parser.ParseInsert("INSERT INTO `t` VALUES " + strings.Join(tuples, ","))
			if err != nil {
				return false
			}
			rows, err := ins.Rows(table)
			if mismatch {
				return err != nil && rows == nil
			}
			if err != nil || len(rows) != len(deltas) {
				return false
			}
			for _, row := range rows {
				if len(row) != columns {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.SliceOfN(3, gen.Frequency(map[int]gopter.Gen{
			6: gen.Const(0),
			1: gen.IntRange(-1, 1),
		})),
	))

	properties.TestingRun(t)
}

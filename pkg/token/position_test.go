package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_Advance(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Position
	}{
		{"empty", "", Position{Line: 1, Column: 1, Offset: 0}},
		{"single line", "abc", Position{Line: 1, Column: 4, Offset: 3}},
		{"newline", "ab\ncd", Position{Line: 2, Column: 3, Offset: 5}},
		{"trailing newline", "ab\n", Position{Line: 2, Column: 1, Offset: 3}},
		{"multibyte rune counts once", "é", Position{Line: 1, Column: 2, Offset: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Begin().Advance(tt.text))
		})
	}
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "line 3, column 7", Position{Line: 3, Column: 7}.String())
	assert.Equal(t, "unknown position", Position{}.String())
}

func TestSpan(t *testing.T) {
	s := Span{Start: Position{Line: 1, Column: 1, Offset: 2}, End: Position{Line: 1, Column: 5, Offset: 6}}
	assert.True(t, s.IsValid())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(6))
	assert.Equal(t, 4, s.Len())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, LineComment, KindOf("-- Dump completed"))
	assert.Equal(t, BlockComment, KindOf("/* note */"))
	assert.Equal(t, ConditionalComment, KindOf("/*!40101 SET NAMES utf8 */"))
	assert.Equal(t, "conditional", ConditionalComment.String())
}

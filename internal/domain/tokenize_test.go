package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteDecimalCommas(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12,5", "12.5"},
		{"1,2,3", "1.2.3"}, // overlapping matches share a digit
		{"snow, heavy", "snow, heavy"},
		{"12, 5", "12, 5"},
		{"a,b", "a,b"},
		{"1925-03-04,12,5,snow", "1925-03-04.12.5.snow"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, rewriteDecimalCommas(tc.in), "input %q", tc.in)
	}
}

func TestSplitRow(t *testing.T) {
	t.Run("exact column count", func(t *testing.T) {
		parts, shape := SplitRow("1925-03-04;3.5;clear", ";", 3)
		assert.Equal(t, []string{"1925-03-04", "3.5", "clear"}, parts)
		assert.Equal(t, RowExact, shape)
	})

	t.Run("surplus tokens fold into the last column", func(t *testing.T) {
		parts, shape := SplitRow("a;b;c;d;e", ";", 3)
		assert.Equal(t, []string{"a", "b", "c;d;e"}, parts)
		assert.Equal(t, RowFolded, shape)
	})

	t.Run("short row is right-padded", func(t *testing.T) {
		parts, shape := SplitRow("a;b", ";", 3)
		assert.Equal(t, []string{"a", "b", ""}, parts)
		assert.Equal(t, RowPadded, shape)
	})

	t.Run("decimal comma survives a comma-separated split", func(t *testing.T) {
		parts, shape := SplitRow("1925-03-04,12,5,snow", ",", 3)
		assert.Equal(t, []string{"1925-03-04", "12.5", "snow"}, parts)
		assert.Equal(t, RowExact, shape)
	})

	t.Run("no rewrite for non-comma separators", func(t *testing.T) {
		parts, shape := SplitRow("1925-03-04\t12,5", "\t", 2)
		assert.Equal(t, []string{"1925-03-04", "12,5"}, parts)
		assert.Equal(t, RowExact, shape)
	})

	t.Run("free text separator folds verbatim", func(t *testing.T) {
		parts, shape := SplitRow("1925-03-04|3.5|snow drifts | road closed", "|", 3)
		assert.Equal(t, "snow drifts | road closed", parts[2])
		assert.Equal(t, RowFolded, shape)
	})
}

func TestIsComment(t *testing.T) {
	assert.True(t, IsComment("# a note"))
	assert.False(t, IsComment("1925-03-04;1"))
	assert.False(t, IsComment(" # indented is data"))
}

package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name      string
		from      string
		to        string
		context   int
		want      string
		wantStats Stats
	}{
		{
			name:      "single_line_change",
			from:      "a\nb\nc\n",
			to:        "a\nB\nc\n",
			context:   1,
			want:      "--- a/doc.txt\n+++ b/doc.txt\n@@ -1 +1 @@\n a\n-b\n+B\n c\n",
			wantStats: Stats{Added: 1, Removed: 1},
		},
		{
			name:      "insertion_without_context",
			from:      "a\nc\n",
			to:        "a\nb\nc\n",
			context:   0,
			want:      "--- a/doc.txt\n+++ b/doc.txt\n@@ -2 +2 @@\n+b\n",
			wantStats: Stats{Added: 1},
		},
		{
			name:      "no_change",
			from:      "same\n",
			to:        "same\n",
			context:   2,
			want:      "",
			wantStats: Stats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			stats, err := Render(&sb, "doc.txt", tt.from, tt.to, tt.context)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sb.String())
			assert.Equal(t, tt.wantStats, stats)
		})
	}
}

func TestRender_SeparateHunks(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var from, to []string
	for i := 1; i <= 10; i++ {
		from = append(from, fmt.Sprint(i))
		to = append(to, fmt.Sprint(i))
	}
	to[0] = "one"
	to[9] = "ten"

	out := String("doc.txt", strings.Join(from, "\n")+"\n", strings.Join(to, "\n")+"\n", 1)

	assert.Equal(t, 2, strings.Count(out, "@@ -"), "two hunks")
	assert.Contains(t, out, "@@ -9 +9 @@")
	assert.Contains(t, out, "\n 2\n")
	assert.NotContains(t, out, "\n 5\n")
	assert.Contains(t, out, "+one\n")
	assert.Contains(t, out, "-10\n")
}

func TestRender_LongDocument(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var from, to []string
	for i := 1; i <= 12; i++ {
		line := fmt.Sprintf("    <Row Index=\"%d\"/>", i)
		from = append(from, line)
		if i == 7 {
			line = "    <Row Index=\"7\" Height=\"32\"/>"
		}
		to = append(to, line)
	}

	var sb strings.Builder
	stats, err := Render(&sb, "MainWindow.xaml", strings.Join(from, "\n")+"\n", strings.Join(to, "\n")+"\n", 1)
	require.NoError(t, err)

	assert.Equal(t, Stats{Added: 1, Removed: 1}, stats)
	assert.Equal(t, "--- a/MainWindow.xaml\n+++ b/MainWindow.xaml\n"+
		"@@ -6 +6 @@\n"+
		"     <Row Index=\"6\"/>\n"+
		"-    <Row Index=\"7\"/>\n"+
		"+    <Row Index=\"7\" Height=\"32\"/>\n"+
		"     <Row Index=\"8\"/>\n", sb.String())
}

func TestLines_RepeatedLines(t *testing.T) {
	lines := Lines("a\nb\na\nb\n", "a\nb\na\nc\n")
	assert.Equal(t, Stats{Added: 1, Removed: 1}, Count(lines))
	assert.Equal(t, Line{Op: Equal, Text: "a"}, lines[2])
}

func TestLines(t *testing.T) {
	lines := Lines("x\ny", "x\nz")
	assert.Equal(t, []Line{
		{Op: Equal, Text: "x"},
		{Op: Delete, Text: "y"},
		{Op: Insert, Text: "z"},
	}, lines)
	assert.Equal(t, "+1 -1", Count(lines).String())
}

package formats

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/minemarker/internal/geom"
	"github.com/vovakirdan/minemarker/internal/orders"
)

func TestParseMinefield(t *testing.T) {
	field, err := ParseMinefield(".e.\n..a\nA..\n")
	require.NoError(t, err)

	assert.Equal(t, []geom.Point{
		geom.P(0, 2, 27),
		geom.P(1, 0, 5),
		geom.P(2, 1, 1),
	}, field.Mines())

	box, ok := field.BoundingCuboid()
	require.True(t, ok)
	assert.Equal(t, geom.P(0, 0, 1), box.NorthWestTop)
	assert.Equal(t, geom.P(2, 2, 27), box.SouthEastBottom)
}

func TestParseMinefieldAcceptsCRLF(t *testing.T) {
	unix, err := ParseMinefield("a.\n.Z")
	require.NoError(t, err)
	dos, err := ParseMinefield("a.\r\n.Z\r\n")
	require.NoError(t, err)

	assert.Equal(t, unix.Mines(), dos.Mines())
}

func TestParseMinefieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		line   int
		column int
	}{
		{"empty", "", 0, 0},
		{"no mines", "...\n...\n", 0, 0},
		{"ragged rows", "a..\n..\n", 2, 0},
		{"blank row", "a..\n\n..b\n", 2, 0},
		{"bad character", "a.?\n", 1, 3},
		{"star is not input", "*..\n", 1, 1},
		{"digit", ".1.\n", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMinefield(tt.text)
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
			assert.Equal(t, tt.line, parseErr.Line)
			assert.Equal(t, tt.column, parseErr.Column)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// Fields whose mines touch every border render back to the input when
	// centred on the grid middle
	fields := []string{
		".e.\n..a\nA..",
		"a",
		"a.b\n...\nc.d",
		"Z....\n.....\n....z",
		".b.\nc.a\n.d.",
	}

	for _, text := range fields {
		field, err := ParseMinefield(text)
		require.NoError(t, err, text)

		rows := strings.Split(text, "\n")
		middle := geom.P(len(rows[0])/2, len(rows)/2, 0)
		got, err := field.ToOutputFormat(middle)
		require.NoError(t, err)
		assert.Equal(t, rows, got, text)
	}
}

func TestFormatMinefield(t *testing.T) {
	field, err := ParseMinefield(".e.\n..a\nA..\n")
	require.NoError(t, err)

	text, err := FormatMinefield(field)
	require.NoError(t, err)
	assert.Equal(t, ".e.\n..a\nA..\n", text)
}

func TestParseScript(t *testing.T) {
	script, err := ParseScript("gamma\n\nnorth  alpha\n\tdelta west \n")
	require.NoError(t, err)

	require.Equal(t, 4, script.NumTurnsCovered())
	assert.Equal(t, "gamma", script.ForTurn(0).String())
	assert.Nil(t, script.ForTurn(1))
	assert.Equal(t, []orders.Action{orders.North, orders.Alpha}, script.ForTurn(2).Actions())
	assert.Equal(t, []orders.Action{orders.Delta, orders.West}, script.ForTurn(3).Actions())
}

func TestParseScriptLineCounting(t *testing.T) {
	tests := []struct {
		text  string
		turns int
	}{
		{"", 0},
		{"\n", 1},
		{"\n\n", 2},
		{"gamma", 1},
		{"gamma\n", 1},
		{"gamma\r\n\r\n", 2},
		{"gamma\n\n\n", 3},
	}

	for _, tt := range tests {
		script, err := ParseScript(tt.text)
		require.NoError(t, err, "%q", tt.text)
		assert.Equal(t, tt.turns, script.NumTurnsCovered(), "%q", tt.text)
	}
}

func TestParseScriptErrorColumn(t *testing.T) {
	tests := []struct {
		text   string
		column int
	}{
		{"fly\n", 1},
		{"alpha alph\n", 7},
		{"  gamma\tgam\n", 9},
		{"north gamma  north_\n", 14},
	}

	for _, tt := range tests {
		_, err := ParseScript(tt.text)
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr), "%q: expected ParseError, got %v", tt.text, err)
		assert.Equal(t, 1, parseErr.Line, "%q", tt.text)
		assert.Equal(t, tt.column, parseErr.Column, "%q", tt.text)
	}
}

func TestParseScriptErrors(t *testing.T) {
	_, err := ParseScript("gamma\nnorth fly\n")
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
	assert.Equal(t, 2, parseErr.Line)
	assert.Equal(t, 7, parseErr.Column)

	_, err = ParseScript("\nnorth south\n")
	var scriptErr *orders.ScriptError
	require.True(t, errors.As(err, &scriptErr), "expected ScriptError, got %v", err)
	assert.Equal(t, 1, scriptErr.Turn)

	_, err = ParseScript("alpha beta\n")
	require.True(t, errors.As(err, &scriptErr), "expected ScriptError, got %v", err)
	assert.Equal(t, 0, scriptErr.Turn)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	fieldPath := filepath.Join(dir, "field.txt")
	scriptPath := filepath.Join(dir, "script.txt")
	require.NoError(t, os.WriteFile(fieldPath, []byte(".e.\n..a\nA..\n"), 0o644))
	require.NoError(t, os.WriteFile(scriptPath, []byte("gamma\n"), 0o644))

	field, err := LoadMinefield(fieldPath)
	require.NoError(t, err)
	assert.Equal(t, 3, field.NumMines())

	script, err := LoadScript(scriptPath)
	require.NoError(t, err)
	assert.Equal(t, 1, script.NumTurnsCovered())

	_, err = LoadMinefield(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	badPath := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(badPath, []byte("a.\n.\n"), 0o644))
	_, err = LoadMinefield(badPath)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, badPath, parseErr.Source)
	assert.True(t, strings.HasPrefix(err.Error(), badPath+":2:"), err.Error())
}

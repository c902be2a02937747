package airfoil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	selig, err := os.ReadFile(filepath.Join("testdata", "naca0012_selig.dat"))
	require.NoError(t, err)
	lednicer, err := os.ReadFile(filepath.Join("testdata", "naca0012_lednicer.dat"))
	require.NoError(t, err)

	assert.Equal(t, FormatSelig, Detect(selig))
	assert.Equal(t, FormatLednicer, Detect(lednicer))
	assert.Equal(t, FormatLednicer, Detect([]byte(testFoil)))
	assert.Equal(t, FormatSelig, Detect([]byte("ONLY NAME\n")))
	assert.Equal(t, FormatSelig, Detect([]byte("")))
	assert.Equal(t, FormatSelig, Detect([]byte("F\n1.0 0.0\n")))
	assert.Equal(t, FormatSelig, Detect([]byte("F\n2.5 3.\n")))
}

func TestParse_Auto(t *testing.T) {
	for _, name := range []string{"naca0012_selig.dat", "naca0012_lednicer.dat"} {
		a, err := Parse(filepath.Join("testdata", name), FormatAuto)
		require.NoError(t, err, name)
		assert.Equal(t, 33, a.NumPoints(), name)
	}
}

func TestDecode_ExplicitFormat(t *testing.T) {
	a, err := Decode("t.dat", []byte(testFoil), FormatLednicer, WithStrictLeadingEdge())
	require.NoError(t, err)
	assert.Equal(t, FormatLednicer, a.Format())

	// Read as Selig, the blank separator line is rejected.
	_, err = Decode("t.dat", []byte(testFoil), FormatSelig)
	assert.Error(t, err)

	_, err = Decode("t.dat", []byte(testFoil), Format(42))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatAuto,
		"auto":     FormatAuto,
		"Selig":    FormatSelig,
		" a ":      FormatSelig,
		"LEDNICER": FormatLednicer,
		"b":        FormatLednicer,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xfoil")
	assert.Error(t, err)
}

func TestFormat_Text(t *testing.T) {
	for _, f := range []Format{FormatAuto, FormatSelig, FormatLednicer} {
		b, err := f.MarshalText()
		require.NoError(t, err)
		var back Format
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, f, back)
	}
	assert.Equal(t, "unknown", Format(9).String())
}

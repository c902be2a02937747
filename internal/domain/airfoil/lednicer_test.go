package airfoil

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFoil = `TESTFOIL
2. 2.

0.0 0.0
1.0 0.1

0.0 0.0
1.0 -0.1
`

func TestDecodeLednicer_TestFoil(t *testing.T) {
	a, err := DecodeLednicer("testfoil.dat", []byte(testFoil))
	require.NoError(t, err)

	assert.Equal(t, "TESTFOIL", a.Name())
	assert.Equal(t, FormatLednicer, a.Format())
	assert.Equal(t, []Point{{0, 0}, {1, 0.1}}, a.Upper())
	assert.Equal(t, []Point{{0, 0}, {1, -0.1}}, a.Lower())
	assert.Equal(t, []Point{{1, 0.1}, {0, 0}, {1, -0.1}}, a.Points())
}

func TestDecodeLednicer_LineEndings(t *testing.T) {
	want, err := DecodeLednicer("lf.dat", []byte(testFoil))
	require.NoError(t, err)

	for name, eol := range map[string]string{"crlf": "\r\n", "cr": "\r"} {
		t.Run(name, func(t *testing.T) {
			src := strings.ReplaceAll(testFoil, "\n", eol)
			got, err := DecodeLednicer(name+".dat", []byte(src))
			require.NoError(t, err)
			assert.Equal(t, want.Name(), got.Name())
			assert.Equal(t, want.Points(), got.Points())
		})
	}
}

func TestParseLednicer_NACA0012(t *testing.T) {
	a, err := ParseLednicer(filepath.Join("testdata", "naca0012_lednicer.dat"))
	require.NoError(t, err)

	assert.Equal(t, "NACA 0012 AIRFOILS", a.Name())
	assert.Equal(t, 17, a.NumUpper())
	assert.Equal(t, 17, a.NumLower())
	assert.Equal(t, 17+17-1, a.NumPoints())

	upper, lower := a.Upper(), a.Lower()
	assert.Equal(t, upper[0], lower[0])
	assertIncreasingX(t, upper)
	assertIncreasingX(t, lower)

	// No adjacent duplicate at the leading edge.
	pts := a.Points()
	for i := 0; i+1 < len(pts); i++ {
		assert.NotEqual(t, pts[i], pts[i+1], "duplicate adjacent point at %d", i)
	}
}

func TestParseLednicer_MatchesSelig(t *testing.T) {
	l, err := ParseLednicer(filepath.Join("testdata", "naca0012_lednicer.dat"))
	require.NoError(t, err)
	s, err := ParseSelig(filepath.Join("testdata", "naca0012_selig.dat"))
	require.NoError(t, err)

	assertPointsClose(t, s.Upper(), l.Upper())
	assertPointsClose(t, s.Lower(), l.Lower())
	assertPointsClose(t, s.Points(), l.Points())
}

func TestDecodeLednicer_CountNoise(t *testing.T) {
	src := "NOISY\n 3.0x   2,\n\n0 0\n0.5 0.05\n1 0\n\n0 0\n1 0\n"
	_, err := DecodeLednicer("noisy.dat", []byte(src))
	// "3.0x" strips to "30": thirty upper points are declared.
	require.Error(t, err)

	src = "NOISY\n #3.   (2)\n\n0 0\n0.5 0.05\n1 0\n\n0 0\n1 0\n"
	a, err := DecodeLednicer("noisy.dat", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, 3, a.NumUpper())
	assert.Equal(t, 2, a.NumLower())
	assert.Equal(t, 4, a.NumPoints())
}

func TestDecodeLednicer_SingleLowerPoint(t *testing.T) {
	a, err := DecodeLednicer("x.dat", []byte("X\n2. 1.\n\n0 0\n1 0.1\n\n0 0\n"))
	require.NoError(t, err)
	assert.Equal(t, []Point{{0, 0}}, a.Lower())
	assert.Equal(t, []Point{{1, 0.1}, {0, 0}}, a.Points())
}

func TestDecodeLednicer_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"empty", "", 0, "empty file"},
		{"no count line", "NAME\n", 2, "missing point count line"},
		{"blank name line", "\n2. 2.\n\n0 0\n1 0.1\n\n0 0\n1 -0.1\n", 1, "missing name line"},
		{"one count", "NAME\n2.\n", 2, "expected two point counts"},
		{"count without digits", "NAME\n2. n.\n", 2, "invalid point count"},
		{"too short", "NAME\n2. 2.\n\n0 0\n1 0.1\n\n0 0\n", 0, "point counts 2+2 need 8"},
		{"huge count", "NAME\n99999999999. 2.\n\n0 0\n", 0, "file has"},
		{"bad upper point", "NAME\n2. 2.\n\n0 0\n1\n\n0 0\n1 -0.1\n", 5, "expected two coordinates"},
		{"bad lower point", "NAME\n2. 2.\n\n0 0\n1 0.1\n\n0 0\n1 q\n", 8, "invalid y coordinate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLednicer("bad.dat", []byte(tt.src))
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %T", err)
			assert.Equal(t, tt.line, pe.Line)
			assert.Contains(t, pe.Msg, tt.msg)
		})
	}
}

func TestDecodeLednicer_StrictLeadingEdge(t *testing.T) {
	mismatch := "M\n2. 2.\n\n0 0\n1 0.1\n\n0.01 0\n1 -0.1\n"

	// Default trusts the duplicate.
	a, err := DecodeLednicer("m.dat", []byte(mismatch))
	require.NoError(t, err)
	assert.Equal(t, []Point{{1, 0.1}, {0, 0}, {1, -0.1}}, a.Points())

	_, err = DecodeLednicer("m.dat", []byte(mismatch), WithStrictLeadingEdge())
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 7, pe.Line)

	_, err = DecodeLednicer("ok.dat", []byte(testFoil), WithStrictLeadingEdge())
	assert.NoError(t, err)
}

func TestParseLednicer_Idempotent(t *testing.T) {
	path := writeDat(t, testFoil)
	a, err := ParseLednicer(path)
	require.NoError(t, err)
	b, err := ParseLednicer(path)
	require.NoError(t, err)
	assertPointsClose(t, a.Points(), b.Points())
}

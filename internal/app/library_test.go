package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/foilview/internal/adapters/bbolt"
	"github.com/corey/foilview/internal/domain/airfoil"
	"github.com/corey/foilview/internal/ports"
)

const testFoil = `TESTFOIL
3. 3.

0.0 0.0
0.3 0.06
1.0 0.0

0.0 0.0
0.3 -0.04
1.0 0.0
`

// countingDecoder wraps FormatDecoder and counts Decode calls.
type countingDecoder struct {
	FormatDecoder
	calls atomic.Int32
}

func (d *countingDecoder) Decode(source string, data []byte) (airfoil.Airfoil, error) {
	d.calls.Add(1)
	return d.FormatDecoder.Decode(source, data)
}

func newTestStore(t *testing.T) *bbolt.Store {
	t.Helper()
	store, err := bbolt.NewStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func writeFoil(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestFormatDecoder_Variant(t *testing.T) {
	assert.Equal(t, "auto", FormatDecoder{}.Variant())
	assert.Equal(t, "lednicer+strict", FormatDecoder{Format: airfoil.FormatLednicer, Strict: true}.Variant())
}

func TestFormatDecoder_Strict(t *testing.T) {
	body := "BAD\n2. 2.\n\n0 0\n1 0\n\n0 0.1\n1 0\n"

	_, err := FormatDecoder{Format: airfoil.FormatLednicer}.Decode("bad.dat", []byte(body))
	require.NoError(t, err)

	_, err = FormatDecoder{Format: airfoil.FormatLednicer, Strict: true}.Decode("bad.dat", []byte(body))
	var pe *airfoil.ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestLibrary_LoadFileUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFoil(t, dir, "testfoil.dat", testFoil)
	dec := &countingDecoder{}
	store := newTestStore(t)

	lib, err := NewLibrary(dir, store, dec)
	require.NoError(t, err)

	a, err := lib.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "TESTFOIL", a.Name())
	assert.Equal(t, airfoil.FormatLednicer, a.Format())

	b, err := lib.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, a.Points(), b.Points())
	assert.Equal(t, int32(1), dec.calls.Load(), "second load should be served from cache")

	infos, err := store.ListAirfoils()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	variant, p := SplitCacheKey(infos[0].Key)
	assert.Equal(t, "auto", variant)
	assert.Equal(t, path, p)
}

func TestLibrary_ChangedFileIsDecodedAgain(t *testing.T) {
	dir := t.TempDir()
	path := writeFoil(t, dir, "testfoil.dat", testFoil)
	dec := &countingDecoder{}
	lib, err := NewLibrary(dir, newTestStore(t), dec)
	require.NoError(t, err)

	_, err = lib.LoadFile(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("RENAMED\n1 0\n0 0\n1 0\n"), 0644))
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	a, err := lib.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "RENAMED", a.Name())
	assert.Equal(t, int32(2), dec.calls.Load())
}

func TestLibrary_VariantsDoNotShareEntries(t *testing.T) {
	dir := t.TempDir()
	path := writeFoil(t, dir, "testfoil.dat", testFoil)
	store := newTestStore(t)

	auto := &countingDecoder{}
	lib, err := NewLibrary(dir, store, auto)
	require.NoError(t, err)
	_, err = lib.LoadFile(path)
	require.NoError(t, err)

	strict := &countingDecoder{FormatDecoder: FormatDecoder{Format: airfoil.FormatLednicer, Strict: true}}
	lib2, err := NewLibrary(dir, store, strict)
	require.NoError(t, err)
	_, err = lib2.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int32(1), strict.calls.Load())
}

func TestLibrary_NoCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFoil(t, dir, "testfoil.dat", testFoil)
	dec := &countingDecoder{}
	lib, err := NewLibrary(dir, nil, dec)
	require.NoError(t, err)

	for range 3 {
		_, err := lib.LoadFile(path)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), dec.calls.Load())
	assert.NoError(t, lib.Forget(path))
}

func TestLibrary_ParseErrorsAreNotCached(t *testing.T) {
	dir := t.TempDir()
	path := writeFoil(t, dir, "broken.dat", "BROKEN\n0.5\n")
	store := newTestStore(t)
	lib, err := NewLibrary(dir, store, &countingDecoder{})
	require.NoError(t, err)

	_, err = lib.LoadFile(path)
	var pe *airfoil.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)

	infos, err := store.ListAirfoils()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestLibrary_MissingFile(t *testing.T) {
	lib, err := NewLibrary(t.TempDir(), nil, FormatDecoder{})
	require.NoError(t, err)

	_, err = lib.LoadFile(filepath.Join(lib.Dir(), "nope.dat"))
	assert.True(t, IsNotFound(err))
	var pe *airfoil.ParseError
	assert.False(t, errors.As(err, &pe))

	_, err = lib.LoadFile(lib.Dir())
	assert.Error(t, err)
}

func TestLibrary_NamesAndLoad(t *testing.T) {
	dir := t.TempDir()
	writeFoil(t, dir, "naca/n0012.dat", testFoil)
	writeFoil(t, dir, "clarky.txt", testFoil)
	writeFoil(t, dir, "notes.md", "# notes")
	writeFoil(t, dir, ".foilview/ignored.dat", testFoil)
	writeFoil(t, dir, "plots/ignored.dat", testFoil)

	lib, err := NewLibrary(dir, nil, FormatDecoder{})
	require.NoError(t, err)

	names, err := lib.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"clarky.txt", "naca/n0012.dat"}, names)

	a, err := lib.Load("naca/n0012.dat")
	require.NoError(t, err)
	assert.Equal(t, "TESTFOIL", a.Name())

	for _, bad := range []string{"../etc/passwd.dat", "/abs.dat", "notes.md", "missing.dat"} {
		_, err := lib.Load(bad)
		assert.True(t, IsNotFound(err), bad)
	}
}

func TestLibrary_NamesMissingDir(t *testing.T) {
	lib, err := NewLibrary(filepath.Join(t.TempDir(), "gone"), nil, FormatDecoder{})
	require.NoError(t, err)
	_, err = lib.Names()
	assert.Error(t, err)
}

func TestLibrary_Forget(t *testing.T) {
	dir := t.TempDir()
	path := writeFoil(t, dir, "testfoil.dat", testFoil)
	dec := &countingDecoder{}
	lib, err := NewLibrary(dir, newTestStore(t), dec)
	require.NoError(t, err)

	_, err = lib.LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, lib.Forget(path))
	_, err = lib.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int32(2), dec.calls.Load())
}

func TestSplitCacheKey(t *testing.T) {
	v, p := SplitCacheKey("selig|/a/b.dat")
	assert.Equal(t, "selig", v)
	assert.Equal(t, "/a/b.dat", p)

	v, p = SplitCacheKey("/legacy.dat")
	assert.Empty(t, v)
	assert.Equal(t, "/legacy.dat", p)
}

var _ ports.Decoder = (*countingDecoder)(nil)

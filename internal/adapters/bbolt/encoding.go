// Binary encoding for cached airfoils.
//
// Entry format v1 (little-endian):
//
//	version:   uint8 (1)
//	format:    uint8 (airfoil.Format)
//	size:      int64 (file size)
//	modTime:   int64 (unix nanoseconds)
//	nameLen:   uint16
//	name:      [nameLen]byte
//	3 runs (upper, lower, points), each:
//	  count:   uint32
//	  points:  [count]× (X:float64 + Y:float64)
package bbolt

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/corey/foilview/internal/domain/airfoil"
	"github.com/corey/foilview/internal/ports"
)

const (
	entryVersion = 1

	// headerSize covers version, format, size and modTime.
	headerSize = 1 + 1 + 8 + 8

	// pointSize is the byte size of one encoded Point (two float64).
	pointSize = 16
)

// encodeEntry encodes a cache entry. A single buffer is pre-allocated to
// avoid repeated growth.
func encodeEntry(e *ports.CacheEntry) ([]byte, error) {
	a := e.Airfoil
	name := []byte(a.Name())
	if len(name) > math.MaxUint16 {
		return nil, fmt.Errorf("airfoil name too long: %d bytes", len(name))
	}
	runs := [][]airfoil.Point{a.Upper(), a.Lower(), a.Points()}

	total := headerSize + 2 + len(name)
	for _, run := range runs {
		total += 4 + len(run)*pointSize
	}

	buf := make([]byte, total)
	offset := 0

	buf[offset] = entryVersion
	buf[offset+1] = byte(a.Format())
	offset += 2
	binary.LittleEndian.PutUint64(buf[offset:], uint64(e.Size))
	offset += 8
	binary.LittleEndian.PutUint64(buf[offset:], uint64(e.ModTime))
	offset += 8

	binary.LittleEndian.PutUint16(buf[offset:], uint16(len(name)))
	offset += 2
	copy(buf[offset:], name)
	offset += len(name)

	for _, run := range runs {
		binary.LittleEndian.PutUint32(buf[offset:], uint32(len(run)))
		offset += 4
		for _, p := range run {
			binary.LittleEndian.PutUint64(buf[offset:], math.Float64bits(p.X))
			offset += 8
			binary.LittleEndian.PutUint64(buf[offset:], math.Float64bits(p.Y))
			offset += 8
		}
	}

	return buf, nil
}

// decodeEntry decodes an entry produced by encodeEntry.
// Every read is bounds-checked to avoid panics on corrupt data.
func decodeEntry(data []byte) (*ports.CacheEntry, error) {
	if len(data) < headerSize+2 {
		return nil, fmt.Errorf("entry too short: %d bytes", len(data))
	}
	if data[0] != entryVersion {
		return nil, fmt.Errorf("unsupported entry version %d", data[0])
	}
	format := airfoil.Format(data[1])
	offset := 2
	size := int64(binary.LittleEndian.Uint64(data[offset:]))
	offset += 8
	modTime := int64(binary.LittleEndian.Uint64(data[offset:]))
	offset += 8

	nameLen := int(binary.LittleEndian.Uint16(data[offset:]))
	offset += 2
	if offset+nameLen > len(data) {
		return nil, fmt.Errorf("truncated name (offset %d, need %d)", offset, nameLen)
	}
	name := string(data[offset : offset+nameLen])
	offset += nameLen

	var runs [3][]airfoil.Point
	for i := range runs {
		if offset+4 > len(data) {
			return nil, fmt.Errorf("truncated at run %d count (offset %d)", i, offset)
		}
		count := int(binary.LittleEndian.Uint32(data[offset:]))
		offset += 4

		if count > (len(data)-offset)/pointSize {
			return nil, fmt.Errorf("truncated at run %d points (offset %d, count %d)", i, offset, count)
		}
		run := make([]airfoil.Point, count)
		for j := range run {
			run[j].X = math.Float64frombits(binary.LittleEndian.Uint64(data[offset:]))
			offset += 8
			run[j].Y = math.Float64frombits(binary.LittleEndian.Uint64(data[offset:]))
			offset += 8
		}
		runs[i] = run
	}
	if offset != len(data) {
		return nil, fmt.Errorf("%d trailing bytes after entry", len(data)-offset)
	}

	return &ports.CacheEntry{
		Airfoil: airfoil.New(name, format, runs[0], runs[1], runs[2]),
		Size:    size,
		ModTime: modTime,
	}, nil
}

package ports

import "github.com/corey/foilview/internal/domain/airfoil"

// Decoder turns the contents of a coordinate file into an Airfoil.
// The concrete implementation wraps airfoil.Decode with a fixed format and
// options. source labels errors only; it is usually the file path.
// Failures on malformed text are *airfoil.ParseError.
type Decoder interface {
	Decode(source string, data []byte) (airfoil.Airfoil, error)

	// Variant names the decoding settings (format and options). Cached
	// results are only reused by a decoder reporting the same variant.
	Variant() string
}

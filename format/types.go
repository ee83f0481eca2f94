// Package format defines the closed wire-code enumerations used by the
// GRC-20 value codec: the DataType tag that selects a Value's payload
// layout, and the EmbeddingSubType tag that selects an Embedding's raw
// element encoding.
package format

// DataType identifies the wire layout of a Value's payload (spec §3).
type DataType uint8

const (
	Bool      DataType = 1
	Int64     DataType = 2
	Float64   DataType = 3
	Decimal   DataType = 4
	Text      DataType = 5
	Bytes     DataType = 6
	Timestamp DataType = 7
	Date      DataType = 8
	Point     DataType = 9
	Embedding DataType = 10
	Ref       DataType = 11

	// Unset marks a properties-dictionary entry interned for an
	// UnsetProperty reference with no CreateProperty or value of its own
	// elsewhere in the edit — the property's real type is assumed known
	// from a prior edit. It is never a valid CreateProperty declaration
	// or Value type; DataTypeFromByte does not accept it, since that
	// would let a CreateProperty or Value wire byte of 0 decode as
	// though it named a real payload layout. Only the properties-
	// dictionary reader treats wire byte 0 as this sentinel.
	Unset DataType = 0
)

// String returns the human-readable name of d, or "Unknown" for an
// unrecognized code.
func (d DataType) String() string {
	switch d {
	case Bool:
		return "Bool"
	case Int64:
		return "Int64"
	case Float64:
		return "Float64"
	case Decimal:
		return "Decimal"
	case Text:
		return "Text"
	case Bytes:
		return "Bytes"
	case Timestamp:
		return "Timestamp"
	case Date:
		return "Date"
	case Point:
		return "Point"
	case Embedding:
		return "Embedding"
	case Ref:
		return "Ref"
	case Unset:
		return "Unset"
	default:
		return "Unknown"
	}
}

// DataTypeFromByte converts a wire byte into a DataType, reporting ok=false
// for any code outside the closed enumeration.
func DataTypeFromByte(b byte) (DataType, bool) {
	dt := DataType(b)
	switch dt {
	case Bool, Int64, Float64, Decimal, Text, Bytes, Timestamp, Date, Point, Embedding, Ref:
		return dt, true
	default:
		return 0, false
	}
}

// EmbeddingSubType identifies the raw element encoding of an Embedding
// value (spec §3).
type EmbeddingSubType uint8

const (
	// Float32 stores each dimension as a 4-byte little-endian IEEE-754 float.
	Float32 EmbeddingSubType = 0
	// Int8 stores each dimension as a single signed byte.
	Int8 EmbeddingSubType = 1
	// Binary stores dimensions as LSB-first packed bits, one bit per dimension.
	Binary EmbeddingSubType = 2
)

// String returns the human-readable name of s, or "Unknown" for an
// unrecognized code.
func (s EmbeddingSubType) String() string {
	switch s {
	case Float32:
		return "Float32"
	case Int8:
		return "Int8"
	case Binary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// EmbeddingSubTypeFromByte converts a wire byte into an EmbeddingSubType,
// reporting ok=false for any code outside the closed enumeration.
func EmbeddingSubTypeFromByte(b byte) (EmbeddingSubType, bool) {
	st := EmbeddingSubType(b)
	switch st {
	case Float32, Int8, Binary:
		return st, true
	default:
		return 0, false
	}
}

// BytesForDims returns the number of raw payload bytes needed to store
// dims elements under sub-type s.
func (s EmbeddingSubType) BytesForDims(dims int) int {
	switch s {
	case Float32:
		return dims * 4
	case Int8:
		return dims
	case Binary:
		return (dims + 7) / 8
	default:
		return 0
	}
}

// Package limits defines the hard resource ceilings the codec enforces
// while decoding untrusted input, plus the magic bytes and format version
// that frame an edit on the wire.
package limits

const (
	// MaxVarintBytes is the maximum number of bytes a LEB128 varint may
	// occupy before it is rejected as malformed (10 bytes covers a full
	// 64-bit value with one bit of continuation slack).
	MaxVarintBytes = 10

	// MaxStringLen is the maximum byte length of a length-prefixed UTF-8
	// string field (16 MiB).
	MaxStringLen = 16 * 1024 * 1024

	// MaxBytesLen is the maximum byte length of a length-prefixed opaque
	// bytes field (64 MiB).
	MaxBytesLen = 64 * 1024 * 1024

	// MaxEmbeddingDims is the maximum number of dimensions an Embedding
	// value may declare.
	MaxEmbeddingDims = 65536

	// MaxEmbeddingBytes is the maximum raw byte length of an Embedding
	// payload (4 bytes per dimension, the widest sub-type).
	MaxEmbeddingBytes = 4 * MaxEmbeddingDims

	// MaxOpsPerEdit is the maximum number of operations a single edit may
	// contain.
	MaxOpsPerEdit = 1_000_000

	// MaxValuesPerEntity is the maximum number of PropertyValue entries a
	// single CreateEntity/UpdateEntity vector may contain.
	MaxValuesPerEntity = 10_000

	// MaxAuthors is the maximum number of author Ids an edit may declare.
	MaxAuthors = 1_000

	// MaxDictSize is the maximum number of entries in any one wire
	// dictionary (properties, relation_types, languages, objects).
	MaxDictSize = 1_000_000

	// MaxEditSize is the maximum total size, in bytes, of an edit's body
	// after decompression.
	MaxEditSize = 256 * 1024 * 1024

	// MaxPositionLen is the maximum byte length of a relation position
	// string.
	MaxPositionLen = 64

	// FormatVersion is the current binary wire format version. Decoders
	// reject any other version.
	FormatVersion = 1
)

// MagicUncompressed is the 4-byte marker that prefixes an uncompressed
// edit.
var MagicUncompressed = [4]byte{'G', 'R', 'C', '2'}

// MagicCompressed is the 5-byte marker that prefixes a zstd-compressed
// edit.
var MagicCompressed = [5]byte{'G', 'R', 'C', '2', 'Z'}

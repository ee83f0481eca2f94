package model

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/apex-algorithms/grc20-go/format"
	"github.com/apex-algorithms/grc20-go/wire"
)

// CanonicalPayload returns the byte sequence used as input to a value's
// identity hash (spec §4.3). It is deliberately distinct from the wire
// encoding: Int64 and Timestamp are fixed 8-byte little-endian here
// (zigzag-varint on the wire), and a Point's canonical payload covers
// only lat/lon — the optional altitude ordinate this module's Point
// layout carries on the wire (spec §9, layout (b)) plays no part in a
// Point value's identity, matching the original §4.3 table.
func CanonicalPayload(v Value) ([]byte, error) {
	switch v.Type {
	case format.Bool:
		if v.Bool {
			return []byte{1}, nil
		}

		return []byte{0}, nil

	case format.Int64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v.Int64))

		return buf[:], nil

	case format.Float64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(normalizeZero(v.Float64)))

		return buf[:], nil

	case format.Decimal:
		out := wire.AppendZigzagVarint(nil, int64(v.DecimalExponent))

		switch v.DecimalMantissa.Kind {
		case MantissaI64:
			out = wire.AppendZigzagVarint(out, v.DecimalMantissa.I64)
		case MantissaBig:
			out = append(out, v.DecimalMantissa.Big...)
		}

		return out, nil

	case format.Text:
		return []byte(v.Text), nil

	case format.Bytes:
		return v.Bytes, nil

	case format.Timestamp:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v.Timestamp))

		return buf[:], nil

	case format.Date:
		return []byte(v.Date), nil

	case format.Point:
		var buf [16]byte
		binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(normalizeZero(v.Lat)))
		binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(normalizeZero(v.Lon)))

		return buf[:], nil

	case format.Embedding:
		out := make([]byte, 0, 5+len(v.EmbeddingData))
		out = append(out, byte(v.EmbeddingSubType))

		var dimsBuf [4]byte
		binary.LittleEndian.PutUint32(dimsBuf[:], uint32(v.EmbeddingDims))
		out = append(out, dimsBuf[:]...)
		out = append(out, v.EmbeddingData...)

		return out, nil

	case format.Ref:
		out := make([]byte, 16)
		copy(out, v.Ref[:])

		return out, nil

	default:
		return nil, fmt.Errorf("model: unknown data type %d", v.Type)
	}
}

// normalizeZero maps -0.0 to +0.0; every other value passes through
// unchanged. Go's == treats -0.0 and 0.0 as equal, so this comparison
// alone is enough to collapse both into the canonical +0.0 literal.
func normalizeZero(f float64) float64 {
	if f == 0 {
		return 0
	}

	return f
}

// Package model defines the GRC-20 data model: Value and its typed
// payloads, PropertyValue, Property, the Op tagged union, Edit, and the
// per-edit WireDictionaries/DictionaryBuilder the codec indexes against.
//
// Types here are plain value types; producers construct them and the
// codec package consumes them in a single encode/decode pass (spec §3,
// "Lifecycle").
package model

import (
	"encoding/binary"
	"math"

	"github.com/apex-algorithms/grc20-go/errs"
	"github.com/apex-algorithms/grc20-go/format"
	"github.com/apex-algorithms/grc20-go/id"
)

// Id is the universal 16-byte identifier type, shared with the id
// package.
type Id = id.Id

// NilID is the all-zero Id.
var NilID = id.NilId

// MantissaKind selects a DecimalMantissa's representation.
type MantissaKind uint8

const (
	// MantissaI64 stores the mantissa as a signed 64-bit integer.
	MantissaI64 MantissaKind = 0
	// MantissaBig stores the mantissa as minimal-length big-endian
	// two's-complement bytes.
	MantissaBig MantissaKind = 1
)

// DecimalMantissa is either a signed-64 integer or an arbitrary-precision
// big-endian two's-complement byte string (spec §3).
type DecimalMantissa struct {
	Kind MantissaKind
	I64  int64
	Big  []byte
}

// NewI64Mantissa constructs an I64-form mantissa.
func NewI64Mantissa(v int64) DecimalMantissa {
	return DecimalMantissa{Kind: MantissaI64, I64: v}
}

// NewBigMantissa constructs a Big-form mantissa from minimal-length
// big-endian two's-complement bytes. The caller is responsible for
// minimality; use MantissaBigIsMinimal to check.
func NewBigMantissa(b []byte) DecimalMantissa {
	return DecimalMantissa{Kind: MantissaBig, Big: b}
}

// IsZero reports whether m represents the value zero.
func (m DecimalMantissa) IsZero() bool {
	if m.Kind == MantissaI64 {
		return m.I64 == 0
	}

	for _, b := range m.Big {
		if b != 0 {
			return false
		}
	}

	return true
}

// DivisibleBy10 reports whether m, interpreted as a two's-complement
// integer, is evenly divisible by 10 (spec §4.4).
func (m DecimalMantissa) DivisibleBy10() bool {
	if m.Kind == MantissaI64 {
		return m.I64%10 == 0
	}

	return bigMantissaDivisibleBy10(m.Big)
}

// bigMantissaDivisibleBy10 computes divisibility by 10 on a big-endian
// two's-complement byte string without materializing a big.Int: since
// 256 mod 10 == 6, a positive value's digit-sum recurrence is
// r = (r*6 + byte) mod 10 across the bytes in order. A negative value is
// handled by inverting every byte (one's complement), running the same
// recurrence, then adding 1 mod 10 — the two's-complement identity
// -x = ~x + 1.
func bigMantissaDivisibleBy10(b []byte) bool {
	if len(b) == 0 {
		return true
	}

	negative := b[0]&0x80 != 0

	r := 0
	if !negative {
		for _, by := range b {
			r = (r*6 + int(by)) % 10
		}
	} else {
		for _, by := range b {
			r = (r*6 + int(^by)) % 10
		}

		r = (r + 1) % 10
	}

	return r == 0
}

// MantissaBigIsMinimal reports whether b is a minimal-length big-endian
// two's-complement encoding: a redundant leading 0x00 (with the next
// byte's high bit clear) or redundant leading 0xFF (with the next byte's
// high bit set) fails minimality (spec §4.4).
func MantissaBigIsMinimal(b []byte) bool {
	if len(b) < 2 {
		return true
	}

	first, second := b[0], b[1]
	if first == 0x00 && second&0x80 == 0 {
		return false
	}

	if first == 0xFF && second&0x80 != 0 {
		return false
	}

	return true
}

// Value is the tagged union of all DataType payloads (spec §3). Type
// selects which fields are meaningful; the rest are zero.
type Value struct {
	Type format.DataType

	Bool bool

	Int64 int64

	Float64 float64

	DecimalExponent int32
	DecimalMantissa DecimalMantissa

	Text     string
	Language *Id // nil selects the default/no-language case

	Bytes []byte

	Timestamp int64 // microseconds since Unix epoch

	Date string

	Lat float64
	Lon float64
	Alt *float64 // nil when the point carries no altitude ordinate

	EmbeddingSubType format.EmbeddingSubType
	EmbeddingDims    int
	EmbeddingData    []byte

	Ref Id
}

// DataType returns v's wire data type.
func (v Value) DataType() format.DataType { return v.Type }

// BoolValue constructs a Bool value.
func BoolValue(b bool) Value { return Value{Type: format.Bool, Bool: b} }

// Int64Value constructs an Int64 value.
func Int64Value(n int64) Value { return Value{Type: format.Int64, Int64: n} }

// Float64Value constructs a Float64 value.
func Float64Value(f float64) Value { return Value{Type: format.Float64, Float64: f} }

// DecimalValue constructs a Decimal value.
func DecimalValue(exponent int32, mantissa DecimalMantissa) Value {
	return Value{Type: format.Decimal, DecimalExponent: exponent, DecimalMantissa: mantissa}
}

// TextValue constructs a Text value. language is nil for the default
// language.
func TextValue(text string, language *Id) Value {
	return Value{Type: format.Text, Text: text, Language: language}
}

// BytesValue constructs a Bytes value.
func BytesValue(b []byte) Value { return Value{Type: format.Bytes, Bytes: b} }

// TimestampValue constructs a Timestamp value (microseconds since Unix
// epoch).
func TimestampValue(micros int64) Value { return Value{Type: format.Timestamp, Timestamp: micros} }

// DateValue constructs a Date value from an ISO-8601 calendar date
// string.
func DateValue(s string) Value { return Value{Type: format.Date, Date: s} }

// PointValue constructs a Point value. alt is nil when the point carries
// no altitude ordinate (spec §9, layout (b)).
func PointValue(lat, lon float64, alt *float64) Value {
	return Value{Type: format.Point, Lat: lat, Lon: lon, Alt: alt}
}

// EmbeddingValue constructs an Embedding value.
func EmbeddingValue(subType format.EmbeddingSubType, dims int, data []byte) Value {
	return Value{Type: format.Embedding, EmbeddingSubType: subType, EmbeddingDims: dims, EmbeddingData: data}
}

// RefValue constructs a Ref value.
func RefValue(target Id) Value { return Value{Type: format.Ref, Ref: target} }

// Validate layers the NaN, range, and normalization checks that are
// independent of any schema context (spec §4.7 item 3). Schema-aware
// type conformance is the validate package's responsibility.
func (v Value) Validate() error {
	switch v.Type {
	case format.Float64:
		if math.IsNaN(v.Float64) {
			return &errs.FloatIsNaNError{Context: "float64"}
		}
	case format.Decimal:
		if err := validateDecimal(v.DecimalExponent, v.DecimalMantissa); err != nil {
			return err
		}
	case format.Point:
		if math.IsNaN(v.Lat) || math.IsNaN(v.Lon) {
			return &errs.FloatIsNaNError{Context: "point"}
		}

		if v.Lat < -90 || v.Lat > 90 {
			return &errs.LatitudeOutOfRangeError{Lat: v.Lat}
		}

		if v.Lon < -180 || v.Lon > 180 {
			return &errs.LongitudeOutOfRangeError{Lon: v.Lon}
		}

		if v.Alt != nil && math.IsNaN(*v.Alt) {
			return &errs.FloatIsNaNError{Context: "point altitude"}
		}
	case format.Embedding:
		expected := v.EmbeddingSubType.BytesForDims(v.EmbeddingDims)
		if len(v.EmbeddingData) != expected {
			return &errs.EmbeddingDimensionMismatchError{
				SubType: v.EmbeddingSubType.String(),
				Dims:    v.EmbeddingDims,
				DataLen: len(v.EmbeddingData),
			}
		}

		if v.EmbeddingSubType == format.Float32 {
			for i := 0; i+4 <= len(v.EmbeddingData); i += 4 {
				bits := binary.LittleEndian.Uint32(v.EmbeddingData[i : i+4])
				if f := math.Float32frombits(bits); f != f {
					return &errs.FloatIsNaNError{Context: "embedding"}
				}
			}
		}
	}

	return nil
}

func validateDecimal(exponent int32, mantissa DecimalMantissa) error {
	if mantissa.IsZero() {
		if exponent != 0 {
			return &errs.DecimalNotNormalizedError{Reason: "zero mantissa must have exponent 0"}
		}

		return nil
	}

	if mantissa.DivisibleBy10() {
		return &errs.DecimalNotNormalizedError{Reason: "mantissa divisible by 10"}
	}

	return nil
}

// PropertyValue binds a property Id to a Value.
type PropertyValue struct {
	Property Id
	Value    Value
}

// Property is a property's schema entry: its Id and the DataType of
// values stored under it.
type Property struct {
	Id       Id
	DataType format.DataType
}

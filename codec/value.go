// Package codec implements the GRC-20 wire encoding: per-value payload
// layouts, the Op tagged-union encoding that indexes values against an
// edit's wire dictionaries, and the top-level edit framing (magic,
// version, optional zstd compression).
package codec

import (
	"math"
	"strings"

	"github.com/apex-algorithms/grc20-go/errs"
	"github.com/apex-algorithms/grc20-go/format"
	"github.com/apex-algorithms/grc20-go/limits"
	"github.com/apex-algorithms/grc20-go/model"
	"github.com/apex-algorithms/grc20-go/wire"
)

// EncodeValue appends v's wire payload to w, interning any dictionary
// references (language, object) it carries via b. The DataType tag byte
// itself is not written here; callers that need it on the wire (Op
// encoding does not — a property's DataType is carried once, in the
// properties dictionary) write it separately.
func EncodeValue(w *wire.Writer, b *model.DictionaryBuilder, v model.Value) error {
	if err := v.Validate(); err != nil {
		return err
	}

	switch v.Type {
	case format.Bool:
		if v.Bool {
			w.WriteByte(1)
		} else {
			w.WriteByte(0)
		}

	case format.Int64:
		w.WriteVarint(v.Int64)

	case format.Float64:
		w.WriteFloat64(v.Float64)

	case format.Decimal:
		encodeDecimal(w, v.DecimalExponent, v.DecimalMantissa)

	case format.Text:
		w.WriteString(v.Text)
		if v.Language != nil {
			w.WriteUvarint(uint64(b.AddLanguage(*v.Language)) + 1)
		} else {
			w.WriteUvarint(0)
		}

	case format.Bytes:
		w.WriteLengthPrefixed(v.Bytes)

	case format.Timestamp:
		w.WriteVarint(v.Timestamp)

	case format.Date:
		ok, reason := validDate(v.Date)
		if !ok {
			return &errs.InvalidDateError{Reason: reason}
		}
		w.WriteString(v.Date)

	case format.Point:
		if err := encodePoint(w, v.Lat, v.Lon, v.Alt); err != nil {
			return err
		}

	case format.Embedding:
		if v.EmbeddingSubType == format.Binary && !checkBinaryTailClear(v.EmbeddingData, v.EmbeddingDims) {
			return &errs.MalformedEncodingError{Context: "embedding: unused tail bits must be zero"}
		}
		w.WriteByte(byte(v.EmbeddingSubType))
		w.WriteUvarint(uint64(v.EmbeddingDims))
		w.WriteLengthPrefixed(v.EmbeddingData)

	case format.Ref:
		w.WriteUvarint(uint64(b.AddObject(v.Ref)))

	default:
		return &errs.InvalidDataTypeError{DataType: byte(v.Type)}
	}

	return nil
}

// DecodeValue reads a Value of the given DataType off r, resolving any
// dictionary references against d.
func DecodeValue(r *wire.Reader, d *model.WireDictionaries, dt format.DataType) (model.Value, error) {
	switch dt {
	case format.Bool:
		b, err := r.ReadByte()
		if err != nil {
			return model.Value{}, err
		}
		switch b {
		case 0:
			return model.BoolValue(false), nil
		case 1:
			return model.BoolValue(true), nil
		default:
			return model.Value{}, &errs.InvalidBoolError{Value: b}
		}

	case format.Int64:
		n, err := r.ReadVarint()
		if err != nil {
			return model.Value{}, err
		}
		return model.Int64Value(n), nil

	case format.Float64:
		f, err := r.ReadFloat64()
		if err != nil {
			return model.Value{}, err
		}
		if math.IsNaN(f) {
			return model.Value{}, &errs.FloatIsNaNError{Context: "float64"}
		}
		return model.Float64Value(f), nil

	case format.Decimal:
		exponent, mantissa, err := decodeDecimal(r)
		if err != nil {
			return model.Value{}, err
		}
		if err := validateDecodedDecimal(exponent, mantissa); err != nil {
			return model.Value{}, err
		}
		return model.DecimalValue(exponent, mantissa), nil

	case format.Text:
		text, err := r.ReadString(limits.MaxStringLen, "text")
		if err != nil {
			return model.Value{}, err
		}

		idx, err := r.ReadUvarint()
		if err != nil {
			return model.Value{}, err
		}

		var language *model.Id
		if idx > 0 {
			lang, ok := d.Language(int(idx - 1))
			if !ok {
				return model.Value{}, &errs.IndexOutOfBoundsError{Dict: "languages", Index: int(idx - 1), Size: len(d.Languages)}
			}
			language = &lang
		}

		return model.TextValue(text, language), nil

	case format.Bytes:
		b, err := r.ReadLengthPrefixedBytes(limits.MaxBytesLen, "bytes")
		if err != nil {
			return model.Value{}, err
		}
		return model.BytesValue(b), nil

	case format.Timestamp:
		micros, err := r.ReadVarint()
		if err != nil {
			return model.Value{}, err
		}
		return model.TimestampValue(micros), nil

	case format.Date:
		s, err := r.ReadString(limits.MaxStringLen, "date")
		if err != nil {
			return model.Value{}, err
		}
		if ok, reason := validDate(s); !ok {
			return model.Value{}, &errs.MalformedEncodingError{Context: "date: " + reason}
		}
		return model.DateValue(s), nil

	case format.Point:
		lat, lon, alt, err := decodePoint(r)
		if err != nil {
			return model.Value{}, err
		}
		return model.PointValue(lat, lon, alt), nil

	case format.Embedding:
		st, err := r.ReadByte()
		if err != nil {
			return model.Value{}, err
		}
		subType, ok := format.EmbeddingSubTypeFromByte(st)
		if !ok {
			return model.Value{}, &errs.InvalidEmbeddingSubTypeError{SubType: st}
		}

		dims64, err := r.ReadUvarint()
		if err != nil {
			return model.Value{}, err
		}
		if dims64 > limits.MaxEmbeddingDims {
			return model.Value{}, &errs.LengthExceedsLimitError{Field: "embedding.dims", Len: int(dims64), Max: limits.MaxEmbeddingDims}
		}
		dims := int(dims64)

		data, err := r.ReadLengthPrefixedBytes(limits.MaxEmbeddingBytes, "embedding.data")
		if err != nil {
			return model.Value{}, err
		}

		expected := subType.BytesForDims(dims)
		if len(data) != expected {
			return model.Value{}, &errs.EmbeddingDimensionMismatchError{SubType: subType.String(), Dims: dims, DataLen: len(data)}
		}

		if subType == format.Float32 {
			for i := 0; i+4 <= len(data); i += 4 {
				bits := uint32(data[i]) | uint32(data[i+1])<<8 | uint32(data[i+2])<<16 | uint32(data[i+3])<<24
				if f := math.Float32frombits(bits); f != f {
					return model.Value{}, &errs.FloatIsNaNError{Context: "embedding"}
				}
			}
		}

		if subType == format.Binary && dims%8 != 0 {
			if !checkBinaryTailClear(data, dims) {
				return model.Value{}, &errs.MalformedEncodingError{Context: "embedding: unused tail bits must be zero"}
			}
		}

		return model.EmbeddingValue(subType, dims, data), nil

	case format.Ref:
		idx, err := r.ReadUvarint()
		if err != nil {
			return model.Value{}, err
		}
		target, ok := d.Object(int(idx))
		if !ok {
			return model.Value{}, &errs.IndexOutOfBoundsError{Dict: "objects", Index: int(idx), Size: len(d.Objects)}
		}
		return model.RefValue(target), nil

	default:
		return model.Value{}, &errs.InvalidDataTypeError{DataType: byte(dt)}
	}
}

// encodeDecimal writes exponent, then the mantissa tagged by its Kind.
func encodeDecimal(w *wire.Writer, exponent int32, mantissa model.DecimalMantissa) {
	w.WriteVarint(int64(exponent))
	w.WriteByte(byte(mantissa.Kind))

	if mantissa.Kind == model.MantissaI64 {
		w.WriteVarint(mantissa.I64)
	} else {
		w.WriteLengthPrefixed(mantissa.Big)
	}
}

func decodeDecimal(r *wire.Reader) (int32, model.DecimalMantissa, error) {
	exp64, err := r.ReadVarint()
	if err != nil {
		return 0, model.DecimalMantissa{}, err
	}

	kindByte, err := r.ReadByte()
	if err != nil {
		return 0, model.DecimalMantissa{}, err
	}

	var mantissa model.DecimalMantissa
	switch model.MantissaKind(kindByte) {
	case model.MantissaI64:
		v, err := r.ReadVarint()
		if err != nil {
			return 0, model.DecimalMantissa{}, err
		}
		mantissa = model.NewI64Mantissa(v)

	case model.MantissaBig:
		b, err := r.ReadLengthPrefixedBytes(limits.MaxBytesLen, "decimal.mantissa")
		if err != nil {
			return 0, model.DecimalMantissa{}, err
		}
		if !model.MantissaBigIsMinimal(b) {
			return 0, model.DecimalMantissa{}, &errs.DecimalMantissaNotMinimalError{}
		}
		mantissa = model.NewBigMantissa(b)

	default:
		return 0, model.DecimalMantissa{}, &errs.MalformedEncodingError{Context: "decimal: unknown mantissa kind"}
	}

	return int32(exp64), mantissa, nil
}

func validateDecodedDecimal(exponent int32, mantissa model.DecimalMantissa) error {
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

// encodePoint writes a 1-byte ordinate count (2 or 3) followed by lon,
// lat[, alt] (spec §9, Point layout decision (b)): wire order is
// lon-then-lat, distinct from the model's Lat-then-Lon field order and
// from the canonical payload's lat-then-lon order.
func encodePoint(w *wire.Writer, lat, lon float64, alt *float64) error {
	if lat < -90 || lat > 90 {
		return &errs.LatitudeOutOfRangeError{Lat: lat}
	}
	if lon < -180 || lon > 180 {
		return &errs.LongitudeOutOfRangeError{Lon: lon}
	}
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return &errs.FloatIsNaNError{Context: "point"}
	}

	if alt != nil {
		if math.IsNaN(*alt) {
			return &errs.FloatIsNaNError{Context: "point altitude"}
		}
		w.WriteByte(3)
		w.WriteFloat64(lon)
		w.WriteFloat64(lat)
		w.WriteFloat64(*alt)
	} else {
		w.WriteByte(2)
		w.WriteFloat64(lon)
		w.WriteFloat64(lat)
	}

	return nil
}

func decodePoint(r *wire.Reader) (lat, lon float64, alt *float64, err error) {
	count, err := r.ReadByte()
	if err != nil {
		return 0, 0, nil, err
	}

	if count != 2 && count != 3 {
		return 0, 0, nil, &errs.MalformedEncodingError{Context: "point: ordinate count must be 2 or 3"}
	}

	lonV, err := r.ReadFloat64()
	if err != nil {
		return 0, 0, nil, err
	}
	latV, err := r.ReadFloat64()
	if err != nil {
		return 0, 0, nil, err
	}

	if math.IsNaN(latV) || math.IsNaN(lonV) {
		return 0, 0, nil, &errs.FloatIsNaNError{Context: "point"}
	}
	if latV < -90 || latV > 90 {
		return 0, 0, nil, &errs.LatitudeOutOfRangeError{Lat: latV}
	}
	if lonV < -180 || lonV > 180 {
		return 0, 0, nil, &errs.LongitudeOutOfRangeError{Lon: lonV}
	}

	if count == 3 {
		a, err := r.ReadFloat64()
		if err != nil {
			return 0, 0, nil, err
		}
		if math.IsNaN(a) {
			return 0, 0, nil, &errs.FloatIsNaNError{Context: "point altitude"}
		}
		return latV, lonV, &a, nil
	}

	return latV, lonV, nil, nil
}

// checkBinaryTailClear reports whether the unused high bits of a packed
// Binary embedding's final byte (beyond dims bits, LSB-first) are zero.
func checkBinaryTailClear(data []byte, dims int) bool {
	used := dims % 8
	if used == 0 || len(data) == 0 {
		return true
	}

	mask := byte(0xFF << used)
	return data[len(data)-1]&mask == 0
}

// validDate reports whether s is a valid ISO-8601 calendar date string,
// accepting the partial forms spec §4.4 allows: a bare year ("2024"), a
// year-month ("2024-03"), or a full year-month-day ("2024-03-15"), each
// with an optional leading "-" marking a BCE year. Feb's day range is
// fixed at 1..29 regardless of the year — leap-year validation is
// deferred (spec §4.4, §9).
func validDate(s string) (bool, string) {
	if s == "" {
		return false, "empty date"
	}

	rest := s
	negative := false
	if rest[0] == '-' {
		negative = true
		rest = rest[1:]
	}

	parts := strings.Split(rest, "-")
	if len(parts) < 1 || len(parts) > 3 {
		return false, "expected 1 to 3 components"
	}

	yearStr := parts[0]
	if len(yearStr) < 4 || !isAllDigits(yearStr) {
		return false, "year must be at least 4 digits"
	}

	if negative && isAllZero(yearStr) {
		return false, "-0000 is invalid"
	}

	if len(parts) == 1 {
		return true, ""
	}

	monthStr := parts[1]
	if len(monthStr) != 2 || !isAllDigits(monthStr) {
		return false, "month must be 2 digits"
	}

	month := atoi(monthStr)
	if month < 1 || month > 12 {
		return false, "month out of range"
	}

	if len(parts) == 2 {
		return true, ""
	}

	dayStr := parts[2]
	if len(dayStr) != 2 || !isAllDigits(dayStr) {
		return false, "day must be 2 digits"
	}

	day := atoi(dayStr)
	maxDay := daysInMonth(month)
	if day < 1 || day > maxDay {
		return false, "day out of range"
	}

	return true, ""
}

func isAllZero(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return true
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// daysInMonth returns the maximum day-of-month for month, independent of
// year: February's ceiling is fixed at 29 since leap-year validation is
// deferred (spec §4.4).
func daysInMonth(month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		return 29
	default:
		return 0
	}
}

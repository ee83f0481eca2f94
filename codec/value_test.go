package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-algorithms/grc20-go/errs"
	"github.com/apex-algorithms/grc20-go/format"
	"github.com/apex-algorithms/grc20-go/model"
	"github.com/apex-algorithms/grc20-go/wire"
)

func roundTripValue(t *testing.T, v model.Value) model.Value {
	t.Helper()

	w := wire.NewWriter()
	defer w.Release()

	b := model.NewDictionaryBuilder()
	require.NoError(t, EncodeValue(w, b, v))

	dicts := b.Build()
	r := wire.NewReader(w.Bytes())
	got, err := DecodeValue(r, &dicts, v.Type)
	require.NoError(t, err)

	return got
}

func TestEncodeDecodeValue_Bool(t *testing.T) {
	got := roundTripValue(t, model.BoolValue(true))
	assert.True(t, got.Bool)
}

func TestEncodeDecodeValue_Int64(t *testing.T) {
	got := roundTripValue(t, model.Int64Value(-12345))
	assert.Equal(t, int64(-12345), got.Int64)
}

func TestEncodeDecodeValue_Float64(t *testing.T) {
	got := roundTripValue(t, model.Float64Value(2.5))
	assert.Equal(t, 2.5, got.Float64)
}

func TestEncodeValue_Float64_NaN_Rejected(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	b := model.NewDictionaryBuilder()

	err := EncodeValue(w, b, model.Float64Value(nan()))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrFloatIsNaN)
}

func TestEncodeDecodeValue_Text_WithLanguage(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	b := model.NewDictionaryBuilder()

	lang := model.Id{7}
	v := model.TextValue("hello", &lang)
	require.NoError(t, EncodeValue(w, b, v))

	dicts := b.Build()
	r := wire.NewReader(w.Bytes())
	got, err := DecodeValue(r, &dicts, format.Text)
	require.NoError(t, err)

	assert.Equal(t, "hello", got.Text)
	require.NotNil(t, got.Language)
	assert.Equal(t, lang, *got.Language)
}

func TestEncodeDecodeValue_Text_NoLanguage(t *testing.T) {
	got := roundTripValue(t, model.TextValue("plain", nil))
	assert.Equal(t, "plain", got.Text)
	assert.Nil(t, got.Language)
}

func TestEncodeDecodeValue_Bytes(t *testing.T) {
	got := roundTripValue(t, model.BytesValue([]byte{1, 2, 3}))
	assert.Equal(t, []byte{1, 2, 3}, got.Bytes)
}

func TestEncodeDecodeValue_Timestamp(t *testing.T) {
	got := roundTripValue(t, model.TimestampValue(1234567890))
	assert.Equal(t, int64(1234567890), got.Timestamp)
}

func TestEncodeDecodeValue_Ref(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	b := model.NewDictionaryBuilder()

	target := model.Id{9, 9, 9}
	require.NoError(t, EncodeValue(w, b, model.RefValue(target)))

	dicts := b.Build()
	r := wire.NewReader(w.Bytes())
	got, err := DecodeValue(r, &dicts, format.Ref)
	require.NoError(t, err)
	assert.Equal(t, target, got.Ref)
}

func TestEncodeDecodeValue_Decimal_I64(t *testing.T) {
	got := roundTripValue(t, model.DecimalValue(-2, model.NewI64Mantissa(1234)))
	assert.Equal(t, int32(-2), got.DecimalExponent)
	assert.Equal(t, int64(1234), got.DecimalMantissa.I64)
}

func TestEncodeDecodeValue_Decimal_Big(t *testing.T) {
	got := roundTripValue(t, model.DecimalValue(0, model.NewBigMantissa([]byte{0x07})))
	assert.Equal(t, []byte{0x07}, got.DecimalMantissa.Big)
}

func TestEncodeValue_Decimal_NotNormalized_Rejected(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	b := model.NewDictionaryBuilder()

	v := model.DecimalValue(1, model.NewI64Mantissa(0))
	err := EncodeValue(w, b, v)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDecimalNotNormalized)
}

func TestDecodeValue_Decimal_BigMantissaNotMinimal_Rejected(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()

	w.WriteVarint(0)
	w.WriteByte(byte(model.MantissaBig))
	w.WriteLengthPrefixed([]byte{0x00, 0x01}) // redundant leading 0x00

	r := wire.NewReader(w.Bytes())
	_, err := DecodeValue(r, &model.WireDictionaries{}, format.Decimal)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDecimalMantissaNotMinimal)
}

func TestEncodeDecodeValue_Point_NoAltitude(t *testing.T) {
	got := roundTripValue(t, model.PointValue(45.0, -122.0, nil))
	assert.Equal(t, 45.0, got.Lat)
	assert.Equal(t, -122.0, got.Lon)
	assert.Nil(t, got.Alt)
}

func TestEncodeDecodeValue_Point_WithAltitude(t *testing.T) {
	alt := 123.5
	got := roundTripValue(t, model.PointValue(45.0, -122.0, &alt))
	require.NotNil(t, got.Alt)
	assert.Equal(t, alt, *got.Alt)
}

func TestEncodeValue_Point_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lon  float64
	}{
		{"lat high", 91, 0},
		{"lon high", 0, 181},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := wire.NewWriter()
			defer w.Release()
			b := model.NewDictionaryBuilder()

			err := EncodeValue(w, b, model.PointValue(tt.lat, tt.lon, nil))
			require.Error(t, err)
		})
	}
}

func TestEncodeValue_Point_InRangeBoundary(t *testing.T) {
	got := roundTripValue(t, model.PointValue(90, 180, nil))
	assert.Equal(t, 90.0, got.Lat)
	assert.Equal(t, 180.0, got.Lon)
}

func TestEncodeDecodeValue_Embedding(t *testing.T) {
	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i)
	}

	got := roundTripValue(t, model.EmbeddingValue(format.Float32, 4, data))
	assert.Equal(t, format.Float32, got.EmbeddingSubType)
	assert.Equal(t, 4, got.EmbeddingDims)
	assert.Equal(t, data, got.EmbeddingData)
}

func TestEncodeValue_Embedding_DimensionMismatch(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	b := model.NewDictionaryBuilder()

	err := EncodeValue(w, b, model.EmbeddingValue(format.Float32, 4, make([]byte, 15)))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrEmbeddingDimensionMismatch)
}

func TestDecodeValue_Embedding_BinaryTailBitsMustBeClear(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()

	w.WriteByte(byte(format.Binary))
	w.WriteUvarint(9)
	w.WriteLengthPrefixed([]byte{0x7F, 0x80}) // unused high bits set

	r := wire.NewReader(w.Bytes())
	_, err := DecodeValue(r, &model.WireDictionaries{}, format.Embedding)
	require.Error(t, err)
}

func TestDecodeValue_Embedding_BinaryTailBitsClear_OK(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()

	w.WriteByte(byte(format.Binary))
	w.WriteUvarint(9)
	w.WriteLengthPrefixed([]byte{0x7F, 0x01})

	r := wire.NewReader(w.Bytes())
	got, err := DecodeValue(r, &model.WireDictionaries{}, format.Embedding)
	require.NoError(t, err)
	assert.Equal(t, 9, got.EmbeddingDims)
}

func TestDecodeValue_InvalidBool(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	w.WriteByte(0x02)

	r := wire.NewReader(w.Bytes())
	_, err := DecodeValue(r, &model.WireDictionaries{}, format.Bool)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidBool)
}

func TestDecodeValue_Text_LanguageIndexOutOfRange(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	w.WriteString("x")
	w.WriteUvarint(6) // language index 6 -> languages[5], out of range against an empty dict

	r := wire.NewReader(w.Bytes())
	_, err := DecodeValue(r, &model.WireDictionaries{}, format.Text)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrIndexOutOfBounds)
}

func TestDate_ISO8601_Accept(t *testing.T) {
	valid := []string{
		"2024", "2024-03", "2024-03-15", "2024-02-29", "-0100", "-0100-03-15",
	}

	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			ok, reason := validDate(s)
			assert.True(t, ok, "reason: %s", reason)
		})
	}
}

func TestDate_ISO8601_Reject(t *testing.T) {
	invalid := []string{
		"", "24", "2024-00", "2024-13", "2024-04-31", "2024-02-30", "-0000",
	}

	for _, s := range invalid {
		t.Run(s, func(t *testing.T) {
			ok, _ := validDate(s)
			assert.False(t, ok)
		})
	}
}

func TestEncodeDecodeValue_Date(t *testing.T) {
	got := roundTripValue(t, model.DateValue("2024-03-15"))
	assert.Equal(t, "2024-03-15", got.Date)
}

func TestEncodeValue_Date_Invalid(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	b := model.NewDictionaryBuilder()

	err := EncodeValue(w, b, model.DateValue("2024-13-01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidDate)
}

func nan() float64 {
	var zero float64
	return zero / zero
}

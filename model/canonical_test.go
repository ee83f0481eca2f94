package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-algorithms/grc20-go/format"
)

func TestCanonicalPayload_Bool(t *testing.T) {
	b, err := CanonicalPayload(BoolValue(true))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, b)

	b, err = CanonicalPayload(BoolValue(false))
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, b)
}

func TestCanonicalPayload_Float64_NegativeZeroNormalized(t *testing.T) {
	negZero, err := CanonicalPayload(Float64Value(math.Copysign(0, -1)))
	require.NoError(t, err)

	posZero, err := CanonicalPayload(Float64Value(0))
	require.NoError(t, err)

	assert.Equal(t, posZero, negZero)
}

func TestCanonicalPayload_Point_IgnoresAltitude(t *testing.T) {
	alt := 123.0
	withAlt, err := CanonicalPayload(PointValue(1, 2, &alt))
	require.NoError(t, err)

	withoutAlt, err := CanonicalPayload(PointValue(1, 2, nil))
	require.NoError(t, err)

	assert.Equal(t, withoutAlt, withAlt)
	assert.Len(t, withoutAlt, 16)
}

func TestCanonicalPayload_Text_NoLengthPrefix(t *testing.T) {
	b, err := CanonicalPayload(TextValue("hi", nil))
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), b)
}

func TestCanonicalPayload_Ref(t *testing.T) {
	target := Id{1, 2, 3}
	b, err := CanonicalPayload(RefValue(target))
	require.NoError(t, err)
	assert.Equal(t, target[:], b)
}

func TestCanonicalPayload_Embedding(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	b, err := CanonicalPayload(EmbeddingValue(format.Int8, 4, data))
	require.NoError(t, err)

	assert.Equal(t, byte(format.Int8), b[0])
	assert.Equal(t, data, b[5:])
}

func TestCanonicalPayload_Decimal_I64(t *testing.T) {
	v := DecimalValue(-2, NewI64Mantissa(1234))
	b, err := CanonicalPayload(v)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

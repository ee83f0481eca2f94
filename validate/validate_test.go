package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-algorithms/grc20-go/errs"
	"github.com/apex-algorithms/grc20-go/format"
	"github.com/apex-algorithms/grc20-go/model"
)

func TestValidateEdit_TypeMismatchAgainstExternalSchema(t *testing.T) {
	p1 := model.Id{1}

	schema := NewSchemaContext()
	schema.AddProperty(p1, format.Int64)

	edit := model.Edit{
		Ops: []model.Op{
			model.NewCreateEntity(model.Id{2}, []model.PropertyValue{
				{Property: p1, Value: model.TextValue("x", nil)},
			}),
		},
	}

	err := ValidateEdit(edit, schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTypeMismatch)
}

func TestValidateEdit_DataTypeInconsistentAgainstExternalSchema(t *testing.T) {
	p1 := model.Id{1}

	schema := NewSchemaContext()
	schema.AddProperty(p1, format.Int64)

	edit := model.Edit{
		Ops: []model.Op{
			model.NewCreateProperty(p1, format.Text),
			model.NewCreateEntity(model.Id{2}, []model.PropertyValue{
				{Property: p1, Value: model.TextValue("x", nil)},
			}),
		},
	}

	err := ValidateEdit(edit, schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDataTypeInconsistent)
}

func TestValidateEdit_InlineCreatePropertySucceeds(t *testing.T) {
	p1 := model.Id{1}
	schema := NewSchemaContext() // empty

	edit := model.Edit{
		Ops: []model.Op{
			model.NewCreateProperty(p1, format.Text),
			model.NewCreateEntity(model.Id{2}, []model.PropertyValue{
				{Property: p1, Value: model.TextValue("x", nil)},
			}),
		},
	}

	require.NoError(t, ValidateEdit(edit, schema))
}

func TestValidateEdit_UnknownPropertyPermitted(t *testing.T) {
	schema := NewSchemaContext()

	edit := model.Edit{
		Ops: []model.Op{
			model.NewCreateEntity(model.Id{2}, []model.PropertyValue{
				{Property: model.Id{99}, Value: model.Int64Value(1)},
			}),
		},
	}

	require.NoError(t, ValidateEdit(edit, schema))
}

func TestValidateEdit_UpdateEntityChecksAllThreeVectors(t *testing.T) {
	p1 := model.Id{1}
	schema := NewSchemaContext()
	schema.AddProperty(p1, format.Int64)

	bad := []model.PropertyValue{{Property: p1, Value: model.TextValue("oops", nil)}}
	ops := []model.Op{
		model.NewUpdateEntity(model.Id{2}, bad, nil, nil, nil),
		model.NewUpdateEntity(model.Id{2}, nil, bad, nil, nil),
		model.NewUpdateEntity(model.Id{2}, nil, nil, bad, nil),
	}

	for _, op := range ops {
		err := ValidateEdit(model.Edit{Ops: []model.Op{op}}, schema)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrTypeMismatch)
	}
}

func TestSchemaContext_Clone_DoesNotMutateOriginal(t *testing.T) {
	p1 := model.Id{1}
	schema := NewSchemaContext()
	schema.AddProperty(p1, format.Int64)

	edit := model.Edit{
		Ops: []model.Op{
			model.NewCreateProperty(model.Id{2}, format.Text),
		},
	}

	require.NoError(t, ValidateEdit(edit, schema))

	_, ok := schema.PropertyType(model.Id{2})
	assert.False(t, ok, "ValidateEdit must not leak local schema additions back into the caller's context")
}

func TestValidatePosition(t *testing.T) {
	require.NoError(t, ValidatePosition("abc123", 64))

	err := ValidatePosition("bad!", 64)
	require.Error(t, err)

	longPos := make([]byte, 65)
	for i := range longPos {
		longPos[i] = 'a'
	}
	err = ValidatePosition(string(longPos), 64)
	require.Error(t, err)
}

func TestValidateValue(t *testing.T) {
	require.NoError(t, ValidateValue(model.Int64Value(1)))
	require.Error(t, ValidateValue(model.PointValue(999, 0, nil)))
}

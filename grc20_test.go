package grc20

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-algorithms/grc20-go/format"
	"github.com/apex-algorithms/grc20-go/model"
)

func TestEncodeDecodeEdit_Facade(t *testing.T) {
	propID := Id{10}
	entityID := Id{3}

	edit := Edit{
		Id:        Id{1},
		Name:      "facade test",
		CreatedAt: 42,
		Ops: []model.Op{
			model.NewCreateProperty(propID, format.Text),
			model.NewCreateEntity(entityID, []model.PropertyValue{
				{Property: propID, Value: model.TextValue("hi", nil)},
			}),
		},
	}

	data, err := EncodeEdit(edit)
	require.NoError(t, err)
	assert.Equal(t, "GRC2\x01", string(data[:5]))

	got, err := DecodeEdit(data)
	require.NoError(t, err)
	assert.Equal(t, edit.Id, got.Id)
	assert.Equal(t, edit.Name, got.Name)
}

func TestEncodeEditCompressed_Facade(t *testing.T) {
	edit := Edit{Id: Id{1}, Name: "x"}

	data, err := EncodeEditCompressed(edit, 3)
	require.NoError(t, err)
	assert.Equal(t, "GRC2Z", string(data[:5]))

	got, err := DecodeEdit(data)
	require.NoError(t, err)
	assert.Equal(t, edit.Id, got.Id)
}

func TestValidateEdit_Facade(t *testing.T) {
	p1 := Id{1}
	schema := NewSchemaContext()
	schema.AddProperty(p1, format.Int64)

	edit := Edit{
		Ops: []model.Op{
			model.NewCreateEntity(Id{2}, []model.PropertyValue{
				{Property: p1, Value: model.TextValue("oops", nil)},
			}),
		},
	}

	require.Error(t, ValidateEdit(edit, schema))
}

func TestIdentityHelpers_Facade(t *testing.T) {
	a := DeriveUUID([]byte("x"))
	b := DeriveUUID([]byte("x"))
	assert.Equal(t, a, b)

	vid := ValueID(Id{1}, []byte{1, 2, 3})
	assert.NotEqual(t, Id{}, vid)

	tid := TextValueID(Id{1}, []byte("hi"), nil)
	assert.NotEqual(t, Id{}, tid)

	from, to, relType := Id{1}, Id{2}, Id{3}
	rid := UniqueRelationID(from, to, relType)
	assert.NotEqual(t, Id{}, rid)
}

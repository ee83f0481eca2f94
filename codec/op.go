package codec

import (
	"github.com/apex-algorithms/grc20-go/errs"
	"github.com/apex-algorithms/grc20-go/format"
	"github.com/apex-algorithms/grc20-go/id"
	"github.com/apex-algorithms/grc20-go/limits"
	"github.com/apex-algorithms/grc20-go/model"
	"github.com/apex-algorithms/grc20-go/wire"
)

// EncodeOp appends op's wire encoding to w, interning every dictionary
// reference it carries via b as a side effect. An op's own subject Id —
// the entity or relation it creates, updates, or deletes — is written as
// raw 16 bytes; only references to something else (a Ref value's target,
// a relation's from/to endpoints) are interned into the objects
// dictionary (spec §4.5, §4.6).
//
// Calling EncodeOp once per op with a throwaway Writer and a fresh
// DictionaryBuilder is pass 1 of the two-pass encode (spec §4.6): the
// builder's interning side effects are a deterministic function of the
// op sequence, so running it again with a fresh builder and the real
// Writer on pass 2 reproduces identical indices without needing to seed
// pass 2 from pass 1's state.
func EncodeOp(w *wire.Writer, b *model.DictionaryBuilder, op model.Op) error {
	w.WriteByte(byte(op.Kind))

	switch op.Kind {
	case model.OpCreateProperty:
		w.WriteID(op.PropertyID)
		w.WriteByte(byte(op.DataType))
		b.AddProperty(op.PropertyID, op.DataType)

	case model.OpCreateEntity:
		w.WriteID(op.EntityID)
		if err := encodePropertyValueVec(w, b, op.Values); err != nil {
			return err
		}

	case model.OpUpdateEntity:
		w.WriteID(op.EntityID)
		if err := encodePropertyValueVec(w, b, op.SetProperties); err != nil {
			return err
		}
		if err := encodePropertyValueVec(w, b, op.AddValues); err != nil {
			return err
		}
		if err := encodePropertyValueVec(w, b, op.RemoveValues); err != nil {
			return err
		}
		encodeUnsetProperties(w, b, op.UnsetProperties)

	case model.OpDeleteEntity:
		w.WriteID(op.EntityID)

	case model.OpCreateRelation:
		w.WriteByte(byte(op.RelationIDMode))
		if op.RelationIDMode == model.RelationIDExplicit {
			w.WriteID(op.RelationID)
		}
		w.WriteUvarint(uint64(b.AddObject(op.From)))
		w.WriteUvarint(uint64(b.AddObject(op.To)))
		w.WriteUvarint(uint64(b.AddRelationType(op.RelationType)))
		if err := encodeOptionalPosition(w, op.Position); err != nil {
			return err
		}
		encodeOptionalVerified(w, op.Verified)

	case model.OpUpdateRelation:
		w.WriteID(op.RelationID)
		if err := encodeOptionalPosition(w, op.Position); err != nil {
			return err
		}
		encodeOptionalVerified(w, op.Verified)

	case model.OpDeleteRelation:
		w.WriteID(op.RelationID)

	default:
		return &errs.MalformedEncodingError{Context: "op: unknown kind"}
	}

	return nil
}

// DecodeOp reads one Op off r, resolving dictionary references against d.
func DecodeOp(r *wire.Reader, d *model.WireDictionaries) (model.Op, error) {
	kindByte, err := r.ReadByte()
	if err != nil {
		return model.Op{}, err
	}

	kind := model.OpKind(kindByte)

	switch kind {
	case model.OpCreateProperty:
		propertyID, err := r.ReadID()
		if err != nil {
			return model.Op{}, err
		}
		dtByte, err := r.ReadByte()
		if err != nil {
			return model.Op{}, err
		}
		dt, ok := format.DataTypeFromByte(dtByte)
		if !ok {
			return model.Op{}, &errs.InvalidDataTypeError{DataType: dtByte}
		}
		return model.NewCreateProperty(propertyID, dt), nil

	case model.OpCreateEntity:
		entityID, err := r.ReadID()
		if err != nil {
			return model.Op{}, err
		}
		values, err := decodePropertyValueVec(r, d)
		if err != nil {
			return model.Op{}, err
		}
		return model.NewCreateEntity(entityID, values), nil

	case model.OpUpdateEntity:
		entityID, err := r.ReadID()
		if err != nil {
			return model.Op{}, err
		}
		setProperties, err := decodePropertyValueVec(r, d)
		if err != nil {
			return model.Op{}, err
		}
		addValues, err := decodePropertyValueVec(r, d)
		if err != nil {
			return model.Op{}, err
		}
		removeValues, err := decodePropertyValueVec(r, d)
		if err != nil {
			return model.Op{}, err
		}
		unsetProperties, err := decodeUnsetProperties(r, d)
		if err != nil {
			return model.Op{}, err
		}
		return model.NewUpdateEntity(entityID, setProperties, addValues, removeValues, unsetProperties), nil

	case model.OpDeleteEntity:
		entityID, err := r.ReadID()
		if err != nil {
			return model.Op{}, err
		}
		return model.NewDeleteEntity(entityID), nil

	case model.OpCreateRelation:
		modeByte, err := r.ReadByte()
		if err != nil {
			return model.Op{}, err
		}
		mode := model.RelationIDMode(modeByte)

		var relationID id.Id
		if mode == model.RelationIDExplicit {
			relationID, err = r.ReadID()
			if err != nil {
				return model.Op{}, err
			}
		}

		from, err := decodeObjectRef(r, d)
		if err != nil {
			return model.Op{}, err
		}
		to, err := decodeObjectRef(r, d)
		if err != nil {
			return model.Op{}, err
		}
		relationType, err := decodeRelationTypeRef(r, d)
		if err != nil {
			return model.Op{}, err
		}
		position, err := decodeOptionalPosition(r)
		if err != nil {
			return model.Op{}, err
		}
		verified, err := decodeOptionalVerified(r)
		if err != nil {
			return model.Op{}, err
		}

		if mode == model.RelationIDUnique {
			relationID = id.UniqueRelationID(from, to, relationType)
		}

		return model.Op{
			Kind:           model.OpCreateRelation,
			RelationID:     relationID,
			RelationIDMode: mode,
			From:           from,
			To:             to,
			RelationType:   relationType,
			Position:       position,
			Verified:       verified,
		}, nil

	case model.OpUpdateRelation:
		relationID, err := r.ReadID()
		if err != nil {
			return model.Op{}, err
		}
		position, err := decodeOptionalPosition(r)
		if err != nil {
			return model.Op{}, err
		}
		verified, err := decodeOptionalVerified(r)
		if err != nil {
			return model.Op{}, err
		}
		return model.NewUpdateRelation(relationID, position, verified), nil

	case model.OpDeleteRelation:
		relationID, err := r.ReadID()
		if err != nil {
			return model.Op{}, err
		}
		return model.NewDeleteRelation(relationID), nil

	default:
		return model.Op{}, &errs.MalformedEncodingError{Context: "op: unknown kind"}
	}
}

func encodePropertyValueVec(w *wire.Writer, b *model.DictionaryBuilder, values []model.PropertyValue) error {
	w.WriteUvarint(uint64(len(values)))

	for _, pv := range values {
		w.WriteUvarint(uint64(b.AddProperty(pv.Property, pv.Value.Type)))
		if err := EncodeValue(w, b, pv.Value); err != nil {
			return err
		}
	}

	return nil
}

func decodePropertyValueVec(r *wire.Reader, d *model.WireDictionaries) ([]model.PropertyValue, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n > limits.MaxValuesPerEntity {
		return nil, &errs.LengthExceedsLimitError{Field: "values", Len: int(n), Max: limits.MaxValuesPerEntity}
	}

	out := make([]model.PropertyValue, n)
	for i := range out {
		idx, err := r.ReadUvarint()
		if err != nil {
			return nil, err
		}
		property, ok := d.Property(int(idx))
		if !ok {
			return nil, &errs.IndexOutOfBoundsError{Dict: "properties", Index: int(idx), Size: len(d.Properties)}
		}

		value, err := DecodeValue(r, d, property.DataType)
		if err != nil {
			return nil, err
		}

		out[i] = model.PropertyValue{Property: property.Id, Value: value}
	}

	return out, nil
}

func encodeUnsetProperties(w *wire.Writer, b *model.DictionaryBuilder, properties []id.Id) {
	w.WriteUvarint(uint64(len(properties)))
	for _, p := range properties {
		w.WriteUvarint(uint64(b.InternProperty(p)))
	}
}

func decodeUnsetProperties(r *wire.Reader, d *model.WireDictionaries) ([]id.Id, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n > limits.MaxValuesPerEntity {
		return nil, &errs.LengthExceedsLimitError{Field: "unset_properties", Len: int(n), Max: limits.MaxValuesPerEntity}
	}

	out := make([]id.Id, n)
	for i := range out {
		idx, err := r.ReadUvarint()
		if err != nil {
			return nil, err
		}
		property, ok := d.Property(int(idx))
		if !ok {
			return nil, &errs.IndexOutOfBoundsError{Dict: "properties", Index: int(idx), Size: len(d.Properties)}
		}
		out[i] = property.Id
	}

	return out, nil
}

func decodeObjectRef(r *wire.Reader, d *model.WireDictionaries) (id.Id, error) {
	idx, err := r.ReadUvarint()
	if err != nil {
		return id.Id{}, err
	}
	target, ok := d.Object(int(idx))
	if !ok {
		return id.Id{}, &errs.IndexOutOfBoundsError{Dict: "objects", Index: int(idx), Size: len(d.Objects)}
	}
	return target, nil
}

func decodeRelationTypeRef(r *wire.Reader, d *model.WireDictionaries) (id.Id, error) {
	idx, err := r.ReadUvarint()
	if err != nil {
		return id.Id{}, err
	}
	rt, ok := d.RelationType(int(idx))
	if !ok {
		return id.Id{}, &errs.IndexOutOfBoundsError{Dict: "relation_types", Index: int(idx), Size: len(d.RelationTypes)}
	}
	return rt, nil
}

func encodeOptionalPosition(w *wire.Writer, position *string) error {
	if position == nil {
		w.WriteByte(0)
		return nil
	}

	if len(*position) > limits.MaxPositionLen {
		return &errs.PositionTooLongError{Len: len(*position), Max: limits.MaxPositionLen}
	}
	if err := model.ValidatePositionChars(*position); err != nil {
		return err
	}

	w.WriteByte(1)
	w.WriteString(*position)

	return nil
}

func decodeOptionalPosition(r *wire.Reader) (*string, error) {
	present, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}

	s, err := r.ReadString(limits.MaxPositionLen, "position")
	if err != nil {
		return nil, err
	}
	if err := model.ValidatePositionChars(s); err != nil {
		return nil, err
	}

	return &s, nil
}

func encodeOptionalVerified(w *wire.Writer, verified *bool) {
	if verified == nil {
		w.WriteByte(0)
		return
	}

	w.WriteByte(1)
	if *verified {
		w.WriteByte(1)
	} else {
		w.WriteByte(0)
	}
}

func decodeOptionalVerified(r *wire.Reader) (*bool, error) {
	present, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}

	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if b != 0 && b != 1 {
		return nil, &errs.InvalidBoolError{Value: b}
	}

	v := b == 1
	return &v, nil
}

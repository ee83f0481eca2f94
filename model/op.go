package model

import "github.com/apex-algorithms/grc20-go/format"

// OpKind discriminates Op's tagged-union variants. Its numeric values
// are the wire tag byte each op is prefixed with (spec §4.5).
type OpKind uint8

const (
	OpCreateProperty OpKind = 1
	OpCreateEntity   OpKind = 2
	OpUpdateEntity   OpKind = 3
	OpDeleteEntity   OpKind = 4
	OpCreateRelation OpKind = 5
	OpUpdateRelation OpKind = 6
	OpDeleteRelation OpKind = 7
)

// RelationIDMode selects how a relation's Id is determined (spec §4.5).
type RelationIDMode uint8

const (
	// RelationIDExplicit carries the relation's Id on the wire.
	RelationIDExplicit RelationIDMode = 0
	// RelationIDUnique derives the relation's Id from from/to/type via
	// id.UniqueRelationID; no Id bytes are written.
	RelationIDUnique RelationIDMode = 1
)

// Op is the tagged union of every edit mutation (spec §3). Kind selects
// which fields are meaningful; unused fields are zero.
type Op struct {
	Kind OpKind

	// CreateProperty: PropertyID, DataType.
	PropertyID Id
	DataType   format.DataType

	// CreateEntity / DeleteEntity / UpdateEntity subject.
	EntityID Id

	// CreateEntity.values.
	Values []PropertyValue

	// UpdateEntity's four parallel vectors.
	SetProperties   []PropertyValue
	AddValues       []PropertyValue
	RemoveValues    []PropertyValue
	UnsetProperties []Id

	// CreateRelation / UpdateRelation / DeleteRelation.
	RelationID     Id
	RelationIDMode RelationIDMode
	From           Id
	To             Id
	RelationType   Id
	Position       *string
	Verified       *bool
}

// NewCreateProperty constructs a CreateProperty op.
func NewCreateProperty(id Id, dataType format.DataType) Op {
	return Op{Kind: OpCreateProperty, PropertyID: id, DataType: dataType}
}

// NewCreateEntity constructs a CreateEntity op.
func NewCreateEntity(id Id, values []PropertyValue) Op {
	return Op{Kind: OpCreateEntity, EntityID: id, Values: values}
}

// NewUpdateEntity constructs an UpdateEntity op.
func NewUpdateEntity(id Id, setProperties, addValues, removeValues []PropertyValue, unsetProperties []Id) Op {
	return Op{
		Kind:            OpUpdateEntity,
		EntityID:        id,
		SetProperties:   setProperties,
		AddValues:       addValues,
		RemoveValues:    removeValues,
		UnsetProperties: unsetProperties,
	}
}

// NewDeleteEntity constructs a DeleteEntity op.
func NewDeleteEntity(id Id) Op {
	return Op{Kind: OpDeleteEntity, EntityID: id}
}

// NewCreateRelationExplicit constructs a CreateRelation op carrying an
// explicit relation Id.
func NewCreateRelationExplicit(relationID, from, to, relationType Id, position *string, verified *bool) Op {
	return Op{
		Kind:           OpCreateRelation,
		RelationID:     relationID,
		RelationIDMode: RelationIDExplicit,
		From:           from,
		To:             to,
		RelationType:   relationType,
		Position:       position,
		Verified:       verified,
	}
}

// NewCreateRelationUnique constructs a CreateRelation op whose Id is
// derived from from/to/relationType on encode and decode alike.
func NewCreateRelationUnique(from, to, relationType Id, position *string, verified *bool) Op {
	return Op{
		Kind:           OpCreateRelation,
		RelationIDMode: RelationIDUnique,
		From:           from,
		To:             to,
		RelationType:   relationType,
		Position:       position,
		Verified:       verified,
	}
}

// NewUpdateRelation constructs an UpdateRelation op.
func NewUpdateRelation(relationID Id, position *string, verified *bool) Op {
	return Op{Kind: OpUpdateRelation, RelationID: relationID, Position: position, Verified: verified}
}

// NewDeleteRelation constructs a DeleteRelation op.
func NewDeleteRelation(relationID Id) Op {
	return Op{Kind: OpDeleteRelation, RelationID: relationID}
}

package grc20

import (
	"github.com/apex-algorithms/grc20-go/codec"
	"github.com/apex-algorithms/grc20-go/id"
	"github.com/apex-algorithms/grc20-go/model"
	"github.com/apex-algorithms/grc20-go/validate"
)

// Edit is a batched, atomically-processed set of operations targeting a
// knowledge graph (spec §3).
type Edit = model.Edit

// Id is the universal 16-byte identifier type.
type Id = id.Id

// SchemaContext tracks known property data types for ValidateEdit.
type SchemaContext = validate.SchemaContext

// NewSchemaContext creates an empty SchemaContext.
func NewSchemaContext() *SchemaContext { return validate.NewSchemaContext() }

// EncodeEdit serializes edit as an uncompressed GRC2-framed binary blob.
//
// Encoding is deterministic: the same in-order op stream always produces
// byte-identical output, since dictionary indices are assigned in
// first-seen order (spec §8, "Encoding determinism").
func EncodeEdit(edit Edit) ([]byte, error) {
	return codec.EncodeEdit(edit)
}

// EncodeEditCompressed serializes edit as a zstd-compressed GRC2Z-framed
// binary blob at the given compression level (1-4, clamped to the
// nearest supported zstd speed tier).
func EncodeEditCompressed(edit Edit, level int) ([]byte, error) {
	return codec.EncodeEditCompressed(edit, level)
}

// DecodeEdit parses a GRC2 or GRC2Z-framed binary blob, auto-detecting
// compression from the magic bytes.
func DecodeEdit(data []byte) (Edit, error) {
	return codec.DecodeEdit(data)
}

// ValidateEdit checks edit's ops for schema-conformant data types,
// against schema plus whatever properties the edit itself declares via
// CreateProperty.
func ValidateEdit(edit Edit, schema *SchemaContext) error {
	return validate.ValidateEdit(edit, schema)
}

// DeriveUUID derives a UUIDv8 Id from arbitrary input bytes (spec §4.2).
func DeriveUUID(input []byte) Id { return id.DeriveUUID(input) }

// ValueID computes the identity hash of a non-Text value (spec §4.2).
func ValueID(property Id, canonicalPayload []byte) Id {
	return id.ValueID(property, canonicalPayload)
}

// TextValueID computes the identity hash of a Text value, folding in an
// optional language Id (spec §4.2).
func TextValueID(property Id, text []byte, language *Id) Id {
	return id.TextValueID(property, text, language)
}

// UniqueRelationID derives a relation's Id in "unique" mode from its
// from/to endpoints and relation type (spec §4.2).
func UniqueRelationID(from, to, relationType Id) Id {
	return id.UniqueRelationID(from, to, relationType)
}

// Package grc20 provides a self-describing binary wire codec for batched
// knowledge-graph mutations ("edits") over an entity/property/relation
// data model.
//
// # Core Features
//
//   - Strict value canonicalization across eleven DataTypes (Bool,
//     Int64, Float64, Decimal, Text, Bytes, Timestamp, Date, Point,
//     Embedding, Ref), each with NaN/range/normalization checks applied
//     symmetrically on encode and decode
//   - Index-coded operation stream against per-edit dictionaries the
//     encoder builds and the decoder reconstructs identically
//   - Deterministic SHA-256 identity hashing: UUIDv8 derivation,
//     value-identity hashing, unique-mode relation-Id derivation
//   - Optional zstd compression with a declared-length guard against
//     decompression bombs
//   - Resource-exhaustion limits enforced before allocation, on every
//     length-prefixed field
//   - Semantic validation of an edit's property data types against a
//     caller-supplied schema context
//   - Well-known "Genesis Space" IDs for core properties, types,
//     relation types, and ISO language codes
//
// # Basic Usage
//
// Building and encoding an edit:
//
//	edit := model.Edit{
//	    Id:        someId,
//	    Name:      "example edit",
//	    CreatedAt: time.Now().UnixMicro(),
//	    Ops: []model.Op{
//	        model.NewCreateProperty(nameProp, format.Text),
//	        model.NewCreateEntity(entityId, []model.PropertyValue{
//	            {Property: nameProp, Value: model.TextValue("Hello", nil)},
//	        }),
//	    },
//	}
//
//	blob, err := grc20.EncodeEdit(edit)
//	decoded, err := grc20.DecodeEdit(blob)
//
// Validating against a schema:
//
//	schema := grc20.NewSchemaContext()
//	schema.AddProperty(nameProp, format.Text)
//	err := grc20.ValidateEdit(edit, schema)
//
// # Package Structure
//
// This package is a thin top-level facade over model (the data model),
// codec (wire encode/decode), validate (schema-aware semantic checks),
// id (identity hashing), and genesis (well-known IDs). Callers needing
// finer control — direct access to WireDictionaries, a custom
// DictionaryBuilder, or the value/op codec in isolation — should import
// those packages directly.
package grc20

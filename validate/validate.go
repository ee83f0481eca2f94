// Package validate performs semantic validation of a decoded edit beyond
// what structural decoding already checks: value types agreeing with
// their property's declared DataType, and CreateProperty declarations
// agreeing with whatever schema the caller already knows. Entity
// lifecycle state (alive/deleted) needs graph-wide context this package
// doesn't have, so it is out of scope here.
package validate

import (
	"github.com/apex-algorithms/grc20-go/errs"
	"github.com/apex-algorithms/grc20-go/format"
	"github.com/apex-algorithms/grc20-go/model"
)

// SchemaContext tracks known property data types across a validation
// call. The zero value is an empty schema, ready to use.
type SchemaContext struct {
	properties map[model.Id]format.DataType
}

// NewSchemaContext creates an empty SchemaContext.
func NewSchemaContext() *SchemaContext {
	return &SchemaContext{properties: make(map[model.Id]format.DataType)}
}

// AddProperty registers id's data type in the schema.
func (s *SchemaContext) AddProperty(id model.Id, dataType format.DataType) {
	if s.properties == nil {
		s.properties = make(map[model.Id]format.DataType)
	}
	s.properties[id] = dataType
}

// PropertyType returns the data type registered for id, if any.
func (s *SchemaContext) PropertyType(id model.Id) (format.DataType, bool) {
	dt, ok := s.properties[id]
	return dt, ok
}

func (s *SchemaContext) clone() *SchemaContext {
	out := NewSchemaContext()
	for k, v := range s.properties {
		out.properties[k] = v
	}
	return out
}

// ValidateEdit checks edit against schema, plus whatever CreateProperty
// ops the edit itself declares: a property created earlier in the same
// edit is immediately usable by later ops in that edit, without needing
// to appear in schema beforehand.
func ValidateEdit(edit model.Edit, schema *SchemaContext) error {
	if schema == nil {
		schema = NewSchemaContext()
	}

	local := schema.clone()

	for _, op := range edit.Ops {
		switch op.Kind {
		case model.OpCreateProperty:
			if existing, ok := schema.PropertyType(op.PropertyID); ok {
				if existing != op.DataType {
					return &errs.DataTypeInconsistentError{
						Property: op.PropertyID,
						Schema:   existing,
						Declared: op.DataType,
					}
				}
			}
			local.AddProperty(op.PropertyID, op.DataType)

		case model.OpCreateEntity:
			if err := validatePropertyValues(op.Values, local); err != nil {
				return err
			}

		case model.OpUpdateEntity:
			if err := validatePropertyValues(op.SetProperties, local); err != nil {
				return err
			}
			if err := validatePropertyValues(op.AddValues, local); err != nil {
				return err
			}
			if err := validatePropertyValues(op.RemoveValues, local); err != nil {
				return err
			}
		}
	}

	return nil
}

// validatePropertyValues checks that every value's data type agrees with
// its property's declared type in schema. A property absent from schema
// is allowed through — it may be declared elsewhere.
func validatePropertyValues(values []model.PropertyValue, schema *SchemaContext) error {
	for _, pv := range values {
		expected, ok := schema.PropertyType(pv.Property)
		if !ok {
			continue
		}

		actual := pv.Value.DataType()
		if expected != actual {
			return &errs.TypeMismatchError{Property: pv.Property, Expected: expected}
		}
	}

	return nil
}

// ValidateValue runs Value's own context-independent checks (NaN, range,
// decimal normalization, embedding shape).
func ValidateValue(v model.Value) error {
	return v.Validate()
}

// ValidatePosition checks a relation position string against the
// character-set and length rules (spec §3, invariant vi).
func ValidatePosition(pos string, maxLen int) error {
	if len(pos) > maxLen {
		return &errs.PositionTooLongError{Len: len(pos), Max: maxLen}
	}

	return model.ValidatePositionChars(pos)
}

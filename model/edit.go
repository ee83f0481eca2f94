package model

import (
	"github.com/apex-algorithms/grc20-go/format"
	"github.com/apex-algorithms/grc20-go/internal/dict"
)

// Edit is a batched, atomically-processed set of operations targeting a
// knowledge graph (spec §3).
type Edit struct {
	Id        Id
	Name      string
	Authors   []Id
	CreatedAt int64
	Ops       []Op
}

// WireDictionaries are the four parallel insertion-ordered dictionaries
// an edit's op stream is indexed against (spec §3). Properties carries
// both the property Id and its DataType; the other three carry bare Ids.
type WireDictionaries struct {
	Properties    []Property
	RelationTypes []Id
	Languages     []Id
	Objects       []Id
}

// Property returns the i'th entry of the properties dictionary.
func (d *WireDictionaries) Property(i int) (Property, bool) {
	if i < 0 || i >= len(d.Properties) {
		return Property{}, false
	}

	return d.Properties[i], true
}

// RelationType returns the i'th entry of the relation_types dictionary.
func (d *WireDictionaries) RelationType(i int) (Id, bool) {
	if i < 0 || i >= len(d.RelationTypes) {
		return Id{}, false
	}

	return d.RelationTypes[i], true
}

// Language returns the i'th entry of the languages dictionary.
func (d *WireDictionaries) Language(i int) (Id, bool) {
	if i < 0 || i >= len(d.Languages) {
		return Id{}, false
	}

	return d.Languages[i], true
}

// Object returns the i'th entry of the objects dictionary.
func (d *WireDictionaries) Object(i int) (Id, bool) {
	if i < 0 || i >= len(d.Objects) {
		return Id{}, false
	}

	return d.Objects[i], true
}

// DictionaryBuilder interns Ids into an edit's four wire dictionaries in
// first-seen order, assigning each a stable index as it is first
// encountered (spec §4.6, "Dictionary builder"). The zero value is not
// usable; construct with NewDictionaryBuilder.
type DictionaryBuilder struct {
	properties    *dict.Table
	propertyTypes map[Id]format.DataType
	relationTypes *dict.Table
	languages     *dict.Table
	objects       *dict.Table
}

// NewDictionaryBuilder creates an empty DictionaryBuilder.
func NewDictionaryBuilder() *DictionaryBuilder {
	return &DictionaryBuilder{
		properties:    dict.New(),
		propertyTypes: make(map[Id]format.DataType),
		relationTypes: dict.New(),
		languages:     dict.New(),
		objects:       dict.New(),
	}
}

// InternProperty interns id into the properties dictionary without
// recording a DataType, returning its index. Used for UnsetProperty
// references, which name a property but carry no value of their own.
// The property gets a DataType only if another op in the edit records
// one via AddProperty; otherwise Build reports it as format.Unset.
func (b *DictionaryBuilder) InternProperty(id Id) int {
	return b.properties.Add(id)
}

// AddProperty interns id into the properties dictionary and records
// dataType as its DataType, unless a DataType was already recorded for
// id — first-seen wins, matching the CreateProperty-or-first-value rule
// spec §4.6 describes.
func (b *DictionaryBuilder) AddProperty(id Id, dataType format.DataType) int {
	idx := b.properties.Add(id)

	if _, ok := b.propertyTypes[id]; !ok {
		b.propertyTypes[id] = dataType
	}

	return idx
}

// AddRelationType interns id into the relation_types dictionary.
func (b *DictionaryBuilder) AddRelationType(id Id) int {
	return b.relationTypes.Add(id)
}

// AddLanguage interns id into the languages dictionary.
func (b *DictionaryBuilder) AddLanguage(id Id) int {
	return b.languages.Add(id)
}

// AddObject interns id into the objects dictionary.
func (b *DictionaryBuilder) AddObject(id Id) int {
	return b.objects.Add(id)
}

// Build materializes the four dictionaries in their first-seen insertion
// order.
func (b *DictionaryBuilder) Build() WireDictionaries {
	propIds := b.properties.Items()
	properties := make([]Property, len(propIds))

	for i, pid := range propIds {
		dataType, ok := b.propertyTypes[pid]
		if !ok {
			// Interned only via InternProperty (an UnsetProperty
			// reference) — no CreateProperty or value recorded its
			// type in this edit.
			dataType = format.Unset
		}
		properties[i] = Property{Id: pid, DataType: dataType}
	}

	return WireDictionaries{
		Properties:    properties,
		RelationTypes: b.relationTypes.Items(),
		Languages:     b.languages.Items(),
		Objects:       b.objects.Items(),
	}
}

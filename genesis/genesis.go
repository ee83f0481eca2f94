// Package genesis provides the well-known Genesis Space IDs (spec §4.8):
// core properties, core types, core relation types, and ISO language
// codes, all derived deterministically from stable string inputs via
// id.DeriveUUID. These are data, not behavior — calling any accessor
// twice, in any process, on any platform, returns identical bytes.
package genesis

import "github.com/apex-algorithms/grc20-go/id"

const namespace = "grc20:genesis:"

func propertyID(name string) id.Id { return id.DeriveUUID([]byte(namespace + name)) }
func typeID(name string) id.Id     { return id.DeriveUUID([]byte(namespace + name)) }
func relationTypeID(name string) id.Id {
	return id.DeriveUUID([]byte(namespace + name))
}
func languageID(code string) id.Id {
	return id.DeriveUUID([]byte(namespace + "language:" + code))
}

// Well-known core properties.
var (
	Name        = propertyID("Name")
	Description = propertyID("Description")
	Avatar      = propertyID("Avatar")
	URL         = propertyID("URL")
	Created     = propertyID("Created")
	Modified    = propertyID("Modified")
)

// Well-known core types.
var (
	Person       = typeID("Person")
	Organization = typeID("Organization")
	Place        = typeID("Place")
	Topic        = typeID("Topic")
)

// Well-known core relation types.
var (
	Types     = relationTypeID("Types")
	PartOf    = relationTypeID("PartOf")
	RelatedTo = relationTypeID("RelatedTo")
)

// Well-known ISO language codes.
var (
	LanguageEn = languageID("en")
	LanguageEs = languageID("es")
	LanguageFr = languageID("fr")
	LanguageDe = languageID("de")
	LanguageIt = languageID("it")
	LanguagePt = languageID("pt")
	LanguageRu = languageID("ru")
	LanguageZh = languageID("zh")
	LanguageJa = languageID("ja")
	LanguageAr = languageID("ar")
)

// Properties returns every well-known core property Id, in declaration
// order.
func Properties() []id.Id {
	return []id.Id{Name, Description, Avatar, URL, Created, Modified}
}

// CoreTypes returns every well-known core type Id, in declaration order.
func CoreTypes() []id.Id {
	return []id.Id{Person, Organization, Place, Topic}
}

// RelationTypes returns every well-known core relation type Id, in
// declaration order.
func RelationTypes() []id.Id {
	return []id.Id{Types, PartOf, RelatedTo}
}

// Languages maps each supported ISO language code to its well-known Id.
func Languages() map[string]id.Id {
	return map[string]id.Id{
		"en": LanguageEn,
		"es": LanguageEs,
		"fr": LanguageFr,
		"de": LanguageDe,
		"it": LanguageIt,
		"pt": LanguagePt,
		"ru": LanguageRu,
		"zh": LanguageZh,
		"ja": LanguageJa,
		"ar": LanguageAr,
	}
}

// Language returns the well-known Id for an ISO language code, and
// whether that code is one of the genesis namespace's known codes. An
// unknown code can still be derived directly via
// id.DeriveUUID([]byte("grc20:genesis:language:" + code)) — Language is
// a convenience lookup over the representative set this package caches,
// not the full ISO-639 list.
func Language(code string) (id.Id, bool) {
	l, ok := Languages()[code]
	return l, ok
}

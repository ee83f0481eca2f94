package model

import (
	"github.com/apex-algorithms/grc20-go/format"
	"github.com/apex-algorithms/grc20-go/id"
)

// Identity computes pv's value-identity hash (spec §4.2): Text values
// fold the language Id into the hash via id.TextValueID, every other
// DataType hashes property Id || CanonicalPayload via id.ValueID.
func (pv PropertyValue) Identity() (Id, error) {
	if pv.Value.Type == format.Text {
		return id.TextValueID(pv.Property, []byte(pv.Value.Text), pv.Value.Language), nil
	}

	payload, err := CanonicalPayload(pv.Value)
	if err != nil {
		return Id{}, err
	}

	return id.ValueID(pv.Property, payload), nil
}

package codec

import (
	"github.com/klauspost/compress/zstd"

	"github.com/apex-algorithms/grc20-go/errs"
	"github.com/apex-algorithms/grc20-go/format"
	"github.com/apex-algorithms/grc20-go/limits"
	"github.com/apex-algorithms/grc20-go/model"
	"github.com/apex-algorithms/grc20-go/wire"
)

// EncodeEdit serializes edit as an uncompressed GRC2-framed binary blob.
func EncodeEdit(edit model.Edit) ([]byte, error) {
	body, err := encodeEditBody(edit)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(limits.MagicUncompressed)+1+len(body))
	out = append(out, limits.MagicUncompressed[:]...)
	out = append(out, limits.FormatVersion)
	out = append(out, body...)

	return out, nil
}

// EncodeEditCompressed serializes edit as a zstd-compressed GRC2Z-framed
// binary blob at the given compression level (spec §9, "Compression is
// optional but recommended"). Unlike the uncompressed frame, the
// compressed frame has no version byte of its own (spec §4.6): it is
// exactly "GRC2Z" ‖ varint(declared uncompressed size) ‖ zstd stream.
func EncodeEditCompressed(edit model.Edit, level int) ([]byte, error) {
	body, err := encodeEditBody(edit)
	if err != nil {
		return nil, err
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdLevel(level)), zstd.WithEncoderCRC(false))
	if err != nil {
		return nil, &errs.CompressionFailedError{Msg: err.Error()}
	}
	defer encoder.Close()

	compressed := encoder.EncodeAll(body, nil)

	w := wire.NewWriter()
	defer w.Release()
	w.WriteUvarint(uint64(len(body)))
	w.WriteRaw(compressed)

	out := make([]byte, 0, len(limits.MagicCompressed)+w.Len())
	out = append(out, limits.MagicCompressed[:]...)
	out = append(out, w.Bytes()...)

	return out, nil
}

// DecodeEdit parses a GRC2 or GRC2Z-framed binary blob, transparently
// decompressing if needed.
func DecodeEdit(data []byte) (model.Edit, error) {
	body, err := unwrapFraming(data)
	if err != nil {
		return model.Edit{}, err
	}

	return decodeEditBody(body)
}

func unwrapFraming(data []byte) ([]byte, error) {
	if len(data) >= len(limits.MagicCompressed) && string(data[:len(limits.MagicCompressed)]) == string(limits.MagicCompressed[:]) {
		return unwrapCompressed(data[len(limits.MagicCompressed):])
	}

	if len(data) >= len(limits.MagicUncompressed) && string(data[:len(limits.MagicUncompressed)]) == string(limits.MagicUncompressed[:]) {
		return unwrapUncompressed(data[len(limits.MagicUncompressed):])
	}

	found := data
	if len(found) > 5 {
		found = found[:5]
	}

	return nil, &errs.InvalidMagicError{Found: found}
}

func unwrapUncompressed(rest []byte) ([]byte, error) {
	if len(rest) < 1 {
		return nil, &errs.UnexpectedEOFError{Context: "version"}
	}

	version := rest[0]
	if version != limits.FormatVersion {
		return nil, &errs.UnsupportedVersionError{Version: version}
	}

	return rest[1:], nil
}

func unwrapCompressed(rest []byte) ([]byte, error) {
	r := wire.NewReader(rest)
	declared, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if declared > limits.MaxEditSize {
		return nil, &errs.LengthExceedsLimitError{Field: "uncompressed_size", Len: int(declared), Max: limits.MaxEditSize}
	}

	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderLowmem(false))
	if err != nil {
		return nil, &errs.DecompressionFailedError{Msg: err.Error()}
	}
	defer decoder.Close()

	compressed, err := r.ReadBytesN(r.Len(), "compressed_body")
	if err != nil {
		return nil, err
	}

	decoded, err := decoder.DecodeAll(compressed, make([]byte, 0, declared))
	if err != nil {
		return nil, &errs.DecompressionFailedError{Msg: err.Error()}
	}

	if uint64(len(decoded)) != declared {
		return nil, &errs.UncompressedSizeMismatchError{Declared: int(declared), Actual: len(decoded)}
	}

	return decoded, nil
}

// zstdLevel maps an integer compression level onto one of the four
// zstd.EncoderLevel constants the library exposes.
func zstdLevel(level int) zstd.EncoderLevel {
	switch {
	case level <= 1:
		return zstd.SpeedFastest
	case level == 2:
		return zstd.SpeedDefault
	case level == 3:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

// encodeEditBody runs the two-pass encode (spec §4.6): pass 1 replays
// every op through a throwaway Writer to populate a fresh
// DictionaryBuilder, pass 2 replays them again through the real Writer
// with a second fresh builder, whose interning order is guaranteed
// identical to pass 1's since both run over the same op sequence.
func encodeEditBody(edit model.Edit) ([]byte, error) {
	scratch := wire.NewWriter()
	defer scratch.Release()

	pass1 := model.NewDictionaryBuilder()
	for _, op := range edit.Ops {
		if err := EncodeOp(scratch, pass1, op); err != nil {
			return nil, err
		}
	}

	dicts := pass1.Build()

	w := wire.NewWriter()
	defer w.Release()

	w.WriteID(edit.Id)
	w.WriteString(edit.Name)
	w.WriteIDVec(edit.Authors)
	w.WriteVarint(edit.CreatedAt)

	w.WriteUvarint(uint64(len(dicts.Properties)))
	for _, p := range dicts.Properties {
		w.WriteID(p.Id)
		w.WriteByte(byte(p.DataType))
	}
	w.WriteIDVec(dicts.RelationTypes)
	w.WriteIDVec(dicts.Languages)
	w.WriteIDVec(dicts.Objects)

	pass2 := model.NewDictionaryBuilder()
	w.WriteUvarint(uint64(len(edit.Ops)))
	for _, op := range edit.Ops {
		if err := EncodeOp(w, pass2, op); err != nil {
			return nil, err
		}
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out, nil
}

func decodeEditBody(body []byte) (model.Edit, error) {
	r := wire.NewReader(body)

	editID, err := r.ReadID()
	if err != nil {
		return model.Edit{}, err
	}

	name, err := r.ReadString(limits.MaxStringLen, "name")
	if err != nil {
		return model.Edit{}, err
	}

	authors, err := r.ReadIDVec(limits.MaxAuthors, "authors")
	if err != nil {
		return model.Edit{}, err
	}

	createdAt, err := r.ReadVarint()
	if err != nil {
		return model.Edit{}, err
	}

	dicts, err := decodeWireDictionaries(r)
	if err != nil {
		return model.Edit{}, err
	}

	opCount, err := r.ReadUvarint()
	if err != nil {
		return model.Edit{}, err
	}
	if opCount > limits.MaxOpsPerEdit {
		return model.Edit{}, &errs.LengthExceedsLimitError{Field: "ops", Len: int(opCount), Max: limits.MaxOpsPerEdit}
	}

	ops := make([]model.Op, opCount)
	for i := range ops {
		op, err := DecodeOp(r, &dicts)
		if err != nil {
			return model.Edit{}, err
		}
		ops[i] = op
	}

	return model.Edit{
		Id:        editID,
		Name:      name,
		Authors:   authors,
		CreatedAt: createdAt,
		Ops:       ops,
	}, nil
}

func decodeWireDictionaries(r *wire.Reader) (model.WireDictionaries, error) {
	propCount, err := r.ReadUvarint()
	if err != nil {
		return model.WireDictionaries{}, err
	}
	if propCount > limits.MaxDictSize {
		return model.WireDictionaries{}, &errs.LengthExceedsLimitError{Field: "properties", Len: int(propCount), Max: limits.MaxDictSize}
	}

	properties := make([]model.Property, propCount)
	for i := range properties {
		propID, err := r.ReadID()
		if err != nil {
			return model.WireDictionaries{}, err
		}
		dtByte, err := r.ReadByte()
		if err != nil {
			return model.WireDictionaries{}, err
		}

		// Wire byte 0 marks a property interned only via an
		// UnsetProperty reference, with no CreateProperty or value
		// of its own in this edit (spec §4.6) — its real DataType is
		// assumed known from a prior edit, not encoded here.
		if dtByte == byte(format.Unset) {
			properties[i] = model.Property{Id: propID, DataType: format.Unset}
			continue
		}

		dt, ok := format.DataTypeFromByte(dtByte)
		if !ok {
			return model.WireDictionaries{}, &errs.InvalidDataTypeError{DataType: dtByte}
		}
		properties[i] = model.Property{Id: propID, DataType: dt}
	}

	relationTypes, err := r.ReadIDVec(limits.MaxDictSize, "relation_types")
	if err != nil {
		return model.WireDictionaries{}, err
	}

	languages, err := r.ReadIDVec(limits.MaxDictSize, "languages")
	if err != nil {
		return model.WireDictionaries{}, err
	}

	objects, err := r.ReadIDVec(limits.MaxDictSize, "objects")
	if err != nil {
		return model.WireDictionaries{}, err
	}

	return model.WireDictionaries{
		Properties:    properties,
		RelationTypes: relationTypes,
		Languages:     languages,
		Objects:       objects,
	}, nil
}

// Package sspm decodes and encodes the SSPM binary map container.
//
// An SSPM file is offset-addressed: a fixed header and static metadata
// block are followed by a ten-slot offset table whose entries locate the
// variable sections (custom data, audio, cover, schema table, record
// stream) elsewhere in the same stream. The schema table is read before
// the record stream and drives how each record's fields are decoded.
//
// # Layout (little-endian throughout)
//
//	Header      4-byte magic "SS+m", u16 version (must be 2), 4 unused bytes
//	Metadata    20-byte hash, u32 duration, u32 note count, u32 record count,
//	            u8 difficulty, u16 star rating, bool has-audio/has-cover/has-mod
//	Offsets     10 x u64: (offset, length) for custom data, audio, cover,
//	            schema table, record stream
//	Strings     map id, map name, song name, u16 mapper count + names
//	Custom      u16 field count; per field: name, type tag, typed value
//	Schema      u8 entry count; per entry: name, u8 slot count, slot tags, 0x00
//	Records     repeated: u32 timestamp, u8 schema id, one value per slot
//
// Decoding tolerates truncated and adversarial input by failing with a
// structured error; it never panics and never silently zero-fills.
package sspm

import (
	"bytes"

	"github.com/Neumenon/mapcodec/binio"
	"github.com/Neumenon/mapcodec/mapfile"
)

// Version is the codec release version, stamped into the trailing export
// signature of encoded files.
const Version = "0.0.1"

const (
	// formatVersion is the only SSPM container version the codec accepts.
	formatVersion = 2

	// compactBias is added to each one-byte quantized axis on decode.
	// Note it is not the inverse of the +1 the encoder applies; the
	// format's own read and write paths disagree by one unit.
	compactBias = -2

	exportSignature = "MM Export - " + Version
)

// magic is the 4-byte file signature every SSPM stream starts with.
var magic = [4]byte{'S', 'S', '+', 'm'}

// DecodeBytes decodes an SSPM container held fully in memory.
func DecodeBytes(data []byte) (*mapfile.Map, error) {
	return Decode(bytes.NewReader(data))
}

// EncodeBytes encodes a map into a fresh in-memory SSPM container.
func EncodeBytes(m *mapfile.Map) ([]byte, error) {
	buf := binio.NewBuffer()
	if err := Encode(m, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

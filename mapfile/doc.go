// Package mapfile defines the decoded representation of a rhythm-game map
// and the typed value model shared by the SSPM and PHXM container codecs.
//
// # Data Model
//
// A Map is the fully materialized result of decoding one container: song
// metadata, raw media bytes, the ordered note list, and any records the
// decoder could type but not project into a domain entity.
//
// Records in an SSPM file are self-describing: the file carries a schema
// table mapping a one-byte id to a record name and an ordered list of field
// kinds. Schema models that table; Value is the closed tagged union over
// the field kinds the format declares:
//
//	0x01 u8        0x05 f32        0x09 short string
//	0x02 u16       0x06 f64        0x0A long buffer
//	0x03 u32       0x07 2D vector  0x0B long string
//	0x04 u64       0x08 short buf  0x0C nested sequence
//
// A Value is either a bare slot (kind only, describing how a future value
// is read) or populated. Signed 64-bit and 3D-vector kinds exist in the
// value model but have no on-disk tag and no decode path.
//
// # Note Projection
//
// A record whose schema name is "ssp_note" and whose first field is a
// populated 2D vector projects into a Note; any other shape at that name
// is an encoding error. Records under any other name are preserved as
// Objects with their decoded field values intact.
package mapfile

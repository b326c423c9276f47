package sspm

import (
	"io"

	"github.com/Neumenon/mapcodec/binio"
	"github.com/Neumenon/mapcodec/mapfile"
)

// Encode serializes a map into the SSPM layout. Section offsets are not
// known until each variable section has been written, so an 80-byte
// zero placeholder goes out first and is back-patched with the real
// (offset, length) pairs once the record stream is complete.
//
// Only note records are emitted; the schema table of an encoded file is
// fixed to the single reserved note entry. The sink must support seeking;
// encode into a binio.Buffer when it does not.
func Encode(m *mapfile.Map, w io.WriteSeeker) error {
	bw, err := binio.NewWriter(w)
	if err != nil {
		return err
	}

	if err := bw.WriteBytes(magic[:]); err != nil {
		return err
	}
	if err := bw.WriteUint16(formatVersion); err != nil {
		return err
	}
	if err := bw.WriteBytes(make([]byte, 4)); err != nil { // unused header bytes
		return err
	}

	// The hash slot is carried by the layout but never populated or
	// verified by any consumer.
	if err := bw.WriteHash([20]byte{}); err != nil {
		return err
	}
	if err := bw.WriteUint32(m.Length); err != nil {
		return err
	}
	if err := bw.WriteUint32(uint32(len(m.Notes))); err != nil {
		return err
	}
	if err := bw.WriteUint32(uint32(len(m.Notes) + len(m.Objects))); err != nil {
		return err
	}
	if err := bw.WriteUint8(m.Difficulty); err != nil {
		return err
	}
	if err := bw.WriteUint16(0); err != nil { // star rating, unused
		return err
	}
	if err := bw.WriteBool(m.HasAudio()); err != nil {
		return err
	}
	if err := bw.WriteBool(m.HasCover()); err != nil {
		return err
	}
	if err := bw.WriteBool(false); err != nil { // has-mod
		return err
	}

	tableOff := bw.Position()
	if err := bw.WriteBytes(make([]byte, 80)); err != nil { // offset-table placeholder
		return err
	}

	if err := bw.WriteString(m.ID); err != nil {
		return err
	}
	if err := bw.WriteString(m.Title); err != nil {
		return err
	}
	song := m.Song
	if song == "" {
		song = m.Title
	}
	if err := bw.WriteString(song); err != nil {
		return err
	}

	if err := bw.WriteUint16(uint16(len(m.Mappers))); err != nil {
		return err
	}
	for _, mapper := range m.Mappers {
		if err := bw.WriteString(mapper); err != nil {
			return err
		}
	}

	var offs sectionOffsets

	// Custom data carries exactly the difficulty display name, when one
	// exists.
	if m.DifficultyName != "" {
		offs.customOff = uint64(bw.Position())
		if err := bw.WriteUint16(1); err != nil {
			return err
		}
		if err := bw.WriteString("difficulty_name"); err != nil {
			return err
		}
		if err := bw.WriteUint8(uint8(mapfile.KindString)); err != nil {
			return err
		}
		if err := bw.WriteString(m.DifficultyName); err != nil {
			return err
		}
		offs.customLen = uint64(bw.Position()) - offs.customOff
	} else {
		if err := bw.WriteUint16(0); err != nil {
			return err
		}
	}

	offs.audioOff = uint64(bw.Position())
	if len(m.Audio) > 0 {
		if err := bw.WriteBytes(m.Audio); err != nil {
			return err
		}
	}
	offs.audioLen = uint64(bw.Position()) - offs.audioOff

	if len(m.Cover) > 0 {
		offs.coverOff = uint64(bw.Position())
		if err := bw.WriteBytes(m.Cover); err != nil {
			return err
		}
		offs.coverLen = uint64(bw.Position()) - offs.coverOff
	}

	offs.schemaOff = uint64(bw.Position())
	if err := writeNoteSchema(bw); err != nil {
		return err
	}
	offs.schemaLen = uint64(bw.Position()) - offs.schemaOff

	offs.recordOff = uint64(bw.Position())
	for _, note := range m.Notes {
		if err := bw.WriteUint32(note.Millisecond); err != nil {
			return err
		}
		if err := bw.WriteUint8(0x00); err != nil { // the single note schema id
			return err
		}
		if err := bw.WriteVec2(note.Position); err != nil {
			return err
		}
	}
	offs.recordLen = uint64(bw.Position()) - offs.recordOff

	// Back-patch the offset table, then return to the end for the
	// trailing export signature.
	if _, err := bw.Seek(tableOff, io.SeekStart); err != nil {
		return err
	}
	for _, v := range []uint64{
		offs.customOff, offs.customLen,
		offs.audioOff, offs.audioLen,
		offs.coverOff, offs.coverLen,
		offs.schemaOff, offs.schemaLen,
		offs.recordOff, offs.recordLen,
	} {
		if err := bw.WriteUint64(v); err != nil {
			return err
		}
	}
	if _, err := bw.Seek(0, io.SeekEnd); err != nil {
		return err
	}

	return bw.WriteString(exportSignature)
}

// writeNoteSchema writes the fixed single-entry schema table every encoded
// file carries: ssp_note with one 2D-vector slot.
func writeNoteSchema(bw *binio.Writer) error {
	if err := bw.WriteUint8(1); err != nil {
		return err
	}
	if err := bw.WriteString(mapfile.NoteRecordName); err != nil {
		return err
	}
	return bw.WriteBytes([]byte{0x01, uint8(mapfile.KindVec2), 0x00})
}

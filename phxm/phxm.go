// Package phxm decodes the PHXM archive map container.
//
// A PHXM file is a zip archive with a JSON metadata side-entry, a binary
// note-stream entry, and optional named media entries:
//
//	metadata.json    structured map metadata (id, media flags, artist,
//	                 title, mappers, difficulty, note count)
//	objects.phxmo    binary note stream: u32 type count (unused), u32 note
//	                 count, then per note a u32 timestamp and a quantized
//	                 2D position
//	audio.<ext>      raw audio, present when the metadata flag is set
//	cover.png        cover image, same gating
//	video.mp4        background video, same gating
//
// There is no schema table; the note stream has a fixed shape, and a
// decoded PHXM map never carries generic records. Encoding PHXM is not
// implemented.
package phxm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/klauspost/compress/zip"

	"github.com/Neumenon/mapcodec/binio"
	"github.com/Neumenon/mapcodec/mapfile"
)

// compactBias is added to each one-byte quantized axis on decode. PHXM's
// compact mapping is one unit off from SSPM's; the two are calibrated
// independently against their exporters.
const compactBias = -1

// metadata mirrors the metadata.json entry. Field names on disk are
// PascalCase with ID fully capitalized.
type metadata struct {
	ID             string   `json:"ID"`
	HasAudio       bool     `json:"HasAudio"`
	HasCover       bool     `json:"HasCover"`
	HasVideo       bool     `json:"HasVideo"`
	AudioExtension string   `json:"AudioExtension"`
	Artist         string   `json:"Artist"`
	Title          string   `json:"Title"`
	Mappers        []string `json:"Mappers"`
	Difficulty     uint8    `json:"Difficulty"`
	DifficultyName string   `json:"DifficultyName"`
	NotesCount     uint32   `json:"NotesCount"`
}

// Decode reads one PHXM archive and materializes the map. The duration is
// derived from the last note's timestamp since the archive stores none.
func Decode(r io.ReaderAt, size int64) (*mapfile.Map, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &mapfile.FormatError{Reason: fmt.Sprintf("not a PHXM archive: %v", err)}
	}

	metaRaw, err := readEntry(archive, "metadata.json")
	if err != nil {
		return nil, err
	}
	var meta metadata
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, &mapfile.EncodingError{Reason: fmt.Sprintf("metadata.json: %v", err), Offset: -1}
	}

	stream, err := readEntry(archive, "objects.phxmo")
	if err != nil {
		return nil, err
	}
	notes, err := decodeNotes(stream)
	if err != nil {
		return nil, err
	}

	m := &mapfile.Map{
		ID:             meta.ID,
		Title:          meta.Title,
		Song:           meta.Title,
		Artists:        []string{meta.Artist},
		Mappers:        meta.Mappers,
		Difficulty:     meta.Difficulty,
		DifficultyName: meta.DifficultyName,
		Notes:          notes,
		Format:         mapfile.FormatPHXM,
	}
	if len(notes) > 0 {
		m.Length = notes[len(notes)-1].Millisecond
	}

	if meta.HasAudio {
		m.Audio, err = readEntry(archive, "audio."+meta.AudioExtension)
		if err != nil {
			return nil, err
		}
		m.AudioExt = meta.AudioExtension
	}
	if meta.HasCover {
		m.Cover, err = readEntry(archive, "cover.png")
		if err != nil {
			return nil, err
		}
	}
	if meta.HasVideo {
		m.Video, err = readEntry(archive, "video.mp4")
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

// DecodeBytes decodes a PHXM archive held fully in memory.
func DecodeBytes(data []byte) (*mapfile.Map, error) {
	return Decode(bytes.NewReader(data), int64(len(data)))
}

// Encode is declared for symmetry with the SSPM codec but the PHXM
// exporter format is not implemented.
func Encode(m *mapfile.Map, w io.Writer) error {
	return &mapfile.UnsupportedError{Feature: "PHXM encoding"}
}

func readEntry(archive *zip.Reader, name string) ([]byte, error) {
	f, err := archive.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &mapfile.FormatError{Reason: fmt.Sprintf("archive entry %q missing", name)}
		}
		return nil, &mapfile.FormatError{Reason: fmt.Sprintf("archive entry %q: %v", name, err)}
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &mapfile.EncodingError{Reason: fmt.Sprintf("archive entry %q: %v", name, err), Offset: -1}
	}
	return data, nil
}

// decodeNotes reads the fixed-layout note stream.
func decodeNotes(stream []byte) ([]mapfile.Note, error) {
	br, err := binio.NewReader(bytes.NewReader(stream))
	if err != nil {
		return nil, err
	}
	if _, err := br.ReadUint32(); err != nil { // type count, unused
		return nil, err
	}
	count, err := br.ReadUint32()
	if err != nil {
		return nil, err
	}

	// A note is at least 7 bytes; bound the allocation by what the
	// stream could actually hold.
	hint := uint64(len(stream)) / 7
	if uint64(count) < hint {
		hint = uint64(count)
	}
	notes := make([]mapfile.Note, 0, hint)
	for i := uint32(0); i < count; i++ {
		ms, err := br.ReadUint32()
		if err != nil {
			return nil, err
		}
		pos, err := br.ReadVec2(compactBias)
		if err != nil {
			return nil, err
		}
		notes = append(notes, mapfile.Note{Millisecond: ms, Position: pos})
	}
	return notes, nil
}

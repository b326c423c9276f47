package mapfile

// Format distinguishes the two container kinds a Map can come from.
type Format uint8

const (
	FormatSSPM Format = iota
	FormatPHXM
)

// String returns the container name.
func (f Format) String() string {
	switch f {
	case FormatSSPM:
		return "SSPM"
	case FormatPHXM:
		return "PHXM"
	default:
		return "unknown"
	}
}

// Map is a fully decoded rhythm-game map. A decoder constructs it once;
// it is not mutated afterward except to be re-encoded.
type Map struct {
	ID     string
	Length uint32 // total duration in milliseconds
	Title  string // map display name
	Song   string // song display name

	Artists []string
	Mappers []string

	Difficulty     uint8
	DifficultyName string

	Audio    []byte // raw audio bytes, nil when the container carries none
	AudioExt string // audio file extension without the dot (PHXM only)
	Cover    []byte // raw cover-image bytes
	Video    []byte // raw video bytes (PHXM only)

	Notes   []Note
	Objects []Object // records decoded but not projected into a domain entity

	// Custom holds the typed custom-data block keyed by field name.
	// Duplicate names overwrite; ordering is not preserved.
	Custom map[string]Value

	Format Format
}

// HasAudio reports whether the map carries audio bytes.
func (m *Map) HasAudio() bool {
	return len(m.Audio) > 0
}

// HasCover reports whether the map carries a cover image.
func (m *Map) HasCover() bool {
	return len(m.Cover) > 0
}

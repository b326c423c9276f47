package mapfile

import "fmt"

// FormatError reports input that is not a supported map container at all:
// a bad magic signature, an unsupported version, or a PHXM payload that is
// not a readable archive.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "mapfile: " + e.Reason
}

// EncodingError reports structurally invalid content inside an otherwise
// recognized container: non-UTF-8 string payloads, unknown type tags,
// records referencing unregistered schema ids, or a record shape that does
// not match its schema. Offset is the stream position where the problem
// was detected, or -1 when no position applies.
type EncodingError struct {
	Reason string
	Offset int64
}

func (e *EncodingError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("mapfile: %s at offset %d", e.Reason, e.Offset)
	}
	return "mapfile: " + e.Reason
}

// TruncatedError reports a short read: the container declared more content
// than the stream holds.
type TruncatedError struct {
	Offset int64
	Err    error
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("mapfile: truncated input at offset %d", e.Offset)
}

func (e *TruncatedError) Unwrap() error {
	return e.Err
}

// UnsupportedError reports a feature the format declares but the codec does
// not implement: nested-sequence, 3D-vector and signed-64 field kinds, and
// PHXM encoding.
type UnsupportedError struct {
	Feature string
}

func (e *UnsupportedError) Error() string {
	return "mapfile: unsupported: " + e.Feature
}

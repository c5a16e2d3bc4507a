package segment

import (
	"fmt"
	"strconv"
	"strings"
)

// RecordID references a single record within a segment: the key of the
// segment holding the record plus the offset of the record in it.
//
// A RecordID is an immutable value, comparable with ==. Its text form is
// "<hex segment key>:<decimal offset>" and is what gets written to the
// journal. Parsing the text form can fail on malformed input; whether the
// referenced segment still exists is a separate question, answered by a
// Store.
type RecordID struct {
	Segment Key
	Offset  uint32
}

// NewRecordID builds a record id from a segment key and a record offset
func NewRecordID(segment Key, offset uint32) RecordID {
	return RecordID{Segment: segment, Offset: offset}
}

// ParseRecordID parses the text form of a record id.
//
// It fails with a MalformedRecordID error when the input does not parse.
// It does not check that the referenced segment exists.
func ParseRecordID(s string) (RecordID, error) {
	sep := strings.LastIndexByte(s, ':')
	if sep < 0 {
		return RecordID{}, &MalformedRecordID{Text: s, reason: "missing offset separator"}
	}
	key, err := KeyFromString(s[:sep])
	if err != nil {
		return RecordID{}, &MalformedRecordID{Text: s, reason: err.Error()}
	}
	offset, err := strconv.ParseUint(s[sep+1:], 10, 32)
	if err != nil {
		return RecordID{}, &MalformedRecordID{Text: s, reason: "invalid offset"}
	}
	return RecordID{Segment: key, Offset: uint32(offset)}, nil
}

func (id RecordID) String() string {
	return id.Segment.String() + ":" + strconv.FormatUint(uint64(id.Offset), 10)
}

// MalformedRecordID is an error that's returned when parsing an invalid
// record id representation.
type MalformedRecordID struct {
	Text   string
	reason string
}

func (m *MalformedRecordID) Error() string {
	return fmt.Sprintf("malformed record id %q: %s", m.Text, m.reason)
}

package journal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mjayprateek/jackrabbit-oak/pkg/journal/status"
)

// label written between the revision and the timestamp on every line
const label = "root"

// Entry is a single head transition recorded in the journal.
//
// Its line form is "<revision> root <timestamp millis>".
type Entry struct {
	// Revision is the text form of the record id committed as the new head
	Revision string

	// Timestamp is the commit wall-clock time in milliseconds since the epoch
	Timestamp int64
}

// NewEntry builds an entry for a revision, stamped with the current wall-clock time
func NewEntry(revision string) Entry {
	return Entry{
		Revision:  revision,
		Timestamp: time.Now().UnixMilli(),
	}
}

// ParseEntry parses a single journal line
func ParseEntry(line string) (Entry, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 || fields[1] != label {
		return Entry{}, status.ErrMalformedEntry.Wrap(fmt.Errorf("unexpected line %q", line))
	}
	ts, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Entry{}, status.ErrMalformedEntry.Wrap(fmt.Errorf("invalid timestamp in line %q", line))
	}
	return Entry{Revision: fields[0], Timestamp: ts}, nil
}

func (e Entry) String() string {
	return e.Revision + " " + label + " " + strconv.FormatInt(e.Timestamp, 10)
}

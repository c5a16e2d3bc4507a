// Package revision tracks the current head record id of a segment store
// and journals head transitions for crash recovery.
//
// The Revisions cell serializes concurrent head updates under two access
// patterns: an optimistic compare-and-swap path for frequent, cheap
// commits and a blocking functional update path for rare, expensive ones
// (compaction, checkpoints). Flush durably appends the current head to
// the journal, after a caller supplied callback has guaranteed that the
// data behind that head is itself persisted; on restart, Bind scans the
// journal backward and restores the latest head whose segment still
// exists, tolerating torn tail writes.
package revision

/*
Package oak provides the revision tracking and crash-recovery journal of a
segment-based storage engine.

The heart of the module is pkg/revision: a revision cell serializing
concurrent updates to the head record id of a persistent structure and
journaling head transitions, so that the last valid committed state can be
recovered after a crash. pkg/journal holds the append-only journal file
machinery and pkg/segment the record id value types plus the narrow store
interface used during recovery.
*/
package oak

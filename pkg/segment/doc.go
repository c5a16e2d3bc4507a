// Package segment defines the value types used to reference committed
// state in a segment store: content-addressed segment keys and record
// ids pointing at a record within a segment.
//
// The package also declares the narrow Store interface through which the
// revision machinery asks an actual segment store whether a referenced
// segment still exists.
package segment

// Package geoprobe holds the shared types for identifying and opening vector
// geodata files through a catalog of format drivers.
//
// Drivers live in their own packages (see [github.com/geoprobe/geoprobe/nas])
// and register a descriptor with the process-wide catalog in
// [github.com/geoprobe/geoprobe/driver]. Identification works on a bounded
// prefix of the input provided by [github.com/geoprobe/geoprobe/stream]; a
// driver answers with a [Verdict] and never reports a negative identification
// as an error.
package geoprobe

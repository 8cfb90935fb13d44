package geoprobe

import (
	"bytes"
	"fmt"
)

// Verdict is the outcome of asking a driver whether it recognizes a stream.
type Verdict uint

//go:generate stringer -type=Verdict -linecomment

const (
	// Reject means the stream is not in the driver's format, or the driver
	// recognized it but is not configured to handle it. It is a negative
	// classification, not an error.
	Reject Verdict = iota // reject
	// Accept means content evidence matched.
	Accept // accept
	// ForceAccept means the caller pinned identification to exactly this
	// driver and the structural check passed; content was not inspected.
	ForceAccept // force_accept
)

// Matched reports whether the verdict is a positive identification.
func (v Verdict) Matched() bool {
	return v == Accept || v == ForceAccept
}

// MarshalText implements [encoding.TextMarshaler].
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (v *Verdict) UnmarshalText(b []byte) error {
	// This depends on the contents of verdict_string.go.
	for n := range len(_Verdict_index) - 1 {
		if bytes.Equal(b, []byte(_Verdict_name[_Verdict_index[n]:_Verdict_index[n+1]])) {
			*v = Verdict(n)
			return nil
		}
	}
	return fmt.Errorf("unknown verdict %q", string(b))
}

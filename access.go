package geoprobe

// Access is the access mode requested when opening a dataset.
type Access uint

const (
	AccessReadOnly Access = iota
	AccessUpdate
)

func (a Access) String() string {
	switch a {
	case AccessReadOnly:
		return "read-only"
	case AccessUpdate:
		return "update"
	default:
		return "unknown"
	}
}

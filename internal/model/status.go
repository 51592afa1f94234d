package model

// StatusKind is the tagged-variant form of parse_status recommended by the
// design notes, kept as a small enum internally; only the JSON boundary
// (ParseStatus.MarshalJSON) deals in the numeric codes spec.md defines.
type StatusKind int

const (
	StatusOK StatusKind = iota
	StatusSorted
	StatusJoined
	StatusJoinedSorted
	StatusBroken
)

var statusDetail = map[StatusKind]string{
	StatusOK:           "",
	StatusSorted:       "Sorted",
	StatusJoined:       "Joined",
	StatusJoinedSorted: "Joined Sorted",
	StatusBroken:       "Broken",
}

var statusCode = map[StatusKind]uint64{
	StatusOK:           0,
	StatusSorted:       101,
	StatusJoined:       102,
	StatusJoinedSorted: 103,
	StatusBroken:       501,
}

// ParseStatus is the in-band quality report a geometry-healing attempt
// produces: which stage (if any) collapsed the input to a single
// line-string, or that none did.
type ParseStatus struct {
	Kind StatusKind
}

// Code returns the numeric status code defined by spec.md §4.5.
func (p ParseStatus) Code() uint64 {
	return statusCode[p.Kind]
}

// Detail returns the human-readable status string defined by spec.md §4.5.
func (p ParseStatus) Detail() string {
	return statusDetail[p.Kind]
}

// Broken reports whether the status represents an unhealable geometry.
func (p ParseStatus) Broken() bool {
	return p.Kind == StatusBroken
}

// MarshalJSON renders the status as {"code": n, "detail": "..."}, the only
// place the numeric codes are meant to surface.
func (p ParseStatus) MarshalJSON() ([]byte, error) {
	return marshalStatus(p.Code(), p.Detail())
}

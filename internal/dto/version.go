package dto

// Version selects the wire shape for versioned responses. The token comes
// from the route group the request arrived on, not from the object type.
type Version int

const (
	V1 Version = iota + 1
	V2
)

// DefaultVersion is what unversioned internal callers get.
const DefaultVersion = V2

package empty

// Status has no directive.
type Status int

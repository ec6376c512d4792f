package http1

// phase is the grammar phase that decides which interpreter a complete line is routed to.
// It only ever moves from eRequestLine to eHeader.
type phase uint8

const (
	eRequestLine phase = iota + 1
	eHeader
)

// lineStatus is the outcome of a single scanLine call.
type lineStatus uint8

const (
	lineComplete lineStatus = iota + 1
	lineMalformed
	lineIncomplete
)

// crlfLen is the length of the only accepted line terminator.
const crlfLen = len("\r\n")

package http1

import "bytes"

// Cursor holds the offsets into the parser buffer. The following always holds:
//
//	0 <= LineStart <= Scanned <= Filled <= len(buffer)
//
// Bytes before LineStart are interpreted and never read again, bytes in [LineStart, Scanned)
// belong to the line being assembled and bytes in [Scanned, Filled) weren't looked at yet.
type Cursor struct {
	LineStart int
	Scanned   int
	Filled    int
}

// scanLine looks for a line terminator in buff[scanned:filled] and returns the new scan
// cursor. On lineComplete the cursor points right past the terminator. A CR being the last
// available byte is left unconsumed, so it's examined again as soon as more bytes arrive.
func scanLine(buff []byte, scanned, filled int) (lineStatus, int) {
	pos := bytes.IndexAny(buff[scanned:filled], "\r\n")
	if pos == -1 {
		return lineIncomplete, filled
	}

	scanned += pos
	if buff[scanned] == '\n' {
		// the position 0 has no preceding byte at all
		if scanned > 0 && buff[scanned-1] == '\r' {
			return lineComplete, scanned + 1
		}

		return lineMalformed, scanned
	}

	if scanned+1 == filled {
		return lineIncomplete, scanned
	}

	if buff[scanned+1] != '\n' {
		return lineMalformed, scanned
	}

	return lineComplete, scanned + crlfLen
}

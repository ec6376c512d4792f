package strutil

import "github.com/indigo-web/utils/uf"

// Escape replaces every non-printable ASCII character by a backslash sequence, so
// client-supplied values can be safely logged. The string is returned as is, unless there's
// anything to escape.
func Escape(str string) string {
	var (
		buff   []byte
		offset int
	)

	for i := 0; i < len(str); i++ {
		if !isASCIIPrintable(str[i]) {
			if buff == nil {
				buff = allocBuff(len(str))
			}

			buff = append(buff, str[offset:i]...)
			buff = append(buff, '\\', escapeByte(str[i]))
			offset = i + 1
		}
	}

	if len(buff) == 0 {
		return str
	}

	return uf.B2S(append(buff, str[offset:]...))
}

func isASCIIPrintable(c byte) bool {
	return c >= 0x20 && c <= 0x7e
}

var escapeTable = [0x20]byte{
	0x0: '0',
	0x7: 'a',
	0x8: 'b',
	0x9: 't',
	0xA: 'n',
	0xB: 'v',
	0xC: 'f',
	0xD: 'r',
}

func escapeByte(b byte) byte {
	if b < 0x20 && escapeTable[b] != 0 {
		return escapeTable[b]
	}

	return '?'
}

func allocBuff(strsize int) []byte {
	if strsize <= 25 {
		return make([]byte, 0, 40)
	}

	return make([]byte, 0, strsize+strsize/2)
}

package mwlmap

import "bytes"

// scanForGarbage is a single non-consuming
// check against the residual bytes. A recognized-but-unmodeled diagnostic
// print yields ErrUnimplemented; pure trailing NUL padding is accepted;
// anything else is ErrGarbageFound.
//
// The NUL tolerance exists because Gamecube ISO Tool
// (http://www.wiibackupmanager.co.uk/gcit.html) has a bug that appends null
// byte padding to the next multiple of 32 bytes at the end of any file it
// extracts — enough afflicted linker maps exist to justify the special case.
func scanForGarbage(c *cursor) error {
	if c.eof() {
		return nil
	}
	for _, d := range garbageDiagnostics {
		if c.peek(d.re) {
			return newScanError(ErrUnimplemented, c.line)
		}
	}
	if allNUL(c.remaining()) {
		return nil
	}
	return newScanError(ErrGarbageFound, c.line)
}

func allNUL(b []byte) bool {
	return bytes.Count(b, []byte{0}) == len(b)
}

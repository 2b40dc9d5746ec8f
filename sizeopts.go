package mwlmap

import "regexp"

// SizeOptimizations is a marker-only portion: LinktimeSizeDecreasingOptimizations
// and LinktimeSizeIncreasingOptimizations have never been observed with a
// non-empty body, so scanning one only records that the header
// was present; Print re-emits just the two-line header.
type SizeOptimizations struct {
	Range VersionRange
}

func probeSizeOptimizations(c *cursor, header *regexp.Regexp) *SizeOptimizations {
	if c.match(header) == nil {
		return nil
	}
	return &SizeOptimizations{Range: fullVersionRange()}
}

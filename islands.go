package mwlmap

import "regexp"

// IslandUnit is one linker-generated bridge (branch island) or mode-switch
// thunk (mixed-mode island).
type IslandUnit struct {
	Name       string
	CreatedFor string
	IsSafe     bool
}

// Islands holds the ordered unit list for either MixedModeIslands or
// BranchIslands — the two portions share an identical grammar and differ
// only in header and keyword text. A portion whose header appeared with zero
// units is still retained; Branch Islands in particular have only ever been
// observed empty (Skylanders Swap Force), and the unit syntax is partly
// conjecture from datamining MWLDEPPC.
type Islands struct {
	Units []IslandUnit
	Range VersionRange
}

func scanIslands(c *cursor, re, reSafe *regexp.Regexp) *Islands {
	is := &Islands{Range: fullVersionRange()}
	is.Range.narrowMin(Version4_1_build51213)
	for {
		if g := c.match(re); g != nil {
			is.Units = append(is.Units, IslandUnit{Name: str(g[1]), CreatedFor: str(g[2])})
			continue
		}
		if g := c.match(reSafe); g != nil {
			is.Units = append(is.Units, IslandUnit{Name: str(g[1]), CreatedFor: str(g[2]), IsSafe: true})
			continue
		}
		break
	}
	return is
}

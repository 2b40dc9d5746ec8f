package mwlmap

// LinkerOptsKind tags the four mutually exclusive per-line LinkerOpts
// templates.
type LinkerOptsKind int

const (
	LinkerOptNotNear LinkerOptsKind = iota
	LinkerOptNotComputed
	LinkerOptOptimized
	LinkerOptDisassembleError
)

// LinkerOptsUnit is one addressing-optimization diagnostic line:
// "MODULE/ NAME()/ REFERENCE - ...". DisassembleError lines carry no
// reference name.
type LinkerOptsUnit struct {
	Kind          LinkerOptsKind
	ModuleName    string
	Name          string
	ReferenceName string
}

// LinkerOpts is the ordered sequence of LinkerOptsUnit entries for one map.
type LinkerOpts struct {
	Units []LinkerOptsUnit
	Range VersionRange
}

func scanLinkerOpts(c *cursor) (*LinkerOpts, error) {
	lo := &LinkerOpts{Range: fullVersionRange()}
	for {
		if g := c.match(reLinkerOptsNotNear); g != nil {
			lo.Units = append(lo.Units, LinkerOptsUnit{Kind: LinkerOptNotNear, ModuleName: str(g[1]), Name: str(g[2]), ReferenceName: str(g[3])})
			continue
		}
		if g := c.match(reLinkerOptsDisassembleErr); g != nil {
			lo.Units = append(lo.Units, LinkerOptsUnit{Kind: LinkerOptDisassembleError, ModuleName: str(g[1]), Name: str(g[2])})
			continue
		}
		if g := c.match(reLinkerOptsNotComputed); g != nil {
			lo.Units = append(lo.Units, LinkerOptsUnit{Kind: LinkerOptNotComputed, ModuleName: str(g[1]), Name: str(g[2]), ReferenceName: str(g[3])})
			continue
		}
		// I have not seen a single linker map with this.
		if g := c.match(reLinkerOptsOptimized); g != nil {
			lo.Units = append(lo.Units, LinkerOptsUnit{Kind: LinkerOptOptimized, ModuleName: str(g[1]), Name: str(g[2]), ReferenceName: str(g[3])})
			continue
		}
		break
	}
	if len(lo.Units) == 0 {
		return nil, nil
	}
	lo.Range.narrowMin(Version4_2_build142)
	return lo, nil
}

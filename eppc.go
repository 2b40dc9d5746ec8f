package mwlmap

import "fmt"

// EPPCPatternMatching is the "EPPC_PatternMatching" portion: a real-time
// report of duplicate-function merging followed by a redundant per-file
// summary of what was folded.
type EPPCPatternMatching struct {
	MergingUnits []MergingUnit
	FoldingUnits []FoldingUnit
	Range        VersionRange
}

// MergingUnit describes one function duplicated by another, possibly
// replaced by a branch, possibly reached via an interchange step first.
type MergingUnit struct {
	FirstName       string
	SecondName      string
	Size            int
	WillBeReplaced  bool
	WasInterchanged bool
}

// FoldingUnit is one object's summary of functions folded together.
type FoldingUnit struct {
	ObjectName string
	Entries    []FoldingEntry
}

// FoldingEntry is one (first, second) pair folded within a FoldingUnit. The
// new-branch-function name always repeats FirstName; a mismatch is fatal at
// scan time, so the field doubles as a has-new-branch flag.
type FoldingEntry struct {
	FirstName         string
	SecondName        string
	Size              int
	NewBranchFunction string
}

func scanEPPCPatternMatching(c *cursor, warn *warningSink) (*EPPCPatternMatching, error) {
	e := &EPPCPatternMatching{Range: fullVersionRange()}

	// mergingLookup and foldingLookup detect names seen twice across the
	// whole portion; a per-object lookup in the folding phase detects a
	// first_name folded twice within one object's summary.
	mergingLookup := map[string]bool{}
	foldingLookup := map[string]bool{}

	// Merging phase.
	for {
		unitLine := c.line
		if g := c.match(reEPPCMergingDup); g != nil {
			first, second, size := str(g[1]), str(g[2]), decInt(g[3])
			unit := MergingUnit{FirstName: first, SecondName: second, Size: size}
			if r := c.match(reEPPCMergingReplaced); r != nil {
				if str(r[1]) != first {
					return nil, newScanError(ErrEPPCPatternMatchingMergingFirstNameMismatch, c.line)
				}
				if str(r[2]) != second {
					return nil, newScanError(ErrEPPCPatternMatchingMergingSecondNameMismatch, c.line)
				}
				unit.WillBeReplaced = true
			}
			if mergingLookup[first] {
				// Could be a false positive: code merging has no information
				// about where the symbol came from.
				warn.emit(warn.cfg.ODRViolationEPPCMerging, unitLine, fmt.Sprintf("%q seen again", first))
			}
			mergingLookup[first] = true
			e.MergingUnits = append(e.MergingUnits, unit)
			continue
		}
		if g := c.match(reEPPCInterchanged); g != nil {
			first, second, size := str(g[1]), str(g[2]), decInt(g[3])
			unit := MergingUnit{FirstName: first, SecondName: second, Size: size, WasInterchanged: true}
			if r := c.match(reEPPCMergingReplaced); r != nil {
				if str(r[1]) != first {
					return nil, newScanError(ErrEPPCPatternMatchingMergingFirstNameMismatch, c.line)
				}
				if str(r[2]) != second {
					return nil, newScanError(ErrEPPCPatternMatchingMergingSecondNameMismatch, c.line)
				}
				unit.WillBeReplaced = true
			}
			epilogue := c.match(reEPPCMergingDup)
			if epilogue == nil {
				return nil, newScanError(ErrEPPCPatternMatchingMergingInterchangeMissingEpilogue, c.line)
			}
			if str(epilogue[1]) != first {
				return nil, newScanError(ErrEPPCPatternMatchingMergingFirstNameMismatch, c.line)
			}
			if str(epilogue[2]) != second {
				return nil, newScanError(ErrEPPCPatternMatchingMergingSecondNameMismatch, c.line)
			}
			if decInt(epilogue[3]) != size {
				return nil, newScanError(ErrEPPCPatternMatchingMergingSizeMismatch, c.line)
			}
			if mergingLookup[first] {
				warn.emit(warn.cfg.ODRViolationEPPCMerging, unitLine, fmt.Sprintf("%q seen again", first))
			}
			mergingLookup[first] = true
			e.MergingUnits = append(e.MergingUnits, unit)
			continue
		}
		break
	}

	// Folding phase.
	for {
		headerLine := c.line
		hdr := c.match(reEPPCFoldingHeader)
		if hdr == nil {
			break
		}
		objectName := str(hdr[1])
		if foldingLookup[objectName] {
			// The "Code folded in file:" line sits three lines below the
			// header match's start.
			warn.emit(warn.cfg.FoldingRepeatObject, headerLine+3,
				fmt.Sprintf("detected repeat-name object %q", objectName))
		}
		foldingLookup[objectName] = true
		unit := FoldingUnit{ObjectName: objectName}
		unitLookup := map[string]bool{}
		for {
			entryLine := c.line
			if g := c.match(reEPPCFoldingDupBranch); g != nil {
				first, second, size, branch := str(g[1]), str(g[2]), decInt(g[3]), str(g[4])
				// It is my assumption that these will always match.
				if branch != first {
					return nil, newScanError(ErrEPPCPatternMatchingFoldingNewBranchFunctionNameMismatch, c.line)
				}
				if unitLookup[first] {
					warn.emit(warn.cfg.ODRViolationEPPCFolding, entryLine,
						fmt.Sprintf("%q seen again in %q", first, objectName))
				}
				unitLookup[first] = true
				unit.Entries = append(unit.Entries, FoldingEntry{FirstName: first, SecondName: second, Size: size, NewBranchFunction: branch})
				continue
			}
			if g := c.match(reEPPCFoldingDup); g != nil {
				first := str(g[1])
				if unitLookup[first] {
					warn.emit(warn.cfg.ODRViolationEPPCFolding, entryLine,
						fmt.Sprintf("%q seen again in %q", first, objectName))
				}
				unitLookup[first] = true
				unit.Entries = append(unit.Entries, FoldingEntry{FirstName: first, SecondName: str(g[2]), Size: decInt(g[3])})
				continue
			}
			break
		}
		e.FoldingUnits = append(e.FoldingUnits, unit)
	}

	if len(e.MergingUnits) == 0 && len(e.FoldingUnits) == 0 {
		return nil, nil // empty ones are dropped
	}
	e.Range.narrowMin(Version4_2_build142)
	return e, nil
}

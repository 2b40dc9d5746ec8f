package mwlmap

import "fmt"

// UnitKind tags the four SectionLayout unit variants (a tagged union rather
// than a class hierarchy).
type UnitKind int

const (
	UnitNormal UnitKind = iota
	UnitUnused
	UnitEntry
	UnitSpecial
)

// SectionLayoutStyle names the grammar one layout was scanned with.
// CodeWarrior for GCN 2.7 changed to four-column info and added *fill*
// symbols; the TLOZ-TP style is a 2.7-era layout post-processed to look like
// an older one (no prologue, no file offsets).
type SectionLayoutStyle int

const (
	StyleThreeColumn SectionLayoutStyle = iota
	StyleFourColumn
	StyleTLOZTP
)

// SectionLayoutUnit is one entry of a SectionLayout. Fields not relevant to
// Kind are left zero. EntryParent/EntryChildren are indices into the owning
// SectionLayout.Units slice, the same arena treatment as
// SymbolClosure.Nodes.
type SectionLayoutUnit struct {
	Kind UnitKind

	StartingAddress uint32
	Size            uint32
	VirtualAddress  uint32
	FileOffset      uint32
	Alignment       int
	Name            string
	ModuleName      string
	SourceName      string

	EntryParent   int // -1 if not a UnitEntry
	EntryChildren []int

	Trait UnitTrait
}

// SectionLayout is one `NAME section layout` portion.
type SectionLayout struct {
	Name  string
	Kind  SectionKind
	Style SectionLayoutStyle
	Units []SectionLayoutUnit
	Range VersionRange
}

// sectionLayoutScanContext carries the per-layout state the trait heuristics
// need: the compilation-unit lookup, the current compilation unit, and two
// flags. isSecondLap marks a BSS section's second pass for printing .comm
// symbols (or extabindex's pass after _eti_init_info) and persists across
// compilation-unit boundaries; isMultiSTTSection resets at every
// compilation-unit change.
type sectionLayoutScanContext struct {
	lookup      map[string]map[string][]int
	currCU      string
	priorModule string
	priorSource string
	hasPrior    bool

	isSecondLap       bool
	isMultiSTTSection bool
}

// scanSectionLayout scans one layout's unit list. The style has already been
// decided by the caller (prologue dispatch in scan.go, or one of the
// alternate entry modes).
func scanSectionLayout(c *cursor, name string, style SectionLayoutStyle, warn *warningSink) (*SectionLayout, error) {
	sl := &SectionLayout{Name: name, Kind: sectionKindOf(name), Style: style, Range: fullVersionRange()}
	switch style {
	case StyleThreeColumn:
		sl.Range.narrowMax(Version2_4_7_build107)
	case StyleFourColumn:
		sl.Range.narrowMin(Version3_0_4)
	case StyleTLOZTP:
		sl.Range = VersionRange{Min: Version3_0_4, Max: Version3_0_4}
	}

	ctx := &sectionLayoutScanContext{lookup: map[string]map[string][]int{}}

	record := func(u SectionLayoutUnit) int {
		idx := len(sl.Units)
		sl.Units = append(sl.Units, u)
		if ctx.lookup[ctx.currCU] == nil {
			ctx.lookup[ctx.currCU] = map[string][]int{}
		}
		ctx.lookup[ctx.currCU][u.Name] = append(ctx.lookup[ctx.currCU][u.Name], idx)
		return idx
	}

	resolveEntryParent := func(module, source, parentName string) (int, bool) {
		// An entry symbol always belongs to the same compilation-unit run as
		// its host: walking backward past a unit from a different unit means
		// the entry is orphaned.
		for i := len(sl.Units) - 1; i >= 0; i-- {
			u := &sl.Units[i]
			if u.ModuleName != module || u.SourceName != source {
				return -1, false
			}
			if u.Name == parentName {
				return i, true
			}
		}
		return -1, false
	}

	fourColumn := style == StyleFourColumn
	for {
		unitLine := c.line

		normalRe := reUnit3Normal
		if fourColumn {
			normalRe = reUnit4Normal
		}
		if g := c.match(normalRe); g != nil {
			unit := SectionLayoutUnit{Kind: UnitNormal, EntryParent: -1}
			unit.StartingAddress = hexU32(g[1])
			unit.Size = hexU32(g[2])
			unit.VirtualAddress = hexU32(g[3])
			if fourColumn {
				unit.FileOffset = hexU32(g[4])
				unit.Alignment = decInt(g[5])
				unit.Name, unit.ModuleName, unit.SourceName = str(g[6]), str(g[7]), str(g[8])
			} else {
				unit.Alignment = decInt(g[4])
				unit.Name, unit.ModuleName, unit.SourceName = str(g[5]), str(g[6]), str(g[7])
			}
			unit.Trait = deduceUsualSubtext(sl, ctx, &unit, warn, unitLine)
			record(unit)
			continue
		}

		if style != StyleTLOZTP {
			unusedRe := reUnit3Unused
			if fourColumn {
				unusedRe = reUnit4Unused
			}
			if g := c.match(unusedRe); g != nil {
				unit := SectionLayoutUnit{
					Kind:        UnitUnused,
					Size:        hexU32(g[1]),
					Name:        str(g[2]),
					ModuleName:  str(g[3]),
					SourceName:  str(g[4]),
					EntryParent: -1,
				}
				unit.Trait = deduceUsualSubtext(sl, ctx, &unit, warn, unitLine)
				record(unit)
				continue
			}
		}

		entryRe := reUnit3Entry
		switch style {
		case StyleFourColumn:
			entryRe = reUnit4Entry
		case StyleTLOZTP:
			entryRe = reUnitTLOZTPEntry
		}
		if g := c.match(entryRe); g != nil {
			var name, parentName, module, source string
			var saddr, size, vaddr, foff uint32
			saddr, size, vaddr = hexU32(g[1]), hexU32(g[2]), hexU32(g[3])
			if fourColumn {
				foff = hexU32(g[4])
				name, parentName, module, source = str(g[5]), str(g[6]), str(g[7]), str(g[8])
			} else {
				name, parentName, module, source = str(g[4]), str(g[5]), str(g[6]), str(g[7])
			}
			parentIdx, ok := resolveEntryParent(module, source, parentName)
			if !ok {
				return nil, newScanError(ErrSectionLayoutOrphanedEntry, c.line)
			}
			unit := SectionLayoutUnit{
				Kind:            UnitEntry,
				StartingAddress: saddr,
				Size:            size,
				VirtualAddress:  vaddr,
				FileOffset:      foff,
				Name:            name,
				ModuleName:      module,
				SourceName:      source,
				EntryParent:     parentIdx,
			}
			unit.Trait = deduceEntrySubtext(sl, ctx, &unit, warn, unitLine)
			idx := record(unit)
			sl.Units[parentIdx].EntryChildren = append(sl.Units[parentIdx].EntryChildren, idx)
			continue
		}

		if style != StyleThreeColumn {
			specialRe := reUnit4Special
			if style == StyleTLOZTP {
				specialRe = reUnitTLOZTPSpecial
			}
			if g := c.match(specialRe); g != nil {
				unit := SectionLayoutUnit{Kind: UnitSpecial, EntryParent: -1}
				unit.StartingAddress = hexU32(g[1])
				unit.Size = hexU32(g[2])
				unit.VirtualAddress = hexU32(g[3])
				var specialName string
				if style == StyleTLOZTP {
					unit.Alignment = decInt(g[4])
					specialName = str(g[5])
				} else {
					unit.FileOffset = hexU32(g[4])
					unit.Alignment = decInt(g[5])
					specialName = str(g[6])
				}
				switch specialName {
				case "*fill*":
					unit.Trait = TraitFill1
				case "**fill**":
					unit.Trait = TraitFill2
				default:
					return nil, newScanError(ErrSectionLayoutSpecialNotFill, c.line)
				}
				unit.Name = specialName
				// Special symbols don't belong to any compilation unit, so
				// they don't go in any lookup.
				sl.Units = append(sl.Units, unit)
				continue
			}
		}

		break
	}

	return sl, nil
}

// deduceUsualSubtext classifies a Normal or Unused unit, grounded on
// compilation-unit adjacency: STT_SECTION detection, repeat-name compilation
// units, BSS common vs. lcommon (with the .lcomm-after-.comm anomaly), and
// extabindex's _eti_init_info boundary.
func deduceUsualSubtext(sl *SectionLayout, ctx *sectionLayoutScanContext, u *SectionLayoutUnit, warn *warningSink, line int) UnitTrait {
	isSymbolSTTSection := u.Name == sl.Name
	cu := compilationUnitName(u.ModuleName, u.SourceName)

	if !ctx.hasPrior || u.ModuleName != ctx.priorModule || u.SourceName != ctx.priorSource {
		ctx.hasPrior = true
		ctx.priorModule, ctx.priorSource = u.ModuleName, u.SourceName
		ctx.isMultiSTTSection = false
		_, isRepeatCU := ctx.lookup[cu]
		ctx.currCU = cu
		if ctx.lookup[cu] == nil {
			ctx.lookup[cu] = map[string][]int{}
		}

		if isSymbolSTTSection {
			if isRepeatCU {
				// A BSS section's second lap for printing .comm symbols was
				// at some point given STT_SECTION symbols, making it
				// indistinguishable from a repeat-name compilation unit.
				// False positives ahoy.
				warn.emit(warn.cfg.RepeatNameCompilationUnit, line,
					fmt.Sprintf("detected repeat-name compilation unit %q (%s)", cu, sl.Name))
			}
			if ctx.isSecondLap {
				// This should never happen if the heuristics are accurate,
				// but they tend to have edge cases.
				if sl.Kind == SectionBSS {
					warn.emit(warn.cfg.LcommAfterComm, line, ".lcomm symbols found after .comm symbols")
				}
				ctx.isSecondLap = false
			}
			return TraitSection
		}
		if sl.Kind == SectionBSS {
			warn.emit(warn.cfg.CommonOnFlag, line,
				fmt.Sprintf("detected '-common on' flag in %q (%s)", cu, sl.Name))
			ctx.isSecondLap = true
			return TraitCommon
		}
		if sl.Kind == SectionExTab {
			if isRepeatCU {
				warn.emit(warn.cfg.RepeatNameCompilationUnit, line,
					fmt.Sprintf("detected repeat-name compilation unit %q (%s)", cu, sl.Name))
			}
			return TraitExTab
		}
		if sl.Kind == SectionExTabIndex {
			if u.Name == "_eti_init_info" && cu == "Linker Generated Symbol File" {
				ctx.isSecondLap = true
			} else if isRepeatCU && !ctx.isSecondLap {
				warn.emit(warn.cfg.RepeatNameCompilationUnit, line,
					fmt.Sprintf("detected repeat-name compilation unit %q (%s)", cu, sl.Name))
			}
			return TraitExTabIndex
		}
		return TraitNone
	}

	if isSymbolSTTSection {
		if sl.Kind == SectionCtors || sl.Kind == SectionDtors {
			warn.emit(warn.cfg.RepeatNameCompilationUnit, line,
				fmt.Sprintf("detected repeat-name compilation unit %q (%s)", cu, sl.Name))
		} else if !ctx.isMultiSTTSection {
			// Either this compilation unit was compiled with '-sym on', or
			// two repeat-name compilation units are adjacent to one another.
			warn.emit(warn.cfg.SymOnFlagSectionLayout, line,
				fmt.Sprintf("detected '-sym on' flag in %q (%s)", cu, sl.Name))
			ctx.isMultiSTTSection = true
		}
		return TraitSection
	}

	if len(ctx.lookup[cu][u.Name]) > 0 {
		// A strong hint of two or more repeat-name compilation units. This
		// does not detect identical names across section layouts.
		warn.emit(warn.cfg.ODRViolationSectionLayout, line,
			fmt.Sprintf("%q seen again in %q (%s)", u.Name, cu, sl.Name))
	}

	switch sl.Kind {
	case SectionCode, SectionZCode, SectionVLECode:
		return TraitFunction
	case SectionData:
		return TraitObject
	case SectionBSS:
		if ctx.isSecondLap {
			return TraitCommon
		}
		return TraitLCommon
	case SectionExTab:
		return TraitExTab
	case SectionExTabIndex:
		return TraitExTabIndex
	default:
		return TraitNone
	}
}

// deduceEntrySubtext classifies an entry symbol. It is never the STT_SECTION
// symbol, and it can never open a new compilation unit — that would
// inherently be an orphaned entry.
func deduceEntrySubtext(sl *SectionLayout, ctx *sectionLayoutScanContext, u *SectionLayoutUnit, warn *warningSink, line int) UnitTrait {
	cu := compilationUnitName(u.ModuleName, u.SourceName)
	if len(ctx.lookup[ctx.currCU][u.Name]) > 0 {
		warn.emit(warn.cfg.ODRViolationSectionLayout, line,
			fmt.Sprintf("%q seen again in %q (%s)", u.Name, cu, sl.Name))
	}
	return TraitNoType
}

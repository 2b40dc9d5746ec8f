package mwlmap

// Scan parses a complete linker-map byte buffer into a Map, following the
// standard entry mode. It returns the line number scanning
// stopped at (useful for error localization) alongside the Map and any fatal
// *ScanError.
func Scan(data []byte, cfg WarningConfig) (*Map, int, error) {
	if len(data) == 0 {
		return nil, 0, newScanError(ErrFail, 0)
	}
	c := newCursor(data)
	warn := newWarningSink(cfg)
	m := &Map{Range: fullVersionRange()}

	// NINTENDO_EAD_TRIMMED_LINKER_MAPS_GOTO_HERE: linker maps from Animal
	// Crossing and Doubutsu no Mori e+ were modified to strip out the Link
	// Map portion and UNUSED symbols, which also removed one of the Section
	// Layout header's preceding newlines; Doubutsu no Mori + went further
	// and left no preceding newlines at all (likewise TLOZ Ocarina of Time &
	// Master Quest and The Wind Waker's framework.map). Probe both trimmed
	// headers before requiring the entry-point header; on a hit the first
	// layout is scanned here and control skips straight to the ordinary
	// section-layout loop.
	skipPreamble := false
	if hdr := c.match(reSectionLayoutHeaderTrimmedA); hdr != nil {
		skipPreamble = true
		sl, err := scanOneSectionLayout(c, str(hdr[1]), warn)
		if err != nil {
			return nil, c.line, err
		}
		m.SectionLayouts = append(m.SectionLayouts, sl)
		m.Range.intersect(sl.Range)
	} else if hdr := c.match(reSectionLayoutHeaderTrimmedB); hdr != nil {
		skipPreamble = true
		sl, err := scanOneSectionLayout(c, str(hdr[1]), warn)
		if err != nil {
			return nil, c.line, err
		}
		m.SectionLayouts = append(m.SectionLayouts, sl)
		m.Range.intersect(sl.Range)
	}

	if !skipPreamble {
		hdr := c.match(reLinkMapHeader)
		if hdr == nil {
			// Absence means the file is not a Metrowerks linker map.
			return nil, c.line, newScanError(ErrEntryPointNameMissing, c.line)
		}
		m.EntryPointName = str(hdr[1])

		if sc, err := scanSymbolClosure(c, warn, &m.UnresolvedSymbols); err != nil {
			return nil, c.line, err
		} else if sc != nil {
			m.NormalSymbolClosure = sc
			m.Range.intersect(sc.Range)
		}

		if e, err := scanEPPCPatternMatching(c, warn); err != nil {
			return nil, c.line, err
		} else if e != nil {
			m.EPPCPatternMatching = e
			m.Range.intersect(e.Range)
		}

		// With '-listdwarf' and DWARF debugging information enabled, a second
		// symbol closure over the .dwarf and .debug sections appears. Without
		// an EPPC_PatternMatching in the middle it blends into the prior
		// closure in the eyes of this scan function.
		if sc, err := scanSymbolClosure(c, warn, &m.UnresolvedSymbols); err != nil {
			return nil, c.line, err
		} else if sc != nil {
			sc.Range.narrowMin(Version3_0_4)
			m.DWARFSymbolClosure = sc
			m.Range.intersect(sc.Range)
		}

		// Unresolved-symbol post-prints belong around here; the symbol
		// closure scanning that just happened handles them well enough.

		if lo, err := scanLinkerOpts(c); err != nil {
			return nil, c.line, err
		} else if lo != nil {
			m.LinkerOpts = lo
			m.Range.intersect(lo.Range)
		}

		if c.match(reMixedModeIslandsHeader) != nil {
			m.MixedModeIslands = scanIslands(c, reMixedIsland, reMixedIslandSafe)
			m.Range.intersect(m.MixedModeIslands.Range)
		}
		if c.match(reBranchIslandsHeader) != nil {
			m.BranchIslands = scanIslands(c, reBranchIsland, reBranchIslandSafe)
			m.Range.intersect(m.BranchIslands.Range)
		}

		m.SizeDecreasingOpts = probeSizeOptimizations(c, reSizeDecreasingHeader)
		m.SizeIncreasingOpts = probeSizeOptimizations(c, reSizeIncreasingHeader)
	}

	for {
		hdr := c.match(reSectionLayoutHeader)
		if hdr == nil {
			break
		}
		sl, err := scanOneSectionLayout(c, str(hdr[1]), warn)
		if err != nil {
			return nil, c.line, err
		}
		m.SectionLayouts = append(m.SectionLayouts, sl)
		m.Range.intersect(sl.Range)
	}

	if c.match(reMemoryMapHeader) != nil {
		mm, err := scanMemoryMap(c)
		if err != nil {
			return nil, c.line, err
		}
		m.MemoryMap = mm
		m.Range.intersect(mm.Range)
	}

	if c.match(reLGSHeader) != nil {
		m.LinkerGeneratedSymbols = scanLinkerGeneratedSymbols(c)
	}

	m.Warnings = warn.warnings

	if err := scanForGarbage(c); err != nil {
		return m, c.line, err
	}
	return m, c.line, nil
}

// scanOneSectionLayout dispatches on the three-line prologue between the
// 3-column and 4-column grammars.
func scanOneSectionLayout(c *cursor, name string, warn *warningSink) (*SectionLayout, error) {
	save := *c
	if c.match(reProlog3ColA) != nil && c.match(reProlog3ColB) != nil && c.match(reProlog3ColC) != nil {
		return scanSectionLayout(c, name, StyleThreeColumn, warn)
	}
	*c = save
	if c.match(reProlog4ColA) != nil && c.match(reProlog4ColB) != nil && c.match(reProlog4ColC) != nil {
		return scanSectionLayout(c, name, StyleFourColumn, warn)
	}
	*c = save
	return nil, newScanError(ErrSectionLayoutBadPrologue, c.line)
}

// ScanTLOZTP is the Twilight Princess alternate entry mode: CodeWarrior for GCN 2.7 linker maps post-processed to appear similar to
// older ones — prologue-free three-column section layouts with LF line
// endings and nothing else. The entry point is implicitly "__start".
func ScanTLOZTP(data []byte, cfg WarningConfig) (*Map, int, error) {
	if len(data) == 0 {
		return nil, 0, newScanError(ErrFail, 0)
	}
	c := newCursor(data)
	warn := newWarningSink(cfg)
	m := &Map{EntryPointName: "__start", Range: fullVersionRange()}

	for {
		hdr := c.match(reSectionLayoutHeaderTrimmedB)
		if hdr == nil {
			break
		}
		sl, err := scanSectionLayout(c, str(hdr[1]), StyleTLOZTP, warn)
		if err != nil {
			return nil, c.line, err
		}
		m.SectionLayouts = append(m.SectionLayouts, sl)
		m.Range.intersect(sl.Range)
	}
	m.Warnings = warn.warnings
	if err := scanForGarbage(c); err != nil {
		return m, c.line, err
	}
	return m, c.line, nil
}

// ScanSMGalaxy is the Super Mario Galaxy alternate entry mode: one
// single-layered-newline section-layout header — every symbol is
// mashed into an imaginary ".text" section scanned directly in the 4-column
// grammar with no prologue — optionally followed by a tiny headerless
// MemoryMap in the simple new-era dialect.
func ScanSMGalaxy(data []byte, cfg WarningConfig) (*Map, int, error) {
	if len(data) == 0 {
		return nil, 0, newScanError(ErrFail, 0)
	}
	c := newCursor(data)
	warn := newWarningSink(cfg)
	m := &Map{Range: fullVersionRange()}

	hdr := c.match(reSectionLayoutHeaderTrimmedA)
	if hdr == nil {
		return nil, c.line, newScanError(ErrSMGalaxyYouHadOneJob, c.line)
	}
	sl, err := scanSectionLayout(c, str(hdr[1]), StyleFourColumn, warn)
	if err != nil {
		return nil, c.line, err
	}
	sl.Kind = SectionCode
	m.SectionLayouts = append(m.SectionLayouts, sl)
	m.Range.intersect(sl.Range)

	mm := newMemoryMap(DialectSimple)
	scanMemoryMapUnits(c, mm)
	if len(mm.NormalUnits) > 0 || len(mm.DebugUnits) > 0 {
		m.MemoryMap = mm
		m.Range.intersect(mm.Range)
	}

	m.Warnings = warn.warnings
	if err := scanForGarbage(c); err != nil {
		return m, c.line, err
	}
	return m, c.line, nil
}

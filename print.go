package mwlmap

import (
	"fmt"
	"strconv"
	"strings"
)

// Print walks a Map and re-emits the exact bytes that produced it, mirroring
// Scan's canonical portion order. It returns the printer's output line
// count, which a caller can compare against the scanner's returned line
// count for the line-number-parity property.
func Print(m *Map) ([]byte, int) {
	sb := newSafeBuffer()

	// TLOZ-TP dumps carry an implicit "__start" entry point that was never
	// printed; everything else re-emits its header verbatim.
	tloztp := len(m.SectionLayouts) > 0 && m.SectionLayouts[0].Style == StyleTLOZTP
	if m.EntryPointName != "" && !tloztp {
		sb.writeString(fmt.Sprintf("Link map of %s\r\n", m.EntryPointName))
	}

	// Unresolved symbols are replayed at the exact line they were scanned
	// from, which reproduces any of the pre-/mid-/post-print arrangements
	// the linker is known to emit. The drain runs between
	// closure nodes and once after the closures.
	uIdx := 0
	drainUnresolved := func() {
		for uIdx < len(m.UnresolvedSymbols) && m.UnresolvedSymbols[uIdx].Line == sb.line {
			sb.writeString(fmt.Sprintf(">>> SYMBOL NOT FOUND: %s\r\n", m.UnresolvedSymbols[uIdx].Name))
			uIdx++
		}
	}

	if m.NormalSymbolClosure != nil {
		printSymbolClosure(sb, m.NormalSymbolClosure, drainUnresolved)
	}
	if m.EPPCPatternMatching != nil {
		printEPPCPatternMatching(sb, m.EPPCPatternMatching)
	}
	if m.DWARFSymbolClosure != nil {
		printSymbolClosure(sb, m.DWARFSymbolClosure, drainUnresolved)
	}
	// Handles post-print unresolved symbols, as well as the case where no
	// symbol closure exists at all.
	drainUnresolved()

	if m.LinkerOpts != nil {
		printLinkerOpts(sb, m.LinkerOpts)
	}

	if m.MixedModeIslands != nil {
		sb.writeString("\r\nMixed Mode Islands\r\n")
		printIslands(sb, m.MixedModeIslands, "mixed mode")
	}
	if m.BranchIslands != nil {
		sb.writeString("\r\nBranch Islands\r\n")
		printIslands(sb, m.BranchIslands, "branch")
	}

	if m.SizeDecreasingOpts != nil {
		sb.writeString("\r\nLinktime size-decreasing optimizations\r\n")
	}
	if m.SizeIncreasingOpts != nil {
		sb.writeString("\r\nLinktime size-increasing optimizations\r\n")
	}

	for _, sl := range m.SectionLayouts {
		printSectionLayout(sb, sl)
	}

	if m.MemoryMap != nil {
		sb.writeString("\r\n\r\nMemory map:\r\n")
		printMemoryMap(sb, m.MemoryMap)
	}

	if m.LinkerGeneratedSymbols != nil {
		sb.writeString("\r\n\r\nLinker generated symbols:\r\n")
		printLinkerGeneratedSymbols(sb, m.LinkerGeneratedSymbols)
	}

	sb.Commit()
	return sb.Bytes(), sb.line
}

// closurePrefix reconstructs the "%i] " prefix with its hierarchy_level+1
// leading spaces.
func closurePrefix(level int) string {
	return strings.Repeat(" ", level+1) + strconv.Itoa(level) + "] "
}

func printSymbolClosure(sb *safeBuffer, sc *SymbolClosure, drain func()) {
	drain()
	for _, n := range sc.Nodes {
		switch n.Kind {
		case NodeReal:
			prefix := closurePrefix(n.Level)
			sb.writeString(fmt.Sprintf("%s%s (%s,%s) found in %s %s\r\n",
				prefix, n.Name, n.Type, n.Bind, n.ModuleName, n.SourceName))
			if len(n.UnreferencedDuplicates) > 0 {
				sb.writeString(fmt.Sprintf("%s>>> UNREFERENCED DUPLICATE %s\r\n", prefix, n.Name))
				for _, d := range n.UnreferencedDuplicates {
					sb.writeString(fmt.Sprintf("%s>>> (%s,%s) found in %s %s\r\n",
						prefix, d.Type, d.Bind, d.ModuleName, d.SourceName))
				}
			}
		case NodeLinkerGenerated:
			sb.writeString(fmt.Sprintf("%s%s found as linker generated symbol\r\n",
				closurePrefix(n.Level), n.Name))
		case NodePlaceholder:
			// The _dtors$99 dummy has no printed representation.
		}
		drain()
	}
}

func printEPPCPatternMatching(sb *safeBuffer, e *EPPCPatternMatching) {
	for _, u := range e.MergingUnits {
		if u.WasInterchanged {
			sb.writeString(fmt.Sprintf("--> the function %s was interchanged with %s, size=%d \r\n",
				u.FirstName, u.SecondName, u.Size))
			if u.WillBeReplaced {
				sb.writeString(fmt.Sprintf("--> the function %s will be replaced by a branch to %s\r\n\r\n\r\n",
					u.FirstName, u.SecondName))
			}
			sb.writeString(fmt.Sprintf("--> duplicated code: symbol %s is duplicated by %s, size = %d \r\n\r\n",
				u.FirstName, u.SecondName, u.Size))
			continue
		}
		sb.writeString(fmt.Sprintf("--> duplicated code: symbol %s is duplicated by %s, size = %d \r\n\r\n",
			u.FirstName, u.SecondName, u.Size))
		if u.WillBeReplaced {
			sb.writeString(fmt.Sprintf("--> the function %s will be replaced by a branch to %s\r\n\r\n\r\n",
				u.FirstName, u.SecondName))
		}
	}
	for _, f := range e.FoldingUnits {
		sb.writeString(fmt.Sprintf("\r\n\r\n\r\nCode folded in file: %s \r\n", f.ObjectName))
		for _, entry := range f.Entries {
			if entry.NewBranchFunction != "" {
				sb.writeString(fmt.Sprintf("--> %s is duplicated by %s, size = %d, new branch function %s \r\n\r\n",
					entry.FirstName, entry.SecondName, entry.Size, entry.NewBranchFunction))
			} else {
				sb.writeString(fmt.Sprintf("--> %s is duplicated by %s, size = %d \r\n\r\n",
					entry.FirstName, entry.SecondName, entry.Size))
			}
		}
	}
}

func printLinkerOpts(sb *safeBuffer, lo *LinkerOpts) {
	for _, u := range lo.Units {
		switch u.Kind {
		case LinkerOptNotNear:
			sb.writeString(fmt.Sprintf("  %s/ %s()/ %s - address not in near addressing range \r\n",
				u.ModuleName, u.Name, u.ReferenceName))
		case LinkerOptNotComputed:
			sb.writeString(fmt.Sprintf("  %s/ %s()/ %s - final address not yet computed \r\n",
				u.ModuleName, u.Name, u.ReferenceName))
		case LinkerOptOptimized:
			sb.writeString(fmt.Sprintf("! %s/ %s()/ %s - optimized addressing \r\n",
				u.ModuleName, u.Name, u.ReferenceName))
		case LinkerOptDisassembleError:
			sb.writeString(fmt.Sprintf("  %s/ %s() - error disassembling function \r\n",
				u.ModuleName, u.Name))
		}
	}
}

func printIslands(sb *safeBuffer, is *Islands, kind string) {
	for _, u := range is.Units {
		if u.IsSafe {
			sb.writeString(fmt.Sprintf("  safe %s island %s created for %s\r\n", kind, u.Name, u.CreatedFor))
		} else {
			sb.writeString(fmt.Sprintf("  %s island %s created for %s\r\n", kind, u.Name, u.CreatedFor))
		}
	}
}

func printSectionLayout(sb *safeBuffer, sl *SectionLayout) {
	switch sl.Style {
	case StyleThreeColumn:
		sb.writeString(fmt.Sprintf("\r\n\r\n%s section layout\r\n", sl.Name))
		sb.writeString("  Starting        Virtual\r\n")
		sb.writeString("  address  Size   address\r\n")
		sb.writeString("  -----------------------\r\n")
		for _, u := range sl.Units {
			printUnit3Column(sb, sl, u)
		}
	case StyleFourColumn:
		sb.writeString(fmt.Sprintf("\r\n\r\n%s section layout\r\n", sl.Name))
		sb.writeString("  Starting        Virtual  File\r\n")
		sb.writeString("  address  Size   address  offset\r\n")
		sb.writeString("  ---------------------------------\r\n")
		for _, u := range sl.Units {
			printUnit4Column(sb, sl, u)
		}
	case StyleTLOZTP:
		sb.writeString(fmt.Sprintf("%s section layout\n", sl.Name))
		for _, u := range sl.Units {
			printUnitTLOZTP(sb, sl, u)
		}
	}
}

func entryParentName(sl *SectionLayout, u SectionLayoutUnit) string {
	if u.EntryParent >= 0 && u.EntryParent < len(sl.Units) {
		return sl.Units[u.EntryParent].Name
	}
	return ""
}

func printUnit3Column(sb *safeBuffer, sl *SectionLayout, u SectionLayoutUnit) {
	switch u.Kind {
	case UnitNormal:
		sb.writeString(fmt.Sprintf("  %08x %06x %08x %2d %s \t%s %s\r\n",
			u.StartingAddress, u.Size, u.VirtualAddress, u.Alignment, u.Name, u.ModuleName, u.SourceName))
	case UnitUnused:
		sb.writeString(fmt.Sprintf("  UNUSED   %06x ........ %s %s %s\r\n",
			u.Size, u.Name, u.ModuleName, u.SourceName))
	case UnitEntry:
		sb.writeString(fmt.Sprintf("  %08x %06x %08x %s (entry of %s) \t%s %s\r\n",
			u.StartingAddress, u.Size, u.VirtualAddress, u.Name, entryParentName(sl, u), u.ModuleName, u.SourceName))
	case UnitSpecial:
		// Fill symbols do not occur in genuine three-column layouts.
	}
}

func printUnit4Column(sb *safeBuffer, sl *SectionLayout, u SectionLayoutUnit) {
	switch u.Kind {
	case UnitNormal:
		sb.writeString(fmt.Sprintf("  %08x %06x %08x %08x %2d %s \t%s %s\r\n",
			u.StartingAddress, u.Size, u.VirtualAddress, u.FileOffset, u.Alignment, u.Name, u.ModuleName, u.SourceName))
	case UnitUnused:
		sb.writeString(fmt.Sprintf("  UNUSED   %06x ........ ........    %s %s %s\r\n",
			u.Size, u.Name, u.ModuleName, u.SourceName))
	case UnitEntry:
		sb.writeString(fmt.Sprintf("  %08x %06x %08x %08x    %s (entry of %s) \t%s %s\r\n",
			u.StartingAddress, u.Size, u.VirtualAddress, u.FileOffset, u.Name, entryParentName(sl, u), u.ModuleName, u.SourceName))
	case UnitSpecial:
		sb.writeString(fmt.Sprintf("  %08x %06x %08x %08x %2d %s\r\n",
			u.StartingAddress, u.Size, u.VirtualAddress, u.FileOffset, u.Alignment, u.Name))
	}
}

func printUnitTLOZTP(sb *safeBuffer, sl *SectionLayout, u SectionLayoutUnit) {
	switch u.Kind {
	case UnitNormal:
		sb.writeString(fmt.Sprintf("  %08x %06x %08x %2d %s \t%s %s\n",
			u.StartingAddress, u.Size, u.VirtualAddress, u.Alignment, u.Name, u.ModuleName, u.SourceName))
	case UnitEntry:
		sb.writeString(fmt.Sprintf("  %08x %06x %08x    %s (entry of %s) \t%s %s\n",
			u.StartingAddress, u.Size, u.VirtualAddress, u.Name, entryParentName(sl, u), u.ModuleName, u.SourceName))
	case UnitSpecial:
		sb.writeString(fmt.Sprintf("  %08x %06x %08x %2d %s\n",
			u.StartingAddress, u.Size, u.VirtualAddress, u.Alignment, u.Name))
	case UnitUnused:
		// UNUSED symbols were stripped from these post-processed maps.
	}
}

// memName reconstructs a row's name column. Scanned units carry the exact
// padding they were read with; hand-built units fall back to the canonical
// right-aligned field (15 wide in the old era, 20 in the new, behind a
// two-space margin).
func memName(pad, width int, name string) string {
	if pad > 0 {
		return strings.Repeat(" ", pad) + name
	}
	return fmt.Sprintf("  %*s", width, name)
}

func hexField(digits int, v uint32) string {
	if digits == 0 {
		digits = 8
	}
	return fmt.Sprintf("%0*x", digits, v)
}

func printMemoryMap(sb *safeBuffer, mm *MemoryMap) {
	if pair, ok := memPrologueText[string(mm.Dialect)]; ok {
		sb.writeString(pair[0])
		sb.writeString(pair[1])
	}
	for _, u := range mm.NormalUnits {
		size := hexField(u.SizeDigits, u.Size)
		foff := hexField(u.FileOffsetDigits, u.FileOffset)
		switch mm.Dialect {
		case DialectSimpleOld:
			sb.writeString(fmt.Sprintf("%s  %08x %s %s\r\n",
				memName(u.NamePad, 15, u.Name), u.StartingAddress, size, foff))
		case DialectRomRamOld:
			sb.writeString(fmt.Sprintf("%s  %08x %s %s %08x %08x\r\n",
				memName(u.NamePad, 15, u.Name), u.StartingAddress, size, foff, u.RomAddress, u.RamBufferAddress))
		case DialectSimple:
			sb.writeString(fmt.Sprintf("%s %08x %s %s\r\n",
				memName(u.NamePad, 20, u.Name), u.StartingAddress, size, foff))
		case DialectRomRam:
			sb.writeString(fmt.Sprintf("%s %08x %s %s %08x %08x\r\n",
				memName(u.NamePad, 20, u.Name), u.StartingAddress, size, foff, u.RomAddress, u.RamBufferAddress))
		case DialectSRecord:
			sb.writeString(fmt.Sprintf("%s %08x %s %s %10d\r\n",
				memName(u.NamePad, 20, u.Name), u.StartingAddress, size, foff, u.SRecordLine))
		case DialectBinFile:
			sb.writeString(fmt.Sprintf("%s %08x %s %s %08x %s\r\n",
				memName(u.NamePad, 20, u.Name), u.StartingAddress, size, foff, u.BinFileOffset, u.BinFileName))
		case DialectRomRamSRecord:
			sb.writeString(fmt.Sprintf("%s %08x %s %s %08x %08x %10d\r\n",
				memName(u.NamePad, 20, u.Name), u.StartingAddress, size, foff, u.RomAddress, u.RamBufferAddress, u.SRecordLine))
		case DialectRomRamBinFile:
			sb.writeString(fmt.Sprintf("%s %08x %s %s %08x %08x   %08x %s\r\n",
				memName(u.NamePad, 20, u.Name), u.StartingAddress, size, foff, u.RomAddress, u.RamBufferAddress, u.BinFileOffset, u.BinFileName))
		case DialectSRecordBinFile:
			sb.writeString(fmt.Sprintf("%s %08x %s %s  %10d %08x %s\r\n",
				memName(u.NamePad, 20, u.Name), u.StartingAddress, size, foff, u.SRecordLine, u.BinFileOffset, u.BinFileName))
		case DialectRomRamSRecordBinFile:
			sb.writeString(fmt.Sprintf("%s %08x %s %s %08x %08x    %10d %08x %s\r\n",
				memName(u.NamePad, 20, u.Name), u.StartingAddress, size, foff, u.RomAddress, u.RamBufferAddress, u.SRecordLine, u.BinFileOffset, u.BinFileName))
		}
	}
	for _, u := range mm.DebugUnits {
		if mm.OldEra {
			digits := u.SizeDigits
			if digits == 0 {
				digits = 6
			}
			sb.writeString(fmt.Sprintf("%s           %s %08x\r\n",
				memName(u.NamePad, 15, u.Name), hexField(digits, u.Size), u.FileOffset))
			continue
		}
		sb.writeString(fmt.Sprintf("%s          %08x %08x\r\n",
			memName(u.NamePad, 20, u.Name), u.Size, u.FileOffset))
	}
}

func printLinkerGeneratedSymbols(sb *safeBuffer, lgs *LinkerGeneratedSymbols) {
	for _, s := range lgs.Symbols {
		sb.writeString(fmt.Sprintf("%25s %08x\r\n", s.Name, s.Value))
	}
}

package mwlmap

import "regexp"

// Every portion header and literal-format table is compiled once here and
// reused by every scan call.
//
// Captures use [^\r\n] character classes rather than a bare dot: Go's regexp
// lets "." match a carriage return, so a greedy capture abutting \r?\n would
// swallow the line's \r into the captured text.

var (
	// "Link map of %s\r\n"
	reLinkMapHeader = anchored(`Link map of ([^\r\n]*)\r?\n`)

	// ">>> SYMBOL NOT FOUND: %s\r\n"
	reUnresolvedSymbol = anchored(`>>> SYMBOL NOT FOUND: ([^\r\n]*)\r?\n`)

	// SymbolClosure. The prefix "%i] " is preceded by
	// hierarchy_level+1 spaces.
	reClosureNormalNode = anchored(`   *(\d+)\] ([^\r\n]*) \(([^\r\n]*),([^\r\n]*)\) found in ([^\r\n]*) ([^\r\n]*)\r?\n`)
	reClosureUnrefHdr   = anchored(`   *(\d+)\] >>> UNREFERENCED DUPLICATE ([^\r\n]*)\r?\n`)
	reClosureUnrefEntry = anchored(`   *(\d+)\] >>> \(([^\r\n]*),([^\r\n]*)\) found in ([^\r\n]*) ([^\r\n]*)\r?\n`)
	reClosureLinkerGen  = anchored(`   *(\d+)\] ([^\r\n]*) found as linker generated symbol\r?\n`)

	// EPPC_PatternMatching.
	reEPPCMergingDup       = anchored(`--> duplicated code: symbol ([^\r\n]*) is duplicated by ([^\r\n]*), size = (\d+) \r?\n\r?\n`)
	reEPPCMergingReplaced  = anchored(`--> the function ([^\r\n]*) will be replaced by a branch to ([^\r\n]*)\r?\n\r?\n\r?\n`)
	reEPPCInterchanged     = anchored(`--> the function ([^\r\n]*) was interchanged with ([^\r\n]*), size=(\d+) \r?\n`)
	reEPPCFoldingHeader    = anchored(`\r?\n\r?\n\r?\nCode folded in file: ([^\r\n]*) \r?\n`)
	reEPPCFoldingDup       = anchored(`--> ([^\r\n]*) is duplicated by ([^\r\n]*), size = (\d+) \r?\n\r?\n`)
	reEPPCFoldingDupBranch = anchored(`--> ([^\r\n]*) is duplicated by ([^\r\n]*), size = (\d+), new branch function ([^\r\n]*) \r?\n\r?\n`)

	// LinkerOpts — four mutually exclusive per-line templates.
	reLinkerOptsNotNear        = anchored(`  ([^\r\n]*)/ ([^\r\n]*)\(\)/ ([^\r\n]*) - address not in near addressing range \r?\n`)
	reLinkerOptsNotComputed    = anchored(`  ([^\r\n]*)/ ([^\r\n]*)\(\)/ ([^\r\n]*) - final address not yet computed \r?\n`)
	reLinkerOptsOptimized      = anchored(`! ([^\r\n]*)/ ([^\r\n]*)\(\)/ ([^\r\n]*) - optimized addressing \r?\n`)
	reLinkerOptsDisassembleErr = anchored(`  ([^\r\n]*)/ ([^\r\n]*)\(\) - error disassembling function \r?\n`)

	// MixedModeIslands / BranchIslands
	reMixedModeIslandsHeader = anchored(`\r?\nMixed Mode Islands\r?\n`)
	reBranchIslandsHeader    = anchored(`\r?\nBranch Islands\r?\n`)
	reMixedIsland            = anchored(`  mixed mode island ([^\r\n]*) created for ([^\r\n]*)\r?\n`)
	reMixedIslandSafe        = anchored(`  safe mixed mode island ([^\r\n]*) created for ([^\r\n]*)\r?\n`)
	reBranchIsland           = anchored(`  branch island ([^\r\n]*) created for ([^\r\n]*)\r?\n`)
	reBranchIslandSafe       = anchored(`  safe branch island ([^\r\n]*) created for ([^\r\n]*)\r?\n`)

	// LinktimeSize{Decreasing,Increasing}Optimizations (marker-only)
	reSizeDecreasingHeader = anchored(`\r?\nLinktime size-decreasing optimizations\r?\n`)
	reSizeIncreasingHeader = anchored(`\r?\nLinktime size-increasing optimizations\r?\n`)

	// SectionLayout
	reSectionLayoutHeader         = anchored(`\r?\n\r?\n([^\r\n]*) section layout\r?\n`)
	reSectionLayoutHeaderTrimmedA = anchored(`\r?\n([^\r\n]*) section layout\r?\n`)
	reSectionLayoutHeaderTrimmedB = anchored(`([^\r\n]*) section layout\r?\n`)

	reProlog3ColA = anchored(`  Starting        Virtual\r?\n`)
	reProlog3ColB = anchored(`  address  Size   address\r?\n`)
	reProlog3ColC = anchored(`  -----------------------\r?\n`)

	reProlog4ColA = anchored(`  Starting        Virtual  File\r?\n`)
	reProlog4ColB = anchored(`  address  Size   address  offset\r?\n`)
	reProlog4ColC = anchored(`  ---------------------------------\r?\n`)

	// "  %08x %06x %08x %2i %s \t%s %s\r\n"
	reUnit3Normal = anchored(`  ([0-9a-f]{8}) ([0-9a-f]{6}) ([0-9a-f]{8})  ?(\d+) ([^\r\n]*) \t([^\r\n]*) ([^\r\n]*)\r?\n`)
	// "  UNUSED   %06x ........ %s %s %s\r\n"
	reUnit3Unused = anchored(`  UNUSED   ([0-9a-f]{6}) \.{8} ([^\r\n]*) ([^\r\n]*) ([^\r\n]*)\r?\n`)
	// "  %08lx %06lx %08lx %s (entry of %s) \t%s %s\r\n"
	reUnit3Entry = anchored(`  ([0-9a-f]{8}) ([0-9a-f]{6}) ([0-9a-f]{8}) ([^\r\n]*) \(entry of ([^\r\n]*)\) \t([^\r\n]*) ([^\r\n]*)\r?\n`)

	// "  %08x %06x %08x %08x %2i %s \t%s %s\r\n"
	reUnit4Normal = anchored(`  ([0-9a-f]{8}) ([0-9a-f]{6}) ([0-9a-f]{8}) ([0-9a-f]{8})  ?(\d+) ([^\r\n]*) \t([^\r\n]*) ([^\r\n]*)\r?\n`)
	// "  UNUSED   %06x ........ ........    %s %s %s\r\n"
	reUnit4Unused = anchored(`  UNUSED   ([0-9a-f]{6}) \.{8} \.{8}    ([^\r\n]*) ([^\r\n]*) ([^\r\n]*)\r?\n`)
	// "  %08lx %06lx %08lx %08lx    %s (entry of %s) \t%s %s\r\n"
	reUnit4Entry = anchored(`  ([0-9a-f]{8}) ([0-9a-f]{6}) ([0-9a-f]{8}) ([0-9a-f]{8})    ([^\r\n]*) \(entry of ([^\r\n]*)\) \t([^\r\n]*) ([^\r\n]*)\r?\n`)
	// "  %08x %06x %08x %08x %2i %s\r\n" — the name is validated against the
	// two fill spellings after the match.
	reUnit4Special = anchored(`  ([0-9a-f]{8}) ([0-9a-f]{6}) ([0-9a-f]{8}) ([0-9a-f]{8})  ?(\d+) ([^\r\n]*)\r?\n`)

	// TLOZ-TP alternate entry mode: three-column-style units with no
	// prologue and no file offset. Normal units reuse reUnit3Normal; entry
	// symbols carry the four-space gap of the 4-column era they really come
	// from, and fill symbols appear without a file offset.
	reUnitTLOZTPEntry   = anchored(`  ([0-9a-f]{8}) ([0-9a-f]{6}) ([0-9a-f]{8})    ([^\r\n]*) \(entry of ([^\r\n]*)\) \t([^\r\n]*) ([^\r\n]*)\r?\n`)
	reUnitTLOZTPSpecial = anchored(`  ([0-9a-f]{8}) ([0-9a-f]{6}) ([0-9a-f]{8})  ?(\d+) ([^\r\n]*)\r?\n`)

	// MemoryMap
	reMemoryMapHeader = anchored(`\r?\n\r?\nMemory map:\r?\n`)

	reMemProlog = map[string][2]*regexp.Regexp{
		"simple_old":             {anchored(`                   Starting Size     File\r?\n`), anchored(`                   address           Offset\r?\n`)},
		"romram_old":             {anchored(`                   Starting Size     File     ROM      RAM Buffer\r?\n`), anchored(`                   address           Offset   Address  Address\r?\n`)},
		"simple":                 {anchored(`                       Starting Size     File\r?\n`), anchored(`                       address           Offset\r?\n`)},
		"romram":                 {anchored(`                       Starting Size     File     ROM      RAM Buffer\r?\n`), anchored(`                       address           Offset   Address  Address\r?\n`)},
		"srecord":                {anchored(`                       Starting Size     File       S-Record\r?\n`), anchored(`                       address           Offset     Line\r?\n`)},
		"binfile":                {anchored(`                       Starting Size     File     Bin File Bin File\r?\n`), anchored(`                       address           Offset   Offset   Name\r?\n`)},
		"romram_srecord":         {anchored(`                       Starting Size     File     ROM      RAM Buffer  S-Record\r?\n`), anchored(`                       address           Offset   Address  Address     Line\r?\n`)},
		"romram_binfile":         {anchored(`                       Starting Size     File     ROM      RAM Buffer Bin File Bin File\r?\n`), anchored(`                       address           Offset   Address  Address    Offset   Name\r?\n`)},
		"srecord_binfile":        {anchored(`                       Starting Size     File        S-Record Bin File Bin File\r?\n`), anchored(`                       address           Offset      Line     Offset   Name\r?\n`)},
		"romram_srecord_binfile": {anchored(`                       Starting Size     File     ROM      RAM Buffer    S-Record Bin File Bin File\r?\n`), anchored(`                       address           Offset   Address  Address       Line     Offset   Name\r?\n`)},
	}

	// memPrologueText holds the literal two-line prologue text for each
	// dialect, used by the printer (reMemProlog above is for scanning only).
	memPrologueText = map[string][2]string{
		"simple_old":             {"                   Starting Size     File\r\n", "                   address           Offset\r\n"},
		"romram_old":             {"                   Starting Size     File     ROM      RAM Buffer\r\n", "                   address           Offset   Address  Address\r\n"},
		"simple":                 {"                       Starting Size     File\r\n", "                       address           Offset\r\n"},
		"romram":                 {"                       Starting Size     File     ROM      RAM Buffer\r\n", "                       address           Offset   Address  Address\r\n"},
		"srecord":                {"                       Starting Size     File       S-Record\r\n", "                       address           Offset     Line\r\n"},
		"binfile":                {"                       Starting Size     File     Bin File Bin File\r\n", "                       address           Offset   Offset   Name\r\n"},
		"romram_srecord":         {"                       Starting Size     File     ROM      RAM Buffer  S-Record\r\n", "                       address           Offset   Address  Address     Line\r\n"},
		"romram_binfile":         {"                       Starting Size     File     ROM      RAM Buffer Bin File Bin File\r\n", "                       address           Offset   Address  Address    Offset   Name\r\n"},
		"srecord_binfile":        {"                       Starting Size     File        S-Record Bin File Bin File\r\n", "                       address           Offset      Line     Offset   Name\r\n"},
		"romram_srecord_binfile": {"                       Starting Size     File     ROM      RAM Buffer    S-Record Bin File Bin File\r\n", "                       address           Offset   Address  Address       Line     Offset   Name\r\n"},
	}

	// Each MemoryMap dialect owns its own Normal-unit row regex and field
	// layout; the scanner never stretches one shared pattern
	// across all ten. The name's leading padding is captured so the printer
	// can reproduce the exact column spacing, and the size/file-offset fields
	// accept 6 or 8 hex digits (the width variance is itself a version-era
	// artifact of this format).
	//
	// Old era: "  %15s  %08x %08x %08x..." — two spaces after the name.
	reMemUnitNormalSimpleOld = anchored(`( {2,17})([^\r\n]*)  ([0-9a-f]{8}) ([0-9a-f]{6,8}) ([0-9a-f]{6,8})\r?\n`)
	reMemUnitNormalRomRamOld = anchored(`( {2,17})([^\r\n]*)  ([0-9a-f]{8}) ([0-9a-f]{6,8}) ([0-9a-f]{6,8}) ([0-9a-f]{8}) ([0-9a-f]{8})\r?\n`)
	// New era: "  %20s %08x %08x %08x..." — one space after the name.
	reMemUnitNormalSimple               = anchored(`( {2,22})([^\r\n]*) ([0-9a-f]{8}) ([0-9a-f]{6,8}) ([0-9a-f]{6,8})\r?\n`)
	reMemUnitNormalRomRam               = anchored(`( {2,22})([^\r\n]*) ([0-9a-f]{8}) ([0-9a-f]{6,8}) ([0-9a-f]{6,8}) ([0-9a-f]{8}) ([0-9a-f]{8})\r?\n`)
	reMemUnitNormalSRecord              = anchored(`( {2,22})([^\r\n]*) ([0-9a-f]{8}) ([0-9a-f]{6,8}) ([0-9a-f]{6,8})  {0,9}(\d+)\r?\n`)
	reMemUnitNormalBinFile              = anchored(`( {2,22})([^\r\n]*) ([0-9a-f]{8}) ([0-9a-f]{6,8}) ([0-9a-f]{6,8}) ([0-9a-f]{8}) ([^\r\n]*)\r?\n`)
	reMemUnitNormalRomRamSRecord        = anchored(`( {2,22})([^\r\n]*) ([0-9a-f]{8}) ([0-9a-f]{6,8}) ([0-9a-f]{6,8}) ([0-9a-f]{8}) ([0-9a-f]{8})  {0,9}(\d+)\r?\n`)
	reMemUnitNormalRomRamBinFile        = anchored(`( {2,22})([^\r\n]*) ([0-9a-f]{8}) ([0-9a-f]{6,8}) ([0-9a-f]{6,8}) ([0-9a-f]{8}) ([0-9a-f]{8})   ([0-9a-f]{8}) ([^\r\n]*)\r?\n`)
	reMemUnitNormalSRecordBinFile       = anchored(`( {2,22})([^\r\n]*) ([0-9a-f]{8}) ([0-9a-f]{6,8}) ([0-9a-f]{6,8})   {0,9}(\d+) ([0-9a-f]{8}) ([^\r\n]*)\r?\n`)
	reMemUnitNormalRomRamSRecordBinFile = anchored(`( {2,22})([^\r\n]*) ([0-9a-f]{8}) ([0-9a-f]{6,8}) ([0-9a-f]{6,8}) ([0-9a-f]{8}) ([0-9a-f]{8})     {0,9}(\d+) ([0-9a-f]{8}) ([^\r\n]*)\r?\n`)

	// "  %15s           %06x %08x\r\n" — sometimes the size overflows six
	// digits, and starting with CW for GCN 2.7 it is printed eight wide.
	reMemUnitDebugOld = anchored(`( {2,17})([^\r\n]*)           ([0-9a-f]{6,8}) ([0-9a-f]{8})\r?\n`)
	// "  %20s          %08x %08x\r\n"
	reMemUnitDebug = anchored(`( {2,22})([^\r\n]*)          ([0-9a-f]{8}) ([0-9a-f]{8})\r?\n`)

	// LinkerGeneratedSymbols: "%25s %08x\r\n"
	reLGSHeader = anchored(`\r?\n\r?\nLinker generated symbols:\r?\n`)
	reLGSLine   = anchored(` {0,25}([^\r\n]*) ([0-9a-f]{8})\r?\n`)
)

// garbageDiagnostic names one of the rare linker diagnostic prints known to
// exist but never modeled. These report
// ErrUnimplemented rather than ErrGarbageFound, so a caller can tell "known
// print we don't model" apart from "truly malformed input."
type garbageDiagnostic struct {
	name string
	re   *regexp.Regexp
}

var garbageDiagnostics = []garbageDiagnostic{
	{"excluded symbol", anchored(`>>> EXCLUDED SYMBOL ([^\r\n]*) \(([^\r\n]*),([^\r\n]*)\) found in ([^\r\n]*) ([^\r\n]*)\r?\n`)},
	{"wasn't passed a section", anchored(`>>> ([^\r\n]*) wasn't passed a section\r?\n`)},
	{"dynamic symbol referenced", anchored(`>>> DYNAMIC SYMBOL: ([^\r\n]*) referenced\r?\n`)},
	{"module symbol name too large", anchored(`>>> MODULE SYMBOL NAME TOO LARGE: ([^\r\n]*)\r?\n`)},
	{"nonmodule symbol name too large", anchored(`>>> NONMODULE SYMBOL NAME TOO LARGE: ([^\r\n]*)\r?\n`)},
	{"ComputeSizeETI section header size failure", anchored(`<<< Failure in ComputeSizeETI: section->Header->sh_size was ([0-9a-f]+), rel_size should be ([0-9a-f]+)\r?\n`)},
	{"ComputeSizeETI st_size failure", anchored(`<<< Failure in ComputeSizeETI: st_size was ([0-9a-f]+), st_size should be ([0-9a-f]+)\r?\n`)},
	{"PreCalculateETI section header size failure", anchored(`<<< Failure in PreCalculateETI: section->Header->sh_size was ([0-9a-f]+), rel_size should be ([0-9a-f]+)\r?\n`)},
	{"PreCalculateETI st_size failure", anchored(`<<< Failure in PreCalculateETI: st_size was ([0-9a-f]+), st_size should be ([0-9a-f]+)\r?\n`)},
	{"GetFilePos calc_offset failure", anchored(`<<< Failure in ([^\r\n]*): GetFilePos is ([0-9a-f]+), sect->calc_offset is ([0-9a-f]+)\r?\n`)},
	{"GetFilePos bin_offset failure", anchored(`<<< Failure in ([^\r\n]*): GetFilePos is ([0-9a-f]+), sect->bin_offset is ([0-9a-f]+)\r?\n`)},
}

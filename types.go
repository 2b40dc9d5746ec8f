package mwlmap

// Version enumerates the CodeWarrior/MWLD releases whose output formatting
// quirks this package can discriminate between. Values are ordered
// chronologically so plain integer comparison gives version ordering.
type Version int

const (
	// Oldest known version.
	VersionUnknown Version = iota
	// CodeWarrior for GCN 1.0 (May 21 2000 19:00:24)
	Version2_3_3_build126
	// CodeWarrior for GCN 1.1 (Feb 7 2001 12:15:53)
	Version2_3_3_build137
	// CodeWarrior for GCN 1.2.5 (Jun 12 2001 11:53:24)
	Version2_4_1_build47
	// CodeWarrior for GCN 1.3.2 (May 7 2002 23:43:34)
	Version2_4_2_build81
	// CodeWarrior for GCN 2.0 (Sep 16 2002 15:15:26)
	Version2_4_7_build92
	// CodeWarrior for GCN 2.5 (Nov 7 2002 12:45:57)
	Version2_4_7_build102
	// CodeWarrior for GCN 2.6 (Jul 14 2003 14:20:31)
	Version2_4_7_build107
	// CodeWarrior for GCN 2.7 (Aug 13 2004 10:40:59)
	Version3_0_4
	// CodeWarrior for GCN 3.0a3 (Dec 13 2005 17:41:17)
	Version4_1_build51213
	// CodeWarrior for GCN 3.0 (Mar 20 2006 23:19:16)
	Version4_2_build60320
	// CodeWarrior for Wii 1.0 (Aug 26 2008 02:33:56)
	Version4_2_build142
	// CodeWarrior for Wii 1.1 (Apr 2 2009 15:05:36)
	Version4_3_build151
	// CodeWarrior for Wii 1.3 (Apr 23 2010 11:39:30)
	Version4_3_build172
	// CodeWarrior for Wii 1.7 (Sep 5 2011 13:02:03)
	Version4_3_build213
	// Latest known version.
	VersionLatest
)

func (v Version) String() string {
	switch v {
	case VersionUnknown:
		return "unknown"
	case Version2_3_3_build126:
		return "2.3.3 build 126"
	case Version2_3_3_build137:
		return "2.3.3 build 137"
	case Version2_4_1_build47:
		return "2.4.1 build 47"
	case Version2_4_2_build81:
		return "2.4.2 build 81"
	case Version2_4_7_build92:
		return "2.4.7 build 92"
	case Version2_4_7_build102:
		return "2.4.7 build 102"
	case Version2_4_7_build107:
		return "2.4.7 build 107"
	case Version3_0_4:
		return "3.0.4"
	case Version4_1_build51213:
		return "4.1 build 51213"
	case Version4_2_build60320:
		return "4.2 build 60320"
	case Version4_2_build142:
		return "4.2 build 142"
	case Version4_3_build151:
		return "4.3 build 151"
	case Version4_3_build172:
		return "4.3 build 172"
	case Version4_3_build213:
		return "4.3 build 213"
	case VersionLatest:
		return "latest"
	default:
		return "unknown"
	}
}

// VersionRange is a closed interval of plausible linker versions, narrowed as
// scanning discovers formatting clues. See version.go for the narrowing API.
type VersionRange struct {
	Min Version
	Max Version
}

func fullVersionRange() VersionRange {
	return VersionRange{Min: VersionUnknown, Max: VersionLatest}
}

// SymbolType is the TYPE field of a SymbolClosure Real node: "(TYPE,BIND)".
type SymbolType int

const (
	TypeNone SymbolType = iota // STT_NOTYPE
	TypeObject
	TypeFunc
	TypeSection
	TypeFile
	TypeUnknown
)

var symbolTypeNames = map[string]SymbolType{
	"notype":  TypeNone,
	"object":  TypeObject,
	"func":    TypeFunc,
	"section": TypeSection,
	"file":    TypeFile,
	"unknown": TypeUnknown,
}

func (t SymbolType) String() string {
	switch t {
	case TypeNone:
		return "notype"
	case TypeObject:
		return "object"
	case TypeFunc:
		return "func"
	case TypeSection:
		return "section"
	case TypeFile:
		return "file"
	default:
		return "unknown"
	}
}

// SymbolBind is the BIND field of a SymbolClosure Real node.
type SymbolBind int

const (
	BindLocal SymbolBind = iota // STB_LOCAL
	BindGlobal
	BindWeak
	// Proprietary bindings.
	BindMultidef
	BindOverload
	BindUnknown
)

var symbolBindNames = map[string]SymbolBind{
	"local":    BindLocal,
	"global":   BindGlobal,
	"weak":     BindWeak,
	"multidef": BindMultidef,
	"overload": BindOverload,
	"unknown":  BindUnknown,
}

func (b SymbolBind) String() string {
	switch b {
	case BindLocal:
		return "local"
	case BindGlobal:
		return "global"
	case BindWeak:
		return "weak"
	case BindMultidef:
		return "multidef"
	case BindOverload:
		return "overload"
	default:
		return "unknown"
	}
}

// SectionKind classifies a SectionLayout by its section name.
type SectionKind int

const (
	SectionUnknown SectionKind = iota
	SectionCode
	SectionZCode
	SectionVLECode
	SectionData
	SectionBSS
	SectionCtors
	SectionDtors
	SectionExTab
	SectionExTabIndex
	SectionDebug
	SectionMixed
)

func (k SectionKind) String() string {
	switch k {
	case SectionCode:
		return "Code"
	case SectionZCode:
		return "ZCode"
	case SectionVLECode:
		return "VLECode"
	case SectionData:
		return "Data"
	case SectionBSS:
		return "BSS"
	case SectionCtors:
		return "Ctors"
	case SectionDtors:
		return "Dtors"
	case SectionExTab:
		return "ExTab"
	case SectionExTabIndex:
		return "ExTabIndex"
	case SectionDebug:
		return "Debug"
	case SectionMixed:
		return "Mixed"
	default:
		return "Unknown"
	}
}

// sectionKindTable maps known section names to their SectionKind. This is far
// from a comprehensive listing; section names not in the table (".BINARY",
// ".PPC.EMB.sdata0", and other exotics) classify as Unknown.
var sectionKindTable = map[string]SectionKind{
	".init": SectionCode,
	".text": SectionCode,
	".fini": SectionCode,

	".init_vle": SectionVLECode,
	".text_vle": SectionVLECode,

	".compress.init": SectionZCode,
	".compress.text": SectionZCode,
	".compress.fini": SectionZCode,

	".data":   SectionData,
	".rodata": SectionData,
	".sdata":  SectionData,
	".sdata2": SectionData,

	".bss":   SectionBSS,
	".sbss":  SectionBSS,
	".sbss2": SectionBSS,

	".ctors":     SectionCtors,
	".dtors":     SectionDtors,
	"extab":      SectionExTab,
	"extabindex": SectionExTabIndex,

	".debug":          SectionDebug,
	".debug_sfnames":  SectionDebug,
	".debug_scrinfo":  SectionDebug,
	".debug_abbrev":   SectionDebug,
	".debug_info":     SectionDebug,
	".debug_arranges": SectionDebug,
	".debug_frame":    SectionDebug,
	".debug_line":     SectionDebug,
	".debug_loc":      SectionDebug,
	".debug_macinfo":  SectionDebug,
	".debug_pubnames": SectionDebug,
}

func sectionKindOf(name string) SectionKind {
	if k, ok := sectionKindTable[name]; ok {
		return k
	}
	return SectionUnknown
}

// UnitTrait is the scan-time classification of a SectionLayout unit's role.
type UnitTrait int

const (
	// Nothing special.
	TraitNone UnitTrait = iota
	// Lives in a code section.
	TraitFunction
	// Lives in a data section.
	TraitObject
	// Assumed to be of notype (entry symbols).
	TraitNoType
	// Named after the section it is native to. Multiple can appear in a
	// single compilation unit with the '-sym on' option.
	TraitSection
	// BSS local common symbols.
	TraitLCommon
	// BSS common symbols. '-common on' moves these into a common section.
	TraitCommon
	// Native to the extab section.
	TraitExTab
	// Native to the extabindex section.
	TraitExTabIndex
	// *fill*
	TraitFill1
	// **fill**
	TraitFill2
)

// WarningConfig carries the independent toggleable warning channels. It is
// passed explicitly into Scan; mwlmap holds no package-level mutable warning
// state.
type WarningConfig struct {
	ODRViolationSymbolClosure bool
	ODRViolationSectionLayout bool
	ODRViolationEPPCMerging   bool
	ODRViolationEPPCFolding   bool
	SymOnFlagClosure          bool
	SymOnFlagSectionLayout    bool
	CommonOnFlag              bool
	LcommAfterComm            bool
	FoldingRepeatObject       bool
	RepeatNameCompilationUnit bool
}

// DefaultWarningConfig enables every channel.
func DefaultWarningConfig() WarningConfig {
	return WarningConfig{
		ODRViolationSymbolClosure: true,
		ODRViolationSectionLayout: true,
		ODRViolationEPPCMerging:   true,
		ODRViolationEPPCFolding:   true,
		SymOnFlagClosure:          true,
		SymOnFlagSectionLayout:    true,
		CommonOnFlag:              true,
		LcommAfterComm:            true,
		FoldingRepeatObject:       true,
		RepeatNameCompilationUnit: true,
	}
}

// Warning is a single non-fatal diagnostic emitted during Scan.
type Warning struct {
	Line    int
	Message string
}

// Map is the fully-scanned, immutable representation of one linker map.
// It is constructed in one Scan call and never mutated afterward.
type Map struct {
	EntryPointName string

	NormalSymbolClosure *SymbolClosure
	DWARFSymbolClosure  *SymbolClosure

	EPPCPatternMatching *EPPCPatternMatching

	UnresolvedSymbols []UnresolvedSymbol

	LinkerOpts *LinkerOpts

	MixedModeIslands *Islands
	BranchIslands    *Islands

	SizeDecreasingOpts *SizeOptimizations
	SizeIncreasingOpts *SizeOptimizations

	SectionLayouts []*SectionLayout

	MemoryMap *MemoryMap

	LinkerGeneratedSymbols *LinkerGeneratedSymbols

	Range VersionRange

	Warnings []Warning
}

// UnresolvedSymbol is one `>>> SYMBOL NOT FOUND: NAME` line together with the
// 1-origin input line it sat on. Unresolved symbols may be pre-printed before
// the first symbol closure, mid-printed as the closure is walked, or
// post-printed after the DWARF closure depending on linker version; replaying
// the recorded line numbers is the only way the printer can reproduce any of
// those arrangements.
type UnresolvedSymbol struct {
	Line int
	Name string
}

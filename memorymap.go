package mwlmap

import "regexp"

// MemoryMapDialect names one of the ten historically-attested prologue
// pairings. Each dialect carries its own Normal-unit row
// regex and print format: the columns present (ROM/RAM, S-Record line,
// Bin File offset+name) vary per dialect and are never inferred from one
// shared grammar.
type MemoryMapDialect string

const (
	DialectSimpleOld            MemoryMapDialect = "simple_old"
	DialectRomRamOld            MemoryMapDialect = "romram_old"
	DialectSimple               MemoryMapDialect = "simple"
	DialectRomRam               MemoryMapDialect = "romram"
	DialectSRecord              MemoryMapDialect = "srecord"
	DialectBinFile              MemoryMapDialect = "binfile"
	DialectRomRamSRecord        MemoryMapDialect = "romram_srecord"
	DialectRomRamBinFile        MemoryMapDialect = "romram_binfile"
	DialectSRecordBinFile       MemoryMapDialect = "srecord_binfile"
	DialectRomRamSRecordBinFile MemoryMapDialect = "romram_srecord_binfile"
)

// dialectOrder fixes the probe order: longer / more-specific prologues must
// be tried before their prefixes so discrimination is unambiguous.
var dialectOrder = []MemoryMapDialect{
	DialectRomRamSRecordBinFile,
	DialectRomRamSRecord,
	DialectRomRamBinFile,
	DialectSRecordBinFile,
	DialectRomRam,
	DialectSRecord,
	DialectBinFile,
	DialectSimple,
	DialectRomRamOld,
	DialectSimpleOld,
}

// NormalUnit is one memory-region row; which fields are populated depends on
// the dialect's three boolean flags. NamePad and the two digit counts record
// the row's observed layout (name-column padding; 6- vs 8-digit size and
// file offset) so the printer reproduces the exact column spacing.
type NormalUnit struct {
	Name             string
	StartingAddress  uint32
	Size             uint32
	FileOffset       uint32
	RomAddress       uint32
	RamBufferAddress uint32
	HasRomRam        bool
	SRecordLine      int
	HasSRecord       bool
	BinFileOffset    uint32
	BinFileName      string
	HasBinFile       bool

	NamePad          int
	SizeDigits       int
	FileOffsetDigits int
}

// DebugUnit is one `.debug_*`-style row in the trailing debug-section table.
// SizeDigits is 6 in the oldest era, 8 starting with CW for GCN 2.7, and 7
// when a six-digit size overflowed.
type DebugUnit struct {
	Name       string
	Size       uint32
	FileOffset uint32

	NamePad    int
	SizeDigits int
}

// MemoryMap is the `Memory map:` portion.
type MemoryMap struct {
	Dialect     MemoryMapDialect
	RomRam      bool
	SRecord     bool
	BinFile     bool
	OldEra      bool
	NormalUnits []NormalUnit
	DebugUnits  []DebugUnit
	Range       VersionRange
}

func scanMemoryMap(c *cursor) (*MemoryMap, error) {
	var dialect MemoryMapDialect
	for _, d := range dialectOrder {
		pair := reMemProlog[string(d)]
		save := *c
		if c.match(pair[0]) != nil && c.match(pair[1]) != nil {
			dialect = d
			break
		}
		*c = save
	}
	if dialect == "" {
		return nil, newScanError(ErrMemoryMapBadPrologue, c.line)
	}

	mm := newMemoryMap(dialect)
	scanMemoryMapUnits(c, mm)
	return mm, nil
}

func newMemoryMap(dialect MemoryMapDialect) *MemoryMap {
	mm := &MemoryMap{Dialect: dialect, Range: fullVersionRange()}
	switch dialect {
	case DialectRomRam, DialectRomRamSRecord, DialectRomRamBinFile, DialectRomRamSRecordBinFile, DialectRomRamOld:
		mm.RomRam = true
	}
	switch dialect {
	case DialectSRecord, DialectRomRamSRecord, DialectSRecordBinFile, DialectRomRamSRecordBinFile:
		mm.SRecord = true
	}
	switch dialect {
	case DialectBinFile, DialectRomRamBinFile, DialectSRecordBinFile, DialectRomRamSRecordBinFile:
		mm.BinFile = true
	}
	switch dialect {
	case DialectSimpleOld, DialectRomRamOld:
		mm.OldEra = true
		mm.Range.narrowMax(Version4_2_build60320)
	default:
		mm.Range.narrowMin(Version4_2_build142)
	}
	return mm
}

// scanMemoryMapUnits scans Normal-unit rows in mm's dialect until the row
// regex fails, then the era's debug-unit rows.
func scanMemoryMapUnits(c *cursor, mm *MemoryMap) {
	var re *regexp.Regexp
	switch mm.Dialect {
	case DialectSimpleOld:
		re = reMemUnitNormalSimpleOld
	case DialectRomRamOld:
		re = reMemUnitNormalRomRamOld
	case DialectSimple:
		re = reMemUnitNormalSimple
	case DialectRomRam:
		re = reMemUnitNormalRomRam
	case DialectSRecord:
		re = reMemUnitNormalSRecord
	case DialectBinFile:
		re = reMemUnitNormalBinFile
	case DialectRomRamSRecord:
		re = reMemUnitNormalRomRamSRecord
	case DialectRomRamBinFile:
		re = reMemUnitNormalRomRamBinFile
	case DialectSRecordBinFile:
		re = reMemUnitNormalSRecordBinFile
	case DialectRomRamSRecordBinFile:
		re = reMemUnitNormalRomRamSRecordBinFile
	}

	for {
		g := c.match(re)
		if g == nil {
			break
		}
		u := NormalUnit{
			NamePad:          len(g[1]),
			Name:             str(g[2]),
			StartingAddress:  hexU32(g[3]),
			Size:             hexU32(g[4]),
			FileOffset:       hexU32(g[5]),
			SizeDigits:       len(g[4]),
			FileOffsetDigits: len(g[5]),
		}
		switch mm.Dialect {
		case DialectSimpleOld, DialectSimple:
		case DialectRomRamOld, DialectRomRam:
			u.RomAddress, u.RamBufferAddress = hexU32(g[6]), hexU32(g[7])
			u.HasRomRam = true
		case DialectSRecord:
			u.SRecordLine = decInt(g[6])
			u.HasSRecord = true
		case DialectBinFile:
			u.BinFileOffset, u.BinFileName = hexU32(g[6]), str(g[7])
			u.HasBinFile = true
		case DialectRomRamSRecord:
			u.RomAddress, u.RamBufferAddress = hexU32(g[6]), hexU32(g[7])
			u.HasRomRam = true
			u.SRecordLine = decInt(g[8])
			u.HasSRecord = true
		case DialectRomRamBinFile:
			u.RomAddress, u.RamBufferAddress = hexU32(g[6]), hexU32(g[7])
			u.HasRomRam = true
			u.BinFileOffset, u.BinFileName = hexU32(g[8]), str(g[9])
			u.HasBinFile = true
		case DialectSRecordBinFile:
			u.SRecordLine = decInt(g[6])
			u.HasSRecord = true
			u.BinFileOffset, u.BinFileName = hexU32(g[7]), str(g[8])
			u.HasBinFile = true
		case DialectRomRamSRecordBinFile:
			u.RomAddress, u.RamBufferAddress = hexU32(g[6]), hexU32(g[7])
			u.HasRomRam = true
			u.SRecordLine = decInt(g[8])
			u.HasSRecord = true
			u.BinFileOffset, u.BinFileName = hexU32(g[9]), str(g[10])
			u.HasBinFile = true
		}
		mm.NormalUnits = append(mm.NormalUnits, u)
	}

	for {
		if mm.OldEra {
			g := c.match(reMemUnitDebugOld)
			if g == nil {
				break
			}
			size := g[3]
			// An eight-digit size with a leading zero is the CW for GCN 2.7
			// width change, not just an overflowed six-digit value.
			if len(size) == 8 && size[0] == '0' {
				mm.Range.narrowMin(Version3_0_4)
			}
			mm.DebugUnits = append(mm.DebugUnits, DebugUnit{
				NamePad:    len(g[1]),
				Name:       str(g[2]),
				Size:       hexU32(size),
				FileOffset: hexU32(g[4]),
				SizeDigits: len(size),
			})
			continue
		}
		g := c.match(reMemUnitDebug)
		if g == nil {
			break
		}
		mm.DebugUnits = append(mm.DebugUnits, DebugUnit{
			NamePad:    len(g[1]),
			Name:       str(g[2]),
			Size:       hexU32(g[3]),
			FileOffset: hexU32(g[4]),
			SizeDigits: 8,
		})
	}
}

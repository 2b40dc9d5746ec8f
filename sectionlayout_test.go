package mwlmap

import (
	"errors"
	"testing"
)

func TestSectionLayoutEntryResolution(t *testing.T) {
	input := "  00000000 000010 80003100  4 foo \tobj.o lib.a\r\n" +
		"  00000000 000004 80003100 foo.entry (entry of foo) \tobj.o lib.a\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	sl, err := scanSectionLayout(c, ".text", StyleThreeColumn, warn)
	if err != nil {
		t.Fatalf("scanSectionLayout: %v", err)
	}
	if len(sl.Units) != 2 {
		t.Fatalf("got %d units, want 2", len(sl.Units))
	}
	entry := sl.Units[1]
	if entry.Kind != UnitEntry {
		t.Fatalf("second unit kind = %v, want UnitEntry", entry.Kind)
	}
	if entry.EntryParent != 0 {
		t.Fatalf("entry.EntryParent = %d, want 0", entry.EntryParent)
	}
	if entry.Trait != TraitNoType {
		t.Fatalf("entry.Trait = %v, want TraitNoType", entry.Trait)
	}
	if got := sl.Units[0].EntryChildren; len(got) != 1 || got[0] != 1 {
		t.Fatalf("parent.EntryChildren = %v, want [1]", got)
	}
}

func TestSectionLayoutOrphanedEntry(t *testing.T) {
	input := "  00000000 000004 80003100 foo.entry (entry of nonexistent) \tobj.o lib.a\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	_, err := scanSectionLayout(c, ".text", StyleThreeColumn, warn)
	if err == nil {
		t.Fatal("expected an orphaned-entry error, got nil")
	}
	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("error is not a *ScanError: %v", err)
	}
	if scanErr.Kind != ErrSectionLayoutOrphanedEntry {
		t.Fatalf("error kind = %v, want ErrSectionLayoutOrphanedEntry", scanErr.Kind)
	}
}

// TestSectionLayoutEntryAcrossCompilationUnitIsOrphaned: the reverse scan for
// an entry's host stops at the first unit from a different compilation unit,
// so a same-named unit further back does not resolve.
func TestSectionLayoutEntryAcrossCompilationUnitIsOrphaned(t *testing.T) {
	input := "  00000000 000010 80003100  4 foo \tobj.o lib.a\r\n" +
		"  00000010 000010 80003110  4 other \tobj2.o lib2.a\r\n" +
		"  00000010 000004 80003110 foo.entry (entry of foo) \tobj.o lib.a\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	_, err := scanSectionLayout(c, ".text", StyleThreeColumn, warn)
	var scanErr *ScanError
	if !errors.As(err, &scanErr) || scanErr.Kind != ErrSectionLayoutOrphanedEntry {
		t.Fatalf("err = %v, want ErrSectionLayoutOrphanedEntry", err)
	}
}

func TestSectionLayoutSpecialNotFill(t *testing.T) {
	// "*fill**" has the right shape to match the special-unit pattern, but
	// neither of the two literal spellings the linker actually emits
	// ("*fill*", "**fill**"); mismatched asterisk counts must be rejected.
	input := "  00000000 000010 80003100 00000100  4 *fill**\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	_, err := scanSectionLayout(c, ".text", StyleFourColumn, warn)
	var scanErr *ScanError
	if !errors.As(err, &scanErr) || scanErr.Kind != ErrSectionLayoutSpecialNotFill {
		t.Fatalf("err = %v, want ErrSectionLayoutSpecialNotFill", err)
	}
}

// TestSectionLayoutUnusedUnits checks the UNUSED grammar in both eras: one
// space after the dots in three-column layouts, a four-space gap in
// four-column ones.
func TestSectionLayoutUnusedUnits(t *testing.T) {
	c := newCursor([]byte("  UNUSED   000018 ........ stale obj.o lib.a\r\n"))
	warn := newWarningSink(DefaultWarningConfig())
	sl, err := scanSectionLayout(c, ".text", StyleThreeColumn, warn)
	if err != nil {
		t.Fatalf("scanSectionLayout(3-column): %v", err)
	}
	if len(sl.Units) != 1 || sl.Units[0].Kind != UnitUnused || sl.Units[0].Size != 0x18 {
		t.Fatalf("3-column units = %+v", sl.Units)
	}

	c = newCursor([]byte("  UNUSED   000018 ........ ........    stale obj.o lib.a\r\n"))
	sl, err = scanSectionLayout(c, ".text", StyleFourColumn, warn)
	if err != nil {
		t.Fatalf("scanSectionLayout(4-column): %v", err)
	}
	if len(sl.Units) != 1 || sl.Units[0].Kind != UnitUnused {
		t.Fatalf("4-column units = %+v", sl.Units)
	}
	if sl.Units[0].Trait != TraitNone {
		t.Fatalf("unused trait = %v, want TraitNone (a compilation unit opening without its STT_SECTION symbol classifies as nothing special)", sl.Units[0].Trait)
	}
}

// TestSectionLayoutBSSCommonVsLCommon covers the ordinary case where each
// compilation unit opens with its STT_SECTION symbol: following symbols in
// that unit classify as LCommon.
func TestSectionLayoutBSSCommonVsLCommon(t *testing.T) {
	input := "  00000000 000000 80003100  4 .bss \tobj1.o lib.a\r\n" +
		"  00000000 000004 80003100  4 a \tobj1.o lib.a\r\n" +
		"  00000004 000000 80003104  4 .bss \tobj2.o lib2.a\r\n" +
		"  00000004 000004 80003108  4 b \tobj2.o lib2.a\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	sl, err := scanSectionLayout(c, ".bss", StyleThreeColumn, warn)
	if err != nil {
		t.Fatalf("scanSectionLayout: %v", err)
	}
	if sl.Units[0].Trait != TraitSection {
		t.Fatalf("unit 0 trait = %v, want TraitSection", sl.Units[0].Trait)
	}
	if sl.Units[1].Trait != TraitLCommon {
		t.Fatalf("unit 1 trait = %v, want TraitLCommon (explicit STT_SECTION precedes it, no -common on flag)", sl.Units[1].Trait)
	}
	if sl.Units[2].Trait != TraitSection {
		t.Fatalf("unit 2 trait = %v, want TraitSection", sl.Units[2].Trait)
	}
	if sl.Units[3].Trait != TraitLCommon {
		t.Fatalf("unit 3 trait = %v, want TraitLCommon (new compilation unit, also opened by its STT_SECTION)", sl.Units[3].Trait)
	}
	if len(warn.warnings) != 0 {
		t.Fatalf("got %d warnings, want 0: %+v", len(warn.warnings), warn.warnings)
	}
}

// TestSectionLayoutBSSCommonOnFlagWarns covers the -common-on-flag heuristic:
// a BSS compilation unit whose first symbol is not its STT_SECTION symbol is
// assumed to have been compiled with '-common on', so every symbol in it is
// Common rather than LCommon.
func TestSectionLayoutBSSCommonOnFlagWarns(t *testing.T) {
	input := "  00000000 000004 80003100  4 a \tobj1.o lib.a\r\n" +
		"  00000004 000004 80003104  4 b \tobj1.o lib.a\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	sl, err := scanSectionLayout(c, ".bss", StyleThreeColumn, warn)
	if err != nil {
		t.Fatalf("scanSectionLayout: %v", err)
	}
	if sl.Units[0].Trait != TraitCommon || sl.Units[1].Trait != TraitCommon {
		t.Fatalf("units = %+v, want both TraitCommon", sl.Units)
	}
	if len(warn.warnings) != 1 {
		t.Fatalf("got %d warnings, want 1 -common-on-flag warning", len(warn.warnings))
	}
}

// TestSectionLayoutLcommAfterCommWarns covers the LcommAfterComm channel:
// once a BSS compilation unit has been flagged as "-common on", a later
// compilation unit that DOES open with its STT_SECTION symbol is a ".lcomm
// symbols found after .comm symbols" anomaly.
func TestSectionLayoutLcommAfterCommWarns(t *testing.T) {
	input := "  00000000 000004 80003100  4 a \tobj1.o lib.a\r\n" +
		"  00000004 000000 80003104  4 .bss \tobj2.o lib2.a\r\n" +
		"  00000004 000004 80003108  4 b \tobj2.o lib2.a\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	sl, err := scanSectionLayout(c, ".bss", StyleThreeColumn, warn)
	if err != nil {
		t.Fatalf("scanSectionLayout: %v", err)
	}
	if sl.Units[0].Trait != TraitCommon {
		t.Fatalf("unit 0 trait = %v, want TraitCommon", sl.Units[0].Trait)
	}
	if sl.Units[1].Trait != TraitSection {
		t.Fatalf("unit 1 trait = %v, want TraitSection", sl.Units[1].Trait)
	}
	if sl.Units[2].Trait != TraitLCommon {
		t.Fatalf("unit 2 trait = %v, want TraitLCommon (second-lap state reset by unit 1's STT_SECTION)", sl.Units[2].Trait)
	}
	if len(warn.warnings) != 2 {
		t.Fatalf("got %d warnings, want 2 (-common-on-flag then .lcomm-after-.comm): %+v", len(warn.warnings), warn.warnings)
	}
}

// TestSectionLayoutRepeatNameCompilationUnitWarns covers the
// RepeatNameCompilationUnit channel: a compilation unit name recurring later
// in the same SectionLayout, each time opening with its own STT_SECTION
// symbol.
func TestSectionLayoutRepeatNameCompilationUnitWarns(t *testing.T) {
	input := "  00000000 000000 80001000  4 .text \ta.o a.a\r\n" +
		"  00000000 000010 80001000  4 foo \ta.o a.a\r\n" +
		"  00000010 000000 80001010  4 .text \tb.o b.a\r\n" +
		"  00000010 000010 80001010  4 bar \tb.o b.a\r\n" +
		"  00000020 000000 80001020  4 .text \ta.o a.a\r\n" +
		"  00000020 000010 80001020  4 baz \ta.o a.a\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	sl, err := scanSectionLayout(c, ".text", StyleThreeColumn, warn)
	if err != nil {
		t.Fatalf("scanSectionLayout: %v", err)
	}
	if len(sl.Units) != 6 {
		t.Fatalf("got %d units, want 6", len(sl.Units))
	}
	if sl.Units[4].Trait != TraitSection {
		t.Fatalf("unit 4 trait = %v, want TraitSection", sl.Units[4].Trait)
	}
	if len(warn.warnings) != 1 {
		t.Fatalf("got %d warnings, want 1 repeat-name compilation-unit warning: %+v", len(warn.warnings), warn.warnings)
	}
}

// TestSectionLayoutSymOnFlagWarns covers the SymOnFlag channel: multiple
// STT_SECTION symbols in an uninterrupted compilation unit.
func TestSectionLayoutSymOnFlagWarns(t *testing.T) {
	input := "  00000000 000000 80001000  4 .text \ta.o a.a\r\n" +
		"  00000000 000000 80001000  4 .text \ta.o a.a\r\n" +
		"  00000000 000000 80001000  4 .text \ta.o a.a\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	_, err := scanSectionLayout(c, ".text", StyleThreeColumn, warn)
	if err != nil {
		t.Fatalf("scanSectionLayout: %v", err)
	}
	if len(warn.warnings) != 1 {
		t.Fatalf("got %d warnings, want exactly 1 '-sym on' warning regardless of repeat count: %+v", len(warn.warnings), warn.warnings)
	}
}

// TestSectionLayoutTLOZTPUnits checks the TLOZ-TP grammar: three-column
// normal units, entry symbols with the 2.7-era four-space gap, and fill
// symbols without a file offset.
func TestSectionLayoutTLOZTPUnits(t *testing.T) {
	input := "  00000000 000010 80003100  4 foo \tobj.o lib.a\n" +
		"  00000000 000004 80003100    foo.entry (entry of foo) \tobj.o lib.a\n" +
		"  00000010 000008 80003110  4 *fill*\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	sl, err := scanSectionLayout(c, ".text", StyleTLOZTP, warn)
	if err != nil {
		t.Fatalf("scanSectionLayout: %v", err)
	}
	if len(sl.Units) != 3 {
		t.Fatalf("got %d units, want 3", len(sl.Units))
	}
	if sl.Units[1].Kind != UnitEntry || sl.Units[1].EntryParent != 0 {
		t.Fatalf("unit 1 = %+v, want entry of unit 0", sl.Units[1])
	}
	if sl.Units[2].Trait != TraitFill1 {
		t.Fatalf("unit 2 trait = %v, want TraitFill1", sl.Units[2].Trait)
	}
	if sl.Range != (VersionRange{Min: Version3_0_4, Max: Version3_0_4}) {
		t.Fatalf("range = %+v, want locked to 3.0.4", sl.Range)
	}
}

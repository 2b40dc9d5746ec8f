package mwlmap

import "testing"

func TestEPPCMergingReplaced(t *testing.T) {
	input := "--> duplicated code: symbol foo is duplicated by bar, size = 16 \r\n\r\n" +
		"--> the function foo will be replaced by a branch to bar\r\n\r\n\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	e, err := scanEPPCPatternMatching(c, warn)
	if err != nil {
		t.Fatalf("scanEPPCPatternMatching: %v", err)
	}
	if len(e.MergingUnits) != 1 {
		t.Fatalf("got %d merging units, want 1", len(e.MergingUnits))
	}
	u := e.MergingUnits[0]
	if !u.WillBeReplaced || u.WasInterchanged {
		t.Fatalf("unit = %+v, want WillBeReplaced=true WasInterchanged=false", u)
	}
	if u.FirstName != "foo" || u.SecondName != "bar" || u.Size != 16 {
		t.Fatalf("unit = %+v, want foo/bar/16", u)
	}
}

func TestEPPCMergingReplacedNameMismatchFails(t *testing.T) {
	input := "--> duplicated code: symbol foo is duplicated by bar, size = 16 \r\n\r\n" +
		"--> the function foo will be replaced by a branch to baz\r\n\r\n\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	_, err := scanEPPCPatternMatching(c, warn)
	if err == nil {
		t.Fatal("expected a second-name mismatch error, got nil")
	}
	scanErr := err.(*ScanError)
	if scanErr.Kind != ErrEPPCPatternMatchingMergingSecondNameMismatch {
		t.Fatalf("error kind = %v, want ErrEPPCPatternMatchingMergingSecondNameMismatch", scanErr.Kind)
	}
}

func TestEPPCInterchangeRequiresEpilogue(t *testing.T) {
	input := "--> the function foo was interchanged with bar, size=16 \r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	_, err := scanEPPCPatternMatching(c, warn)
	if err == nil {
		t.Fatal("expected an interchange-missing-epilogue error, got nil")
	}
	scanErr := err.(*ScanError)
	if scanErr.Kind != ErrEPPCPatternMatchingMergingInterchangeMissingEpilogue {
		t.Fatalf("error kind = %v, want ErrEPPCPatternMatchingMergingInterchangeMissingEpilogue", scanErr.Kind)
	}
}

func TestEPPCInterchangeEpilogueSizeMismatchFails(t *testing.T) {
	input := "--> the function foo was interchanged with bar, size=16 \r\n" +
		"--> duplicated code: symbol foo is duplicated by bar, size = 24 \r\n\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	_, err := scanEPPCPatternMatching(c, warn)
	if err == nil {
		t.Fatal("expected a size mismatch error, got nil")
	}
	scanErr := err.(*ScanError)
	if scanErr.Kind != ErrEPPCPatternMatchingMergingSizeMismatch {
		t.Fatalf("error kind = %v, want ErrEPPCPatternMatchingMergingSizeMismatch", scanErr.Kind)
	}
}

func TestEPPCFoldingWithNewBranchFunction(t *testing.T) {
	input := "\r\n\r\n\r\nCode folded in file: obj.o \r\n" +
		"--> foo is duplicated by bar, size = 8, new branch function foo \r\n\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	e, err := scanEPPCPatternMatching(c, warn)
	if err != nil {
		t.Fatalf("scanEPPCPatternMatching: %v", err)
	}
	if len(e.FoldingUnits) != 1 || len(e.FoldingUnits[0].Entries) != 1 {
		t.Fatalf("got folding units = %+v", e.FoldingUnits)
	}
	entry := e.FoldingUnits[0].Entries[0]
	if entry.NewBranchFunction != "foo" {
		t.Fatalf("entry.NewBranchFunction = %q, want %q", entry.NewBranchFunction, "foo")
	}
	if e.Range.Min < Version4_2_build142 {
		t.Fatalf("Range.Min = %v, want >= Version4_2_build142", e.Range.Min)
	}
}

// TestEPPCMergingODRViolationWarns covers the ODRViolationEPPCMerging
// channel: the same first_name duplicated twice across two merging units.
func TestEPPCMergingODRViolationWarns(t *testing.T) {
	input := "--> duplicated code: symbol foo is duplicated by bar, size = 16 \r\n\r\n" +
		"--> duplicated code: symbol foo is duplicated by baz, size = 8 \r\n\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	e, err := scanEPPCPatternMatching(c, warn)
	if err != nil {
		t.Fatalf("scanEPPCPatternMatching: %v", err)
	}
	if len(e.MergingUnits) != 2 {
		t.Fatalf("got %d merging units, want 2", len(e.MergingUnits))
	}
	if len(warn.warnings) != 1 {
		t.Fatalf("got %d warnings, want 1 ODR violation for repeated first_name %q", len(warn.warnings), "foo")
	}
}

// TestEPPCFoldingRepeatObjectWarns covers the FoldingRepeatObject channel:
// the same object folded under two separate "Code folded in file:" headers.
func TestEPPCFoldingRepeatObjectWarns(t *testing.T) {
	input := "\r\n\r\n\r\nCode folded in file: obj.o \r\n" +
		"--> foo is duplicated by bar, size = 8 \r\n\r\n" +
		"\r\n\r\n\r\nCode folded in file: obj.o \r\n" +
		"--> baz is duplicated by qux, size = 4 \r\n\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	e, err := scanEPPCPatternMatching(c, warn)
	if err != nil {
		t.Fatalf("scanEPPCPatternMatching: %v", err)
	}
	if len(e.FoldingUnits) != 2 {
		t.Fatalf("got %d folding units, want 2", len(e.FoldingUnits))
	}
	if len(warn.warnings) != 1 {
		t.Fatalf("got %d warnings, want 1 repeat-object warning for %q", len(warn.warnings), "obj.o")
	}
}

// TestEPPCFoldingODRViolationWarns covers the ODRViolationEPPCFolding
// channel: one first_name folded twice within a single object's summary.
func TestEPPCFoldingODRViolationWarns(t *testing.T) {
	input := "\r\n\r\n\r\nCode folded in file: obj.o \r\n" +
		"--> foo is duplicated by bar, size = 8 \r\n\r\n" +
		"--> foo is duplicated by baz, size = 4 \r\n\r\n"
	c := newCursor([]byte(input))
	warn := newWarningSink(DefaultWarningConfig())
	e, err := scanEPPCPatternMatching(c, warn)
	if err != nil {
		t.Fatalf("scanEPPCPatternMatching: %v", err)
	}
	if len(e.FoldingUnits) != 1 || len(e.FoldingUnits[0].Entries) != 2 {
		t.Fatalf("got folding units = %+v", e.FoldingUnits)
	}
	if len(warn.warnings) != 1 {
		t.Fatalf("got %d warnings, want 1 folding ODR violation for %q", len(warn.warnings), "foo")
	}
}

func TestEPPCEmptyReturnsNil(t *testing.T) {
	c := newCursor([]byte("nothing relevant here\r\n"))
	warn := newWarningSink(DefaultWarningConfig())
	e, err := scanEPPCPatternMatching(c, warn)
	if err != nil {
		t.Fatalf("scanEPPCPatternMatching: %v", err)
	}
	if e != nil {
		t.Fatalf("expected nil for an empty portion, got %+v", e)
	}
}

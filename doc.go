// Package mwlmap scans and re-emits the textual linker-map artifact produced by the
// Metrowerks/CodeWarrior linker (MWLD/MWLDEPPC) for PowerPC GameCube/Wii targets.
//
// A linker map is a concatenated sequence of heterogeneous "portions" — a symbol
// closure, a pattern-matching report, zero or more section layouts, a memory map,
// and so on — each printed in one of several historical printf-layout dialects
// depending on the CodeWarrior release that produced it. Scan parses a byte buffer
// into a Map; Print walks a Map and re-emits the exact bytes that produced it.
//
// The package does no file I/O and owns no CLI surface: callers supply a buffer
// and receive a Map plus the line number scanning stopped at. See cmd/mwlmapdump
// for a thin collaborator that does the file-reading and flag-parsing legwork.
package mwlmap

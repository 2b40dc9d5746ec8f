package mwlmap

// warningSink collects non-fatal diagnostics gated by an explicit
// WarningConfig threaded into the scan call rather than process-wide
// mutable toggles.
type warningSink struct {
	cfg      WarningConfig
	warnings []Warning
}

func newWarningSink(cfg WarningConfig) *warningSink {
	return &warningSink{cfg: cfg}
}

func (w *warningSink) emit(enabled bool, line int, message string) {
	if !enabled {
		return
	}
	w.warnings = append(w.warnings, Warning{Line: line, Message: message})
}

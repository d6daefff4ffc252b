// Package htmllog records log entries grouped into named sections and keeps a
// self-contained HTML report of them on disk.
//
// Every mutating call re-renders the whole report and overwrites a single file
// per run at:
//
//	<logsPath>/YYYY/MM/DD/<title>_<YYYYMMDD_HHmmss>.html
//
// Usage:
//
//	l, err := htmllog.New("Import", "nightly import", "/var/log/import")
//	if err != nil {
//	    return err
//	}
//	if err := l.CreateSection("Phase 1", "P1"); err != nil {
//	    return err
//	}
//	l.Info("P1", "started")
//	l.Error("P1", "bad row 4")
//	l.CloseSection("P1")
//
// Entries may only be added to sections that exist. The reserved EXCEPTIONS
// section is the exception: ErrorException and DebugException create it on
// first use.
//
// A Logger serializes its own calls, but two Loggers (or two processes) must
// not share a report file.
package htmllog

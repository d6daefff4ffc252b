// Package dateformat renders timestamps through simple placeholder templates.
//
// Supported tokens are dd (zero-padded day), mm (zero-padded month), yyyy (year),
// H (hour), i (minute) and s (second). Only the first occurrence of each token
// is substituted.
package dateformat

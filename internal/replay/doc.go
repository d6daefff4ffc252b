// Package replay drives a report from a YAML script, which is handy for
// reproducing a run or producing sample reports:
//
//	title: Import
//	description: nightly import
//	steps:
//	  - op: create
//	    section: P1
//	    name: Phase 1
//	  - op: info
//	    section: P1
//	    value: started
//	  - op: close
//	    section: P1
//	    pause: 250ms
//	  - op: error_exception
//	    value: connection reset
//
// A step's pause is slept before the step runs.
package replay

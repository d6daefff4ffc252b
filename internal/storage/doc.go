// Package storage persists rendered reports under a date-partitioned tree:
//
//	<base>/YYYY/MM/DD/<title>_<YYYYMMDD_HHmmss>.html
//
// Every path component is derived from the run start time, so a run always
// targets the same file. Directory levels are provisioned one at a time and
// writes go through a temp file and a rename.
package storage

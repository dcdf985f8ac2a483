// Package filterstate holds the small stateful objects the view accumulates
// across picker sessions: the active query filter and the segmented
// date/time picker state. Neither is part of the paging core; both are
// consumed only by the tui package's status line and Datetime window.
package filterstate

import (
	"fmt"

	"github.com/arborian/logscope/sqlsource"
)

// LevelNames and FacilityNames mirror syslog's severity/facility name
// tables, used to render the filter summary and populate the level/facility
// pickers.
var LevelNames = []string{"emerg", "alert", "crit", "err", "warning", "notice", "info", "debug"}

var FacilityNames = []string{
	"kern", "user", "mail", "daemon", "auth", "syslog", "lpr", "news",
	"uucp", "cron", "authpriv", "ftp", "ntp", "security", "console", "solaris-cron",
	"local0", "local1", "local2", "local3", "local4", "local5", "local6", "local7",
}

// Filter accumulates the query restrictions set by the level/facility/host/
// program pickers across picker sessions and renders them for the status
// line.
type Filter struct {
	Level    *int
	Facility *int
	Host     string
	Program  string
}

// AsSQLFilter converts to the sqlsource.Filter shape the sqlsource query
// builder consumes.
func (f Filter) AsSQLFilter() sqlsource.Filter {
	return sqlsource.Filter{
		Level:    f.Level,
		Facility: f.Facility,
		Host:     f.Host,
		Program:  f.Program,
	}
}

// GetSummary returns the (label, value) pairs the status line renders, in
// the fixed order level/facility/host/program.
func (f Filter) GetSummary() [][2]string {
	return [][2]string{
		{"level", describeLevel(f.Level)},
		{"facility", describeFacility(f.Facility)},
		{"host", describeOrAny(f.Host)},
		{"program", describeOrAny(f.Program)},
	}
}

func describeOrAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

func describeLevel(level *int) string {
	if level == nil {
		return "any"
	}
	if *level >= 0 && *level < len(LevelNames) {
		return LevelNames[*level]
	}
	return fmt.Sprintf("%d", *level)
}

func describeFacility(facility *int) string {
	if facility == nil {
		return "any"
	}
	if *facility >= 0 && *facility < len(FacilityNames) {
		return FacilityNames[*facility]
	}
	return fmt.Sprintf("%d", *facility)
}

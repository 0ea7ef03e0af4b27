package helpers

import (
	"fmt"
	"strings"
)

// Identifier formats. {YEAR}, {DEPT} and {SERIAL} are substituted; the
// serial is zero-padded to four digits and scoped per department+session
// for matric numbers and globally for staff IDs.
const (
	DefaultMatricFormat  = "COE/{YEAR}/{DEPT}/{SERIAL}"
	DefaultStaffIDFormat = "STAFF/{YEAR}/{SERIAL}"
)

// FormatMatricNumber builds a matriculation number from the admission
// session name (e.g. "2024/2025"), the department code and a 1-based
// serial. The year portion is the first half of the session name.
func FormatMatricNumber(format, sessionName, deptCode string, serial int) string {
	year := sessionName
	if idx := strings.Index(sessionName, "/"); idx > 0 {
		year = sessionName[:idx]
	}

	out := strings.ReplaceAll(format, "{YEAR}", year)
	out = strings.ReplaceAll(out, "{DEPT}", deptCode)
	out = strings.ReplaceAll(out, "{SERIAL}", fmt.Sprintf("%04d", serial))
	return out
}

// FormatStaffID builds a staff identifier from the current year and a
// 1-based serial.
func FormatStaffID(format string, year, serial int) string {
	out := strings.ReplaceAll(format, "{YEAR}", fmt.Sprintf("%d", year))
	out = strings.ReplaceAll(out, "{SERIAL}", fmt.Sprintf("%04d", serial))
	return out
}

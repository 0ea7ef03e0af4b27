package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMatricNumber(t *testing.T) {
	tests := []struct {
		name        string
		format      string
		sessionName string
		deptCode    string
		serial      int
		want        string
	}{
		{"default format", DefaultMatricFormat, "2024/2025", "CSC", 1, "COE/2024/CSC/0001"},
		{"serial padding", DefaultMatricFormat, "2024/2025", "EEE", 123, "COE/2024/EEE/0123"},
		{"large serial", DefaultMatricFormat, "2024/2025", "CSC", 12345, "COE/2024/CSC/12345"},
		{"session without slash", DefaultMatricFormat, "2024", "CSC", 7, "COE/2024/CSC/0007"},
		{"custom format", "{DEPT}-{YEAR}-{SERIAL}", "2023/2024", "MTH", 42, "MTH-2023-0042"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMatricNumber(tt.format, tt.sessionName, tt.deptCode, tt.serial)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatStaffID(t *testing.T) {
	assert.Equal(t, "STAFF/2024/0001", FormatStaffID(DefaultStaffIDFormat, 2024, 1))
	assert.Equal(t, "STAFF/2025/0210", FormatStaffID(DefaultStaffIDFormat, 2025, 210))
	assert.Equal(t, "REG-2024-0003", FormatStaffID("REG-{YEAR}-{SERIAL}", 2024, 3))
}

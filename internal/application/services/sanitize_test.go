package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple name kept", "report.pdf", "report.pdf"},
		{"uppercase base lowered", "Report.pdf", "report.pdf"},
		{"spaces become dashes", "my summer photo.jpg", "my-summer-photo.jpg"},
		{"diacritics stripped", "résumé.docx", "resume.docx"},
		{"path components dropped", "../../etc/passwd.txt", "passwd.txt"},
		{"windows separators dropped", `C:\Users\jane\budget.xlsx`, "budget.xlsx"},
		{"repeated separators collapse", "a -- b__c.txt", "a-b-c.txt"},
		{"empty input falls back", "", "file"},
		{"dot only falls back", ".", "file"},
		{"all-symbol base falls back", "###.png", "file.png"},
		{"reserved device name prefixed", "con.txt", "_con.txt"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFileName(tt.in))
		})
	}
}

func TestSanitizeFileName_LongNamesTruncated(t *testing.T) {
	long := strings.Repeat("a", 300) + ".txt"
	got := sanitizeFileName(long)
	assert.LessOrEqual(t, len(got), maxBaseNameLen)
	assert.True(t, strings.HasSuffix(got, ".txt"))
}

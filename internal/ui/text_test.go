package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withNoColor(t *testing.T) {
	t.Helper()
	os.Setenv("NO_COLOR", "1")
	t.Cleanup(func() { os.Unsetenv("NO_COLOR") })
}

func withColor(t *testing.T) {
	t.Helper()
	os.Unsetenv("NO_COLOR")
	original := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = original })
}

func TestFormatterWithNoColor(t *testing.T) {
	withNoColor(t)

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "autoarchive sync --push", "`autoarchive sync --push`"},
		{"Path has no decoration", Path, "output_archives/archive_1_ab12.7z", "output_archives/archive_1_ab12.7z"},
		{"Highlight adds quotes", Highlight, "家庭照片", "'家庭照片'"},
		{"Muted adds parentheses", Muted, "local only", "(local only)"},
		{"Secret keeps edge spaces visible", Secret, " P@ss word ", "< P@ss word >"},
		{"Secret of empty password", Secret, "", "<>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.formatter.Sprint(tt.input); got != tt.want {
				t.Errorf("Sprint(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatterWithColor(t *testing.T) {
	withColor(t)

	result := Secret.Sprint("P@ssw0rd123456!!")
	if strings.ContainsAny(result, "<>") {
		t.Errorf("Secret should not add brackets when color is enabled, got: %q", result)
	}
	if !strings.Contains(result, "\x1b[") || !strings.Contains(result, "P@ssw0rd123456!!") {
		t.Errorf("Secret should colorize the password, got: %q", result)
	}

	result = Highlight.Sprintf("%d archive(s)", 3)
	if strings.Contains(result, "'") || !strings.Contains(result, "3 archive(s)") {
		t.Errorf("Highlight.Sprintf with color = %q", result)
	}
}

func TestFormatterSprintf(t *testing.T) {
	withNoColor(t)

	if got := Code.Sprintf("autoarchive %s", "sync --pull"); got != "`autoarchive sync --pull`" {
		t.Errorf("Code.Sprintf() = %q", got)
	}
	if got := Muted.Sprint("stored in ", "both"); got != "(stored in both)" {
		t.Errorf("Muted.Sprint with multiple args = %q", got)
	}
}

func TestNoColorFunction(t *testing.T) {
	withNoColor(t)
	if !noColor() {
		t.Error("noColor() should return true when NO_COLOR is set")
	}
	os.Unsetenv("NO_COLOR")

	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()
	if !noColor() {
		t.Error("noColor() should return true when color.NoColor is true")
	}
}

func TestShortFingerprint(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", "b94d27b9934d…"},
		{"5eb63bbbe01eeed093cb22bb8f5acdc3", "5eb63bbbe01e…"},
		{"5eb63bbbe01e", "5eb63bbbe01e"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ShortFingerprint(tt.in); got != tt.want {
			t.Errorf("ShortFingerprint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"photos", 12, "photos"},
		{"photos", 6, "photos"},
		{"holiday-photos-2024", 8, "holiday…"},
		{"二零二四年家庭照片", 5, "二零二四…"},
		{"photos", 1, "…"},
		{"photos", 0, "…"},
	}

	for _, tt := range tests {
		got := Truncate(tt.in, tt.n)
		if got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
		if tt.n > 0 && len([]rune(got)) > tt.n {
			t.Errorf("Truncate(%q, %d) is %d runes long", tt.in, tt.n, len([]rune(got)))
		}
	}
}

func TestEnsureNewline(t *testing.T) {
	for in, want := range map[string]string{"": "\n", "✓ Packed": "✓ Packed\n", "done\n": "done\n"} {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}

package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOperator(t *testing.T) {
	op := Operator()
	if op == "" {
		t.Fatal("Expected non-empty operator")
	}
	if strings.Contains(op, `\`) {
		t.Errorf("Operator should drop the Windows domain, got %q", op)
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		short := strings.SplitN(host, ".", 2)[0]
		if !strings.HasSuffix(op, "@"+short) {
			t.Errorf("Operator = %q, want suffix @%s", op, short)
		}
		if strings.Count(op, "@") != 1 {
			t.Errorf("Operator = %q, want exactly one @", op)
		}
	}
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "photos.txt")
	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	if ok, err := PathExists(file); err != nil || !ok {
		t.Errorf("PathExists(file) = %v, %v; want true, nil", ok, err)
	}
	if ok, err := PathExists(filepath.Join(dir, "missing")); err != nil || ok {
		t.Errorf("PathExists(missing) = %v, %v; want false, nil", ok, err)
	}
	if !IsDir(dir) || IsDir(file) {
		t.Error("IsDir misreports directory or file")
	}
}

func TestReadSecret(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"TrailingNewline", "ghp_abc123\n", "ghp_abc123", false},
		{"Surrounded", "  ghp_abc123 \r\n", "ghp_abc123", false},
		{"Empty", "", "", true},
		{"OnlyWhitespace", " \n\t", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadSecret(strings.NewReader(tc.input))
			if (err != nil) != tc.wantErr {
				t.Fatalf("ReadSecret error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ReadSecret = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPluralize(t *testing.T) {
	if got := Pluralize(1, "record"); got != "1 record" {
		t.Errorf("got %q", got)
	}
	if got := Pluralize(0, "record"); got != "0 records" {
		t.Errorf("got %q", got)
	}
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "***"},
		{"ghp_1234567890abcd", "********abcd"},
	}

	for _, tc := range tests {
		if got := MaskToken(tc.in); got != tc.want {
			t.Errorf("MaskToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

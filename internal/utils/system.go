package utils

import (
	"os"
	"os/user"
	"strings"
)

// Operator names who is running the command as user@host, for the audit log.
// The host is cut at its first dot. Missing parts fall back to $USER and
// "unknown".
func Operator() string {
	name := ""
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = "unknown"
	}
	// Windows reports DOMAIN\user.
	if i := strings.LastIndex(name, `\`); i >= 0 {
		name = name[i+1:]
	}

	host, err := os.Hostname()
	if err != nil || host == "" {
		return name
	}
	if i := strings.IndexByte(host, '.'); i > 0 {
		host = host[:i]
	}
	return name + "@" + host
}

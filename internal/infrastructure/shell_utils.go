package infrastructure

import "strings"

// shellSpecialChars are the characters that force an argument to be quoted
const shellSpecialChars = " \t\n\r'\"$`\\!*?[](){}|;<>&~#%="

// ShellEscape quotes s for display in a copy-pasteable command line.
// It is only used for the download log; commands are never run via a shell.
func ShellEscape(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, shellSpecialChars) {
		return s
	}
	// Close the quote, emit a double-quoted single quote, reopen.
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// ShellEscapeCommand renders binary and args as one shell-safe line
func ShellEscapeCommand(binary string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, ShellEscape(binary))
	for _, arg := range args {
		parts = append(parts, ShellEscape(arg))
	}
	return strings.Join(parts, " ")
}

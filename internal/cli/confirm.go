package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks prompt on out and reads one answer from in. Only y, yes, o and oui
// (any case) count as agreement; end of input declines.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "o", "oui":
		return true
	}
	return false
}

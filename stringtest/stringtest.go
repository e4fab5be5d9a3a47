// Package stringtest helps construct expected multi-line test output with
// explicit line endings.
package stringtest

import "strings"

// JoinLF joins the given lines with LF line endings.
//
//	want := stringtest.JoinLF(
//	    "header",
//	    "row",
//	    "",
//	) // -> "header\nrow\n"
func JoinLF(lines ...string) string {
	return strings.Join(lines, "\n")
}

// JoinCRLF joins the given lines with CRLF line endings, for expected
// output produced on Windows.
func JoinCRLF(lines ...string) string {
	return strings.Join(lines, "\r\n")
}

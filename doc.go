// Package numext extracts structured numerical data from semi-regular
// plain-text reports such as scientific output files and tabular dumps.
//
// A compact mini-language describes one line of the target text as a
// sequence of whitespace-separated tokens: "~" matches arbitrary
// content, "@" a literal string and "#" a number of a given sign and
// format. A "!" flag captures the matched value into a named group.
// Line patterns combine into a Parser with an optional head, a
// repeated body and an optional tail; the body may itself be another
// Parser, so nested repetitive block structures extract with correct
// grouping.
//
// A tiny example, pulling every float out of a table whose header line
// carries integer column indices:
//
//	prs, err := numext.NewParser(
//	    numext.Line("#++i"),     // head: a line of positive integers
//	    numext.Line("#!+.f"),    // body: capture one-or-more floats per line
//	    numext.None,             // no tail
//	)
//	if err != nil {
//	    panic(err)
//	}
//	blocks, err := prs.CaptureBody(data)
//
// Parsers compile once and are immutable: the same Parser may be used
// concurrently on any number of documents.
package numext

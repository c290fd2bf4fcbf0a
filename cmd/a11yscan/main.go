// Package main provides the entry point for the a11yscan CLI.
//
// a11yscan replays recorded accessibility scan sessions: streams of scan
// completions and tab stop events captured from a page. Each stream is fed
// through the scan result store and the final state is reported.
//
// Usage:
//
//	a11yscan replay session.jsonl
//	a11yscan compare before.jsonl after.jsonl
//
// See --help for all available options.
package main

func main() {
	Execute()
}

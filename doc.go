// Package main implements aochelper, a CLI tool for downloading Advent of
// Code puzzle inputs using a browser session cookie.
//
// # Features
//
//   - Per-workspace configuration (year, optional explicit session key)
//   - Session cookie auto-discovery from a local Firefox profile
//   - One authenticated GET per day, written to inputs/<year>/<day>
//
// # Usage
//
//	aochelper set year <year>
//	aochelper set session_key <key>
//	aochelper get <day>
//
// # Configuration
//
// Configuration is stored in .aochelper.json in the current directory, so
// each puzzle workspace keeps its own year. If no session key is stored,
// the AOC_SESSION environment variable (a .env file is honored) and then
// the local Firefox cookie database are tried, in that order. Cookie
// auto-discovery is a convenience for supported setups; on any other
// machine, store the key explicitly with `set session_key`.
package main

// Package writeup generates Markdown writeup notes for CTF and coding
// challenge pages. It normalizes a page title into a file name, optionally
// pulls problem text from the platform's API or page markup, renders a note
// template and hands the result to a note-taking application through its
// custom URI scheme.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/).
package writeup

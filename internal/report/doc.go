// Package report renders conference changes as a GitHub issue.
//
// Build is a pure function of a diff, the current snapshot, and the detection time.
// Every current conference is placed in exactly one bucket by walking an ordered list
// of rules and taking the first that matches.
package report

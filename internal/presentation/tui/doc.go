// Package tui renders push progress and reports for terminals.
package tui

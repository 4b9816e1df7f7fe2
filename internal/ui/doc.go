// Package ui styles terminal output.
//
// Styling is applied only when the destination is a terminal and neither
// NO_COLOR nor CI is set; otherwise text passes through untouched.
package ui

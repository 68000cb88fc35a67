// Package textfield implements the input rules behind text fields: a Config
// filters raw keystrokes and classifies the filtered value into a State
// (blank, valid, incomplete or invalid). Configs are immutable and safe for
// concurrent use; the mutable value lives in the element controllers.
package textfield

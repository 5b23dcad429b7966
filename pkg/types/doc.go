// Package types defines the layout model for furnish: shapes, colours, designs,
// the one-line persistence codec, session entities, the SessionStore interface,
// and the standard error values shared by every other package.
package types

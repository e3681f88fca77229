// Package store persists expression records as plain-text files: a
// human-readable display section followed by a machine-readable JSON tail.
// The JSON tail embeds the mathjs and latex candidate structures as literal
// text (a bare expression for a single form, a JSON array for multiple
// forms), so loading a saved file reconstructs the record with its primary
// and alternative forms intact.
package store

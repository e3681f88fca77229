package agent

import "github.com/mathprose/mathprose/core/normalize"

// Session is the whole of the interactive state: the most recent successful
// record and the debug flag. Each successful query overwrites Last; nothing
// is ever merged.
type Session struct {
	Last  *normalize.Record
	Debug bool
}

// Remember overwrites the session's last record.
func (s *Session) Remember(rec *normalize.Record) {
	s.Last = rec
}

// ToggleDebug flips the debug flag and returns the new state.
func (s *Session) ToggleDebug() bool {
	s.Debug = !s.Debug
	return s.Debug
}

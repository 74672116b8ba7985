package chip8

import "log"

// OpcodeLogger optionally traces every opcode ExecuteCycle runs. It is
// disabled by default; callers enable it explicitly for debugging. This
// mirrors the toggleable logger theothertomelliott's chip8 package uses
// rather than pulling in a structured logging library the rest of the
// pack never reaches for either.
type OpcodeLogger struct {
	Enabled bool
}

// Printf logs through the standard log package when enabled, and is a
// no-op otherwise.
func (l *OpcodeLogger) Printf(format string, v ...interface{}) {
	if l == nil || !l.Enabled {
		return
	}
	log.Printf(format, v...)
}

// Trace logs the opcode about to execute at the given pc, when enabled.
func (l *OpcodeLogger) Trace(pc uint16, opcode uint16) {
	l.Printf("pc=0x%03X op=0x%04X", pc, opcode)
}

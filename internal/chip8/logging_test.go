package chip8

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestOpcodeLoggerDisabledByDefault(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	logger := &OpcodeLogger{}
	logger.Trace(ProgramStart, 0xA123)

	if buf.Len() != 0 {
		t.Errorf("expected no output from a disabled logger, got %q", buf.String())
	}
}

func TestOpcodeLoggerNilReceiverIsNoop(t *testing.T) {
	var logger *OpcodeLogger
	logger.Trace(ProgramStart, 0xA123) // must not panic
}

func TestOpcodeLoggerTracesWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	logger := &OpcodeLogger{Enabled: true}
	logger.Trace(0x200, 0xA123)

	out := buf.String()
	if !strings.Contains(out, "0x200") || !strings.Contains(out, "0xA123") {
		t.Errorf("trace output = %q, want pc=0x200 and op=0xA123", out)
	}
}

func TestExecuteCycleTracesThroughState(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	s := newTestState(t)
	s.Logger = &OpcodeLogger{Enabled: true}
	s.Memory[ProgramStart] = 0xA1
	s.Memory[ProgramStart+1] = 0x23

	if err := ExecuteCycle(s, OriginalQuirks); err != nil {
		t.Fatalf("ExecuteCycle: %v", err)
	}

	if !strings.Contains(buf.String(), "0xA123") {
		t.Errorf("expected ExecuteCycle to trace the fetched opcode, got %q", buf.String())
	}
}

func TestExecuteCycleWithNilLoggerDoesNotPanic(t *testing.T) {
	s := newTestState(t)
	s.Memory[ProgramStart] = 0xA1
	s.Memory[ProgramStart+1] = 0x00

	if err := ExecuteCycle(s, OriginalQuirks); err != nil {
		t.Fatalf("ExecuteCycle: %v", err)
	}
}

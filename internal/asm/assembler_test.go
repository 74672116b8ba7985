package asm

import (
	"bytes"
	"testing"
)

func assembleOrFatal(t *testing.T, source string, origin int) []byte {
	t.Helper()
	rom, err := AssembleText(source, origin)
	if err != nil {
		t.Fatalf("AssembleText: %v", err)
	}
	return rom
}

func TestScenarioBasicLabelJump(t *testing.T) {
	rom := assembleOrFatal(t, "ORG 0x200\nstart: LD V0,1\nADD V0,2\nJP start", 0x200)
	want := []byte{0x60, 0x01, 0x70, 0x02, 0x12, 0x00}
	if !bytes.Equal(rom, want) {
		t.Errorf("rom = % X, want % X", rom, want)
	}
}

func TestScenarioDataDirectives(t *testing.T) {
	rom := assembleOrFatal(t, "ORG 0x200\nDB 0x12,34,'A'\nDB \"BC\"\nDW 0xABCD", 0x200)
	want := []byte{0x12, 0x22, 0x41, 0x42, 0x43, 0xAB, 0xCD}
	if !bytes.Equal(rom, want) {
		t.Errorf("rom = % X, want % X", rom, want)
	}
}

func TestScenarioOrgPadding(t *testing.T) {
	rom := assembleOrFatal(t, "ORG 0x200\nJP 0x206\nORG 0x206\nRET", 0x200)
	want := []byte{0x12, 0x06, 0x00, 0x00, 0x00, 0x00, 0x00, 0xEE}
	if !bytes.Equal(rom, want) {
		t.Errorf("rom = % X, want % X", rom, want)
	}
}

func TestOriginLaw(t *testing.T) {
	source := "ORG 0x200\nstart: JP start\nDB 1,2,3\nDW 1,2\nORG 0x210\nRET"
	rom := assembleOrFatal(t, source, 0x200)
	// 2 (JP) + 3 (DB) + 4 (DW) = 9 bytes -> pc reaches 0x209, then ORG 0x210
	// pads 7 bytes, then RET is 2 bytes -> final pc 0x212.
	wantLen := 0x212 - 0x200
	if len(rom) != wantLen {
		t.Errorf("len(rom) = %d, want %d", len(rom), wantLen)
	}
}

func TestRoundTripReencodesIdentically(t *testing.T) {
	source := "ORG 0x200\nloop: LD V0, K\nSE V0, 5\nJP loop\nEXIT"
	statements, labels, err := parseSource(source, 0x200)
	if err != nil {
		t.Fatalf("parseSource: %v", err)
	}
	first, err := encodeStatements(statements, labels, 0x200)
	if err != nil {
		t.Fatalf("encodeStatements (1st): %v", err)
	}
	second, err := encodeStatements(statements, labels, 0x200)
	if err != nil {
		t.Fatalf("encodeStatements (2nd): %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("re-running pass 2 produced different bytes: % X vs % X", first, second)
	}
}

func TestDuplicateLabelFails(t *testing.T) {
	_, err := AssembleText("a: CLS\na: RET", 0x200)
	if err == nil {
		t.Fatal("expected duplicate label error")
	}
}

func TestOrgBackwardsFails(t *testing.T) {
	_, err := AssembleText("ORG 0x200\nDB 1,2,3,4\nORG 0x201", 0x200)
	if err == nil {
		t.Fatal("expected ORG-backwards error")
	}
}

func TestOrgBelowOriginFails(t *testing.T) {
	_, err := AssembleText("ORG 0x100", 0x200)
	if err == nil {
		t.Fatal("expected ORG-below-origin error")
	}
}

func TestUnresolvedLabelFails(t *testing.T) {
	_, err := AssembleText("JP nowhere", 0x200)
	if err == nil {
		t.Fatal("expected invalid value error for unresolved label")
	}
}

func TestEmptyDbFails(t *testing.T) {
	_, err := AssembleText("DB ''", 0x200)
	if err == nil {
		t.Fatal("expected DB-produced-no-bytes error")
	}
}

func TestCommentsStrippedOutsideQuotes(t *testing.T) {
	rom := assembleOrFatal(t, "CLS ; this is a comment\nDB ';' # also a comment", 0x200)
	want := []byte{0x00, 0xE0, byte(';')}
	if !bytes.Equal(rom, want) {
		t.Errorf("rom = % X, want % X", rom, want)
	}
}

func TestDottedMnemonic(t *testing.T) {
	rom := assembleOrFatal(t, ".cls", 0x200)
	want := []byte{0x00, 0xE0}
	if !bytes.Equal(rom, want) {
		t.Errorf("rom = % X, want % X", rom, want)
	}
}

func TestJPTwoArgFormEncodesAsBxkk(t *testing.T) {
	rom := assembleOrFatal(t, "JP V3, 0x20", 0x200)
	want := []byte{0xB3, 0x20}
	if !bytes.Equal(rom, want) {
		t.Errorf("rom = % X, want % X", rom, want)
	}
}

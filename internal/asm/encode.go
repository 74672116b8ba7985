package asm

import "strings"

func expectArgCount(mnemonic string, args []string, expected, line int) error {
	if len(args) != expected {
		return newErrorf(line, "%s expects %d argument(s), got %d", mnemonic, expected, len(args))
	}
	return nil
}

// encodeInstruction maps (mnemonic, argument list, label table) to a
// 16-bit opcode, per the encoding table in the spec. It is a pure
// function: all side effects are returning an error.
func encodeInstruction(mnemonic string, args []string, labels LabelTable, line int) (uint16, error) {
	op := strings.ToUpper(mnemonic)

	switch op {
	case "CLS":
		if err := expectArgCount(op, args, 0, line); err != nil {
			return 0, err
		}
		return 0x00E0, nil

	case "RET":
		if err := expectArgCount(op, args, 0, line); err != nil {
			return 0, err
		}
		return 0x00EE, nil

	case "EXIT":
		if err := expectArgCount(op, args, 0, line); err != nil {
			return 0, err
		}
		return 0x00FD, nil

	case "JP":
		return encodeJP(args, labels, line)

	case "CALL":
		if err := expectArgCount(op, args, 1, line); err != nil {
			return 0, err
		}
		address, err := parseValue(args[0], labels, line)
		if err != nil {
			return 0, err
		}
		if err := ensureRange(address, 0, 0x0FFF, "address", line); err != nil {
			return 0, err
		}
		return 0x2000 | uint16(address), nil

	case "SE":
		return encodeSkip(op, 0x5000, 0x3000, args, labels, line)

	case "SNE":
		return encodeSkip(op, 0x9000, 0x4000, args, labels, line)

	case "LD":
		return encodeLD(args, labels, line)

	case "ADD":
		return encodeADD(args, labels, line)

	case "OR", "AND", "XOR", "SUB", "SUBN":
		return encodeALU(op, args, line)

	case "SHR", "SHL":
		return encodeShift(op, args, line)

	case "RND":
		if err := expectArgCount(op, args, 2, line); err != nil {
			return 0, err
		}
		x, err := parseRegister(args[0], line)
		if err != nil {
			return 0, err
		}
		nn, err := parseValue(args[1], labels, line)
		if err != nil {
			return 0, err
		}
		if err := ensureRange(nn, 0, 0xFF, "byte", line); err != nil {
			return 0, err
		}
		return 0xC000 | uint16(x)<<8 | uint16(nn), nil

	case "DRW":
		if err := expectArgCount(op, args, 3, line); err != nil {
			return 0, err
		}
		x, err := parseRegister(args[0], line)
		if err != nil {
			return 0, err
		}
		y, err := parseRegister(args[1], line)
		if err != nil {
			return 0, err
		}
		n, err := parseValue(args[2], labels, line)
		if err != nil {
			return 0, err
		}
		if err := ensureRange(n, 0, 0xF, "nibble", line); err != nil {
			return 0, err
		}
		return 0xD000 | uint16(x)<<8 | uint16(y)<<4 | uint16(n), nil

	case "SKP":
		if err := expectArgCount(op, args, 1, line); err != nil {
			return 0, err
		}
		x, err := parseRegister(args[0], line)
		if err != nil {
			return 0, err
		}
		return 0xE09E | uint16(x)<<8, nil

	case "SKNP":
		if err := expectArgCount(op, args, 1, line); err != nil {
			return 0, err
		}
		x, err := parseRegister(args[0], line)
		if err != nil {
			return 0, err
		}
		return 0xE0A1 | uint16(x)<<8, nil
	}

	return 0, newErrorf(line, "unknown instruction '%s'", mnemonic)
}

// encodeJP handles both "JP nnn" (1nnn) and the two-argument "JP Vx, kk"
// form, which this assembler encodes as Bxkk — a per-register
// jump-with-offset variant, not the canonical Bnnn (jump to V0+nnn).
// Execution semantics of the B family depend on the jump_with_vx quirk.
func encodeJP(args []string, labels LabelTable, line int) (uint16, error) {
	switch len(args) {
	case 1:
		address, err := parseValue(args[0], labels, line)
		if err != nil {
			return 0, err
		}
		if err := ensureRange(address, 0, 0x0FFF, "address", line); err != nil {
			return 0, err
		}
		return 0x1000 | uint16(address), nil
	case 2:
		x, err := parseRegister(args[0], line)
		if err != nil {
			return 0, err
		}
		nn, err := parseValue(args[1], labels, line)
		if err != nil {
			return 0, err
		}
		if err := ensureRange(nn, 0, 0xFF, "byte", line); err != nil {
			return 0, err
		}
		return 0xB000 | uint16(x)<<8 | uint16(nn), nil
	default:
		return 0, newErrorf(line, "JP expects one or two arguments")
	}
}

// encodeSkip handles SE/SNE, which share the shape "mnemonic Vx, kk|Vy".
func encodeSkip(mnemonic string, registerForm, immediateForm uint16, args []string, labels LabelTable, line int) (uint16, error) {
	if err := expectArgCount(mnemonic, args, 2, line); err != nil {
		return 0, err
	}
	x, err := parseRegister(args[0], line)
	if err != nil {
		return 0, err
	}
	if isRegister(args[1]) {
		y, err := parseRegister(args[1], line)
		if err != nil {
			return 0, err
		}
		return registerForm | uint16(x)<<8 | uint16(y)<<4, nil
	}
	nn, err := parseValue(args[1], labels, line)
	if err != nil {
		return 0, err
	}
	if err := ensureRange(nn, 0, 0xFF, "byte", line); err != nil {
		return 0, err
	}
	return immediateForm | uint16(x)<<8 | uint16(nn), nil
}

func encodeLD(args []string, labels LabelTable, line int) (uint16, error) {
	if err := expectArgCount("LD", args, 2, line); err != nil {
		return 0, err
	}
	dest := strings.ToUpper(strings.TrimSpace(args[0]))
	src := strings.ToUpper(strings.TrimSpace(args[1]))

	if isRegister(dest) {
		x, err := parseRegister(dest, line)
		if err != nil {
			return 0, err
		}
		switch {
		case isRegister(src):
			y, err := parseRegister(src, line)
			if err != nil {
				return 0, err
			}
			return 0x8000 | uint16(x)<<8 | uint16(y)<<4, nil
		case src == "DT":
			return 0xF007 | uint16(x)<<8, nil
		case src == "K":
			return 0xF00A | uint16(x)<<8, nil
		case src == "[I]":
			return 0xF065 | uint16(x)<<8, nil
		default:
			nn, err := parseValue(args[1], labels, line)
			if err != nil {
				return 0, err
			}
			if err := ensureRange(nn, 0, 0xFF, "byte", line); err != nil {
				return 0, err
			}
			return 0x6000 | uint16(x)<<8 | uint16(nn), nil
		}
	}

	switch dest {
	case "I":
		address, err := parseValue(args[1], labels, line)
		if err != nil {
			return 0, err
		}
		if err := ensureRange(address, 0, 0x0FFF, "address", line); err != nil {
			return 0, err
		}
		return 0xA000 | uint16(address), nil
	case "DT":
		y, err := parseRegister(args[1], line)
		if err != nil {
			return 0, err
		}
		return 0xF015 | uint16(y)<<8, nil
	case "ST":
		y, err := parseRegister(args[1], line)
		if err != nil {
			return 0, err
		}
		return 0xF018 | uint16(y)<<8, nil
	case "F":
		y, err := parseRegister(args[1], line)
		if err != nil {
			return 0, err
		}
		return 0xF029 | uint16(y)<<8, nil
	case "B":
		y, err := parseRegister(args[1], line)
		if err != nil {
			return 0, err
		}
		return 0xF033 | uint16(y)<<8, nil
	case "[I]":
		y, err := parseRegister(args[1], line)
		if err != nil {
			return 0, err
		}
		return 0xF055 | uint16(y)<<8, nil
	}

	return 0, newErrorf(line, "unsupported LD form: %s, %s", strings.TrimSpace(args[0]), strings.TrimSpace(args[1]))
}

func encodeADD(args []string, labels LabelTable, line int) (uint16, error) {
	if err := expectArgCount("ADD", args, 2, line); err != nil {
		return 0, err
	}
	dest := strings.ToUpper(strings.TrimSpace(args[0]))

	if dest == "I" {
		x, err := parseRegister(args[1], line)
		if err != nil {
			return 0, err
		}
		return 0xF01E | uint16(x)<<8, nil
	}

	x, err := parseRegister(args[0], line)
	if err != nil {
		return 0, err
	}
	if isRegister(args[1]) {
		y, err := parseRegister(args[1], line)
		if err != nil {
			return 0, err
		}
		return 0x8004 | uint16(x)<<8 | uint16(y)<<4, nil
	}

	nn, err := parseValue(args[1], labels, line)
	if err != nil {
		return 0, err
	}
	if err := ensureRange(nn, 0, 0xFF, "byte", line); err != nil {
		return 0, err
	}
	return 0x7000 | uint16(x)<<8 | uint16(nn), nil
}

func encodeALU(op string, args []string, line int) (uint16, error) {
	if err := expectArgCount(op, args, 2, line); err != nil {
		return 0, err
	}
	x, err := parseRegister(args[0], line)
	if err != nil {
		return 0, err
	}
	y, err := parseRegister(args[1], line)
	if err != nil {
		return 0, err
	}

	var tail uint16
	switch op {
	case "OR":
		tail = 0x1
	case "AND":
		tail = 0x2
	case "XOR":
		tail = 0x3
	case "SUB":
		tail = 0x5
	case "SUBN":
		tail = 0x7
	}
	return 0x8000 | uint16(x)<<8 | uint16(y)<<4 | tail, nil
}

func encodeShift(op string, args []string, line int) (uint16, error) {
	if len(args) != 1 && len(args) != 2 {
		return 0, newErrorf(line, "%s expects one or two arguments", op)
	}
	x, err := parseRegister(args[0], line)
	if err != nil {
		return 0, err
	}
	y := x
	if len(args) == 2 {
		y, err = parseRegister(args[1], line)
		if err != nil {
			return 0, err
		}
	}
	tail := uint16(0x6)
	if op == "SHL" {
		tail = 0xE
	}
	return 0x8000 | uint16(x)<<8 | uint16(y)<<4 | tail, nil
}

package chip8

// RunHeadless loads romPath into a fresh State and runs up to maxCycles
// cycles, ticking the 60Hz timers every cyclesPerTimerTick cycles where
// cyclesPerTimerTick = max(1, cpuHz/60). It stops early if the ROM sets
// Exited. It is the reference external collaborator for a host that
// needs the final machine state without any display.
func RunHeadless(quirks Quirks, romPath string, maxCycles, cpuHz int) (*State, error) {
	return RunHeadlessWithLogger(quirks, romPath, maxCycles, cpuHz, nil)
}

// RunHeadlessWithLogger is RunHeadless with an OpcodeLogger attached to
// the state before the first cycle runs, for --trace-style debugging of
// a headless run.
func RunHeadlessWithLogger(quirks Quirks, romPath string, maxCycles, cpuHz int, logger *OpcodeLogger) (*State, error) {
	if maxCycles <= 0 {
		return nil, ErrInvalidArgument
	}
	if cpuHz <= 0 {
		return nil, ErrInvalidArgument
	}

	s, err := NewState(romPath)
	if err != nil {
		return nil, err
	}
	s.Logger = logger

	cyclesPerTimerTick := cpuHz / 60
	if cyclesPerTimerTick < 1 {
		cyclesPerTimerTick = 1
	}

	for i := 0; i < maxCycles; i++ {
		if s.Exited {
			break
		}
		if err := ExecuteCycle(s, quirks); err != nil {
			return nil, err
		}
		if (i+1)%cyclesPerTimerTick == 0 {
			TickTimers(s, nil)
		}
	}

	return s, nil
}

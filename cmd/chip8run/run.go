package main

import (
	"fmt"
	"os"

	"github.com/nsf/termbox-go"
	"github.com/spf13/cobra"

	"github.com/coredump8/chip8vm/internal/chip8"
	"github.com/coredump8/chip8vm/internal/host"
	"github.com/coredump8/chip8vm/internal/termhost"
)

var (
	flagQuirks    string
	flagScale     int
	flagHz        int
	flagFPS       int
	flagMaxCycles int
	flagHeadless  bool
	flagTerminal  bool
	flagBeep      string
	flagTrace     bool
)

// runCmd runs the chip8run interpreter against a ROM file.
var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run a Chip-8 ROM",
	Args:  cobra.ExactArgs(1),
	Run:   runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagQuirks, "quirks", "", "quirks profile: original or modern (default from CHIP8_QUIRKS env, else original)")
	runCmd.Flags().IntVar(&flagScale, "scale", 16, "pixels per Chip-8 pixel, GUI mode only")
	runCmd.Flags().IntVar(&flagHz, "hz", 700, "CPU cycles per second")
	runCmd.Flags().IntVar(&flagFPS, "fps", 60, "target host frame rate")
	runCmd.Flags().IntVar(&flagMaxCycles, "max-cycles", 0, "stop after N cycles (0 = unbounded; --headless then stops after 100000000)")
	runCmd.Flags().BoolVar(&flagHeadless, "headless", false, "run without any display, until EXIT or max-cycles")
	runCmd.Flags().BoolVar(&flagTerminal, "terminal", false, "render with a terminal display instead of a GUI window")
	runCmd.Flags().StringVar(&flagBeep, "beep", "", "path to an mp3 beep sample (GUI/terminal mode only)")
	runCmd.Flags().BoolVar(&flagTrace, "trace", false, "log pc/opcode for every instruction executed")
}

func newOpcodeLogger() *chip8.OpcodeLogger {
	return &chip8.OpcodeLogger{Enabled: flagTrace}
}

func runRun(cmd *cobra.Command, args []string) {
	romPath := args[0]

	quirks, err := resolveQuirks(flagQuirks)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	switch {
	case flagHeadless:
		runRunHeadless(romPath, quirks)
	case flagTerminal:
		runRunTerminal(romPath, quirks)
	default:
		runRunGUI(romPath, quirks)
	}
}

func resolveQuirks(flag string) (chip8.Quirks, error) {
	if flag != "" {
		return chip8.LoadQuirksProfile(flag)
	}
	_, quirks, err := chip8.LoadQuirksProfileFromEnv()
	return quirks, err
}

func runRunHeadless(romPath string, quirks chip8.Quirks) {
	maxCycles := flagMaxCycles
	if maxCycles <= 0 {
		maxCycles = 100_000_000
	}

	state, err := chip8.RunHeadlessWithLogger(quirks, romPath, maxCycles, flagHz, newOpcodeLogger())
	if err != nil {
		fmt.Printf("error running chip-8 program: %v\n", err)
		os.Exit(1)
	}
	if state.ShouldDraw {
		fmt.Println("program halted with an undrawn frame pending")
	}
}

func runRunGUI(romPath string, quirks chip8.Quirks) {
	state, err := chip8.NewState(romPath)
	if err != nil {
		fmt.Printf("error creating chip-8 state: %v\n", err)
		os.Exit(1)
	}
	state.Logger = newOpcodeLogger()

	win, err := host.NewWindow(flagScale)
	if err != nil {
		fmt.Printf("error creating window: %v\n", err)
		os.Exit(1)
	}

	beep := host.NoopBeep
	if flagBeep != "" {
		player, err := host.NewBeepPlayer(flagBeep)
		if err != nil {
			fmt.Printf("warning: beep disabled: %v\n", err)
		} else {
			defer player.Close()
			beep = player.Callback()
		}
	}

	loop := host.NewLoop(state, quirks, beep, flagHz, flagFPS)
	loop.MaxCycles = flagMaxCycles

	err = loop.Run(
		func() bool { return !win.Closed() },
		func() { win.HandleKeyInput(state) },
		win.DrawGraphics,
	)
	if err != nil {
		fmt.Printf("error running chip-8 program: %v\n", err)
		os.Exit(1)
	}
}

func runRunTerminal(romPath string, quirks chip8.Quirks) {
	state, err := chip8.NewState(romPath)
	if err != nil {
		fmt.Printf("error creating chip-8 state: %v\n", err)
		os.Exit(1)
	}
	state.Logger = newOpcodeLogger()

	display, err := termhost.NewDisplay(termbox.ColorWhite, termbox.ColorBlack)
	if err != nil {
		fmt.Printf("error creating terminal display: %v\n", err)
		os.Exit(1)
	}
	defer display.Close()

	keypad := termhost.NewKeypad()
	defer keypad.Close()

	loop := termhost.NewLoop(state, quirks, nil, flagHz, flagFPS)
	loop.MaxCycles = flagMaxCycles

	if err := loop.Run(keypad, display.Render); err != nil && err != termhost.ErrQuit {
		fmt.Printf("error running chip-8 program: %v\n", err)
		os.Exit(1)
	}
}

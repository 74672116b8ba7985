package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/coredump8/chip8vm/internal/asm"
)

func main() {
	app := cli.NewApp()
	app.Name = "chip8asm"
	app.Usage = "assemble a Chip-8 program into a ROM"
	app.ArgsUsage = "path/to/source"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "output, o",
			Usage: "output ROM path (default: source path with a .ch8 extension)",
		},
		cli.StringFlag{
			Name:  "origin",
			Usage: "load address, decimal or 0x-prefixed hex",
			Value: "0x200",
		},
	}
	app.Action = assembleAction

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func assembleAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("chip8asm requires exactly one source path argument", 1)
	}
	sourcePath := c.Args().First()

	origin, err := parseOrigin(c.String("origin"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("invalid --origin: %v", err), 1)
	}

	rom, err := asm.AssembleFile(sourcePath, origin)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("assembling %s: %v", sourcePath, err), 1)
	}

	outputPath := c.String("output")
	if outputPath == "" {
		outputPath = defaultOutputPath(sourcePath)
	}

	if err := os.WriteFile(outputPath, rom, 0o644); err != nil {
		return cli.NewExitError(fmt.Sprintf("writing %s: %v", outputPath, err), 1)
	}

	fmt.Printf("wrote %d bytes to %s\n", len(rom), outputPath)
	return nil
}

func parseOrigin(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		n, err := strconv.ParseInt(trimmed[2:], 16, 64)
		return int(n), err
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	return int(n), err
}

func defaultOutputPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	return strings.TrimSuffix(sourcePath, ext) + ".ch8"
}

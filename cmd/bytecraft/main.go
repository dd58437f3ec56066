// Command bytecraft is the ByteCraft toolchain driver: assemble
// source to a BVM file, run a BVM file, or dump a BVM file's header.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/0xAbby/ByteCraft/assembler"
	"github.com/0xAbby/ByteCraft/config"
	"github.com/0xAbby/ByteCraft/container"
	"github.com/0xAbby/ByteCraft/vm"
	cli "github.com/urfave/cli/v2"
)

func assembleCmd(c *cli.Context) error {
	args := c.Args()
	if args.Len() < 1 {
		return cli.Exit("no input file given", 1)
	}
	input := args.First()
	output := c.String("o")
	if output == "" {
		return cli.Exit("-o <output> is required", 1)
	}

	m, err := assembler.AssembleFile(input)
	if err != nil {
		return cli.Exit(fmt.Sprintf("assemble: %v", err), 1)
	}
	if err := container.SaveFile(output, m); err != nil {
		return cli.Exit(fmt.Sprintf("assemble: %v", err), 1)
	}
	return nil
}

func runCmd(c *cli.Context) error {
	args := c.Args()
	if args.Len() < 1 {
		return cli.Exit("no program given", 1)
	}

	cfg, err := config.Load()
	if err != nil {
		return cli.Exit(fmt.Sprintf("run: %v", err), 1)
	}
	if c.IsSet("max-steps") {
		cfg.Execution.MaxSteps = c.Uint64("max-steps")
	}

	m, err := container.LoadFile(args.First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("run: %v", err), 1)
	}

	machine := vm.New(m, os.Stdout, os.Stderr, os.Stdin)

	if cfg.Trace.Enabled {
		f, err := vm.OpenTraceFile(cfg.Trace.OutputFile)
		if err != nil {
			return cli.Exit(fmt.Sprintf("run: %v", err), 1)
		}
		defer f.Close()
		machine.SetTrace(vm.NewTrace(f))
	}

	if cfg.Execution.MaxSteps != 0 {
		machine.RunWithStepCap(cfg.Execution.MaxSteps)
	} else if err := machine.Run(context.Background()); err != nil {
		return cli.Exit(fmt.Sprintf("run: %v", err), 1)
	}

	stats := machine.Statistics()
	if stats.HaltReason == vm.HaltFault {
		return cli.Exit(fmt.Sprintf("run: halted on fault after %d steps", stats.Steps), 1)
	}
	return nil
}

func dumpCmd(c *cli.Context) error {
	args := c.Args()
	if args.Len() < 1 {
		return cli.Exit("no program given", 1)
	}

	m, err := container.LoadFile(args.First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("dump: %v", err), 1)
	}
	fmt.Println(m.String())
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "bytecraft"
	app.Usage = "Assemble and run ByteCraft BVM programs"
	app.Action = func(c *cli.Context) error {
		cli.ShowAppHelp(c)
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:      "asm",
			Usage:     "Assemble a source file into a BVM module",
			ArgsUsage: "<input>",
			Action:    assembleCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "o", Usage: "output BVM file path"},
			},
		},
		{
			Name:      "run",
			Usage:     "Run a BVM module until it halts",
			ArgsUsage: "<program.bvm>",
			Action:    runCmd,
			Flags: []cli.Flag{
				&cli.Uint64Flag{Name: "max-steps", Usage: "host-level step cap, 0 = unlimited"},
			},
		},
		{
			Name:      "dump",
			Usage:     "Print a BVM module's header summary",
			ArgsUsage: "<program.bvm>",
			Action:    dumpCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "matchctl",
		Usage: "Generate and solve driver to order matching instances offline",
		Commands: []*cli.Command{
			generateCmd,
			solveCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var generateCmd = &cli.Command{
	Name:    "generate",
	Usage:   "Write a random instance on the 10x10 grid",
	Aliases: []string{"g"},
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:     "drivers",
			Required: true,
			Usage:    "number of drivers",
		},
		&cli.IntFlag{
			Name:     "orders",
			Required: true,
			Usage:    "number of orders",
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Value: 1,
			Usage: "random seed; equal seeds give equal instances",
		},
		&cli.StringFlag{
			Name:  "out",
			Value: "-",
			Usage: "output file, - for stdout",
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			drivers = ctx.Int("drivers")
			orders  = ctx.Int("orders")
			seed    = ctx.Uint64("seed")
			out     = ctx.String("out")
		)
		if drivers < 0 || orders < 0 {
			return errors.New("drivers and orders must not be negative")
		}
		return withOutput(out, ctx.App.Writer, func(w io.Writer) error {
			return doGenerate(w, drivers, orders, seed)
		})
	},
}

var solveCmd = &cli.Command{
	Name:    "solve",
	Usage:   "Solve an instance and print the assignment",
	Aliases: []string{"s"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "instance",
			Required: true,
			Usage:    "instance YAML file, - for stdin",
		},
		&cli.StringFlag{
			Name:  "dot",
			Usage: "also write the matching as a Graphviz file",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "reject orders whose origin equals the destination",
		},
		&cli.Float64Flag{
			Name:  "tolerance",
			Value: 0,
			Usage: "cost comparison tolerance, 0 for the default",
		},
	},
	Action: func(ctx *cli.Context) error {
		in, err := readInstanceFile(ctx.String("instance"), os.Stdin)
		if err != nil {
			return err
		}
		return doSolve(ctx.App.Writer, in, solveOptions{
			dotFile:   ctx.String("dot"),
			strict:    ctx.Bool("strict"),
			tolerance: ctx.Float64("tolerance"),
		})
	},
}

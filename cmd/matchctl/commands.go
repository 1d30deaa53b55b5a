package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/domain/services/matching"
	"dispatch/internal/pkg/bipartite"
)

func doGenerate(w io.Writer, drivers, orders int, seed uint64) error {
	in, err := services.NewInstanceGenerator(seed).Instance(drivers, orders)
	if err != nil {
		return err
	}
	return encodeInstance(w, in)
}

// verifyTolerance bounds the slack accepted when checking the optimality certificate.
// A coarser solver tolerance widens it.
const verifyTolerance = 1e-6

type solveOptions struct {
	dotFile   string
	strict    bool
	tolerance float64
}

func doSolve(w io.Writer, in matching.Instance, opts solveOptions) error {
	engineOpts := matching.DefaultOptions()
	engineOpts.RequireDistinctEndpoints = opts.strict
	if opts.tolerance > 0 {
		engineOpts.Tolerance = opts.tolerance
	}

	engine := matching.NewEngine(nil, engineOpts)
	model := engine.Model()
	result, err := engine.Solve(in)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DRIVER\tOUTCOME\tPROFIT")
	for i := range in.NumDrivers() {
		outcome := result.Outcome(i)
		profit := 0.0
		if number, ok := outcome.Order(); ok {
			profit = model.Profit(in.Driver(i), in.Order(number))
		}
		fmt.Fprintf(tw, "Driver %d\t%s\t%.4f\n", i+1, outcome, profit)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "total profit: %.4f\n", result.TotalProfit())
	verifyErr := result.Verify(in, model, max(verifyTolerance, engine.Options().Tolerance))
	if verifyErr != nil {
		fmt.Fprintf(w, "certificate: FAILED (%v)\n", verifyErr)
	} else {
		fmt.Fprintln(w, "certificate: ok")
	}

	if opts.dotFile != "" {
		g, err := resultGraph(in, result)
		if err != nil {
			return err
		}
		if err := withOutput(opts.dotFile, w, g.WriteDOT); err != nil {
			return err
		}
	}

	if verifyErr != nil {
		return errors.New("optimality certificate rejected")
	}
	return nil
}

// resultGraph lays out every driver and every order; unserved orders stay
// isolated.
func resultGraph(in matching.Instance, result matching.Result) (*bipartite.Graph, error) {
	g := &bipartite.Graph{Name: "matching"}
	for i := range in.NumDrivers() {
		g.AddLeft("", fmt.Sprintf("Driver %d", i+1))
	}
	for j := 1; j <= in.NumOrders(); j++ {
		g.AddRight("", fmt.Sprintf("Order %d", j))
	}
	for _, p := range result.Pairs() {
		if err := g.Connect(p.Driver, p.Order-1, p.Profit); err != nil {
			return nil, err
		}
	}
	return g, nil
}

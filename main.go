// Package main provides the entry point for BPSim.
// BPSim replays branch traces through interchangeable branch predictor
// models and reports misprediction rates under explicit bit budgets.
//
// For the full CLI, use: go run ./cmd/bpsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("BPSim - Branch Predictor Simulator")
	fmt.Println("")
	fmt.Println("Usage: bpsim [options] <trace-file>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -predictor Predictor variant: nottaken, bimodal, gshare, yags")
	fmt.Println("  -format    Trace format: text or binary")
	fmt.Println("  -compare   Run the standard comparison sweep")
	fmt.Println("  -config    Path to predictor configuration JSON file")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/bpsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/bpsim' instead.")
	}
}

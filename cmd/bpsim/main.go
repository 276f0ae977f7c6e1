// Package main provides the BPSim command line interface. It loads a
// branch trace, replays it through one or more predictor configurations,
// and reports misprediction statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/sim"
	"github.com/sarchlab/bpsim/trace"
)

var (
	predictorName = flag.String("predictor", "bimodal",
		"Predictor variant: nottaken, bimodal, gshare, yags")
	format     = flag.String("format", "text", "Trace format: text or binary")
	configPath = flag.String("config", "", "Path to predictor configuration JSON file")
	tableSize  = flag.Int("table-size", 4096, "Prediction table entries (power of two)")
	history    = flag.Int("history", 12, "Global history width in bits")
	excSize    = flag.Int("exc-size", 512, "YAGS exception cache entries (power of two)")
	tagBits    = flag.Int("tag-bits", 6, "YAGS exception cache tag width in bits")
	compare    = flag.Bool("compare", false, "Run the standard comparison sweep")
	dataPath   = flag.String("data", "", "Write size-vs-MPKI data points to this file")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: bpsim [options] <trace-file>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	tracePath := flag.Arg(0)

	config, err := resolveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving configuration: %v\n", err)
		os.Exit(1)
	}

	if *compare {
		os.Exit(runCompare(tracePath, config))
	}
	os.Exit(runSingle(tracePath, config))
}

// resolveConfig builds the predictor configuration from the config file
// (if given) and the command-line flags. Flags set explicitly override
// file values.
func resolveConfig() (predictor.Config, error) {
	config := predictor.DefaultConfig(predictor.KindBimodal)
	if *configPath != "" {
		loaded, err := predictor.LoadConfig(*configPath)
		if err != nil {
			return predictor.Config{}, err
		}
		config = *loaded
	}

	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "predictor":
			kind, err := predictor.ParseKind(*predictorName)
			if err != nil {
				flagErr = err
				return
			}
			config.Kind = kind
		case "table-size":
			config.TableSize = *tableSize
		case "history":
			config.HistoryWidth = *history
		case "exc-size":
			config.ExceptionSize = *excSize
		case "tag-bits":
			config.TagWidth = *tagBits
		}
	})
	if flagErr != nil {
		return predictor.Config{}, flagErr
	}

	return config, nil
}

// openTrace opens the trace file with the reader matching -format.
func openTrace(path string) (trace.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	closer := func() { _ = f.Close() }

	switch *format {
	case "text":
		return trace.NewTextReader(f), closer, nil
	case "binary":
		r, err := trace.NewBinaryReader(f)
		if err != nil {
			closer()
			return nil, nil, err
		}
		return r, closer, nil
	default:
		closer()
		return nil, nil, fmt.Errorf("unknown trace format %q (want text or binary)", *format)
	}
}

// runSingle replays the trace through one predictor configuration.
func runSingle(tracePath string, config predictor.Config) int {
	p, err := predictor.New(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	reader, closeTrace, err := openTrace(tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeTrace()

	var opts []sim.RunnerOption
	if *verbose {
		opts = append(opts, sim.WithSnapshot(100000, func(r sim.Result) {
			fmt.Printf("  %d records, misprediction rate %.4f\n",
				r.Records, r.MispredictionRate())
		}))
	}

	runner := sim.NewRunner(p, opts...)
	result, err := runner.Run(context.Background(), reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	bits := p.BitBudget()
	fmt.Printf("\n")
	fmt.Printf("Trace: %s\n", tracePath)
	fmt.Printf("Predictor: %s\n", config.Kind)
	fmt.Printf("Records: %d\n", result.Records)
	fmt.Printf("Instructions: %d\n", result.Instructions)
	fmt.Printf("Correct: %d\n", result.Correct)
	fmt.Printf("Mispredictions: %d\n", result.Mispredictions)
	fmt.Printf("Misprediction rate: %.4f\n", result.MispredictionRate())
	fmt.Printf("Accuracy: %.2f%%\n", result.Accuracy())
	fmt.Printf("MPKI: %.2f\n", result.MPKI())
	fmt.Printf("Bit budget: %d bits (%.1f KiB)\n", bits, float64(bits)/8192)

	return 0
}

// runCompare replays the trace through the standard sweep and prints the
// results worst-first.
func runCompare(tracePath string, base predictor.Config) int {
	reader, closeTrace, err := openTrace(tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeTrace()

	records, err := trace.ReadAll(reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *verbose {
		fmt.Printf("Loaded %d branch records from %s\n", len(records), tracePath)
	}

	results, err := sim.Compare(context.Background(), records, standardSweep(base))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	for _, r := range results {
		fmt.Printf("%6.1f mpki (%5.1f%%) %7.1f KiB  %s\n",
			r.Result.MPKI(), r.Result.Accuracy(), float64(r.Bits)/8192, r.Name)
	}

	if *dataPath != "" {
		if err := writeDataFile(*dataPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	return 0
}

// standardSweep builds the comparison configurations: the static floor
// plus bimodal, gshare, and YAGS at a range of table sizes. History width
// and tag width come from the base configuration.
func standardSweep(base predictor.Config) []sim.NamedConfig {
	configs := []sim.NamedConfig{
		{Name: "nottaken", Config: predictor.Config{Kind: predictor.KindNotTaken}},
	}

	for bits := 10; bits <= 14; bits++ {
		size := 1 << bits

		bimodal := base
		bimodal.Kind = predictor.KindBimodal
		bimodal.TableSize = size

		gshare := base
		gshare.Kind = predictor.KindGShare
		gshare.TableSize = size

		// Roughly budget-matched against gshare at the same size: half
		// the choice entries plus two small tagged caches.
		yags := base
		yags.Kind = predictor.KindYAGS
		yags.TableSize = size / 2
		yags.ExceptionSize = size / 16

		configs = append(configs,
			sim.NamedConfig{Name: fmt.Sprintf("bimodal/%d", size), Config: bimodal},
			sim.NamedConfig{Name: fmt.Sprintf("gshare/%d", size), Config: gshare},
			sim.NamedConfig{Name: fmt.Sprintf("yags/%d+2x%d", size/2, size/16), Config: yags},
		)
	}

	return configs
}

// writeDataFile emits tab-separated (KiB, MPKI) points for plotting.
func writeDataFile(path string, results []sim.Comparison) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create data file: %w", err)
	}
	defer func() { _ = f.Close() }()

	for _, r := range results {
		if _, err := fmt.Fprintf(f, "%g\t%g\n",
			float64(r.Bits)/8192, r.Result.MPKI()); err != nil {
			return fmt.Errorf("failed to write data file: %w", err)
		}
	}
	return nil
}

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rhartert/rsat/internal/dimacs"
	"github.com/rhartert/rsat/internal/sat"
)

// Exit codes follow the SAT competition convention.
const (
	exitSAT     = 10
	exitUNSAT   = 20
	exitUnknown = 0
	exitError   = 1
	exitFault   = 3
)

var flagTimeout = flag.Float64(
	"t",
	-1,
	"time-out. Stop and return UNKNOWN after the given number of seconds.",
)

var flagSolution = flag.Bool(
	"s",
	false,
	"solution. Print out the model if one is found.",
)

var flagQuiet = flag.Bool(
	"q",
	false,
	"quiet. Print nothing except an UNKNOWN answer line. Overrides -s.",
)

var flagVerbose = flag.Bool(
	"v",
	false,
	"verbose. Print a progress table during the search.",
)

var flagResultFile = flag.String(
	"r",
	"",
	"result file. Write SAT and the model (or UNSAT) to the given file.",
)

var flagMaxConflict = flag.Int64(
	"max_conflicts",
	-1,
	"maximum number of conflicts allowed to solve the problem (-1 = no maximum)",
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

type config struct {
	instanceFile string
	timeout      float64
	showModel    bool
	quiet        bool
	verbose      bool
	resultFile   string
	maxConflicts int64
	cpuProfile   bool
	memProfile   bool
}

func usage() {
	fmt.Printf("Usage: rsat [options] <cnf-file-name>\n")
	fmt.Printf("Solve the SAT problem specified in <cnf-file-name>.\n\n")
	flag.PrintDefaults()
}

func parseConfig() (*config, error) {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		timeout:      *flagTimeout,
		showModel:    *flagSolution,
		quiet:        *flagQuiet,
		verbose:      *flagVerbose && !*flagQuiet,
		resultFile:   *flagResultFile,
		maxConflicts: *flagMaxConflict,
		cpuProfile:   *flagCPUProfile,
		memProfile:   *flagMemProfile,
	}, nil
}

func solverOptions(cfg *config) sat.Options {
	options := sat.DefaultOptions
	if cfg.timeout >= 0 {
		options.Timeout = time.Duration(cfg.timeout * float64(time.Second))
	}
	if cfg.maxConflicts >= 0 {
		options.MaxConflicts = cfg.maxConflicts
	}
	options.Verbose = cfg.verbose
	return options
}

func printStats(cfg *config, s *sat.Solver, elapsed time.Duration) {
	if cfg.quiet {
		return
	}
	fmt.Printf("c decisions:       %d\n", s.TotalDecisions)
	fmt.Printf("c conflicts:       %d (%.2f /sec)\n", s.TotalConflicts, float64(s.TotalConflicts)/elapsed.Seconds())
	fmt.Printf("c restarts:        %d\n", s.TotalRestarts)
	fmt.Printf("c learned clauses: %d (%d deleted)\n", s.TotalLearnts, s.TotalDeleted)
	fmt.Printf("c reductions:      %d\n", s.Reductions)
	fmt.Printf("c simplifications: %d\n", s.Simplifications)
	fmt.Printf("c max level:       %d\n", s.MaxDecisionLevel)
	fmt.Printf("c time (sec):      %f\n", elapsed.Seconds())
}

func printModel(model []bool) {
	var sb strings.Builder
	sb.WriteString("v")
	for v := 1; v < len(model); v++ {
		if model[v] {
			fmt.Fprintf(&sb, " %d", v)
		} else {
			fmt.Fprintf(&sb, " -%d", v)
		}
	}
	sb.WriteString(" 0")
	fmt.Println(sb.String())
}

// writeResult writes the verdict (and model, on SAT) to the result file so
// that a preprocessor driving the solver can extend it to a full solution.
func writeResult(path string, model []bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if model == nil {
		_, err = fmt.Fprintf(f, "UNSAT\n")
		return err
	}

	var sb strings.Builder
	sb.WriteString("SAT\n")
	for v := 1; v < len(model); v++ {
		if v > 1 {
			sb.WriteByte(' ')
		}
		if model[v] {
			fmt.Fprintf(&sb, "%d", v)
		} else {
			fmt.Fprintf(&sb, "-%d", v)
		}
	}
	sb.WriteString(" 0\n")
	_, err = f.WriteString(sb.String())
	return err
}

func run(cfg *config) (int, error) {
	instance, err := dimacs.ParseDIMACS(cfg.instanceFile, strings.HasSuffix(cfg.instanceFile, ".gz"))
	if err != nil {
		return exitError, fmt.Errorf("could not parse instance: %s", err)
	}

	s := sat.NewSolver(solverOptions(cfg))
	if err := dimacs.Instantiate(s, instance); err != nil {
		return exitError, fmt.Errorf("could not load instance: %s", err)
	}
	handleInterrupts(cfg, s, time.Now())

	if !cfg.quiet {
		fmt.Printf("c variables: %d\n", instance.Variables)
		fmt.Printf("c clauses:   %d\n", len(instance.Clauses))
	}

	t := time.Now()
	status := s.Solve()
	elapsed := time.Since(t)

	printStats(cfg, s, elapsed)

	switch status {
	case sat.True:
		model := s.Models[len(s.Models)-1]
		if !cfg.quiet {
			fmt.Println("s SATISFIABLE")
			if cfg.showModel {
				printModel(model)
			}
		}
		if cfg.resultFile != "" {
			if err := writeResult(cfg.resultFile, model); err != nil {
				return exitError, err
			}
		}
		return exitSAT, nil

	case sat.False:
		if !cfg.quiet {
			fmt.Println("s UNSATISFIABLE")
		}
		if cfg.resultFile != "" {
			if err := writeResult(cfg.resultFile, nil); err != nil {
				return exitError, err
			}
		}
		return exitUNSAT, nil

	default:
		// Always report timeouts, even in quiet mode, so that a driver
		// script does not mistake the run for a failure.
		fmt.Println("s UNKNOWN")
		return exitUnknown, nil
	}
}

func handleInterrupts(cfg *config, s *sat.Solver, start time.Time) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go func() {
		<-ch
		if !cfg.quiet {
			fmt.Println("c")
			fmt.Println("c INTERRUPTED")
		}
		printStats(cfg, s, time.Since(start))
		os.Exit(exitUnknown)
	}()
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-h" || arg == "--help" {
			usage()
			os.Exit(exitUnknown)
		}
	}

	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(exitUnknown)
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Println("s UNKNOWN")
			fmt.Fprintf(os.Stderr, "fatal: %v\n", r)
			os.Exit(exitFault)
		}
	}()

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitFault)
		}
		pprof.StartCPUProfile(f)
	}

	code, err := run(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	if cfg.cpuProfile {
		pprof.StopCPUProfile()
	}
	if cfg.memProfile {
		f, ferr := os.Create("memprof")
		if ferr == nil {
			pprof.WriteHeapProfile(f)
			f.Close()
		}
	}

	os.Exit(code)
}

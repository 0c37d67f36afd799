// Package dimacs reads DIMACS CNF instances and loads them into a solver.
package dimacs

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rhartert/rsat/internal/sat"
)

const (
	// MaxLineLen is the maximum accepted length of an input line, terminator
	// included.
	MaxLineLen = 100000

	// MaxClauseLen bounds the number of literals of a clause: a clause may
	// contain at most MaxClauseLen-1 literals.
	MaxClauseLen = 1025
)

type Instance struct {
	Variables int
	Clauses   [][]int
	Comments  []string
}

// ParseDIMACS parses the DIMACS CNF file with the given name. A line
// starting with '%' ends the input.
func ParseDIMACS(filename string, gzipped bool) (*Instance, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := io.Reader(file)
	if gzipped {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}

	return parse(reader)
}

func parse(reader io.Reader) (*Instance, error) {
	instance := &Instance{}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineLen-2)

	stop := false
	for i := 1; scanner.Scan() && !stop; i++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line[0] {
		case '%': // end of instance
			stop = true
		case 'c':
			instance.Comments = append(instance.Comments, line)
		case 'p':
			if err := parseHeaderLine(instance, line); err != nil {
				return nil, fmt.Errorf("line %d: %w", i, err)
			}
		default:
			if err := parseClauseLine(instance, line); err != nil {
				return nil, fmt.Errorf("line %d: %w", i, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("line exceeds max length of %d", MaxLineLen-2)
		}
		return nil, err
	}

	return instance, nil
}

func parseHeaderLine(instance *Instance, line string) error {
	if instance.Clauses != nil {
		return fmt.Errorf("found a second header line %q", line)
	}
	parts := strings.Fields(line)
	if len(parts) != 4 || parts[1] != "cnf" {
		return fmt.Errorf("malformed header %q", line)
	}
	nVars, err := strconv.Atoi(parts[2])
	if err != nil {
		return fmt.Errorf("could not parse header: %w", err)
	}
	nClauses, err := strconv.Atoi(parts[3])
	if err != nil {
		return fmt.Errorf("could not parse header: %w", err)
	}
	instance.Variables = nVars
	instance.Clauses = make([][]int, 0, nClauses)
	return nil
}

func parseClauseLine(instance *Instance, line string) error {
	if instance.Clauses == nil {
		return fmt.Errorf("found clause line before header %q", line)
	}
	c, err := parseClause(line)
	if err != nil {
		return fmt.Errorf("could not parse clause %q: %w", line, err)
	}
	instance.Clauses = append(instance.Clauses, c)
	return nil
}

func parseClause(line string) ([]int, error) {
	parts := strings.Fields(line)
	if parts[len(parts)-1] != "0" {
		return nil, fmt.Errorf("missing terminating 0")
	}
	if len(parts)-1 > MaxClauseLen-1 {
		return nil, fmt.Errorf("clause exceeds maximum length of %d literals", MaxClauseLen-1)
	}
	literals := make([]int, len(parts)-1)
	for i, p := range parts[:len(literals)] {
		l, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		if l == 0 {
			return nil, fmt.Errorf("unexpected literal 0")
		}
		literals[i] = l
	}
	return literals, nil
}

// Instantiate adds the instance's variables and clauses to solver s.
func Instantiate(s *sat.Solver, instance *Instance) error {
	for i := 0; i < instance.Variables; i++ {
		s.AddVariable()
	}
	for _, c := range instance.Clauses {
		clause := make([]sat.Literal, len(c))
		for i, l := range c {
			clause[i] = sat.FromDimacs(l)
		}
		if err := s.AddClause(clause); err != nil {
			return err
		}
	}

	return nil
}

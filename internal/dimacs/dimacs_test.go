package dimacs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rhartert/rsat/internal/sat"
)

var testInstance = Instance{
	Variables: 3,
	Clauses: [][]int{
		{1, 2, 3},
		{1, 2, -3},
		{1, -2, 3},
		{-1, 2, 3},
		{-1, -2, 3},
		{-1, 2, -3},
		{1, -2, -3},
		{-1, -2, -3},
	},
	Comments: []string{"c minimalist unsat instance"},
}

func TestParseDIMACS_cnf(t *testing.T) {
	want := &testInstance

	got, err := ParseDIMACS("testdata/test_instance.cnf", false)

	if err != nil {
		t.Errorf("ParseDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDIMACS(): mismatch (-want, +got):\n%s", diff)
	}
}

func TestParseDIMACS_gzip(t *testing.T) {
	want := &testInstance

	got, err := ParseDIMACS("testdata/test_instance.cnf.gz", true)

	if err != nil {
		t.Errorf("ParseDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDIMACS(): mismatch (-want, +got):\n%s", diff)
	}
}

func TestParseDIMACS_noFile(t *testing.T) {
	got, err := ParseDIMACS("", false)

	if err == nil {
		t.Errorf("ParseDIMACS(): want error, got none")
	}
	if got != nil {
		t.Errorf("ParseDIMACS(): want nil instance, got %+v", got)
	}
}

func TestParseDIMACS_gzip_notGzipFile(t *testing.T) {
	got, err := ParseDIMACS("testdata/test_instance.cnf", true)

	if err == nil {
		t.Errorf("ParseDIMACS(): want error, got none")
	}
	if got != nil {
		t.Errorf("ParseDIMACS(): want nil instance, got %+v", got)
	}
}

func TestParse_stopsAtPercent(t *testing.T) {
	input := "p cnf 2 2\n1 2 0\n%\n-1 -2 0\n"

	got, err := parse(strings.NewReader(input))

	if err != nil {
		t.Fatalf("parse(): want no error, got %s", err)
	}
	if len(got.Clauses) != 1 {
		t.Errorf("clauses: want 1 (input ends at %%), got %d", len(got.Clauses))
	}
}

func TestParse_clauseBeforeHeader(t *testing.T) {
	if _, err := parse(strings.NewReader("1 2 0\n")); err == nil {
		t.Errorf("parse(): want error, got none")
	}
}

func TestParse_secondHeader(t *testing.T) {
	input := "p cnf 2 1\np cnf 2 1\n1 2 0\n"
	if _, err := parse(strings.NewReader(input)); err == nil {
		t.Errorf("parse(): want error, got none")
	}
}

func TestParse_missingTerminator(t *testing.T) {
	if _, err := parse(strings.NewReader("p cnf 2 1\n1 2\n")); err == nil {
		t.Errorf("parse(): want error, got none")
	}
}

func TestParse_clauseTooLong(t *testing.T) {
	sb := strings.Builder{}
	sb.WriteString("p cnf 2000 1\n")
	for i := 1; i <= MaxClauseLen; i++ {
		sb.WriteString("1 ")
	}
	sb.WriteString("0\n")

	if _, err := parse(strings.NewReader(sb.String())); err == nil {
		t.Errorf("parse(): want error, got none")
	}
}

func TestInstantiate(t *testing.T) {
	s := sat.NewDefaultSolver()

	if err := Instantiate(s, &testInstance); err != nil {
		t.Fatalf("Instantiate(): want no error, got %s", err)
	}

	if got := s.NumVariables(); got != 3 {
		t.Errorf("NumVariables(): want 3, got %d", got)
	}
	if got := s.NumConstraints(); got != 8 {
		t.Errorf("NumConstraints(): want 8, got %d", got)
	}
}

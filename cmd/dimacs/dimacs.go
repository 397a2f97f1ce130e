package dimacs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Dimacs contains the variables and clauses that make up
// a CNF problem described in DIMACS format
// see: https://logic.pdmi.ras.ru/~basolver/dimacs.html
type Dimacs struct {
	variables []string
	clauses   [][]int
}

// Variables returns the name of every variable, in variable order.
// Variables named by a "c <number> <name>" comment line (as written by
// ferryman encode) take that name, the others are named by number.
func (d *Dimacs) Variables() []string {
	return d.variables
}

func (d *Dimacs) Clauses() [][]int {
	return d.clauses
}

// NewDimacs creates a Dimacs struct with the values
// parsed from the DIMACS formatted stream afforded by dimacsReader
func NewDimacs(dimacsReader io.Reader) (*Dimacs, error) {
	reader := bufio.NewReader(dimacsReader)

	variableSet := map[int]struct{}{}
	names := map[int]string{}
	numVariables := 0
	numClauses := 0
	var clauses [][]int

	nameLine := regexp.MustCompile(`^c\s+(\d+)\s+(\S+)$`)
	commentLine := regexp.MustCompile(`^c\s*.*`)
	headerLine := regexp.MustCompile(`^p cnf\s+\d+\s+\d+\s*`)
	clauseLine := regexp.MustCompile(`^(-?\d+\s+)+0`)
	cleanInput := regexp.MustCompile(`\s\s+`)

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading dimacs data: %w", err)
		}
		eof := err != nil
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			// skip blank lines

		case nameLine.MatchString(line):
			m := nameLine.FindStringSubmatch(line)
			v, _ := strconv.Atoi(m[1])
			names[v] = m[2]

		// ignore comments
		case commentLine.MatchString(line):

		// parse header
		case headerLine.MatchString(line):
			line = cleanInput.ReplaceAllString(line, " ")
			problem := strings.Split(line, " ")
			if len(problem) != 4 {
				return nil, fmt.Errorf("invalid statement: (%s). Valid format is p cnf <variables> <clauses>", line)
			}
			numVariables, err = strconv.Atoi(problem[2])
			if err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", problem[2], line)
			}
			numClauses, err = strconv.Atoi(problem[3])
			if err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", problem[3], line)
			}
			clauses = make([][]int, 0, numClauses)

		// collect clauses
		case clauseLine.MatchString(line):
			if clauses == nil {
				return nil, fmt.Errorf("invalid dimacs format: missing header 'p cnf <variable> <clauses>'")
			}
			line = cleanInput.ReplaceAllString(line, " ")
			terms := strings.Split(line, " ")
			if terms[len(terms)-1] != "0" {
				return nil, fmt.Errorf("invalid clause (%s): does not end with 0", line)
			}
			clause, err := parseClause(terms[:len(terms)-1], numVariables)
			if err != nil {
				return nil, fmt.Errorf("invalid clause (%s): %w", line, err)
			}

			// remember variables seen for final validation
			// to ensure number of variables declared in header
			// is the same as the number of variables used
			for _, lit := range clause {
				if lit < 0 {
					lit = -lit
				}
				variableSet[lit] = struct{}{}
			}
			clauses = append(clauses, clause)

		// error out if the instruction is invalid
		default:
			return nil, fmt.Errorf("invalid dimacs command: %s", line)
		}

		if eof {
			break
		}
	}

	if numVariables == 0 || numClauses == 0 || clauses == nil {
		return nil, fmt.Errorf("invalid format: no variables or clauses found")
	}

	if len(clauses) != numClauses {
		return nil, fmt.Errorf("invalid format: number of clauses in header differ from the total number of clauses")
	}

	if len(variableSet) != numVariables {
		return nil, fmt.Errorf("invalid format: number of variables in header differ from the total number of unique variables found in clauses")
	}

	// name variables
	variables := make([]string, 0, numVariables)
	for i := 1; i <= numVariables; i++ {
		if name, ok := names[i]; ok {
			variables = append(variables, name)
			continue
		}
		variables = append(variables, fmt.Sprint(i))
	}
	return &Dimacs{
		variables: variables,
		clauses:   clauses,
	}, nil
}

func parseClause(terms []string, numVariables int) ([]int, error) {
	clause := make([]int, 0, len(terms))
	for _, lit := range terms {
		litInt, err := strconv.Atoi(lit)
		if err != nil {
			return nil, fmt.Errorf("%s is not a number", lit)
		}
		if litInt == 0 {
			return nil, fmt.Errorf("0 is not a valid variable")
		}
		if litInt > numVariables || litInt < -numVariables {
			return nil, fmt.Errorf("%s is not a valid variable", lit)
		}
		clause = append(clause, litInt)
	}
	return clause, nil
}

package sat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseDIMACS reads a DIMACS CNF formula. Clauses may span several lines; each one ends with a 0.
func ParseDIMACS(r io.Reader) (Formula, error) {
	var (
		formula     Formula
		seenHeader  bool
		clauseCount int
		clause      []int64
		lineNumber  int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		// Skip comments and blank lines
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}

		// Problem line
		if strings.HasPrefix(line, "p") {
			if seenHeader {
				return Formula{}, fmt.Errorf("line %d: duplicated problem line", lineNumber)
			}
			parts := strings.Fields(line)
			if len(parts) != 4 || parts[0] != "p" || parts[1] != "cnf" {
				return Formula{}, fmt.Errorf("line %d: invalid problem line: %s", lineNumber, line)
			}
			variables, err := strconv.ParseUint(parts[2], 10, 64)
			if err != nil {
				return Formula{}, fmt.Errorf("line %d: invalid variable count: %w", lineNumber, err)
			}
			clauses, err := strconv.ParseUint(parts[3], 10, 31)
			if err != nil {
				return Formula{}, fmt.Errorf("line %d: invalid clause count: %w", lineNumber, err)
			}
			formula.Variables = variables
			formula.Clauses = make([][]int64, 0, clauses)
			clauseCount = int(clauses)
			seenHeader = true
			continue
		}

		if !seenHeader {
			return Formula{}, fmt.Errorf("line %d: clause found before the problem line", lineNumber)
		}

		// Clause line
		for _, literalStr := range strings.Fields(line) {
			literal, err := strconv.ParseInt(literalStr, 10, 64)
			if err != nil {
				return Formula{}, fmt.Errorf("line %d: invalid literal '%s': %w", lineNumber, literalStr, err)
			}
			if literal == 0 {
				if len(clause) == 0 {
					return Formula{}, fmt.Errorf("line %d: empty clause", lineNumber)
				}
				formula.Clauses = append(formula.Clauses, clause)
				clause = nil
				continue
			}
			if magnitude := uint64(max(literal, -literal)); magnitude > formula.Variables {
				return Formula{}, fmt.Errorf("line %d: literal %d exceeds the declared %d variables", lineNumber, literal, formula.Variables)
			}
			clause = append(clause, literal)
		}
	}

	if err := scanner.Err(); err != nil {
		return Formula{}, fmt.Errorf("error reading DIMACS: %w", err)
	}
	if !seenHeader {
		return Formula{}, fmt.Errorf("missing problem line")
	}
	if len(clause) > 0 {
		return Formula{}, fmt.Errorf("last clause is not terminated by 0")
	}
	if len(formula.Clauses) != clauseCount {
		return Formula{}, fmt.Errorf("problem line declares %d clauses but %d were found", clauseCount, len(formula.Clauses))
	}

	return formula, nil
}

func ParseDIMACSFile(fileName string) (Formula, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return Formula{}, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	return ParseDIMACS(file)
}

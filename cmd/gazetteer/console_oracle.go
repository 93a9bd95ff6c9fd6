package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gazetteer/internal/blocking"
	"gazetteer/internal/learner"
	"gazetteer/internal/record"
)

// consoleOracle collects labels interactively. Each candidate pair is shown
// as a side-by-side table and the user answers y, n, u, or f.
type consoleOracle struct {
	in    *bufio.Reader
	out   io.Writer
	asked int
}

func newConsoleOracle(in io.Reader, out io.Writer) *consoleOracle {
	return &consoleOracle{in: bufio.NewReader(in), out: out}
}

var promptFields = []string{
	record.FieldAbbrName,
	record.FieldFullName,
	record.FieldCity,
	record.FieldState,
}

func (o *consoleOracle) Ask(pair blocking.Pair) (learner.Label, bool, error) {
	o.asked++

	rows := make([][]string, 0, len(promptFields)+1)
	for _, field := range promptFields {
		messyValue, _ := pair.Messy.Field(field)
		canonValue, _ := pair.Canonical.Field(field)
		rows = append(rows, []string{field, messyValue, canonValue})
	}
	rows = append(rows, []string{record.FieldFNum, "", pair.Canonical.Raw[record.FieldFNum]})

	fmt.Fprintf(o.out, "\nPair %d\n", o.asked)
	fmt.Fprintln(o.out, renderTable([]string{"Field", "Filer", "Canonical"}, rows))

	for {
		fmt.Fprint(o.out, "Same union local? (y)es / (n)o / (u)nsure / (f)inished: ")
		line, err := o.in.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return "", true, nil
			}
			return "", false, fmt.Errorf("read answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return learner.LabelMatch, false, nil
		case "n", "no":
			return learner.LabelDistinct, false, nil
		case "u", "unsure":
			return learner.LabelUncertain, false, nil
		case "f", "finished":
			return "", true, nil
		default:
			fmt.Fprintln(o.out, "Please answer y, n, u, or f.")
		}
	}
}

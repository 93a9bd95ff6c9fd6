package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Link is the resolved assignment for one messy row: the canonical f_num and
// the match probability that produced it.
type Link struct {
	CanonID string
	Score   float64
}

// WriteLinked copies the messy CSV to outputPath with two leading columns,
// canon_id and Link Score, preserving the original rows, values, and order.
// Rows without an entry in links carry empty values in both columns.
func WriteLinked(outputPath, messyPath string, links map[string]Link) error {
	input, err := os.Open(messyPath)
	if err != nil {
		return fmt.Errorf("open input %s: %w", messyPath, err)
	}
	defer input.Close()

	output, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output %s: %w", outputPath, err)
	}
	defer output.Close()

	reader := csv.NewReader(input)
	writer := csv.NewWriter(output)

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", messyPath, err)
	}
	if err := writer.Write(append([]string{"canon_id", "Link Score"}, header...)); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	for row := 0; ; row++ {
		values, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", messyPath, err)
		}

		canonID, score := "", ""
		if link, ok := links[RecordID(messyPath, row)]; ok {
			canonID = link.CanonID
			score = strconv.FormatFloat(link.Score, 'f', -1, 64)
		}
		if err := writer.Write(append([]string{canonID, score}, values...)); err != nil {
			return fmt.Errorf("write output %s: %w", outputPath, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush output %s: %w", outputPath, err)
	}
	return nil
}

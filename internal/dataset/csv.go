package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseCSV reads integers from the first column of a CSV stream. The first
// row is treated as a header. Values such as "12.7" are truncated toward
// zero; rows that are empty or not numeric are skipped.
func ParseCSV(r io.Reader) ([]int, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	var data []int
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		if row == 0 || len(record) == 0 {
			continue
		}
		v, ok := parseValue(record[0])
		if !ok {
			continue
		}
		data = append(data, v)
	}

	if len(data) == 0 {
		return nil, ErrNoNumericData
	}
	return data, nil
}

func parseValue(field string) (int, bool) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(field); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}

// WriteCSV writes data as a single "value" column with a header row.
func WriteCSV(w io.Writer, data []int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"value"}); err != nil {
		return err
	}
	row := make([]string, 1)
	for _, v := range data {
		row[0] = strconv.Itoa(v)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

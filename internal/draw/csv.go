package draw

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedRow = errors.New("malformed history row")

// DateLayouts are tried in order when parsing the date column.
var DateLayouts = []string{"02.01.2006", "2006-01-02", "02/01/2006"}

type CSVOptions struct {
	Delimiter         rune // default ';'
	DateColumn        int
	FirstNumberColumn int // default DateColumn+1
}

func (o CSVOptions) withDefaults() CSVOptions {
	if o.Delimiter == 0 {
		o.Delimiter = ';'
	}
	if o.FirstNumberColumn <= 0 {
		o.FirstNumberColumn = o.DateColumn + 1
	}
	return o
}

// ParseDate accepts any of DateLayouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// LoadCSVFile opens path and loads it with LoadCSV.
func LoadCSVFile(path string, g Game, opts CSVOptions) (*History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()
	return LoadCSV(f, g, opts)
}

// LoadCSV reads one draw per record. A first record whose date cell does not
// parse is treated as a header and skipped; any later bad record fails the load.
func LoadCSV(r io.Reader, g Game, opts CSVOptions) (*History, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if opts.DateColumn < 0 {
		return nil, fmt.Errorf("date column must be >= 0, got %d", opts.DateColumn)
	}
	opts = opts.withDefaults()

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var draws []Draw
	first := true
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError already carries the file line
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		if isBlank(rec) {
			continue
		}
		line, _ := reader.FieldPos(0)

		d, err := parseRecord(rec, g, opts)
		if err != nil {
			if first && !hasDate(rec, opts.DateColumn) {
				first = false
				continue
			}
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}
		first = false
		draws = append(draws, d)
	}

	return NewHistory(g, draws)
}

func parseRecord(rec []string, g Game, opts CSVOptions) (Draw, error) {
	if opts.DateColumn >= len(rec) {
		return Draw{}, fmt.Errorf("missing date column %d", opts.DateColumn)
	}
	date, err := ParseDate(rec[opts.DateColumn])
	if err != nil {
		return Draw{}, err
	}
	last := opts.FirstNumberColumn + g.DrawSize
	if last > len(rec) {
		return Draw{}, fmt.Errorf("want %d number columns from column %d, record has %d fields", g.DrawSize, opts.FirstNumberColumn, len(rec))
	}
	nums := make([]int, 0, g.DrawSize)
	for _, cell := range rec[opts.FirstNumberColumn:last] {
		n, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			return Draw{}, fmt.Errorf("invalid number %q", cell)
		}
		nums = append(nums, n)
	}
	return NewDraw(g, date, nums)
}

func hasDate(rec []string, col int) bool {
	if col >= len(rec) {
		return false
	}
	_, err := ParseDate(rec[col])
	return err == nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

package contacts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrEmptyFile is returned when the input has no header row at all.
	ErrEmptyFile = errors.New("file is empty")
)

// ValidationErrorsColumn is the extra column appended to the invalid partition.
const ValidationErrorsColumn = "validation_errors"

// Table is a loaded contact list: the original header, its resolved column
// mapping, and one Record per data row.
type Table struct {
	Header  []string
	Mapping *ColumnMapping
	Records []*Record
}

// Load reads a contact CSV from disk. The header is required; data rows may
// have fewer or more fields than the header and are taken as-is.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// Read parses a contact CSV from a reader.
func Read(r io.Reader) (*Table, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	t := &Table{
		Header:  header,
		Mapping: MapColumns(header),
	}

	line := 1
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read CSV row %d: %w", line, err)
		}
		t.Records = append(t.Records, NewRecord(row, t.Mapping))
	}

	return t, nil
}

// WriteValid writes the valid partition: the original column set, with the
// canonical fields (including any corrected email) written back into their
// source columns.
func (t *Table) WriteValid(path string, records []*Record) error {
	return t.write(path, records, false)
}

// WriteInvalid writes the invalid partition: the original column set plus a
// validation_errors column holding each record's ordered issue list.
func (t *Table) WriteInvalid(path string, records []*Record) error {
	return t.write(path, records, true)
}

func (t *Table) write(path string, records []*Record, withErrors bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := t.Header
	if withErrors {
		header = append(append([]string{}, t.Header...), ValidationErrorsColumn)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		row := make([]string, 0, len(header))
		for i, raw := range t.Header {
			if field, ok := t.Mapping.FieldMap[i]; ok {
				row = append(row, rec.Get(string(field)))
			} else {
				row = append(row, rec.Extra[strings.TrimSpace(raw)])
			}
		}
		if withErrors {
			row = append(row, strings.Join(rec.ValidationErrors, "; "))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

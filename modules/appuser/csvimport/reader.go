// Package csvimport parses uploaded CSV files into import records. Column
// binding is an explicit ordered table of (column name, normalizer, setter)
// entries evaluated against the header row; there is no reflection involved.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/appdeck/userbase/modules/appuser/domain/aggregates/appuser"
	"github.com/appdeck/userbase/modules/appuser/validation"
	"github.com/appdeck/userbase/pkg/serrors"
)

const parsingErrorMessage = "An error occurred while parsing file content to object - remove empty lines and redundant columns"

type columnBinding struct {
	column    string
	normalize func(string) (string, error)
	assign    func(*appuser.ImportRecord, string)
}

var bindings = []columnBinding{
	{"first_name", normalizeName, func(r *appuser.ImportRecord, v string) { r.FirstName = v }},
	{"last_name", normalizeName, func(r *appuser.ImportRecord, v string) { r.LastName = v }},
	{"birth_date", normalizeBirthDate, func(r *appuser.ImportRecord, v string) { r.BirthDate = v }},
	{"phone_no", normalizePhone, func(r *appuser.ImportRecord, v string) { r.PhoneNumber = v }},
}

type Reader struct {
	log *logrus.Logger
}

func NewReader(log *logrus.Logger) *Reader {
	return &Reader{log: log}
}

// Parse is the tolerant mode used by the primary ingestion path: rows are
// converted individually, rows failing conversion or semantic validation are
// dropped, and the count of dropped rows is logged. Empty input yields an
// empty result, not an error. Structural CSV failures still abort the parse.
func (r *Reader) Parse(data []byte) ([]appuser.ImportRecord, error) {
	rows, columns, err := r.readRows(data)
	if err != nil {
		return nil, err
	}

	records := make([]appuser.ImportRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		record, err := buildRecord(row, columns)
		if err != nil {
			dropped++
			continue
		}
		if len(validation.Validate(&record)) > 0 {
			dropped++
			continue
		}
		records = append(records, record)
	}

	if dropped > 0 {
		r.log.Errorf("dropped %d incorrect records while parsing uploaded file", dropped)
	}
	return records, nil
}

// ParseStrict aborts the whole parse on the first row-level conversion
// failure, in addition to the structural failures Parse already rejects.
func (r *Reader) ParseStrict(data []byte) ([]appuser.ImportRecord, error) {
	rows, columns, err := r.readRows(data)
	if err != nil {
		return nil, err
	}

	records := make([]appuser.ImportRecord, 0, len(rows))
	for _, row := range rows {
		record, err := buildRecord(row, columns)
		if err != nil {
			return nil, serrors.NewParsing("CSV_UNPARSEABLE", parsingErrorMessage)
		}
		records = append(records, record)
	}
	return records, nil
}

// readRows splits the raw bytes into data rows plus a column-index mapping
// derived from the header.
func (r *Reader) readRows(data []byte) ([][]string, map[string]int, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ';'
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, serrors.NewParsing("CSV_UNPARSEABLE", parsingErrorMessage)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, binding := range bindings {
		if _, ok := columns[binding.column]; !ok {
			return nil, nil, serrors.NewParsing("CSV_UNPARSEABLE", parsingErrorMessage)
		}
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			r.log.Error("An unexpected error occurred while parsing file content to object")
			return nil, nil, serrors.NewParsing("CSV_UNPARSEABLE", parsingErrorMessage)
		}
		rows = append(rows, row)
	}
	return rows, columns, nil
}

func buildRecord(row []string, columns map[string]int) (appuser.ImportRecord, error) {
	var record appuser.ImportRecord
	for _, binding := range bindings {
		value, err := binding.normalize(row[columns[binding.column]])
		if err != nil {
			return appuser.ImportRecord{}, err
		}
		binding.assign(&record, value)
	}
	return record, nil
}

// Package loader reads and writes employee records in the data-file formats
// dirtab understands: JSON, newline-delimited JSON, YAML, TOML and CSV.
package loader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dirtab/internal/employee"
)

// Format names a data-file encoding.
type Format string

const (
	FormatAuto   Format = ""
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatCSV    Format = "csv"
)

// ErrUnsupportedFormat is returned for unknown format names and extensions.
var ErrUnsupportedFormat = errors.New("unsupported data format")

// tomlDoc wraps the record list; TOML needs a top-level table.
type tomlDoc struct {
	Employees []employee.Employee `toml:"employees"`
}

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "ndjson", "jsonl":
		return FormatNDJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "csv":
		return FormatCSV, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return FormatAuto, nil
	}
	return ParseFormat(ext)
}

// LoadFile reads employees from path, choosing the decoder by extension and
// falling back to content sniffing for files without one.
func LoadFile(path string) ([]employee.Employee, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rows, err := Load(data, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return rows, nil
}

// Load decodes employees from data. FormatAuto sniffs the content.
func Load(data []byte, format Format) ([]employee.Employee, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	if format == FormatAuto {
		format = detect(data)
	}
	switch format {
	case FormatJSON:
		var rows []employee.Employee
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return rows, nil
	case FormatNDJSON:
		return loadNDJSON(data)
	case FormatYAML:
		var rows []employee.Employee
		if err := yaml.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return rows, nil
	case FormatTOML:
		var doc tomlDoc
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
		return doc.Employees, nil
	case FormatCSV:
		return loadCSV(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// detect guesses the format of untagged input.
func detect(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("[[")):
		return FormatTOML
	case bytes.HasPrefix(trimmed, []byte("[")):
		return FormatJSON
	case bytes.HasPrefix(trimmed, []byte("{")):
		return FormatNDJSON
	case bytes.HasPrefix(trimmed, []byte(employee.ColID+",")):
		return FormatCSV
	default:
		return FormatYAML
	}
}

func loadNDJSON(data []byte) ([]employee.Employee, error) {
	var rows []employee.Employee
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var e employee.Employee
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			return nil, fmt.Errorf("invalid NDJSON at line %d: %w", line, err)
		}
		rows = append(rows, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func loadCSV(data []byte) ([]employee.Employee, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("invalid CSV: missing header")
	}
	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		index[strings.TrimSpace(h)] = i
	}
	for _, id := range employee.ColumnIDs() {
		if _, ok := index[id]; !ok {
			return nil, fmt.Errorf("invalid CSV: missing column %q", id)
		}
	}

	rows := make([]employee.Employee, 0, len(records)-1)
	for n, rec := range records[1:] {
		get := func(id string) string { return strings.TrimSpace(rec[index[id]]) }
		e := employee.Employee{
			FirstName:  get(employee.ColFirstName),
			LastName:   get(employee.ColLastName),
			Email:      get(employee.ColEmail),
			Phone:      get(employee.ColPhone),
			Department: get(employee.ColDepartment),
		}
		if e.ID, err = strconv.Atoi(get(employee.ColID)); err != nil {
			return nil, fmt.Errorf("invalid CSV row %d: id: %w", n+2, err)
		}
		if e.Salary, err = strconv.Atoi(get(employee.ColSalary)); err != nil {
			return nil, fmt.Errorf("invalid CSV row %d: salary: %w", n+2, err)
		}
		if e.HireDate, err = parseTime(get(employee.ColHireDate)); err != nil {
			return nil, fmt.Errorf("invalid CSV row %d: hireDate: %w", n+2, err)
		}
		if e.IsActive, err = strconv.ParseBool(get(employee.ColIsActive)); err != nil {
			return nil, fmt.Errorf("invalid CSV row %d: isActive: %w", n+2, err)
		}
		rows = append(rows, e)
	}
	return rows, nil
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

// Write encodes employees to w. FormatAuto writes JSON.
func Write(w io.Writer, rows []employee.Employee, format Format) error {
	switch format {
	case FormatAuto, FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatNDJSON:
		enc := json.NewEncoder(w)
		for _, e := range rows {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(tomlDoc{Employees: rows})
	case FormatCSV:
		return writeCSV(w, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func writeCSV(w io.Writer, rows []employee.Employee) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(employee.ColumnIDs()); err != nil {
		return err
	}
	for _, e := range rows {
		rec := []string{
			strconv.Itoa(e.ID),
			e.FirstName,
			e.LastName,
			e.Email,
			e.Phone,
			e.Department,
			strconv.Itoa(e.Salary),
			e.HireDate.Format(time.RFC3339),
			strconv.FormatBool(e.IsActive),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile encodes employees to path using the extension's format.
func WriteFile(path string, rows []employee.Employee) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(&buf, rows, format); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

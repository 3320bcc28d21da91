package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type splitLayout struct {
	Columns []interface{}   `json:"columns"`
	Index   []interface{}   `json:"index"`
	Data    [][]interface{} `json:"data"`
}

// decodeTable understands the pandas "split" and "records" orientations,
// and either one wrapped in a JSON string as DataFrame.to_json returns it.
func decodeTable(kind string, raw json.RawMessage) (Response, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("%s result: %w", kind, err)
		}
		raw = bytes.TrimSpace([]byte(inner))
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s result: %w", kind, ErrNotTabular)
	}
	switch raw[0] {
	case '{':
		return decodeSplit(kind, raw)
	case '[':
		return decodeRecords(kind, raw)
	}
	return nil, fmt.Errorf("%s result: %w", kind, ErrNotTabular)
}

func decodeSplit(kind string, raw json.RawMessage) (Response, error) {
	var layout splitLayout
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&layout); err != nil {
		return nil, fmt.Errorf("%s result: %w", kind, err)
	}
	if layout.Columns == nil || layout.Data == nil {
		return nil, fmt.Errorf("%s result: %w", kind, ErrNotTabular)
	}
	table := Table{
		Kind:    kind,
		Columns: texts(layout.Columns),
		Index:   texts(layout.Index),
		Rows:    make([][]interface{}, 0, len(layout.Data)),
	}
	for _, row := range layout.Data {
		table.Rows = append(table.Rows, normalize(row))
	}
	return table, nil
}

func decodeRecords(kind string, raw json.RawMessage) (Response, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%s result: %w", kind, err)
	}
	table := Table{
		Kind:    kind,
		Columns: []string{},
		Rows:    make([][]interface{}, 0, len(records)),
	}
	position := make(map[string]int)
	parsed := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		keys, err := objectKeys(record)
		if err != nil {
			return nil, fmt.Errorf("%s result: %w", kind, err)
		}
		for _, key := range keys {
			if _, ok := position[key]; !ok {
				position[key] = len(table.Columns)
				table.Columns = append(table.Columns, key)
			}
		}
		values := make(map[string]interface{})
		decoder := json.NewDecoder(bytes.NewReader(record))
		decoder.UseNumber()
		if err := decoder.Decode(&values); err != nil {
			return nil, fmt.Errorf("%s result: %w", kind, err)
		}
		parsed = append(parsed, values)
	}
	for _, values := range parsed {
		row := make([]interface{}, len(table.Columns))
		for key, value := range values {
			row[position[key]] = value
		}
		table.Rows = append(table.Rows, normalize(row))
	}
	return table, nil
}

// objectKeys lists the keys of one JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotTabular
	}
	keys := []string{}
	for decoder.More() {
		token, err = decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := token.(string)
		if !ok {
			return nil, ErrNotTabular
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := decoder.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// normalize turns json.Number cells into int64 or float64.
func normalize(row []interface{}) []interface{} {
	result := make([]interface{}, len(row))
	for at, value := range row {
		number, ok := value.(json.Number)
		if !ok {
			result[at] = value
			continue
		}
		if whole, err := number.Int64(); err == nil {
			result[at] = whole
		} else if fraction, err := number.Float64(); err == nil {
			result[at] = fraction
		} else {
			result[at] = number.String()
		}
	}
	return result
}

func texts(values []interface{}) []string {
	if values == nil {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		result = append(result, CellText(value))
	}
	return result
}

// CellText is how a table cell reads on screen.
func CellText(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case json.Number:
		return typed.String()
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprint(typed)
	}
}

// Numeric reports the cell as a float when it holds a number.
func Numeric(value interface{}) (float64, bool) {
	switch typed := value.(type) {
	case int64:
		return float64(typed), true
	case float64:
		return typed, true
	}
	return 0, false
}

// ColumnSum is the total of one column's numeric cells.
type ColumnSum struct {
	Name  string
	Total float64
	Count int
}

// Sums totals every column that holds at least one number, in column order.
func (it Table) Sums() []ColumnSum {
	result := make([]ColumnSum, 0, len(it.Columns))
	for column, name := range it.Columns {
		sum := ColumnSum{Name: name}
		for row := range it.Rows {
			if value, ok := Numeric(it.Cell(row, column)); ok {
				sum.Total += value
				sum.Count++
			}
		}
		if sum.Count > 0 {
			result = append(result, sum)
		}
	}
	return result
}

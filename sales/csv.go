package sales

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// DateFormat is the layout of the order_date column.
const DateFormat = "2006-01-02"

var (
	// ErrMissingColumn is returned when the CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing column")
	// ErrMalformedRow is returned when a field cannot be parsed.
	ErrMalformedRow = errors.New("malformed row")
)

// Columns lists the required CSV header columns, in any order.
var Columns = []string{
	"order_id", "order_date", "country", "category", "product",
	"customer_id", "quantity", "unit_price", "discount", "returned",
}

// LoadFile loads the records of the CSV file at path.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load reads records from a CSV stream whose first line is a header holding at least Columns.
func Load(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input, expected header %v", ErrMissingColumn, Columns)
	}
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	if missing := lo.Without(Columns, lo.Keys(index)...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		record, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
		}
		records = append(records, record)
	}
}

func parseRow(row []string, index map[string]int) (Record, error) {
	field := func(name string) string { return strings.TrimSpace(row[index[name]]) }

	date, err := time.Parse(DateFormat, field("order_date"))
	if err != nil {
		return Record{}, fmt.Errorf("order_date: %w", err)
	}
	quantity, err := strconv.Atoi(field("quantity"))
	if err != nil {
		return Record{}, fmt.Errorf("quantity: %w", err)
	}
	unitPrice, err := strconv.ParseFloat(field("unit_price"), 64)
	if err != nil {
		return Record{}, fmt.Errorf("unit_price: %w", err)
	}
	discount, err := strconv.ParseFloat(field("discount"), 64)
	if err != nil {
		return Record{}, fmt.Errorf("discount: %w", err)
	}

	return Record{
		OrderID:    field("order_id"),
		OrderDate:  date,
		Country:    field("country"),
		Category:   field("category"),
		Product:    field("product"),
		CustomerID: field("customer_id"),
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Discount:   discount,
		Returned:   parseBool(field("returned")),
	}, nil
}

// parseBool accepts the spellings found in spreadsheet exports. Anything else is false.
func parseBool(value string) bool {
	return lo.Contains([]string{"TRUE", "T", "1", "YES", "Y"}, strings.ToUpper(value))
}

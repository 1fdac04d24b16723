// Package importer bulk-registers products on the stock backend from a CSV
// export, one POST per row.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"salesdesk/internal/backend"
)

type productWriter interface {
	CreateProduct(ctx context.Context, in backend.CreateProductInput) error
}

// CSVImporter reads product rows and registers each on the backend.
type CSVImporter struct {
	reader *csv.Reader
	writer productWriter
}

func NewCSVImporter(r io.Reader, writer productWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, writer: writer}
}

// Run parses CSV rows and creates one product per row. Expected headers:
// produto, tipoUnidade, setor, quantidade, custoCompra, margemLucro,
// precoDeVenda (order free, extra columns ignored).
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		in, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+2, err)
		}
		if err := i.writer.CreateProduct(ctx, in); err != nil {
			return imported, fmt.Errorf("create product %q: %w", in.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) (backend.CreateProductInput, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("produto")
	if name == "" {
		return backend.CreateProductInput{}, errors.New("missing produto")
	}

	salePrice, err := parseDecimal(field("precodevenda"))
	if err != nil {
		return backend.CreateProductInput{}, fmt.Errorf("precoDeVenda: %w", err)
	}
	unitCost, err := parseDecimal(field("custocompra"))
	if err != nil {
		return backend.CreateProductInput{}, fmt.Errorf("custoCompra: %w", err)
	}
	margin, err := parseDecimal(field("margemlucro"))
	if err != nil {
		return backend.CreateProductInput{}, fmt.Errorf("margemLucro: %w", err)
	}

	quantity := 0
	if q := field("quantidade"); q != "" {
		quantity, err = strconv.Atoi(q)
		if err != nil {
			return backend.CreateProductInput{}, fmt.Errorf("quantidade: %w", err)
		}
	}

	return backend.CreateProductInput{
		Name:      name,
		UnitKind:  field("tipounidade"),
		Sector:    field("setor"),
		Quantity:  quantity,
		UnitCost:  unitCost,
		Margin:    margin,
		SalePrice: salePrice,
	}, nil
}

// parseDecimal accepts both comma and dot decimal separators; empty means
// zero.
func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

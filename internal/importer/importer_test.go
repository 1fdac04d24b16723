package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"salesdesk/internal/backend"
)

type captureWriter struct {
	created []backend.CreateProductInput
	err     error
}

func (w *captureWriter) CreateProduct(ctx context.Context, in backend.CreateProductInput) error {
	if w.err != nil {
		return w.err
	}
	w.created = append(w.created, in)
	return nil
}

func TestRun_ImportsRows(t *testing.T) {
	csv := strings.Join([]string{
		"produto,tipoUnidade,setor,quantidade,custoCompra,margemLucro,precoDeVenda",
		"Caderno,UN,Papelaria,10,\"6,50\",50,\"9,75\"",
		"Caneta,UN,Papelaria,100,1.10,80,1.98",
	}, "\n")

	writer := &captureWriter{}
	imported, err := NewCSVImporter(strings.NewReader(csv), writer).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imported != 2 {
		t.Fatalf("imported = %d, want 2", imported)
	}

	first := writer.created[0]
	if first.Name != "Caderno" || first.Quantity != 10 {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if !first.UnitCost.Equal(decimal.NewFromFloat(6.50)) {
		t.Fatalf("comma-separated cost parsed as %s", first.UnitCost)
	}
	if !writer.created[1].SalePrice.Equal(decimal.NewFromFloat(1.98)) {
		t.Fatalf("dot-separated price parsed as %s", writer.created[1].SalePrice)
	}
}

func TestRun_HeaderOrderIsFree(t *testing.T) {
	csv := strings.Join([]string{
		"precoDeVenda,produto,custoCompra,margemLucro",
		"9.75,Caderno,6.50,50",
	}, "\n")

	writer := &captureWriter{}
	imported, err := NewCSVImporter(strings.NewReader(csv), writer).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imported != 1 {
		t.Fatalf("imported = %d, want 1", imported)
	}
	if writer.created[0].Name != "Caderno" {
		t.Fatalf("unexpected row: %+v", writer.created[0])
	}
}

func TestRun_MissingProductName(t *testing.T) {
	csv := strings.Join([]string{
		"produto,precoDeVenda",
		",9.75",
	}, "\n")

	imported, err := NewCSVImporter(strings.NewReader(csv), &captureWriter{}).Run(context.Background())
	if err == nil {
		t.Fatal("expected an error for a missing product name")
	}
	if imported != 0 {
		t.Fatalf("imported = %d, want 0", imported)
	}
}

func TestRun_StopsOnWriterError(t *testing.T) {
	csv := strings.Join([]string{
		"produto,precoDeVenda",
		"Caderno,9.75",
		"Caneta,1.98",
	}, "\n")

	boom := errors.New("backend down")
	imported, err := NewCSVImporter(strings.NewReader(csv), &captureWriter{err: boom}).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected writer error, got %v", err)
	}
	if imported != 0 {
		t.Fatalf("imported = %d, want 0", imported)
	}
}

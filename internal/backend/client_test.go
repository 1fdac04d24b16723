package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"salesdesk/internal/domain"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, log.New(io.Discard, "", 0))
}

func TestListProducts_NormalizesMixedMoneyTypes(t *testing.T) {
	// Observed traffic carries money both as numbers and numeric strings.
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/listprodutos" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `[
			{"codigo": 1, "produto": "Caderno", "precoDeVenda": 9.75, "custoCompra": "6.50"},
			{"codigo": 2, "produto": "Caneta", "precoDeVenda": "1.98", "custoCompra": 1.10}
		]`)
	}))

	products, err := client.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if !products[0].SalePrice.Equal(decimal.NewFromFloat(9.75)) {
		t.Fatalf("numeric price parsed as %s", products[0].SalePrice)
	}
	if !products[1].SalePrice.Equal(decimal.NewFromFloat(1.98)) {
		t.Fatalf("string price parsed as %s", products[1].SalePrice)
	}
}

func TestListProducts_NonListPayload(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message": "not a list"}`)
	}))

	if _, err := client.ListProducts(context.Background()); err == nil {
		t.Fatal("expected an error for a non-list payload")
	}
}

func TestStatusError_UsesBackendMessage(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"message": "Venda não encontrada."}`)
	}))

	_, err := client.ListClients(context.Background())

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Message != "Venda não encontrada." {
		t.Fatalf("expected backend message verbatim, got %q", statusErr.Message)
	}
}

func TestStatusError_GarbageBodyDoesNotCrash(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `<html>upstream error</html>`)
	}))

	_, err := client.ListClients(context.Background())

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Status != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", statusErr.Status)
	}
	if statusErr.Message != "" {
		t.Fatalf("garbage body should yield empty message, got %q", statusErr.Message)
	}
}

func TestCreateSale_ReturnsAssignedCode(t *testing.T) {
	var received map[string]any
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/createvenda" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"codigo": 42, "nomeCliente": "Maria"}`)
	}))

	code, err := client.CreateSale(context.Background(), domain.Sale{
		ClientCode:           7,
		ClientName:           "Maria",
		PaymentFormCode:      1,
		PaymentConditionCode: 10,
		ProductsValue:        decimal.NewFromFloat(35.00),
		DiscountPercent:      decimal.NewFromInt(10),
		Total:                decimal.NewFromFloat(31.50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 42 {
		t.Fatalf("sale code = %d, want 42", code)
	}

	// The collaborator's field names cross the wire exactly.
	for _, field := range []string{"codCliente", "nomeCliente", "CodFormadePagamento", "CodCondicaoPagamento", "valorProdutos", "desconto", "valorTotaldeVenda"} {
		if _, ok := received[field]; !ok {
			t.Fatalf("request missing field %q: %v", field, received)
		}
	}
}

func TestCreateSale_MissingCodeIsProtocolError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"nomeCliente": "Maria"}`)
	}))

	_, err := client.CreateSale(context.Background(), domain.Sale{})
	if !errors.Is(err, domain.ErrMissingSaleCode) {
		t.Fatalf("expected ErrMissingSaleCode, got %v", err)
	}
}

func TestCreateSaleItem_WireFields(t *testing.T) {
	var received map[string]any
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/createitensvenda" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"codigo": 1}`)
	}))

	err := client.CreateSaleItem(context.Background(), domain.SaleItem{
		SaleCode:    42,
		ProductCode: 1,
		ProductName: "Caderno",
		UnitCost:    decimal.NewFromFloat(6.50),
		Quantity:    2,
		UnitPrice:   decimal.NewFromFloat(9.75),
		LineTotal:   decimal.NewFromFloat(19.50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, field := range []string{"codVenda", "codProduto", "nomeProduto", "custoProduto", "quantidade", "custoUnitariodeVenda", "desconto", "valorTotaldeVenda"} {
		if _, ok := received[field]; !ok {
			t.Fatalf("request missing field %q: %v", field, received)
		}
	}
}

func TestListPaymentConditions_NormalizesStringCodes(t *testing.T) {
	// Condition codes show up both as numbers and as quoted numeric strings;
	// both must land as the same int64 so form filtering works by integer
	// equality.
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"codigo": 10, "codPagamento": 2, "quantidadeParcela": 3, "parcelaInicial": 30, "intervaloParcelas": 30, "descricao": "3x sem juros"},
			{"codigo": "11", "codPagamento": "2", "quantidadeParcela": 1, "parcelaInicial": 0, "intervaloParcelas": 0, "descricao": "À vista"}
		]`)
	}))

	conditions, err := client.ListPaymentConditions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conditions) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(conditions))
	}
	c := conditions[0]
	if c.Code != 10 || c.PaymentFormCode != 2 || c.InstallmentCount != 3 || c.Description != "3x sem juros" {
		t.Fatalf("unexpected mapping: %+v", c)
	}
	if conditions[1].Code != 11 || conditions[1].PaymentFormCode != 2 {
		t.Fatalf("string codes not normalized: %+v", conditions[1])
	}
}

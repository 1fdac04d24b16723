// Package backend is the HTTP client for the external stock backend. It is
// the only package that sees the collaborator's wire format; everything above
// it works with domain types and canonical decimals.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"salesdesk/internal/domain"
)

// Observer receives the outcome of every backend round-trip. Implemented by
// the metrics package; nil disables observation.
type Observer interface {
	ObserveCall(operation string, status int, elapsed time.Duration)
}

type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *log.Logger
	obs     Observer
}

func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// WithObserver attaches a call observer and returns the client.
func (c *Client) WithObserver(obs Observer) *Client {
	c.obs = obs
	return c
}

// StatusError is a non-2xx backend response. Message carries the backend's
// own {message} body verbatim when one was parseable.
type StatusError struct {
	Operation string
	Status    int
	Message   string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Operation, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Operation, e.Status)
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var records []productRecord
	if err := c.getList(ctx, "/listprodutos", &records); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.toDomain())
	}
	return products, nil
}

func (c *Client) ListClients(ctx context.Context) ([]domain.Client, error) {
	var records []clientRecord
	if err := c.getList(ctx, "/listclientes", &records); err != nil {
		return nil, err
	}
	clients := make([]domain.Client, 0, len(records))
	for _, r := range records {
		clients = append(clients, r.toDomain())
	}
	return clients, nil
}

func (c *Client) ListPaymentForms(ctx context.Context) ([]domain.PaymentForm, error) {
	var records []paymentFormRecord
	if err := c.getList(ctx, "/listformas", &records); err != nil {
		return nil, err
	}
	forms := make([]domain.PaymentForm, 0, len(records))
	for _, r := range records {
		forms = append(forms, r.toDomain())
	}
	return forms, nil
}

func (c *Client) ListPaymentConditions(ctx context.Context) ([]domain.PaymentCondition, error) {
	var records []paymentConditionRecord
	if err := c.getList(ctx, "/listcondicoes", &records); err != nil {
		return nil, err
	}
	conditions := make([]domain.PaymentCondition, 0, len(records))
	for _, r := range records {
		conditions = append(conditions, r.toDomain())
	}
	return conditions, nil
}

// CreateSale posts the sale header and returns the backend-assigned sale
// code. A 2xx response without a positive code is reported as
// domain.ErrMissingSaleCode: a header that cannot be referenced is useless
// even though the call nominally succeeded.
func (c *Client) CreateSale(ctx context.Context, sale domain.Sale) (int64, error) {
	req := createSaleRequest{
		CodCliente:           sale.ClientCode,
		NomeCliente:          sale.ClientName,
		CodFormadePagamento:  sale.PaymentFormCode,
		CodCondicaoPagamento: sale.PaymentConditionCode,
		ValorProdutos:        sale.ProductsValue,
		Desconto:             sale.DiscountPercent,
		ValorTotaldeVenda:    sale.Total,
	}
	var resp createSaleResponse
	if err := c.post(ctx, "/createvenda", req, &resp); err != nil {
		return 0, err
	}
	if resp.Codigo <= 0 {
		return 0, domain.ErrMissingSaleCode
	}
	return resp.Codigo, nil
}

func (c *Client) CreateSaleItem(ctx context.Context, item domain.SaleItem) error {
	req := createSaleItemRequest{
		CodVenda:             item.SaleCode,
		CodProduto:           item.ProductCode,
		NomeProduto:          item.ProductName,
		CustoProduto:         item.UnitCost,
		Quantidade:           item.Quantity,
		CustoUnitariodeVenda: item.UnitPrice,
		Desconto:             item.LineDiscount,
		ValorTotaldeVenda:    item.LineTotal,
	}
	return c.post(ctx, "/createitensvenda", req, nil)
}

func (c *Client) CreateProduct(ctx context.Context, in CreateProductInput) error {
	return c.post(ctx, "/createprodutos", createProductRequest{
		Produto:      in.Name,
		TipoUnidade:  in.UnitKind,
		Setor:        in.Sector,
		Quantidade:   in.Quantity,
		CustoCompra:  in.UnitCost,
		MargemLucro:  in.Margin,
		PrecoDeVenda: in.SalePrice,
		Ativo:        "SIM",
	}, nil)
}

func (c *Client) CreateClient(ctx context.Context, name, phone string) error {
	return c.post(ctx, "/createcliente", createClientRequest{Nome: name, NumeroTelefone: phone}, nil)
}

func (c *Client) CreatePaymentForm(ctx context.Context, name string) error {
	return c.post(ctx, "/createforma", createPaymentFormRequest{Nome: name}, nil)
}

func (c *Client) CreatePaymentCondition(ctx context.Context, in CreatePaymentConditionInput) error {
	return c.post(ctx, "/createcondicao", createPaymentConditionRequest{
		CodPagamento:      in.PaymentFormCode,
		QuantidadeParcela: in.InstallmentCount,
		ParcelaInicial:    in.FirstInstallmentDays,
		IntervaloParcelas: in.InstallmentInterval,
		Descricao:         in.Description,
	}, nil)
}

func (c *Client) getList(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	operation := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.observe(operation, 0, time.Since(start))
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()
	c.observe(operation, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read body: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Operation: operation,
			Status:    resp.StatusCode,
			Message:   errorMessage(raw),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}

func (c *Client) observe(operation string, status int, elapsed time.Duration) {
	if c.obs != nil {
		c.obs.ObserveCall(operation, status, elapsed)
	}
}

// errorMessage extracts the backend's optional {message} body. Garbage or
// empty bodies yield an empty string, never an error.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Message
}

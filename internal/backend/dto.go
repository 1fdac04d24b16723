package backend

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"salesdesk/internal/domain"
)

// Wire records mirror the collaborator's Portuguese field names. Monetary
// fields arrive as JSON numbers in some responses and numeric strings in
// others; decimal.Decimal accepts both, so every amount is normalized to one
// decimal representation right here at the boundary.

type productRecord struct {
	Codigo       int64           `json:"codigo"`
	Produto      string          `json:"produto"`
	PrecoDeVenda decimal.Decimal `json:"precoDeVenda"`
	CustoCompra  decimal.Decimal `json:"custoCompra"`
}

func (r productRecord) toDomain() domain.Product {
	return domain.Product{
		Code:      r.Codigo,
		Name:      r.Produto,
		SalePrice: r.PrecoDeVenda,
		UnitCost:  r.CustoCompra,
	}
}

type clientRecord struct {
	Codigo int64  `json:"codigo"`
	Nome   string `json:"nome"`
}

func (r clientRecord) toDomain() domain.Client {
	return domain.Client{Code: r.Codigo, Name: r.Nome}
}

type paymentFormRecord struct {
	Codigo int64  `json:"codigo"`
	Nome   string `json:"nome"`
}

func (r paymentFormRecord) toDomain() domain.PaymentForm {
	return domain.PaymentForm{Code: r.Codigo, Name: r.Nome}
}

// flexInt64 is an integer code that arrives as a JSON number in some
// responses and as a quoted numeric string in others. The payment condition
// list is inconsistent about both its own code and the form reference, so the
// codes are normalized to int64 here and compared as integers everywhere
// above this package.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*f = flexInt64(n)
	return nil
}

type paymentConditionRecord struct {
	Codigo            flexInt64 `json:"codigo"`
	CodPagamento      flexInt64 `json:"codPagamento"`
	QuantidadeParcela int       `json:"quantidadeParcela"`
	ParcelaInicial    int       `json:"parcelaInicial"`
	IntervaloParcelas int       `json:"intervaloParcelas"`
	Descricao         string    `json:"descricao"`
}

func (r paymentConditionRecord) toDomain() domain.PaymentCondition {
	return domain.PaymentCondition{
		Code:                 int64(r.Codigo),
		PaymentFormCode:      int64(r.CodPagamento),
		InstallmentCount:     r.QuantidadeParcela,
		FirstInstallmentDays: r.ParcelaInicial,
		InstallmentInterval:  r.IntervaloParcelas,
		Description:          r.Descricao,
	}
}

type createSaleRequest struct {
	CodCliente           int64           `json:"codCliente"`
	NomeCliente          string          `json:"nomeCliente"`
	CodFormadePagamento  int64           `json:"CodFormadePagamento"`
	CodCondicaoPagamento int64           `json:"CodCondicaoPagamento"`
	ValorProdutos        decimal.Decimal `json:"valorProdutos"`
	Desconto             decimal.Decimal `json:"desconto"`
	ValorTotaldeVenda    decimal.Decimal `json:"valorTotaldeVenda"`
}

type createSaleResponse struct {
	Codigo int64 `json:"codigo"`
}

type createSaleItemRequest struct {
	CodVenda             int64           `json:"codVenda"`
	CodProduto           int64           `json:"codProduto"`
	NomeProduto          string          `json:"nomeProduto"`
	CustoProduto         decimal.Decimal `json:"custoProduto"`
	Quantidade           int             `json:"quantidade"`
	CustoUnitariodeVenda decimal.Decimal `json:"custoUnitariodeVenda"`
	Desconto             decimal.Decimal `json:"desconto"`
	ValorTotaldeVenda    decimal.Decimal `json:"valorTotaldeVenda"`
}

// CreateProductInput carries the fields the backend expects on product
// registration. Used by the seed and importer commands.
type CreateProductInput struct {
	Name      string
	UnitKind  string
	Sector    string
	Quantity  int
	UnitCost  decimal.Decimal
	Margin    decimal.Decimal
	SalePrice decimal.Decimal
}

type createProductRequest struct {
	Produto      string          `json:"produto"`
	TipoUnidade  string          `json:"tipoUnidade"`
	Setor        string          `json:"setor"`
	Quantidade   int             `json:"quantidade"`
	CustoCompra  decimal.Decimal `json:"custoCompra"`
	MargemLucro  decimal.Decimal `json:"margemLucro"`
	PrecoDeVenda decimal.Decimal `json:"precoDeVenda"`
	Ativo        string          `json:"ativo"`
}

type createClientRequest struct {
	Nome           string `json:"nome"`
	NumeroTelefone string `json:"numeroTelefone"`
}

type createPaymentFormRequest struct {
	Nome string `json:"nome"`
}

// CreatePaymentConditionInput carries the fields for condition registration.
type CreatePaymentConditionInput struct {
	PaymentFormCode      int64
	InstallmentCount     int
	FirstInstallmentDays int
	InstallmentInterval  int
	Description          string
}

type createPaymentConditionRequest struct {
	CodPagamento      int64  `json:"codPagamento"`
	QuantidadeParcela int    `json:"quantidadeParcela"`
	ParcelaInicial    int    `json:"parcelaInicial"`
	IntervaloParcelas int    `json:"intervaloParcelas"`
	Descricao         string `json:"descricao"`
}

package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salesdesk/internal/cart"
	"salesdesk/internal/domain"
	"salesdesk/internal/payment"
	"salesdesk/internal/session"
)

type handlers struct {
	deps   Deps
	logger *log.Logger
}

func (h *handlers) listProducts(c *gin.Context) {
	if !h.deps.Catalog.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog not loaded, retry via POST /catalog/reload"})
		return
	}
	c.JSON(http.StatusOK, h.deps.Catalog.Products())
}

func (h *handlers) reloadCatalog(c *gin.Context) {
	if err := h.deps.Catalog.Load(c.Request.Context()); err != nil {
		h.logger.Printf("catalog reload failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": len(h.deps.Catalog.Products())})
}

func (h *handlers) listClients(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.References.Clients())
}

func (h *handlers) listPaymentForms(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.References.PaymentForms())
}

// listPaymentConditions narrows the conditions to the selected form when a
// ?form= query is present; without it no form is selected and the valid set
// is empty.
func (h *handlers) listPaymentConditions(c *gin.Context) {
	formParam := c.Query("form")
	if formParam == "" {
		c.JSON(http.StatusOK, []domain.PaymentCondition{})
		return
	}
	formCode, err := strconv.ParseInt(formParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "form must be an integer code"})
		return
	}
	valid := payment.ValidConditions(h.deps.References.PaymentConditions(), formCode)
	if valid == nil {
		valid = []domain.PaymentCondition{}
	}
	c.JSON(http.StatusOK, valid)
}

func (h *handlers) reloadReferences(c *gin.Context) {
	if err := h.deps.References.Load(c.Request.Context()); err != nil {
		h.logger.Printf("reference reload failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"clients":           len(h.deps.References.Clients()),
		"paymentForms":      len(h.deps.References.PaymentForms()),
		"paymentConditions": len(h.deps.References.PaymentConditions()),
	})
}

func (h *handlers) createSession(c *gin.Context) {
	s := h.deps.Sessions.Create()
	c.JSON(http.StatusCreated, s.Snapshot())
}

func (h *handlers) getSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *handlers) deleteSession(c *gin.Context) {
	h.deps.Sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type addItemInput struct {
	ProductCode int64 `json:"productCode"`
	Quantity    int   `json:"quantity"`
}

func (h *handlers) addItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var in addItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if err := s.AddItem(in.ProductCode, in.Quantity); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

type updateItemInput struct {
	Delta    *int `json:"delta"`
	Quantity *int `json:"quantity"`
}

func (h *handlers) updateItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	code, err := strconv.ParseInt(c.Param("code"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item code must be an integer"})
		return
	}
	var in updateItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch {
	case in.Delta != nil:
		s.AdjustItem(code, *in.Delta)
	case in.Quantity != nil:
		s.SetItemQuantity(code, *in.Quantity)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "delta or quantity required"})
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *handlers) removeItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	code, err := strconv.ParseInt(c.Param("code"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item code must be an integer"})
		return
	}
	s.RemoveItem(code)
	c.JSON(http.StatusOK, s.Snapshot())
}

type discountInput struct {
	Discount string `json:"discount"`
}

func (h *handlers) setDiscount(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var in discountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.SetDiscount(in.Discount)
	c.JSON(http.StatusOK, s.Snapshot())
}

type clientInput struct {
	ClientCode int64 `json:"clientCode"`
}

func (h *handlers) selectClient(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var in clientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.SelectClient(in.ClientCode); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

type paymentInput struct {
	FormCode      int64 `json:"formCode"`
	ConditionCode int64 `json:"conditionCode"`
}

func (h *handlers) selectPayment(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var in paymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.SelectPayment(in.FormCode, in.ConditionCode); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *handlers) submit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	receipt, err := s.Submit(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

func (h *handlers) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.deps.Sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return s, true
}

// writeError maps the error taxonomy onto HTTP statuses. The items failure
// carries the orphaned sale code so the client can show it and retry just
// the items step.
func (h *handlers) writeError(c *gin.Context, err error) {
	var validation *domain.ValidationError
	var items *domain.ItemsError
	var header *domain.HeaderError
	var load *domain.LoadError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validation.Error(), "missing": validation.Missing})
	case errors.As(err, &items):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":          items.Error(),
			"saleCode":       items.SaleCode,
			"itemsSubmitted": items.Submitted,
		})
	case errors.As(err, &header):
		c.JSON(http.StatusBadGateway, gin.H{"error": header.Error()})
	case errors.As(err, &load):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": load.Error()})
	case errors.Is(err, domain.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrNonPositiveQuantity), errors.Is(err, domain.ErrConditionMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Printf("unmapped error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

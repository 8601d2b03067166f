package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ssrfm/indent-service/internal/application/service"
	"github.com/ssrfm/indent-service/internal/domain/entity"
	"github.com/ssrfm/indent-service/internal/domain/workflow"
)

// OrderSheetWriter produces the purchase-order sheet for an approved
// requisition and returns the written file path.
type OrderSheetWriter interface {
	Generate(ctx context.Context, req *entity.Requisition) (string, error)
}

// Handlers contains all HTTP request handlers
type Handlers struct {
	indentService     service.IndentService
	transitionService service.TransitionService
	orders            OrderSheetWriter
	logger            Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	indentService service.IndentService,
	transitionService service.TransitionService,
	orders OrderSheetWriter,
	logger Logger,
) *Handlers {
	return &Handlers{
		indentService:     indentService,
		transitionService: transitionService,
		orders:            orders,
		logger:            logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ItemRequest is one requisition line in a create request
type ItemRequest struct {
	ProductName    string `json:"product_name" binding:"required"`
	Specifications string `json:"specifications"`
	MachineName    string `json:"machine_name"`
	MeasureUnit    string `json:"measure_unit"`
	OldStock       string `json:"old_stock"`
	ReqQuantity    string `json:"req_quantity" binding:"required"`
	Notes          string `json:"notes"`
}

// CreateIndentRequest is the payload for POST /indents
type CreateIndentRequest struct {
	RequestedBy string        `json:"requested_by" binding:"required"`
	Location    string        `json:"location" binding:"required"`
	Items       []ItemRequest `json:"items" binding:"required"`
}

// SelectionRequest records the chosen quotation for one item
type SelectionRequest struct {
	ItemID      int64  `json:"item_id" binding:"required"`
	QuotationID string `json:"quotation_id" binding:"required"`
}

// ApproveRequest is the payload for POST /indents/:id/approve
type ApproveRequest struct {
	Actor      string             `json:"actor" binding:"required"`
	Selections []SelectionRequest `json:"selections"`
}

// RejectRequest is the payload for POST /indents/:id/reject
type RejectRequest struct {
	Actor  string `json:"actor" binding:"required"`
	Reason string `json:"reason"`
}

// ItemEditRequest carries a reverted-state item correction
type ItemEditRequest struct {
	ItemID         int64  `json:"item_id" binding:"required"`
	ReqQuantity    string `json:"req_quantity"`
	Specifications string `json:"specifications"`
	Notes          string `json:"notes"`
}

// UpdateIndentRequest is the payload for PATCH /indents/:id, the generic
// status update every non-approve/reject transition goes through.
type UpdateIndentRequest struct {
	Actor            string            `json:"actor" binding:"required"`
	Role             string            `json:"role" binding:"required"`
	Status           string            `json:"status" binding:"required"`
	ReceivedQuantity string            `json:"received_quantity"`
	ReceivedDate     string            `json:"received_date"`
	Notes            string            `json:"notes"`
	Reason           string            `json:"reason"`
	ItemEdits        []ItemEditRequest `json:"item_edits"`
}

// QuotationRequest is the payload for POST /indents/:id/quotations
type QuotationRequest struct {
	ItemID        int64  `json:"item_id" binding:"required"`
	VendorName    string `json:"vendor_name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	QuotedPrice   string `json:"quoted_price" binding:"required"`
	Notes         string `json:"notes"`
	AttachmentRef string `json:"attachment_ref"`
	IsSelected    bool   `json:"is_selected"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"status":    "healthy",
			"service":   "indent-service",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// CreateIndent handles POST /api/v1/indents
func (h *Handlers) CreateIndent(c *gin.Context) {
	var req CreateIndentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	items := make([]service.NewItem, 0, len(req.Items))
	for _, in := range req.Items {
		items = append(items, service.NewItem{
			ProductName:    in.ProductName,
			Specifications: in.Specifications,
			MachineName:    in.MachineName,
			MeasureUnit:    in.MeasureUnit,
			OldStock:       in.OldStock,
			ReqQuantity:    in.ReqQuantity,
			Notes:          in.Notes,
		})
	}

	created, err := h.indentService.Create(c.Request.Context(), req.RequestedBy, req.Location, items)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: created})
}

// ListIndents handles GET /api/v1/indents. An indent_no query parameter
// switches to a single-record lookup by indent number, which carries slashes
// and so cannot live in the path.
func (h *Handlers) ListIndents(c *gin.Context) {
	if indentNo := c.Query("indent_no"); indentNo != "" {
		indent, err := h.indentService.GetByIndentNo(c.Request.Context(), indentNo)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, Response{Success: true, Data: indent})
		return
	}

	limit, offset := paginationParams(c)

	indents, err := h.indentService.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: indents})
}

// ListRecentApproved handles GET /api/v1/indents/recent
func (h *Handlers) ListRecentApproved(c *gin.Context) {
	limit, _ := paginationParams(c)

	indents, err := h.indentService.ListRecentApproved(c.Request.Context(), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: indents})
}

// GetIndent handles GET /api/v1/indents/:id
func (h *Handlers) GetIndent(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	indent, err := h.indentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: indent})
}

// ApproveIndent handles POST /api/v1/indents/:id/approve
func (h *Handlers) ApproveIndent(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	selections := make(map[int64]string, len(req.Selections))
	for _, sel := range req.Selections {
		selections[sel.ItemID] = sel.QuotationID
	}

	updated, err := h.transitionService.Approve(c.Request.Context(), id, selections, req.Actor)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: updated})
}

// RejectIndent handles POST /api/v1/indents/:id/reject
func (h *Handlers) RejectIndent(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	updated, err := h.transitionService.Reject(c.Request.Context(), id, req.Reason, req.Actor)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: updated})
}

// UpdateIndent handles PATCH /api/v1/indents/:id
func (h *Handlers) UpdateIndent(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var req UpdateIndentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	role := workflow.Role(req.Role)
	target := workflow.Status(req.Status)
	data := transitionData(target, req)

	updated, err := h.transitionService.Execute(c.Request.Context(), id, role, target, data, req.Actor)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: updated})
}

// AllowedTransitions handles GET /api/v1/indents/:id/transitions
func (h *Handlers) AllowedTransitions(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	role := workflow.Role(c.Query("role"))
	if !role.IsValid() {
		h.logger.Error("Invalid role", "role", c.Query("role"))
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid role"})
		return
	}

	targets, err := h.transitionService.AllowedTransitions(c.Request.Context(), id, role)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: targets})
}

// AddQuotation handles POST /api/v1/indents/:id/quotations
func (h *Handlers) AddQuotation(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var req QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	q, err := h.indentService.AddQuotation(c.Request.Context(), id, service.NewQuotation{
		ItemID:        req.ItemID,
		VendorName:    req.VendorName,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		QuotedPrice:   req.QuotedPrice,
		Notes:         req.Notes,
		AttachmentRef: req.AttachmentRef,
		IsSelected:    req.IsSelected,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: q})
}

// PurchaseOrderSheet handles GET /api/v1/indents/:id/purchase-order
func (h *Handlers) PurchaseOrderSheet(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	indent, err := h.indentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	path, err := h.orders.Generate(c.Request.Context(), indent)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.FileAttachment(path, indentFileName(indent))
}

// transitionData builds the payload variant for the target status out of the
// generic update request.
func transitionData(target workflow.Status, req UpdateIndentRequest) workflow.TransitionData {
	switch target {
	case workflow.StatusApproved:
		return workflow.ApproveData{}
	case workflow.StatusRejected:
		return workflow.RejectData{Reason: req.Reason}
	case workflow.StatusReverted:
		return workflow.RevertData{Reason: req.Reason}
	case workflow.StatusPartiallyReceived, workflow.StatusMaterialReceived:
		return workflow.ReceiptData{
			Quantity: req.ReceivedQuantity,
			Date:     req.ReceivedDate,
			Notes:    req.Notes,
		}
	case workflow.StatusPendingApproval:
		edits := make([]workflow.ItemEdit, 0, len(req.ItemEdits))
		for _, e := range req.ItemEdits {
			edits = append(edits, workflow.ItemEdit{
				ItemID:         e.ItemID,
				ReqQuantity:    e.ReqQuantity,
				Specifications: e.Specifications,
				Notes:          e.Notes,
			})
		}
		return workflow.ResubmitData{Edits: edits}
	default:
		return workflow.NoData{}
	}
}

func (h *Handlers) idParam(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Error("Invalid indent ID", "id", idStr, "error", err)
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid indent id"})
		return 0, false
	}
	return id, true
}

func (h *Handlers) badRequest(c *gin.Context, err error) {
	h.logger.Error("Invalid request payload", "error", err)
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request payload"})
}

// writeError maps workflow errors onto HTTP statuses. Conflicting writes and
// illegal transitions are 409, incomplete payloads are 422, everything else
// is a 500.
func (h *Handlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
	case errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
	case errors.Is(err, workflow.ErrConcurrentModification):
		c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error() + "; re-fetch and retry"})
	case errors.Is(err, workflow.ErrMissingRequiredData),
		errors.Is(err, workflow.ErrApprovalPreconditionFailed):
		c.JSON(http.StatusUnprocessableEntity, Response{Success: false, Error: err.Error()})
	default:
		h.logger.Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal error"})
	}
}

func paginationParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func indentFileName(req *entity.Requisition) string {
	name := "purchase-order-" + strconv.FormatInt(req.ID, 10) + ".xlsx"
	return name
}

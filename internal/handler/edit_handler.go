package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"docex/internal/domain"
	"docex/internal/editor"
)

// editOp is the wire form of one edit operation. Target selects the
// operation type; the remaining fields apply per target.
type editOp struct {
	Target  string `json:"target" binding:"required"`
	Section string `json:"section,omitempty"`
	Index   *int   `json:"index,omitempty"`
	Field   string `json:"field" binding:"required"`
	Value   string `json:"value"`
}

func toEditorOp(e editOp) (editor.Op, error) {
	switch e.Target {
	case "header":
		return editor.HeaderFieldEdit{Field: editor.HeaderField(e.Field), Value: e.Value}, nil
	case "address":
		return editor.AddressFieldEdit{
			Section: editor.AddressSection(e.Section),
			Field:   editor.AddressField(e.Field),
			Value:   e.Value,
		}, nil
	case "line_item":
		if e.Index == nil {
			return nil, fmt.Errorf("line_item edits require an index")
		}
		return editor.LineItemFieldEdit{
			Index: *e.Index,
			Field: editor.LineItemField(e.Field),
			Value: e.Value,
		}, nil
	case "totals":
		return editor.TotalsFieldEdit{Field: editor.TotalsField(e.Field), Value: e.Value}, nil
	case "additional":
		return editor.AdditionalFieldEdit{Field: editor.AdditionalField(e.Field), Value: e.Value}, nil
	default:
		return nil, fmt.Errorf("unknown edit target: %q", e.Target)
	}
}

// ApplyEdit handles POST /api/invoices/apply-edit
// @Summary Apply one edit to an extraction
// @Description Apply a single field edit to an extraction snapshot and return the recalculated result
// @Tags invoices
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse{data=domain.ExtractedInvoice} "Updated extraction"
// @Failure 400 {object} APIResponse "Invalid edit"
// @Router /invoices/apply-edit [post]
func (h *InvoiceHandler) ApplyEdit(c *gin.Context) {
	var req struct {
		Extraction *domain.ExtractedInvoice `json:"extraction" binding:"required"`
		Edit       editOp                   `json:"edit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidation, "extraction and edit are required")
		return
	}

	op, err := toEditorOp(req.Edit)
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}

	updated, err := editor.Apply(*req.Extraction, op)
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}
	RespondOK(c, updated)
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mensa/internal/errors"
	"mensa/internal/models"
	"mensa/internal/services"
)

// PlanHandler handles meal-plan-related requests.
type PlanHandler struct {
	planService services.PlanServicer
	resolver    services.LineResolver
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService services.PlanServicer, resolver services.LineResolver) *PlanHandler {
	return &PlanHandler{planService: planService, resolver: resolver}
}

// planDateURI binds the :date path parameter.
type planDateURI struct {
	Date string `uri:"date" binding:"required,plan_date"`
}

// PlanItemPayload is one line in a replace request. ID selects the variant:
// a positive id references a catalog item (name and cost are ignored), while
// models.CustomItemID carries a free-form name and cost.
type PlanItemPayload struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// ReplacePlanRequest represents the request payload for replacing the plan
// on a date.
type ReplacePlanRequest struct {
	TargetCost float64           `json:"target_cost" binding:"gte=0"`
	Items      []PlanItemPayload `json:"items"`
}

// PlanSummary carries the spend figures derived from a plan's resolved lines.
type PlanSummary struct {
	TargetCost float64 `json:"target_cost"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
}

// PlanResponse represents a plan with its resolved lines.
type PlanResponse struct {
	ID      uint                  `json:"id"`
	Date    string                `json:"date"`
	Items   []models.ResolvedLine `json:"items"`
	Summary PlanSummary           `json:"summary"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ReplacePlan handles replacing the meal plan for a date
// @Summary     Replace the plan for a date
// @Description Atomically replace whatever plan exists on the date with the submitted one
// @Tags        plans
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       date path string true "Plan date (YYYY-MM-DD)"
// @Param       request body ReplacePlanRequest true "Plan details"
// @Success     200 {object} PlanResponse "Stored plan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plans/{date} [put]
func (h *PlanHandler) ReplacePlan(c *gin.Context) {
	var uri planDateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be formatted YYYY-MM-DD"))
		return
	}

	var req ReplacePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entries := make([]models.LineEntry, 0, len(req.Items))
	for i, item := range req.Items {
		entry, err := models.EntryFromResolved(models.ResolvedLine{ID: item.ID, Name: item.Name, Cost: item.Cost})
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrConstraintViolation,
				fmt.Sprintf("items[%d]: %v", i, err)))
			return
		}
		entries = append(entries, entry)
	}

	planID, err := h.planService.ReplacePlanForDate(uri.Date, req.TargetCost, entries)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp, err := h.buildPlanResponse(planID, uri.Date, req.TargetCost)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": resp})
}

// GetPlan handles fetching the plan stored for a date
// @Summary     Get the plan for a date
// @Description Fetch the stored plan with resolved lines and spend summary
// @Tags        plans
// @Produce     json
// @Param       date path string true "Plan date (YYYY-MM-DD)"
// @Success     200 {object} PlanResponse "Stored plan"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     404 {object} ErrorResponse "No plan on that date"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plans/{date} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	var uri planDateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be formatted YYYY-MM-DD"))
		return
	}

	plan, err := h.planService.FindPlanByDate(uri.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if plan == nil {
		respondWithError(c, apperrors.ErrPlanNotFound)
		return
	}

	resp, err := h.buildPlanResponse(plan.ID, plan.Date, plan.TargetCost)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": resp})
}

// GetPlanDates handles listing the dates that have a stored plan
// @Summary     List planned dates
// @Description List every date carrying a plan, most recent first
// @Tags        plans
// @Produce     json
// @Success     200 {object} map[string][]string "Planned dates"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plans [get]
func (h *PlanHandler) GetPlanDates(c *gin.Context) {
	dates, err := h.planService.ListPlanDates()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// DeletePlan handles deleting a plan by id
// @Summary     Delete a plan
// @Description Delete the plan and its lines; deleting an absent plan succeeds
// @Tags        plans
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path int true "Plan ID"
// @Success     200 {object} MessageResponse "Plan deleted"
// @Failure     400 {object} ErrorResponse "Invalid id"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.planService.DeletePlan(planID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully"})
}

func (h *PlanHandler) buildPlanResponse(planID uint, date string, targetCost float64) (PlanResponse, error) {
	lines, err := h.resolver.ResolveLines(planID)
	if err != nil {
		return PlanResponse{}, err
	}

	spent := 0.0
	for _, line := range lines {
		spent += line.Cost
	}

	return PlanResponse{
		ID:    planID,
		Date:  date,
		Items: lines,
		Summary: PlanSummary{
			TargetCost: targetCost,
			Spent:      spent,
			Remaining:  targetCost - spent,
		},
	}, nil
}

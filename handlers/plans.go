package handlers

import (
    "log"
    "net/http"

    "scholarly-checkout-api/database"
    "scholarly-checkout-api/models"
    "scholarly-checkout-api/utils"
)

type PlanHandler struct {
    db *database.Connection
}

func NewPlanHandler(db *database.Connection) *PlanHandler {
    return &PlanHandler{db: db}
}

// GetPlans returns the plan catalog for the marketing pages and the wizard.
func (h *PlanHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
    plans, err := h.db.GetPlans()
    if err != nil {
        log.Printf("Error fetching plans: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, models.ErrCodeGeneral, "Failed to load plans")
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: "Plans retrieved successfully",
        Data:    plans,
    })
}

package utils

import (
    "encoding/json"
    "net/http"

    "scholarly-checkout-api/models"
)

func SendErrorResponse(w http.ResponseWriter, status int, errorCode, message string) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(models.APIResponse{
        Status:    "error",
        Message:   message,
        ErrorCode: errorCode,
    })
}

func SendFieldErrors(w http.ResponseWriter, status int, message string, errs []models.FieldError) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(models.APIResponse{
        Status:    "error",
        Message:   message,
        ErrorCode: "validation_failed",
        Errors:    errs,
    })
}

func SendSuccessResponse(w http.ResponseWriter, response models.APIResponse) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusOK)
    json.NewEncoder(w).Encode(response)
}

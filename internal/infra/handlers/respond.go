package handlers

import (
	"encoding/json"
	"net/http"

	"lead-connector/internal/domain/dto"
)

// writeSuccess emits the uniform success envelope.
func writeSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	writeEnvelope(w, statusCode, dto.Envelope{
		Status:  dto.StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// writeError emits the uniform failure envelope with a classification
// marker. Internal detail stays in the logs; only the message leaves.
func writeError(w http.ResponseWriter, statusCode int, marker, message string) {
	writeEnvelope(w, statusCode, dto.Envelope{
		Status:  dto.StatusError,
		Error:   marker,
		Message: message,
	})
}

func writeEnvelope(w http.ResponseWriter, statusCode int, envelope dto.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(envelope)
}

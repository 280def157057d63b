package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/futig/interview-cases/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent, nothing to report to the client
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error body named after the status
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// GenerationError writes a failed generation with its trail and raw payload
func GenerationError(w http.ResponseWriter, status int, message string, genErr *entity.GenerationError) {
	JSON(w, status, entity.ErrorResponse{
		Error:       http.StatusText(status),
		Message:     message,
		Debug:       genErr.Trail,
		RawResponse: genErr.RawPayload,
	})
}

// Attachment writes file as a download
func Attachment(w http.ResponseWriter, file *entity.ExportedFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}

package utils

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
)

// Headers shared by the vault server and its clients.
const (
	HeaderAuthorization = "Authorization"
	HeaderTraceID       = "X-Trace-ID"
	HeaderContentSHA256 = "X-Content-SHA256"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, models.StatusResponse{Status: "online"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// AttachmentDisposition builds a Content-Disposition header value offering
// filename as a download.
func AttachmentDisposition(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}

// AttachmentFilename extracts the filename parameter of a Content-Disposition
// header value, or returns "" when absent.
func AttachmentFilename(disposition string) string {
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

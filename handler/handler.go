package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func Index(w http.ResponseWriter) {
	JSON(w, http.StatusOK, map[string]string{
		"service": "ytingest",
		"message": "video metadata ingestion worker",
	})
}

// JSON writes the body as indented JSON with the given status.
func JSON(w http.ResponseWriter, status int, body any) {
	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `{"error": "internal error", "message": %q}`, err.Error())
		return
	}
	w.WriteHeader(status)
	w.Write(data)
}

// Error writes the structured failure payload every failure path uses.
func Error(w http.ResponseWriter, status int, errName, message string) {
	JSON(w, status, struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}{
		Error:   errName,
		Message: message,
	})
}

package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized line per domain event. Keep the
// message short and free of passenger or payment details.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}

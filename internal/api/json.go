package api

import (
	"encoding/json"
	"net/http"

	"haulquote/internal/model"
)

// Problem represents an RFC7807 problem details response body.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, title, detail, instance string) {
	writeJSON(w, status, Problem{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	})
}

// writeQuoteError maps the pricing failure taxonomy onto problem responses:
// bad input is the caller's fault, unresolvable and P.O.A are priced-out
// conditions on an otherwise well-formed request.
func writeQuoteError(w http.ResponseWriter, qe *model.QuoteError, instance string) {
	switch qe.Kind {
	case model.ErrInvalidInput:
		writeProblem(w, http.StatusBadRequest, "Invalid quote request", qe.Reason, instance)
	case model.ErrPriceOnApplication:
		writeProblem(w, http.StatusUnprocessableEntity, "Price on application", qe.Reason, instance)
	default:
		writeProblem(w, http.StatusUnprocessableEntity, "Quote not available", qe.Reason, instance)
	}
}

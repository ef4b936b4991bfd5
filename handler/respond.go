package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/fieldcheck/pkg/logger"
	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

type validResponse struct {
	Value any `json:"value"`
}

type errorResponse struct {
	Error string         `json:"error"`
	Code  validator.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) respondValid(w http.ResponseWriter, value any) {
	writeJSON(w, http.StatusOK, validResponse{Value: value})
}

// respondError maps a validation failure onto a status code: 422 for
// unsupported input kinds, 400 for everything else. Non-validation errors
// are never expected here and answer 500 without leaking detail.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	verr, ok := validator.AsError(err)
	if !ok {
		h.log.ErrorContext(r.Context(), "unexpected validation failure", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	status := http.StatusBadRequest
	if verr.Code.Category() == validator.CategoryUnsupportedType {
		status = http.StatusUnprocessableEntity
	}
	h.log.DebugContext(r.Context(), "validation failed", logger.Code(string(verr.Code)))
	writeJSON(w, status, errorResponse{Error: verr.Message, Code: verr.Code})
}

// decodeValue reads the JSON body {"value": ...} without coercing the type;
// the boolean endpoint needs the raw kind.
func decodeValue(r *http.Request) (any, error) {
	var req struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &validator.Error{Code: validator.CodeBadFormat, Message: "request body must be a JSON object with a value field"}
	}
	return req.Value, nil
}

// decodeString reads the JSON body and requires a textual value. JSON numbers
// are accepted for the numeric endpoints and rendered back to their literal
// form; any other kind is an unsupported input.
func decodeString(r *http.Request) (string, error) {
	var req struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Value) == 0 {
		return "", &validator.Error{Code: validator.CodeBadFormat, Message: "request body must be a JSON object with a value field"}
	}

	var s string
	if err := json.Unmarshal(req.Value, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(req.Value, &n); err == nil {
		return n.String(), nil
	}
	return "", &validator.Error{Code: validator.CodeUnsupportedInput, Message: "value must be a string"}
}

// floatQuery parses an optional float query parameter into a bound pointer.
func floatQuery(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &validator.Error{Code: validator.CodeBadFormat, Message: "query parameter " + name + " must be a number"}
	}
	return &f, nil
}

// intQuery parses an optional integer query parameter; absent returns zero.
func intQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &validator.Error{Code: validator.CodeBadFormat, Message: "query parameter " + name + " must be an integer"}
	}
	return n, nil
}

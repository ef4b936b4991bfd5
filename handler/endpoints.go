package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

func (h *Handler) validateNumber(w http.ResponseWriter, r *http.Request) {
	minBound, err := floatQuery(r, "min")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	maxBound, err := floatQuery(r, "max")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	value, err := decodeString(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	parsed, err := (validator.Numeric{Min: minBound, Max: maxBound}).Validate(value)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondValid(w, parsed)
}

func (h *Handler) validateAge(w http.ResponseWriter, r *http.Request) {
	minAge, err := floatQuery(r, "min_age")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	value, err := decodeString(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	v := validator.NewAge()
	if minAge != nil {
		v.MinAge = *minAge
	}
	parsed, err := v.Validate(value)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondValid(w, parsed)
}

func (h *Handler) validateDecimal(w http.ResponseWriter, r *http.Request) {
	places, err := intQuery(r, "max_decimal_places")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	value, err := decodeString(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	normalized, err := (validator.Decimal{MaxDecimalPlaces: places}).Validate(value)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondValid(w, normalized)
}

func (h *Handler) validateLength(w http.ResponseWriter, r *http.Request) {
	minLen, err := intQuery(r, "min_length")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	maxLen, err := intQuery(r, "max_length")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	value, err := decodeString(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	normalized, err := (validator.MinMaxLength{MinLength: minLen, MaxLength: maxLen}).Validate(value)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondValid(w, normalized)
}

func (h *Handler) validateAlphanumeric(w http.ResponseWriter, r *http.Request) {
	h.validateString(w, r, validator.Alphanumeric{})
}

func (h *Handler) validateAlphabetic(w http.ResponseWriter, r *http.Request) {
	h.validateString(w, r, validator.Alphabetic{})
}

func (h *Handler) validateName(w http.ResponseWriter, r *http.Request) {
	h.validateString(w, r, validator.Name{Field: r.URL.Query().Get("field")})
}

func (h *Handler) validateAddress(w http.ResponseWriter, r *http.Request) {
	h.validateString(w, r, validator.Address{})
}

func (h *Handler) validateGender(w http.ResponseWriter, r *http.Request) {
	var allowed []string
	if raw := r.URL.Query().Get("allowed"); raw != "" {
		allowed = strings.Split(raw, ",")
	}
	h.validateString(w, r, validator.Gender{Allowed: allowed})
}

func (h *Handler) validatePhone(w http.ResponseWriter, r *http.Request) {
	h.validateString(w, r, validator.PhoneNumber{})
}

func (h *Handler) validateZipcode(w http.ResponseWriter, r *http.Request) {
	h.validateString(w, r, validator.Zipcode{})
}

func (h *Handler) validatePincode(w http.ResponseWriter, r *http.Request) {
	h.validateString(w, r, validator.Pincode{})
}

func (h *Handler) validatePassword(w http.ResponseWriter, r *http.Request) {
	h.validateString(w, r, validator.Password{})
}

// stringValidator is the shared shape of the single-string validators.
type stringValidator interface {
	Validate(value string) (string, error)
}

func (h *Handler) validateString(w http.ResponseWriter, r *http.Request, v stringValidator) {
	value, err := decodeString(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	normalized, err := v.Validate(value)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondValid(w, normalized)
}

func (h *Handler) validateEmail(w http.ResponseWriter, r *http.Request) {
	value, err := decodeString(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	normalized, err := (validator.Email{Resolver: h.resolver}).Validate(r.Context(), value)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondValid(w, normalized)
}

func (h *Handler) validateDate(w http.ResponseWriter, r *http.Request) {
	value, err := decodeString(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	parsed, err := (validator.Date{}).Validate(value)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondValid(w, parsed)
}

func (h *Handler) validateDateRange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, &validator.Error{Code: validator.CodeBadFormat, Message: "request body must be a JSON object with start and end fields"})
		return
	}

	startAt, endAt, err := (validator.DateRange{}).Validate(req.Start, req.End)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondValid(w, map[string]any{"start": startAt, "end": endAt})
}

func (h *Handler) validateBoolean(w http.ResponseWriter, r *http.Request) {
	value, err := decodeValue(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	b, err := (validator.Boolean{}).Validate(value)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondValid(w, b)
}

package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing;
// larger files spill to temporary storage and stay seekable.
const maxMultipartMemory = 10 << 20 // 10 MB

func (h *Handler) validateDocument(w http.ResponseWriter, r *http.Request) {
	name, file, err := h.formFile(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	defer file.Close()

	if err := validator.NewDocument().Validate(name, file); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondValid(w, name)
}

func (h *Handler) validateImage(w http.ResponseWriter, r *http.Request) {
	name, file, err := h.formFile(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	defer file.Close()

	v := validator.NewImage()
	v.Decoder = h.decoder
	if err := v.Validate(name, file); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondValid(w, name)
}

// formFile extracts the uploaded "file" part. multipart.File is seekable, so
// the validators can measure and decode without consuming the content.
func (h *Handler) formFile(r *http.Request) (string, multipart.File, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return "", nil, &validator.Error{Code: validator.CodeBadFormat, Message: "request must be multipart/form-data with a file field"}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, &validator.Error{Code: validator.CodeEmptyValue, Message: "file field is required"}
	}
	return header.Filename, file, nil
}

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/capstock/capstock/internal/domain/imports"
	"github.com/capstock/capstock/internal/importer"
)

const maxUploadBytes = 20 << 20

// readUpload pulls the spreadsheet out of a multipart form ("file" part).
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeError(w, http.StatusBadRequest, "expected multipart form with a file part")
		return "", nil, false
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "missing file part")
		return "", nil, false
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		h.serverError(w, "read upload", err)
		return "", nil, false
	}
	return header.Filename, data, true
}

func (h *Handler) importError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, importer.ErrUnsupportedFormat):
		h.writeError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, importer.ErrEmptySource):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, importer.ErrNoMappedColumns):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.serverError(w, "import", err)
	}
}

func (h *Handler) previewImport(w http.ResponseWriter, r *http.Request) {
	name, data, ok := h.readUpload(w, r)
	if !ok {
		return
	}
	preview, err := h.importer.Preview(name, data)
	if err != nil {
		h.importError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, preview)
}

func (h *Handler) runImport(w http.ResponseWriter, r *http.Request) {
	name, data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	// Optional manual corrections to the auto-detected mapping, as a JSON
	// object "mapping" of header -> canonical field.
	overrides := importer.Mapping{}
	if raw := r.FormValue("mapping"); raw != "" {
		var m map[string]string
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid mapping")
			return
		}
		for header, field := range m {
			if !importer.ValidField(field) {
				h.writeError(w, http.StatusBadRequest, "unknown field: "+field)
				return
			}
			overrides.Assign(header, importer.Field(field))
		}
	}

	result, err := h.importer.Import(r.Context(), name, data, overrides)
	if err != nil {
		h.importError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) listImports(w http.ResponseWriter, r *http.Request) {
	list, err := h.batches.List(r.Context())
	if err != nil {
		h.serverError(w, "list imports", err)
		return
	}
	if list == nil {
		list = []imports.Batch{}
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) downloadTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := h.importer.Template()
	if err != nil {
		h.serverError(w, "build template", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="template_capas.xlsx"`)
	_, _ = w.Write(data)
}

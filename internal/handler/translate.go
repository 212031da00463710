package handler

import (
	"encoding/json"
	"net/http"

	"microblog/internal/httputil"
	"microblog/internal/service"
)

// TranslateHandler proxies post text to the external translation service.
type TranslateHandler struct {
	translateService *service.TranslateService
}

func NewTranslateHandler(translateService *service.TranslateService) *TranslateHandler {
	return &TranslateHandler{translateService: translateService}
}

// Translate handles POST /translate with form fields text,
// source_language and dest_language. The translated value is relayed
// verbatim from the upstream service.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	text := r.FormValue("text")
	if text == "" {
		httputil.WriteBadRequest(w, "Text is required")
		return
	}

	translated := h.translateService.Translate(r.Context(),
		text, r.FormValue("source_language"), r.FormValue("dest_language"))

	httputil.WriteJSON(w, http.StatusOK, map[string]json.RawMessage{"text": translated})
}

package http

import (
	"errors"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"financas/internal/ingest"
	applog "financas/internal/log"
)

// handleUpload accepts one or more statement files in the "statements"
// multipart field and ingests each as its own batch.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	logger := applog.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.uploadMaxBytes)
	if err := r.ParseMultipartForm(s.uploadMaxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			_, _ = w.Write([]byte(`<div class="error">Arquivo muito grande</div>`))
			return
		}
		logger.Error("Parse multipart form error", applog.FieldError, err)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Formato de requisição inválido</div>`))
		return
	}

	var uploads []*multipart.FileHeader
	if r.MultipartForm != nil {
		uploads = r.MultipartForm.File["statements"]
	}
	if len(uploads) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Nenhum arquivo enviado</div>`))
		return
	}

	files := make([]ingest.File, 0, len(uploads))
	for _, fh := range uploads {
		name := sanitizeInput(filepath.Base(fh.Filename))
		if !allowedUploadExt(name) {
			w.WriteHeader(http.StatusUnsupportedMediaType)
			_, _ = w.Write([]byte(`<div class="error">Extensão não suportada: ` +
				template.HTMLEscapeString(name) + `</div>`))
			return
		}

		content, err := readUpload(fh)
		if err != nil {
			logger.Error("Read uploaded file error", applog.FieldError, err, applog.FieldSource, name)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`<div class="error">Falha lendo o arquivo: ` +
				template.HTMLEscapeString(name) + `</div>`))
			return
		}
		files = append(files, ingest.File{Name: name, Content: content})
	}

	results, err := s.ingest.IngestAll(r.Context(), files)
	if err != nil {
		logger.Error("Ingest error", applog.FieldError, err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Erro ao importar os extratos</div>`))
		return
	}

	s.invalidateCaches()

	totalImported, totalSkipped := 0, 0
	var b strings.Builder
	b.WriteString(`<div class="success">`)
	for _, res := range results {
		totalImported += res.Imported
		totalSkipped += res.Skipped
		b.WriteString(`<p>` + template.HTMLEscapeString(res.Source) + `: ` +
			strconv.Itoa(res.Imported) + ` lançamentos importados`)
		if res.Skipped > 0 {
			b.WriteString(`, ` + strconv.Itoa(res.Skipped) + ` linhas ignoradas`)
		}
		b.WriteString(`</p>`)
	}
	b.WriteString(`</div>`)

	w.Header().Set("HX-Trigger", `{"statements:imported": {"imported": `+strconv.Itoa(totalImported)+
		`, "skipped": `+strconv.Itoa(totalSkipped)+`}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(b.String()))
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func allowedUploadExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return true
	}
	return false
}

package handler

import (
	"io"
	"log"
	"net/http"

	"skillsense-go/internal/cvparse"
	"skillsense-go/internal/errs"
)

// CVHandler CV文件解析HTTP处理器
type CVHandler struct {
	parser *cvparse.Parser
}

// NewCVHandler 创建处理器
func NewCVHandler(parser *cvparse.Parser) *CVHandler {
	return &CVHandler{parser: parser}
}

// ParseCV 处理CV文件上传并提取纯文本
// POST /api/parse-cv (multipart/form-data, field "file")
func (h *CVHandler) ParseCV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, cvparse.MaxFileSize+1024)

	if err := r.ParseMultipartForm(cvparse.MaxFileSize); err != nil {
		writeError(w, errs.New(errs.InvalidInput, "failed to parse upload: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, errs.New(errs.InvalidInput, "missing file field: %v", err))
		return
	}
	defer file.Close()

	if header.Size > cvparse.MaxFileSize {
		writeError(w, errs.New(errs.InvalidInput, "file too large: %d bytes (max %d)", header.Size, cvparse.MaxFileSize))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, errs.New(errs.InvalidInput, "failed to read upload: %v", err))
		return
	}

	text, err := h.parser.Parse(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		log.Printf("[CV] parse failed for %s: %v", header.Filename, err)
		writeError(w, err)
		return
	}

	log.Printf("[CV] parsed %s: %d chars", header.Filename, len(text))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"text":     text,
		"fileName": header.Filename,
		"fileSize": header.Size,
	})
}

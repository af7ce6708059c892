package cvparse

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// PlainTextExtractor 纯文本直接解码
type PlainTextExtractor struct{}

func (e *PlainTextExtractor) Extract(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}
	return string(data), nil
}

// PDFExtractor PDF文本提取，pdf库为主，字节级启发式兜底
type PDFExtractor struct{}

func (e *PDFExtractor) Extract(data []byte) (string, error) {
	text, err := extractPDFPages(data)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	// pdf库失败时退回到text-show算子的正则提取
	if fallback := extractPDFHeuristic(data); strings.TrimSpace(fallback) != "" {
		return fallback, nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	return "", fmt.Errorf("pdf contains no extractable text")
}

func extractPDFPages(data []byte) (text string, err error) {
	// pdf库在损坏文件上可能panic
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}

	var pages []string
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(pageText) != "" {
			pages = append(pages, strings.TrimSpace(pageText))
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

// textShowRe 匹配PDF的 (text) Tj / TJ 文本算子
var textShowRe = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*T[jJ]`)

var pdfEscapes = strings.NewReplacer(
	`\(`, "(",
	`\)`, ")",
	`\\`, `\`,
	`\n`, "\n",
	`\r`, "",
	`\t`, " ",
)

func extractPDFHeuristic(data []byte) string {
	raw := string(data)
	matches := textShowRe.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return ""
	}

	var b strings.Builder
	for _, m := range matches {
		fragment := pdfEscapes.Replace(m[1])
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		b.WriteString(fragment)
		b.WriteString(" ")
	}
	return b.String()
}

// DocxExtractor Word文档提取
type DocxExtractor struct{}

func (e *DocxExtractor) Extract(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	return stripDocxTags(content), nil
}

var docxTagRe = regexp.MustCompile(`<[^>]+>`)

// stripDocxTags 去掉document.xml里的标签，段落转为换行
func stripDocxTags(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	return docxTagRe.ReplaceAllString(content, "")
}

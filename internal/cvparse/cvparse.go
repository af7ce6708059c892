package cvparse

import (
	"fmt"
	"regexp"
	"strings"

	"skillsense-go/internal/errs"
)

// MaxFileSize 上传文件大小上限（由调用方在入口处检查）
const MaxFileSize = 10 << 20 // 10 MB

// Extractor 按文件类型提取纯文本
type Extractor interface {
	Extract(data []byte) (string, error)
}

// Parser CV解析器，按MIME类型分发到对应的Extractor
type Parser struct {
	byMIME map[string]Extractor
	byExt  map[string]Extractor
}

// NewParser 创建解析器并注册内置的提取器
func NewParser() *Parser {
	p := &Parser{
		byMIME: make(map[string]Extractor),
		byExt:  make(map[string]Extractor),
	}

	plain := &PlainTextExtractor{}
	pdf := &PDFExtractor{}
	word := &DocxExtractor{}

	p.Register("text/plain", ".txt", plain)
	p.Register("application/pdf", ".pdf", pdf)
	p.Register("application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx", word)

	return p
}

// Register 注册新的文件类型，新格式通过注册扩展而不是在函数里加分支
func (p *Parser) Register(mimeType, ext string, e Extractor) {
	if mimeType != "" {
		p.byMIME[mimeType] = e
	}
	if ext != "" {
		p.byExt[strings.ToLower(ext)] = e
	}
}

// Parse 提取上传文件的纯文本并规范化空白
func (p *Parser) Parse(filename, mimeType string, data []byte) (string, error) {
	extractor := p.lookup(filename, mimeType)
	if extractor == nil {
		return "", errs.New(errs.ParseError,
			"unsupported file type %q for %s (%d bytes), please upload a PDF, DOCX, or text file",
			mimeType, filename, len(data))
	}

	text, err := extractor.Extract(data)
	if err != nil {
		return "", errs.Wrap(errs.ParseError,
			fmt.Errorf("failed to extract text from %s (%d bytes): %w", filename, len(data), err))
	}

	text = Normalize(text)
	if text == "" {
		return "", errs.New(errs.ParseError,
			"no text could be extracted from %s (%d bytes)", filename, len(data))
	}

	return text, nil
}

func (p *Parser) lookup(filename, mimeType string) Extractor {
	// MIME头可能带参数，如 "text/plain; charset=utf-8"
	if mimeType != "" {
		base := strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])
		if e, ok := p.byMIME[base]; ok {
			return e
		}
	}
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		if e, ok := p.byExt[strings.ToLower(filename[idx:])]; ok {
			return e
		}
	}
	return nil
}

var (
	spaceRunRe = regexp.MustCompile(`[ \t]+`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// Normalize 压缩连续空白和多余空行
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

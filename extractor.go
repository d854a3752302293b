package ocrgrid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/supagonava/ocrgrid/azure"
	"github.com/supagonava/ocrgrid/docai"
	"github.com/supagonava/ocrgrid/format"
	"github.com/supagonava/ocrgrid/hocr"
	"github.com/supagonava/ocrgrid/model"
	"github.com/supagonava/ocrgrid/ocr"
	"github.com/supagonava/ocrgrid/tables"
	"github.com/supagonava/ocrgrid/textract"
)

// Extractor provides a fluent interface for extracting documents from OCR
// provider output. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	data     []byte
	loaded   bool

	// Configuration
	options ExtractOptions
	logger  logrus.FieldLogger

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Extractor. The payload is shared; it is never
// modified.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		data:     e.data,
		loaded:   e.loaded,
		options:  e.options.clone(),
		logger:   e.logger,
		err:      e.err,
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Format sets the provider format instead of detecting it.
//
// Example:
//
//	doc, _, err := ocrgrid.Open("result.json").Format(format.DocumentAI).Document()
func (e *Extractor) Format(f format.Format) *Extractor {
	newExt := e.clone()
	newExt.options.format = f
	return newExt
}

// PageSize sets the pixel size of the analysed page. Textract needs it;
// Azure and Document AI use it to rescale their own page geometry.
func (e *Extractor) PageSize(width, height int) *Extractor {
	newExt := e.clone()
	newExt.options.page = model.PageSize{Width: width, Height: height}
	return newExt
}

// PageSizeFromImage reads the page size from the header of the image that
// was sent to the provider.
//
// Example:
//
//	doc, _, err := ocrgrid.Open("textract.json").PageSizeFromImage("scan.png").Document()
func (e *Extractor) PageSizeFromImage(path string) *Extractor {
	newExt := e.clone()
	size, _, err := ocr.ImageSizeFromFile(path)
	if err != nil {
		if newExt.err == nil {
			newExt.err = fmt.Errorf("failed to read page size: %w", err)
		}
		return newExt
	}
	newExt.options.page = size
	return newExt
}

// VerticalTolerance sets how far, in pixels, a word's bottom may sit below
// the first word of a row and still join it.
func (e *Extractor) VerticalTolerance(pixels int) *Extractor {
	newExt := e.clone()
	newExt.options.line.VerticalTolerance = pixels
	return newExt
}

// HorizontalGap sets the largest gap, in pixels, between two words of a row
// that are joined without a space.
func (e *Extractor) HorizontalGap(pixels int) *Extractor {
	newExt := e.clone()
	newExt.options.line.HorizontalGap = pixels
	return newExt
}

// EmptyCellText sets the text written to cells that contain no words.
func (e *Extractor) EmptyCellText(s string) *Extractor {
	newExt := e.clone()
	newExt.options.emptyCellText = s
	return newExt
}

// SkipTables configures the extractor to leave tables out.
func (e *Extractor) SkipTables() *Extractor {
	newExt := e.clone()
	newExt.options.skipTables = true
	return newExt
}

// UseCellContent takes Azure and Document AI cell text from the provider
// instead of from the words inside each cell.
func (e *Extractor) UseCellContent() *Extractor {
	newExt := e.clone()
	newExt.options.useCellContent = true
	return newExt
}

// Language sets the Tesseract language(s) used for images, e.g. "eng+tha".
func (e *Extractor) Language(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.language = lang
	return newExt
}

// Logger sets the logger used for extraction events. By default nothing is
// logged.
//
// Example:
//
//	log := logrus.New()
//	log.SetLevel(logrus.DebugLevel)
//	doc, _, err := ocrgrid.Open("page.hocr").Logger(log).Document()
func (e *Extractor) Logger(l logrus.FieldLogger) *Extractor {
	newExt := e.clone()
	if l == nil {
		l = discardLogger()
	}
	newExt.logger = l
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document extracts the full document: word annotations, formatted text and
// tables. Warnings indicate non-fatal issues where extraction succeeded but
// some blocks were skipped.
//
// Example:
//
//	doc, warnings, err := ocrgrid.Open("textract.json").PageSize(1240, 1754).Document()
//	if err != nil {
//	    log.Fatal(err)
//	}
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	data, err := e.payload()
	if err != nil {
		return nil, nil, err
	}

	f, err := e.resolveFormat(data)
	if err != nil {
		return nil, nil, err
	}

	config, err := e.options.tablesConfig()
	if err != nil {
		return nil, nil, err
	}

	logger := e.logger.WithFields(logrus.Fields{
		"format": f.String(),
		"file":   e.filename,
	})

	doc, warnings, err := e.extract(f, data, config)
	if err != nil {
		logger.WithError(err).Error("extraction failed")
		return nil, warnings, err
	}

	for _, w := range warnings {
		logger.WithFields(logrus.Fields{
			"code":  w.Code,
			"block": w.BlockID,
		}).Warn(w.Message)
	}
	logger.WithFields(logrus.Fields{
		"words":    doc.WordCount(),
		"tables":   len(doc.Tables),
		"warnings": len(warnings),
	}).Debug("document extracted")

	return doc, warnings, nil
}

// Text extracts the formatted page text, one line per row in reading order.
//
// Example:
//
//	text, warnings, err := ocrgrid.Open("page.hocr").Text()
func (e *Extractor) Text() (string, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return "", warnings, err
	}
	return doc.FormatText, warnings, nil
}

// Tables extracts only the tables.
//
// Example:
//
//	tables, _, err := ocrgrid.Open("layout.json").Tables()
//	for _, t := range tables {
//	    fmt.Println(t.ToMarkdown())
//	}
func (e *Extractor) Tables() ([]*model.Table, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}
	return doc.Tables, warnings, nil
}

// JSON extracts the document and encodes it with the keys text_annotations,
// format_text and tables.
func (e *Extractor) JSON() ([]byte, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, warnings, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, warnings, nil
}

// DetectedFormat returns the provider format that Document would use
func (e *Extractor) DetectedFormat() (format.Format, error) {
	if e.err != nil {
		return format.Unknown, e.err
	}
	data, err := e.payload()
	if err != nil {
		return format.Unknown, err
	}
	return e.resolveFormat(data)
}

// ============================================================================
// Internals
// ============================================================================

// payload returns the input bytes, reading the file if needed
func (e *Extractor) payload() ([]byte, error) {
	if e.loaded {
		return e.data, nil
	}
	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	data, err := os.ReadFile(e.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", e.filename, err)
	}
	return data, nil
}

// resolveFormat prefers the configured format, then the file extension,
// then the payload content
func (e *Extractor) resolveFormat(data []byte) (format.Format, error) {
	if e.options.format != format.Unknown {
		return e.options.format, nil
	}
	if e.filename != "" {
		if f := format.Detect(e.filename); f != format.Unknown {
			return f, nil
		}
	}
	f, err := format.DetectFromBytes(data)
	if err != nil {
		return format.Unknown, fmt.Errorf("unsupported payload %s: %w", e.filename, err)
	}
	return f, nil
}

func (e *Extractor) extract(f format.Format, data []byte, config tables.Config) (*model.Document, []Warning, error) {
	opts := e.options

	switch f {
	case format.Textract:
		resp, err := textract.DecodeBytes(data)
		if err != nil {
			return nil, nil, err
		}
		return textract.Analyze(resp, textract.Options{Page: opts.page, Tables: &config, SkipTables: opts.skipTables})

	case format.AzureLayout:
		result, err := azure.DecodeLayout(bytes.NewReader(data))
		if err != nil {
			return nil, nil, err
		}
		return azure.AnalyzeLayout(result, azure.Options{
			Page:           opts.page,
			Tables:         &config,
			SkipTables:     opts.skipTables,
			UseCellContent: opts.useCellContent,
		})

	case format.AzureRead:
		resp, err := azure.DecodeRead(bytes.NewReader(data))
		if err != nil {
			return nil, nil, err
		}
		return azure.AnalyzeRead(resp)

	case format.DocumentAI:
		pb, err := docai.DecodeBytes(data)
		if err != nil {
			return nil, nil, err
		}
		return docai.Analyze(pb, docai.Options{
			Page:           opts.page,
			Tables:         &config,
			SkipTables:     opts.skipTables,
			UseCellContent: opts.useCellContent,
		})

	case format.HOCR:
		parsed, err := hocr.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, nil, err
		}
		doc, warnings := parsed.ToDocument()
		return doc, warnings, nil

	case format.Image:
		return e.recognize(data)

	default:
		return nil, nil, fmt.Errorf("unsupported format: %s", f)
	}
}

// recognize runs local Tesseract over an image
func (e *Extractor) recognize(data []byte) (*model.Document, []Warning, error) {
	client, err := ocr.New()
	if err != nil {
		return nil, nil, err
	}
	defer client.Close()

	if e.options.language != "" {
		if err := client.SetLanguage(e.options.language); err != nil {
			return nil, nil, fmt.Errorf("failed to set language: %w", err)
		}
	}
	return client.Document(data)
}

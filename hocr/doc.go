// Package hocr reads hOCR, the HTML format Tesseract and other engines use
// for positioned OCR output.
//
// Only the parts that carry geometry are kept: ocr_page elements, lines
// (ocr_line, ocr_header, ocr_footer, ocr_caption, ocr_textfloat) and
// ocrx_word elements with their bbox and x_wconf title properties.
//
//	parsed, err := hocr.Parse(file)
//	doc, warnings := parsed.ToDocument()
package hocr

// Package textract converts AWS Textract responses into documents.
//
// Both DetectDocumentText and AnalyzeDocument (with the TABLES feature)
// bodies are accepted:
//
//	resp, err := textract.Decode(file)
//	doc, warnings, err := textract.Analyze(resp, textract.DefaultOptions(model.PageSize{Width: 1240, Height: 1754}))
//
// Textract geometry is fractional, so the pixel size of the analysed image
// must be supplied. Raw blocks are converted into a closed set of typed
// blocks ([PageBlock], [LineBlock], [WordBlock], [TableBlock], [CellBlock],
// [MergedCellBlock]); other block types such as KEY_VALUE_SET are reported as
// warnings and otherwise ignored.
package textract

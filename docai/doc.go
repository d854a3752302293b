// Package docai converts Google Document AI documents into documents.
//
// A processed document is usually stored as the JSON form of
// documentaipb.Document and read back with [Decode]:
//
//	pb, err := docai.Decode(file)
//	doc, warnings, err := docai.Analyze(pb, docai.Options{})
//
// Tokens become word annotations. Text is resolved through text anchors,
// which index the document text by code point. Geometry prefers normalized
// vertices and falls back to pixel vertices scaled by the page dimension.
package docai

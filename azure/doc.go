// Package azure converts Azure AI results into documents.
//
// Two services are supported. Document Intelligence (prebuilt-read and
// prebuilt-layout) results are read with [DecodeLayout] and converted with
// [AnalyzeLayout]:
//
//	result, err := azure.DecodeLayout(file)
//	doc, warnings, err := azure.AnalyzeLayout(result, azure.Options{})
//
// Vision image analysis read results are read with [DecodeRead] and
// converted with [AnalyzeRead].
//
// Document Intelligence reports geometry in page units. Pixel pages keep
// their reported size unless [Options.Page] asks for another one; pages in
// inches need [Options.Page]. Table indices are shifted from 0-based to
// 1-based.
package azure

package azure

import "time"

// DocumentResult is the analyze operation body returned by Document
// Intelligence once the operation has finished
type DocumentResult struct {
	Status              string        `json:"status"`
	CreatedDateTime     time.Time     `json:"createdDateTime"`
	LastUpdatedDateTime time.Time     `json:"lastUpdatedDateTime"`
	AnalyzeResult       AnalyzeResult `json:"analyzeResult"`
}

// AnalyzeResult is the analysis part of a Document Intelligence response
type AnalyzeResult struct {
	APIVersion      string      `json:"apiVersion"`
	ModelID         string      `json:"modelId"`
	StringIndexType string      `json:"stringIndexType"`
	Content         string      `json:"content"`
	Pages           []Page      `json:"pages"`
	Paragraphs      []Paragraph `json:"paragraphs"`
	Tables          []Table     `json:"tables"`
}

// Page is a single analysed page. Polygons on the page are in Unit.
type Page struct {
	PageNumber int     `json:"pageNumber"`
	Angle      float64 `json:"angle"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Unit       string  `json:"unit"`
	Words      []Word  `json:"words"`
	Lines      []Line  `json:"lines"`
	Spans      []Span  `json:"spans"`
}

// Page units
const (
	UnitPixel = "pixel"
	UnitInch  = "inch"
)

// Word is a single word with its polygon
type Word struct {
	Content    string    `json:"content"`
	Polygon    []float64 `json:"polygon"`
	Confidence float64   `json:"confidence"`
	Span       Span      `json:"span"`
}

// Line is a line of text
type Line struct {
	Content string    `json:"content"`
	Polygon []float64 `json:"polygon"`
	Spans   []Span    `json:"spans"`
}

// Span is an offset and length into AnalyzeResult.Content
type Span struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// Paragraph is a block of text with its location
type Paragraph struct {
	Role            string           `json:"role,omitempty"`
	Content         string           `json:"content"`
	Spans           []Span           `json:"spans"`
	BoundingRegions []BoundingRegion `json:"boundingRegions"`
}

// BoundingRegion is the location of content on a page
type BoundingRegion struct {
	PageNumber int       `json:"pageNumber"`
	Polygon    []float64 `json:"polygon"`
}

// Table is a detected table. Indices are 0-based.
type Table struct {
	RowCount        int              `json:"rowCount"`
	ColumnCount     int              `json:"columnCount"`
	Cells           []Cell           `json:"cells"`
	BoundingRegions []BoundingRegion `json:"boundingRegions"`
	Spans           []Span           `json:"spans"`
}

// Cell is a table cell. RowSpan and ColumnSpan are omitted by the service
// when they equal 1.
type Cell struct {
	Kind            string           `json:"kind,omitempty"`
	RowIndex        int              `json:"rowIndex"`
	ColumnIndex     int              `json:"columnIndex"`
	RowSpan         int              `json:"rowSpan,omitempty"`
	ColumnSpan      int              `json:"columnSpan,omitempty"`
	Content         string           `json:"content"`
	BoundingRegions []BoundingRegion `json:"boundingRegions"`
	Spans           []Span           `json:"spans"`
}

// ReadResponse is the body returned by the Vision 4.0 image analysis call
// with the read feature
type ReadResponse struct {
	ModelVersion string        `json:"modelVersion"`
	Metadata     ImageMetadata `json:"metadata"`
	ReadResult   *ReadResult   `json:"readResult"`
}

// ImageMetadata holds the analysed image size in pixels
type ImageMetadata struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ReadResult groups recognised lines into blocks
type ReadResult struct {
	Blocks []ReadBlock `json:"blocks"`
}

// ReadBlock is a group of lines
type ReadBlock struct {
	Lines []ReadLine `json:"lines"`
}

// ReadLine is a recognised line of text
type ReadLine struct {
	Text            string      `json:"text"`
	BoundingPolygon []ReadPoint `json:"boundingPolygon"`
	Words           []ReadWord  `json:"words"`
}

// ReadWord is a recognised word
type ReadWord struct {
	Text            string      `json:"text"`
	BoundingPolygon []ReadPoint `json:"boundingPolygon"`
	Confidence      float64     `json:"confidence"`
}

// ReadPoint is a pixel vertex
type ReadPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

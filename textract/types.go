package textract

// Response is the body returned by DetectDocumentText, AnalyzeDocument and
// the Get*Analysis calls
type Response struct {
	DocumentMetadata DocumentMetadata `json:"DocumentMetadata"`
	Blocks           []RawBlock       `json:"Blocks"`
	JobStatus        string           `json:"JobStatus,omitempty"`
	NextToken        string           `json:"NextToken,omitempty"`
	ModelVersion     string           `json:"DetectDocumentTextModelVersion,omitempty"`
	AnalyzeVersion   string           `json:"AnalyzeDocumentModelVersion,omitempty"`
}

// DocumentMetadata describes the analysed document
type DocumentMetadata struct {
	Pages int `json:"Pages"`
}

// RawBlock is a block exactly as Textract serialises it. Use
// Response.TypedBlocks for the typed form.
type RawBlock struct {
	BlockType     string         `json:"BlockType"`
	ID            string         `json:"Id"`
	Text          *string        `json:"Text,omitempty"`
	TextType      string         `json:"TextType,omitempty"`
	Confidence    *float64       `json:"Confidence,omitempty"`
	Geometry      *Geometry      `json:"Geometry,omitempty"`
	Relationships []Relationship `json:"Relationships,omitempty"`
	RowIndex      int            `json:"RowIndex,omitempty"`
	ColumnIndex   int            `json:"ColumnIndex,omitempty"`
	RowSpan       int            `json:"RowSpan,omitempty"`
	ColumnSpan    int            `json:"ColumnSpan,omitempty"`
	EntityTypes   []string       `json:"EntityTypes,omitempty"`
	Page          int            `json:"Page,omitempty"`
}

// Geometry holds both geometry conventions Textract emits, in unit-square
// space
type Geometry struct {
	BoundingBox *BoundingBox `json:"BoundingBox,omitempty"`
	Polygon     []Point      `json:"Polygon,omitempty"`
}

// BoundingBox is a fractional rectangle
type BoundingBox struct {
	Width  float64 `json:"Width"`
	Height float64 `json:"Height"`
	Left   float64 `json:"Left"`
	Top    float64 `json:"Top"`
}

// Point is a fractional polygon vertex
type Point struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
}

// Relationship links a block to other blocks by id
type Relationship struct {
	Type string   `json:"Type"`
	Ids  []string `json:"Ids"`
}

// Block type names
const (
	TypePage       = "PAGE"
	TypeLine       = "LINE"
	TypeWord       = "WORD"
	TypeTable      = "TABLE"
	TypeCell       = "CELL"
	TypeMergedCell = "MERGED_CELL"
)

// Relationship type names
const (
	RelationChild      = "CHILD"
	RelationMergedCell = "MERGED_CELL"
)

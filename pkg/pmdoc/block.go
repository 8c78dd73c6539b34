// pkg/pmdoc/block.go
package pmdoc

import (
	"github.com/rchotikawat/BTS-MaintenanceApp/pkg/checklist"
)

// BlockType discriminates the layout block union.
type BlockType string

const (
	BlockHeaderBanner     BlockType = "HEADER_BANNER"
	BlockInfoFieldGrid    BlockType = "INFO_FIELD_GRID"
	BlockCheckboxRow      BlockType = "CHECKBOX_ROW"
	BlockSectionTitle     BlockType = "SECTION_TITLE"
	BlockChecklistTable   BlockType = "MULTI_COLUMN_CHECKLIST_TABLE"
	BlockMeasurementGrid  BlockType = "MEASUREMENT_GRID"
	BlockLedStatusGrid    BlockType = "LED_STATUS_GRID"
	BlockSpringForceTable BlockType = "SPRING_FORCE_TABLE"
	BlockNotes            BlockType = "NOTES"
	BlockPhotoArea        BlockType = "PHOTO_AREA"
	BlockSignature        BlockType = "SIGNATURE"
	BlockFooter           BlockType = "FOOTER"
	BlockPlaceholder      BlockType = "PLACEHOLDER"
)

// Glyph is the printable mark for a check result. The mapping is shared
// by every layout.
type Glyph string

const (
	GlyphCheck Glyph = "CHECK"
	GlyphCross Glyph = "CROSS"
	GlyphDash  Glyph = "DASH"
	GlyphBlank Glyph = ""
)

// ResultGlyph maps a check result to its printed mark.
func ResultGlyph(r checklist.CheckResult) Glyph {
	switch r {
	case checklist.ResultPass:
		return GlyphCheck
	case checklist.ResultFail:
		return GlyphCross
	case checklist.ResultNA:
		return GlyphDash
	}
	return GlyphBlank
}

// Block is one typed element on a page. Exactly one of the payload
// pointers matching Type is set.
type Block struct {
	Type             BlockType         `json:"type"`
	HeaderBanner     *HeaderBanner     `json:"headerBanner,omitempty"`
	InfoFieldGrid    *InfoFieldGrid    `json:"infoFieldGrid,omitempty"`
	CheckboxRow      *CheckboxRow      `json:"checkboxRow,omitempty"`
	SectionTitle     *SectionTitle     `json:"sectionTitle,omitempty"`
	ChecklistTable   *ChecklistTable   `json:"checklistTable,omitempty"`
	MeasurementGrid  *MeasurementGrid  `json:"measurementGrid,omitempty"`
	LedStatusGrid    *LedStatusGrid    `json:"ledStatusGrid,omitempty"`
	SpringForceTable *SpringForceTable `json:"springForceTable,omitempty"`
	Notes            *Notes            `json:"notes,omitempty"`
	PhotoArea        *PhotoArea        `json:"photoArea,omitempty"`
	Signature        *Signature        `json:"signature,omitempty"`
	Footer           *Footer           `json:"footer,omitempty"`
	Placeholder      *Placeholder      `json:"placeholder,omitempty"`
}

type HeaderBanner struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	PageNo     int    `json:"pageNo"`
	TotalPages int    `json:"totalPages"`
}

type InfoField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// InfoFieldGrid prints labelled underlined values, several per row.
type InfoFieldGrid struct {
	Rows [][]InfoField `json:"rows"`
}

type CheckboxItem struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

type CheckboxRow struct {
	Caption string         `json:"caption,omitempty"`
	Items   []CheckboxItem `json:"items"`
}

type SectionTitle struct {
	Text string `json:"text"`
}

// TableRow is one printed checklist line. Sub rows carry explanatory
// text or LED expansions; sub rows without Cells render empty device
// columns.
type TableRow struct {
	No          string  `json:"no"`
	Description string  `json:"description"`
	Sub         bool    `json:"sub,omitempty"`
	Cells       []Glyph `json:"cells,omitempty"`
	Remark      string  `json:"remark,omitempty"`
}

// ChecklistTable is the multi-column table: one device per column, the
// widths already resolved against the fixed page width.
type ChecklistTable struct {
	GroupHeader   string     `json:"groupHeader,omitempty"`
	DeviceHeaders []string   `json:"deviceHeaders"`
	NoWidth       int        `json:"noWidth"`
	DescWidth     int        `json:"descWidth"`
	DeviceWidth   int        `json:"deviceWidth"`
	RemarkWidth   int        `json:"remarkWidth"`
	Overflow      bool       `json:"overflow,omitempty"`
	Rows          []TableRow `json:"rows"`
}

type GridGroup struct {
	Label string `json:"label"`
	Span  int    `json:"span"`
}

type GridRow struct {
	Label  string   `json:"label"`
	Sub    string   `json:"sub,omitempty"`
	Values []string `json:"values"`
}

// MeasurementGrid is a labelled numeric table (force, electrical).
type MeasurementGrid struct {
	Title   string      `json:"title"`
	Groups  []GridGroup `json:"groups,omitempty"`
	Columns []string    `json:"columns"`
	Rows    []GridRow   `json:"rows"`
	Remark  string      `json:"remark,omitempty"`
}

type LedState struct {
	Indicator string             `json:"indicator"`
	Color     checklist.LedColor `json:"color"`
}

type LedPanel struct {
	DeviceCode string     `json:"deviceCode"`
	Leds       []LedState `json:"leds"`
}

type LedLegendEntry struct {
	Color checklist.LedColor `json:"color"`
	Label string             `json:"label"`
}

type LedStatusGrid struct {
	Title  string           `json:"title"`
	Panels []LedPanel       `json:"panels"`
	Legend []LedLegendEntry `json:"legend"`
}

type SpringForceCell struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type SpringForceRow struct {
	ContactNo int               `json:"contactNo"`
	Cells     []SpringForceCell `json:"cells"`
}

// SpringForceHalf is one of the two side-by-side 10-row sub-tables.
type SpringForceHalf struct {
	Title string           `json:"title"`
	Rows  []SpringForceRow `json:"rows"`
}

type SpringForceTable struct {
	Title       string            `json:"title"`
	DeviceCount int               `json:"deviceCount"`
	Halves      []SpringForceHalf `json:"halves"`
	Remark      string            `json:"remark,omitempty"`
}

type Notes struct {
	Title string `json:"title"`
	Lines int    `json:"lines"`
}

type PhotoArea struct {
	Title       string `json:"title"`
	Placeholder string `json:"placeholder"`
}

type SignatureLine struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

type Signature struct {
	Lines []SignatureLine `json:"lines"`
}

type Footer struct {
	FormNumber    string `json:"formNumber"`
	EffectiveDate string `json:"effectiveDate"`
}

type Placeholder struct {
	Message string `json:"message"`
}

type Page struct {
	Number   int     `json:"number"`
	Blocks   []Block `json:"blocks"`
	Overflow bool    `json:"overflow,omitempty"`
}

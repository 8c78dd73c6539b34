// pkg/pmdoc/builder.go
package pmdoc

import (
	"strconv"
	"time"

	"github.com/rchotikawat/BTS-MaintenanceApp/pkg/checklist"
)

// ReportInfo carries the envelope display fields a layout needs. The
// caller supplies GeneratedAt so repeated builds of the same report are
// byte-identical.
type ReportInfo struct {
	WorkOrderNo      string
	WorkOrderNo2     string
	ReportDate       time.Time
	ReportTimeStart  string
	ReportTimeEnd    string
	StationName      string
	LocationArea     string
	LeaderName       string
	ApostleName      string
	CoordinatePerson string
	TprNo            string
	TeamNameList     string
	WorkDescription  string
	GeneratedAt      time.Time
}

// Document is the fully resolved print model: fixed pagination, every
// block positioned, no layout decisions left for the renderer.
type Document struct {
	TemplateCode  string    `json:"templateCode"`
	TemplateName  string    `json:"templateName"`
	Title         string    `json:"title"`
	FormNumber    string    `json:"formNumber"`
	FormRevision  string    `json:"formRevision"`
	EffectiveDate string    `json:"effectiveDate"`
	GeneratedAt   time.Time `json:"generatedAt"`
	Pages         []Page    `json:"pages"`
}

const documentTitle = "MAINTENANCE REPORT"

// Build lays out one report. Unknown or mismatched template codes
// produce a single notice page rather than an error so export endpoints
// always return a document.
func Build(templateCode string, info ReportInfo, payload checklist.Payload) *Document {
	doc := &Document{
		TemplateCode: templateCode,
		Title:        documentTitle,
		GeneratedAt:  info.GeneratedAt,
	}
	if t, err := checklist.Lookup(templateCode); err == nil {
		doc.TemplateName = t.Name
		doc.FormNumber = t.FormNumber
		doc.FormRevision = t.FormRevision
		doc.EffectiveDate = t.EffectiveDate
	}

	switch p := payload.(type) {
	case *checklist.PointMachinePayload:
		doc.Pages = buildPointMachinePages(info, p)
	case *checklist.MoxaTapPayload:
		doc.Pages = buildMoxaTapPages(info, p)
	case *checklist.EmpPayload:
		doc.Pages = buildEmpPages(info, p)
	default:
		doc.Pages = []Page{{
			Number: 1,
			Blocks: []Block{
				headerBlock(documentTitle, templateCode, 1, 1),
				{Type: BlockPlaceholder, Placeholder: &Placeholder{
					Message: "No document layout is registered for template " + templateCode + ".",
				}},
			},
		}}
	}
	return doc
}

func headerBlock(title, subtitle string, pageNo, totalPages int) Block {
	return Block{Type: BlockHeaderBanner, HeaderBanner: &HeaderBanner{
		Title:      title,
		Subtitle:   subtitle,
		PageNo:     pageNo,
		TotalPages: totalPages,
	}}
}

// infoGridBlock prints the shared report header fields in the fixed
// three-row arrangement every form uses.
func infoGridBlock(info ReportInfo) Block {
	date := ""
	if !info.ReportDate.IsZero() {
		date = info.ReportDate.Format("02/01/2006")
	}
	timeRange := info.ReportTimeStart
	if info.ReportTimeEnd != "" {
		timeRange += " - " + info.ReportTimeEnd
	}
	workOrder := info.WorkOrderNo
	if info.WorkOrderNo2 != "" {
		workOrder += " / " + info.WorkOrderNo2
	}
	return Block{Type: BlockInfoFieldGrid, InfoFieldGrid: &InfoFieldGrid{
		Rows: [][]InfoField{
			{
				{Label: "LEADER WAYSIDE", Value: info.LeaderName},
				{Label: "DATE", Value: date},
				{Label: "TIME", Value: timeRange},
			},
			{
				{Label: "COORDINATE PERSON", Value: info.CoordinatePerson},
				{Label: "STATION", Value: info.StationName},
				{Label: "LOCATION AREA", Value: info.LocationArea},
			},
			{
				{Label: "APOSTLE", Value: info.ApostleName},
				{Label: "TPR NO.", Value: info.TprNo},
			},
			{
				{Label: "TEAM NAME LIST", Value: info.TeamNameList},
			},
			{
				{Label: "WORK ORDER NO.", Value: workOrder},
				{Label: "WORK DESCRIPTION", Value: info.WorkDescription},
			},
		},
	}}
}

func signatureBlock(leaderName string) Block {
	return Block{Type: BlockSignature, Signature: &Signature{
		Lines: []SignatureLine{
			{Role: "Leader", Name: leaderName},
			{Role: "Supervisor", Name: ""},
		},
	}}
}

func footerBlock(templateCode string) Block {
	f := &Footer{}
	if t, err := checklist.Lookup(templateCode); err == nil {
		f.FormNumber = t.FormNumber + " " + t.FormRevision
		f.EffectiveDate = "Effective Date: " + t.EffectiveDate
	}
	return Block{Type: BlockFooter, Footer: f}
}

func sectionBlock(text string) Block {
	return Block{Type: BlockSectionTitle, SectionTitle: &SectionTitle{Text: text}}
}

func notesBlock(lines int) Block {
	return Block{Type: BlockNotes, Notes: &Notes{Title: "Notes", Lines: lines}}
}

func photoBlock() Block {
	return Block{Type: BlockPhotoArea, PhotoArea: &PhotoArea{
		Title:       "Photographic Record",
		Placeholder: "Attach before / after photographs here.",
	}}
}

func placeholderBlock(msg string) Block {
	return Block{Type: BlockPlaceholder, Placeholder: &Placeholder{Message: msg}}
}

func fmtValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// pageOverflow lifts any table overflow up to the page.
func pageOverflow(blocks []Block) bool {
	for _, b := range blocks {
		if b.ChecklistTable != nil && b.ChecklistTable.Overflow {
			return true
		}
	}
	return false
}

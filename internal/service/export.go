package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/C-Senanayake/CVision/internal/domain"
)

// exportHeaders defines the column layout of the CV export sheet.
var exportHeaders = []string{
	"Candidate Name",
	"Email",
	"Phone",
	"Location",
	"LinkedIn",
	"GitHub",
	"Job Name",
	"Final Mark",
	"Selected for Interview",
	"University",
	"Degree",
	"Mail Status",
	"Interview Scheduled",
	"Interview Name",
	"Interview Location",
	"Interview Attendees",
	"Interview Start Datetime",
	"Interview End Datetime",
	"Created Date",
	"Updated Date",
}

// ExportService renders scored CVs for one job into an Excel workbook.
type ExportService struct {
	docs DocumentStore
	jobs JobStore
}

// NewExportService creates a new export service.
// Parameters:
//   - docs: document record store.
//   - jobs: job posting store.
//
// Returns:
//   - *ExportService: initialized service.
func NewExportService(docs DocumentStore, jobs JobStore) *ExportService {
	return &ExportService{docs: docs, jobs: jobs}
}

// ExportJob builds the workbook for every live document of a job.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobID: job posting ID.
//
// Returns:
//   - []byte: serialized .xlsx workbook.
//   - string: suggested download filename.
//   - error: non-nil if the job or its documents cannot be loaded or the
//     workbook cannot be built.
func (s *ExportService) ExportJob(ctx context.Context, jobID string) ([]byte, string, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, "", err
	}

	docs, err := s.docs.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list documents for job %s: %w", jobID, err)
	}

	f := excelize.NewFile()
	const sheet = "CV Export"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create cell style: %w", err)
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)

	widths := make([]int, len(exportHeaders))
	for i, h := range exportHeaders {
		widths[i] = len(h)
	}

	for i := range docs {
		row := exportRow(&docs[i])
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
			if l := len(fmt.Sprint(value)); l > widths[col] {
				widths[col] = l
			}
		}
	}
	if len(docs) > 0 {
		f.SetCellStyle(sheet, "A2", fmt.Sprintf("%s%d", lastCol, len(docs)+1), cellStyle)
	}

	for col, width := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		w := width + 2
		if w > 60 {
			w = 60
		}
		f.SetColWidth(sheet, name, name, float64(w))
	}
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	filename := fmt.Sprintf("cv_export_%s_%s.xlsx",
		strings.ReplaceAll(job.JobName, " ", "_"),
		time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// exportRow flattens one document into the sheet's column order.
func exportRow(doc *domain.Document) []interface{} {
	info := doc.ResumeContent.PersonalInfo

	var university, degree string
	if len(doc.ResumeContent.Education) > 0 {
		university = doc.ResumeContent.Education[0].Institution
		degree = doc.ResumeContent.Education[0].Degree
	}

	interviewScheduled := "No"
	var interviewName, interviewLocation, interviewAttendees, interviewStart, interviewEnd string
	if doc.Interview != nil {
		interviewScheduled = "Yes"
		interviewName = doc.Interview.Name
		interviewLocation = doc.Interview.Location
		interviewAttendees = strings.Join(doc.Interview.Attendees, ", ")
		interviewStart = doc.Interview.StartDatetime
		interviewEnd = doc.Interview.EndDatetime
	}

	selected := "No"
	if doc.Selected {
		selected = "Yes"
	}

	return []interface{}{
		doc.CandidateName,
		info.Email,
		info.Phone,
		info.Address,
		info.LinkedIn,
		info.GitHub,
		doc.JobName,
		doc.FinalMark,
		selected,
		university,
		degree,
		doc.MailStatus,
		interviewScheduled,
		interviewName,
		interviewLocation,
		interviewAttendees,
		interviewStart,
		interviewEnd,
		doc.CreatedAt.Format("2006-01-02 15:04:05"),
		doc.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1},
		{Type: "right", Style: 1},
		{Type: "top", Style: 1},
		{Type: "bottom", Style: 1},
	}
}

package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

// exportColumns is the fixed column set for application exports
var exportColumns = []string{
	"CANDIDATE ID",
	"STATUS",
	"SCORE",
	"SKILLS MATCHED",
	"SKILLS MISSING",
	"EXPERIENCE (YEARS)",
	"REQUIRED EXPERIENCE",
	"APPLIED AT",
}

// ExportByJobID exports a job's applications ranked by score to XLSX or CSV
// for offline review (recruiter only, must own the job)
func (uc *applicationUsecase) ExportByJobID(ctx context.Context, recruiterID string, jobID int64, format string) ([]byte, string, error) {
	job, err := uc.ownedJob(ctx, recruiterID, jobID)
	if err != nil {
		return nil, "", err
	}

	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID, domain.ApplicationFilter{SortByScore: true})
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	if len(apps) > uc.exportMaxRows {
		apps = apps[:uc.exportMaxRows]
	}

	switch format {
	case "csv":
		return uc.exportCSV(job, apps)
	case "xlsx", "":
		return uc.exportExcel(job, apps)
	default:
		return nil, "", apperror.BadRequest("Unsupported export format: " + format)
	}
}

// exportExcel generates an Excel sheet from application data
func (uc *applicationUsecase) exportExcel(job *domain.Job, apps []domain.Application) ([]byte, string, error) {
	f := excelize.NewFile()
	sheetName := "Applications"
	f.SetSheetName("Sheet1", sheetName)

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, app := range apps {
		for colIdx, value := range exportRow(app) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", apperror.Internal(fmt.Errorf("failed to write Excel file: %w", err))
	}

	filename := fmt.Sprintf("applications_job%d_%s.xlsx", job.ID, time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// exportCSV generates a CSV file from application data
func (uc *applicationUsecase) exportCSV(job *domain.Job, apps []domain.Application) ([]byte, string, error) {
	var buf bytes.Buffer

	buf.WriteString(strings.Join(exportColumns, ",") + "\n")

	for _, app := range apps {
		values := make([]string, 0, len(exportColumns))
		for _, value := range exportRow(app) {
			if strings.ContainsAny(value, ",\"\n") {
				value = "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
			}
			values = append(values, value)
		}
		buf.WriteString(strings.Join(values, ",") + "\n")
	}

	filename := fmt.Sprintf("applications_job%d_%s.csv", job.ID, time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func exportRow(app domain.Application) []string {
	b := app.Breakdown
	return []string{
		app.CandidateID,
		app.Status,
		strconv.Itoa(app.Score),
		strings.Join(b.MatchedSkills, "; "),
		strings.Join(b.UnmatchedSkills, "; "),
		strconv.FormatFloat(b.FoundExperience, 'f', 1, 64),
		fmt.Sprintf("%d-%d", b.RequiredExperience.Min, b.RequiredExperience.Max),
		app.AppliedAt.Format("2006-01-02 15:04"),
	}
}

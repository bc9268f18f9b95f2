package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"talenthub-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

type exportUsecase struct {
	appRepo domain.ApplicationRepository
	jobRepo domain.JobRepository
}

func NewExportUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository) domain.ExportUsecase {
	return &exportUsecase{
		appRepo: appRepo,
		jobRepo: jobRepo,
	}
}

func (u *exportUsecase) ExportApplications(ctx context.Context) ([]byte, string, error) {
	apps, err := u.appRepo.FetchAllWithDetails(ctx)
	if err != nil {
		return nil, "", err
	}

	headers := []string{"CANDIDATE", "EMAIL", "COMPANY", "POSITION", "STATUS", "APPLIED AT"}
	rows := make([][]any, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, []any{
			app.UserName,
			app.UserEmail,
			app.ClientName,
			app.PositionName,
			app.Status,
			app.AppliedAt.Format("2006-01-02 15:04"),
		})
	}

	data, err := writeWorkbook("Applications", headers, rows)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("talenthub_applications_%s.xlsx", time.Now().Format("20060102_150405"))
	return data, filename, nil
}

func (u *exportUsecase) ExportJobs(ctx context.Context) ([]byte, string, error) {
	jobs, err := u.jobRepo.FetchAll(ctx)
	if err != nil {
		return nil, "", err
	}
	counts, err := u.appRepo.CountByJob(ctx)
	if err != nil {
		return nil, "", err
	}

	headers := []string{"CLIENT", "POSITION", "LOCATION", "MIN EXP", "MAX EXP", "TECH STACK", "DOMAIN", "STATUS", "POSITIONS", "APPLICATIONS"}
	rows := make([][]any, 0, len(jobs))
	for _, job := range jobs {
		maxExp := any("")
		if job.ExpMax != nil {
			maxExp = *job.ExpMax
		}
		rows = append(rows, []any{
			job.ClientName,
			job.PositionName,
			job.Location,
			job.ExpMin,
			maxExp,
			strings.Join(job.TechStack, ", "),
			job.Domain,
			job.Status,
			job.NumberOfPositions,
			counts[job.ID],
		})
	}

	data, err := writeWorkbook("Jobs", headers, rows)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("talenthub_jobs_%s.xlsx", time.Now().Format("20060102_150405"))
	return data, filename, nil
}

func writeWorkbook(sheetName string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	// Dark header row with white bold text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1F1F1F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
	"carebridge-backend/pkg/security"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxExportRows   = 10000
)

type exportUsecase struct {
	userRepo    domain.UserRepository
	appRepo     domain.ApplicationRepository
	securityLog *security.SecurityLogger
}

func NewExportUsecase(userRepo domain.UserRepository, appRepo domain.ApplicationRepository, securityLog *security.SecurityLogger) domain.ExportUsecase {
	return &exportUsecase{
		userRepo:    userRepo,
		appRepo:     appRepo,
		securityLog: securityLog,
	}
}

func (u *exportUsecase) ExportUsers(ctx context.Context, filter domain.UserFilter) (*domain.ExportFile, error) {
	var users []domain.User
	filter.PageSize = domain.MaxPageSize
	for filter.Page = 1; len(users) < maxExportRows; filter.Page++ {
		page, total, err := u.userRepo.List(ctx, filter)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("failed to fetch users for export: %w", err))
		}
		users = append(users, page...)
		if len(page) == 0 || int64(len(users)) >= total {
			break
		}
	}

	headers := []string{"ID", "FIRST NAME", "LAST NAME", "EMAIL", "PHONE", "ROLE", "ACTIVE", "CREATED AT"}
	rows := make([][]interface{}, 0, len(users))
	for _, user := range users {
		rows = append(rows, []interface{}{
			user.ID,
			user.FirstName,
			user.LastName,
			user.Email,
			deref(user.Phone),
			string(user.Role),
			yesNo(user.IsActive),
			user.CreatedAt.Format(time.RFC3339),
		})
	}

	file, err := writeWorkbook("Users", headers, rows)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	file.Filename = fmt.Sprintf("carebridge_users_%s.xlsx", file.GeneratedAt.Format("20060102_150405"))

	u.logExport(ctx, "users", file.Rows)
	return file, nil
}

func (u *exportUsecase) ExportApplications(ctx context.Context, filter domain.ApplicationFilter) (*domain.ExportFile, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperror.BadRequest("Invalid application status")
	}

	apps, err := u.appRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to fetch applications for export: %w", err))
	}
	if len(apps) > maxExportRows {
		apps = apps[:maxExportRows]
	}

	headers := []string{"ID", "JOB", "CATEGORY", "RECRUITER", "WORKER", "WORKER EMAIL", "STATUS", "APPLIED AT", "MESSAGE"}
	rows := make([][]interface{}, 0, len(apps))
	for _, app := range apps {
		var job, category, recruiter, worker, workerEmail string
		if app.Job != nil {
			job = app.Job.Title
			if app.Job.Category != nil {
				category = app.Job.Category.Name
			}
			if app.Job.Recruiter != nil {
				recruiter = app.Job.Recruiter.FullName()
			}
		}
		if app.Worker != nil && app.Worker.User != nil {
			worker = app.Worker.User.FullName()
			workerEmail = app.Worker.User.Email
		}
		rows = append(rows, []interface{}{
			app.ID,
			job,
			category,
			recruiter,
			worker,
			workerEmail,
			string(app.Status),
			app.AppliedAt.Format(time.RFC3339),
			deref(app.Message),
		})
	}

	file, err := writeWorkbook("Applications", headers, rows)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	file.Filename = fmt.Sprintf("carebridge_applications_%s.xlsx", file.GeneratedAt.Format("20060102_150405"))

	u.logExport(ctx, "applications", file.Rows)
	return file, nil
}

func (u *exportUsecase) logExport(ctx context.Context, dataset string, rows int) {
	actorID, _ := ctx.Value(domain.KeyUserID).(uint)
	u.securityLog.LogAdminAction(ctx, security.EventDataExport, actorID, 0, map[string]interface{}{
		"dataset": dataset,
		"rows":    rows,
	})
}

// writeWorkbook renders a single sheet with a styled header row.
func writeWorkbook(sheetName string, headers []string, rows [][]interface{}) (*domain.ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// Dark blue background with white text
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
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

	return &domain.ExportFile{
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
		Rows:        len(rows),
		GeneratedAt: time.Now(),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

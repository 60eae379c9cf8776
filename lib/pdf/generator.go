package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	filestorage "access-request-backend/lib/file-storage"
	dbmodels "access-request-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	// Generate - печатная форма согласованной заявки.
	// Возвращает путь к файлу на локальном диске
	Generate(rec dbmodels.AuthorizationRequest, systemNames []string) (path string, err error)
}

func NewHandler(fontDir, outputDir string) Provider {
	return &impl{
		fontDir:   fontDir,
		outputDir: outputDir,
		storage:   filestorage.Instance,
	}
}

type impl struct {
	fontDir   string
	outputDir string
	storage   filestorage.Provider
}

func (i impl) Generate(rec dbmodels.AuthorizationRequest, systemNames []string) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("Generate panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", i.fontDir)
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return "", pdf.Error()
	}

	pdf.CellFormat(0, 10, "Заявка на предоставление доступа", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Номер заявки: %v", rec.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Дата подачи: %v", rec.CreatedAt.Format("02.01.2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	i.writeRow(pdf, "Заявитель", displayName(rec.User))
	i.writeRow(pdf, "Уровень сервиса", rec.ServiceLevel.ToHuman())
	i.writeRow(pdf, "Системы", strings.Join(systemNames, ", "))
	if rec.Comments != "" {
		i.writeRow(pdf, "Комментарий", rec.Comments)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Согласование руководителя", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	i.writeRow(pdf, "Руководитель", displayName(rec.Manager))
	if rec.ManagerApprovedAt != nil {
		i.writeRow(pdf, "Дата решения", rec.ManagerApprovedAt.Format("02.01.2006 15:04"))
	}
	if rec.ManagerApprovalSignature != "" {
		i.writeRow(pdf, "Подпись", rec.ManagerApprovalSignature)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Финальное согласование", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	i.writeRow(pdf, "Согласующий", displayName(rec.FinalApprover))
	if rec.FinalApprovedAt != nil {
		i.writeRow(pdf, "Дата решения", rec.FinalApprovedAt.Format("02.01.2006 15:04"))
	}
	i.writeRow(pdf, "Решение", rec.FinalApprovalDecision)
	if rec.FinalApprovalComments != "" {
		i.writeRow(pdf, "Комментарий", rec.FinalApprovalComments)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	i.writeRow(pdf, "Статус", rec.Status.ToHuman())
	pdf.CellFormat(0, 6, fmt.Sprintf("Сформировано: %v", time.Now().Format("02.01.2006 15:04")), "", 1, "L", false, 0, "")

	if err := os.MkdirAll(i.outputDir, 0o755); err != nil {
		return "", errors.Wrap(err, "ошибка создания каталога печатных форм")
	}
	fileName := fmt.Sprintf("request_%v.pdf", rec.ID)
	path = filepath.Join(i.outputDir, fileName)
	err = pdf.OutputFileAndClose(path)
	if err != nil {
		return "", errors.Wrap(err, "ошибка записи печатной формы")
	}
	if i.storage != nil {
		if err := i.storage.Store(context.Background(), fileName, path, "application/pdf"); err != nil {
			log.WithError(err).WithField("request_id", rec.ID).Warn("Печатная форма не выгружена в хранилище")
		}
	}
	return path, nil
}

func (i impl) writeRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 6, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 6, value, "", "L", false)
}

func displayName(user *dbmodels.User) string {
	if user == nil {
		return ""
	}
	return user.GetDisplayName()
}

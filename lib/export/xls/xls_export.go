package xlsexport

import (
	"bytes"

	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportRequestList(list []dbmodels.AuthorizationRequest) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var requestHeaders = []string{"Номер", "Заявитель", "Руководитель", "Уровень сервиса", "Статус", "Дата подачи", "Дата решения руководителя", "Дата финального решения", "Причина отклонения"}

func (i impl) ExportRequestList(list []dbmodels.AuthorizationRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, requestHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeRequestData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Заявки")
	return f.WriteToBuffer()
}

func writeRequestData(f *excelize.File, sheet string, list []dbmodels.AuthorizationRequest, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(requestHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Номер"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.ID); err != nil {
			return row, err
		}

		// "Заявитель"
		col++
		if item.User != nil {
			if err := writeColumn(f, sheet, col, row, item.User.GetDisplayName()); err != nil {
				return row, err
			}
		}

		// "Руководитель"
		col++
		if item.Manager != nil {
			if err := writeColumn(f, sheet, col, row, item.Manager.GetDisplayName()); err != nil {
				return row, err
			}
		}

		// "Уровень сервиса"
		col++
		if err := writeColumn(f, sheet, col, row, item.ServiceLevel.ToHuman()); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}

		// "Дата подачи"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006 15:04")); err != nil {
			return row, err
		}

		// "Дата решения руководителя"
		col++
		if item.ManagerApprovedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.ManagerApprovedAt.Format("02.01.2006 15:04")); err != nil {
				return row, err
			}
		}

		// "Дата финального решения"
		col++
		if item.FinalApprovedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.FinalApprovedAt.Format("02.01.2006 15:04")); err != nil {
				return row, err
			}
		}

		// "Причина отклонения"
		col++
		if err := writeColumn(f, sheet, col, row, item.RejectionReason); err != nil {
			return row, err
		}
	}
	return row, nil
}

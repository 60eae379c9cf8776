package xlsexport

import (
	"testing"
	"time"

	"access-request-backend/models"
	dbmodels "access-request-backend/models/db"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportRequestList(t *testing.T) {
	approvedAt := time.Date(2026, 2, 10, 14, 30, 0, 0, time.UTC)
	list := []dbmodels.AuthorizationRequest{
		{
			BaseModel:         dbmodels.BaseModel{ID: "req-1", CreatedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)},
			ServiceLevel:      models.ServiceLevelUser,
			Status:            models.RequestStatusPendingFinalApproval,
			ManagerApprovedAt: &approvedAt,
			User:              &dbmodels.User{FullName: "Иванов Иван"},
			Manager:           &dbmodels.User{FullName: "Петров Петр"},
		},
		{
			BaseModel:       dbmodels.BaseModel{ID: "req-2", CreatedAt: time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)},
			ServiceLevel:    models.ServiceLevelMultipleUsers,
			Status:          models.RequestStatusRejected,
			RejectionReason: "нет оснований",
		},
	}

	buf, err := impl{}.ExportRequestList(list)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Заявки")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Номер", rows[0][0])
	require.Equal(t, "req-1", rows[1][0])
	require.Equal(t, "Иванов Иван", rows[1][1])
	require.Equal(t, "Петров Петр", rows[1][2])
	require.Equal(t, "Ожидает финального согласования", rows[1][4])
	require.Equal(t, "10.02.2026 14:30", rows[1][6])
	require.Equal(t, "нет оснований", rows[2][8])
}

func TestExportEmptyList(t *testing.T) {
	buf, err := impl{}.ExportRequestList(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Заявки")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

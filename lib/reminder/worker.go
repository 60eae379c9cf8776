package reminder

import (
	"context"
	"time"

	"access-request-backend/config"
	"access-request-backend/db"
	"access-request-backend/lib/notify"
	requeststore "access-request-backend/lib/request/store"
	"access-request-backend/lib/utils/helpers"
	"access-request-backend/models"

	log "github.com/sirupsen/logrus"

	baseworker "access-request-backend/lib/utils/base-worker"
)

const firstRunDelay = 5 * time.Minute

// StartWorker - фоновая рассылка напоминаний руководителям о заявках,
// ожидающих согласования
func StartWorker(ctx context.Context) {
	if !*config.Conf.Reminder.Enabled {
		log.Info("Рассылка напоминаний отключена")
		return
	}
	checkInterval := time.Duration(config.Conf.Reminder.CheckIntervalHours) * time.Hour
	threshold := time.Duration(config.Conf.Reminder.ReminderIntervalHours) * time.Hour
	w := &workerImpl{
		BaseImpl:  *baseworker.NewInstance("reminder", firstRunDelay, checkInterval),
		store:     requeststore.NewInstance(db.DB),
		notifier:  notify.Instance,
		threshold: threshold,
	}
	go w.Run(ctx, w.sweep)
}

type workerImpl struct {
	baseworker.BaseImpl
	store     requeststore.Provider
	notifier  notify.Provider
	threshold time.Duration
}

func (i workerImpl) sweep(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.store.ListByStatus(models.RequestStatusPendingManagerApproval)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения заявок на согласовании")
		return
	}
	now := time.Now()
	sent := 0
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			logger.Info("Обход прерван по контексту")
			return
		}
		if !i.isDue(rec.CreatedAt, rec.LastReminderSentAt, now) {
			continue
		}
		recLogger := logger.WithField("request_id", rec.ID)
		if err := i.notifier.Dispatch(models.TriggerManagerApprovalRequest, rec); err != nil {
			// ошибка по одной заявке не останавливает обход
			recLogger.WithError(err).Error("Ошибка отправки напоминания")
			continue
		}
		err = i.store.Update(rec.ID, map[string]interface{}{
			"last_reminder_sent_at": now,
			"reminder_count":        rec.ReminderCount + 1,
		})
		if err != nil {
			recLogger.WithError(err).Error("Ошибка фиксации отправленного напоминания")
			continue
		}
		sent++
	}
	logger.WithField("sent", sent).Info("Рассылка напоминаний завершена")
}

// isDue - напоминание отправляется не чаще порогового интервала,
// отсчет от последнего напоминания либо от даты подачи
func (i workerImpl) isDue(createdAt time.Time, lastReminderSentAt *time.Time, now time.Time) bool {
	since := createdAt
	if lastReminderSentAt != nil {
		since = *lastReminderSentAt
	}
	return now.Sub(since) >= i.threshold
}

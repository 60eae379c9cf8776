package request

import (
	"encoding/json"
	"time"

	"access-request-backend/db"
	"access-request-backend/lib/auth"
	appsystem "access-request-backend/lib/dicts/app-system"
	"access-request-backend/lib/notify"
	"access-request-backend/lib/pdf"
	historystore "access-request-backend/lib/request/history-store"
	requeststore "access-request-backend/lib/request/store"
	"access-request-backend/lib/users"
	usersstore "access-request-backend/lib/users/store"
	"access-request-backend/models"
	apimodels "access-request-backend/models/api"
	requestapimodels "access-request-backend/models/api/request"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound          = errors.New("заявка не найдена")
	ErrForbidden         = errors.New("действие недоступно для текущего пользователя")
	ErrInvalidTransition = errors.New("действие недопустимо в текущем статусе заявки")
	ErrCredentials       = errors.New("учетные данные не подтверждены")
)

// DefaultManagerComment подставляется при согласовании без комментария
const DefaultManagerComment = "Согласовано руководителем"

var Instance Provider

type Provider interface {
	Create(actorID string, data requestapimodels.RequestCreateData) (id string, err error)
	AcknowledgeDisclosure(id, actorID string) error
	ManagerDecision(id, actorID string, data requestapimodels.ManagerDecisionData) error
	FinalDecision(id, actorID string, data requestapimodels.FinalDecisionData) error
	CancelByUser(id, actorID string) error
	CancelByManager(id, actorID, reason string) error
	ChangeManager(id, adminID string, data requestapimodels.ChangeManagerData) error
	GetByID(id string) (view *requestapimodels.RequestView, err error)
	List(filter requestapimodels.RequestFilter) (list []requestapimodels.RequestView, rowCount int64, err error)
	// ListForExport - записи для выгрузки, с предзагруженными участниками
	ListForExport(filter requestapimodels.RequestFilter) (list []dbmodels.AuthorizationRequest, err error)
	History(id string) (list []requestapimodels.HistoryView, err error)
	Dashboard(managerID string) (view *requestapimodels.DashboardView, err error)
}

func NewHandler() Provider {
	return &impl{
		store:        requeststore.NewInstance(db.DB),
		historyStore: historystore.NewInstance(db.DB),
		usersStore:   usersstore.NewInstance(db.DB),
		users:        users.Instance,
		verifier:     auth.Instance,
		notifier:     notify.Instance,
		pdf:          pdf.Instance,
		systems:      appsystem.Instance,
	}
}

type impl struct {
	store        requeststore.Provider
	historyStore historystore.Provider
	usersStore   usersstore.Provider
	users        users.Provider
	verifier     auth.Provider
	notifier     notify.Provider
	pdf          pdf.Provider
	systems      appsystem.Provider
}

func (i impl) Create(actorID string, data requestapimodels.RequestCreateData) (id string, err error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	manager, err := i.usersStore.GetByID(data.ManagerID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения руководителя")
	}
	if manager == nil || !manager.IsActive || !manager.Role.IsManager() {
		return "", errors.New("указанный руководитель не найден или не может согласовывать заявки")
	}
	var requester *dbmodels.User
	if actorID != "" {
		requester, err = i.usersStore.GetByID(actorID)
		if err != nil {
			return "", errors.Wrap(err, "ошибка получения пользователя")
		}
		if requester == nil {
			return "", ErrForbidden
		}
	} else {
		// анонимная подача: учетная запись заводится по почте заявителя
		requester, err = i.users.EnsureUser(data.UserEmail, data.UserFullName, data.ManagerID)
		if err != nil {
			return "", err
		}
	}
	employees, err := json.Marshal(data.SelectedEmployeeIDs)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сериализации списка сотрудников")
	}
	systems, err := json.Marshal(data.SelectedSystemIDs)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сериализации списка систем")
	}
	rec := dbmodels.AuthorizationRequest{
		UserID:            requester.ID,
		ServiceLevel:      data.ServiceLevel,
		SelectedEmployees: string(employees),
		SelectedSystems:   string(systems),
		Comments:          data.Comments,
		ManagerID:         data.ManagerID,
		Status:            models.RequestStatusDraft,
	}
	actorName := requester.GetDisplayName()
	hist := []dbmodels.RequestHistory{
		{
			PreviousStatus:      models.RequestStatusDraft,
			NewStatus:           models.RequestStatusDraft,
			ActionPerformedByID: requester.ID,
			ActionPerformedBy:   actorName,
			Comments:            "Заявка создана",
		},
	}
	if data.DisclosureAcknowledged {
		now := time.Now()
		rec.Status = models.RequestStatusPendingManagerApproval
		rec.DisclosureAcknowledged = true
		rec.DisclosureAcknowledgedAt = &now
		hist = append(hist, dbmodels.RequestHistory{
			PreviousStatus:      models.RequestStatusDraft,
			NewStatus:           models.RequestStatusPendingManagerApproval,
			ActionPerformedByID: requester.ID,
			ActionPerformedBy:   actorName,
			Comments:            "Условия раскрытия информации приняты",
		})
	}
	id, err = i.store.CreateWithHistory(rec, hist)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания заявки")
	}
	log.
		WithField("request_id", id).
		WithField("user_id", requester.ID).
		Info("Создана заявка на доступ")
	i.dispatch(models.TriggerRequestCreated, id)
	if data.DisclosureAcknowledged {
		i.dispatch(models.TriggerManagerApprovalRequest, id)
	}
	return id, nil
}

func (i impl) AcknowledgeDisclosure(id, actorID string) error {
	rec, actor, err := i.getWithActor(id, actorID)
	if err != nil {
		return err
	}
	if rec.UserID != actor.ID && !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	if rec.Status != models.RequestStatusDraft {
		return ErrInvalidTransition
	}
	now := time.Now()
	err = i.store.UpdateWithHistory(id, map[string]interface{}{
		"status":                     models.RequestStatusPendingManagerApproval,
		"disclosure_acknowledged":    true,
		"disclosure_acknowledged_at": now,
	}, []dbmodels.RequestHistory{
		{
			PreviousStatus:      rec.Status,
			NewStatus:           models.RequestStatusPendingManagerApproval,
			ActionPerformedByID: actor.ID,
			ActionPerformedBy:   actor.GetDisplayName(),
			Comments:            "Условия раскрытия информации приняты",
		},
	})
	if err != nil {
		return errors.Wrap(err, "ошибка перевода заявки на согласование")
	}
	i.dispatch(models.TriggerManagerApprovalRequest, id)
	return nil
}

func (i impl) ManagerDecision(id, actorID string, data requestapimodels.ManagerDecisionData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	rec, actor, err := i.getWithActor(id, actorID)
	if err != nil {
		return err
	}
	if rec.ManagerID != actor.ID && !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	if !rec.Status.AllowManagerDecision() {
		return ErrInvalidTransition
	}
	// повторное подтверждение учетных данных, без него решение не принимается
	ok, err := i.verifier.VerifyCredentials(data.UserName, data.Password)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки учетных данных")
	}
	if !ok {
		return ErrCredentials
	}
	logger := log.
		WithField("request_id", id).
		WithField("manager_id", actor.ID)
	now := time.Now()
	if data.Approved {
		comment := data.Comments
		if comment == "" {
			comment = DefaultManagerComment
		}
		err = i.store.UpdateWithHistory(id, map[string]interface{}{
			"status":                     models.RequestStatusPendingFinalApproval,
			"manager_approved_at":        now,
			"manager_approval_signature": data.UserName,
		}, []dbmodels.RequestHistory{
			{
				PreviousStatus:      rec.Status,
				NewStatus:           models.RequestStatusPendingFinalApproval,
				ActionPerformedByID: actor.ID,
				ActionPerformedBy:   actor.GetDisplayName(),
				Comments:            comment,
			},
		})
		if err != nil {
			return errors.Wrap(err, "ошибка согласования заявки")
		}
		logger.Info("Заявка согласована руководителем")
		i.dispatch(models.TriggerManagerApproved, id)
		i.dispatch(models.TriggerFinalApprovalRequest, id)
		return nil
	}
	err = i.store.UpdateWithHistory(id, map[string]interface{}{
		"status":           models.RequestStatusRejected,
		"rejection_reason": data.Comments,
	}, []dbmodels.RequestHistory{
		{
			PreviousStatus:      rec.Status,
			NewStatus:           models.RequestStatusRejected,
			ActionPerformedByID: actor.ID,
			ActionPerformedBy:   actor.GetDisplayName(),
			Comments:            data.Comments,
		},
	})
	if err != nil {
		return errors.Wrap(err, "ошибка отклонения заявки")
	}
	logger.Info("Заявка отклонена руководителем")
	i.dispatch(models.TriggerManagerRejected, id)
	return nil
}

func (i impl) FinalDecision(id, actorID string, data requestapimodels.FinalDecisionData) error {
	rec, actor, err := i.getWithActor(id, actorID)
	if err != nil {
		return err
	}
	if !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	if !rec.Status.AllowFinalDecision() {
		return ErrInvalidTransition
	}
	logger := log.
		WithField("request_id", id).
		WithField("approver_id", actor.ID)
	now := time.Now()
	if data.Approved {
		err = i.store.UpdateWithHistory(id, map[string]interface{}{
			"status":                  models.RequestStatusApproved,
			"final_approver_id":       actor.ID,
			"final_approved_at":       now,
			"final_approval_decision": "APPROVED",
			"final_approval_comments": data.Comments,
		}, []dbmodels.RequestHistory{
			{
				PreviousStatus:      rec.Status,
				NewStatus:           models.RequestStatusApproved,
				ActionPerformedByID: actor.ID,
				ActionPerformedBy:   actor.GetDisplayName(),
				Comments:            data.Comments,
			},
		})
		if err != nil {
			return errors.Wrap(err, "ошибка финального согласования")
		}
		logger.Info("Заявка согласована финально")
		// печатная форма не влияет на результат согласования
		i.generatePdf(id)
		i.dispatch(models.TriggerFinalApproved, id)
		return nil
	}
	err = i.store.UpdateWithHistory(id, map[string]interface{}{
		"status":                  models.RequestStatusRejected,
		"final_approver_id":       actor.ID,
		"final_approved_at":       now,
		"final_approval_decision": "REJECTED",
		"final_approval_comments": data.Comments,
		"rejection_reason":        data.Comments,
	}, []dbmodels.RequestHistory{
		{
			PreviousStatus:      rec.Status,
			NewStatus:           models.RequestStatusRejected,
			ActionPerformedByID: actor.ID,
			ActionPerformedBy:   actor.GetDisplayName(),
			Comments:            data.Comments,
		},
	})
	if err != nil {
		return errors.Wrap(err, "ошибка финального отклонения")
	}
	logger.Info("Заявка отклонена финально")
	i.dispatch(models.TriggerFinalRejected, id)
	return nil
}

func (i impl) CancelByUser(id, actorID string) error {
	rec, actor, err := i.getWithActor(id, actorID)
	if err != nil {
		return err
	}
	if rec.UserID != actor.ID && !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	if !rec.Status.AllowCancelByUser() {
		return ErrInvalidTransition
	}
	err = i.store.UpdateWithHistory(id, map[string]interface{}{
		"status": models.RequestStatusCancelledByUser,
	}, []dbmodels.RequestHistory{
		{
			PreviousStatus:      rec.Status,
			NewStatus:           models.RequestStatusCancelledByUser,
			ActionPerformedByID: actor.ID,
			ActionPerformedBy:   actor.GetDisplayName(),
			Comments:            "Заявка отменена заявителем",
		},
	})
	if err != nil {
		return errors.Wrap(err, "ошибка отмены заявки")
	}
	i.dispatch(models.TriggerRequestCancelledByUser, id)
	return nil
}

func (i impl) CancelByManager(id, actorID, reason string) error {
	rec, actor, err := i.getWithActor(id, actorID)
	if err != nil {
		return err
	}
	if rec.ManagerID != actor.ID && !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	if !rec.Status.AllowCancelByManager() {
		return ErrInvalidTransition
	}
	err = i.store.UpdateWithHistory(id, map[string]interface{}{
		"status":           models.RequestStatusCancelledByManager,
		"rejection_reason": reason,
	}, []dbmodels.RequestHistory{
		{
			PreviousStatus:      rec.Status,
			NewStatus:           models.RequestStatusCancelledByManager,
			ActionPerformedByID: actor.ID,
			ActionPerformedBy:   actor.GetDisplayName(),
			Comments:            reason,
		},
	})
	if err != nil {
		return errors.Wrap(err, "ошибка отмены заявки")
	}
	i.dispatch(models.TriggerRequestCancelledByManager, id)
	return nil
}

func (i impl) ChangeManager(id, adminID string, data requestapimodels.ChangeManagerData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	rec, actor, err := i.getWithActor(id, adminID)
	if err != nil {
		return err
	}
	if !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	if rec.Status.IsFinal() {
		return ErrInvalidTransition
	}
	newManager, err := i.usersStore.GetByID(data.NewManagerID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения руководителя")
	}
	if newManager == nil || !newManager.IsActive || !newManager.Role.IsManager() {
		return errors.New("новый руководитель не найден или не может согласовывать заявки")
	}
	now := time.Now()
	previousManagerID := rec.ManagerID
	actorName := actor.GetDisplayName()
	// смена руководителя фиксируется отдельным статусом и сразу же
	// возвращает заявку на согласование новому руководителю
	err = i.store.UpdateWithHistory(id, map[string]interface{}{
		"status":              models.RequestStatusPendingManagerApproval,
		"manager_id":          data.NewManagerID,
		"previous_manager_id": previousManagerID,
		"changed_by_admin_id": actor.ID,
		"manager_changed_at":  now,
		"manager_approved_at": nil,
	}, []dbmodels.RequestHistory{
		{
			PreviousStatus:      rec.Status,
			NewStatus:           models.RequestStatusManagerChanged,
			ActionPerformedByID: actor.ID,
			ActionPerformedBy:   actorName,
			Comments:            "Назначен руководитель: " + newManager.GetDisplayName(),
		},
		{
			PreviousStatus:      models.RequestStatusManagerChanged,
			NewStatus:           models.RequestStatusPendingManagerApproval,
			ActionPerformedByID: actor.ID,
			ActionPerformedBy:   actorName,
			Comments:            "Заявка возвращена на согласование",
		},
	})
	if err != nil {
		return errors.Wrap(err, "ошибка смены руководителя")
	}
	log.
		WithField("request_id", id).
		WithField("new_manager_id", data.NewManagerID).
		Info("Руководитель заявки изменен")
	i.dispatch(models.TriggerManagerApprovalRequest, id)
	return nil
}

func (i impl) GetByID(id string) (*requestapimodels.RequestView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return nil, nil
	}
	view := requestapimodels.RequestConvert(*rec)
	return &view, nil
}

func (i impl) List(filter requestapimodels.RequestFilter) (list []requestapimodels.RequestView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения числа заявок")
	}
	recs, err := i.store.List(filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка заявок")
	}
	list = make([]requestapimodels.RequestView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, requestapimodels.RequestConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) ListForExport(filter requestapimodels.RequestFilter) (list []dbmodels.AuthorizationRequest, err error) {
	list, err = i.store.ListAll(filter)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка заявок")
	}
	return list, nil
}

func (i impl) History(id string) (list []requestapimodels.HistoryView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	recs, err := i.historyStore.ListByRequest(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения журнала заявки")
	}
	list = make([]requestapimodels.HistoryView, 0, len(recs))
	for _, hist := range recs {
		list = append(list, requestapimodels.HistoryConvert(hist))
	}
	return list, nil
}

func (i impl) Dashboard(managerID string) (*requestapimodels.DashboardView, error) {
	counts, total, err := i.store.CountByStatus(managerID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения счетчиков")
	}
	view := requestapimodels.DashboardView{
		TotalCount:        total,
		PendingCount:      counts[models.RequestStatusPendingManagerApproval],
		PendingFinalCount: counts[models.RequestStatusPendingFinalApproval],
		ApprovedCount:     counts[models.RequestStatusApproved],
		RejectedCount:     counts[models.RequestStatusRejected],
	}
	pending, err := i.store.List(requestapimodels.RequestFilter{
		Pagination: apimodels.Pagination{Limit: 10},
		Status:     models.RequestStatusPendingManagerApproval,
		ManagerID:  managerID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявок на согласовании")
	}
	view.PendingApprovals = make([]requestapimodels.RequestView, 0, len(pending))
	for _, rec := range pending {
		view.PendingApprovals = append(view.PendingApprovals, requestapimodels.RequestConvert(rec))
	}
	recent, err := i.store.List(requestapimodels.RequestFilter{
		Pagination: apimodels.Pagination{Limit: 10},
		ManagerID:  managerID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения последних заявок")
	}
	view.RecentRequests = make([]requestapimodels.RequestView, 0, len(recent))
	for _, rec := range recent {
		view.RecentRequests = append(view.RecentRequests, requestapimodels.RequestConvert(rec))
	}
	return &view, nil
}

func (i impl) getWithActor(id, actorID string) (*dbmodels.AuthorizationRequest, *dbmodels.User, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return nil, nil, ErrNotFound
	}
	actor, err := i.usersStore.GetByID(actorID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения пользователя")
	}
	if actor == nil || !actor.IsActive {
		return nil, nil, ErrForbidden
	}
	return rec, actor, nil
}

// dispatch - уведомления отправляются после фиксации перехода и
// не влияют на его результат
func (i impl) dispatch(trigger models.EmailTriggerType, id string) {
	if i.notifier == nil {
		return
	}
	rec, err := i.store.GetByID(id)
	if err != nil || rec == nil {
		log.WithError(err).WithField("request_id", id).Error("Ошибка получения заявки для уведомления")
		return
	}
	if err := i.notifier.Dispatch(trigger, *rec); err != nil {
		log.WithError(err).
			WithField("request_id", id).
			WithField("trigger", trigger).
			Error("Ошибка отправки уведомления")
	}
}

func (i impl) generatePdf(id string) {
	if i.pdf == nil {
		return
	}
	logger := log.WithField("request_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil || rec == nil {
		logger.WithError(err).Error("Ошибка получения заявки для печатной формы")
		return
	}
	systemNames := []string{}
	if i.systems != nil {
		ids := []string{}
		if err := json.Unmarshal([]byte(rec.SelectedSystems), &ids); err == nil {
			if names, err := i.systems.ResolveNames(ids); err == nil {
				systemNames = names
			}
		}
	}
	path, err := i.pdf.Generate(*rec, systemNames)
	if err != nil {
		logger.WithError(err).Error("Ошибка формирования печатной формы")
		return
	}
	if err := i.store.Update(id, map[string]interface{}{"pdf_path": path}); err != nil {
		logger.WithError(err).Error("Ошибка сохранения пути печатной формы")
	}
}

package request

import (
	"fmt"
	"testing"
	"time"

	requeststore "access-request-backend/lib/request/store"
	"access-request-backend/models"
	apimodels "access-request-backend/models/api"
	authapimodels "access-request-backend/models/api/auth"
	dictapimodels "access-request-backend/models/api/dict"
	notifyapimodels "access-request-backend/models/api/notify"
	requestapimodels "access-request-backend/models/api/request"
	searchapimodels "access-request-backend/models/api/search"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	recs    map[string]*dbmodels.AuthorizationRequest
	hist    []dbmodels.RequestHistory
	seq     int
	failTxn bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		recs: map[string]*dbmodels.AuthorizationRequest{},
	}
}

func (f *fakeStore) CreateWithHistory(rec dbmodels.AuthorizationRequest, hist []dbmodels.RequestHistory) (string, error) {
	if f.failTxn {
		return "", errors.New("db error")
	}
	f.seq++
	rec.ID = fmt.Sprintf("req-%v", f.seq)
	rec.CreatedAt = time.Now()
	f.recs[rec.ID] = &rec
	for idx := range hist {
		hist[idx].RequestID = rec.ID
		f.hist = append(f.hist, hist[idx])
	}
	return rec.ID, nil
}

func (f *fakeStore) UpdateWithHistory(id string, updMap map[string]interface{}, hist []dbmodels.RequestHistory) error {
	if f.failTxn {
		return errors.New("db error")
	}
	rec, ok := f.recs[id]
	if !ok {
		return errors.New("запись не найдена")
	}
	applyUpdMap(rec, updMap)
	for idx := range hist {
		hist[idx].RequestID = id
		f.hist = append(f.hist, hist[idx])
	}
	return nil
}

func (f *fakeStore) Update(id string, updMap map[string]interface{}) error {
	rec, ok := f.recs[id]
	if !ok {
		return errors.New("запись не найдена")
	}
	applyUpdMap(rec, updMap)
	return nil
}

func applyUpdMap(rec *dbmodels.AuthorizationRequest, updMap map[string]interface{}) {
	for key, value := range updMap {
		switch key {
		case "status":
			rec.Status = value.(models.RequestStatus)
		case "rejection_reason":
			rec.RejectionReason = value.(string)
		case "manager_id":
			rec.ManagerID = value.(string)
		case "previous_manager_id":
			v := value.(string)
			rec.PreviousManagerID = &v
		case "changed_by_admin_id":
			v := value.(string)
			rec.ChangedByAdminID = &v
		case "manager_changed_at":
			v := value.(time.Time)
			rec.ManagerChangedAt = &v
		case "manager_approved_at":
			if value == nil {
				rec.ManagerApprovedAt = nil
			} else {
				v := value.(time.Time)
				rec.ManagerApprovedAt = &v
			}
		case "manager_approval_signature":
			rec.ManagerApprovalSignature = value.(string)
		case "final_approver_id":
			v := value.(string)
			rec.FinalApproverID = &v
		case "final_approved_at":
			v := value.(time.Time)
			rec.FinalApprovedAt = &v
		case "final_approval_decision":
			rec.FinalApprovalDecision = value.(string)
		case "final_approval_comments":
			rec.FinalApprovalComments = value.(string)
		case "pdf_path":
			rec.PdfPath = value.(string)
		case "disclosure_acknowledged":
			rec.DisclosureAcknowledged = value.(bool)
		case "disclosure_acknowledged_at":
			v := value.(time.Time)
			rec.DisclosureAcknowledgedAt = &v
		}
	}
}

func (f *fakeStore) GetByID(id string) (*dbmodels.AuthorizationRequest, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeStore) List(filter requestapimodels.RequestFilter) ([]dbmodels.AuthorizationRequest, error) {
	list, _ := f.ListAll(filter)
	page, limit := filter.GetPage()
	start := (page - 1) * limit
	if start >= len(list) {
		return []dbmodels.AuthorizationRequest{}, nil
	}
	end := start + limit
	if end > len(list) {
		end = len(list)
	}
	return list[start:end], nil
}

func (f *fakeStore) ListAll(filter requestapimodels.RequestFilter) ([]dbmodels.AuthorizationRequest, error) {
	list := []dbmodels.AuthorizationRequest{}
	for _, rec := range f.recs {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.ManagerID != "" && rec.ManagerID != filter.ManagerID {
			continue
		}
		if filter.UserID != "" && rec.UserID != filter.UserID {
			continue
		}
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeStore) ListCount(filter requestapimodels.RequestFilter) (int64, error) {
	list, _ := f.ListAll(filter)
	return int64(len(list)), nil
}

func (f *fakeStore) ListByStatus(status models.RequestStatus) ([]dbmodels.AuthorizationRequest, error) {
	return f.ListAll(requestapimodels.RequestFilter{Status: status})
}

func (f *fakeStore) CountByStatus(managerID string) (map[models.RequestStatus]int64, int64, error) {
	counts := map[models.RequestStatus]int64{}
	total := int64(0)
	for _, rec := range f.recs {
		if managerID != "" && rec.ManagerID != managerID && rec.UserID != managerID {
			continue
		}
		counts[rec.Status]++
		total++
	}
	return counts, total, nil
}

func (f *fakeStore) historyFor(id string) []dbmodels.RequestHistory {
	list := []dbmodels.RequestHistory{}
	for _, hist := range f.hist {
		if hist.RequestID == id {
			list = append(list, hist)
		}
	}
	return list
}

type fakeHistoryStore struct {
	store *fakeStore
}

func (f *fakeHistoryStore) Create(rec dbmodels.RequestHistory) (string, error) {
	f.store.hist = append(f.store.hist, rec)
	return "h1", nil
}

func (f *fakeHistoryStore) ListByRequest(requestID string) ([]dbmodels.RequestHistory, error) {
	return f.store.historyFor(requestID), nil
}

type fakeUsersStore struct {
	recs map[string]*dbmodels.User
}

func (f *fakeUsersStore) Create(rec dbmodels.User) (string, error) {
	if rec.ID == "" {
		rec.ID = "user-" + rec.UserName
	}
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeUsersStore) GetByID(id string) (*dbmodels.User, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (f *fakeUsersStore) FindByEmail(email string) (*dbmodels.User, error) {
	for _, rec := range f.recs {
		if rec.Email == email {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeUsersStore) FindByUserName(userName string) (*dbmodels.User, error) {
	for _, rec := range f.recs {
		if rec.UserName == userName {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeUsersStore) Update(id string, updMap map[string]interface{}) error {
	return nil
}

func (f *fakeUsersStore) ListByRole(role models.UserRole) ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	for _, rec := range f.recs {
		if rec.Role == role {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeUsersStore) Search(term string, limit int) ([]dbmodels.User, error) {
	return nil, nil
}

type fakeUsersHandler struct {
	store *fakeUsersStore
}

func (f *fakeUsersHandler) GetByID(id string) (*authapimodels.UserView, error) { return nil, nil }
func (f *fakeUsersHandler) Create(data authapimodels.UserCreateData) (string, error) {
	return "", nil
}
func (f *fakeUsersHandler) SetRole(id string, role models.UserRole) error { return nil }
func (f *fakeUsersHandler) SetActive(id string, isActive bool) error      { return nil }
func (f *fakeUsersHandler) ListManagers() ([]authapimodels.UserView, error) {
	return nil, nil
}
func (f *fakeUsersHandler) EnsureUser(email, fullName, managerID string) (*dbmodels.User, error) {
	if exist, _ := f.store.FindByEmail(email); exist != nil {
		return exist, nil
	}
	rec := dbmodels.User{
		UserName: email,
		FullName: fullName,
		Email:    email,
		Role:     models.UserRoleUser,
		IsActive: true,
	}
	id, _ := f.store.Create(rec)
	return f.store.GetByID(id)
}
func (f *fakeUsersHandler) Search(term string, limit int) ([]searchapimodels.UserSearchResult, error) {
	return nil, nil
}
func (f *fakeUsersHandler) ImportFromDirectory() (int, error) { return 0, nil }

type fakeVerifier struct {
	ok bool
}

func (f *fakeVerifier) Login(data authapimodels.LoginRequest) (*authapimodels.JWTResponse, error) {
	return nil, nil
}

func (f *fakeVerifier) VerifyCredentials(userName, password string) (bool, error) {
	return f.ok, nil
}

type fakeNotifier struct {
	triggers []models.EmailTriggerType
}

func (f *fakeNotifier) Dispatch(trigger models.EmailTriggerType, rec dbmodels.AuthorizationRequest) error {
	f.triggers = append(f.triggers, trigger)
	return nil
}

func (f *fakeNotifier) CreateTemplate(data notifyapimodels.EmailTemplateData, createdByID string) (string, error) {
	return "", nil
}
func (f *fakeNotifier) GetTemplate(id string) (*notifyapimodels.EmailTemplateView, error) {
	return nil, nil
}
func (f *fakeNotifier) ListTemplates(onlyActive bool) ([]notifyapimodels.EmailTemplateView, error) {
	return nil, nil
}
func (f *fakeNotifier) UpdateTemplate(id string, data notifyapimodels.EmailTemplateData) error {
	return nil
}
func (f *fakeNotifier) DeleteTemplate(id string) error { return nil }

type fakePdf struct {
	path string
	err  error
}

func (f *fakePdf) Generate(rec dbmodels.AuthorizationRequest, systemNames []string) (string, error) {
	return f.path, f.err
}

type fakeSystems struct{}

func (f fakeSystems) Create(data dictapimodels.AppSystemData) (string, error) { return "", nil }
func (f fakeSystems) GetByID(id string) (*dictapimodels.AppSystemView, error) { return nil, nil }
func (f fakeSystems) List(onlyActive bool) ([]dictapimodels.AppSystemView, error) {
	return nil, nil
}
func (f fakeSystems) Update(id string, data dictapimodels.AppSystemData) error { return nil }
func (f fakeSystems) Delete(id string) error                                   { return nil }
func (f fakeSystems) ResolveNames(ids []string) ([]string, error) {
	return []string{"CRM"}, nil
}

var _ requeststore.Provider = (*fakeStore)(nil)

type testEnv struct {
	handler    impl
	store      *fakeStore
	usersStore *fakeUsersStore
	notifier   *fakeNotifier
	verifier   *fakeVerifier
	pdf        *fakePdf
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	usersStore := &fakeUsersStore{recs: map[string]*dbmodels.User{}}
	usersStore.recs["u1"] = &dbmodels.User{BaseModel: dbmodels.BaseModel{ID: "u1"}, UserName: "ivanov", FullName: "Иванов Иван", Email: "ivanov@corp.ru", Role: models.UserRoleUser, IsActive: true}
	usersStore.recs["m1"] = &dbmodels.User{BaseModel: dbmodels.BaseModel{ID: "m1"}, UserName: "petrov", FullName: "Петров Петр", Email: "petrov@corp.ru", Role: models.UserRoleManager, IsActive: true}
	usersStore.recs["m2"] = &dbmodels.User{BaseModel: dbmodels.BaseModel{ID: "m2"}, UserName: "sidorov", FullName: "Сидоров Семен", Email: "sidorov@corp.ru", Role: models.UserRoleManager, IsActive: true}
	usersStore.recs["a1"] = &dbmodels.User{BaseModel: dbmodels.BaseModel{ID: "a1"}, UserName: "admin", FullName: "Администратор", Email: "admin@corp.ru", Role: models.UserRoleAdmin, IsActive: true}
	notifier := &fakeNotifier{}
	verifier := &fakeVerifier{ok: true}
	pdfGen := &fakePdf{path: "pdfs/request.pdf"}
	env := &testEnv{
		store:      store,
		usersStore: usersStore,
		notifier:   notifier,
		verifier:   verifier,
		pdf:        pdfGen,
	}
	env.handler = impl{
		store:        store,
		historyStore: &fakeHistoryStore{store: store},
		usersStore:   usersStore,
		users:        &fakeUsersHandler{store: usersStore},
		verifier:     verifier,
		notifier:     notifier,
		pdf:          pdfGen,
		systems:      fakeSystems{},
	}
	return env
}

func validCreateData() requestapimodels.RequestCreateData {
	return requestapimodels.RequestCreateData{
		ServiceLevel:      models.ServiceLevelUser,
		SelectedSystemIDs: []string{"sys-1"},
		ManagerID:         "m1",
	}
}

func (e *testEnv) createPending(t *testing.T) string {
	data := validCreateData()
	data.DisclosureAcknowledged = true
	id, err := e.handler.Create("u1", data)
	require.NoError(t, err)
	return id
}

func TestCreateDraft(t *testing.T) {
	env := newTestEnv()
	id, err := env.handler.Create("u1", validCreateData())
	require.NoError(t, err)

	rec, err := env.store.GetByID(id)
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusDraft, rec.Status)
	require.False(t, rec.DisclosureAcknowledged)

	hist := env.store.historyFor(id)
	require.Len(t, hist, 1)
	require.Equal(t, models.RequestStatusDraft, hist[0].PreviousStatus)
	require.Equal(t, models.RequestStatusDraft, hist[0].NewStatus)
	require.Equal(t, []models.EmailTriggerType{models.TriggerRequestCreated}, env.notifier.triggers)
}

func TestCreateWithDisclosure(t *testing.T) {
	env := newTestEnv()
	data := validCreateData()
	data.DisclosureAcknowledged = true
	id, err := env.handler.Create("u1", data)
	require.NoError(t, err)

	rec, _ := env.store.GetByID(id)
	require.Equal(t, models.RequestStatusPendingManagerApproval, rec.Status)
	require.True(t, rec.DisclosureAcknowledged)
	require.NotNil(t, rec.DisclosureAcknowledgedAt)

	hist := env.store.historyFor(id)
	require.Len(t, hist, 2)
	require.Equal(t, models.RequestStatusPendingManagerApproval, hist[1].NewStatus)
	require.Equal(t, []models.EmailTriggerType{
		models.TriggerRequestCreated,
		models.TriggerManagerApprovalRequest,
	}, env.notifier.triggers)
}

func TestCreateAnonymousProvisionsUser(t *testing.T) {
	env := newTestEnv()
	data := validCreateData()
	data.UserEmail = "new@corp.ru"
	data.UserFullName = "Новый Пользователь"
	id, err := env.handler.Create("", data)
	require.NoError(t, err)

	rec, _ := env.store.GetByID(id)
	created, err := env.usersStore.FindByEmail("new@corp.ru")
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, created.ID, rec.UserID)
	require.Equal(t, models.UserRoleUser, created.Role)
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv()
	data := validCreateData()
	data.SelectedSystemIDs = nil
	_, err := env.handler.Create("u1", data)
	require.Error(t, err)

	data = validCreateData()
	data.ManagerID = ""
	_, err = env.handler.Create("u1", data)
	require.Error(t, err)

	// руководителем может быть только пользователь с ролью руководителя
	data = validCreateData()
	data.ManagerID = "u1"
	_, err = env.handler.Create("u1", data)
	require.Error(t, err)
}

func TestManagerApprove(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)
	env.notifier.triggers = nil

	err := env.handler.ManagerDecision(id, "m1", requestapimodels.ManagerDecisionData{
		UserName: "petrov",
		Password: "secret",
		Approved: true,
	})
	require.NoError(t, err)

	rec, _ := env.store.GetByID(id)
	require.Equal(t, models.RequestStatusPendingFinalApproval, rec.Status)
	require.NotNil(t, rec.ManagerApprovedAt)
	require.Equal(t, "petrov", rec.ManagerApprovalSignature)

	hist := env.store.historyFor(id)
	require.Len(t, hist, 3)
	last := hist[len(hist)-1]
	require.Equal(t, models.RequestStatusPendingManagerApproval, last.PreviousStatus)
	require.Equal(t, models.RequestStatusPendingFinalApproval, last.NewStatus)
	// без комментария подставляется типовой
	require.Equal(t, DefaultManagerComment, last.Comments)
	require.Equal(t, []models.EmailTriggerType{
		models.TriggerManagerApproved,
		models.TriggerFinalApprovalRequest,
	}, env.notifier.triggers)
}

func TestManagerRejectStoresReason(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)

	err := env.handler.ManagerDecision(id, "m1", requestapimodels.ManagerDecisionData{
		UserName: "petrov",
		Password: "secret",
		Approved: false,
		Comments: "нет оснований",
	})
	require.NoError(t, err)

	rec, _ := env.store.GetByID(id)
	require.Equal(t, models.RequestStatusRejected, rec.Status)
	require.Equal(t, "нет оснований", rec.RejectionReason)
}

func TestManagerDecisionCredentialsFailNoMutation(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)
	env.verifier.ok = false
	histBefore := len(env.store.historyFor(id))

	err := env.handler.ManagerDecision(id, "m1", requestapimodels.ManagerDecisionData{
		UserName: "petrov",
		Password: "wrong",
		Approved: true,
	})
	require.ErrorIs(t, err, ErrCredentials)

	rec, _ := env.store.GetByID(id)
	require.Equal(t, models.RequestStatusPendingManagerApproval, rec.Status)
	require.Nil(t, rec.ManagerApprovedAt)
	require.Len(t, env.store.historyFor(id), histBefore)
}

func TestManagerDecisionForbiddenForStranger(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)

	err := env.handler.ManagerDecision(id, "m2", requestapimodels.ManagerDecisionData{
		UserName: "sidorov",
		Password: "secret",
		Approved: true,
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestManagerDecisionWrongStatus(t *testing.T) {
	env := newTestEnv()
	id, err := env.handler.Create("u1", validCreateData())
	require.NoError(t, err)

	err = env.handler.ManagerDecision(id, "m1", requestapimodels.ManagerDecisionData{
		UserName: "petrov",
		Password: "secret",
		Approved: true,
	})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func approveByManager(t *testing.T, env *testEnv, id string) {
	err := env.handler.ManagerDecision(id, "m1", requestapimodels.ManagerDecisionData{
		UserName: "petrov",
		Password: "secret",
		Approved: true,
	})
	require.NoError(t, err)
}

func TestFinalApprove(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)
	approveByManager(t, env, id)

	err := env.handler.FinalDecision(id, "a1", requestapimodels.FinalDecisionData{
		Approved: true,
		Comments: "доступ согласован",
	})
	require.NoError(t, err)

	rec, _ := env.store.GetByID(id)
	require.Equal(t, models.RequestStatusApproved, rec.Status)
	require.NotNil(t, rec.FinalApproverID)
	require.Equal(t, "a1", *rec.FinalApproverID)
	require.Equal(t, "APPROVED", rec.FinalApprovalDecision)
	require.Equal(t, "pdfs/request.pdf", rec.PdfPath)
}

func TestFinalApprovePdfFailureKeepsApproved(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)
	approveByManager(t, env, id)
	env.pdf.path = ""
	env.pdf.err = errors.New("font not found")

	err := env.handler.FinalDecision(id, "a1", requestapimodels.FinalDecisionData{Approved: true})
	require.NoError(t, err)

	rec, _ := env.store.GetByID(id)
	require.Equal(t, models.RequestStatusApproved, rec.Status)
	require.Empty(t, rec.PdfPath)
}

func TestFinalRejectCopiesCommentsToReason(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)
	approveByManager(t, env, id)

	err := env.handler.FinalDecision(id, "a1", requestapimodels.FinalDecisionData{
		Approved: false,
		Comments: "не хватает обоснования",
	})
	require.NoError(t, err)

	rec, _ := env.store.GetByID(id)
	require.Equal(t, models.RequestStatusRejected, rec.Status)
	require.Equal(t, "REJECTED", rec.FinalApprovalDecision)
	require.Equal(t, "не хватает обоснования", rec.RejectionReason)
}

func TestFinalDecisionRequiresAdmin(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)
	approveByManager(t, env, id)

	err := env.handler.FinalDecision(id, "m1", requestapimodels.FinalDecisionData{Approved: true})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestCancelByUserGuard(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)

	// на этапе согласования руководителем отмена доступна
	err := env.handler.CancelByUser(id, "u1")
	require.NoError(t, err)
	rec, _ := env.store.GetByID(id)
	require.Equal(t, models.RequestStatusCancelledByUser, rec.Status)

	// после финального этапа отмена заявителем недоступна
	id2 := env.createPending(t)
	approveByManager(t, env, id2)
	err = env.handler.CancelByUser(id2, "u1")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelByManager(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)
	approveByManager(t, env, id)

	err := env.handler.CancelByManager(id, "m1", "дубликат заявки")
	require.NoError(t, err)

	rec, _ := env.store.GetByID(id)
	require.Equal(t, models.RequestStatusCancelledByManager, rec.Status)
	require.Equal(t, "дубликат заявки", rec.RejectionReason)
}

func TestTerminalStatusIsFinal(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)
	require.NoError(t, env.handler.CancelByUser(id, "u1"))

	err := env.handler.ManagerDecision(id, "m1", requestapimodels.ManagerDecisionData{
		UserName: "petrov",
		Password: "secret",
		Approved: true,
	})
	require.ErrorIs(t, err, ErrInvalidTransition)

	err = env.handler.ChangeManager(id, "a1", requestapimodels.ChangeManagerData{NewManagerID: "m2"})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestChangeManager(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)
	histBefore := len(env.store.historyFor(id))

	err := env.handler.ChangeManager(id, "a1", requestapimodels.ChangeManagerData{NewManagerID: "m2"})
	require.NoError(t, err)

	rec, _ := env.store.GetByID(id)
	require.Equal(t, models.RequestStatusPendingManagerApproval, rec.Status)
	require.Equal(t, "m2", rec.ManagerID)
	require.NotNil(t, rec.PreviousManagerID)
	require.Equal(t, "m1", *rec.PreviousManagerID)
	require.NotNil(t, rec.ChangedByAdminID)
	require.Equal(t, "a1", *rec.ChangedByAdminID)
	require.NotNil(t, rec.ManagerChangedAt)

	// смена фиксируется двумя записями журнала: фиксация смены и возврат на согласование
	hist := env.store.historyFor(id)
	require.Len(t, hist, histBefore+2)
	require.Equal(t, models.RequestStatusManagerChanged, hist[len(hist)-2].NewStatus)
	require.Equal(t, models.RequestStatusManagerChanged, hist[len(hist)-1].PreviousStatus)
	require.Equal(t, models.RequestStatusPendingManagerApproval, hist[len(hist)-1].NewStatus)
}

func TestChangeManagerRequiresAdmin(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)

	err := env.handler.ChangeManager(id, "m1", requestapimodels.ChangeManagerData{NewManagerID: "m2"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAcknowledgeDisclosure(t *testing.T) {
	env := newTestEnv()
	id, err := env.handler.Create("u1", validCreateData())
	require.NoError(t, err)

	err = env.handler.AcknowledgeDisclosure(id, "u1")
	require.NoError(t, err)

	rec, _ := env.store.GetByID(id)
	require.Equal(t, models.RequestStatusPendingManagerApproval, rec.Status)
	require.True(t, rec.DisclosureAcknowledged)

	// повторное принятие условий недоступно
	err = env.handler.AcknowledgeDisclosure(id, "u1")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestListForExportNotPageCapped(t *testing.T) {
	env := newTestEnv()
	for idx := 0; idx < 150; idx++ {
		env.createPending(t)
	}

	// выгрузка возвращает весь отфильтрованный набор
	list, err := env.handler.ListForExport(requestapimodels.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, list, 150)

	// обычный список остаётся постраничным
	paged, rowCount, err := env.handler.List(requestapimodels.RequestFilter{
		Pagination: apimodels.Pagination{Limit: 500},
	})
	require.NoError(t, err)
	require.Equal(t, int64(150), rowCount)
	require.Len(t, paged, 100)
}

func TestHistoryNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.handler.History("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv()
	id := env.createPending(t)
	approveByManager(t, env, id)
	require.NoError(t, env.handler.FinalDecision(id, "a1", requestapimodels.FinalDecisionData{Approved: true}))
	env.createPending(t)

	view, err := env.handler.Dashboard("m1")
	require.NoError(t, err)
	require.Equal(t, int64(2), view.TotalCount)
	require.Equal(t, int64(1), view.PendingCount)
	require.Equal(t, int64(1), view.ApprovedCount)
	require.Len(t, view.PendingApprovals, 1)
}

package reminder

import (
	"context"
	"testing"
	"time"

	baseworker "access-request-backend/lib/utils/base-worker"
	"access-request-backend/models"
	notifyapimodels "access-request-backend/models/api/notify"
	requestapimodels "access-request-backend/models/api/request"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeReminderStore struct {
	recs    map[string]*dbmodels.AuthorizationRequest
	updates map[string]map[string]interface{}
}

func newFakeReminderStore() *fakeReminderStore {
	return &fakeReminderStore{
		recs:    map[string]*dbmodels.AuthorizationRequest{},
		updates: map[string]map[string]interface{}{},
	}
}

func (f *fakeReminderStore) add(id string, createdAt time.Time, lastReminder *time.Time) {
	f.recs[id] = &dbmodels.AuthorizationRequest{
		BaseModel:          dbmodels.BaseModel{ID: id, CreatedAt: createdAt},
		Status:             models.RequestStatusPendingManagerApproval,
		LastReminderSentAt: lastReminder,
	}
}

func (f *fakeReminderStore) CreateWithHistory(rec dbmodels.AuthorizationRequest, hist []dbmodels.RequestHistory) (string, error) {
	return "", nil
}

func (f *fakeReminderStore) UpdateWithHistory(id string, updMap map[string]interface{}, hist []dbmodels.RequestHistory) error {
	return nil
}

func (f *fakeReminderStore) Update(id string, updMap map[string]interface{}) error {
	f.updates[id] = updMap
	return nil
}

func (f *fakeReminderStore) GetByID(id string) (*dbmodels.AuthorizationRequest, error) {
	return f.recs[id], nil
}

func (f *fakeReminderStore) List(filter requestapimodels.RequestFilter) ([]dbmodels.AuthorizationRequest, error) {
	return nil, nil
}

func (f *fakeReminderStore) ListAll(filter requestapimodels.RequestFilter) ([]dbmodels.AuthorizationRequest, error) {
	return nil, nil
}

func (f *fakeReminderStore) ListCount(filter requestapimodels.RequestFilter) (int64, error) {
	return 0, nil
}

func (f *fakeReminderStore) ListByStatus(status models.RequestStatus) ([]dbmodels.AuthorizationRequest, error) {
	list := []dbmodels.AuthorizationRequest{}
	for _, rec := range f.recs {
		if rec.Status == status {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeReminderStore) CountByStatus(managerID string) (map[models.RequestStatus]int64, int64, error) {
	return nil, 0, nil
}

type fakeReminderNotifier struct {
	dispatched []string
	err        error
}

func (f *fakeReminderNotifier) Dispatch(trigger models.EmailTriggerType, rec dbmodels.AuthorizationRequest) error {
	if f.err != nil {
		return f.err
	}
	f.dispatched = append(f.dispatched, rec.ID)
	return nil
}

func (f *fakeReminderNotifier) CreateTemplate(data notifyapimodels.EmailTemplateData, createdByID string) (string, error) {
	return "", nil
}
func (f *fakeReminderNotifier) GetTemplate(id string) (*notifyapimodels.EmailTemplateView, error) {
	return nil, nil
}
func (f *fakeReminderNotifier) ListTemplates(onlyActive bool) ([]notifyapimodels.EmailTemplateView, error) {
	return nil, nil
}
func (f *fakeReminderNotifier) UpdateTemplate(id string, data notifyapimodels.EmailTemplateData) error {
	return nil
}
func (f *fakeReminderNotifier) DeleteTemplate(id string) error { return nil }

func newWorker(store *fakeReminderStore, notifier *fakeReminderNotifier) *workerImpl {
	return &workerImpl{
		BaseImpl:  *baseworker.NewInstance("reminder", time.Minute, time.Hour),
		store:     store,
		notifier:  notifier,
		threshold: 24 * time.Hour,
	}
}

func TestIsDue(t *testing.T) {
	w := newWorker(newFakeReminderStore(), &fakeReminderNotifier{})
	now := time.Now()

	// свежая заявка - рано
	require.False(t, w.isDue(now.Add(-time.Hour), nil, now))
	// заявка старше порога без напоминаний
	require.True(t, w.isDue(now.Add(-25*time.Hour), nil, now))
	// напоминание уже было недавно - отсчет от него
	recent := now.Add(-time.Hour)
	require.False(t, w.isDue(now.Add(-72*time.Hour), &recent, now))
	// последнее напоминание старше порога
	old := now.Add(-25 * time.Hour)
	require.True(t, w.isDue(now.Add(-72*time.Hour), &old, now))
}

func TestSweepSendsAndMarks(t *testing.T) {
	store := newFakeReminderStore()
	notifier := &fakeReminderNotifier{}
	w := newWorker(store, notifier)
	now := time.Now()
	store.add("due-1", now.Add(-30*time.Hour), nil)
	store.add("fresh-1", now.Add(-time.Hour), nil)

	w.sweep(context.Background())

	require.Equal(t, []string{"due-1"}, notifier.dispatched)
	updMap, ok := store.updates["due-1"]
	require.True(t, ok)
	require.Equal(t, 1, updMap["reminder_count"])
	require.NotNil(t, updMap["last_reminder_sent_at"])
	_, ok = store.updates["fresh-1"]
	require.False(t, ok)
}

func TestSweepIncrementsReminderCount(t *testing.T) {
	store := newFakeReminderStore()
	notifier := &fakeReminderNotifier{}
	w := newWorker(store, notifier)
	now := time.Now()
	last := now.Add(-30 * time.Hour)
	store.add("due-1", now.Add(-90*time.Hour), &last)
	store.recs["due-1"].ReminderCount = 2

	w.sweep(context.Background())

	require.Equal(t, 3, store.updates["due-1"]["reminder_count"])
}

func TestSweepDispatchErrorSkipsMark(t *testing.T) {
	store := newFakeReminderStore()
	notifier := &fakeReminderNotifier{err: errors.New("smtp down")}
	w := newWorker(store, notifier)
	store.add("due-1", time.Now().Add(-30*time.Hour), nil)

	w.sweep(context.Background())

	// без успешной отправки напоминание не фиксируется
	require.Empty(t, store.updates)
}

func TestSweepStopsOnCancelledContext(t *testing.T) {
	store := newFakeReminderStore()
	notifier := &fakeReminderNotifier{}
	w := newWorker(store, notifier)
	store.add("due-1", time.Now().Add(-30*time.Hour), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w.sweep(ctx)

	require.Empty(t, notifier.dispatched)
	require.Empty(t, store.updates)
}

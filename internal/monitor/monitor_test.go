package monitor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigia-precos/internal/models"
)

// --- fakes mínimos para o monitor ---

type fakeStore struct {
	alerts     []models.Alert
	marked     []int64
	pendingErr error
	markErr    error
}

func (f *fakeStore) PendingAlerts() ([]models.Alert, error) {
	if f.pendingErr != nil {
		return nil, f.pendingErr
	}
	var pending []models.Alert
	for _, a := range f.alerts {
		if !a.Notified {
			pending = append(pending, a)
		}
	}
	return pending, nil
}

func (f *fakeStore) MarkNotified(id int64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, id)
	for i := range f.alerts {
		if f.alerts[i].ID == id {
			f.alerts[i].Notified = true
		}
	}
	return nil
}

type fakeScraper struct {
	records map[string]*models.ProductRecord
	errs    map[string]error
	calls   int
}

func (f *fakeScraper) ScrapeProduct(url string) (*models.ProductRecord, error) {
	f.calls++
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	return f.records[url], nil
}

type fakeNotifier struct {
	ok   bool
	sent []string
}

func (f *fakeNotifier) SendPriceAlert(recipient, _ string, _, _ float64, _ string) bool {
	f.sent = append(f.sent, recipient)
	return f.ok
}

func record(price float64, flag models.ConfidenceFlag) *models.ProductRecord {
	return &models.ProductRecord{Name: "Item", PriceNumeric: price, Confidence: flag}
}

func TestRunOnce_PriceDropNotifiesExactlyOnce(t *testing.T) {
	store := &fakeStore{alerts: []models.Alert{
		{ID: 1, ProductURL: "http://example.com/p", TargetPrice: 500, Email: "user@example.com"},
	}}
	s := &fakeScraper{records: map[string]*models.ProductRecord{
		"http://example.com/p": record(450, models.ConfidenceOK),
	}}
	n := &fakeNotifier{ok: true}
	m := New(store, s, n, 0)

	processed, notified, err := m.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 1, notified)
	assert.Equal(t, []int64{1}, store.marked)

	// Passes subsequentes com o mesmo preço (ou maior) não notificam de novo
	for i := 0; i < 3; i++ {
		processed, notified, err = m.RunOnce()
		require.NoError(t, err)
		assert.Zero(t, processed)
		assert.Zero(t, notified)
	}
	assert.Len(t, n.sent, 1)
}

func TestRunOnce_ZeroPriceNeverTriggers(t *testing.T) {
	store := &fakeStore{alerts: []models.Alert{
		{ID: 1, ProductURL: "http://example.com/p", TargetPrice: 500, Email: "user@example.com"},
	}}
	// Preço não parseado: 0 é "desconhecido", nunca uma queda
	s := &fakeScraper{records: map[string]*models.ProductRecord{
		"http://example.com/p": record(0, models.ConfidencePriceMissing),
	}}
	n := &fakeNotifier{ok: true}

	processed, notified, err := New(store, s, n, 0).RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Zero(t, notified)
	assert.Empty(t, n.sent)
	assert.Empty(t, store.marked)
}

func TestRunOnce_BlockedExtractionNeverFalseTriggers(t *testing.T) {
	store := &fakeStore{alerts: []models.Alert{
		{ID: 1, ProductURL: "http://example.com/p", TargetPrice: 500, Email: "user@example.com"},
	}}
	s := &fakeScraper{records: map[string]*models.ProductRecord{
		"http://example.com/p": record(0, models.ConfidenceBlocked),
	}}
	n := &fakeNotifier{ok: true}

	_, notified, err := New(store, s, n, 0).RunOnce()
	require.NoError(t, err)
	assert.Zero(t, notified)
	assert.Empty(t, n.sent)
}

func TestRunOnce_PerAlertIsolation(t *testing.T) {
	// Um alerta com render quebrado não pode derrubar o lote: o segundo
	// ainda é notificado
	store := &fakeStore{alerts: []models.Alert{
		{ID: 1, ProductURL: "http://bad.example.com", TargetPrice: 100, Email: "a@example.com"},
		{ID: 2, ProductURL: "http://good.example.com", TargetPrice: 500, Email: "b@example.com"},
	}}
	s := &fakeScraper{
		errs:    map[string]error{"http://bad.example.com": errors.New("render failure")},
		records: map[string]*models.ProductRecord{"http://good.example.com": record(450, models.ConfidenceOK)},
	}
	n := &fakeNotifier{ok: true}

	processed, notified, err := New(store, s, n, 0).RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Equal(t, 1, notified)
	assert.Equal(t, []string{"b@example.com"}, n.sent)
	assert.Equal(t, []int64{2}, store.marked)
}

func TestRunOnce_NotificationFailureKeepsAlertPending(t *testing.T) {
	store := &fakeStore{alerts: []models.Alert{
		{ID: 1, ProductURL: "http://example.com/p", TargetPrice: 500, Email: "user@example.com"},
	}}
	s := &fakeScraper{records: map[string]*models.ProductRecord{
		"http://example.com/p": record(450, models.ConfidenceOK),
	}}
	n := &fakeNotifier{ok: false}
	m := New(store, s, n, 0)

	_, notified, err := m.RunOnce()
	require.NoError(t, err)
	assert.Zero(t, notified)
	assert.Empty(t, store.marked, "sem envio confirmado o alerta não muda de estado")

	// Transporte voltou: o próximo passe reavalia e notifica
	n.ok = true
	_, notified, err = m.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, notified)
	assert.Equal(t, []int64{1}, store.marked)
}

func TestRunOnce_MarkFailureNotCountedAsNotified(t *testing.T) {
	store := &fakeStore{
		alerts: []models.Alert{
			{ID: 1, ProductURL: "http://example.com/p", TargetPrice: 500, Email: "user@example.com"},
		},
		markErr: errors.New("disk full"),
	}
	s := &fakeScraper{records: map[string]*models.ProductRecord{
		"http://example.com/p": record(450, models.ConfidenceOK),
	}}
	n := &fakeNotifier{ok: true}

	_, notified, err := New(store, s, n, 0).RunOnce()
	require.NoError(t, err)
	assert.Zero(t, notified)
}

func TestRunOnce_EmptyPending(t *testing.T) {
	processed, notified, err := New(&fakeStore{}, &fakeScraper{}, &fakeNotifier{ok: true}, 0).RunOnce()
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.Zero(t, notified)
}

func TestRunOnce_StoreErrorAbortsPass(t *testing.T) {
	store := &fakeStore{pendingErr: errors.New("connection lost")}
	s := &fakeScraper{}

	_, _, err := New(store, s, &fakeNotifier{ok: true}, 0).RunOnce()
	require.Error(t, err)
	assert.Zero(t, s.calls)
}

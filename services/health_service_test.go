package services

import (
	"testing"
	"time"

	"fitcoach/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeUserLowStepsInEvening(t *testing.T) {
	db := testDB(t)
	svc := NewHealthAnalysisService(db, &stubGen{reply: "¡Sal a caminar un rato!"}, NewNotificationService(db, nil, nil))

	now := time.Date(2024, 3, 15, 19, 0, 0, 0, time.Local)
	require.NoError(t, db.Create(&[]models.WearableData{
		{UserID: 1, DataType: models.MetricSteps, Value: 1800, RecordedAt: now.Add(-6 * time.Hour)},
		{UserID: 1, DataType: models.MetricSteps, Value: 1200, RecordedAt: now.Add(-2 * time.Hour)},
	}).Error)

	created, err := svc.AnalyzeUser(1, now)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	var notif models.Notification
	require.NoError(t, db.First(&notif).Error)
	assert.Equal(t, "activity_reminder", notif.Type)
	assert.Equal(t, "¡Tiempo de moverse!", notif.Title)
	assert.Equal(t, "¡Sal a caminar un rato!", notif.Message)
	assert.Contains(t, string(notif.Metadata), "medium")
}

func TestAnalyzeUserStepsQuiet(t *testing.T) {
	db := testDB(t)
	svc := NewHealthAnalysisService(db, &stubGen{}, NewNotificationService(db, nil, nil))

	evening := time.Date(2024, 3, 15, 19, 0, 0, 0, time.Local)
	morning := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

	// goal met: no alert even in the evening
	require.NoError(t, db.Create(&models.WearableData{
		UserID: 1, DataType: models.MetricSteps, Value: 6200, RecordedAt: evening.Add(-time.Hour),
	}).Error)
	created, err := svc.AnalyzeUser(1, evening)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	// low steps but still morning: too early to nag
	require.NoError(t, db.Create(&models.WearableData{
		UserID: 2, DataType: models.MetricSteps, Value: 300, RecordedAt: morning.Add(-time.Hour),
	}).Error)
	created, err = svc.AnalyzeUser(2, morning)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestAnalyzeUserHeartRate(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		readings  []float64
		wantCount int
		wantTitle string
		wantMeta  string
	}{
		{"elevated uses latest reading", []float64{80, 110}, 1, "Frecuencia cardíaca elevada", "high"},
		{"low", []float64{45}, 1, "Frecuencia cardíaca baja", "medium"},
		{"normal range", []float64{75}, 0, "", ""},
		{"boundary 100 is normal", []float64{100}, 0, "", ""},
		{"boundary 50 is normal", []float64{50}, 0, "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := testDB(t)
			svc := NewHealthAnalysisService(db, &stubGen{reply: "Respira hondo."}, NewNotificationService(db, nil, nil))

			for i, v := range tc.readings {
				require.NoError(t, db.Create(&models.WearableData{
					UserID: 1, DataType: models.MetricHeartRate, Value: v,
					RecordedAt: now.Add(time.Duration(i-len(tc.readings)) * time.Minute),
				}).Error)
			}

			created, err := svc.AnalyzeUser(1, now)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCount, created)

			if tc.wantCount > 0 {
				var notif models.Notification
				require.NoError(t, db.First(&notif).Error)
				assert.Equal(t, "heart_rate_alert", notif.Type)
				assert.Equal(t, tc.wantTitle, notif.Title)
				assert.Contains(t, string(notif.Metadata), tc.wantMeta)
			}
		})
	}
}

func TestAnalyzeUserShortSleep(t *testing.T) {
	db := testDB(t)
	svc := NewHealthAnalysisService(db, &stubGen{reply: "Acuéstate más temprano hoy."}, NewNotificationService(db, nil, nil))

	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	lastNight := time.Date(2024, 3, 14, 23, 0, 0, 0, time.Local)

	require.NoError(t, db.Create(&models.WearableData{
		UserID: 1, DataType: models.MetricSleep, Value: 4.5, RecordedAt: lastNight,
	}).Error)

	created, err := svc.AnalyzeUser(1, now)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	var notif models.Notification
	require.NoError(t, db.First(&notif).Error)
	assert.Equal(t, "sleep_alert", notif.Type)
	assert.Equal(t, "Sueño insuficiente", notif.Title)

	// enough sleep: no alert
	db2 := testDB(t)
	svc2 := NewHealthAnalysisService(db2, &stubGen{}, NewNotificationService(db2, nil, nil))
	require.NoError(t, db2.Create(&models.WearableData{
		UserID: 1, DataType: models.MetricSleep, Value: 7.5, RecordedAt: lastNight,
	}).Error)
	created, err = svc2.AnalyzeUser(1, now)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestAnalyzeUserNoData(t *testing.T) {
	// With no rows at all, a morning run finds nothing. An evening run still
	// fires the activity reminder: zero steps is below the goal.
	morning := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	evening := time.Date(2024, 3, 15, 20, 0, 0, 0, time.Local)

	db := testDB(t)
	svc := NewHealthAnalysisService(db, &stubGen{}, NewNotificationService(db, nil, nil))

	created, err := svc.AnalyzeUser(42, morning)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	created, err = svc.AnalyzeUser(42, evening)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	var notif models.Notification
	require.NoError(t, db.First(&notif).Error)
	assert.Equal(t, "activity_reminder", notif.Type)
}

func TestAnalyzeUserGenerationFailureSkipsFinding(t *testing.T) {
	db := testDB(t)
	// the low-steps prompt fails, the heart-rate one succeeds
	gen := &stubGen{failFor: "moverse"}
	svc := NewHealthAnalysisService(db, gen, NewNotificationService(db, nil, nil))

	now := time.Date(2024, 3, 15, 20, 0, 0, 0, time.Local)
	require.NoError(t, db.Create(&[]models.WearableData{
		{UserID: 1, DataType: models.MetricSteps, Value: 900, RecordedAt: now.Add(-3 * time.Hour)},
		{UserID: 1, DataType: models.MetricHeartRate, Value: 120, RecordedAt: now.Add(-time.Hour)},
	}).Error)

	created, err := svc.AnalyzeUser(1, now)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 2, gen.calls) // both findings went through generation

	var notif models.Notification
	require.NoError(t, db.First(&notif).Error)
	assert.Equal(t, "heart_rate_alert", notif.Type)
}

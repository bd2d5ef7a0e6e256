package services

import (
	"fmt"
	"log"
	"time"

	"fitcoach/models"

	"gorm.io/gorm"
)

const healthSystemPrompt = "Eres un asistente de salud amigable que genera mensajes motivadores y útiles. Responde en español de forma concisa (máximo 2 oraciones) y motivadora."

// Hard-coded thresholds of the wearable health check. Unlike scheduled
// reminders there is no persisted last-fired marker: re-running the analysis
// on the same day re-creates the same alerts.
const (
	stepGoalCutoffHour = 18
	stepAlertBelow     = 5000
	heartRateHigh      = 100
	heartRateLow       = 50
	sleepMinimumHours  = 6
)

type healthFinding struct {
	Type     string
	Title    string
	Context  string
	Priority string // "medium" | "high"
}

type HealthAnalysisService struct {
	db       *gorm.DB
	gen      Generator
	notifier *NotificationService
}

func NewHealthAnalysisService(db *gorm.DB, gen Generator, notifier *NotificationService) *HealthAnalysisService {
	return &HealthAnalysisService{db: db, gen: gen, notifier: notifier}
}

func dayStartLocal(t time.Time) time.Time {
	tt := t.In(time.Local)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.Local)
}

// findings evaluates today's synced metrics against the fixed thresholds.
func (h *HealthAnalysisService) findings(userID uint, now time.Time) ([]healthFinding, error) {
	today := dayStartLocal(now)

	var rows []models.WearableData
	if err := h.db.
		Where("user_id = ? AND recorded_at >= ?", userID, today).
		Order("recorded_at asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error fetching wearable data: %w", err)
	}

	var out []healthFinding

	var totalSteps float64
	for _, d := range rows {
		if d.DataType == models.MetricSteps {
			totalSteps += d.Value
		}
	}
	if now.In(time.Local).Hour() >= stepGoalCutoffHour && totalSteps < stepAlertBelow {
		out = append(out, healthFinding{
			Type:     "activity_reminder",
			Title:    "¡Tiempo de moverse!",
			Context:  fmt.Sprintf("Has dado %.0f pasos hoy", totalSteps),
			Priority: "medium",
		})
	}

	var latestHR *models.WearableData
	for i := range rows {
		if rows[i].DataType == models.MetricHeartRate {
			latestHR = &rows[i]
		}
	}
	if latestHR != nil {
		hr := latestHR.Value
		if hr > heartRateHigh {
			out = append(out, healthFinding{
				Type:     "heart_rate_alert",
				Title:    "Frecuencia cardíaca elevada",
				Context:  fmt.Sprintf("Tu frecuencia cardíaca está en %.0f bpm", hr),
				Priority: "high",
			})
		} else if hr < heartRateLow {
			out = append(out, healthFinding{
				Type:     "heart_rate_alert",
				Title:    "Frecuencia cardíaca baja",
				Context:  fmt.Sprintf("Tu frecuencia cardíaca está en %.0f bpm", hr),
				Priority: "medium",
			})
		}
	}

	yesterday := today.AddDate(0, 0, -1)
	var sleepRows []models.WearableData
	if err := h.db.
		Where("user_id = ? AND data_type = ? AND recorded_at >= ? AND recorded_at <= ?",
			userID, models.MetricSleep, yesterday, today).
		Order("recorded_at asc").
		Find(&sleepRows).Error; err != nil {
		return nil, fmt.Errorf("error fetching sleep data: %w", err)
	}
	if len(sleepRows) > 0 {
		lastSleep := sleepRows[len(sleepRows)-1].Value
		if lastSleep < sleepMinimumHours {
			out = append(out, healthFinding{
				Type:     "sleep_alert",
				Title:    "Sueño insuficiente",
				Context:  fmt.Sprintf("Solo dormiste %.1f horas anoche", lastSleep),
				Priority: "medium",
			})
		}
	}

	return out, nil
}

// AnalyzeUser runs the threshold checks for one user and creates one
// notification per breached threshold. Generation failures skip that finding
// only; the returned count reflects notifications actually created.
func (h *HealthAnalysisService) AnalyzeUser(userID uint, now time.Time) (int, error) {
	findings, err := h.findings(userID, now)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, f := range findings {
		tone := "motivador"
		if f.Priority == "high" {
			tone = "urgente pero tranquilizador"
		}
		prompt := fmt.Sprintf("Genera un mensaje %s sobre: %s. Contexto: %s", tone, f.Title, f.Context)

		message, err := h.gen.Generate(healthSystemPrompt, prompt)
		if err != nil {
			log.Printf("health alert %s for user %d: generation failed: %v", f.Type, userID, err)
			continue
		}

		if _, err := h.notifier.Create(userID, f.Type, f.Title, message, map[string]any{
			"context":  f.Context,
			"priority": f.Priority,
		}); err != nil {
			log.Printf("health alert %s for user %d: insert failed: %v", f.Type, userID, err)
			continue
		}
		created++
		log.Printf("Created %s notification for user %d", f.Type, userID)
	}
	return created, nil
}

package services

import (
	"fmt"
	"log"
	"time"

	"fitcoach/models"

	"gorm.io/gorm"
)

const reminderSystemPrompt = "Eres FitCoach AI, un coach de fitness motivador. Genera recordatorios breves, personalizados y motivadores en español."

var reminderTitles = map[string]string{
	models.ReminderWorkout:   "💪 Hora de Entrenar",
	models.ReminderHydration: "💧 Momento de Hidratarse",
	models.ReminderRest:      "😴 Tiempo de Descanso",
}

// Defaults seeded the first time a user opens reminder settings.
var defaultReminderSettings = []models.ReminderSetting{
	{ReminderType: models.ReminderWorkout, Enabled: true, FrequencyHours: 24},
	{ReminderType: models.ReminderHydration, Enabled: true, FrequencyHours: 4},
	{ReminderType: models.ReminderRest, Enabled: true, FrequencyHours: 168},
}

// ReminderDue decides whether a reminder setting should fire at now.
// Disabled settings never fire. A setting that has never fired is due
// immediately. A non-positive frequency is treated as not due.
func ReminderDue(s models.ReminderSetting, now time.Time) bool {
	if !s.Enabled {
		return false
	}
	if s.LastSentAt == nil {
		return true
	}
	if s.FrequencyHours <= 0 {
		return false
	}
	return now.Sub(*s.LastSentAt).Hours() >= float64(s.FrequencyHours)
}

type ReminderService struct {
	db       *gorm.DB
	gen      Generator
	notifier *NotificationService
}

func NewReminderService(db *gorm.DB, gen Generator, notifier *NotificationService) *ReminderService {
	return &ReminderService{db: db, gen: gen, notifier: notifier}
}

// GetSettings returns the user's reminder settings, seeding defaults on
// first access (one row per category).
func (r *ReminderService) GetSettings(userID uint) ([]models.ReminderSetting, error) {
	var settings []models.ReminderSetting
	if err := r.db.Where("user_id = ?", userID).Order("reminder_type").Find(&settings).Error; err != nil {
		return nil, err
	}
	if len(settings) > 0 {
		return settings, nil
	}

	settings = make([]models.ReminderSetting, len(defaultReminderSettings))
	copy(settings, defaultReminderSettings)
	for i := range settings {
		settings[i].UserID = userID
	}
	if err := r.db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

type UpdateReminderInput struct {
	Enabled        *bool   `json:"enabled"`
	FrequencyHours *int    `json:"frequency_hours"`
	PreferredTime  *string `json:"preferred_time"`
}

func (r *ReminderService) UpdateSetting(userID uint, reminderType string, input UpdateReminderInput) (*models.ReminderSetting, error) {
	if _, ok := reminderTitles[reminderType]; !ok {
		return nil, fmt.Errorf("unknown reminder type %q", reminderType)
	}
	if input.FrequencyHours != nil && *input.FrequencyHours <= 0 {
		return nil, fmt.Errorf("frequency_hours must be positive")
	}

	var setting models.ReminderSetting
	if err := r.db.Where("user_id = ? AND reminder_type = ?", userID, reminderType).First(&setting).Error; err != nil {
		return nil, err
	}

	if input.Enabled != nil {
		setting.Enabled = *input.Enabled
	}
	if input.FrequencyHours != nil {
		setting.FrequencyHours = *input.FrequencyHours
	}
	if input.PreferredTime != nil {
		setting.PreferredTime = *input.PreferredTime
	}

	if err := r.db.Save(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// activitySnapshot is the read-only context bundle fed into prompt building.
type activitySnapshot struct {
	Level          int
	TotalPoints    int
	RecentCount    int
	LastActivityAt *time.Time
}

func (r *ReminderService) snapshot(userID uint) activitySnapshot {
	snap := activitySnapshot{Level: 1}

	var activities []models.UserActivity
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Limit(10).Find(&activities).Error; err != nil {
		log.Printf("reminder snapshot: activities query failed for user %d: %v", userID, err)
	}
	snap.RecentCount = len(activities)
	if len(activities) > 0 {
		t := activities[0].CreatedAt
		snap.LastActivityAt = &t
	}

	var reward models.UserReward
	if err := r.db.Where("user_id = ?", userID).First(&reward).Error; err == nil {
		snap.Level = reward.Level
		snap.TotalPoints = reward.TotalPoints
	}
	return snap
}

func reminderPrompt(reminderType string, snap activitySnapshot) string {
	lastActivity := "Sin actividades recientes"
	if snap.LastActivityAt != nil {
		lastActivity = snap.LastActivityAt.Format(time.RFC3339)
	}
	userContext := fmt.Sprintf(
		"Usuario con nivel %d y %d puntos.\nActividades recientes: %d\nÚltima actividad: %s\n",
		snap.Level, snap.TotalPoints, snap.RecentCount, lastActivity,
	)

	switch reminderType {
	case models.ReminderWorkout:
		return fmt.Sprintf("Genera un recordatorio motivador y personalizado para hacer ejercicio. El usuario tiene este historial: %s. Sé breve (máximo 2 líneas) y específico basándote en sus actividades recientes.", userContext)
	case models.ReminderHydration:
		return fmt.Sprintf("Genera un recordatorio amigable sobre hidratación. Contexto del usuario: %s. Sé breve (máximo 2 líneas) y motivador.", userContext)
	default: // rest
		return fmt.Sprintf("Genera un recordatorio sobre la importancia del descanso y recuperación. Contexto: %s. Sé breve (máximo 2 líneas) y empático.", userContext)
	}
}

// ProcessDueReminders iterates every enabled setting, fires the due ones and
// returns how many were sent plus how many were checked. A single setting's
// failure is logged and skipped so the rest of the batch still runs.
func (r *ReminderService) ProcessDueReminders(now time.Time) (sent int, checked int, err error) {
	var settings []models.ReminderSetting
	if err := r.db.Where("enabled = ?", true).Find(&settings).Error; err != nil {
		return 0, 0, fmt.Errorf("error fetching reminder settings: %w", err)
	}

	for _, s := range settings {
		if !ReminderDue(s, now) {
			continue
		}
		if err := r.fire(s, now); err != nil {
			log.Printf("reminder %s for user %d failed: %v", s.ReminderType, s.UserID, err)
			continue
		}
		sent++
		log.Printf("Sent %s reminder to user %d", s.ReminderType, s.UserID)
	}
	return sent, len(settings), nil
}

// fire composes and persists one reminder notification. last_sent_at is only
// stamped after the notification exists, so a failed generation leaves the
// setting eligible for the next run.
func (r *ReminderService) fire(s models.ReminderSetting, now time.Time) error {
	snap := r.snapshot(s.UserID)

	message, err := r.gen.Generate(reminderSystemPrompt, reminderPrompt(s.ReminderType, snap))
	if err != nil {
		return err
	}

	if _, err := r.notifier.Create(s.UserID, "reminder", reminderTitles[s.ReminderType], message, map[string]any{
		"reminder_type": s.ReminderType,
		"ai_generated":  true,
	}); err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return r.db.Model(&models.ReminderSetting{}).
		Where("id = ?", s.ID).
		Update("last_sent_at", now).Error
}

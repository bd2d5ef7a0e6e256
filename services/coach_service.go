package services

import (
	"fmt"
	"strings"

	"fitcoach/models"

	"gorm.io/gorm"
)

const coachSystemTemplate = `Eres un coach personal de salud y fitness altamente cualificado. Tu nombre es "FitCoach AI".

Tu rol es analizar los datos del usuario y proporcionar:
1. Recomendaciones personalizadas sobre entrenamientos basadas en su historial
2. Consejos de nutrición adaptados a sus objetivos
3. Estrategias de recuperación y descanso
4. Contenido educativo relevante
5. Objetivos realistas y alcanzables

Datos del usuario:
%s

Características de tu comunicación:
- Sé motivador pero realista
- Usa un tono amigable y profesional
- Proporciona datos específicos y cuantificables
- Pregunta sobre las necesidades y metas del usuario
- Celebra los logros y progreso
- Adapta tus recomendaciones al nivel actual del usuario

IMPORTANTE: Responde en español y mantén las respuestas concisas pero informativas.`

// CoachService drives the AI-coach chat: it assembles the user's context,
// replays the conversation history and persists both sides of each exchange.
type CoachService struct {
	db  *gorm.DB
	gen Generator
}

func NewCoachService(db *gorm.DB, gen Generator) *CoachService {
	return &CoachService{db: db, gen: gen}
}

func (c *CoachService) CreateConversation(userID uint, title string) (*models.CoachConversation, error) {
	conv := &models.CoachConversation{UserID: userID, Title: title}
	if err := c.db.Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

func (c *CoachService) ListConversations(userID uint) ([]models.CoachConversation, error) {
	var convs []models.CoachConversation
	err := c.db.Where("user_id = ?", userID).Order("updated_at desc").Find(&convs).Error
	return convs, err
}

func (c *CoachService) conversation(userID, convID uint) (*models.CoachConversation, error) {
	var conv models.CoachConversation
	if err := c.db.Where("id = ? AND user_id = ?", convID, userID).First(&conv).Error; err != nil {
		return nil, fmt.Errorf("conversation not found")
	}
	return &conv, nil
}

func (c *CoachService) ListMessages(userID, convID uint) ([]models.CoachMessage, error) {
	if _, err := c.conversation(userID, convID); err != nil {
		return nil, err
	}
	var msgs []models.CoachMessage
	err := c.db.Where("conversation_id = ?", convID).Order("created_at asc").Find(&msgs).Error
	return msgs, err
}

func (c *CoachService) buildContext(userID uint, email string) string {
	var sb strings.Builder

	level, points := 1, 0
	var reward models.UserReward
	if err := c.db.Where("user_id = ?", userID).First(&reward).Error; err == nil {
		level = reward.Level
		points = reward.TotalPoints
	}

	var unlocked int64
	c.db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&unlocked)

	fmt.Fprintf(&sb, "Usuario: %s\n", email)
	fmt.Fprintf(&sb, "Nivel actual: %d\n", level)
	fmt.Fprintf(&sb, "Puntos totales: %d\n", points)
	fmt.Fprintf(&sb, "Logros desbloqueados: %d\n\n", unlocked)

	sb.WriteString("Actividades recientes:\n")
	var activities []models.UserActivity
	c.db.Where("user_id = ?", userID).Order("created_at desc").Limit(10).Find(&activities)
	if len(activities) == 0 {
		sb.WriteString("Sin actividades recientes\n")
	}
	for _, a := range activities {
		desc := a.Description
		if desc == "" {
			desc = "Sin descripción"
		}
		fmt.Fprintf(&sb, "- %s: %s (%d puntos)\n", a.ActivityType, desc, a.PointsEarned)
	}
	return sb.String()
}

// SendMessage asks the coach for a reply and saves both messages. Nothing is
// persisted when generation fails, so the user can simply retry.
func (c *CoachService) SendMessage(userID uint, email string, convID uint, content string) (string, error) {
	conv, err := c.conversation(userID, convID)
	if err != nil {
		return "", err
	}

	var history []models.CoachMessage
	if err := c.db.Where("conversation_id = ?", conv.ID).Order("created_at asc").Find(&history).Error; err != nil {
		return "", err
	}
	turns := make([]ChatTurn, 0, len(history))
	for _, m := range history {
		turns = append(turns, ChatTurn{Role: m.Role, Content: m.Content})
	}

	system := fmt.Sprintf(coachSystemTemplate, c.buildContext(userID, email))
	reply, err := c.gen.Chat(system, turns, content)
	if err != nil {
		return "", err
	}

	msgs := []models.CoachMessage{
		{ConversationID: conv.ID, Role: "user", Content: content},
		{ConversationID: conv.ID, Role: "assistant", Content: reply},
	}
	if err := c.db.Create(&msgs).Error; err != nil {
		return "", err
	}

	return reply, nil
}

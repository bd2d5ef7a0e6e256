package services

import (
	"strings"
	"testing"

	"fitcoach/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingGen captures the arguments of the last Chat call.
type recordingGen struct {
	stubGen
	lastSystem  string
	lastHistory []ChatTurn
	lastPrompt  string
}

func (r *recordingGen) Chat(systemPrompt string, history []ChatTurn, userPrompt string) (string, error) {
	r.lastSystem = systemPrompt
	r.lastHistory = history
	r.lastPrompt = userPrompt
	return r.stubGen.Chat(systemPrompt, history, userPrompt)
}

func TestCoachSendMessagePersistsBothSides(t *testing.T) {
	db := testDB(t)
	gen := &recordingGen{stubGen: stubGen{reply: "Te recomiendo empezar con 3 sesiones semanales."}}
	svc := NewCoachService(db, gen)

	conv, err := svc.CreateConversation(5, "Plan de entrenamiento")
	require.NoError(t, err)

	reply, err := svc.SendMessage(5, "ana@example.com", conv.ID, "¿Cómo empiezo?")
	require.NoError(t, err)
	assert.Equal(t, "Te recomiendo empezar con 3 sesiones semanales.", reply)

	msgs, err := svc.ListMessages(5, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "¿Cómo empiezo?", msgs[0].Content)
	assert.Equal(t, "assistant", msgs[1].Role)

	// context is injected into the system prompt
	assert.Contains(t, gen.lastSystem, "ana@example.com")
	assert.Contains(t, gen.lastSystem, "Sin actividades recientes")
	assert.Empty(t, gen.lastHistory)

	// the second exchange replays the first one as history
	_, err = svc.SendMessage(5, "ana@example.com", conv.ID, "¿Y la dieta?")
	require.NoError(t, err)
	require.Len(t, gen.lastHistory, 2)
	assert.Equal(t, "user", gen.lastHistory[0].Role)
	assert.Equal(t, "assistant", gen.lastHistory[1].Role)
}

func TestCoachSendMessageFailureKeepsHistoryClean(t *testing.T) {
	db := testDB(t)
	gen := &stubGen{failFor: "imposible"}
	svc := NewCoachService(db, gen)

	conv, err := svc.CreateConversation(1, "")
	require.NoError(t, err)

	_, err = svc.SendMessage(1, "u@example.com", conv.ID, "algo imposible")
	require.Error(t, err)

	msgs, err := svc.ListMessages(1, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestCoachConversationOwnership(t *testing.T) {
	db := testDB(t)
	svc := NewCoachService(db, &stubGen{})

	conv, err := svc.CreateConversation(1, "mía")
	require.NoError(t, err)

	_, err = svc.ListMessages(2, conv.ID)
	require.Error(t, err)

	_, err = svc.SendMessage(2, "intruso@example.com", conv.ID, "hola")
	require.Error(t, err)
}

func TestCoachContextIncludesActivity(t *testing.T) {
	db := testDB(t)
	gen := &recordingGen{}
	svc := NewCoachService(db, gen)

	require.NoError(t, db.Create(&models.UserReward{UserID: 1, TotalPoints: 740, Level: 2}).Error)
	require.NoError(t, db.Create(&models.UserActivity{UserID: 1, ActivityType: "running", Description: "5k matutino", PointsEarned: 30}).Error)

	conv, err := svc.CreateConversation(1, "")
	require.NoError(t, err)
	_, err = svc.SendMessage(1, "ana@example.com", conv.ID, "hola")
	require.NoError(t, err)

	assert.Contains(t, gen.lastSystem, "Nivel actual: 2")
	assert.Contains(t, gen.lastSystem, "Puntos totales: 740")
	assert.Contains(t, gen.lastSystem, "- running: 5k matutino (30 puntos)")
	assert.False(t, strings.Contains(gen.lastSystem, "Sin actividades recientes"))
}

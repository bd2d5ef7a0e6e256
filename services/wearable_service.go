package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"fitcoach/models"

	"gorm.io/gorm"
)

// WearableService exchanges OAuth codes with fitness providers and pulls
// daily metrics into normalized wearable_data rows.
type WearableService struct {
	db      *gorm.DB
	client  *http.Client
	health  *HealthAnalysisService
	baseURL string // Fitbit API root, overridable in tests
}

func NewWearableService(db *gorm.DB, health *HealthAnalysisService) *WearableService {
	return &WearableService{
		db:      db,
		client:  &http.Client{Timeout: 15 * time.Second},
		health:  health,
		baseURL: "https://api.fitbit.com",
	}
}

type providerTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
}

// HandleOAuthCallback exchanges the authorization code and upserts the
// provider connection for the user.
func (w *WearableService) HandleOAuthCallback(userID uint, provider, code string) (*models.WearableConnection, error) {
	var tokens *providerTokens
	var err error

	switch provider {
	case "fitbit":
		tokens, err = w.exchangeFitbitToken(code)
	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
	if err != nil {
		return nil, err
	}

	meta, _ := json.Marshal(map[string]string{"scope": tokens.Scope})
	conn := models.WearableConnection{
		UserID:         userID,
		Provider:       provider,
		AccessToken:    tokens.AccessToken,
		RefreshToken:   tokens.RefreshToken,
		TokenExpiresAt: time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second),
		IsActive:       true,
		Metadata:       meta,
	}

	// Upsert by (user, provider)
	if err := w.db.
		Where("user_id = ? AND provider = ?", userID, provider).
		Assign(conn).
		FirstOrCreate(&conn).Error; err != nil {
		return nil, err
	}
	return &conn, nil
}

func (w *WearableService) exchangeFitbitToken(code string) (*providerTokens, error) {
	clientID := os.Getenv("FITBIT_CLIENT_ID")
	clientSecret := os.Getenv("FITBIT_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("fitbit credentials not configured")
	}

	form := url.Values{}
	form.Set("client_id", clientID)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", os.Getenv("FITBIT_REDIRECT_URI"))
	form.Set("code", code)

	req, err := http.NewRequest("POST", w.baseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(clientID + ":" + clientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fitbit token request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fitbit token exchange failed (%d): %s", resp.StatusCode, string(body))
	}

	var tokens providerTokens
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("decode fitbit token response: %w", err)
	}
	return &tokens, nil
}

func (w *WearableService) ListConnections(userID uint) ([]models.WearableConnection, error) {
	var conns []models.WearableConnection
	err := w.db.Where("user_id = ?", userID).Find(&conns).Error
	return conns, err
}

func (w *WearableService) ListData(userID uint, dataType string, since time.Time) ([]models.WearableData, error) {
	q := w.db.Where("user_id = ? AND recorded_at >= ?", userID, since)
	if dataType != "" {
		q = q.Where("data_type = ?", dataType)
	}
	var rows []models.WearableData
	err := q.Order("recorded_at asc").Find(&rows).Error
	return rows, err
}

// Sync pulls today's metrics for one connection, stores them and kicks off
// the health analysis in the background.
func (w *WearableService) Sync(userID, connectionID uint) (int, error) {
	var conn models.WearableConnection
	if err := w.db.Where("id = ? AND user_id = ?", connectionID, userID).First(&conn).Error; err != nil {
		return 0, fmt.Errorf("connection not found")
	}

	var rows []models.WearableData
	switch conn.Provider {
	case "fitbit":
		rows = w.syncFitbit(&conn)
	case "garmin":
		// Garmin requires OAuth 1.0a; not implemented.
		log.Println("Garmin sync not yet implemented")
	default:
		return 0, fmt.Errorf("unsupported provider %q", conn.Provider)
	}

	if len(rows) > 0 {
		if err := w.db.Create(&rows).Error; err != nil {
			return 0, fmt.Errorf("error storing wearable data: %w", err)
		}
	}

	now := time.Now()
	if err := w.db.Model(&models.WearableConnection{}).
		Where("id = ?", conn.ID).
		Update("last_sync_at", now).Error; err != nil {
		log.Printf("error updating last_sync_at for connection %d: %v", conn.ID, err)
	}

	if len(rows) > 0 && w.health != nil {
		go func() {
			if _, err := w.health.AnalyzeUser(userID, time.Now()); err != nil {
				log.Printf("error triggering health analysis for user %d: %v", userID, err)
			}
		}()
	}

	return len(rows), nil
}

// syncFitbit fetches today's activity summary, resting heart rate and sleep.
// Each block is independent: a failed call skips that metric only.
func (w *WearableService) syncFitbit(conn *models.WearableConnection) []models.WearableData {
	today := time.Now().Format("2006-01-02")
	now := time.Now()
	var data []models.WearableData

	sample := func(dataType string, value float64, unit string) models.WearableData {
		return models.WearableData{
			UserID:       conn.UserID,
			ConnectionID: conn.ID,
			DataType:     dataType,
			Value:        value,
			Unit:         unit,
			RecordedAt:   now,
			Source:       "fitbit",
		}
	}

	var activities struct {
		Summary *struct {
			Steps             float64 `json:"steps"`
			CaloriesOut       float64 `json:"caloriesOut"`
			VeryActiveMinutes float64 `json:"veryActiveMinutes"`
			Distances         []struct {
				Distance float64 `json:"distance"`
			} `json:"distances"`
		} `json:"summary"`
	}
	if err := w.fitbitGet(conn.AccessToken, "/1/user/-/activities/date/"+today+".json", &activities); err != nil {
		log.Printf("fitbit activities fetch failed: %v", err)
	} else if activities.Summary != nil {
		s := activities.Summary
		data = append(data,
			sample(models.MetricSteps, s.Steps, "steps"),
			sample(models.MetricCalories, s.CaloriesOut, "kcal"),
			sample(models.MetricActiveMinutes, s.VeryActiveMinutes, "minutes"),
		)
		var distance float64
		if len(s.Distances) > 0 {
			distance = s.Distances[0].Distance
		}
		data = append(data, sample(models.MetricDistance, distance, "km"))
	}

	var heart struct {
		ActivitiesHeart []struct {
			Value struct {
				RestingHeartRate float64 `json:"restingHeartRate"`
			} `json:"value"`
		} `json:"activities-heart"`
	}
	if err := w.fitbitGet(conn.AccessToken, "/1/user/-/activities/heart/date/"+today+"/1d.json", &heart); err != nil {
		log.Printf("fitbit heart rate fetch failed: %v", err)
	} else if len(heart.ActivitiesHeart) > 0 && heart.ActivitiesHeart[0].Value.RestingHeartRate > 0 {
		data = append(data, sample(models.MetricHeartRate, heart.ActivitiesHeart[0].Value.RestingHeartRate, "bpm"))
	}

	var sleep struct {
		Summary struct {
			TotalMinutesAsleep float64 `json:"totalMinutesAsleep"`
		} `json:"summary"`
	}
	if err := w.fitbitGet(conn.AccessToken, "/1.2/user/-/sleep/date/"+today+".json", &sleep); err != nil {
		log.Printf("fitbit sleep fetch failed: %v", err)
	} else if sleep.Summary.TotalMinutesAsleep > 0 {
		data = append(data, sample(models.MetricSleep, sleep.Summary.TotalMinutesAsleep/60, "hours"))
	}

	return data
}

func (w *WearableService) fitbitGet(accessToken, path string, out any) error {
	req, err := http.NewRequest("GET", w.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("fitbit api error (%d): %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

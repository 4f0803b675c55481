package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"buddycheck/backend/config"
	"buddycheck/backend/models"
	"buddycheck/backend/routes"
	"buddycheck/backend/store"
	"buddycheck/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() (*fiber.App, *store.MemoryStore, *config.Config) {
	cfg := &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}
	st := store.NewMemoryStore()
	logger := log.New(io.Discard, "", 0)

	app := fiber.New()
	routes.SetupRoutes(app, st, cfg, logger)
	return app, st, cfg
}

func seedUser(st *store.MemoryStore, name string) models.User {
	user := models.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     name + "@example.com",
		CreatedAt: time.Now().UTC(),
	}
	st.Users = append(st.Users, user)
	return user
}

func seedProjectWith(st *store.MemoryStore, users ...models.User) models.Project {
	project := models.Project{
		ID:          uuid.New(),
		Title:       "Daily pages",
		CreatedByID: users[0].ID,
		CreatedBy:   users[0],
		CreatedAt:   time.Now().UTC(),
	}
	st.Projects = append(st.Projects, project)
	for i, user := range users {
		role := models.RoleCollaborator
		if i == 0 {
			role = models.RoleOwner
		}
		st.Collaborators = append(st.Collaborators, models.Collaborator{
			ID:        uuid.New(),
			ProjectID: project.ID,
			UserID:    user.ID,
			User:      user,
			Role:      role,
			JoinedAt:  time.Now().UTC(),
		})
	}
	return project
}

func authToken(t *testing.T, cfg *config.Config, userID uuid.UUID) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(userID, cfg)
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, resp io.Reader) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	return body
}

func TestLoginProvisionsUser(t *testing.T) {
	app, _, _ := newTestApp()

	loginData := map[string]string{
		"email": "alice@example.com",
		"name":  "Alice",
	}
	jsonData, _ := json.Marshal(loginData)

	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.NotEmpty(t, body["token"])
	firstID := body["user"].(map[string]interface{})["id"]

	// Logging in again must return the same provisioned user.
	req = httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body = decodeBody(t, resp.Body)
	assert.Equal(t, firstID, body["user"].(map[string]interface{})["id"])
}

func TestLoginRequiresEmail(t *testing.T) {
	app, _, _ := newTestApp()

	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(`{"name":"Alice"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetProfile(t *testing.T) {
	app, st, cfg := newTestApp()
	alice := seedUser(st, "alice")

	req := httptest.NewRequest("GET", "/api/user/profile", nil)
	req.Header.Set("Authorization", authToken(t, cfg, alice.ID))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, alice.Email, body["email"])
}

func TestGetProfileUnauthorized(t *testing.T) {
	app, _, _ := newTestApp()

	req := httptest.NewRequest("GET", "/api/user/profile", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetProjectsAnnotatesStreak(t *testing.T) {
	app, st, cfg := newTestApp()
	alice := seedUser(st, "alice")
	bob := seedUser(st, "bob")
	project := seedProjectWith(st, alice, bob)

	// Only Bob checked in today: the day is incomplete.
	st.Checkins = append(st.Checkins, models.Checkin{
		ID:        uuid.New(),
		ProjectID: project.ID,
		UserID:    bob.ID,
		CreatedAt: time.Now().UTC(),
	})

	req := httptest.NewRequest("GET", "/api/projects", nil)
	req.Header.Set("Authorization", authToken(t, cfg, alice.ID))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)

	entry := data[0].(map[string]interface{})
	assert.Equal(t, project.Title, entry["title"])
	assert.Equal(t, false, entry["today_complete"])
	assert.Equal(t, float64(0), entry["streak"])
	assert.Len(t, entry["collaborators"].([]interface{}), 2)
}

func TestCheckInAndUnCheckInFlow(t *testing.T) {
	app, st, cfg := newTestApp()
	alice := seedUser(st, "alice")
	project := seedProjectWith(st, alice)
	token := authToken(t, cfg, alice.ID)

	checkInURL := "/api/projects/" + project.ID.String() + "/checkin"

	req := httptest.NewRequest("POST", checkInURL, nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, false, meta["already_checked_in"])

	entry := body["data"].(map[string]interface{})
	assert.Equal(t, true, entry["today_complete"])
	assert.Equal(t, float64(1), entry["streak"])
	require.Len(t, st.Checkins, 1)

	// Second check-in the same day: no new row, flagged as already done.
	req = httptest.NewRequest("POST", checkInURL, nil)
	req.Header.Set("Authorization", token)

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body = decodeBody(t, resp.Body)
	meta = body["meta"].(map[string]interface{})
	assert.Equal(t, true, meta["already_checked_in"])
	assert.Len(t, st.Checkins, 1)

	// Retract it.
	req = httptest.NewRequest("POST", "/api/projects/"+project.ID.String()+"/uncheckin", nil)
	req.Header.Set("Authorization", token)

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body = decodeBody(t, resp.Body)
	meta = body["meta"].(map[string]interface{})
	assert.Equal(t, false, meta["not_checked_in"])

	entry = body["data"].(map[string]interface{})
	assert.Equal(t, false, entry["today_complete"])
	assert.Empty(t, st.Checkins)

	// Retracting again is a benign no-op.
	req = httptest.NewRequest("POST", "/api/projects/"+project.ID.String()+"/uncheckin", nil)
	req.Header.Set("Authorization", token)

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body = decodeBody(t, resp.Body)
	meta = body["meta"].(map[string]interface{})
	assert.Equal(t, true, meta["not_checked_in"])
}

func TestCheckInUnknownProject(t *testing.T) {
	app, st, cfg := newTestApp()
	alice := seedUser(st, "alice")

	req := httptest.NewRequest("POST", "/api/projects/"+uuid.NewString()+"/checkin", nil)
	req.Header.Set("Authorization", authToken(t, cfg, alice.ID))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest("POST", "/api/projects/not-a-uuid/checkin", nil)
	req.Header.Set("Authorization", authToken(t, cfg, alice.ID))

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"davefit/internal/domain"
	"davefit/internal/repository"
	"davefit/internal/service"
)

type mockProfileRepo struct {
	profiles map[string]domain.Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]domain.Profile)}
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (domain.Profile, error) {
	profile, ok := m.profiles[userID]
	if !ok {
		return domain.Profile{}, pgx.ErrNoRows
	}
	return profile, nil
}

func (m *mockProfileRepo) Upsert(_ context.Context, userID, email string, input repository.ProfileUpdate) (domain.Profile, error) {
	profile := m.profiles[userID]
	profile.UserID = userID
	profile.Email = email
	if input.FullName != nil {
		profile.FullName = input.FullName
	}
	if input.BirthDate != nil {
		profile.BirthDate = input.BirthDate
	}
	if input.Sex != nil {
		profile.Sex = domain.ParseSex(*input.Sex)
	}
	if input.WeightKG != nil {
		profile.WeightKG = input.WeightKG
	}
	if input.HeightCM != nil {
		profile.HeightCM = input.HeightCM
	}
	if input.Goal != nil {
		profile.Goal = domain.ParseGoal(*input.Goal)
	}
	if input.Level != nil {
		profile.Level = domain.ParseLevel(*input.Level)
	}
	if input.Location != nil {
		profile.Location = domain.ParseLocation(*input.Location)
	}
	if input.TrainingDaysPerWeek != nil {
		profile.TrainingDaysPerWeek = *input.TrainingDaysPerWeek
	}
	m.profiles[userID] = profile
	return profile, nil
}

type mockRoutineRepo struct {
	routines []domain.RoutineCandidate
}

func (m *mockRoutineRepo) ListPublic(_ context.Context, _ int) ([]domain.RoutineCandidate, error) {
	return m.routines, nil
}

type mockWorkoutRepo struct {
	entries []domain.WorkoutLogEntry
}

func (m *mockWorkoutRepo) Create(_ context.Context, entry domain.WorkoutLogEntry) error {
	m.entries = append([]domain.WorkoutLogEntry{entry}, m.entries...)
	return nil
}

func (m *mockWorkoutRepo) ListRecent(_ context.Context, _ string, limit int) ([]domain.WorkoutLogEntry, error) {
	if limit > 0 && len(m.entries) > limit {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

type testEnv struct {
	router   *gin.Engine
	jwt      *service.JWTService
	profiles *mockProfileRepo
	routines *mockRoutineRepo
	workouts *mockWorkoutRepo
}

func setupRouter(t *testing.T, routesPolicy service.RateLimitPolicy) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	env := &testEnv{
		jwt:      service.NewJWTService("secret", 15*time.Minute, ""),
		profiles: newMockProfileRepo(),
		routines: &mockRoutineRepo{},
		workouts: &mockWorkoutRepo{},
	}

	limiter := service.NewFixedWindowLimiter()
	coachSvc := service.NewCoachService(logger, env.profiles, env.routines, env.workouts, service.CoachOptions{})
	profileSvc := service.NewProfileService(logger, env.profiles, limiter, service.ProfileUpdateRateLimitPolicy)

	env.router = NewRouter(RouterDeps{
		Logger:       logger,
		JWT:          env.jwt,
		Limiter:      limiter,
		RoutesPolicy: routesPolicy,
		CoachH:       NewCoachHandler(logger, coachSvc),
		ProfileH:     NewProfileHandler(logger, profileSvc),
	})
	return env
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.jwt.GenerateAccessToken(domain.Identity{ID: userID, Email: userID + "@example.com"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func performRequest(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestRouterHealth(t *testing.T) {
	env := setupRouter(t, service.DefaultRateLimitPolicy)

	rec := performRequest(env.router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestNutrition_RequiresToken(t *testing.T) {
	env := setupRouter(t, service.DefaultRateLimitPolicy)

	rec := performRequest(env.router, http.MethodGet, "/me/nutrition", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestNutrition_ProfileNotFound(t *testing.T) {
	env := setupRouter(t, service.DefaultRateLimitPolicy)

	rec := performRequest(env.router, http.MethodGet, "/me/nutrition", env.token(t, "u1"), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestNutrition_StoredProfile(t *testing.T) {
	env := setupRouter(t, service.DefaultRateLimitPolicy)
	birth := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	env.profiles.profiles["u1"] = domain.Profile{
		UserID:              "u1",
		WeightKG:            floatPtr(70),
		HeightCM:            floatPtr(175),
		BirthDate:           &birth,
		Sex:                 domain.SexMale,
		Goal:                domain.GoalTone,
		TrainingDaysPerWeek: 4,
	}

	rec := performRequest(env.router, http.MethodGet, "/me/nutrition", env.token(t, "u1"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Nutrition domain.NutritionSummary `json:"nutrition"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Nutrition.Target.Calories == nil || body.Nutrition.DailyExpenditure == nil {
		t.Fatalf("expected computable target, got %+v", body.Nutrition)
	}
	if got, want := *body.Nutrition.Target.Calories, *body.Nutrition.DailyExpenditure-400; got != want {
		t.Fatalf("expected tone target %d, got %d", want, got)
	}
}

func TestPreviewNutrition_IncompleteProfile(t *testing.T) {
	env := setupRouter(t, service.DefaultRateLimitPolicy)

	rec := performRequest(env.router, http.MethodPost, "/nutrition/calculate", "", map[string]any{
		"weight_kg": 70,
		"height_cm": 175,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Nutrition domain.NutritionSummary `json:"nutrition"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Nutrition.Target.Calories != nil {
		t.Fatalf("expected not computable target, got %d", *body.Nutrition.Target.Calories)
	}
	if body.Nutrition.BodyMassIndex == nil {
		t.Fatalf("expected body mass index to be present")
	}
}

func TestPreviewNutrition_RejectsUnknownGoal(t *testing.T) {
	env := setupRouter(t, service.DefaultRateLimitPolicy)

	rec := performRequest(env.router, http.MethodPost, "/nutrition/calculate", "", map[string]any{
		"goal": "bulk_forever",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestUpdateProfile_ValidatesEnums(t *testing.T) {
	env := setupRouter(t, service.DefaultRateLimitPolicy)

	rec := performRequest(env.router, http.MethodPut, "/me/profile", env.token(t, "u1"), map[string]any{
		"level": "elite",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	env := setupRouter(t, service.DefaultRateLimitPolicy)
	env.profiles.profiles["u1"] = domain.Profile{UserID: "u1", Goal: domain.GoalMaintain}

	rec := performRequest(env.router, http.MethodPut, "/me/profile", env.token(t, "u1"), map[string]any{
		"weight_kg":              72.5,
		"training_days_per_week": 3.9,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	stored := env.profiles.profiles["u1"]
	if stored.Goal != domain.GoalMaintain {
		t.Fatalf("expected goal to be preserved, got %q", stored.Goal)
	}
	if stored.TrainingDaysPerWeek != 3 {
		t.Fatalf("expected days to be floored to 3, got %d", stored.TrainingDaysPerWeek)
	}
	if stored.WeightKG == nil || *stored.WeightKG != 72.5 {
		t.Fatalf("expected weight 72.5, got %v", stored.WeightKG)
	}
}

func TestUpdateProfile_RateLimited(t *testing.T) {
	env := setupRouter(t, service.DefaultRateLimitPolicy)
	token := env.token(t, "u1")

	for i := 0; i < service.ProfileUpdateRateLimitPolicy.Limit; i++ {
		rec := performRequest(env.router, http.MethodPut, "/me/profile", token, map[string]any{"goal": "tone"})
		if rec.Code != http.StatusOK {
			t.Fatalf("call %d: expected status 200, got %d", i+1, rec.Code)
		}
	}

	rec := performRequest(env.router, http.MethodPut, "/me/profile", token, map[string]any{"goal": "tone"})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
}

func TestRoutesRateLimit_SetsRemainingHeader(t *testing.T) {
	env := setupRouter(t, service.RateLimitPolicy{Limit: 2, Window: time.Minute})
	token := env.token(t, "u1")

	first := performRequest(env.router, http.MethodGet, "/me/nutrition", token, nil)
	if got := first.Header().Get("X-RateLimit-Remaining"); got != "1" {
		t.Fatalf("expected remaining 1, got %q", got)
	}
	performRequest(env.router, http.MethodGet, "/me/nutrition", token, nil)

	rec := performRequest(env.router, http.MethodGet, "/me/nutrition", token, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("expected remaining 0, got %q", got)
	}
}

func TestRecommendations_FatigueAfterLoggedWorkout(t *testing.T) {
	env := setupRouter(t, service.DefaultRateLimitPolicy)
	env.profiles.profiles["u1"] = domain.Profile{
		UserID:   "u1",
		Goal:     domain.GoalTone,
		Level:    domain.LevelIntermediate,
		Location: domain.LocationHome,
	}
	env.routines.routines = []domain.RoutineCandidate{
		{ID: "r1", Name: "Mobility", Level: domain.LevelBeginner, Location: domain.LocationBoth, EstimatedMinutes: intPtr(20)},
		{ID: "r2", Name: "Hypertrophy", Level: domain.LevelIntermediate, Location: domain.LocationHome, EstimatedMinutes: intPtr(60)},
	}
	token := env.token(t, "u1")

	rec := performRequest(env.router, http.MethodPost, "/me/workouts", token, map[string]any{
		"duration_minutes": 45,
		"perceived_effort": 4,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = performRequest(env.router, http.MethodGet, "/me/recommendations", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Recommendations) != 1 || body.Recommendations[0].Routine.ID != "r1" {
		t.Fatalf("expected only the short routine, got %+v", body.Recommendations)
	}
	if body.Recommendations[0].Adjustment == "" {
		t.Fatalf("expected a load adjustment hint")
	}
}

func TestLogWorkout_RejectsEffortOutOfRange(t *testing.T) {
	env := setupRouter(t, service.DefaultRateLimitPolicy)

	rec := performRequest(env.router, http.MethodPost, "/me/workouts", env.token(t, "u1"), map[string]any{
		"perceived_effort": 9,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestUpdateProfile_BlankEnumLeavesValueUnchanged(t *testing.T) {
	env := setupRouter(t, service.DefaultRateLimitPolicy)
	env.profiles.profiles["u1"] = domain.Profile{UserID: "u1", Sex: domain.SexFemale}

	rec := performRequest(env.router, http.MethodPut, "/me/profile", env.token(t, "u1"), map[string]any{
		"sex":       "",
		"goal":      "  ",
		"full_name": "Ana",
		"weight_kg": 60,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	stored := env.profiles.profiles["u1"]
	if stored.Sex != domain.SexFemale {
		t.Fatalf("expected sex to be preserved, got %q", stored.Sex)
	}
	if stored.FullName == nil || *stored.FullName != "Ana" {
		t.Fatalf("expected full name Ana, got %v", stored.FullName)
	}
	if stored.WeightKG == nil || *stored.WeightKG != 60 {
		t.Fatalf("expected weight 60, got %v", stored.WeightKG)
	}
}

func TestPreviewNutrition_RateLimited(t *testing.T) {
	env := setupRouter(t, service.RateLimitPolicy{Limit: 1, Window: time.Minute})

	first := performRequest(env.router, http.MethodPost, "/nutrition/calculate", "", map[string]any{"weight_kg": 70})
	if first.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", first.Code)
	}

	rec := performRequest(env.router, http.MethodPost, "/nutrition/calculate", "", map[string]any{"weight_kg": 70})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("expected remaining 0, got %q", got)
	}
}

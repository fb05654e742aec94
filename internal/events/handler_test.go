package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eventboard/backend/internal/models"
)

// fakeStore is an in-memory event store honoring the listing query semantics.
type fakeStore struct {
	events    []models.Event
	lastLimit int
	err       error
}

func (f *fakeStore) Insert(ctx context.Context, e *models.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = uuid.New()
	e.CreatedAt = time.Now().UTC()
	e.UpdatedAt = e.CreatedAt
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeStore) ListApproved(ctx context.Context, filter ListFilter, now time.Time, limit int) ([]models.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastLimit = limit
	var out []models.Event
	for _, e := range f.events {
		if !e.Approved {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		switch filter.Window {
		case "open":
			if e.RegistrationStart.After(now) || e.RegistrationEnd.Before(now) {
				continue
			}
		case "upcoming":
			if !e.RegistrationStart.After(now) {
				continue
			}
		case "closed":
			if !e.RegistrationEnd.Before(now) {
				continue
			}
		}
		out = append(out, e)
	}
	switch filter.Sort {
	case "time":
		sort.SliceStable(out, func(i, j int) bool {
			if !out[i].RegistrationStart.Equal(out[j].RegistrationStart) {
				return out[i].RegistrationStart.Before(out[j].RegistrationStart)
			}
			return out[i].EventStart.Before(out[j].EventStart)
		})
	case "recent":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) DistinctCategories(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	seen := map[string]bool{}
	for _, e := range f.events {
		if e.Approved && e.Category != "" {
			seen[e.Category] = true
		}
	}
	out := []string{}
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// fakeOrgGetter resolves organization tokens from a fixed map.
type fakeOrgGetter struct {
	byID map[uuid.UUID]*models.Organization
	err  error
}

func (f *fakeOrgGetter) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	if org, ok := f.byID[id]; ok {
		return org, nil
	}
	return nil, models.ErrNotFound
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/events", h.Create)
	r.GET("/events", h.List)
	r.GET("/events/categories", h.Categories)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createBody(token string) map[string]interface{} {
	return map[string]interface{}{
		"title":              "Tech Talk",
		"description":        "A talk",
		"venue":              "Main Hall",
		"event_start":        "2026-04-01T10:00:00Z",
		"registration_start": "2026-03-01T00:00:00Z",
		"registration_end":   "2026-03-20T00:00:00Z",
		"category":           "tech",
		"organization_token": token,
	}
}

func TestCreateEventVerifiedOrgAutoApproved(t *testing.T) {
	orgID := uuid.New()
	orgs := &fakeOrgGetter{byID: map[uuid.UUID]*models.Organization{
		orgID: {ID: orgID, Name: "Robotics Club", Verified: true},
	}}
	store := &fakeStore{}
	h := NewHandler(store, orgs, zap.NewNop())
	r := newTestRouter(h)

	w := doJSON(t, r, http.MethodPost, "/events", createBody(orgID.String()))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["approved"])

	require.Len(t, store.events, 1)
	e := store.events[0]
	assert.True(t, e.Approved)
	assert.True(t, e.IsOrgVerified)
	assert.Nil(t, e.ApprovedBy)
	assert.Equal(t, "Robotics Club", e.OrganizationName)
}

func TestCreateEventUnverifiedOrgPending(t *testing.T) {
	orgID := uuid.New()
	orgs := &fakeOrgGetter{byID: map[uuid.UUID]*models.Organization{
		orgID: {ID: orgID, Name: "New Club", Verified: false},
	}}
	store := &fakeStore{}
	h := NewHandler(store, orgs, zap.NewNop())
	r := newTestRouter(h)

	w := doJSON(t, r, http.MethodPost, "/events", createBody(orgID.String()))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["approved"])

	require.Len(t, store.events, 1)
	assert.False(t, store.events[0].Approved)
	assert.False(t, store.events[0].IsOrgVerified)
}

func TestCreateEventBadToken(t *testing.T) {
	h := NewHandler(&fakeStore{}, &fakeOrgGetter{}, zap.NewNop())
	r := newTestRouter(h)

	w := doJSON(t, r, http.MethodPost, "/events", createBody("not-a-valid-id"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/events", createBody(uuid.NewString()))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func approvedEvent(title, category string, regStart, regEnd time.Time, createdAt time.Time) models.Event {
	return models.Event{
		ID:                uuid.New(),
		Title:             title,
		Description:       "d",
		Venue:             "v",
		EventStart:        regEnd.Add(24 * time.Hour),
		RegistrationStart: regStart,
		RegistrationEnd:   regEnd,
		Category:          category,
		OrganizationID:    uuid.New(),
		OrganizationName:  "org",
		Approved:          true,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
}

func TestListUpcomingLimitOne(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{events: []models.Event{
		approvedEvent("later", "tech", now.Add(48*time.Hour), now.Add(72*time.Hour), now.Add(-time.Hour)),
		approvedEvent("sooner", "tech", now.Add(24*time.Hour), now.Add(48*time.Hour), now.Add(-2*time.Hour)),
	}}
	h := NewHandler(store, &fakeOrgGetter{}, zap.NewNop())
	h.now = func() time.Time { return now }
	r := newTestRouter(h)

	w := doJSON(t, r, http.MethodGet, "/events?registration_window=upcoming&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var b Buckets
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, 1, b.Count)
	require.Len(t, b.Upcoming, 1)
	assert.Equal(t, "sooner", b.Upcoming[0].Title)
	assert.Empty(t, b.Open)
	assert.Empty(t, b.Closed)
}

func TestListCategoryFilterIsExact(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{events: []models.Event{
		approvedEvent("a", "tech", now.Add(-time.Hour), now.Add(time.Hour), now),
		approvedEvent("b", "Tech", now.Add(-time.Hour), now.Add(time.Hour), now),
	}}
	h := NewHandler(store, &fakeOrgGetter{}, zap.NewNop())
	h.now = func() time.Time { return now }
	r := newTestRouter(h)

	w := doJSON(t, r, http.MethodGet, "/events?category=tech", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var b Buckets
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, 1, b.Count)
	require.Len(t, b.Open, 1)
	assert.Equal(t, "a", b.Open[0].Title)
}

func TestListLimitClamping(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(store, &fakeOrgGetter{}, zap.NewNop())
	r := newTestRouter(h)

	cases := map[string]int{
		"":            100,
		"limit=0":     1,
		"limit=-3":    1,
		"limit=10000": 500,
		"limit=junk":  100,
		"limit=42":    42,
	}
	for query, want := range cases {
		path := "/events"
		if query != "" {
			path += "?" + query
		}
		w := doJSON(t, r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, store.lastLimit, "query %q", query)
	}
}

func TestListStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	h := NewHandler(store, &fakeOrgGetter{}, zap.NewNop())
	r := newTestRouter(h)

	w := doJSON(t, r, http.MethodGet, "/events", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCategories(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{events: []models.Event{
		approvedEvent("a", "tech", now, now, now),
		approvedEvent("b", "cultural", now, now, now),
		approvedEvent("c", "", now, now, now),
	}}
	unapproved := approvedEvent("d", "hidden", now, now, now)
	unapproved.Approved = false
	store.events = append(store.events, unapproved)

	h := NewHandler(store, &fakeOrgGetter{}, zap.NewNop())
	r := newTestRouter(h)

	w := doJSON(t, r, http.MethodGet, "/events/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cats []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cats))
	assert.Equal(t, []string{"cultural", "tech"}, cats)
}

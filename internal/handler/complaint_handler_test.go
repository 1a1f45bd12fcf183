package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/handler"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/model"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/repository"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubComplaintStore struct {
	complaints map[uuid.UUID]*model.Complaint
}

func newStubComplaintStore() *stubComplaintStore {
	return &stubComplaintStore{complaints: make(map[uuid.UUID]*model.Complaint)}
}

func (s *stubComplaintStore) Create(c *model.Complaint) error {
	cp := *c
	s.complaints[c.ID] = &cp
	return nil
}

func (s *stubComplaintStore) FindByID(id uuid.UUID) (*model.Complaint, error) {
	c, ok := s.complaints[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (s *stubComplaintStore) FindAll() ([]model.Complaint, error) {
	var out []model.Complaint
	for _, c := range s.complaints {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubComplaintStore) UpdateImageURL(id uuid.UUID, imageURL string) error {
	c, ok := s.complaints[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.ImageURL = &imageURL
	return nil
}

func (s *stubComplaintStore) UpdateStatus(id uuid.UUID, status model.ComplaintStatus, resolvedAt *time.Time) error {
	c, ok := s.complaints[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Status = status
	c.ResolvedAt = resolvedAt
	return nil
}

func (s *stubComplaintStore) AssignEmployee(id uuid.UUID, employeeID string) error {
	c, ok := s.complaints[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.AssignedEmployeeID = &employeeID
	return nil
}

type stubLimiter struct {
	allowed bool
}

func (s *stubLimiter) Allow(_ context.Context, _ string) (bool, error) {
	return s.allowed, nil
}

type stubObjectStore struct {
	uploaded map[string]int64
}

func (s *stubObjectStore) PresignPut(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://storage.example/" + key + "?signed", nil
}

func (s *stubObjectStore) Head(_ context.Context, key string) (bool, int64, error) {
	size, ok := s.uploaded[key]
	return ok, size, nil
}

func (s *stubObjectStore) MakePublic(_ context.Context, _ string) error { return nil }

func (s *stubObjectStore) PublicURL(key string) string {
	return "https://storage.example/bucket/" + key
}

type stubOutbox struct{}

func (s *stubOutbox) Create(_ string, _ interface{}) error { return nil }

func newTestRouter(allowed bool) (*gin.Engine, *stubComplaintStore, *stubObjectStore) {
	gin.SetMode(gin.TestMode)

	store := newStubComplaintStore()
	objects := &stubObjectStore{uploaded: make(map[string]int64)}
	svc := service.NewComplaintService(store, &stubLimiter{allowed: allowed}, objects, &stubOutbox{})
	h := handler.NewComplaintHandler(svc)

	r := gin.New()
	r.POST("/complaints", h.SubmitComplaint)
	r.POST("/complaints/:id/image", h.RequestImageUpload)
	r.POST("/complaints/:id/image/finalize", h.FinalizeImageUpload)
	r.GET("/complaints", h.GetComplaints)
	r.PATCH("/complaints/:id/status", h.UpdateStatus)
	return r, store, objects
}

func doJSON(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{
	"fullName": "Jo",
	"phone": "1234567890",
	"address": "12 Main St",
	"zone": "A",
	"wardNumber": "4",
	"complaintType": "late_collection",
	"description": "Bin not emptied for two weeks"
}`

func TestSubmitComplaint_Created(t *testing.T) {
	r, store, _ := newTestRouter(true)

	w := doJSON(r, http.MethodPost, "/complaints", validBody, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp model.SubmitComplaintResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	id, err := uuid.Parse(resp.ComplaintID)
	require.NoError(t, err)
	assert.Contains(t, store.complaints, id)
}

func TestSubmitComplaint_ValidationErrorsByField(t *testing.T) {
	r, store, _ := newTestRouter(true)

	body := `{"fullName": "J", "phone": "123", "unexpected": 1}`
	w := doJSON(r, http.MethodPost, "/complaints", body, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error  string            `json:"error"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Contains(t, resp.Errors, "fullName")
	assert.Contains(t, resp.Errors, "phone")
	assert.Contains(t, resp.Errors, "unexpected")
	assert.Empty(t, store.complaints)
}

func TestSubmitComplaint_RateLimited(t *testing.T) {
	r, store, _ := newTestRouter(false)

	w := doJSON(r, http.MethodPost, "/complaints", validBody, nil)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many submissions")
	assert.Empty(t, store.complaints)
}

func TestSubmitComplaint_MalformedJSON(t *testing.T) {
	r, _, _ := newTestRouter(true)

	w := doJSON(r, http.MethodPost, "/complaints", `{"fullName":`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestImageUpload_StatusCodes(t *testing.T) {
	r, store, _ := newTestRouter(true)

	id := uuid.New()
	store.complaints[id] = &model.Complaint{ID: id, Status: model.ComplaintOpen}

	w := doJSON(r, http.MethodPost, "/complaints/"+id.String()+"/image",
		`{"fileName": "a.jpg", "contentType": "image/jpeg"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.RequestImageUploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.UploadURL, "?signed")
	assert.Equal(t, "complaintImages/"+id.String()+"/a.jpg", resp.FilePath)

	// Disallowed content type.
	w = doJSON(r, http.MethodPost, "/complaints/"+id.String()+"/image",
		`{"fileName": "a.pdf", "contentType": "application/pdf"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown complaint.
	w = doJSON(r, http.MethodPost, "/complaints/"+uuid.NewString()+"/image",
		`{"fileName": "a.jpg", "contentType": "image/jpeg"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFinalizeImageUpload_StatusCodes(t *testing.T) {
	r, store, objects := newTestRouter(true)

	id := uuid.New()
	store.complaints[id] = &model.Complaint{ID: id, Status: model.ComplaintOpen}
	key := "complaintImages/" + id.String() + "/a.jpg"

	// Nothing uploaded yet.
	w := doJSON(r, http.MethodPost, "/complaints/"+id.String()+"/image/finalize",
		`{"filePath": "`+key+`"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Nil(t, store.complaints[id].ImageURL)

	objects.uploaded[key] = 2048

	w = doJSON(r, http.MethodPost, "/complaints/"+id.String()+"/image/finalize",
		`{"filePath": "`+key+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.FinalizeImageUploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "https://storage.example/bucket/"+key, resp.ImageURL)
	require.NotNil(t, store.complaints[id].ImageURL)
}

func TestAdminEndpointsRequireRoleHeader(t *testing.T) {
	r, store, _ := newTestRouter(true)

	id := uuid.New()
	store.complaints[id] = &model.Complaint{ID: id, Status: model.ComplaintOpen}

	w := doJSON(r, http.MethodGet, "/complaints", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodGet, "/complaints", "", map[string]string{"X-User-Role": "admin"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPatch, "/complaints/"+id.String()+"/status",
		`{"status": "investigating"}`, map[string]string{"X-User-Role": "employee"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPatch, "/complaints/"+id.String()+"/status",
		`{"status": "investigating"}`, map[string]string{"X-User-Role": "admin"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.ComplaintInvestigating, store.complaints[id].Status)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	r, store, _ := newTestRouter(true)

	id := uuid.New()
	store.complaints[id] = &model.Complaint{ID: id, Status: model.ComplaintOpen}

	w := doJSON(r, http.MethodPatch, "/complaints/"+id.String()+"/status",
		`{"status": "closed"}`, map[string]string{"X-User-Role": "admin"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.ComplaintOpen, store.complaints[id].Status)
}

package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kritika0598/AiFace/internal/models"
	"github.com/kritika0598/AiFace/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMyImages(t *testing.T) {
	user := testUser()
	r, mocks := setupRouter(user)

	mocks.images.On("ListByUser", user.ID).Return([]models.Image{
		{ID: uuid.New(), UserID: user.ID, OriginalName: "me.jpg", Mimetype: "image/jpeg"},
		{ID: uuid.New(), UserID: user.ID, OriginalName: "me2.png", Mimetype: "image/png"},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/upload/my-images", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 2)
	assert.Equal(t, "me.jpg", body[0]["originalName"])
}

func TestUploadWithoutFile(t *testing.T) {
	user := testUser()
	r, _ := setupRouter(user)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteImageNotFound(t *testing.T) {
	user := testUser()
	r, mocks := setupRouter(user)
	imageID := uuid.New()

	mocks.images.On("Delete", imageID, user.ID).Return(services.ErrImageNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/upload/"+imageID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteImage(t *testing.T) {
	user := testUser()
	r, mocks := setupRouter(user)
	imageID := uuid.New()

	mocks.images.On("Delete", imageID, user.ID).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/upload/"+imageID.String(), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Image deleted successfully", body["message"])
}

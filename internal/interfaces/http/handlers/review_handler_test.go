package handlers_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createReview(t *testing.T, app *testApp, cookie *http.Cookie, movieID int) string {
	t.Helper()
	w := doJSON(app, http.MethodPost, "/api/reviews", `{
		"movieId": `+strconv.Itoa(movieID)+`,
		"rating": 4,
		"comment": "Great practical effects."
	}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestCreateReviewRequiresSession(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	w := doJSON(app, http.MethodPost, "/api/reviews", `{
		"movieId": 1,
		"rating": 4,
		"comment": "nope"
	}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndListReviews(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	cookie, id := register(t, app, "alice")

	createReview(t, app, cookie, 7)
	createReview(t, app, cookie, 7)

	w := doJSON(app, http.MethodGet, "/api/reviews/movie/7", "")
	require.Equal(t, http.StatusOK, w.Code)

	var reviews []struct {
		AuthorID string `json:"authorId"`
		Username string `json:"username"`
		MovieID  int    `json:"movieId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	require.Len(t, reviews, 2)
	for _, rv := range reviews {
		assert.Equal(t, id, rv.AuthorID)
		assert.Equal(t, "alice", rv.Username)
		assert.Equal(t, 7, rv.MovieID)
	}
}

func TestListAllReviews(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	cookie, _ := register(t, app, "alice")

	createReview(t, app, cookie, 1)
	createReview(t, app, cookie, 2)

	w := doJSON(app, http.MethodGet, "/api/reviews", "")
	require.Equal(t, http.StatusOK, w.Code)

	var reviews []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	assert.Len(t, reviews, 2)
}

func TestListReviewsInvalidMovieID(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	w := doJSON(app, http.MethodGet, "/api/reviews/movie/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateReviewOnlyByAuthor(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	aliceCookie, _ := register(t, app, "alice")
	bobCookie, _ := register(t, app, "bob")

	reviewID := createReview(t, app, aliceCookie, 3)

	// Bob cannot modify Alice's review
	w := doJSON(app, http.MethodPut, "/api/reviews/"+reviewID, `{"rating": 1}`, bobCookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"unauthorized"`)

	// Alice can
	w = doJSON(app, http.MethodPut, "/api/reviews/"+reviewID, `{"rating": 5}`, aliceCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"rating":5`)
}

func TestDeleteReviewOnlyByAuthor(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	aliceCookie, _ := register(t, app, "alice")
	bobCookie, _ := register(t, app, "bob")

	reviewID := createReview(t, app, aliceCookie, 3)

	w := doJSON(app, http.MethodDelete, "/api/reviews/"+reviewID, "", bobCookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Still retrievable
	get := doJSON(app, http.MethodGet, "/api/reviews/"+reviewID, "")
	assert.Equal(t, http.StatusOK, get.Code)

	w = doJSON(app, http.MethodDelete, "/api/reviews/"+reviewID, "", aliceCookie)
	require.Equal(t, http.StatusOK, w.Code)

	get = doJSON(app, http.MethodGet, "/api/reviews/"+reviewID, "")
	assert.Equal(t, http.StatusNotFound, get.Code)
}

func TestGetUnknownReview(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	w := doJSON(app, http.MethodGet, "/api/reviews/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "review_not_found")
}

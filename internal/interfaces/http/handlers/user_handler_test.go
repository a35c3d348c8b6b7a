package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRequiresSession(t *testing.T) {
	t.Parallel()

	app := newTestApp()

	w := doJSON(app, http.MethodGet, "/api/users/profile", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")
}

func TestProfileOmitsPasswordHash(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	cookie, _ := register(t, app, "alice")

	w := doJSON(app, http.MethodGet, "/api/users/profile", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "argon2")
	assert.NotContains(t, w.Body.String(), "passwordHash")
}

func TestUpdateOwnProfile(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	cookie, id := register(t, app, "alice")

	w := doJSON(app, http.MethodPut, "/api/users/"+id, `{
		"language": "fr",
		"favorites": [603, 680]
	}`, cookie)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"fr"`)
	assert.Contains(t, w.Body.String(), "603")
}

func TestUpdatePasswordIsRehashed(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	cookie, id := register(t, app, "alice")

	w := doJSON(app, http.MethodPut, "/api/users/"+id, `{
		"password": "new-longer-password"
	}`, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	u, err := app.userRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.NotEqual(t, "new-longer-password", u.PasswordHash)
	assert.Contains(t, u.PasswordHash, "$argon2id$")

	// The new password works for login
	login := doJSON(app, http.MethodPost, "/api/users/login", `{
		"username": "alice",
		"password": "new-longer-password"
	}`)
	assert.Equal(t, http.StatusOK, login.Code)
}

func TestUpdateOtherUserRejected(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	aliceCookie, _ := register(t, app, "alice")
	_, bobID := register(t, app, "bob")

	w := doJSON(app, http.MethodPut, "/api/users/"+bobID, `{
		"language": "fr"
	}`, aliceCookie)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"unauthorized"`)

	// Bob's profile is untouched
	u, err := app.userRepo.GetByID(context.Background(), bobID)
	require.NoError(t, err)
	assert.Equal(t, "en", u.Language)
}

func TestDeleteOwnAccount(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	cookie, id := register(t, app, "alice")

	w := doJSON(app, http.MethodDelete, "/api/users/"+id, "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// Session cookie is cleared along with the account
	cleared := sessionCookie(t, w)
	assert.Empty(t, cleared.Value)

	_, err := app.userRepo.GetByID(context.Background(), id)
	assert.Error(t, err)
}

func TestDeleteOtherUserRejected(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	aliceCookie, _ := register(t, app, "alice")
	_, bobID := register(t, app, "bob")

	w := doJSON(app, http.MethodDelete, "/api/users/"+bobID, "", aliceCookie)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"unauthorized"`)

	// Bob still exists
	_, err := app.userRepo.GetByID(context.Background(), bobID)
	assert.NoError(t, err)
}

func TestDeleteWithoutSessionRejected(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	_, id := register(t, app, "alice")

	w := doJSON(app, http.MethodDelete, "/api/users/"+id, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")
}

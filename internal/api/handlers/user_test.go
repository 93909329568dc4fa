package handlers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/dom/account-service/internal/domain"
	"github.com/dom/account-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		form           url.Values
		setup          func()
		expectedStatus int
	}{
		{
			name: "successful creation",
			form: url.Values{
				"username": {"newuser"},
				"email":    {"new@example.com"},
				"password": {"Passw0rd1"},
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "with optional name fields",
			form: url.Values{
				"username":  {"nameduser"},
				"email":     {"named@example.com"},
				"password":  {"Passw0rd1"},
				"firstname": {"Named"},
				"lastname":  {"User"},
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "weak password",
			form: url.Values{
				"username": {"weakuser"},
				"email":    {"weak@example.com"},
				"password": {"short1"},
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "invalid username",
			form: url.Values{
				"username": {"AB"},
				"email":    {"ab@example.com"},
				"password": {"Passw0rd1"},
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "duplicate username",
			form: url.Values{
				"username": {"existinghttp"},
				"email":    {"fresh@example.com"},
				"password": {"Passw0rd1"},
			},
			setup: func() {
				testutil.NewUserBuilder().WithUsername("existinghttp").Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := testutil.PostForm(t, ts.URL("/user/create"), tt.form)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
		})
	}
}

func TestUserHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().WithUsername("listhttp").Build(t, ts.DB.DB)

	resp, err := http.Get(ts.URL("/user/list"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var users []domain.User
	testutil.AssertJSONResponse(t, resp, &users)

	require.Len(t, users, 1)
	assert.Equal(t, "listhttp", users[0].Username)
	// Digests are returned as stored on this internal endpoint
	assert.Equal(t, user.Password, users[0].Password)
}

func TestUserHandler_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().
		WithUsername("updatehttp").
		WithEmail("keep@example.com").
		Build(t, ts.DB.DB)
	session := testutil.NewSessionBuilder().WithUser(user).Build(t, ts.DB.DB)

	t.Run("partial update", func(t *testing.T) {
		resp := testutil.PostForm(t, ts.URL(fmt.Sprintf("/user/update/%d", user.ID)), url.Values{
			"token":     {session.Token},
			"firstname": {"Changed"},
		})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNoContent)

		var stored domain.User
		require.NoError(t, ts.DB.DB.First(&stored, "id = ?", user.ID).Error)
		assert.Equal(t, "Changed", stored.Firstname)
		assert.Equal(t, "keep@example.com", stored.Email)
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := testutil.PostForm(t, ts.URL(fmt.Sprintf("/user/update/%d", user.ID)), url.Values{
			"token":     {"neverissuedtoken"},
			"firstname": {"Nope"},
		})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("non-numeric id fails validation", func(t *testing.T) {
		resp := testutil.PostForm(t, ts.URL("/user/update/abc"), url.Values{
			"token":     {session.Token},
			"firstname": {"Nope"},
		})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().WithUsername("deletehttp").Build(t, ts.DB.DB)
	session := testutil.NewSessionBuilder().WithUser(user).Build(t, ts.DB.DB)

	t.Run("missing token fails validation", func(t *testing.T) {
		resp := testutil.PostForm(t, ts.URL(fmt.Sprintf("/user/delete/%d", user.ID)), url.Values{})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("successful deletion removes user and session", func(t *testing.T) {
		resp := testutil.PostForm(t, ts.URL(fmt.Sprintf("/user/delete/%d", user.ID)), url.Values{
			"token": {session.Token},
		})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNoContent)

		var count int64
		ts.DB.DB.Model(&domain.User{}).Where("id = ?", user.ID).Count(&count)
		assert.Zero(t, count)
		ts.DB.DB.Model(&domain.Session{}).Where("token = ?", session.Token).Count(&count)
		assert.Zero(t, count)
	})
}

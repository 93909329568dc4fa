package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/dom/account-service/internal/domain"
	"github.com/dom/account-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("loginhttp").
		WithPassword("correctpass1").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		form           url.Values
		expectedStatus int
	}{
		{
			name: "successful login",
			form: url.Values{
				"username": {user.Username},
				"password": {rawPassword},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			form: url.Values{
				"username": {user.Username},
				"password": {"wrongpass11"},
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown username",
			form: url.Values{
				"username": {"ghostuser"},
				"password": {rawPassword},
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "missing password fails validation",
			form: url.Values{
				"username": {user.Username},
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "spoofed ip field is ignored",
			form: url.Values{
				"username": {user.Username},
				"password": {rawPassword},
				"ip":       {"not-an-ip"},
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.DB.Exec("TRUNCATE TABLE sessions CASCADE")

			resp := testutil.PostForm(t, ts.URL("/login"), tt.form)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var token string
				testutil.AssertJSONResponse(t, resp, &token)
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestAuthHandler_Login_Conflict(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("conflicthttp").
		WithPassword("correctpass1").
		Build(t, ts.DB.DB)

	form := url.Values{
		"username": {user.Username},
		"password": {rawPassword},
	}

	resp := testutil.PostForm(t, ts.URL("/login"), form)
	resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp = testutil.PostForm(t, ts.URL("/login"), form)
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusConflict, "already logged in")
}

func TestAuthHandler_Logout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	session := testutil.NewSessionBuilder().Build(t, ts.DB.DB)

	resp := testutil.PostForm(t, ts.URL("/logout"), url.Values{"token": {session.Token}})
	resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	// Stale token now fails with 401
	resp = testutil.PostForm(t, ts.URL("/logout"), url.Values{"token": {session.Token}})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
}

func TestAuthHandler_OnlineUsers(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().WithUsername("onlinehttp").Build(t, ts.DB.DB)
	session := testutil.NewSessionBuilder().WithUser(user).Build(t, ts.DB.DB)

	resp, err := http.Get(ts.URL("/onlineusers"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var online []domain.OnlineSession
	testutil.AssertJSONResponse(t, resp, &online)

	require.Len(t, online, 1)
	assert.Equal(t, "onlinehttp", online[0].Username)
	assert.Equal(t, session.Token, online[0].Token)
}

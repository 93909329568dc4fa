package validate_test

import (
	"testing"

	"github.com/dom/account-service/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name      string
		schema    validate.Schema
		data      map[string]any
		wantErr   bool
		wantField string
	}{
		{
			name:   "login form complete",
			schema: validate.LoginForm,
			data: map[string]any{
				"username": "alice",
				"password": "Passw0rd1",
				"ip":       "10.0.0.1",
			},
		},
		{
			name:   "login form missing password",
			schema: validate.LoginForm,
			data: map[string]any{
				"username": "alice",
				"ip":       "10.0.0.1",
			},
			wantErr:   true,
			wantField: "password",
		},
		{
			name:   "login form nil counts as absent",
			schema: validate.LoginForm,
			data: map[string]any{
				"username": "alice",
				"password": nil,
				"ip":       "10.0.0.1",
			},
			wantErr:   true,
			wantField: "password",
		},
		{
			name:   "new user optional fields absent",
			schema: validate.NewUserData,
			data: map[string]any{
				"username": "bob",
				"email":    "bob@example.com",
				"password": "Passw0rd1",
			},
		},
		{
			name:   "new user optional field present and invalid",
			schema: validate.NewUserData,
			data: map[string]any{
				"username":  "bob",
				"email":     "bob@example.com",
				"password":  "Passw0rd1",
				"firstname": "B0b",
			},
			wantErr:   true,
			wantField: "firstname",
		},
		{
			name:   "user deletion requires id",
			schema: validate.UserDeletion,
			data: map[string]any{
				"token": "sometoken",
			},
			wantErr:   true,
			wantField: "id",
		},
		{
			name:   "user modification with subset",
			schema: validate.UserModification,
			data: map[string]any{
				"token":     "sometoken",
				"id":        int64(3),
				"firstname": "Alice",
			},
		},
		{
			name:   "session data complete",
			schema: validate.SessionData,
			data: map[string]any{
				"created_at": "2024-01-02T13:45:00",
				"ip":         "10.0.0.1",
				"user_id":    int64(1),
				"token":      "F3xz0aBcD12345",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate(tt.data)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var ve *validate.Error
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestSchemaPrune(t *testing.T) {
	t.Run("drops undeclared fields", func(t *testing.T) {
		data, err := validate.LoginForm.Prune(map[string]any{
			"username": "alice",
			"password": "Passw0rd1",
			"ip":       "10.0.0.1",
			"is_admin": true,
			"garbage":  "x",
		})

		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"username": "alice",
			"password": "Passw0rd1",
			"ip":       "10.0.0.1",
		}, data)
	})

	t.Run("keeps present optional fields only", func(t *testing.T) {
		data, err := validate.UserModification.Prune(map[string]any{
			"token":     "sometoken",
			"id":        int64(7),
			"firstname": "Alice",
		})

		require.NoError(t, err)
		assert.Contains(t, data, "firstname")
		assert.NotContains(t, data, "lastname")
	})

	t.Run("nil on validation failure", func(t *testing.T) {
		data, err := validate.LoginForm.Prune(map[string]any{
			"username": "AB",
			"password": "Passw0rd1",
			"ip":       "10.0.0.1",
		})

		assert.Error(t, err)
		assert.Nil(t, data)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := map[string]any{
			"token":   "sometoken",
			"unknown": "x",
		}
		_, err := validate.TokenData.Prune(in)

		require.NoError(t, err)
		assert.Contains(t, in, "unknown")
	})
}

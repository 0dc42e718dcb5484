package session_test

import (
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/coursebook/core"
	"github.com/trezcool/coursebook/core/session"
	inmemdb "github.com/trezcool/coursebook/storage/database/inmem"
	"github.com/trezcool/coursebook/tests"
)

func setup(t *testing.T) (session.Service, ut.Translator) {
	db, err := inmemdb.Open()
	require.NoError(t, err)

	conf := testutil.Config()
	validate, translator := testutil.NewValidator()
	return session.NewService(inmemdb.NewSessionRepository(db), validate, testutil.NewLogger(conf)), translator
}

// translated returns the translated message of every field in error.
func translated(t *testing.T, err error, translator ut.Translator) map[string]string {
	msgs, ok := core.TranslateErrors(err, translator)
	require.True(t, ok, "want validator.ValidationErrors; got %T", err)
	return msgs
}

func TestService_Login(t *testing.T) {
	tests := []struct {
		name     string
		login    session.Login
		wantErrs map[string]string
		wantSess session.Session
	}{
		{
			name:  "empty form",
			login: session.Login{},
			wantErrs: map[string]string{
				"email":    "this field is required",
				"password": "this field is required",
				"role":     "this field is required",
			},
		},
		{
			name:     "unknown role",
			login:    session.Login{Email: "a@test.cd", Password: "x", Role: "janitor"},
			wantErrs: map[string]string{"role": "role must be one of student, faculty or admin"},
		},
		{
			name:     "student",
			login:    session.Login{Email: " Hero@Test.cd ", Password: "anything", Role: "student"},
			wantSess: session.Session{Email: "hero@test.cd", Role: session.RoleStudent},
		},
		{
			name:     "faculty (any case)",
			login:    session.Login{Email: "prof@test.cd", Password: "x", Role: "Faculty"},
			wantSess: session.Session{Email: "prof@test.cd", Role: session.RoleFaculty},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, translator := setup(t)

			sess, err := svc.Login(tt.login)
			if tt.wantErrs != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrs, translated(t, err, translator))
				return
			}

			require.NoError(t, err)
			_, err = uuid.Parse(sess.ID)
			assert.NoError(t, err, "session ID must be a UUID")
			assert.Equal(t, tt.wantSess.Email, sess.Email)
			assert.Equal(t, tt.wantSess.Role, sess.Role)
			assert.False(t, sess.CreatedAt.IsZero())

			got, err := svc.Get(sess.ID)
			require.NoError(t, err)
			assert.Equal(t, sess, got)
		})
	}
}

func TestService_Register(t *testing.T) {
	valid := session.Registration{
		Name:            "Hero",
		Email:           "hero@test.cd",
		Password:        "secret",
		PasswordConfirm: "secret",
		Role:            "student",
	}

	tests := []struct {
		name     string
		reg      func() session.Registration
		wantErrs map[string]string
	}{
		{
			name: "empty form",
			reg:  func() session.Registration { return session.Registration{} },
			wantErrs: map[string]string{
				"name":             "this field is required",
				"email":            "this field is required",
				"password":         "this field is required",
				"password_confirm": "this field is required",
				"role":             "this field is required",
			},
		},
		{
			name: "short password",
			reg: func() session.Registration {
				r := valid
				r.Password, r.PasswordConfirm = "12345", "12345"
				return r
			},
			wantErrs: map[string]string{"password": "password must be at least 6 characters"},
		},
		{
			name: "passwords mismatch",
			reg: func() session.Registration {
				r := valid
				r.PasswordConfirm = "secreT"
				return r
			},
			wantErrs: map[string]string{"password_confirm": "passwords do not match"},
		},
		{name: "valid", reg: func() session.Registration { return valid }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, translator := setup(t)

			acc, err := svc.Register(tt.reg())
			if tt.wantErrs != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrs, translated(t, err, translator))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, session.Account{Name: "Hero", Email: "hero@test.cd", Role: session.RoleStudent}, acc)
		})
	}
}

func TestService_GetClose(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Get("")
	assert.Equal(t, session.ErrNotFound, err)
	_, err = svc.Get(uuid.New().String())
	assert.Equal(t, session.ErrNotFound, err)

	sess, err := svc.Login(session.Login{Email: "admin@test.cd", Password: "x", Role: "admin"})
	require.NoError(t, err)

	require.NoError(t, svc.Close(sess.ID))
	require.NoError(t, svc.Close(sess.ID)) // twice is fine

	_, err = svc.Get(sess.ID)
	assert.Equal(t, session.ErrNotFound, err)
}

func TestSession_HasAnyRole(t *testing.T) {
	student := session.Session{Role: session.RoleStudent}

	assert.True(t, student.HasAnyRole())
	assert.True(t, student.HasAnyRole(session.RoleFaculty, session.RoleStudent))
	assert.False(t, student.HasAnyRole(session.RoleFaculty, session.RoleAdmin))
	assert.True(t, student.IsStudent())
	assert.False(t, student.IsAdmin())
}

func TestSession_MailAddress(t *testing.T) {
	addr, ok := session.Session{Email: "hero@test.cd"}.MailAddress()
	assert.True(t, ok)
	assert.Equal(t, "hero@test.cd", addr.Address)

	_, ok = session.Session{Email: "not an email"}.MailAddress()
	assert.False(t, ok)
}

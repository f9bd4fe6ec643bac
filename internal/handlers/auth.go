package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"pixyo/internal/middleware"
	"pixyo/internal/models"
	"pixyo/internal/session"
	"pixyo/internal/store"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	sessions *session.Store
	users    *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, users *store.UserStore) *Auth {
	return &Auth{sessions: sessions, users: users}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role,omitempty"`
	Needs2FA    bool   `json:"needs2fa"`
}

// Login verifies credentials and opens a session. Admin accounts get a
// session with TwoFADone=false and must pass the 2FA step before admin
// routes open up; regular accounts are done after this call.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := a.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		writeInternal(w, "login lookup failed", err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		// Same response for unknown email and wrong password.
		writeError(w, http.StatusUnauthorized, "bad_credentials", "Invalid email or password.")
		return
	}

	role := ""
	if user.Metadata != nil {
		role = user.Metadata.Role
	}
	isAdmin := role == models.RoleAdmin

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        role,
		TwoFADone:   !isAdmin, // only admins go through TOTP
	})
	if err != nil {
		writeInternal(w, "session create failed", err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		UserID:      user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        role,
		Needs2FA:    isAdmin,
	})
}

// Logout destroys the session. Always 204, even without one.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the current session identity.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	writeJSON(w, http.StatusOK, sessionResponse{
		UserID:      sess.UserID.String(),
		Email:       sess.Email,
		DisplayName: sess.DisplayName,
		Role:        sess.Role,
		Needs2FA:    sess.Role == models.RoleAdmin && !sess.TwoFADone,
	})
}

type twoFASetupResponse struct {
	Secret string `json:"secret"`
	QRCode string `json:"qrCode"` // base64 PNG for an <img> tag
}

// TwoFASetup generates a TOTP secret for the session user and returns
// the provisioning QR code. The secret stays pending until the first
// successful verify.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Pixyo",
		AccountName: sess.Email,
	})
	if err != nil {
		writeInternal(w, "totp generate failed", err)
		return
	}

	if err := a.users.SetTOTPSecret(r.Context(), sess.UserID, key.Secret()); err != nil {
		writeInternal(w, "save totp secret failed", err)
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		writeInternal(w, "qr code generation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, twoFASetupResponse{
		Secret: key.Secret(),
		QRCode: base64.StdEncoding.EncodeToString(qrPNG),
	})
}

type twoFAVerifyRequest struct {
	Code string `json:"code"`
}

// TwoFAVerify validates the TOTP code and completes authentication.
// On the first successful verify the secret is promoted from pending to
// enabled.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req twoFAVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := a.users.FindByID(r.Context(), sess.UserID)
	if err != nil || user == nil {
		writeInternal(w, "user lookup for 2fa failed", err)
		return
	}
	if user.TOTPSecret == nil {
		writeError(w, http.StatusBadRequest, "no_totp_secret", "Run 2FA setup first.")
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, "bad_totp_code", "Invalid code. Please try again.")
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(r.Context(), user.ID); err != nil {
			writeInternal(w, "enable totp failed", err)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		writeInternal(w, "session update failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

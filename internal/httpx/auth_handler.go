package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/clerin-codes/canvas/internal/auth"
	"github.com/clerin-codes/canvas/internal/notify"
	"github.com/clerin-codes/canvas/internal/users"
)

type AuthHandler struct {
	Users  *users.Repo
	Mailer notify.Mailer
	Secret string
	TTL    time.Duration
	Log    *zap.Logger
}

type sendOTPReq struct {
	Email string `json:"email"`
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileReq struct {
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type authResp struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

func (h *AuthHandler) Register(r *chi.Mux, authmw func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/send-otp", h.sendOTP)
		r.Post("/register", h.register)
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(authmw)
			r.Get("/profile", h.profile)
			r.Put("/profile", h.updateProfile)
			r.Post("/change-password", h.changePassword)
			r.Delete("/profile", h.deleteAccount)
		})
	})
}

func (h *AuthHandler) sendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		badRequest(w, "valid email is required")
		return
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Users.UpsertOTP(r.Context(), req.Email, otp, time.Now().Add(auth.OTPValidity)); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Mailer.Send(r.Context(), req.Email, notify.OTPSubject(), notify.OTPPlain(otp), notify.OTPHTML(otp)); err != nil {
		writeError(w, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP sent successfully"})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" || req.OTP == "" {
		badRequest(w, "name, email, password and otp are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	u, err := h.Users.Register(r.Context(), req.Email, req.OTP, req.Name, hash)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	h.issue(w, u)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	// email tak dikenal dan password salah dijawab sama persis
	u, err := h.Users.FindByEmail(r.Context(), req.Email)
	if errors.Is(err, users.ErrUserNotFound) {
		badRequest(w, "invalid credentials")
		return
	}
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		badRequest(w, "invalid credentials")
		return
	}

	h.issue(w, u)
}

func (h *AuthHandler) issue(w http.ResponseWriter, u *users.User) {
	token, err := auth.IssueToken(h.Secret, h.TTL, u.ID, u.Email)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, authResp{Token: token, User: u})
}

func (h *AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	u, err := h.Users.FindByID(r.Context(), id.UserID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}

	id, _ := auth.FromContext(r.Context())
	u, err := h.Users.UpdateProfile(r.Context(), id.UserID, req.Name, req.ProfileImage)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if req.NewPassword == "" {
		badRequest(w, "new password is required")
		return
	}

	id, _ := auth.FromContext(r.Context())
	u, err := h.Users.FindByID(r.Context(), id.UserID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.CurrentPassword) {
		badRequest(w, "current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Users.UpdatePassword(r.Context(), id.UserID, hash); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

func (h *AuthHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	if err := h.Users.Delete(r.Context(), id.UserID); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}

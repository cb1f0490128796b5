package auth

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/vidflow/vidflow_server/internal/notifier"
	"github.com/vidflow/vidflow_server/internal/store"
	"github.com/vidflow/vidflow_server/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const SessionName = "vidflow_session"
const AdminSessionName = "vidflow_admin_session"

// PasswordAuth handles email/password login for internal users and the
// platform-admin variant of the same flow.
type PasswordAuth struct {
	Logger            *log.Logger
	SessionStore      *sessions.CookieStore
	AdminSessionStore *sessions.CookieStore
	UserStore         store.UserStore
	ResetCodes        store.ResetCodeStore
	Dispatcher        notifier.Dispatcher
}

func NewPasswordAuth(logger *log.Logger, sessionStore *sessions.CookieStore, adminSessionStore *sessions.CookieStore, userStore store.UserStore, resetCodes store.ResetCodeStore, dispatcher notifier.Dispatcher) *PasswordAuth {
	return &PasswordAuth{
		Logger:            logger,
		SessionStore:      sessionStore,
		AdminSessionStore: adminSessionStore,
		UserStore:         userStore,
		ResetCodes:        resetCodes,
		Dispatcher:        dispatcher,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (p *PasswordAuth) HandlerLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := utils.ReadJSON(r, &req)
	if err != nil {
		p.Logger.Println("Error decoding login request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	user, err := p.UserStore.GetUserByEmail(req.Email)
	if err != nil {
		p.Logger.Println("Login failed, user lookup:", err)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Invalid credentials"})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		p.Logger.Println("Login failed, password mismatch for", req.Email)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Invalid credentials"})
		return
	}

	session, _ := p.SessionStore.Get(r, SessionName)
	session.Values["user_id"] = user.ID.String()
	session.Values["user_email"] = user.Email
	session.Values["company_id"] = user.CompanyID.String()
	session.Values["role"] = user.Role

	err = session.Save(r, w)
	if err != nil {
		p.Logger.Println("Error saving session:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": user})
}

func (p *PasswordAuth) HandlerLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := p.SessionStore.Get(r, SessionName)
	session.Options.MaxAge = -1
	session.Save(r, w)

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Logged out"})
}

// HandlerAdminLogin is the platform-admin login. Only superusers get an
// admin session.
func (p *PasswordAuth) HandlerAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := utils.ReadJSON(r, &req)
	if err != nil {
		p.Logger.Println("Error decoding admin login request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	user, err := p.UserStore.GetUserByEmail(req.Email)
	if err != nil || !user.IsSuperuser {
		p.Logger.Println("Admin login rejected for", req.Email)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Invalid credentials"})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		p.Logger.Println("Admin login failed, password mismatch for", req.Email)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Invalid credentials"})
		return
	}

	session, _ := p.AdminSessionStore.Get(r, AdminSessionName)
	session.Values["admin_id"] = user.ID.String()
	session.Values["admin_email"] = user.Email

	err = session.Save(r, w)
	if err != nil {
		p.Logger.Println("Error saving admin session:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": user})
}

type resetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (p *PasswordAuth) HandlerRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	err := utils.ReadJSON(r, &req)
	if err != nil {
		p.Logger.Println("Error decoding reset request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	// The response is the same whether or not the account exists.
	user, err := p.UserStore.GetUserByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			p.Logger.Println("Error looking up user for reset:", err)
		}
		utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "If the account exists, a code was sent"})
		return
	}

	code, err := generateResetCode()
	if err != nil {
		p.Logger.Println("Error generating reset code:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	err = p.ResetCodes.SaveCode(user.Email, code)
	if err != nil {
		p.Logger.Println("Error saving reset code:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	p.Dispatcher.Enqueue(notifier.Notification{
		Channel:   notifier.ChannelEmail,
		Recipient: user.Email,
		Subject:   "Código de recuperação de senha",
		Message:   "Seu código de recuperação é: " + code,
	})

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "If the account exists, a code was sent"})
}

type resetConfirmRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func (p *PasswordAuth) HandlerConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetConfirmRequest
	err := utils.ReadJSON(r, &req)
	if err != nil {
		p.Logger.Println("Error decoding reset confirmation:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	ok, err := p.ResetCodes.CheckCode(req.Email, req.Code)
	if err != nil {
		p.Logger.Println("Error checking reset code:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Invalid or expired code"})
		return
	}

	user, err := p.UserStore.GetUserByEmail(req.Email)
	if err != nil {
		p.Logger.Println("Error looking up user for reset confirmation:", err)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Invalid or expired code"})
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		p.Logger.Println("Error hashing new password:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	err = p.UserStore.UpdatePassword(user.ID, hash)
	if err != nil {
		p.Logger.Println("Error updating password:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	if err := p.ResetCodes.DeleteCode(req.Email); err != nil {
		p.Logger.Println("Error deleting used reset code:", err)
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Password updated"})
}

func (p *PasswordAuth) HandlerSession(w http.ResponseWriter, r *http.Request) {
	session, err := p.SessionStore.Get(r, SessionName)
	if err != nil || session.IsNew {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": utils.Envelope{
		"user_id":    session.Values["user_id"],
		"user_email": session.Values["user_email"],
		"company_id": session.Values["company_id"],
		"role":       session.Values["role"],
	}})
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

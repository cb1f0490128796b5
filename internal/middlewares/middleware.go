package middlewares

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/vidflow/vidflow_server/internal/auth"
	"github.com/vidflow/vidflow_server/internal/models"
	"github.com/vidflow/vidflow_server/internal/utils"
)

type contextKey string

const UserContextKey contextKey = "user"
const AdminContextKey contextKey = "admin"
const FreelancerContextKey contextKey = "freelancer"

type MiddlewareHandler struct {
	Logger            *log.Logger
	AdminLogger       *log.Logger
	SessionStore      *sessions.CookieStore
	AdminSessionStore *sessions.CookieStore
}

func NewMiddlewareHandler(logger *log.Logger, adminLogger *log.Logger, store *sessions.CookieStore, adminStore *sessions.CookieStore) *MiddlewareHandler {
	return &MiddlewareHandler{
		Logger:            logger,
		AdminLogger:       adminLogger,
		SessionStore:      store,
		AdminSessionStore: adminStore,
	}
}

// FreelancerIdentity is what the freelancer token middleware puts in the
// request context.
type FreelancerIdentity struct {
	FreelancerID uuid.UUID
	CompanyID    uuid.UUID
}

func (mh *MiddlewareHandler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		session, err := mh.SessionStore.Get(r, auth.SessionName)
		if err != nil {
			mh.Logger.Println("Error getting session in auth middleware:", err)
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
			return
		}

		if session.IsNew {
			mh.Logger.Println("New session found in auth middleware (not authenticated)")
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
			return
		}

		userEmail, emailOk := session.Values["user_email"].(string)
		userIDStr, idOk := session.Values["user_id"].(string)
		companyIDStr, companyOk := session.Values["company_id"].(string)
		role, _ := session.Values["role"].(string)

		if !emailOk || !idOk || !companyOk || userEmail == "" || userIDStr == "" || companyIDStr == "" {
			mh.Logger.Println("Invalid or missing user data in session")
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			mh.Logger.Println("Invalid user ID format in session:", err)
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
			return
		}

		companyID, err := uuid.Parse(companyIDStr)
		if err != nil {
			mh.Logger.Println("Invalid company ID format in session:", err)
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
			return
		}

		user := &models.User{
			ID:        userID,
			Email:     userEmail,
			CompanyID: companyID,
			Role:      role,
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdminRole gates company-admin endpoints. It must run after
// Authenticate.
func (mh *MiddlewareHandler) RequireAdminRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r)
		if !ok || user.Role != models.RoleAdmin {
			mh.Logger.Println("Non-admin user attempted admin endpoint")
			utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{"error": "Forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (mh *MiddlewareHandler) AuthenticateAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		session, err := mh.AdminSessionStore.Get(r, auth.AdminSessionName)
		if err != nil {
			mh.AdminLogger.Println("Error getting admin session in auth middleware:", err)
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Admin access required"})
			return
		}

		if session.IsNew {
			mh.AdminLogger.Println("New admin session found in auth middleware (not authenticated)")
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Admin access required"})
			return
		}

		adminEmail, emailOk := session.Values["admin_email"].(string)
		adminIDStr, idOk := session.Values["admin_id"].(string)

		if !emailOk || !idOk || adminEmail == "" || adminIDStr == "" {
			mh.AdminLogger.Println("Invalid or missing admin data in session")
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Admin access required"})
			return
		}

		adminID, err := uuid.Parse(adminIDStr)
		if err != nil {
			mh.AdminLogger.Println("Invalid admin ID format in session:", err)
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Admin access required"})
			return
		}

		admin := &models.User{
			ID:    adminID,
			Email: adminEmail,
		}

		ctx := context.WithValue(r.Context(), AdminContextKey, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthenticateFreelancer accepts the signed token freelancers receive in
// their panel link, as a Bearer header.
func (mh *MiddlewareHandler) AuthenticateFreelancer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
			return
		}

		claims, err := auth.ParseFreelancerToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			mh.Logger.Println("Invalid freelancer token:", err)
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
			return
		}

		freelancerID, err := uuid.Parse(claims.FreelancerID)
		if err != nil {
			mh.Logger.Println("Invalid freelancer ID in token:", err)
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
			return
		}

		companyID, err := uuid.Parse(claims.CompanyID)
		if err != nil {
			mh.Logger.Println("Invalid company ID in token:", err)
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
			return
		}

		identity := &FreelancerIdentity{
			FreelancerID: freelancerID,
			CompanyID:    companyID,
		}

		ctx := context.WithValue(r.Context(), FreelancerContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (mh *MiddlewareHandler) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" && !isOriginAllowed(origin) {
			mh.Logger.Printf("Origin not allowed: %s", origin)
			utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{"error": "Origin not allowed"})
			return
		}

		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Expose-Headers", "Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		// Handle preflight requests (OPTIONS)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (mh *MiddlewareHandler) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		mh.Logger.Printf("Request: %s %s | Origin: %s",
			r.Method, r.URL.Path, origin)

		next.ServeHTTP(w, r)
	})
}

func (mh *MiddlewareHandler) Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

func isOriginAllowed(origin string) bool {
	allowedOrigins := strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")
	for _, allowedOrigin := range allowedOrigins {
		if origin == allowedOrigin {
			return true
		}
	}
	return false
}

func GetUserFromContext(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	return user, ok
}

func GetAdminFromContext(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(AdminContextKey).(*models.User)
	return user, ok
}

func GetFreelancerFromContext(r *http.Request) (*FreelancerIdentity, bool) {
	identity, ok := r.Context().Value(FreelancerContextKey).(*FreelancerIdentity)
	return identity, ok
}

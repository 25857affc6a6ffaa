package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	// SessionName is the cookie name for the browsing session
	SessionName = "session"

	cartIDKey contextKey = "cart_id"
)

// SessionMiddleware assigns each browser a stable cart identifier via a
// cookie session. The identifier keys the in-memory cart registry; the
// cart itself never enters the cookie, matching the design that holds
// are meaningful only for the current browsing session.
type SessionMiddleware struct {
	store sessions.Store
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(store sessions.Store) *SessionMiddleware {
	return &SessionMiddleware{store: store}
}

// WithCartID ensures the session has a cart ID and puts it on the context
func (m *SessionMiddleware) WithCartID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			// A corrupt cookie decodes to a fresh session; keep going
			log.Printf("session: reset after decode error: %v", err)
		}

		cartID, ok := session.Values["cart_id"].(string)
		if !ok || cartID == "" {
			cartID = uuid.NewString()
			session.Values["cart_id"] = cartID
			if err := session.Save(r, w); err != nil {
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}
		}

		ctx := context.WithValue(r.Context(), cartIDKey, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCartID returns the browsing session's cart identifier ("" if absent)
func GetCartID(ctx context.Context) string {
	if id, ok := ctx.Value(cartIDKey).(string); ok {
		return id
	}
	return ""
}

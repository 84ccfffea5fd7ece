package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"shieldops/internal/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginUser struct {
	Username string    `json:"username"`
	Role     auth.Role `json:"role"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

func loginHandler(svc *auth.Service, reject auth.RejectFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req loginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			reject(w, r, auth.ErrMalformedRequest)
			return
		}
		id, tok, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			reject(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{
			Token: tok.Value,
			User:  loginUser{Username: id.Username, Role: id.Role},
		})
	})
}

type meResponse struct {
	ID        *int64     `json:"id,omitempty"`
	Username  string     `json:"username,omitempty"`
	Role      auth.Role  `json:"role"`
	Verified  bool       `json:"verified"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// meHandler echoes what the bearer credential claims about its holder.
func meHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		c, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		resp := meResponse{ID: c.UserID, Username: c.Username, Role: c.Role, Verified: c.Verified}
		if !c.IssuedAt.IsZero() {
			resp.IssuedAt = &c.IssuedAt
		}
		if !c.ExpiresAt.IsZero() {
			resp.ExpiresAt = &c.ExpiresAt
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func usersHandler(svc *auth.Service, reject auth.RejectFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		users, err := svc.Users(r.Context())
		if err != nil {
			reject(w, r, err)
			return
		}
		out := make([]auth.Identity, 0, len(users))
		for i := range users {
			out = append(out, *users[i].Identity())
		}
		writeJSON(w, http.StatusOK, out)
	})
}

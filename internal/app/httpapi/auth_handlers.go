package httpapi

import (
	"net/http"

	"github.com/pobimgroup/election-dashboard/internal/app/auth"
)

type voterLoginRequest struct {
	CitizenID string `json:"citizenId"`
}

func (a *API) voterLogin(w http.ResponseWriter, r *http.Request) {
	var req voterLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	session, err := a.auth.VoterLogin(r.Context(), req.CitizenID)
	if err != nil {
		a.logger.Warn("voter login rejected", "err", err)
		respondError(w, err)
		return
	}

	a.setSessionCookie(w, session)
	respondJSON(w, http.StatusOK, map[string]any{"user": session.User, "token": session.Token})
	a.logger.Info("voter logged in", "user", session.User.ID)
}

type officialLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) officialLogin(w http.ResponseWriter, r *http.Request) {
	var req officialLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	session, err := a.auth.OfficialLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		a.logger.Warn("official login rejected", "email", req.Email, "err", err)
		respondError(w, err)
		return
	}

	a.setSessionCookie(w, session)
	respondJSON(w, http.StatusOK, map[string]any{"user": session.User, "token": session.Token})
	a.logger.Info("official logged in", "user", session.User.ID, "role", session.User.Role)
}

func (a *API) logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	user, err := a.auth.Me(r.Context(), currentUser(r).ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (a *API) setSessionCookie(w http.ResponseWriter, session auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

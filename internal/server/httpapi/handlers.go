package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/twit2/t2-auth/internal/common"
	"github.com/twit2/t2-auth/internal/server/metrics"
)

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type passwordBody struct {
	Password string `json:"password"`
}

type roleBody struct {
	Role int `json:"role"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {

	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		metrics.HTTPRequests.WithLabelValues("register", "client_error").Inc()
		writeError(w, http.StatusBadRequest, CodeInvalidBody, "invalid request body")
		return
	}

	_, err := s.manager.CreateCredential(r.Context(), body.Username, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			metrics.HTTPRequests.WithLabelValues("register", "client_error").Inc()
			writeError(w, http.StatusBadRequest, CodeInvalidBody, "invalid username or password format")
		case errors.Is(err, common.ErrorAlreadyExists):
			metrics.HTTPRequests.WithLabelValues("register", "client_error").Inc()
			writeError(w, http.StatusBadRequest, CodeGeneric, "username unavailable")
		case errors.Is(err, common.ErrorProfileCreation):
			s.logger.Error(r.Context(), "registration failed at profile creation", "username", body.Username)
			metrics.HTTPRequests.WithLabelValues("register", "error").Inc()
			writeError(w, http.StatusBadRequest, CodeGeneric, "registration failed")
		default:
			s.logger.Error(r.Context(), "registration failed", "error", err.Error())
			metrics.HTTPRequests.WithLabelValues("register", "error").Inc()
			writeError(w, http.StatusInternalServerError, CodeGeneric, "internal error")
		}
		return
	}

	token, err := s.manager.IssueToken(r.Context(), body.Username)
	if err != nil {
		s.logger.Error(r.Context(), "token issuance failed after registration", "error", err.Error())
		metrics.HTTPRequests.WithLabelValues("register", "error").Inc()
		writeError(w, http.StatusInternalServerError, CodeGeneric, "internal error")
		return
	}

	metrics.HTTPRequests.WithLabelValues("register", "ok").Inc()
	metrics.CredentialsCreated.Inc()
	writeSuccess(w, token)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {

	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		metrics.HTTPRequests.WithLabelValues("login", "client_error").Inc()
		writeError(w, http.StatusBadRequest, CodeInvalidBody, "invalid request body")
		return
	}

	token, err := s.manager.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		// unknown user and wrong password answer identically
		if errors.Is(err, common.ErrorUnauthorized) {
			metrics.HTTPRequests.WithLabelValues("login", "denied").Inc()
			writeError(w, http.StatusForbidden, CodeAccessDenied, "access denied")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		metrics.HTTPRequests.WithLabelValues("login", "error").Inc()
		writeError(w, http.StatusInternalServerError, CodeGeneric, "internal error")
		return
	}

	metrics.HTTPRequests.WithLabelValues("login", "ok").Inc()
	writeSuccess(w, token)
}

// handleVerify answers for any request that made it through the bearer
// middleware; the check itself already happened there.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	metrics.HTTPRequests.WithLabelValues("verify", "ok").Inc()
	writeSuccess(w, nil)
}

func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {

	subject, ok := SessionID(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, CodeAccessDenied, "access denied")
		return
	}

	role, err := s.manager.GetCredRole(r.Context(), subject)
	if err != nil {
		metrics.HTTPRequests.WithLabelValues("role", "error").Inc()
		writeError(w, http.StatusForbidden, CodeGeneric, "credential not found")
		return
	}

	metrics.HTTPRequests.WithLabelValues("role", "ok").Inc()
	writeSuccess(w, roleBody{Role: int(role)})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {

	subject, ok := SessionID(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, CodeAccessDenied, "access denied")
		return
	}

	var body passwordBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		metrics.HTTPRequests.WithLabelValues("password", "client_error").Inc()
		writeError(w, http.StatusBadRequest, CodeInvalidBody, "invalid request body")
		return
	}

	// the resulting credential is deliberately not echoed back
	if _, err := s.manager.ChangePassword(r.Context(), subject, body.Password); err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			metrics.HTTPRequests.WithLabelValues("password", "client_error").Inc()
			writeError(w, http.StatusBadRequest, CodeInvalidBody, "invalid password format")
		case errors.Is(err, common.ErrorNotFound):
			metrics.HTTPRequests.WithLabelValues("password", "error").Inc()
			writeError(w, http.StatusBadRequest, CodeGeneric, "credential not found")
		default:
			s.logger.Error(r.Context(), "password change failed", "error", err.Error())
			metrics.HTTPRequests.WithLabelValues("password", "error").Inc()
			writeError(w, http.StatusInternalServerError, CodeGeneric, "internal error")
		}
		return
	}

	metrics.HTTPRequests.WithLabelValues("password", "ok").Inc()
	writeSuccess(w, nil)
}

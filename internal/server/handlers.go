package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/schema"
)

const pageLayout = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFor(r)
	if err != nil {
		sess = s.sessions.create(s.newController())
		s.logger.Debug("session created", "sessions", s.sessions.count())
	}
	s.setSessionCookie(w, sess.id)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.writePage(w, r, sess, http.StatusOK)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	sess, ok := s.authorise(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	for _, path := range sess.ctrl.Paths() {
		if _, present := r.PostForm[path]; !present {
			continue
		}
		if err := sess.ctrl.Change(path, r.PostForm.Get(path)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	valid, err := sess.ctrl.SubmitForm(r.Context())
	switch {
	case err != nil:
		s.metrics.submission(outcomeFailed)
		s.logger.Error("registration submit failed", "err", err)
		s.writePage(w, r, sess, http.StatusInternalServerError)
	case !valid:
		s.metrics.submission(outcomeRejected)
		s.writePage(w, r, sess, http.StatusUnprocessableEntity)
	default:
		s.metrics.submission(outcomeAccepted)
		s.sessions.delete(sess.id)
		// The success page carries a fresh session so the form it shows can
		// be submitted again.
		next := s.sessions.create(s.newController())
		s.setSessionCookie(w, next.id)
		s.writePageWith(w, r, sess.ctrl, next, http.StatusOK)
	}
}

func (s *Server) handleFieldEvent(trigger form.Trigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form body", http.StatusBadRequest)
			return
		}
		sess, ok := s.authorise(w, r)
		if !ok {
			return
		}
		field := chi.URLParam(r, "field")

		sess.mu.Lock()
		defer sess.mu.Unlock()

		if err := applyFieldEvent(sess.ctrl, trigger, field, r); err != nil {
			if errors.Is(err, schema.ErrUnknownField) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		fragment, err := s.orch.GenerateField(r.Context(), orchestrator.Request{Control: sess.ctrl}, field)
		if err != nil {
			s.logger.Error("render field failed", "field", field, "err", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(fragment)
	}
}

// applyFieldEvent stores the posted value, then blurs for blur events. A
// blur only changes the value when it differs so the trigger policy sees a
// single blur.
func applyFieldEvent(ctrl form.Control, trigger form.Trigger, field string, r *http.Request) error {
	_, hasValue := r.PostForm["value"]
	value := r.PostForm.Get("value")

	if trigger == form.TriggerChange {
		return ctrl.Change(field, value)
	}
	if hasValue && ctrl.Value(field) != value {
		if err := ctrl.Change(field, value); err != nil {
			return err
		}
	}
	return ctrl.Blur(field)
}

type apiResponse struct {
	Status     string              `json:"status,omitempty"`
	Error      string              `json:"error,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	FormErrors []string            `json:"formErrors,omitempty"`
}

func (s *Server) handleAPIRegister(w http.ResponseWriter, r *http.Request) {
	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "invalid JSON body"})
		return
	}

	issues, err := registration.CheckShape(r.Context(), payload)
	if err != nil {
		s.logger.Error("shape check failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: "shape check failed"})
		return
	}
	if len(issues) > 0 {
		s.metrics.submission(outcomeRejected)
		s.writeIssues(w, r, issuesByPath(issues))
		return
	}

	object, _ := payload.(map[string]any)
	record, err := registration.Decode(object)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: err.Error()})
		return
	}

	ctrl := s.newController()
	ctrl.Reset(record)
	result, err := ctrl.Submit(r.Context())
	switch {
	case err != nil:
		s.metrics.submission(outcomeFailed)
		s.logger.Error("registration submit failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: err.Error()})
	case !result.Valid():
		s.metrics.submission(outcomeRejected)
		s.writeIssues(w, r, result.Errors())
	default:
		s.metrics.submission(outcomeAccepted)
		writeJSON(w, http.StatusCreated, apiResponse{Status: "registered"})
	}
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := registration.Document(r.Context())
	if err != nil {
		http.Error(w, "document unavailable", http.StatusInternalServerError)
		return
	}
	data, err := json.Marshal(doc)
	if err != nil {
		http.Error(w, "document unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// authorise resolves the session and checks its CSRF token. Both failures
// answer 403 since the token cannot be verified without a session.
func (s *Server) authorise(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess, err := s.sessionFor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return nil, false
	}
	token := r.Header.Get(csrfHeader)
	if token == "" {
		token = r.PostForm.Get(csrfField)
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(sess.csrf)) != 1 {
		s.logger.Warn("csrf token mismatch", "path", r.URL.Path)
		http.Error(w, "server: invalid csrf token", http.StatusForbidden)
		return nil, false
	}
	return sess, true
}

func (s *Server) sessionFor(r *http.Request) (*session, error) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if sess, err := s.sessions.get(cookie.Value); err == nil {
			return sess, nil
		}
	}
	return s.sessions.get(r.PostForm.Get(sessionField))
}

func (s *Server) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, sess *session, status int) {
	s.writePageWith(w, r, sess.ctrl, sess, status)
}

// writePageWith renders control with the hidden fields of tokens.
func (s *Server) writePageWith(w http.ResponseWriter, r *http.Request, control form.Control, tokens *session, status int) {
	req := orchestrator.Request{Control: control}
	req.RenderOptions.HiddenFields = render.MergeHiddenFields(nil,
		render.CSRFToken(csrfField, tokens.csrf),
		render.SessionField(sessionField, tokens.id),
	)

	body, err := s.orch.Generate(r.Context(), req)
	if err != nil {
		s.logger.Error("render form failed", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	title := "Register"
	if fm, err := s.orch.FormModel(r.Context()); err == nil && fm.Title != "" {
		title = fm.Title
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, pageLayout, html.EscapeString(title), body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeIssues answers 422 with messages mapped onto form fields. Paths that
// name no field, such as the payload root or an unsupported property, become
// form-level errors.
func (s *Server) writeIssues(w http.ResponseWriter, r *http.Request, issues map[string][]string) {
	fm, err := s.orch.FormModel(r.Context())
	if err != nil {
		s.logger.Error("form model unavailable", "err", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: "form model unavailable"})
		return
	}
	mapping := render.MapErrorPayload(fm, issues)
	writeJSON(w, http.StatusUnprocessableEntity, apiResponse{Errors: mapping.Fields, FormErrors: mapping.Form})
}

func issuesByPath(issues []schema.Issue) map[string][]string {
	out := make(map[string][]string)
	for _, issue := range issues {
		out[issue.Path] = append(out[issue.Path], issue.Message)
	}
	return out
}

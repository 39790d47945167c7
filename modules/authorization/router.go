package authorization

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/authzkit/authzkit/pkg/identity"
	"github.com/authzkit/authzkit/pkg/logger"
	"github.com/authzkit/authzkit/pkg/scopes"
	"github.com/authzkit/authzkit/pkg/token"
)

// Handle returns the module's HTTP handler for mounting:
//
//	r := chi.NewRouter()
//	r.Mount("/authz", svc.Handle())
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/permissions", s.listPermissions)
	r.Get("/roles", s.listRoles)

	r.Post("/grants", s.createGrant)
	r.Delete("/grants", s.deleteGrant)

	r.Post("/assignments", s.createAssignment)
	r.Delete("/assignments", s.deleteAssignment)

	r.Get("/users/{userID}/permissions", s.userPermissions)
	r.Get("/users/{userID}/grants", s.userGrants)

	return r
}

// listPermissions returns the full permission catalog as a tree.
func (s *Service) listPermissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"permissions": s.catalog.Tree(),
	})
}

type templateView struct {
	Type       scopes.DirectiveType `json:"type"`
	Permission string               `json:"permission"`
	Params     map[string]string    `json:"params,omitempty"`
}

type roleView struct {
	Code        string         `json:"code"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  []string       `json:"parameters,omitempty"`
	Templates   []templateView `json:"templates"`
}

// listRoles returns every registered role definition.
func (s *Service) listRoles(w http.ResponseWriter, r *http.Request) {
	codes := s.registry.Codes()
	views := make([]roleView, 0, len(codes))
	for _, code := range codes {
		role, err := s.registry.Get(code)
		if err != nil {
			continue
		}
		templates := make([]templateView, 0, len(role.Templates))
		for _, tpl := range role.Templates {
			templates = append(templates, templateView{
				Type:       tpl.Type,
				Permission: tpl.Permission,
				Params:     tpl.Params,
			})
		}
		views = append(views, roleView{
			Code:        role.Code,
			Name:        role.Name,
			Description: role.Description,
			Parameters:  role.TemplateParameters(),
			Templates:   templates,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"roles": views})
}

type grantView struct {
	UserID      uuid.UUID            `json:"user_id"`
	Type        scopes.DirectiveType `json:"type"`
	Identifier  string               `json:"permission_identifier"`
	Description string               `json:"description,omitempty"`
	GrantedBy   uuid.UUID            `json:"granted_by,omitempty"`
	GrantedAt   time.Time            `json:"granted_at"`
}

func toGrantView(g identity.Grant) grantView {
	return grantView{
		UserID:      g.UserID,
		Type:        g.Type,
		Identifier:  g.Identifier,
		Description: g.Description,
		GrantedBy:   g.GrantedBy,
		GrantedAt:   g.GrantedAt,
	}
}

// createGrant stores a direct permission grant. The acting administrator
// is taken from the verified token subject when one is present.
func (s *Service) createGrant(w http.ResponseWriter, r *http.Request) {
	var req identity.GrantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	req.GrantedBy = actorFromContext(r)

	grant, err := s.identity.Grant(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	s.invalidate(r.Context(), grant.UserID)

	s.log.InfoContext(r.Context(), "permission granted",
		logger.Component("authorization"),
		logger.UserID(grant.UserID),
		logger.Permission(grant.Identifier),
		logger.Directive(string(grant.Type)))
	writeJSON(w, http.StatusCreated, toGrantView(grant))
}

type revokeRequest struct {
	UserID     uuid.UUID `json:"user_id"`
	Identifier string    `json:"permission_identifier"`
}

// deleteGrant revokes a user's direct grant on an identifier.
func (s *Service) deleteGrant(w http.ResponseWriter, r *http.Request) {
	var req revokeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.identity.Revoke(r.Context(), req.UserID, req.Identifier); err != nil {
		writeError(w, err)
		return
	}
	s.invalidate(r.Context(), req.UserID)

	s.log.InfoContext(r.Context(), "permission revoked",
		logger.Component("authorization"),
		logger.UserID(req.UserID),
		logger.Permission(req.Identifier))
	w.WriteHeader(http.StatusNoContent)
}

type assignRequest struct {
	UserID   uuid.UUID         `json:"user_id"`
	RoleCode string            `json:"role_code"`
	Values   map[string]string `json:"parameter_values,omitempty"`
}

type assignmentView struct {
	UserID   uuid.UUID         `json:"user_id"`
	RoleCode string            `json:"role_code"`
	Values   map[string]string `json:"parameter_values,omitempty"`
}

// createAssignment assigns a role to a user, replacing any previous
// parameter values for the same role.
func (s *Service) createAssignment(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.UserID == uuid.Nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "missing user id"})
		return
	}

	assignment, err := s.identity.AssignRole(r.Context(), req.UserID, req.RoleCode, req.Values)
	if err != nil {
		writeError(w, err)
		return
	}
	s.invalidate(r.Context(), req.UserID)

	s.log.InfoContext(r.Context(), "role assigned",
		logger.Component("authorization"),
		logger.UserID(req.UserID),
		logger.RoleCode(assignment.RoleCode))
	writeJSON(w, http.StatusCreated, assignmentView{
		UserID:   req.UserID,
		RoleCode: assignment.RoleCode,
		Values:   assignment.Values,
	})
}

type unassignRequest struct {
	UserID   uuid.UUID `json:"user_id"`
	RoleCode string    `json:"role_code"`
}

// deleteAssignment removes a user's role assignment.
func (s *Service) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	var req unassignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.identity.UnassignRole(r.Context(), req.UserID, req.RoleCode); err != nil {
		writeError(w, err)
		return
	}
	s.invalidate(r.Context(), req.UserID)

	s.log.InfoContext(r.Context(), "role unassigned",
		logger.Component("authorization"),
		logger.UserID(req.UserID),
		logger.RoleCode(req.RoleCode))
	w.WriteHeader(http.StatusNoContent)
}

type directiveView struct {
	Type    scopes.DirectiveType `json:"type"`
	Pattern string               `json:"pattern"`
}

// userPermissions resolves and returns a user's effective directive set.
func (s *Service) userPermissions(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}

	directives, err := s.EffectiveDirectives(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]directiveView, 0, len(directives))
	for _, d := range directives {
		views = append(views, directiveView{Type: d.Type, Pattern: d.Pattern})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":    userID,
		"directives": views,
	})
}

// userGrants lists a user's direct grants.
func (s *Service) userGrants(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}

	grants, err := s.identity.ListGrants(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]grantView, 0, len(grants))
	for _, g := range grants {
		views = append(views, toGrantView(g))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"grants":  views,
	})
}

// actorFromContext recovers the acting administrator's id from the token
// subject. A missing or non-uuid subject yields uuid.Nil.
func actorFromContext(r *http.Request) uuid.UUID {
	subject, ok := token.GetSubject(r.Context())
	if !ok {
		return uuid.Nil
	}
	actor, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil
	}
	return actor
}

// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP delivery layer for administrative account management.

Every endpoint here requires the admin role; the router enforces it once at
mount time.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/worklink/internal/platform/middleware"
	requestutil "github.com/taibuivan/worklink/internal/platform/request"
	"github.com/taibuivan/worklink/internal/platform/respond"
	"github.com/taibuivan/worklink/internal/platform/sec"
	"github.com/taibuivan/worklink/internal/platform/validate"
	"github.com/taibuivan/worklink/internal/users/auth"
	"github.com/taibuivan/worklink/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements admin-facing account endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with admin account routes.
//
// # Endpoints
//   - GET   /                 : Paginated, searchable account directory.
//   - PATCH /{userID}/status  : Blocks or unblocks an account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireRole(sec.RoleAdmin))
	router.Get("/", handler.list)
	router.Patch("/{userID}/status", handler.updateStatus)

	return router
}

// # Request Payloads

type updateStatusRequest struct {
	Status string `json:"status"`
}

/*
List returns one page of the account directory.

GET /api/v1/admin/users?search=&page=&limit=

Response:
  - 200: []AccountSummary with pagination metadata
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := ListFilter{
		Search: request.URL.Query().Get("search"),
		Params: pagination.FromRequest(request),
	}

	page, err := handler.accountService.ListUsers(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Users,
		pagination.NewMeta(filter.Page, filter.Limit, page.Total))
}

/*
UpdateStatus blocks or unblocks an account.

PATCH /api/v1/admin/users/{userID}/status

Request:
  - Body: updateStatusRequest (Status: "ACTIVE" | "BLOCKED")

Response:
  - 200: AccountSummary: Updated account
  - 400: ErrValidation: Unknown status value
  - 404: ErrNotFound: Unknown account
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	var input updateStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.UUID("userID", userID).
		Required("status", input.Status).
		OneOf("status", input.Status, string(auth.StatusActive), string(auth.StatusBlocked))

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.accountService.UpdateStatus(request.Context(), userID, auth.UserStatus(input.Status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

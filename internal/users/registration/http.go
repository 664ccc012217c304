// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP delivery layer for account enrollment.

The handler validates enrollment payloads and delegates to [Service]. It is
strictly responsible for transport concerns (status codes, headers, JSON).
*/
package registration

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/worklink/internal/platform/request"
	"github.com/taibuivan/worklink/internal/platform/respond"
	"github.com/taibuivan/worklink/internal/platform/validate"
	"github.com/taibuivan/worklink/internal/users/auth"
)

// # Definitions & Constructors

// Handler implements registration-related HTTP endpoints.
type Handler struct {
	registrationService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{registrationService: service}
}

// Routes returns a [chi.Router] configured with registration-specific routes.
//
// # Endpoints
//   - POST /register          : Creates a member account.
//   - POST /register-employer : Creates an employer account with a company.
//   - POST /social            : Social sign-in (registers on first contact).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.registerMember)
	router.Post("/register-employer", handler.registerEmployer)
	router.Post("/social", handler.social)

	return router
}

// # Request Payloads

type memberRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	AcceptedTerms  bool   `json:"accepted_terms"`
	MarketingOptIn bool   `json:"marketing_opt_in"`
}

type employerRequest struct {
	memberRequest

	CompanyName string `json:"company_name"`
	Country     string `json:"country"`
	City        string `json:"city"`
	CompanySize string `json:"company_size"`
	Plan        string `json:"plan"`
	Telephone   string `json:"telephone"`
	ProfileURL  string `json:"profile_url"`
}

type socialRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Provider  string `json:"provider"`
}

// validateMember applies the shared member payload rules.
func validateMember(validator *validate.Validator, input memberRequest) {
	validator.Required(auth.FieldFirstName, input.FirstName).
		Required(auth.FieldLastName, input.LastName).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		Required(auth.FieldPassword, input.Password).
		MinLen(auth.FieldPassword, input.Password, auth.MinPasswordLength).
		Custom(FieldTerms, !input.AcceptedTerms, "must be accepted")
}

/*
RegisterMember handles the creation of a new member account.

POST /api/v1/users/register

Description: Validates input, checks for identity conflicts, and persists a
new unverified account. An OTP is mailed for email verification.

Request:
  - Body: memberRequest

Response:
  - 201: PublicProfile: Created account
  - 400: ErrValidation: Bad input, weak password, or missing consent
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) registerMember(writer http.ResponseWriter, request *http.Request) {
	var input memberRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validateMember(validator, input)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.registrationService.RegisterMember(request.Context(), MemberInput{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Password:       input.Password,
		AcceptedTerms:  input.AcceptedTerms,
		MarketingOptIn: input.MarketingOptIn,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, profile)
}

/*
RegisterEmployer handles the creation of a new employer account.

POST /api/v1/users/register-employer

Description: Creates an unverified employer account and its company record
in one operation. An OTP is mailed for email verification.

Request:
  - Body: employerRequest

Response:
  - 201: PublicProfile: Created account
  - 400: ErrValidation: Bad input or missing company details
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) registerEmployer(writer http.ResponseWriter, request *http.Request) {
	var input employerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validateMember(validator, input.memberRequest)
	validator.Required(FieldCompanyName, input.CompanyName).
		Required(FieldCountry, input.Country).
		Required(FieldCity, input.City)
	if input.Plan != "" {
		validator.OneOf(FieldPlan, input.Plan, PlanFree, PlanStandard, PlanPremium)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.registrationService.RegisterEmployer(request.Context(), EmployerInput{
		MemberInput: MemberInput{
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			Email:          input.Email,
			Password:       input.Password,
			AcceptedTerms:  input.AcceptedTerms,
			MarketingOptIn: input.MarketingOptIn,
		},
		CompanyName: input.CompanyName,
		Country:     input.Country,
		City:        input.City,
		CompanySize: input.CompanySize,
		Plan:        input.Plan,
		Telephone:   input.Telephone,
		ProfileURL:  input.ProfileURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, profile)
}

/*
Social handles sign-in through a social identity provider.

POST /api/v1/users/social

Description: Issues a token pair for the asserted identity, creating a
verified account on first contact.

Request:
  - Body: socialRequest (Email, Name, AvatarURL, Provider)

Response:
  - 200: SocialSession: Token pair and account
  - 400: ErrValidation: Bad input or unknown provider
  - 403: ErrForbidden: Account blocked
*/
func (handler *Handler) social(writer http.ResponseWriter, request *http.Request) {
	var input socialRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		Required(FieldName, input.Name).
		Required(FieldProvider, input.Provider).
		OneOf(FieldProvider, input.Provider,
			string(auth.ProviderGoogle), string(auth.ProviderLinkedIn))

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.registrationService.RegisterSocial(request.Context(), SocialInput{
		Email:     input.Email,
		Name:      input.Name,
		AvatarURL: input.AvatarURL,
		Provider:  auth.AuthProvider(input.Provider),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

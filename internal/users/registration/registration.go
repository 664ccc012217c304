// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package registration implements account enrollment for the Worklink platform.

It covers the three onboarding paths: direct member signup, employer signup
with a company profile, and social sign-in (which doubles as registration on
first contact).

# Architecture

Enrollment produces entities owned by the [auth] package; registration only
orchestrates their creation and the employer-specific company records.
*/
package registration

import (
	"time"
)

// # Domain Entities

// Company represents an employer's organization record.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Size      string    `json:"size,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Employer links an employer account to its company and plan.
type Employer struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CompanyID  string    `json:"company_id"`
	Plan       string    `json:"plan"`
	Telephone  string    `json:"telephone,omitempty"`
	ProfileURL string    `json:"profile_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// # Subscription Plans

const (
	PlanFree     = "free"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)

// # Field Identifiers

// Field names specific to the registration domain. Shared identity fields
// (email, password) live in the auth package.
const (
	FieldCompanyName = "company_name"
	FieldCountry     = "country"
	FieldCity        = "city"
	FieldPlan        = "plan"
	FieldProvider    = "provider"
	FieldName        = "name"
	FieldTerms       = "accepted_terms"
)

// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration

import (
	"context"
)

// # Employer Data Access

// EmployerRepository defines the data access contract for employer onboarding.
type EmployerRepository interface {

	/*
		CreateEmployerProfile persists the company and the employer link row
		atomically. Both rows exist or neither does.

		Parameters:
		  - context: context.Context
		  - employer: *Employer
		  - company: *Company

		Returns:
		  - error: Persistence failures
	*/
	CreateEmployerProfile(context context.Context, employer *Employer, company *Company) error
}

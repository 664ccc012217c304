// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// OTPTTL is the duration an email verification passcode remains valid.
	// Short-lived (5 minutes): the user is sitting in front of their inbox.
	OTPTTL = 5 * time.Minute

	// MinPasswordLength is the minimum accepted password length for
	// registration and password reset.
	MinPasswordLength = 6
)

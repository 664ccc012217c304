// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"
	"math/rand/v2"
)

// # One-Time Passcodes

// OTPDigits is the fixed length of generated email verification codes.
const OTPDigits = 6

// GenerateOTP returns a uniformly random 6-digit decimal code (100000-999999).
//
// OTPs prove mailbox ownership within a short expiry window; they are not
// bearer credentials, so the standard PRNG is sufficient here.
func GenerateOTP() string {
	return fmt.Sprintf("%06d", 100000+rand.IntN(900000))
}

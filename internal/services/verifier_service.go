package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"railbooking/internal/domain"
	"railbooking/internal/utils"

	"github.com/google/uuid"
)

// DefaultChallengeTTL is how long an OTP challenge stays valid.
const DefaultChallengeTTL = 5 * time.Minute

// OTPVerifier implements the Aadhaar OTP contract in memory. A
// challenge pairs a verified document with a one-time code; the
// workflow only passes the tatkal gate after ConfirmChallenge succeeds.
type OTPVerifier struct {
	mu         sync.Mutex
	challenges map[string]otpChallenge

	TTL time.Duration
	Now func() time.Time
	// CodeFn overrides code generation, used by tests and demo mode.
	CodeFn func() string
	// Sink receives generated codes. Delivery to a phone is out of
	// scope; when nil the code is only logged.
	Sink func(documentID, code string)
}

type otpChallenge struct {
	documentID string
	code       string
	expiresAt  time.Time
}

func NewOTPVerifier(ttl time.Duration) *OTPVerifier {
	if ttl <= 0 {
		ttl = DefaultChallengeTTL
	}
	return &OTPVerifier{
		challenges: make(map[string]otpChallenge),
		TTL:        ttl,
		Now:        time.Now,
	}
}

// RequestChallenge validates the Aadhaar number (exactly 12 digits) and
// issues a challenge id.
func (v *OTPVerifier) RequestChallenge(ctx context.Context, documentID string) (string, error) {
	if len(documentID) != 12 || !utils.DigitsOnly(documentID) {
		return "", domain.VerificationError{Reason: domain.ReasonInvalidDocument}
	}

	code := v.generateCode()
	id := uuid.NewString()

	v.mu.Lock()
	v.challenges[id] = otpChallenge{
		documentID: documentID,
		code:       code,
		expiresAt:  v.now().Add(v.TTL),
	}
	v.mu.Unlock()

	if v.Sink != nil {
		v.Sink(documentID, code)
	} else {
		utils.LogEvent("", "verifier", "challenge", fmt.Sprintf("challenge=%s sent", id))
	}
	return id, nil
}

// ConfirmChallenge checks the submitted code. A challenge is consumed
// on success and on expiry; a wrong code leaves it open for retry.
func (v *OTPVerifier) ConfirmChallenge(ctx context.Context, challengeID, code string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch, ok := v.challenges[challengeID]
	if !ok {
		return domain.VerificationError{Reason: domain.ReasonChallengeExpired}
	}
	if v.now().After(ch.expiresAt) {
		delete(v.challenges, challengeID)
		return domain.VerificationError{Reason: domain.ReasonChallengeExpired}
	}
	if ch.code != code {
		return domain.VerificationError{Reason: domain.ReasonCodeMismatch}
	}
	delete(v.challenges, challengeID)
	return nil
}

func (v *OTPVerifier) generateCode() string {
	if v.CodeFn != nil {
		return v.CodeFn()
	}
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

func (v *OTPVerifier) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

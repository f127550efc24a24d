package services

import (
	"context"
	"testing"
	"time"

	"railbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier() *OTPVerifier {
	v := NewOTPVerifier(5 * time.Minute)
	v.CodeFn = func() string { return "123456" }
	v.Sink = func(string, string) {}
	return v
}

func TestRequestChallenge_RejectsBadDocument(t *testing.T) {
	v := newTestVerifier()
	ctx := context.Background()

	for _, doc := range []string{"", "12345", "1234567890123", "12345678901a"} {
		_, err := v.RequestChallenge(ctx, doc)
		require.Error(t, err, doc)
		assert.Equal(t, domain.ReasonInvalidDocument, domain.VerificationReason(err))
	}
}

func TestConfirmChallenge_Success(t *testing.T) {
	v := newTestVerifier()
	ctx := context.Background()

	id, err := v.RequestChallenge(ctx, "123456789012")
	require.NoError(t, err)

	require.NoError(t, v.ConfirmChallenge(ctx, id, "123456"))

	// consumed on success
	err = v.ConfirmChallenge(ctx, id, "123456")
	assert.Equal(t, domain.ReasonChallengeExpired, domain.VerificationReason(err))
}

func TestConfirmChallenge_WrongCodeLeavesChallengeOpen(t *testing.T) {
	v := newTestVerifier()
	ctx := context.Background()

	id, err := v.RequestChallenge(ctx, "123456789012")
	require.NoError(t, err)

	err = v.ConfirmChallenge(ctx, id, "000000")
	assert.Equal(t, domain.ReasonCodeMismatch, domain.VerificationReason(err))

	// retry with the right code still works
	require.NoError(t, v.ConfirmChallenge(ctx, id, "123456"))
}

func TestConfirmChallenge_Expired(t *testing.T) {
	v := newTestVerifier()
	now := time.Now()
	v.Now = func() time.Time { return now }
	ctx := context.Background()

	id, err := v.RequestChallenge(ctx, "123456789012")
	require.NoError(t, err)

	now = now.Add(6 * time.Minute)
	err = v.ConfirmChallenge(ctx, id, "123456")
	assert.Equal(t, domain.ReasonChallengeExpired, domain.VerificationReason(err))
}

func TestConfirmChallenge_UnknownID(t *testing.T) {
	v := newTestVerifier()
	err := v.ConfirmChallenge(context.Background(), "missing", "123456")
	assert.Equal(t, domain.ReasonChallengeExpired, domain.VerificationReason(err))
}

package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("alice", secret, time.Hour)
	require.NoError(t, err)

	account, err := AccountFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "alice", account)
}

func TestAccountFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("u1", secret, -1*time.Second)
	require.NoError(t, err)

	_, err = AccountFromToken(tok, secret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestAccountFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = AccountFromToken(tok, []byte("wrong-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestAccountFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := AccountFromToken("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestAccountFromToken_EmptyAccount(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := GenerateToken("", secret, time.Hour)
	require.NoError(t, err)

	_, err = AccountFromToken(tok, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestAccountFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{AccountID: "mallory"})
	s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = AccountFromToken(s, []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

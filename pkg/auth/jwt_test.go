package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	svc := &JWTService{}

	token, err := svc.GenerateJWT(42, "donor", time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "donor", claims.Role)
	assert.Equal(t, "givehub", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := &JWTService{}

	token, err := svc.GenerateJWT(42, "donor", time.Now().Add(-time.Hour))
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := &JWTService{}

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

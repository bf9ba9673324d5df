package v1handler_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checker/internal/api/handler/v1handler"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// helper to generate an RSA key pair and return the private key and PEM-encoded public key.
func genRSAKeys(tb testing.TB) (*rsa.PrivateKey, string) {
	tb.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(tb, err, "failed to generate RSA key")
	pubASN1, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(tb, err, "failed to marshal public key")
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubASN1})

	return priv, string(pubPEM)
}

func signJWTRS256(tb testing.TB, priv *rsa.PrivateKey, issuedAt, exp time.Time) string {
	tb.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "tester",
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(exp),
		NotBefore: jwt.NewNumericDate(issuedAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(priv)
	require.NoError(tb, err, "failed to sign token")

	return signed
}

func protectedOK(t *testing.T, pubPEM string) http.Handler {
	t.Helper()

	sh, err := v1handler.NewSecHandler(&v1handler.SecHandlerOptions{PublicKey: pubPEM})
	require.NoError(t, err)

	return sh.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestWrap_ValidToken(t *testing.T) {
	priv, pubPEM := genRSAKeys(t)
	h := protectedOK(t, pubPEM)

	req := httptest.NewRequest(http.MethodGet, "/v1/check", nil)
	req.Header.Set("Authorization", "Bearer "+signJWTRS256(t, priv, time.Now(), time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestWrap_MissingToken(t *testing.T) {
	_, pubPEM := genRSAKeys(t)
	h := protectedOK(t, pubPEM)

	req := httptest.NewRequest(http.MethodGet, "/v1/check", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWrap_ExpiredToken(t *testing.T) {
	priv, pubPEM := genRSAKeys(t)
	h := protectedOK(t, pubPEM)

	req := httptest.NewRequest(http.MethodGet, "/v1/check", nil)
	req.Header.Set("Authorization",
		"Bearer "+signJWTRS256(t, priv, time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWrap_TokenSignedWithWrongKey(t *testing.T) {
	_, pubPEM := genRSAKeys(t)
	otherPriv, _ := genRSAKeys(t)
	h := protectedOK(t, pubPEM)

	req := httptest.NewRequest(http.MethodGet, "/v1/check", nil)
	req.Header.Set("Authorization", "Bearer "+signJWTRS256(t, otherPriv, time.Now(), time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWrap_DisabledWithoutKey(t *testing.T) {
	sh, err := v1handler.NewSecHandler(nil)
	require.NoError(t, err)

	h := sh.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/check", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNewSecHandler_BadKey(t *testing.T) {
	_, err := v1handler.NewSecHandler(&v1handler.SecHandlerOptions{PublicKey: "not a pem"})
	require.Error(t, err)
}

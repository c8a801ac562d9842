package helpers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/golang-jwt/jwt/v5"
)

const (
	VerificationFolder = "verifications"

	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// googleJWKSURL serves the certificates Google signs ID tokens with.
const googleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// IssueTokenPair signs an HS256 access/refresh pair whose subject is the
// user's row id in the shared store.
func IssueTokenPair(userID int64, email, role string, secret []byte) (*TokenPair, error) {
	now := time.Now()
	sub := strconv.FormatInt(userID, 10)

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		Role:      role,
		Email:     email,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	})
	accessStr, err := access.SignedString(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %v", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		Role:      role,
		Email:     email,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTokenTTL)),
		},
	})
	refreshStr, err := refresh.SignedString(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %v", err)
	}

	return &TokenPair{Access: accessStr, Refresh: refreshStr}, nil
}

func ValidateToken(tokenStr string, secret []byte) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	if claims.TokenType != TokenTypeAccess && claims.TokenType != "" {
		return nil, errors.New("not an access token")
	}
	return claims, nil
}

func (c *CustomClaims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

type googleIDClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// VerifyGoogleIDToken checks a Google ID token against Google's JWKS and
// returns the verified email and display name.
func VerifyGoogleIDToken(ctx context.Context, idToken string) (email, name string, err error) {
	jctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(googleJWKSURL, keyfunc.Options{Ctx: jctx})
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch Google JWKS: %v", err)
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(idToken, &googleIDClaims{}, jwks.Keyfunc)
	if err != nil {
		return "", "", fmt.Errorf("invalid or expired Google token: %v", err)
	}
	claims, ok := token.Claims.(*googleIDClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid Google token claims")
	}
	if claims.Issuer != "https://accounts.google.com" && claims.Issuer != "accounts.google.com" {
		return "", "", errors.New("unexpected Google token issuer")
	}
	if strings.TrimSpace(claims.Email) == "" {
		return "", "", errors.New("Google did not provide an email")
	}

	name = strings.TrimSpace(claims.Name)
	if name == "" {
		name = strings.Split(claims.Email, "@")[0]
	}
	return claims.Email, name, nil
}

var referralBasePattern = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// GenerateReferralCode builds HAMRO-{BASE}-{YEAR} from the username (or
// email when the username is empty). Collision handling is the caller's
// job: append RandomSuffix(4) and retry.
func GenerateReferralCode(username, email string) string {
	base := strings.TrimSpace(username)
	if base == "" {
		base = strings.TrimSpace(email)
	}
	if base == "" {
		base = "user"
	}
	base = referralBasePattern.ReplaceAllString(base, "")
	base = strings.ToUpper(strings.ReplaceAll(base, " ", "-"))
	if len(base) > 12 {
		base = base[:12]
	}
	if base == "" {
		base = "USER"
	}
	return fmt.Sprintf("HAMRO-%s-%d", base, time.Now().Year())
}

const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func RandomSuffix(n int) string {
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(suffixAlphabet))))
		if err != nil {
			out[i] = 'X'
			continue
		}
		out[i] = suffixAlphabet[idx.Int64()]
	}
	return string(out)
}

// GenerateResetCode returns a 4-digit password reset code.
func GenerateResetCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "0000"
	}
	return fmt.Sprintf("%04d", n.Int64())
}

// RandomToken returns a URL-safe opaque token.
func RandomToken(bytes int) string {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return RandomSuffix(bytes)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

// UploadDocument pushes a verification document (file path, URL or data
// URI) to Cloudinary and returns its secure URL.
func UploadDocument(ctx context.Context, cld *cloudinary.Cloudinary, file string, folder string) (string, error) {
	if strings.TrimSpace(file) == "" {
		return "", errors.New("empty document")
	}
	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: folder,
		Tags:   []string{"hamrosewa"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %v", err)
	}
	return uploadResult.SecureURL, nil
}

package helper

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/CuCryptos/cruise-photos/config"
	"github.com/CuCryptos/cruise-photos/model"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckAdminCredentials compares against the configured admin login. When
// ADMIN_PASSWORD_HASH is set it wins over the plain ADMIN_PASSWORD.
func CheckAdminCredentials(email, password string) bool {
	adminEmail := config.Config("ADMIN_EMAIL")
	if adminEmail == "" || !strings.EqualFold(email, adminEmail) {
		return false
	}
	if hash := config.Config("ADMIN_PASSWORD_HASH"); hash != "" {
		return CheckPasswordHash(password, hash)
	}
	return password != "" && password == config.Config("ADMIN_PASSWORD")
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["adminEmail"] = tokenClaim.AdminEmail
	claims["exp"] = time.Now().Add(time.Hour * 12).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return token, nil
}

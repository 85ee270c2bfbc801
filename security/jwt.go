package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gigwork-chat-app/config/common"
	"gigwork-chat-app/entity"
	"gigwork-chat-app/enum"
)

type JWT struct {
	config *common.Config
}

// Identity is the verified caller handed to the chat core: a user ID plus a
// role tag.
type Identity struct {
	UserID string
	Role   enum.Role
}

func NewJWT(config *common.Config) *JWT {
	return &JWT{config: config}
}

func (j *JWT) GenerateToken(user *entity.User) (string, error) {
	secretKey := j.config.GetJwtConfig()

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"aud":     "gigwork-chat-app",
		"iss":     "gigwork-chat-app",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 1).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(secretKey)
}

func (j *JWT) VerifyJwtToken(token string) (jwt.MapClaims, error) {
	secretKey := j.config.GetJwtConfig()

	tokenParse, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := tokenParse.Claims.(jwt.MapClaims); ok && tokenParse.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

// VerifyIdentity validates a bearer credential and returns the caller
// identity; connections failing this check must be closed before any event
// is processed.
func (j *JWT) VerifyIdentity(token string) (Identity, error) {
	claims, err := j.VerifyJwtToken(token)
	if err != nil {
		return Identity{}, err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, jwt.ErrInvalidKey
	}

	role, _ := claims["role"].(string)
	return Identity{UserID: userID, Role: enum.Role(role)}, nil
}

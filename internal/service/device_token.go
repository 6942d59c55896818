package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrDeviceTokenInvalid 设备令牌无效
var ErrDeviceTokenInvalid = errors.New("device token invalid")

// DeviceClaims 设备令牌声明
// 设备令牌只承载匿名设备标识，不绑定任何账号。
type DeviceClaims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

// IssueDeviceToken 为设备标识签发 HS256 令牌
func IssueDeviceToken(secret, deviceID string, expireHours int) (string, error) {
	if secret == "" {
		return "", ErrDeviceTokenInvalid
	}
	if expireHours <= 0 {
		expireHours = 24 * 30
	}
	now := time.Now()
	claims := DeviceClaims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseDeviceToken 解析设备令牌并返回设备标识
func ParseDeviceToken(secret, tokenString string) (string, error) {
	if secret == "" || strings.TrimSpace(tokenString) == "" {
		return "", ErrDeviceTokenInvalid
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &DeviceClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.DeviceID == "" {
		return "", ErrDeviceTokenInvalid
	}
	return claims.DeviceID, nil
}

// NewDeviceID 生成新的匿名设备标识
func NewDeviceID() string {
	return uuid.NewString()
}

package security

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims 令牌载荷，sub 为用户 ID 的十进制字符串
type UserClaims struct {
	jwt.RegisteredClaims
}

// UserID 解析 sub，缺失或非数字都视为无效令牌
func (c *UserClaims) UserID() (uint64, error) {
	if c.Subject == "" {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

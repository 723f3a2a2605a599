package consts

import "time"

const (
	RevokedTokenKey = "token:revoked:"
	OAuthStateKey   = "oauth:state:"
	CategoryListKey = "category:list"
)

const (
	OAuthStateTTL   = 10 * time.Minute
	CategoryListTTL = 10 * time.Minute
)

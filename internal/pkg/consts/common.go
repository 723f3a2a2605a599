package consts

const (
	MimePrefixImage = "image/"
	MimePrefixVideo = "video/"
)

const (
	DefaultAvatarURL = "/avatars/default.jpg"
	DefaultPageSize  = 100
)

// ContextKey gin.Context / context.Context 中的键
const (
	BaseURL     = "base_url"
	IdentityKey = "identity"
	UserIDKey   = "user_id"
	RoleKey     = "role"
	TokenKey    = "access_token"
)

package desensitize

const mask = "******"

var (
	// BearerRule Bearer 凭证脱敏（"Bearer eyJhbGciOi..." -> "Bearer ******"）
	BearerRule = MustNewContentRule(
		"bearer",
		`(?i)(bearer)\s+[A-Za-z0-9\-._~+/]+=*`,
		"$1 "+mask,
	)

	// AuthorizationRule authorization 字段脱敏
	AuthorizationRule = MustNewFieldRule("authorization", "authorization", `.+`, mask)

	// TokenRule token 字段脱敏
	TokenRule = MustNewFieldRule("token", "token", `.+`, mask)

	// SecretRule secret 字段脱敏
	SecretRule = MustNewFieldRule("secret", "secret", `.+`, mask)

	// PasswordRule password 字段脱敏
	PasswordRule = MustNewFieldRule("password", "password", `.+`, mask)
)

// BuiltinRules 返回所有内置规则
func BuiltinRules() []Rule {
	return []Rule{
		AuthorizationRule,
		BearerRule,
		TokenRule,
		SecretRule,
		PasswordRule,
	}
}

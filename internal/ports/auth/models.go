package auth

// Claims representa la información extraída del token.
// Un Claims vacío corresponde a un visitante anónimo.
type Claims struct {
	UserID      string
	Email       string
	TenantID    string
	Permissions []string
}

func (c Claims) HasPermission(p string) bool {
	for _, have := range c.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

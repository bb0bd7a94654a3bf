package token

import "time"

// Maker 發行與驗證 bearer token
type Maker interface {
	CreateToken(userID uint, role string, duration time.Duration) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}

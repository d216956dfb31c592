package helpers

import (
	"crypto/rand"
	"encoding/base64"
)

// Redis key builders for short-lived auth tokens.

// KeyMagicLink is the Redis key mapping a magic-link token to a user id.
func KeyMagicLink(token string) string {
	return "auth:magiclink:" + token
}

// KeyUserCache is the Redis key for the cached current-user document.
func KeyUserCache(uid string) string {
	return "user:cache:" + uid
}

// KeySession is the Redis key for the active session hash of a user.
func KeySession(uid string) string {
	return "user:session:" + uid
}

// GenToken generates n random bytes encoded as URL-safe base64.
func GenToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

const csrfTTL = 12 * time.Hour

// CSRF issues and verifies per-user tokens of the form "<unix>.<hex hmac>".
type CSRF struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCSRF(secret string) *CSRF {
	return &CSRF{secret: []byte(secret), ttl: csrfTTL, now: time.Now}
}

func (c *CSRF) Issue(userID int64) string {
	ts := strconv.FormatInt(c.now().Unix(), 10)
	return ts + "." + c.sign(userID, ts)
}

func (c *CSRF) Verify(userID int64, token string) bool {
	ts, sig, ok := strings.Cut(token, ".")
	if !ok || ts == "" || sig == "" {
		return false
	}
	issued, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}
	age := c.now().Sub(time.Unix(issued, 0))
	if age < 0 || age > c.ttl {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(c.sign(userID, ts)))
}

func (c *CSRF) sign(userID int64, ts string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(strconv.FormatInt(userID, 10) + ":" + ts))
	return hex.EncodeToString(mac.Sum(nil))
}

package service

import (
	"github.com/sqids/sqids-go"

	"kanban_backend/internal/domain"
)

// IDCodec turns numeric ids into short opaque strings for shareable links.
type IDCodec struct {
	s *sqids.Sqids
}

func NewIDCodec(alphabet string, minLength uint8) (*IDCodec, error) {
	opts := sqids.Options{MinLength: minLength}
	if alphabet != "" {
		opts.Alphabet = alphabet
	}
	s, err := sqids.New(opts)
	if err != nil {
		return nil, err
	}
	return &IDCodec{s: s}, nil
}

func (c *IDCodec) Encode(id int64) string {
	if id <= 0 {
		return ""
	}
	h, err := c.s.Encode([]uint64{uint64(id)})
	if err != nil {
		return ""
	}
	return h
}

// Decode rejects anything that is not the canonical encoding of one id.
func (c *IDCodec) Decode(hash string) (int64, error) {
	ids := c.s.Decode(hash)
	if len(ids) != 1 || ids[0] == 0 {
		return 0, domain.ErrNotFound
	}
	if c.Encode(int64(ids[0])) != hash {
		return 0, domain.ErrNotFound
	}
	return int64(ids[0]), nil
}

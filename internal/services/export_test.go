package services

import "time"

// NewIdentity builds a verified identity for tests.
func NewIdentity(email string) Identity { return Identity{email: email} }

func (s *TokenService) SetClock(now func() time.Time) { s.now = now }

func (s *ProductService) SetClock(now func() time.Time) { s.now = now }

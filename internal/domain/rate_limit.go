package domain

import "time"

// RateLimitResult es la respuesta de un limitador de ventana fija.
type RateLimitResult struct {
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
}

// RateLimitRecord es el contador mutable de una clave.
type RateLimitRecord struct {
	Count   int
	ResetAt time.Time
}

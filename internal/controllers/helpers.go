package controllers

import "time"

const (
	// DefaultRequestTimeout предельное время обработки служебных запросов.
	DefaultRequestTimeout = 3 * time.Second
)

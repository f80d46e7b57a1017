package handler

const (
	errEmailTaken = "Email already registered"
)

package domain

import "errors"

// ErrPageNotFound is returned when a page ID cannot be resolved in the menu.
// During a request this indicates menu misconfiguration and fails the request.
var ErrPageNotFound = errors.New("menu page not found")

// ErrSessionNotFound is returned by stores when no record exists for a session ID.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidMenu is returned by the builder when a menu definition does not
// validate (missing root, dangling option target, duplicate wildcard).
var ErrInvalidMenu = errors.New("invalid menu definition")

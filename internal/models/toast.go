package models

import "time"

// ToastType classifies a toast notification
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
)

// ToastPosition is where the toast is anchored on screen
type ToastPosition string

const (
	ToastTop    ToastPosition = "top"
	ToastBottom ToastPosition = "bottom"
)

// Toast is a transient on-screen notification
type Toast struct {
	ID         string        `json:"id"`
	Message    string        `json:"message"`
	Type       ToastType     `json:"type"`
	Position   ToastPosition `json:"position"`
	DurationMS int64         `json:"duration_ms"`
	ShownAt    time.Time     `json:"shown_at"`
}

// ToastState is either hidden or a single visible toast. A new toast
// replaces the current one.
type ToastState struct {
	Visible bool   `json:"visible"`
	Toast   *Toast `json:"toast,omitempty"`
}

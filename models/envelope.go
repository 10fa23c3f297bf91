package models

// Envelope is the uniform backend response wrapper. Code is either a
// string sentinel or a number depending on the backend service.
type Envelope[T any] struct {
	Code any    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data T      `json:"data"`
}

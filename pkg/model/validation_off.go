//go:build novalidate

package model

const validating = false

package domain

import "strings"

type ID string

func (vo ID) String() string {
	return string(vo)
}

type Language string

func (vo Language) String() string {
	return string(vo)
}

type UserName string

func (vo UserName) String() string {
	return string(vo)
}

// Normalize folds a user name so lookups are case-insensitive.
func (vo UserName) Normalize() string {
	return strings.ToLower(strings.TrimSpace(string(vo)))
}

package validators

import (
	"errors"
	"unicode/utf8"
)

var (
	ErrPasswordEmpty    = errors.New("no password provided")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong  = errors.New("password can't be longer than 30 characters")

	ErrUsernameEmpty   = errors.New("no username provided")
	ErrUsernameLength  = errors.New("username must be between 3 and 30 characters long")
	ErrUsernameInvalid = errors.New("username can only contain alphanumeric characters")
	ErrTokenEmpty      = errors.New("no verification token provided")
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	n := utf8.RuneCountInString(p)
	if n < 6 {
		return ErrPasswordTooShort
	}

	if n > 30 {
		return ErrPasswordTooLong
	}

	return nil
}

func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if n := len(u); n < 3 || n > 30 {
		return ErrUsernameLength
	}

	for _, r := range u {
		if !isAlnum(r) {
			return ErrUsernameInvalid
		}
	}

	return nil
}

func TokenValidator(t string) error {
	if t == "" {
		return ErrTokenEmpty
	}

	return nil
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

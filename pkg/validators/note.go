package validators

import (
	"errors"
	"unicode/utf8"
)

var (
	ErrTitleEmpty      = errors.New("no title provided")
	ErrTitleLength     = errors.New("title must be between 3 and 255 characters long")
	ErrContentEmpty    = errors.New("no content provided")
	ErrContentTooShort = errors.New("content must be at least 10 characters long")
	ErrNoChanges       = errors.New("no edit options provided")

	ErrCategoryNameEmpty  = errors.New("no category name provided")
	ErrCategoryNameLength = errors.New("category name must be between 3 and 50 characters long")
)

func TitleValidator(t string) error {
	if t == "" {
		return ErrTitleEmpty
	}

	if n := utf8.RuneCountInString(t); n < 3 || n > 255 {
		return ErrTitleLength
	}

	return nil
}

func ContentValidator(c string) error {
	if c == "" {
		return ErrContentEmpty
	}

	if utf8.RuneCountInString(c) < 10 {
		return ErrContentTooShort
	}

	return nil
}

// NoteEditValidator checks a partial note edit. At least one field has to be
// set and every set field must be valid on its own.
func NoteEditValidator(title, content *string) error {
	if title == nil && content == nil {
		return ErrNoChanges
	}

	if title != nil {
		if err := TitleValidator(*title); err != nil {
			return err
		}
	}

	if content != nil {
		if err := ContentValidator(*content); err != nil {
			return err
		}
	}

	return nil
}

func CategoryNameValidator(n string) error {
	if n == "" {
		return ErrCategoryNameEmpty
	}

	if l := utf8.RuneCountInString(n); l < 3 || l > 50 {
		return ErrCategoryNameLength
	}

	return nil
}

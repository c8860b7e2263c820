package validator

import "strings"

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

func ValidateChannel(name, chType string, password *string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(name) == "" {
		errs.Add("name", "Please enter a channel name")
	} else if len(name) > 100 {
		errs.Add("name", "Channel name is too long")
	}

	if chType != "" && chType != "public" && chType != "private" {
		errs.Add("type", "Channel type must be public or private")
	}

	// A present-but-empty password means the caller asked for one and
	// left it blank.
	if password != nil && strings.TrimSpace(*password) == "" {
		errs.Add("password", "Please enter a password")
	}

	return errs
}

func ValidateJoinPrivate(name, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(name) == "" {
		errs.Add("name", "Please enter a channel name")
	}
	if strings.TrimSpace(password) == "" {
		errs.Add("password", "Please enter a password")
	}

	return errs
}

func ValidateMessage(text string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(text) == "" {
		errs.Add("text", "Message text is required")
	}

	return errs
}

func ValidateDMTarget(target, current string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(target) == "" {
		errs.Add("username", "Please enter a username")
	} else if target == current {
		errs.Add("username", "You cannot message yourself")
	}

	return errs
}

func ValidateAnnouncement(title string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(title) == "" {
		errs.Add("title", "Please enter a title")
	}

	return errs
}

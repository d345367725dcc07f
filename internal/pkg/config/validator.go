package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ValidateDuration checks that duration lies within [min, max].
func ValidateDuration(duration, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}

	if duration < min {
		return fmt.Errorf("duration %v is below minimum %v", duration, min)
	}

	if duration > max {
		return fmt.Errorf("duration %v exceeds maximum %v", duration, max)
	}

	return nil
}

// ValidateIntRange checks that value lies within [min, max].
func ValidateIntRange(value, min, max int) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%d) cannot be greater than max (%d)", min, max)
	}

	if value < min {
		return fmt.Errorf("value %d is below minimum %d", value, min)
	}

	if value > max {
		return fmt.Errorf("value %d exceeds maximum %d", value, max)
	}

	return nil
}

// ValidateNonBlank rejects values made only of whitespace.
func ValidateNonBlank(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("value cannot be blank")
	}
	return nil
}

// ValidateAbsoluteURL requires an http or https URL with a host.
func ValidateAbsoluteURL(value string) error {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid URL '%s': %w", value, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL '%s': scheme must be http or https", value)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL '%s': missing host", value)
	}
	return nil
}

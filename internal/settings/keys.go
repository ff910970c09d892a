package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Keys lists the names accepted by Set, in display order.
var Keys = []string{
	"notifications.email",
	"notifications.push",
	"notifications.marketing",
	"assistant_delay",
	"show_completed",
}

// Get returns the string form of one preference.
func (p Preferences) Get(key string) (string, error) {
	switch key {
	case "notifications.email":
		return strconv.FormatBool(p.Notifications.Email), nil
	case "notifications.push":
		return strconv.FormatBool(p.Notifications.Push), nil
	case "notifications.marketing":
		return strconv.FormatBool(p.Notifications.Marketing), nil
	case "assistant_delay":
		return p.AssistantDelay.String(), nil
	case "show_completed":
		return strconv.FormatBool(p.ShowCompleted), nil
	default:
		return "", fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
}

// Set parses value and assigns it to the named preference.
func (p *Preferences) Set(key, value string) error {
	value = strings.TrimSpace(value)
	if key == "assistant_delay" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("assistant_delay: %w", err)
		}
		if d < 0 || d > MaxAssistantDelay {
			return fmt.Errorf("assistant_delay must be between 0 and %s", MaxAssistantDelay)
		}
		p.AssistantDelay = d
		return nil
	}

	var target *bool
	switch key {
	case "notifications.email":
		target = &p.Notifications.Email
	case "notifications.push":
		target = &p.Notifications.Push
	case "notifications.marketing":
		target = &p.Notifications.Marketing
	case "show_completed":
		target = &p.ShowCompleted
	default:
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*target = b
	return nil
}

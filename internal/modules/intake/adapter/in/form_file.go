package in

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	intakedto "heartrisk/internal/modules/intake/dto"
)

const dateOfBirthKey = "date_of_birth"

// LoadFormFile reads a flat YAML intake file: date_of_birth, numeric fields
// and flags keyed by their wire names. Flags accept true/false or 0/1.
func LoadFormFile(path string) (intakedto.FormInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return intakedto.FormInput{}, fmt.Errorf("read form file: %w", err)
	}
	return ParseForm(raw)
}

func ParseForm(raw []byte) (intakedto.FormInput, error) {
	doc := map[string]any{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return intakedto.FormInput{}, fmt.Errorf("decode form file: %w", err)
	}
	form := intakedto.FormInput{Values: map[string]string{}, Flags: map[string]bool{}}
	for key, value := range doc {
		switch {
		case key == dateOfBirthKey:
			form.DateOfBirth = dateText(value)
		case isFlag(key):
			on, err := flagValue(value)
			if err != nil {
				return intakedto.FormInput{}, fmt.Errorf("flag %s: %w", key, err)
			}
			form.Flags[key] = on
		default:
			form.Values[key] = scalarText(value)
		}
	}
	return form, nil
}

func isFlag(key string) bool {
	for _, f := range intakedto.FlagFields {
		if f.Name == key {
			return true
		}
	}
	return false
}

func dateText(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(intakedto.DateLayout)
	}
	return scalarText(v)
}

func scalarText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func flagValue(v any) (bool, error) {
	switch x := v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case int:
		return x != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "", "0", "false", "no":
			return false, nil
		case "1", "true", "yes":
			return true, nil
		}
	}
	return false, fmt.Errorf("expected boolean or 0/1, got %v", v)
}

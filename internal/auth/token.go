package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// TokenConfig holds a pre-acquired token used verbatim.
type TokenConfig struct {
	Token string `mapstructure:"token"`
	// Prefix defaults to "Bearer". An explicit "none" injects the bare token.
	Prefix string `mapstructure:"prefix"`
}

type tokenMethod struct{ c TokenConfig }

func (m tokenMethod) Acquire(_ context.Context) (string, error) {
	tok := strings.TrimSpace(m.c.Token)
	if tok == "" {
		return "", errors.New("auth: token: token is required")
	}
	prefix := strings.TrimSpace(m.c.Prefix)
	switch prefix {
	case "":
		return "Bearer " + tok, nil
	case "none":
		return tok, nil
	default:
		return prefix + " " + tok, nil
	}
}

func init() {
	Register("token", func(spec map[string]interface{}) (Method, error) {
		var c TokenConfig
		if err := mapstructure.Decode(spec, &c); err != nil {
			return nil, err
		}
		return tokenMethod{c: c}, nil
	})
}

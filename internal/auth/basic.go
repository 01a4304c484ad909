package auth

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/go-viper/mapstructure/v2"
)

// BasicConfig holds credentials for HTTP basic authentication.
type BasicConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type basicMethod struct{ c BasicConfig }

func (m basicMethod) Acquire(_ context.Context) (string, error) {
	if m.c.Username == "" {
		return "", errors.New("auth: basic: username is required")
	}
	raw := m.c.Username + ":" + m.c.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

func init() {
	Register("basic", func(spec map[string]interface{}) (Method, error) {
		var c BasicConfig
		if err := mapstructure.Decode(spec, &c); err != nil {
			return nil, err
		}
		return basicMethod{c: c}, nil
	})
}

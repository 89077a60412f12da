// Package hashsecret produces ADMIN_PASSWORD_HASH values for operators.
package hashsecret

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/waitlist-site/backend/internal/common/crypto"
)

type Config struct {
	Secret string
}

// ParseConfig reads -secret. When it is absent Run reads the secret from
// input instead, which keeps it out of shell history.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.Secret, "secret", "", "admin secret to hash (default: first line of stdin)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Run(cfg Config, in io.Reader, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}

	secret := cfg.Secret
	if secret == "" && in != nil {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read secret: %w", err)
		}
		secret = strings.TrimRight(line, "\r\n")
	}
	if secret == "" {
		return errors.New("secret must not be empty")
	}

	hash, err := crypto.HashSecret(secret)
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}
	_, err = fmt.Fprintf(out, "ADMIN_PASSWORD_HASH=%s\n", hash)
	return err
}

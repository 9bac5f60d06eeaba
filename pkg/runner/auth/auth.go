package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"

	"tableflip.dev/nextup/pkg/gcal"
)

// Auth runs the desktop OAuth flow: print the consent URL, read the pasted
// authorization code, and cache the resulting token.
type Auth struct {
	Config    *oauth2.Config
	TokenFile string
	// In defaults to stdin; tests point it elsewhere.
	In io.Reader
}

func (n *Auth) Do(ctx context.Context) error {
	if n.Config == nil {
		return errors.New("can not authorize, no oauth config")
	}
	if n.TokenFile == "" {
		return errors.New("can not authorize, no token file path")
	}
	in := n.In
	if in == nil {
		in = os.Stdin
	}

	url := n.Config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following link in your browser, then paste the code here:\n\n%v\n\ncode: ", url)

	code, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("no authorization code given")
	}

	tok, err := gcal.Exchange(ctx, n.Config, code)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(n.TokenFile), 0o700); err != nil {
		return err
	}
	if err := gcal.SaveToken(n.TokenFile, tok); err != nil {
		return err
	}
	fmt.Printf("token saved to %s\n", n.TokenFile)
	return nil
}

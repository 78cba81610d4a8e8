// Package identity is the client-side boundary to the external identity
// provider. The provider issues access tokens; this package only extracts
// the stable opaque user id the API scopes its documents by.
package identity

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// FromAccessToken extracts the subject claim from an access token.
//
// The signature is deliberately not verified here: verification belongs to
// the token issuer and whatever gateway fronts the API. The client only
// needs the opaque owner id, the same way a browser app decodes its own
// token to learn who is signed in.
func FromAccessToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: missing subject", common.ErrInvalidToken)
	}
	return sub, nil
}

// ReadToken prompts on w and reads an access token from the terminal
// without echoing it.
func ReadToken(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Access token: "); err != nil {
		return "", err
	}
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

package adapthttp

import (
	"context"
	"fmt"

	"github.com/clementchett/Zane-Food-Tracker/internal/config"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// SSO is a discovered OIDC provider and the client used against it.
type SSO struct {
	OAuth2   oauth2.Config
	Verifier *oidc.IDTokenVerifier
}

// NewSSO discovers the issuer and builds the OAuth2 client.
func NewSSO(ctx context.Context, cfg config.OIDC) (*SSO, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	return &SSO{
		OAuth2: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
		Verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

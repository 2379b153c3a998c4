package server

import (
	"context"
	"net/http"

	"tailscale.com/client/local"
)

// SetTailscale resolves request identity from the connecting tailnet node.
// Requests arriving before this is set fall back to the dev identity.
func (s *Server) SetTailscale(lc *local.Client) {
	s.identity = func(r *http.Request) UserInfo {
		who, err := lc.WhoIs(r.Context(), r.RemoteAddr)
		if err != nil || who.UserProfile == nil {
			s.log.Warn("tailscale whois failed", "remote", r.RemoteAddr, "error", err)
			return UserInfo{Login: "local", DisplayName: "Local Dev User"}
		}
		return UserInfo{
			Login:       who.UserProfile.LoginName,
			DisplayName: who.UserProfile.DisplayName,
		}
	}
}

// identityMiddleware stamps each request with the configured identity
// resolver, if any.
func (s *Server) identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.identity != nil {
			ctx := context.WithValue(r.Context(), userInfoKey, s.identity(r))
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

package controllers

import (
	"context"

	"securities/src/schemas"
	"securities/src/sessions"
	"securities/src/utils"
)

// Login checks the submitted credentials against the single configured
// administrator pair and creates a session on success. An unset credential
// never matches anything, so an unconfigured deployment cannot be logged
// into. Failures carry no detail beyond Unauthorized.
func (c *Controller) Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.UserResponse, *sessions.Session, error) {
	admin := c.Auth.Admin
	if admin.Username == "" || admin.Password == "" ||
		req.Username != admin.Username || req.Password != admin.Password {
		return nil, nil, utils.ErrUnauthorized
	}

	session, err := c.Sessions.Create(ctx, req.Username)
	if err != nil {
		err = utils.NewStorageError("create session", err)
		logStorageFailure(ctx, err, "could not persist session")
		return nil, nil, err
	}
	return &schemas.UserResponse{Username: session.Username}, session, nil
}

// Logout destroys the caller's session.
func (c *Controller) Logout(ctx context.Context, session *sessions.Session) error {
	if err := c.Sessions.Delete(ctx, session.ID); err != nil {
		err = utils.NewStorageError("delete session", err)
		logStorageFailure(ctx, err, "could not destroy session")
		return err
	}
	return nil
}

// ListSessions enumerates all live sessions. Session ids are bearer
// credentials, so the listing is limited to the configured administrator
// identity rather than any authenticated session.
func (c *Controller) ListSessions(ctx context.Context, session *sessions.Session) ([]sessions.Session, error) {
	if session.Username != c.Auth.Admin.Username {
		return nil, utils.Forbidden("session listing is restricted to the administrator")
	}

	all, err := c.Sessions.List(ctx)
	if err != nil {
		err = utils.NewStorageError("list sessions", err)
		logStorageFailure(ctx, err, "could not list sessions")
		return nil, err
	}
	return all, nil
}

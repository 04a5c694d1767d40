package unleash

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/errors"
)

func (c *Client) FetchResources(ctx context.Context, kind domain.ResourceKind) ([]domain.RemoteResource, error) {
	switch kind {
	case domain.KindToggle:
		return c.fetchToggles(ctx)
	case domain.KindAccount:
		return c.fetchAccounts(ctx)
	}
	return nil, unsupportedKind(kind)
}

func (c *Client) fetchToggles(ctx context.Context) ([]domain.RemoteResource, error) {
	var resp featuresResponse
	if err := c.do(ctx, http.MethodGet, featuresPath, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.RemoteResource, 0, len(resp.Features))
	for _, f := range resp.Features {
		toggle, err := f.toDomain()
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeRemoteAPIError, "unexpected feature payload from "+featuresPath)
		}
		out = append(out, domain.RemoteResource{
			Resource: toggle,
			Ref:      domain.RemoteRef{Key: f.Name, RemoteID: f.Name},
		})
	}
	return out, nil
}

func (c *Client) fetchAccounts(ctx context.Context) ([]domain.RemoteResource, error) {
	var resp usersResponse
	if err := c.do(ctx, http.MethodGet, usersPath, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.RemoteResource, 0, len(resp.Users))
	for _, u := range resp.Users {
		if _, ok := roleName(u.RootRole); !ok {
			c.logger.Warnf(ctx, "Account %s has unknown root role id %d", u.Email, u.RootRole)
		}
		account := u.toDomain()
		out = append(out, domain.RemoteResource{
			Resource: account,
			Ref:      domain.RemoteRef{Key: account.Email, RemoteID: account.ID},
		})
	}
	return out, nil
}

func (c *Client) CreateResource(ctx context.Context, kind domain.ResourceKind, res domain.Resource) error {
	switch r := res.(type) {
	case domain.Toggle:
		return c.do(ctx, http.MethodPost, featuresPath, r, nil)
	case domain.Account:
		body, err := newUserRequest(r)
		if err != nil {
			return err
		}
		return c.do(ctx, http.MethodPost, usersPath, body, nil)
	}
	return unsupportedKind(kind)
}

func (c *Client) UpdateResource(ctx context.Context, kind domain.ResourceKind, ref domain.RemoteRef, res domain.Resource) error {
	switch r := res.(type) {
	case domain.Toggle:
		return c.do(ctx, http.MethodPut, featuresPath+"/"+escape(remoteID(ref)), r, nil)
	case domain.Account:
		if ref.RemoteID == "" {
			return errors.New(errors.CodeRemoteMutationError, fmt.Sprintf("account %s has no remote id", ref.Key))
		}
		body, err := newUserRequest(r)
		if err != nil {
			return err
		}
		return c.do(ctx, http.MethodPut, usersPath+"/"+escape(ref.RemoteID), body, nil)
	}
	return unsupportedKind(kind)
}

// RemoveResource deletes a resource. Toggles are archived first and then
// deleted from the archive; a toggle that is already archived is fine.
func (c *Client) RemoveResource(ctx context.Context, kind domain.ResourceKind, ref domain.RemoteRef) error {
	switch kind {
	case domain.KindToggle:
		name := escape(remoteID(ref))
		if err := c.do(ctx, http.MethodDelete, featuresPath+"/"+name, nil, nil); err != nil && !IsNotFound(err) {
			return err
		}
		return c.do(ctx, http.MethodDelete, archivePath+"/"+name, nil, nil)
	case domain.KindAccount:
		if ref.RemoteID == "" {
			return errors.New(errors.CodeRemoteMutationError, fmt.Sprintf("account %s has no remote id", ref.Key))
		}
		return c.do(ctx, http.MethodDelete, usersPath+"/"+escape(ref.RemoteID), nil, nil)
	}
	return unsupportedKind(kind)
}

func newUserRequest(a domain.Account) (userRequest, error) {
	id, ok := roleIDs[a.RootRole]
	if !ok {
		return userRequest{}, errors.New(errors.CodeSchemaValidation, fmt.Sprintf("account %s has unknown root role %q", a.Email, a.RootRole))
	}
	return userRequest{Email: a.Email, Name: a.Name, RootRole: id}, nil
}

func remoteID(ref domain.RemoteRef) string {
	if ref.RemoteID != "" {
		return ref.RemoteID
	}
	return ref.Key
}

func unsupportedKind(kind domain.ResourceKind) error {
	return errors.New(errors.CodeNotImplemented, "unsupported resource kind "+strconv.Quote(kind.String()))
}

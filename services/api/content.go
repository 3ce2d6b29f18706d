package api

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/santarita/portal/core/content"
	"github.com/santarita/portal/core/session"
)

// FetchContent issues the eight public reads in parallel and returns
// the aggregate only when every one of them succeeded; partial results
// are never committed.
func (c *Client) FetchContent(ctx context.Context) (*content.Content, error) {
	var ct content.Content
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.Get(ctx, content.PathNews, &ct.News) })
	g.Go(func() error { return c.Get(ctx, content.PathNotices, &ct.Notices) })
	g.Go(func() error { return c.Get(ctx, content.PathTeam, &ct.Team) })
	g.Go(func() error { return c.Get(ctx, content.PathHistory, &ct.History) })
	g.Go(func() error { return c.Get(ctx, content.PathEvents, &ct.Events) })
	g.Go(func() error { return c.Get(ctx, content.PathGallery, &ct.Gallery) })
	g.Go(func() error { return c.Get(ctx, content.PathMenu, &ct.Menu) })
	g.Go(func() error { return c.Get(ctx, content.PathSchedules, &ct.Schedules) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ct, nil
}

// Users fetches the admin user list; the backend answers 403 for
// non-admin callers.
func (c *Client) Users(ctx context.Context) ([]session.Profile, error) {
	var users []session.Profile
	if err := c.Get(ctx, "users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in session.ProfileInput) (session.Profile, error) {
	var usr session.Profile
	if err := c.Put(ctx, "users/profile", in, &usr); err != nil {
		return session.Profile{}, err
	}
	return usr, nil
}

func (c *Client) ChangePassword(ctx context.Context, in session.ChangePasswordInput) error {
	return c.Put(ctx, "users/change-password", in, nil)
}

// DeleteAlbum bulk-deletes a whole gallery album.
func (c *Client) DeleteAlbum(ctx context.Context, name string) error {
	return c.Delete(ctx, content.PathGallery+"/album/"+name)
}

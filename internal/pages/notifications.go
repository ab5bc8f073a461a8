package pages

import (
	"context"

	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/internal/fetch"
	"github.com/MrJinPro/SVOD/pkg/models"
)

// NotificationsPage lists the current user's notifications. The header
// badge uses its own instance, independent of the page body.
type NotificationsPage struct {
	client *client.SvodClient
	res    *fetch.Resource[[]models.Notification]
}

func NewNotificationsPage(ctx context.Context, c *client.SvodClient, opts ...fetch.Option) *NotificationsPage {
	get := func(ctx context.Context, _ string) ([]models.Notification, error) {
		return c.GetNotifications(ctx)
	}
	return &NotificationsPage{
		client: c,
		res:    fetch.Use(ctx, get, client.PathNotifications, []models.Notification{}, opts...),
	}
}

func (p *NotificationsPage) Unread() int {
	return models.UnreadCount(p.State().Data)
}

func (p *NotificationsPage) MarkAllRead(ctx context.Context) (models.MarkReadResult, error) {
	res, err := p.client.MarkAllNotificationsRead(ctx)
	if err != nil {
		return res, err
	}
	p.res.Refetch()
	return res, nil
}

func (p *NotificationsPage) Clear(ctx context.Context) error {
	if err := p.client.ClearNotifications(ctx); err != nil {
		return err
	}
	p.res.Refetch()
	return nil
}

func (p *NotificationsPage) Refetch() { p.res.Refetch() }

func (p *NotificationsPage) State() fetch.State[[]models.Notification] {
	return p.res.Snapshot()
}

func (p *NotificationsPage) Wait()  { p.res.Wait() }
func (p *NotificationsPage) Close() { p.res.Close() }

// Package resource implements the generic save/delete wrappers every
// admin form goes through: user confirmation, the shared loading flag,
// success/failure notices and the post-mutation refresh callback.
//
// The two helpers propagate failures differently on purpose. Save
// returns the error to the calling form (which renders it inline) and
// emits no notice of its own; Delete notifies and swallows, so its
// callers can only observe failure through the notice. Forms depend on
// this split to avoid double notifications.
package resource

import (
	"context"
	"sync/atomic"

	"github.com/santarita/portal/core"
)

const (
	confirmUpdate = "Are you sure you want to update this item?"
	confirmDelete = "Are you sure you want to delete this item?"
)

// Transport is the slice of the HTTP client the helpers need.
type Transport interface {
	Post(ctx context.Context, path string, payload Payload) error
	Put(ctx context.Context, path string, payload Payload) error
	Delete(ctx context.Context, path string) error
}

// Flag is the global loading indicator. It is a best-effort UI signal,
// not a mutex: overlapping operations both toggle it and the last one
// to finish wins.
type Flag struct {
	v int32
}

func (f *Flag) Set(on bool) {
	var v int32
	if on {
		v = 1
	}
	atomic.StoreInt32(&f.v, v)
}

func (f *Flag) Loading() bool { return atomic.LoadInt32(&f.v) == 1 }

// SaveFunc creates (id == "") or updates (id != "") one resource item.
type SaveFunc func(ctx context.Context, payload Payload, id string) error

// DeleteFunc deletes one resource item.
type DeleteFunc func(ctx context.Context, id string) error

// Manager builds the per-resource helpers.
type Manager struct {
	tr      Transport
	notif   core.Notifier
	conf    core.Confirmer
	loading *Flag
}

func NewManager(tr Transport, notif core.Notifier, conf core.Confirmer, loading *Flag) *Manager {
	if loading == nil {
		loading = &Flag{}
	}
	return &Manager{tr: tr, notif: notif, conf: conf, loading: loading}
}

func (m *Manager) Loading() bool { return m.loading.Loading() }

// Save returns the create/update helper for one resource path. Updates
// ask for confirmation first; declining aborts before any network call
// with a cancellation notice. Success emits a created/updated notice
// and runs refresh. Failures are returned to the caller un-notified.
func (m *Manager) Save(path string, refresh func() error) SaveFunc {
	return func(ctx context.Context, payload Payload, id string) error {
		if id != "" {
			ok, err := m.conf.Confirm(confirmUpdate)
			if err != nil {
				return err
			}
			if !ok {
				m.notif.Info("Update cancelled.")
				return nil
			}
		}

		m.loading.Set(true)
		defer m.loading.Set(false)

		var err error
		if id != "" {
			err = m.tr.Put(ctx, path+"/"+id, payload)
		} else {
			err = m.tr.Post(ctx, path, payload)
		}
		if err != nil {
			return err
		}

		if id != "" {
			m.notif.Success("Item updated successfully.")
		} else {
			m.notif.Success("Item created successfully.")
		}
		if refresh != nil {
			if err := refresh(); err != nil {
				return err
			}
		}
		return nil
	}
}

// Delete returns the delete helper for one resource path. It always
// confirms first. The refresh callback has completed by the time the
// helper returns. Failures emit exactly one error notice and are
// swallowed; callers cannot distinguish them from success.
func (m *Manager) Delete(path string, refresh func() error) DeleteFunc {
	return func(ctx context.Context, id string) error {
		ok, err := m.conf.Confirm(confirmDelete)
		if err != nil {
			m.notif.Error(err.Error())
			return nil
		}
		if !ok {
			m.notif.Info("Deletion cancelled.")
			return nil
		}

		m.loading.Set(true)
		defer m.loading.Set(false)

		if err := m.tr.Delete(ctx, path+"/"+id); err != nil {
			m.notif.Error(err.Error())
			return nil
		}
		m.notif.Success("Item deleted successfully.")
		if refresh != nil {
			if err := refresh(); err != nil {
				m.notif.Error(err.Error())
			}
		}
		return nil
	}
}

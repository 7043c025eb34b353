// Package editor owns one editing session: the schedule document, its
// dirty state, and the reconciliation of local edits against the
// artifact store under optimistic concurrency.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/horae/internal/artifact"
	"github.com/alexanderramin/horae/internal/docjson"
	"github.com/alexanderramin/horae/internal/domain"
	"github.com/alexanderramin/horae/internal/timegrid"
)

// Bounds are the externally supplied project start/finish dates, used
// for save validation and as the default anchor when the schedule has
// none of its own.
type Bounds struct {
	Start  time.Time
	Finish *time.Time
}

// ValidationError blocks a save locally, before any network call, and
// names the offending item.
type ValidationError struct {
	ItemName string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("item %q %s", e.ItemName, e.Reason)
}

// Controller reconciles one document against one artifact key. The
// document itself is only mutated by the single editing session that
// owns the controller; cross-session conflicts are handled exclusively
// through the save-time concurrency token.
type Controller struct {
	store  artifact.Store
	key    string
	bounds *Bounds
	now    func() time.Time

	mu              sync.Mutex
	doc             *domain.ScheduleDocument
	dirty           bool
	token           string
	lastFingerprint string
	editSeq         uint64
	saving          bool
	pendingSave     bool
}

// NewController creates a controller for the given artifact key.
// bounds may be nil when the project supplies none.
func NewController(store artifact.Store, key string, bounds *Bounds) *Controller {
	return &Controller{
		store:  store,
		key:    key,
		bounds: bounds,
		now:    time.Now,
		doc:    domain.NewScheduleDocument(),
	}
}

// Load fetches the artifact and replaces the session document. A
// missing artifact seeds the default document with an empty token, so
// the first save creates it.
func (c *Controller) Load(ctx context.Context) error {
	stored, err := c.store.Get(ctx, c.key)
	if errors.Is(err, artifact.ErrNotFound) {
		c.mu.Lock()
		c.doc = docjson.DefaultDocument(c.now())
		c.token = ""
		c.lastFingerprint = ""
		c.dirty = false
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}

	c.mu.Lock()
	c.doc = docjson.Decode(stored.Data, c.now())
	c.token = stored.Token
	c.lastFingerprint = docjson.Fingerprint(stored.Data)
	c.dirty = false
	c.mu.Unlock()
	return nil
}

// Document returns the session document. The caller and the controller
// share it; all mutation happens on the session's event loop.
func (c *Controller) Document() *domain.ScheduleDocument {
	return c.doc
}

// Anchor resolves the effective anchor Monday: the document's anchor
// date, else the project start, else the current week.
func (c *Controller) Anchor() time.Time {
	if c.doc.AnchorDate != nil {
		return timegrid.StartOfWeek(*c.doc.AnchorDate)
	}
	if c.bounds != nil && !c.bounds.Start.IsZero() {
		return timegrid.StartOfWeek(c.bounds.Start)
	}
	return timegrid.StartOfWeek(c.now())
}

// MarkDirty records a local edit.
func (c *Controller) MarkDirty() {
	c.mu.Lock()
	c.dirty = true
	c.editSeq++
	c.mu.Unlock()
}

// Dirty reports whether unsaved edits exist.
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Token returns the concurrency token for the next save.
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Mutate runs fn against the document and marks the session dirty when
// fn reports a change. Derived-state recomputation never goes through
// here; only real document mutation does. The lock is held across fn so
// an in-flight save snapshots either the whole edit or none of it; fn
// must not call back into the controller.
func (c *Controller) Mutate(fn func(doc *domain.ScheduleDocument) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !fn(c.doc) {
		return false
	}
	c.dirty = true
	c.editSeq++
	return true
}

// Save serializes the canonical document and submits it with the
// last-seen token as precondition. Saves are never pipelined: a Save
// while one is in flight is deferred and runs as a single follow-up
// once the in-flight save resolves.
//
// A failed save leaves the session dirty so a retry is always possible;
// a conflict is surfaced verbatim without touching local state.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.saving {
		c.pendingSave = true
		c.mu.Unlock()
		return nil
	}
	c.saving = true
	c.mu.Unlock()

	err := c.saveOnce(ctx)
	for err == nil {
		c.mu.Lock()
		if !c.pendingSave {
			c.mu.Unlock()
			break
		}
		c.pendingSave = false
		c.mu.Unlock()
		err = c.saveOnce(ctx)
	}

	c.mu.Lock()
	c.saving = false
	c.pendingSave = false
	c.mu.Unlock()
	return err
}

func (c *Controller) saveOnce(ctx context.Context) error {
	c.mu.Lock()
	snapshot := c.doc.Clone()
	seq := c.editSeq
	token := c.token
	c.mu.Unlock()

	if err := ValidateBounds(snapshot, c.bounds); err != nil {
		return err
	}

	data, err := docjson.Encode(snapshot)
	if err != nil {
		return fmt.Errorf("serializing schedule: %w", err)
	}

	newToken, err := c.store.Put(ctx, c.key, data, token)
	if err != nil {
		if errors.Is(err, artifact.ErrConflict) {
			return fmt.Errorf("schedule was modified elsewhere: %w", err)
		}
		return fmt.Errorf("saving schedule: %w", err)
	}

	c.mu.Lock()
	c.token = newToken
	c.lastFingerprint = docjson.Fingerprint(data)
	// Clear dirty only if nothing changed during the round trip;
	// otherwise the session stays dirty for a follow-up save.
	if c.editSeq == seq {
		c.dirty = false
	}
	c.mu.Unlock()
	return nil
}

// Hydrate offers a fresh server copy to the session, e.g. from
// background revalidation. Identical content just refreshes the token.
// Different content is adopted only when the session is clean; a dirty
// or mid-save session keeps its edits and the second return reports
// that a newer version exists.
func (c *Controller) Hydrate(incoming *artifact.Document) (adopted, newerExists bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fp := docjson.Fingerprint(incoming.Data)
	if fp == c.lastFingerprint {
		c.token = incoming.Token
		return false, false
	}
	if c.dirty || c.saving {
		return false, true
	}

	c.doc = docjson.Decode(incoming.Data, c.now())
	c.token = incoming.Token
	c.lastFingerprint = fp
	return true, false
}

// ValidateBounds rejects any item whose interval falls outside the
// project bounds. Items whose start never parsed are skipped; they are
// a shape problem, not a validation one.
func ValidateBounds(doc *domain.ScheduleDocument, bounds *Bounds) error {
	if bounds == nil {
		return nil
	}
	for _, item := range doc.Items {
		if item.Start.IsZero() {
			continue
		}
		if !bounds.Start.IsZero() && item.Start.Before(timegrid.Truncate(bounds.Start)) {
			return &ValidationError{
				ItemName: item.Name,
				Reason:   fmt.Sprintf("starts before the project start %s", timegrid.FormatDate(bounds.Start)),
			}
		}
		if bounds.Finish != nil && item.EffectiveEnd().After(timegrid.Truncate(*bounds.Finish)) {
			return &ValidationError{
				ItemName: item.Name,
				Reason:   fmt.Sprintf("ends after the project finish %s", timegrid.FormatDate(*bounds.Finish)),
			}
		}
	}
	return nil
}

package draft

import (
	"context"
	"sync"
	"time"

	"github.com/mealbridge/donor-cli/internal/foodposts"
)

// State is the controller's position in the submission lifecycle.
type State int

const (
	StateEmpty State = iota
	StateEditing
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Gateway is the slice of the remote client the controller needs.
type Gateway interface {
	Create(ctx context.Context, payload *foodposts.CreatePayload) (foodposts.Listing, error)
}

// ProfileSource yields the cached donor profile, when one exists.
type ProfileSource interface {
	DonorProfile(ctx context.Context) (Profile, bool)
}

// Controller owns a single draft from creation to submission or abandonment.
// Submit runs on a different goroutine than the reads driving the view, so
// every access to the draft and the lifecycle state goes through the mutex.
type Controller struct {
	gateway Gateway
	nowFn   func() time.Time

	mu     sync.Mutex
	state  State
	draft  Draft
	errMsg string
}

func NewController(ctx context.Context, gateway Gateway, profiles ProfileSource, nowFn func() time.Time) *Controller {
	if nowFn == nil {
		nowFn = time.Now
	}
	var profile *Profile
	if profiles != nil {
		if p, ok := profiles.DonorProfile(ctx); ok {
			profile = &p
		}
	}
	return &Controller{
		gateway: gateway,
		nowFn:   nowFn,
		state:   StateEmpty,
		draft:   New(profile, nowFn()),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns a snapshot of the current field values.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) ErrMsg() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Edit applies a field mutation. Mutation is always allowed outside an
// in-flight or finished submission and lands the controller in Editing, so a
// failed submit drops straight back into correction without losing anything.
func (c *Controller) Edit(mutate func(*Draft)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting || c.state == StateSucceeded {
		return
	}
	mutate(&c.draft)
	c.state = StateEditing
	c.errMsg = ""
}

func (c *Controller) AddTag(tag string) {
	c.Edit(func(d *Draft) { d.AddTag(tag) })
}

func (c *Controller) RemoveTag(tag string) {
	c.Edit(func(d *Draft) { d.RemoveTag(tag) })
}

func (c *Controller) AttachImage(name string, data []byte) {
	c.Edit(func(d *Draft) { d.AttachImage(name, data) })
}

// Abandon releases the draft's attached blob. Callers discard the controller
// afterwards.
func (c *Controller) Abandon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.DiscardImage()
}

// Submit encodes the draft and sends it. Encoding may fail locally with a
// ValidationError before any network call; a gateway failure surfaces the
// server's message. Either way the field values survive so the user does not
// retype the form. On success the created record is returned for the store to
// append and the controller is done. The lock is not held across the network
// call; the Submitting state keeps concurrent edits and submits out instead.
func (c *Controller) Submit(ctx context.Context) (foodposts.Listing, bool) {
	c.mu.Lock()
	if c.state == StateSubmitting || c.state == StateSucceeded {
		c.mu.Unlock()
		return foodposts.Listing{}, false
	}
	c.state = StateSubmitting
	c.errMsg = ""
	snapshot := c.draft
	c.mu.Unlock()

	payload, err := snapshot.Encode()
	if err != nil {
		c.fail(err.Error())
		return foodposts.Listing{}, false
	}

	created, err := c.gateway.Create(ctx, payload)
	if err != nil {
		c.fail(err.Error())
		return foodposts.Listing{}, false
	}

	c.mu.Lock()
	c.state = StateSucceeded
	c.mu.Unlock()
	return created, true
}

func (c *Controller) fail(msg string) {
	c.mu.Lock()
	c.state = StateFailed
	c.errMsg = msg
	c.mu.Unlock()
}

package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	constant "github.com/procurahq/lib-reqdraft/reqdraft/constants"
	"github.com/procurahq/lib-reqdraft/reqdraft/cascade"
	"github.com/procurahq/lib-reqdraft/reqdraft/catalog"
	"github.com/procurahq/lib-reqdraft/reqdraft/draft"
	"github.com/procurahq/lib-reqdraft/reqdraft/log"
	"github.com/procurahq/lib-reqdraft/reqdraft/quote"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Reserver proposes the next requisition number. numbering.Reserver
// satisfies it.
type Reserver interface {
	Reserve(ctx context.Context) (string, error)
}

// Config assembles a Controller. Session, Ledger, and Cache are required;
// Reserver is required for leaving the Header step; Binder is optional and
// usually attached later, once the draft has been persisted and a
// requisition id exists.
type Config struct {
	Session  SessionContext
	Ledger   *draft.Ledger
	Cache    *cascade.Cache
	Reserver Reserver
	Binder   *quote.Binder
	Logger   log.Logger
	// Clock stamps the header's creation time; defaults to time.Now.
	Clock func() time.Time
}

// Controller owns the wizard's step state and coordinates the draft
// collaborators. All methods are safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	step    Step
	session SessionContext
	header  draft.Header
	number  string

	ledger   *draft.Ledger
	cache    *cascade.Cache
	reserver Reserver
	binder   *quote.Binder
	logger   log.Logger
	tracer   trace.Tracer
	clock    func() time.Time
}

// State is a read-only snapshot of the wizard for rendering.
type State struct {
	Step           Step
	Header         draft.Header
	Number         string
	Items          []draft.ItemView
	EstimatedTotal decimal.Decimal
	Quotes         []quote.Quote
}

// New creates a Controller seeded from the session context. A session with
// no department fails with ErrInvalidSession: the department is a mandatory
// derived header field, not something the user may type in.
func New(cfg Config) (*Controller, error) {
	if !cfg.Session.Valid() {
		return nil, fmt.Errorf("%w: session has no department", constant.ErrInvalidSession)
	}

	if cfg.Ledger == nil || cfg.Cache == nil {
		return nil, fmt.Errorf("%w: ledger and cache are required", constant.ErrInvalidSession)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	controller := &Controller{
		step:     StepHeader,
		session:  cfg.Session,
		ledger:   cfg.Ledger,
		cache:    cfg.Cache,
		reserver: cfg.Reserver,
		binder:   cfg.Binder,
		logger:   log.Or(cfg.Logger),
		tracer:   otel.Tracer("reqdraft.wizard"),
		clock:    clock,
	}

	controller.header = draft.NewHeader(cfg.Session.Department, cfg.Session.RequesterName(), clock())

	return controller, nil
}

// Step returns the current step.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.step
}

// Number returns the reserved requisition number, empty before reservation.
func (c *Controller) Number() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.number
}

// State snapshots the wizard for rendering. Labels are resolved through the
// cache without triggering fetches.
func (c *Controller) State() State {
	c.mu.Lock()
	step := c.step
	header := c.header.Clone()
	number := c.number
	c.mu.Unlock()

	state := State{
		Step:           step,
		Header:         header,
		Number:         number,
		Items:          c.ledger.View(c.cache),
		EstimatedTotal: c.ledger.EstimatedTotal(),
	}

	if c.binder != nil {
		state.Quotes = c.binder.Quotes()
	}

	return state
}

// SelectHeader records a header selection. Choosing a tender switches the
// ledger's validation mode: the manual-description tender frees items from
// the catalog description requirement.
func (c *Controller) SelectHeader(domain catalog.Domain, id string) {
	c.mu.Lock()
	c.header.Select(domain, id)
	c.mu.Unlock()
}

// SetManualItems switches the ledger's description mode. The flow derives it
// from the chosen tender, but the decision stays with the caller because
// tender semantics are deployment configuration.
func (c *Controller) SetManualItems(manual bool) {
	c.ledger.SetManualMode(manual)
}

// SetReason records the free-text requisition reason.
func (c *Controller) SetReason(reason string) {
	c.mu.Lock()
	c.header.Reason = reason
	c.mu.Unlock()
}

// SetObservations records the optional observations text.
func (c *Controller) SetObservations(observations string) {
	c.mu.Lock()
	c.header.Observations = observations
	c.mu.Unlock()
}

// SetAckCostRealistic records the explicit cost confirmation.
func (c *Controller) SetAckCostRealistic(ack bool) {
	c.mu.Lock()
	c.header.AckCostRealistic = ack
	c.mu.Unlock()
}

// SelectProduct begins the product-to-description cascade for a line item
// being edited: the product's scoped description set is cleared and
// refreshed. The returned channel reports when (and whether) the fetch
// landed; rapid reselection leaves only the latest product's descriptions in
// the cache.
func (c *Controller) SelectProduct(ctx context.Context, productID string) <-chan cascade.Result {
	return c.cache.Refresh(ctx, cascade.DescriptionKey(productID))
}

// ValidationErrors returns the header's outstanding violations.
func (c *Controller) ValidationErrors() []draft.FieldError {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.header.Validate()
}

// Next advances one step. Each forward edge has its own gate:
//
//   - Header to Items requires a valid header, and reserves the requisition
//     number on first passage. A reservation failure blocks the transition.
//   - Items to Review requires the reserved number and at least one item.
//
// Calling Next at Review fails with ErrInvalidTransition; submission is a
// separate concern owned by the persistence collaborator.
func (c *Controller) Next(ctx context.Context) (Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, span := c.tracer.Start(ctx, "wizard.next",
		trace.WithAttributes(attribute.String("wizard.step", c.step.String())),
	)
	defer span.End()

	switch c.step {
	case StepHeader:
		if errs := c.header.Validate(); len(errs) > 0 {
			return c.step, fmt.Errorf("%w: %d header field(s) incomplete", constant.ErrValidationFailed, len(errs))
		}

		if c.number == "" {
			if c.reserver == nil {
				return c.step, fmt.Errorf("%w: no reserver configured", constant.ErrReservationFailed)
			}

			number, err := c.reserver.Reserve(ctx)
			if err != nil {
				return c.step, err
			}

			c.number = number
			c.logger.Log(ctx, log.LevelInfo, "draft advanced to items",
				log.String("number", number),
			)
		}

		c.step = StepItems

	case StepItems:
		if c.number == "" {
			return c.step, fmt.Errorf("%w: no requisition number reserved", constant.ErrInvalidTransition)
		}

		if c.ledger.Len() == 0 {
			return c.step, fmt.Errorf("%w: at least one item is required", constant.ErrInvalidTransition)
		}

		c.step = StepReview

	default:
		return c.step, fmt.Errorf("%w: already at final step", constant.ErrInvalidTransition)
	}

	return c.step, nil
}

// Back retreats one step. Backward movement is never gated and never
// discards state: the header, the ledger, and the reserved number all
// survive.
func (c *Controller) Back() Step {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step > StepHeader {
		c.step--
	}

	return c.step
}

// Reset abandons the draft: the header is reseeded from the session, the
// ledger is emptied, the reserved number is released locally, and the wizard
// returns to the Header step. Quotes are not touched; they belong to
// already-persisted requisitions, not to this draft.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.header = draft.NewHeader(c.session.Department, c.session.RequesterName(), c.clock())
	c.number = ""
	c.step = StepHeader
	c.ledger.Clear()
}

// Promote applies server-assigned item identities after an external save and
// attaches the quote binder for the now-persisted requisition.
func (c *Controller) Promote(assigned map[string]string, binder *quote.Binder) {
	c.ledger.Promote(assigned)

	c.mu.Lock()
	if binder != nil {
		c.binder = binder
	}
	c.mu.Unlock()
}

// Binder returns the attached quote binder, nil before promotion.
func (c *Controller) Binder() *quote.Binder {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.binder
}

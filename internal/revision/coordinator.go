package revision

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"catalog-app/internal/domain/access"
	"catalog-app/internal/domain/catalog"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const maxCommentLength = 2000

// Submission is one requested revision. ID zero creates a new entity.
// BaseRevision, when set, is the revision the caller edited from; the submit
// fails with ErrStaleRevision if the entity has moved on since.
type Submission struct {
	ID           int64
	BaseRevision int
	Comment      string
	User         access.Identity
	Data         catalog.Data
}

type Result struct {
	ID       int64 `json:"id"`
	Revision int   `json:"revision"`
}

// Coordinator writes revisions. It holds no database handle; every call takes
// the handle it should run on.
type Coordinator struct {
	log       zerolog.Logger
	metrics   *Metrics
	policy    access.Policy
	canonical catalog.Language

	// beforeChange runs inside the transaction right before the ledger insert.
	beforeChange func(tx *gorm.DB, ch *catalog.Change) error
}

type Option func(*Coordinator)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

func WithPolicy(p access.Policy) Option {
	return func(c *Coordinator) { c.policy = p }
}

// WithCanonicalLang sets the language every book and series needs a title in.
func WithCanonicalLang(lang catalog.Language) Option {
	return func(c *Coordinator) { c.canonical = lang }
}

func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		log:       zerolog.Nop(),
		policy:    access.DefaultPolicy(),
		canonical: catalog.LangJa,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit validates and writes one revision atomically. A transaction that
// loses the race for the next revision number is retried once; a second loss
// is reported as ErrStaleRevision.
func (c *Coordinator) Submit(ctx context.Context, db *gorm.DB, sub Submission) (Result, error) {
	if sub.Data == nil {
		return Result{}, errors.New("submission has no data")
	}
	start := time.Now()
	kind := sub.Data.Kind()

	res, err := c.submit(ctx, db, sub)
	c.metrics.observe(kind, err, time.Since(start))

	logger := c.log.With().
		Str("kind", string(kind)).
		Int64("item_id", sub.ID).
		Int64("user_id", sub.User.UserID).
		Logger()
	switch outcome(err) {
	case "ok":
		logger.Debug().Int64("id", res.ID).Int("revision", res.Revision).Msg("revision committed")
	case "error":
		logger.Error().Err(err).Msg("revision failed")
	default:
		logger.Debug().Err(err).Msg("revision rejected")
	}
	return res, err
}

func (c *Coordinator) submit(ctx context.Context, db *gorm.DB, sub Submission) (Result, error) {
	fam, err := familyOf(sub.Data.Kind())
	if err != nil {
		return Result{}, err
	}
	data, err := fam.normalize(sub.Data)
	if err != nil {
		return Result{}, err
	}
	if n := utf8.RuneCountInString(sub.Comment); n == 0 || n > maxCommentLength {
		return Result{}, &ValidationError{Field: "comment", Message: fmt.Sprintf("must be 1 to %d characters", maxCommentLength)}
	}

	for attempt := 1; ; attempt++ {
		res, err := c.attempt(ctx, db, fam, sub, data)
		if !errors.Is(err, errRevisionConflict) {
			return res, err
		}
		c.metrics.conflict()
		if attempt == 2 {
			return Result{}, fmt.Errorf("%s %d: %w", fam.kind(), sub.ID, ErrStaleRevision)
		}
		c.log.Debug().Str("kind", string(fam.kind())).Int64("item_id", sub.ID).Msg("revision conflict, retrying")
	}
}

func (c *Coordinator) attempt(ctx context.Context, db *gorm.DB, fam family, sub Submission, data catalog.Data) (Result, error) {
	kind := fam.kind()
	next := data.Flags()
	var res Result

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id := sub.ID
		revision := 1
		author := true
		var prev catalog.Flags
		var ops []access.Operation

		if id == 0 {
			ops = append(ops, access.OpAdd)
			if next.Hidden {
				ops = append(ops, access.OpHide)
			}
			if next.Locked {
				ops = append(ops, access.OpLock)
			}
		} else {
			var err error
			if prev, err = fam.flags(tx, id); err != nil {
				return err
			}
			latest, err := latestChange(tx, kind, id)
			if err != nil {
				return err
			}
			if sub.BaseRevision != 0 && sub.BaseRevision != latest.Revision {
				return fmt.Errorf("%s %d is at revision %d, not %d: %w", kind, id, latest.Revision, sub.BaseRevision, ErrStaleRevision)
			}
			revision = latest.Revision + 1

			authorID, err := firstAuthor(tx, kind, id)
			if err != nil {
				return err
			}
			author = authorID == sub.User.UserID

			ops = append(ops, access.OpEdit)
			if next.Hidden != prev.Hidden {
				ops = append(ops, access.OpHide)
			}
			if next.Locked != prev.Locked {
				ops = append(ops, access.OpLock)
			}
		}

		if !c.policy.AllowsAll(sub.User.Role, ops, prev.Locked, author) {
			return fmt.Errorf("%s %d: %w", kind, id, ErrChangePermission)
		}
		if err := fam.validate(tx, id, data, c.canonical); err != nil {
			return err
		}
		if err := checkHide(tx, kind, id, next.Hidden); err != nil {
			return err
		}

		if id == 0 {
			created, err := fam.saveRow(tx, 0, data)
			if err != nil {
				return fmt.Errorf("insert %s: %w", kind, err)
			}
			id = created
		}

		ch := catalog.Change{
			ItemID:   id,
			ItemName: kind,
			Revision: revision,
			UserID:   sub.User.UserID,
			Comments: sub.Comment,
			Ihid:     next.Hidden,
			Ilock:    next.Locked,
		}
		if c.beforeChange != nil {
			if err := c.beforeChange(tx, &ch); err != nil {
				return err
			}
		}
		if err := insertChange(tx, &ch); err != nil {
			return err
		}

		if sub.ID != 0 {
			if _, err := fam.saveRow(tx, id, data); err != nil {
				return fmt.Errorf("update %s %d: %w", kind, id, err)
			}
		}
		stored, err := fam.replaceChildren(tx, id, data)
		if err != nil {
			return err
		}
		if err := fam.writeHistory(tx, ch.ID, stored); err != nil {
			return err
		}

		res = Result{ID: id, Revision: revision}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

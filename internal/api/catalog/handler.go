package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"catalog-app/internal/app/http/middleware"
	"catalog-app/internal/cache"
	"catalog-app/internal/domain/access"
	"catalog-app/internal/domain/catalog"
	"catalog-app/internal/revision"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Handler struct {
	db        *gorm.DB
	coord     *revision.Coordinator
	cache     cache.Service
	policy    access.Policy
	canonical catalog.Language
	log       zerolog.Logger
}

type Deps struct {
	DB            *gorm.DB
	Coordinator   *revision.Coordinator
	Cache         cache.Service
	Policy        access.Policy
	CanonicalLang catalog.Language
	Log           zerolog.Logger
}

func NewHandler(d Deps) *Handler {
	RegisterValidators()
	if d.Cache == nil {
		d.Cache = cache.NewService(nil)
	}
	if d.Policy.MinRole == nil {
		d.Policy = access.DefaultPolicy()
	}
	if d.CanonicalLang == "" {
		d.CanonicalLang = catalog.LangJa
	}
	return &Handler{
		db:        d.DB,
		coord:     d.Coordinator,
		cache:     d.Cache,
		policy:    d.Policy,
		canonical: d.CanonicalLang,
		log:       d.Log,
	}
}

func kindParam(c *gin.Context) (catalog.Kind, bool) {
	kind, ok := catalog.ParseKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown entry type"})
	}
	return kind, ok
}

func positiveParam(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return 0, false
	}
	return v, true
}

func namePref(c *gin.Context) catalog.NamePref {
	pref := catalog.NamePref(c.DefaultQuery("names", string(catalog.NamesRomaji)))
	if !pref.Valid() {
		return catalog.NamesRomaji
	}
	return pref
}

// canSeeHidden reports whether the caller may read hidden entries.
func (h *Handler) canSeeHidden(c *gin.Context) bool {
	return h.policy.Allows(access.Request{Role: middleware.IdentityFrom(c).Role, Op: access.OpHide})
}

func (h *Handler) internalError(c *gin.Context, err error, msg string) {
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg(msg)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msg})
}

// ------------------------------
// POST /api/:kind
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	h.submit(c, 0)
}

// ------------------------------
// PUT /api/:kind/:id
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	id, ok := positiveParam(c, "id")
	if !ok {
		return
	}
	h.submit(c, id)
}

func (h *Handler) submit(c *gin.Context, id int64) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	req := newRequest(kind)
	if err := c.ShouldBindJSON(req); err != nil {
		writeBindError(c, err)
		return
	}

	meta := req.meta()
	// edits must name the revision they start from so a concurrent edit
	// surfaces as a conflict instead of being overwritten
	if id != 0 && meta.BaseRevision == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  "Invalid input",
			Fields: map[string][]string{"base_revision": {"Required when editing"}},
		})
		return
	}
	ctx := c.Request.Context()
	res, err := h.coord.Submit(ctx, h.db, revision.Submission{
		ID:           id,
		BaseRevision: meta.BaseRevision,
		Comment:      meta.Comment,
		User:         middleware.IdentityFrom(c),
		Data:         req.data(),
	})
	if err != nil {
		if !writeError(c, kind, err) {
			h.internalError(c, err, "Failed to save revision")
		}
		return
	}

	if err := h.cache.InvalidateSnapshot(ctx, kind, res.ID, res.Revision-1); err != nil {
		h.log.Warn().Err(err).Str("kind", string(kind)).Int64("id", res.ID).Msg("cache invalidation failed")
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}

// ------------------------------
// GET /api/:kind/:id
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := positiveParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	rev, err := revision.LatestRevision(ctx, h.db, kind, id)
	if err != nil {
		if !writeError(c, kind, err) {
			h.internalError(c, err, "Failed to load entry")
		}
		return
	}

	snap, err := h.cache.GetSnapshot(ctx, kind, id, rev)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			h.log.Warn().Err(err).Msg("cache read failed")
		}
		snap, err = revision.Current(ctx, h.db, kind, id)
		if err != nil {
			if !writeError(c, kind, err) {
				h.internalError(c, err, "Failed to load entry")
			}
			return
		}
		if err := h.cache.SetSnapshot(ctx, snap); err != nil {
			h.log.Warn().Err(err).Msg("cache write failed")
		}
	}

	if snap.Data.Flags().Hidden && !h.canSeeHidden(c) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	c.JSON(http.StatusOK, toSnapshotDTO(snap, h.canonical, namePref(c)))
}

// ------------------------------
// GET /api/:kind/:id/revisions
// ------------------------------
func (h *Handler) ListRevisions(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := positiveParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	entries, err := revision.ListRevisions(ctx, h.db, kind, id)
	if err != nil {
		if !writeError(c, kind, err) {
			h.internalError(c, err, "Failed to load revisions")
		}
		return
	}
	latest, err := revision.GetHistoryAt(ctx, h.db, kind, id, 0)
	if err != nil {
		if !writeError(c, kind, err) {
			h.internalError(c, err, "Failed to load revisions")
		}
		return
	}
	if latest.Data.Flags().Hidden && !h.canSeeHidden(c) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}

	c.JSON(http.StatusOK, RevisionsDTO{
		Kind:      kind,
		ID:        id,
		Label:     toLabelDTO(latest.Data, h.canonical, namePref(c)),
		Revisions: toRevisionDTOs(entries),
	})
}

// ------------------------------
// GET /api/:kind/:id/revisions/:rev
// ------------------------------
func (h *Handler) GetRevision(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := positiveParam(c, "id")
	if !ok {
		return
	}
	rev, ok := positiveParam(c, "rev")
	if !ok {
		return
	}

	snap, err := revision.GetHistoryAt(c.Request.Context(), h.db, kind, id, int(rev))
	if err != nil {
		if !writeError(c, kind, err) {
			h.internalError(c, err, "Failed to load revision")
		}
		return
	}
	if snap.Data.Flags().Hidden && !h.canSeeHidden(c) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	c.JSON(http.StatusOK, toSnapshotDTO(snap, h.canonical, namePref(c)))
}

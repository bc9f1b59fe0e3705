package catalog

import (
	"errors"
	"net/http"

	"catalog-app/internal/domain/catalog"
	"catalog-app/internal/revision"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// duplicateFields names the form collection each duplicate scope belongs to.
var duplicateFields = map[catalog.Kind]map[revision.DuplicateScope]string{
	catalog.KindBook: {
		revision.ScopeTitles:    "titles",
		revision.ScopeRelations: "editions.staff",
	},
	catalog.KindSeries: {
		revision.ScopeTitles:    "titles",
		revision.ScopeBooks:     "books",
		revision.ScopeRelations: "child_series",
	},
	catalog.KindStaff: {
		revision.ScopeTitles: "aliases",
	},
	catalog.KindPublisher: {
		revision.ScopeRelations: "child_publishers",
	},
	catalog.KindRelease: {
		revision.ScopeBooks:     "books",
		revision.ScopeRelations: "publishers",
	},
}

func duplicateField(kind catalog.Kind, scope revision.DuplicateScope) string {
	if f, ok := duplicateFields[kind][scope]; ok {
		return f + "._errors"
	}
	return string(scope) + "._errors"
}

func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid input", Fields: fieldErrors(verrs)})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// writeError maps revision errors to responses and reports whether err was
// one of them. Anything else is left to the caller.
func writeError(c *gin.Context, kind catalog.Kind, err error) bool {
	var hasRel *revision.HasRelationsError
	var dup *revision.DuplicateEntryError
	var inv *revision.ValidationError

	switch {
	case errors.Is(err, revision.ErrChangePermission):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permission to change this entry"})
	case errors.Is(err, revision.ErrStaleRevision):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Entry was changed by someone else, reload and try again"})
	case errors.Is(err, revision.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.As(err, &hasRel):
		msg := "Entry is still referenced through " + hasRel.Relation
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: msg, Fields: map[string][]string{"hidden": {msg}}})
	case errors.As(err, &dup):
		msg := "Duplicate entries"
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: msg, Fields: map[string][]string{duplicateField(kind, dup.Scope): {msg}}})
	case errors.As(err, &inv):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: inv.Error(), Fields: map[string][]string{inv.Field: {inv.Message}}})
	default:
		return false
	}
	return true
}

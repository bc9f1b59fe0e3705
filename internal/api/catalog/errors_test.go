package catalog

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-app/internal/domain/catalog"
	"catalog-app/internal/revision"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateField(t *testing.T) {
	assert.Equal(t, "child_series._errors", duplicateField(catalog.KindSeries, revision.ScopeRelations))
	assert.Equal(t, "books._errors", duplicateField(catalog.KindRelease, revision.ScopeBooks))
	assert.Equal(t, "aliases._errors", duplicateField(catalog.KindStaff, revision.ScopeTitles))
	assert.Equal(t, "books._errors", duplicateField(catalog.KindStaff, revision.ScopeBooks))
}

func TestBindingReportsJSONFieldPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	body := `{"comment":"x","publication_status":"paused","titles":[{"lang":"ja","title":"本"}],"child_series":[{"id":0,"relation_type":"sequel"}]}`
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	req := newRequest(catalog.KindSeries)
	err := c.ShouldBindJSON(req)
	require.Error(t, err)

	w := httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	writeBindError(c, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"publication_status":["enum"]`)
	assert.Contains(t, w.Body.String(), `"child_series[0].id":["required"]`)
}

func TestRequestsBuildDomainData(t *testing.T) {
	pages := 320
	r := &ReleaseRequest{
		RevisionMeta: RevisionMeta{Comment: "x", Hidden: true},
		Title:        "Vol. 1",
		Format:       catalog.FormatPrint,
		Lang:         catalog.LangJa,
		ReleaseDate:  20240101,
		Pages:        &pages,
		Books:        []ReleaseBookInput{{BookID: 3, RType: catalog.ReleaseComplete}},
	}
	d, ok := r.data().(catalog.ReleaseData)
	require.True(t, ok)
	assert.True(t, d.Hidden)
	assert.Equal(t, []catalog.ReleaseBookRef{{BookID: 3, RType: catalog.ReleaseComplete}}, d.Books)
	assert.Empty(t, d.Publishers)
	assert.NotNil(t, d.Publishers)
	assert.Nil(t, newRequest(catalog.Kind("movie")))
}

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sourceplane/etlplan/internal/apperrors"
	"github.com/sourceplane/etlplan/internal/model"
)

func TestReferenceGraph_Valid(t *testing.T) {
	assert.NoError(t, NewReferenceGraph(renderTestDocument(t)).Validate())
}

func TestReferenceGraph_UnknownRef(t *testing.T) {
	doc := renderTestDocument(t)
	doc.Activities[1].OutputRef = "Elsewhere"

	err := NewReferenceGraph(doc).Validate()
	assert.True(t, apperrors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "ExportActivity_5_9_1 field output references unknown object Elsewhere")
}

func TestReferenceGraph_DuplicateID(t *testing.T) {
	doc := renderTestDocument(t)
	doc.Activities[2].ID = doc.Activities[0].ID

	err := NewReferenceGraph(doc).Validate()
	assert.True(t, apperrors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "duplicate pipeline object id")
}

func TestReferenceGraph_Referrers(t *testing.T) {
	graph := NewReferenceGraph(&model.PipelineDocument{
		Default: model.DefaultNode{ID: "Default"},
		Output:  model.OutputLocationNode{ID: "Out"},
	})
	assert.NoError(t, graph.Validate())
	assert.Empty(t, graph.Referrers("Out"))
}

package render

import (
	"fmt"

	"github.com/sourceplane/etlplan/internal/apperrors"
	"github.com/sourceplane/etlplan/internal/model"
)

// ReferenceGraph indexes pipeline objects by ID to check reference wiring
type ReferenceGraph struct {
	objects []model.PipelineObject
}

// NewReferenceGraph creates a reference graph over a document's objects
func NewReferenceGraph(doc *model.PipelineDocument) *ReferenceGraph {
	return &ReferenceGraph{objects: doc.Objects()}
}

// Validate checks that IDs are unique, every ref resolves to an object, and
// the document has exactly one default node and one output node.
func (g *ReferenceGraph) Validate() error {
	index := make(map[string]model.PipelineObject, len(g.objects))
	typeCounts := make(map[string]int)

	for _, obj := range g.objects {
		if obj.ID == "" {
			return apperrors.Configuration("document", "pipeline object without an id")
		}
		if _, exists := index[obj.ID]; exists {
			return apperrors.Configuration("document", fmt.Sprintf("duplicate pipeline object id: %s", obj.ID))
		}
		index[obj.ID] = obj
		typeCounts[objectType(obj)]++
	}

	for _, obj := range g.objects {
		for _, field := range obj.Fields {
			if field.RefValue == "" {
				continue
			}
			if _, exists := index[field.RefValue]; !exists {
				return apperrors.Configuration("document",
					fmt.Sprintf("object %s field %s references unknown object %s", obj.ID, field.Key, field.RefValue))
			}
		}
	}

	for _, kind := range []string{model.TypeDefault, model.TypeS3DataNode} {
		if typeCounts[kind] != 1 {
			return apperrors.Configuration("document", fmt.Sprintf("expected exactly one %s object, found %d", kind, typeCounts[kind]))
		}
	}

	return nil
}

// Referrers returns the IDs of objects that reference id, in document order
func (g *ReferenceGraph) Referrers(id string) []string {
	var referrers []string
	for _, obj := range g.objects {
		for _, field := range obj.Fields {
			if field.RefValue == id {
				referrers = append(referrers, obj.ID)
				break
			}
		}
	}
	return referrers
}

func objectType(obj model.PipelineObject) string {
	for _, field := range obj.Fields {
		if field.Key == "type" {
			return field.StringValue
		}
	}
	return ""
}

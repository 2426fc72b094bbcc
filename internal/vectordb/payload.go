package vectordb

import (
	"github.com/luizchimenes/debugae/pkg/models"
	"github.com/qdrant/go-client/qdrant"
)

// Payload field names
const (
	fieldID          = "id"
	fieldProjectID   = "project_id"
	fieldSummary     = "summary"
	fieldDescription = "description"
	fieldStatus      = "status"
	fieldTextHash    = "text_hash"
)

// defectToPoint converts a Defect to a Qdrant point
func defectToPoint(d *models.Defect, vector []float32) *qdrant.PointStruct {
	return &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(d.UUID()),
		Vectors: qdrant.NewVectors(vector...),
		Payload: defectPayload(d),
	}
}

func defectPayload(d *models.Defect) map[string]*qdrant.Value {
	return map[string]*qdrant.Value{
		fieldID:          qdrant.NewValueString(d.ID),
		fieldProjectID:   qdrant.NewValueString(d.ProjectID),
		fieldSummary:     qdrant.NewValueString(d.Summary),
		fieldDescription: qdrant.NewValueString(d.Description),
		fieldStatus:      qdrant.NewValueString(string(d.Status)),
		fieldTextHash:    qdrant.NewValueString(d.TextHash()),
	}
}

// payloadToDefect converts Qdrant payload to Defect
func payloadToDefect(payload map[string]*qdrant.Value) models.Defect {
	d := models.Defect{}

	if v := payload[fieldID]; v != nil {
		d.ID = v.GetStringValue()
	}
	if v := payload[fieldProjectID]; v != nil {
		d.ProjectID = v.GetStringValue()
	}
	if v := payload[fieldSummary]; v != nil {
		d.Summary = v.GetStringValue()
	}
	if v := payload[fieldDescription]; v != nil {
		d.Description = v.GetStringValue()
	}
	if v := payload[fieldStatus]; v != nil {
		d.Status = models.Status(v.GetStringValue())
	}

	return d
}

package services

import (
	"testing"

	"github.com/google/uuid"

	"pointage/internal/models/db_models"
)

func floatPtr(v float64) *float64 { return &v }

func TestResolveThreshold(t *testing.T) {
	userID := uuid.New()
	officeID := uuid.New()
	companyID := uuid.New()

	tests := []struct {
		name      string
		levels    []ThresholdLevel
		want      float64
		wantType  string
		wantOwner uuid.UUID
	}{
		{
			name: "site override wins",
			levels: []ThresholdLevel{
				{ContextType: db_models.AccuracyContextOffice, ContextID: officeID, Value: floatPtr(50)},
				{ContextType: db_models.AccuracyContextCompany, ContextID: companyID, Value: floatPtr(80)},
			},
			want:      50,
			wantType:  db_models.AccuracyContextOffice,
			wantOwner: officeID,
		},
		{
			name: "company fallback when site unset",
			levels: []ThresholdLevel{
				{ContextType: db_models.AccuracyContextOffice, ContextID: officeID, Value: nil},
				{ContextType: db_models.AccuracyContextCompany, ContextID: companyID, Value: floatPtr(80)},
			},
			want:      80,
			wantType:  db_models.AccuracyContextCompany,
			wantOwner: companyID,
		},
		{
			name: "default owned by last level",
			levels: []ThresholdLevel{
				{ContextType: db_models.AccuracyContextOffice, ContextID: officeID, Value: nil},
				{ContextType: db_models.AccuracyContextCompany, ContextID: companyID, Value: nil},
			},
			want:      DefaultAccuracyThreshold,
			wantType:  db_models.AccuracyContextCompany,
			wantOwner: companyID,
		},
		{
			name: "no matched site",
			levels: []ThresholdLevel{
				{ContextType: db_models.AccuracyContextCompany, ContextID: companyID, Value: nil},
			},
			want:      DefaultAccuracyThreshold,
			wantType:  db_models.AccuracyContextCompany,
			wantOwner: companyID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, owner := ResolveThreshold(userID, tt.levels)
			if value != tt.want {
				t.Errorf("threshold = %v, want %v", value, tt.want)
			}
			if owner.Type != tt.wantType || owner.ID != tt.wantOwner {
				t.Errorf("owner = %s/%s, want %s/%s", owner.Type, owner.ID, tt.wantType, tt.wantOwner)
			}
			if owner.UserID != userID {
				t.Errorf("owner user = %s, want %s", owner.UserID, userID)
			}
		})
	}
}

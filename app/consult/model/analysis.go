package model

import "go-consult/common/models"

// AnalysisRun is one completed AI pass over a project's feedback corpus.
// SourceHash fingerprints the corpus the run was produced from; a rerun
// over an unchanged corpus reuses the stored row.
type AnalysisRun struct {
	ID         int    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID  int    `json:"projectId" gorm:"index;not null;"`
	SourceHash uint32 `json:"sourceHash" gorm:"not null;index;"`
	ItemCount  int    `json:"itemCount" gorm:"not null;default:0;"`
	Model      string `json:"model" gorm:"size:64;"`
	Sentiment  string `json:"sentiment" gorm:"type:text;"`
	Themes     string `json:"themes" gorm:"type:text;"`
	Summary    string `json:"summary" gorm:"type:text;"`

	models.ModelTime
	models.ControlBy
}

func (AnalysisRun) TableName() string {
	return "consult_analysis_run"
}

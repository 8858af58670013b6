package dto

import "github.com/Temutjin2k/fare-estimator/internal/domain/models"

type JournalListResponse struct {
	Estimates []models.JournalEntry `json:"estimates"`
	Metadata  models.Metadata       `json:"metadata"`
}

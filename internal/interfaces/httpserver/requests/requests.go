package requests

// CountCaloriesRequest is the body of POST /count-calories. A missing prompt
// is sent to the model as an empty string.
type CountCaloriesRequest struct {
	Prompt string `json:"prompt" example:"2 яйца, 100 г овсянки, банан"`
}

// AnalyzePhotoRequest is the body of POST /analyze-photo.
type AnalyzePhotoRequest struct {
	ImageURL string `json:"image_url" binding:"required" example:"https://example.com/plate.jpg"`
}

// DietProfile documents POST /diet. Any JSON object is accepted and
// forwarded as-is.
type DietProfile map[string]any

// AddEntryRequest documents POST /add-entry.
type AddEntryRequest struct {
	Timestamp string         `json:"timestamp" example:"2024-05-01T08:30:00Z"`
	UserID    string         `json:"user_id" example:"123456789"`
	Text      string         `json:"text" example:"омлет из 2 яиц"`
	Totals    map[string]any `json:"totals"`
}
